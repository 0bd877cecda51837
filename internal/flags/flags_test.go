// Copyright 2026 The detrand Authors
// This file is part of the detrand library.
//
// The detrand library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The detrand library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the detrand library. If not, see <http://www.gnu.org/licenses/>.

package flags

import (
	"os"
	"os/user"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/urfave/cli/v2"
)

func TestPathExpansion(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix paths only")
	}
	user, _ := user.Current()
	t.Setenv("HOME", user.HomeDir)
	t.Setenv("DDDXXX", "/tmp")

	tests := map[string]string{
		"/home/someuser/tmp": "/home/someuser/tmp",
		"~/tmp":              user.HomeDir + "/tmp",
		"~thisOtherUser/b/":  "~thisOtherUser/b",
		"$DDDXXX/a/b":        "/tmp/a/b",
		"/a/b/":              "/a/b",
	}
	for test, expected := range tests {
		assert.Equal(t, expected, expandPath(test), "input %s", test)
	}
}

func TestHomeDir(t *testing.T) {
	t.Setenv("HOME", "/nonexistent/home")
	assert.Equal(t, "/nonexistent/home", HomeDir())
	os.Unsetenv("HOME")
	assert.NotPanics(t, func() { HomeDir() })
}

func TestDirectoryString(t *testing.T) {
	t.Setenv("HOME", "/home/u")
	var s DirectoryString
	assert.NoError(t, s.Set("~/keys/../store"))
	assert.Equal(t, "/home/u/store", s.String())
}

func TestAutoEnvVars(t *testing.T) {
	str := &cli.StringFlag{Name: "storage.key"}
	dir := &DirectoryFlag{Name: "keystore"}
	boolean := &cli.BoolFlag{Name: "light-kdf"}
	AutoEnvVars([]cli.Flag{str, dir, boolean}, "DETRAND")

	assert.Equal(t, []string{"DETRAND_STORAGE_KEY"}, str.EnvVars)
	assert.Equal(t, []string{"DETRAND_KEYSTORE"}, dir.EnvVars)
	assert.Equal(t, []string{"DETRAND_LIGHT_KDF"}, boolean.EnvVars)
}

func TestFlagString(t *testing.T) {
	usecolor = false
	out := FlagString(&cli.StringFlag{Name: "seed", Usage: "hex seed", EnvVars: []string{"DETRAND_SEED"}})
	assert.Contains(t, out, "--seed value")
	assert.Contains(t, out, "hex seed")
	assert.Contains(t, out, "$DETRAND_SEED")
}
