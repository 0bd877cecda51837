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

package debug

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/sunyihoo/detrand/log"
)

func runSetup(t *testing.T, args ...string) error {
	t.Helper()
	t.Cleanup(func() {
		Exit()
		log.SetDefault(log.NewLogger(log.DiscardHandler()))
	})
	app := cli.NewApp()
	app.Flags = Flags
	app.Action = func(ctx *cli.Context) error {
		if err := Setup(ctx); err != nil {
			return err
		}
		log.Info("After setup", "ok", true)
		log.Debug("Hidden at default verbosity")
		return nil
	}
	return app.Run(append([]string{"test"}, args...))
}

func TestSetupLogFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "detrand.log")
	require.NoError(t, runSetup(t, "--log.format", "logfmt", "--log.file", file))

	content, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(content), "msg=\"After setup\"")
	assert.Contains(t, string(content), "msg=\"Logging configured\"")
	assert.NotContains(t, string(content), "Hidden at default verbosity")
}

func TestSetupVerbosity(t *testing.T) {
	file := filepath.Join(t.TempDir(), "detrand.log")
	require.NoError(t, runSetup(t, "--log.format", "json", "--log.file", file, "--verbosity", "4"))

	content, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"msg":"Hidden at default verbosity"`)
}

func TestSetupRotation(t *testing.T) {
	file := filepath.Join(t.TempDir(), "rotated.log")
	require.NoError(t, runSetup(t, "--log.format", "json", "--log.file", file, "--log.rotate"))

	content, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"msg":"After setup"`)
}

func TestSetupErrors(t *testing.T) {
	assert.ErrorContains(t, runSetup(t, "--log.format", "xml"), "unknown log format")
	assert.ErrorContains(t, runSetup(t, "--log.vmodule", "rng"), "invalid --log.vmodule")
}
