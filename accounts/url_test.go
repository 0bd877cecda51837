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

package accounts

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLParsing(t *testing.T) {
	url, err := parseURL("keystore:///tmp/keys/a")
	require.NoError(t, err)
	assert.Equal(t, URL{Scheme: "keystore", Path: "/tmp/keys/a"}, url)

	_, err = parseURL("/tmp/keys/a")
	assert.Error(t, err)
	_, err = parseURL("://x")
	assert.Error(t, err)
}

func TestURLJSON(t *testing.T) {
	url := URL{Scheme: "keystore", Path: "/tmp/keys/a"}
	enc, err := json.Marshal(url)
	require.NoError(t, err)
	assert.Equal(t, `"keystore:///tmp/keys/a"`, string(enc))

	var dec URL
	require.NoError(t, json.Unmarshal(enc, &dec))
	assert.Equal(t, url, dec)
}

func TestURLTerminalString(t *testing.T) {
	assert.Equal(t, "/a", URL{Path: "/a"}.TerminalString())
	long := URL{Scheme: "keystore", Path: "/a/very/long/path/to/some/key/file"}
	assert.Len(t, long.TerminalString(), 33)
}
