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

package deterministic

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunyihoo/detrand/crypto/rng"
)

func installFresh(t *testing.T) {
	t.Helper()
	Reset()
	Install()
	t.Cleanup(func() {
		rng.SetMethod(nil)
		Reset()
	})
}

func TestInstall(t *testing.T) {
	assert.False(t, Installed())
	installFresh(t)
	assert.True(t, Installed())

	// Installing again keeps the same table and state.
	Install()
	assert.True(t, Installed())

	rng.SetMethod(nil)
	assert.False(t, Installed())
}

func TestInstalledDefaultStream(t *testing.T) {
	installFresh(t)

	buf := make([]byte, 8)
	require.NoError(t, rng.Bytes(buf))
	assert.Equal(t, expected(InitialSeed, 8), buf)
}

func TestInstalledTableRoutesAllSlots(t *testing.T) {
	installFresh(t)

	a := make([]byte, 4)
	b := make([]byte, 4)
	require.NoError(t, rng.Bytes(a))
	require.NoError(t, rng.PseudoBytes(b))
	assert.Equal(t, expected(InitialSeed, 8), append(a, b...))

	assert.True(t, rng.Status())
	require.NoError(t, rng.Add([]byte("noise"), 5))
	rng.Cleanup()

	c := make([]byte, 4)
	_, err := io.ReadFull(rng.Reader, c)
	require.NoError(t, err)
	assert.Equal(t, expected(InitialSeed, 12)[8:], c)
}

func TestInstalledSeed(t *testing.T) {
	installFresh(t)

	require.NoError(t, rng.Seed(seedBytes(1)))
	buf := make([]byte, 1)
	require.NoError(t, rng.Bytes(buf))
	assert.Equal(t, byte(0x16), buf[0])
}

// A four byte seed is rejected and the constant seed stays in effect.
func TestInstalledShortSeedKeepsState(t *testing.T) {
	installFresh(t)

	assert.ErrorIs(t, rng.Seed([]byte{42, 0, 0, 0}), rng.ErrSeedRejected)
	buf := make([]byte, 2)
	require.NoError(t, rng.Bytes(buf))
	assert.Equal(t, []byte{0xb7, 0x60}, buf)
}

func TestResetReplaysStream(t *testing.T) {
	installFresh(t)

	first := make([]byte, 32)
	require.NoError(t, rng.Bytes(first))
	Reset()
	second := make([]byte, 32)
	require.NoError(t, rng.Bytes(second))
	assert.Equal(t, first, second)
}
