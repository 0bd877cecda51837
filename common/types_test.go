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

package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddressChecksum(t *testing.T) {
	// Vectors from EIP-55.
	for _, want := range []string{
		"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		"0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
		"0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB",
		"0xD1220A0cf47c7B9Be7A2E6BA89F429762e7b9aDb",
	} {
		assert.Equal(t, want, HexToAddress(want).Hex())
	}
}

func TestIsHexAddress(t *testing.T) {
	assert.True(t, IsHexAddress("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"))
	assert.True(t, IsHexAddress("5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"))
	assert.False(t, IsHexAddress("0x5aaeb6053f3e94c9b9a09f33669435e7ef1bea"))
	assert.False(t, IsHexAddress("0xzzaeb6053f3e94c9b9a09f33669435e7ef1beaed"))
}

func TestBytesToHashCropsLeft(t *testing.T) {
	b := make([]byte, 40)
	b[39] = 1
	b[0] = 0xff
	h := BytesToHash(b)
	assert.Equal(t, byte(1), h[31])
	assert.Equal(t, byte(0), h[0])
}

func TestUnprefixedAddress(t *testing.T) {
	var a UnprefixedAddress
	assert.NoError(t, a.UnmarshalText([]byte("5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")))
	out, err := a.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", string(out))
	assert.Error(t, a.UnmarshalText([]byte("5aae")))
}

func TestFromHex(t *testing.T) {
	assert.Equal(t, []byte{0x01, 0x02}, FromHex("0x0102"))
	assert.Equal(t, []byte{0x01}, FromHex("1"))
	assert.Equal(t, []byte{0, 0, 1}, LeftPadBytes([]byte{1}, 3))
}

func TestHashHex(t *testing.T) {
	h := HexToHash("0x2a")
	assert.Equal(t, "0x000000000000000000000000000000000000000000000000000000000000002a", h.Hex())
	assert.Equal(t, "000000..00002a", h.TerminalString())
	assert.Equal(t, "2a", Bytes2Hex(h[31:]))
}
