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

package crypto

import (
	"bytes"
	"encoding/hex"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunyihoo/detrand/common"
	"github.com/sunyihoo/detrand/crypto/deterministic"
	"github.com/sunyihoo/detrand/crypto/rng"
)

var (
	testAddrHex = "970e8128ab834e8eac17ab8e3812f010678cf791"
	testPrivHex = "289c2857d4598e37fb9647507e47a309d6133539bf21a8b9cb6df88fd5232032"
)

func installDeterministic(t *testing.T) {
	t.Helper()
	deterministic.Reset()
	deterministic.Install()
	t.Cleanup(func() {
		rng.SetMethod(nil)
		deterministic.Reset()
	})
}

func TestKeccak256Hash(t *testing.T) {
	msg := []byte("abc")
	exp, _ := hex.DecodeString("4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45")
	assert.Equal(t, exp, Keccak256(msg))
	assert.Equal(t, exp, Keccak256Hash(msg).Bytes())
	assert.Equal(t, exp, HashData(NewKeccakState(), msg).Bytes())
}

func TestToECDSAErrors(t *testing.T) {
	_, err := HexToECDSA("0000000000000000000000000000000000000000000000000000000000000000")
	assert.Error(t, err, "zero key accepted")
	_, err = HexToECDSA("ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff")
	assert.Error(t, err, ">=N key accepted")
	_, err = HexToECDSA("zz")
	assert.Error(t, err)
	_, err = ToECDSA(make([]byte, 31))
	assert.Error(t, err)
}

// A key whose leading zero byte was cut off is only accepted by the lax
// conversion.
func TestToECDSAUnsafe(t *testing.T) {
	d := common.FromHex("0x00" + testPrivHex[2:])
	assert.Len(t, d, 32)
	_, err := ToECDSA(d[1:])
	assert.Error(t, err)
	key := ToECDSAUnsafe(d[1:])
	require.NotNil(t, key)
	assert.Equal(t, new(big.Int).SetBytes(d).String(), key.D.String())
}

func TestSign(t *testing.T) {
	key, _ := HexToECDSA(testPrivHex)
	addr := common.HexToAddress(testAddrHex)

	msg := Keccak256([]byte("foo"))
	sig, err := Sign(msg, key)
	require.NoError(t, err)

	recoveredPub, err := Ecrecover(msg, sig)
	require.NoError(t, err)
	pubKey, _ := UnmarshalPubkey(recoveredPub)
	assert.Equal(t, addr, PubkeyToAddress(*pubKey))

	recoveredPub2, err := SigToPub(msg, sig)
	require.NoError(t, err)
	assert.Equal(t, addr, PubkeyToAddress(*recoveredPub2))

	assert.True(t, VerifySignature(recoveredPub, msg, sig[:64]))
	assert.True(t, VerifySignature(CompressPubkey(&key.PublicKey), msg, sig[:64]))
	assert.False(t, VerifySignature(recoveredPub, Keccak256([]byte("bar")), sig[:64]))
	assert.False(t, VerifySignature(recoveredPub, msg, sig))

	again, err := Sign(msg, key)
	require.NoError(t, err)
	assert.Equal(t, sig, again, "signing is not deterministic")
}

func TestInvalidSign(t *testing.T) {
	_, err := Sign(make([]byte, 1), nil)
	assert.Error(t, err)
	_, err = Sign(make([]byte, 33), nil)
	assert.Error(t, err)
}

func TestCompressPubkey(t *testing.T) {
	key, _ := HexToECDSA(testPrivHex)
	compressed := CompressPubkey(&key.PublicKey)
	assert.Len(t, compressed, 33)

	pub, err := DecompressPubkey(compressed)
	require.NoError(t, err)
	assert.Zero(t, key.PublicKey.X.Cmp(pub.X))
	assert.Zero(t, key.PublicKey.Y.Cmp(pub.Y))

	_, err = DecompressPubkey(compressed[:32])
	assert.Error(t, err)
}

func TestUnmarshalPubkey(t *testing.T) {
	_, err := UnmarshalPubkey(nil)
	assert.ErrorIs(t, err, errInvalidPubkey)

	key, _ := HexToECDSA(testPrivHex)
	enc := FromECDSAPub(&key.PublicKey)
	pub, err := UnmarshalPubkey(enc)
	require.NoError(t, err)
	assert.Zero(t, key.PublicKey.X.Cmp(pub.X))

	enc[64] ^= 1 // move the point off the curve
	_, err = UnmarshalPubkey(enc)
	assert.ErrorIs(t, err, errInvalidPubkey)
}

func TestLoadECDSA(t *testing.T) {
	tests := []struct {
		input string
		err   string
	}{
		// good
		{input: "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"},
		{input: "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef\n"},
		{input: "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef\n\r"},
		{input: "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef\r\n"},
		// bad
		{
			input: "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcde",
			err:   "key file too short, want 64 hex characters",
		},
		{
			input: "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdefX",
			err:   "invalid character 'X' at end of key file",
		},
		{
			input: "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef\n\n\n",
			err:   "key file too long, want 64 hex characters",
		},
	}
	for _, test := range tests {
		f := filepath.Join(t.TempDir(), "key")
		require.NoError(t, os.WriteFile(f, []byte(test.input), 0600))
		_, err := LoadECDSA(f)
		if test.err == "" {
			assert.NoError(t, err, "input %q", test.input)
		} else {
			assert.EqualError(t, err, test.err, "input %q", test.input)
		}
	}
}

func TestSaveECDSA(t *testing.T) {
	file := filepath.Join(t.TempDir(), "key")
	key, _ := HexToECDSA(testPrivHex)
	require.NoError(t, SaveECDSA(file, key))
	loaded, err := LoadECDSA(file)
	require.NoError(t, err)
	assert.Zero(t, key.D.Cmp(loaded.D))
}

func TestValidateSignatureValues(t *testing.T) {
	one := common.Big1
	zero := common.Big0
	secp256k1nMinus1 := new(big.Int).Sub(secp256k1N, one)

	assert.True(t, ValidateSignatureValues(0, one, one, false))
	assert.True(t, ValidateSignatureValues(1, one, one, false))
	assert.False(t, ValidateSignatureValues(2, one, one, false))
	assert.False(t, ValidateSignatureValues(0, zero, one, false))
	assert.False(t, ValidateSignatureValues(0, one, zero, false))
	assert.False(t, ValidateSignatureValues(0, secp256k1N, one, false))
	assert.True(t, ValidateSignatureValues(0, secp256k1nMinus1, secp256k1nMinus1, false))
	assert.False(t, ValidateSignatureValues(0, one, secp256k1nMinus1, true))
}

func TestGenerateKeyReproducible(t *testing.T) {
	installDeterministic(t)

	k1, err := GenerateKey()
	require.NoError(t, err)
	deterministic.Reset()
	k2, err := GenerateKey()
	require.NoError(t, err)
	assert.Equal(t, FromECDSA(k1), FromECDSA(k2))

	// The key is the first 32 bytes of the stream.
	assert.Equal(t, deterministic.New().Generate(32), FromECDSA(k1))

	k3, err := GenerateKey()
	require.NoError(t, err)
	assert.NotEqual(t, FromECDSA(k1), FromECDSA(k3))
}

func TestGenerateKeySystem(t *testing.T) {
	k1, err := GenerateKey()
	require.NoError(t, err)
	k2, err := GenerateKey()
	require.NoError(t, err)
	assert.NotEqual(t, FromECDSA(k1), FromECDSA(k2))
}

func TestGenerateKeyFromReaderRejects(t *testing.T) {
	// All-zero candidates are never valid scalars.
	_, err := GenerateKeyFromReader(bytes.NewReader(make([]byte, 32*maxKeyAttempts)))
	assert.ErrorIs(t, err, errKeyExhausted)

	// A short source surfaces the read error.
	_, err = GenerateKeyFromReader(bytes.NewReader(make([]byte, 10)))
	assert.Error(t, err)

	// An invalid candidate is skipped.
	src := append(make([]byte, 32), deterministic.New().Generate(32)...)
	key, err := GenerateKeyFromReader(bytes.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, src[32:], FromECDSA(key))
}

func TestZeroBytes(t *testing.T) {
	buf := []byte{1, 2, 3, 4}
	zeroBytes(buf)
	assert.Equal(t, make([]byte, 4), buf)
	zeroBytes(nil)
}

func TestRandomNonce(t *testing.T) {
	installDeterministic(t)

	nonce, err := RandomNonce(12)
	require.NoError(t, err)
	assert.Equal(t, deterministic.New().Generate(12), nonce)

	empty, err := RandomNonce(0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
