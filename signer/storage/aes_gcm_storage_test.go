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

package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/sunyihoo/detrand/common"
	"github.com/sunyihoo/detrand/crypto/deterministic"
	"github.com/sunyihoo/detrand/crypto/rng"
)

func TestEncryption(t *testing.T) {
	key := []byte("AES256Key-32Characters1234567890")
	plaintext := []byte("exampleplaintext")

	c, iv, err := encrypt(key, plaintext, nil)
	require.NoError(t, err)
	assert.Len(t, iv, 12)

	pt, err := decrypt(key, iv, c, nil)
	require.NoError(t, err)
	assert.Equal(t, plaintext, pt)

	_, err = decrypt(key, iv[:4], c, nil)
	assert.Error(t, err)
}

func TestFileStorage(t *testing.T) {
	a := map[string]storedCredential{
		"secret": {
			Iv:         common.Hex2Bytes("cdb30036279601aeee60f16b"),
			CipherText: common.Hex2Bytes("f311ac49859d7260c2c464c28ffac122daf6be801d3cfd3edcbde7e00c9ff74f"),
		},
		"secret2": {
			Iv:         common.Hex2Bytes("afb8a7579bf971db9f8ceeed"),
			CipherText: common.Hex2Bytes("2df87baf86b5073ef1f03e3cc738de75b511400f5465bb0ddeacf47ae4dc267d"),
		},
	}
	stored := &AESEncryptedStorage{
		filename: filepath.Join(t.TempDir(), "test.json"),
		key:      []byte("AES256Key-32Characters1234567890"),
	}
	require.NoError(t, stored.writeEncryptedStorage(a))
	read, err := stored.readEncryptedStorage()
	require.NoError(t, err)
	for k, v := range a {
		v2, ok := read[k]
		require.True(t, ok, "missing key %s", k)
		assert.True(t, bytes.Equal(v.CipherText, v2.CipherText))
		assert.True(t, bytes.Equal(v.Iv, v2.Iv))
	}
}

func TestEnd2End(t *testing.T) {
	file := filepath.Join(t.TempDir(), "test.json")
	s1 := NewAESEncryptedStorage(file, []byte("AES256Key-32Characters1234567890"))
	s2 := NewAESEncryptedStorage(file, []byte("AES256Key-32Characters1234567890"))

	require.NoError(t, s1.Put("bazonk", "foobar"))
	v, err := s2.Get("bazonk")
	require.NoError(t, err)
	assert.Equal(t, "foobar", v)

	require.NoError(t, s2.Del("bazonk"))
	_, err = s1.Get("bazonk")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting an unknown key is a no-op.
	assert.NoError(t, s1.Del("bazonk"))
}

func TestZeroKey(t *testing.T) {
	s := NewAESEncryptedStorage(filepath.Join(t.TempDir(), "test.json"), []byte("AES256Key-32Characters1234567890"))
	assert.ErrorIs(t, s.Put("", "x"), ErrZeroKey)
	_, err := s.Get("")
	assert.ErrorIs(t, err, ErrZeroKey)
}

func TestWrongStorageKey(t *testing.T) {
	file := filepath.Join(t.TempDir(), "test.json")
	require.NoError(t, NewAESEncryptedStorage(file, []byte("AES256Key-32Characters1234567890")).Put("k", "v"))
	_, err := NewAESEncryptedStorage(file, []byte("AES256Key-32Characters0987654321")).Get("k")
	assert.Error(t, err)
}

// Swapping two entries in the file must not yield the other key's value.
func TestSwappedKeys(t *testing.T) {
	file := filepath.Join(t.TempDir(), "test.json")
	s1 := NewAESEncryptedStorage(file, []byte("AES256Key-32Characters1234567890"))
	require.NoError(t, s1.Put("k1", "v1"))
	require.NoError(t, s1.Put("k2", "v2"))

	raw, err := os.ReadFile(file)
	require.NoError(t, err)
	var creds map[string]storedCredential
	require.NoError(t, json.Unmarshal(raw, &creds))
	creds["k1"], creds["k2"] = creds["k2"], creds["k1"]
	raw, err = json.Marshal(creds)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(file, raw, 0600))

	_, err = s1.Get("k1")
	assert.Error(t, err, "swapped value accepted")
	_, err = s1.Get("k2")
	assert.Error(t, err, "swapped value accepted")
}

func TestDeterministicNonce(t *testing.T) {
	deterministic.Reset()
	deterministic.Install()
	t.Cleanup(func() {
		rng.SetMethod(nil)
		deterministic.Reset()
	})

	file := filepath.Join(t.TempDir(), "test.json")
	s := NewAESEncryptedStorage(file, []byte("AES256Key-32Characters1234567890"))
	require.NoError(t, s.Put("k", "v"))

	creds, err := s.readEncryptedStorage()
	require.NoError(t, err)
	assert.Equal(t, deterministic.New().Generate(12), creds["k"].Iv)
}

func TestConcurrentPut(t *testing.T) {
	file := filepath.Join(t.TempDir(), "test.json")
	key := []byte("AES256Key-32Characters1234567890")

	var eg errgroup.Group
	for _, k := range []string{"a", "b", "c", "d"} {
		k := k
		eg.Go(func() error {
			return NewAESEncryptedStorage(file, key).Put(k, k+k)
		})
	}
	require.NoError(t, eg.Wait())

	s := NewAESEncryptedStorage(file, key)
	for _, k := range []string{"a", "b", "c", "d"} {
		v, err := s.Get(k)
		require.NoError(t, err)
		assert.Equal(t, k+k, v)
	}
}
