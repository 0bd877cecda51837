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
	"crypto/aes"
	"crypto/cipher"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/gofrs/flock"
	"github.com/sunyihoo/detrand/crypto/rng"
	"github.com/sunyihoo/detrand/log"
)

type storedCredential struct {
	// The iv
	Iv []byte `json:"iv"`
	// The ciphertext
	CipherText []byte `json:"c"`
}

// AESEncryptedStorage is a storage type which is backed by a json-file. The json-file contains
// key-value mappings, where the keys are _not_ encrypted, only the values are.
//
// Every write draws a fresh GCM nonce from the active rng backend, and the
// entry key is bound as additional data so values cannot be swapped between
// keys. Concurrent processes are serialised through a lock file next to the
// storage file.
type AESEncryptedStorage struct {
	// File to read/write credentials
	filename string
	// AES key, 16, 24 or 32 bytes
	key  []byte
	lock *flock.Flock
}

var _ Storage = (*AESEncryptedStorage)(nil)

// NewAESEncryptedStorage creates a new encrypted storage backed by the given file/key
func NewAESEncryptedStorage(filename string, key []byte) *AESEncryptedStorage {
	return &AESEncryptedStorage{
		filename: filename,
		key:      key,
		lock:     flock.New(filename + ".lock"),
	}
}

// Put stores a value by key. 0-length keys result in ErrZeroKey.
func (s *AESEncryptedStorage) Put(key, value string) error {
	if len(key) == 0 {
		return ErrZeroKey
	}
	return s.update(func(data map[string]storedCredential) error {
		ciphertext, iv, err := encrypt(s.key, []byte(value), []byte(key))
		if err != nil {
			log.Warn("Failed to encrypt entry", "err", err)
			return err
		}
		data[key] = storedCredential{Iv: iv, CipherText: ciphertext}
		return nil
	})
}

// Get returns the previously stored value, or an error if it does not exist or
// key is of 0-length.
func (s *AESEncryptedStorage) Get(key string) (string, error) {
	if len(key) == 0 {
		return "", ErrZeroKey
	}
	if err := s.lock.RLock(); err != nil {
		return "", fmt.Errorf("locking storage: %w", err)
	}
	defer s.lock.Unlock()

	data, err := s.readEncryptedStorage()
	if err != nil {
		log.Warn("Failed to read encrypted storage", "err", err, "file", s.filename)
		return "", err
	}
	encrypted, exist := data[key]
	if !exist {
		log.Warn("Key does not exist", "key", key)
		return "", ErrNotFound
	}
	entry, err := decrypt(s.key, encrypted.Iv, encrypted.CipherText, []byte(key))
	if err != nil {
		log.Warn("Failed to decrypt key", "key", key)
		return "", err
	}
	return string(entry), nil
}

// Del removes a key-value pair. If the key doesn't exist, the method is a no-op.
func (s *AESEncryptedStorage) Del(key string) error {
	return s.update(func(data map[string]storedCredential) error {
		delete(data, key)
		return nil
	})
}

// update runs fn on the decoded file contents under the exclusive lock and
// writes the result back.
func (s *AESEncryptedStorage) update(fn func(map[string]storedCredential) error) error {
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("locking storage: %w", err)
	}
	defer s.lock.Unlock()

	data, err := s.readEncryptedStorage()
	if err != nil {
		log.Warn("Failed to read encrypted storage", "err", err, "file", s.filename)
		return err
	}
	if err := fn(data); err != nil {
		return err
	}
	if err := s.writeEncryptedStorage(data); err != nil {
		log.Warn("Failed to write entry", "err", err)
		return err
	}
	return nil
}

// readEncryptedStorage reads the file with encrypted creds
func (s *AESEncryptedStorage) readEncryptedStorage() (map[string]storedCredential, error) {
	creds := make(map[string]storedCredential)
	raw, err := os.ReadFile(s.filename)
	if err != nil {
		if os.IsNotExist(err) {
			// Doesn't exist yet
			return creds, nil
		}
		return nil, err
	}
	if err = json.Unmarshal(raw, &creds); err != nil {
		log.Warn("Failed to unmarshal encrypted storage", "err", err, "file", s.filename)
		return nil, err
	}
	return creds, nil
}

// writeEncryptedStorage write the file with encrypted creds
func (s *AESEncryptedStorage) writeEncryptedStorage(creds map[string]storedCredential) error {
	raw, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	return os.WriteFile(s.filename, raw, 0600)
}

// encrypt encrypts plaintext with the given key, with additional data
// The 'additionalData' is used to place the (plaintext) KV-store key into the V,
// to prevent the possibility to alter a K, or swap two entries in the KV store with each other.
func encrypt(key []byte, plaintext []byte, additionalData []byte) ([]byte, []byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, nil, err
	}
	nonce := make([]byte, aesgcm.NonceSize())
	if _, err := io.ReadFull(rng.Reader, nonce); err != nil {
		return nil, nil, err
	}
	ciphertext := aesgcm.Seal(nil, nonce, plaintext, additionalData)
	return ciphertext, nonce, nil
}

func decrypt(key []byte, nonce []byte, ciphertext []byte, additionalData []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if len(nonce) != aesgcm.NonceSize() {
		return nil, fmt.Errorf("invalid nonce length %d", len(nonce))
	}
	return aesgcm.Open(nil, nonce, ciphertext, additionalData)
}
