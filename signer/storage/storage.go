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

// Package storage keeps small secrets in a file, each value sealed with
// AES-GCM under a caller supplied key.
package storage

import "errors"

var (
	// ErrZeroKey is returned if an attempt was made to use a 0-length key.
	ErrZeroKey = errors.New("0-length key")

	// ErrNotFound is returned if an unknown key is attempted to be retrieved.
	ErrNotFound = errors.New("not found")
)

// Storage is a key/value store for secrets.
type Storage interface {
	// Put stores a value by key. 0-length keys result in ErrZeroKey.
	Put(key, value string) error

	// Get returns the previously stored value, or an error if the key is
	// 0-length or unknown.
	Get(key string) (string, error)

	// Del removes a key-value pair. If the key doesn't exist, the method is a no-op.
	Del(key string) error
}
