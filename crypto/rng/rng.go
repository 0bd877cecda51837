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

// Package rng is the pluggable randomness layer of the crypto packages.
//
// Every piece of randomness the library consumes (key generation, nonces,
// salts, IVs, UUIDs) is drawn through the active Method table. The table can
// be swapped process-wide with SetMethod, which is how a deterministic
// generator replaces the operating system source.
//
// rng 是 crypto 包的可插拔随机源层。库中所有随机数（密钥、nonce、盐、IV、UUID）
// 都通过当前激活的 Method 表获取，可以通过 SetMethod 在进程范围内替换。
package rng

import (
	"errors"
	"sync/atomic"
)

var (
	// ErrSeedRejected is returned by Seed when the backend refuses the seed
	// material, typically because it is too short. The backend state is left
	// as it was before the call.
	ErrSeedRejected = errors.New("rng: seed material rejected by backend")

	// ErrRandFailure is returned when the backend reports that it could not
	// produce the requested bytes.
	ErrRandFailure = errors.New("rng: backend failed to generate bytes")

	// ErrNotSupported is returned when the active table has no entry for the
	// requested operation.
	ErrNotSupported = errors.New("rng: operation not supported by backend")
)

// Method is the indirection table the library calls through. It mirrors the
// classic six-slot RNG method layout: seed, bytes, cleanup, add, pseudorand
// and status. A nil slot marks the operation as unsupported.
//
// Method 是库调用所经过的间接表，对应经典的六槽 RNG 方法布局。
type Method struct {
	Seed       func(buf []byte) bool
	Bytes      func(buf []byte) bool
	Cleanup    func()
	Add        func(buf []byte, entropy float64) bool
	PseudoRand func(buf []byte) bool
	Status     func() bool
}

// Backend is implemented by randomness sources that can be installed as the
// active table. Bytes fills the whole buffer or reports false.
type Backend interface {
	Seed(buf []byte) bool
	Bytes(buf []byte) bool
	Add(buf []byte, entropy float64) bool
	Status() bool
	Cleanup()
}

// NewMethod adapts a Backend to the table layout. The backend's Bytes serves
// both the Bytes and the PseudoRand slots.
//
// NewMethod 将 Backend 适配为方法表，Bytes 同时用于 Bytes 和 PseudoRand 两个槽。
func NewMethod(b Backend) *Method {
	return &Method{
		Seed:       b.Seed,
		Bytes:      b.Bytes,
		Cleanup:    b.Cleanup,
		Add:        b.Add,
		PseudoRand: b.Bytes,
		Status:     b.Status,
	}
}

var (
	systemMethod = NewMethod(System{})
	active       atomic.Pointer[Method]
)

func init() {
	active.Store(systemMethod)
}

// SetMethod makes m the active table for the whole process. Passing nil
// restores the operating system table.
func SetMethod(m *Method) {
	if m == nil {
		m = systemMethod
	}
	active.Store(m)
}

// CurrentMethod returns the active table.
func CurrentMethod() *Method {
	return active.Load()
}

// SystemMethod returns the table backed by the operating system source.
func SystemMethod() *Method {
	return systemMethod
}

// Seed hands seed material to the active backend.
func Seed(buf []byte) error {
	m := CurrentMethod()
	if m.Seed == nil {
		return ErrNotSupported
	}
	if !m.Seed(buf) {
		return ErrSeedRejected
	}
	return nil
}

// Bytes fills buf from the active backend.
func Bytes(buf []byte) error {
	return fill(CurrentMethod().Bytes, buf)
}

// PseudoBytes fills buf through the pseudo-random slot of the active backend.
// The output is not meant for key material.
func PseudoBytes(buf []byte) error {
	return fill(CurrentMethod().PseudoRand, buf)
}

func fill(fn func([]byte) bool, buf []byte) error {
	if fn == nil {
		return ErrNotSupported
	}
	if !fn(buf) {
		return ErrRandFailure
	}
	return nil
}

// Add mixes externally observed entropy into the active backend. The entropy
// argument is the caller's estimate of the number of random bytes in buf.
func Add(buf []byte, entropy float64) error {
	m := CurrentMethod()
	if m.Add == nil {
		return ErrNotSupported
	}
	if !m.Add(buf, entropy) {
		return ErrRandFailure
	}
	return nil
}

// Status reports whether the active backend is seeded and ready.
func Status() bool {
	m := CurrentMethod()
	if m.Status == nil {
		return false
	}
	return m.Status()
}

// Cleanup releases whatever the active backend holds.
func Cleanup() {
	if m := CurrentMethod(); m.Cleanup != nil {
		m.Cleanup()
	}
}
