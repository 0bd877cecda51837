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

// Package deterministic implements a reproducible randomness backend.
//
// The generator is a 64-bit linear congruential generator. It makes key
// generation, nonce selection and padding bit-for-bit reproducible for tests
// and fuzzing. It is NOT a cryptographic generator and must never be installed
// where real entropy is required.
//
// deterministic 实现了一个可复现的随机后端（64 位线性同余生成器）。
// 它不安全，只能用于测试和模糊测试。
package deterministic

import (
	"encoding/binary"
	"sync"
)

const (
	// InitialSeed is the state every generator starts from before any
	// explicit seeding.
	InitialSeed uint64 = 42

	// SeedLength is the minimum amount of seed material accepted by Seed.
	SeedLength = 8

	multiplier uint64 = 6364136223846793005
	increment  uint64 = 1
)

// Generator owns a single 64-bit state word. Every output byte advances the
// state exactly once: state = multiplier*state + 1 (mod 2^64), and the byte
// is bits 33..40 of the new state.
//
// The state is guarded by a mutex. Concurrent callers never corrupt it, but
// the order in which they interleave is not reproducible.
type Generator struct {
	mu   sync.Mutex
	seed uint64
}

// New returns a generator in its initial state.
func New() *Generator {
	return &Generator{seed: InitialSeed}
}

// NewWithSeed returns a generator starting from the given state.
func NewWithSeed(seed uint64) *Generator {
	return &Generator{seed: seed}
}

// Seed replaces the state with the first eight bytes of buf, read in native
// byte order. With fewer than eight bytes it reports false and leaves the
// state untouched.
//
// Seed 使用 buf 的前 8 个字节（本机字节序）替换状态；不足 8 字节时返回 false 且不修改状态。
func (g *Generator) Seed(buf []byte) bool {
	if len(buf) < SeedLength {
		return false
	}
	g.mu.Lock()
	g.seed = binary.NativeEndian.Uint64(buf[:SeedLength])
	g.mu.Unlock()
	return true
}

// Generate returns n bytes of output. A non-positive n returns an empty
// slice without advancing the state.
func (g *Generator) Generate(n int) []byte {
	if n <= 0 {
		return []byte{}
	}
	out := make([]byte, n)
	g.Bytes(out)
	return out
}

// Bytes fills buf with output. It never fails.
func (g *Generator) Bytes(buf []byte) bool {
	g.mu.Lock()
	s := g.seed
	for i := range buf {
		s = multiplier*s + increment
		buf[i] = byte(s >> 33)
	}
	g.seed = s
	g.mu.Unlock()
	return true
}

// Read implements io.Reader. It always fills p completely.
func (g *Generator) Read(p []byte) (int, error) {
	g.Bytes(p)
	return len(p), nil
}

// Add accepts entropy and discards it. Mixing anything into the state would
// break reproducibility.
func (g *Generator) Add(buf []byte, entropy float64) bool {
	return true
}

// Status always reports ready: the initial constant is a valid seed.
func (g *Generator) Status() bool {
	return true
}

// Cleanup is a no-op. It does not reset the state.
func (g *Generator) Cleanup() {}

// State returns the current state word.
func (g *Generator) State() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.seed
}

// Reset puts the generator back to InitialSeed.
func (g *Generator) Reset() {
	g.mu.Lock()
	g.seed = InitialSeed
	g.mu.Unlock()
}
