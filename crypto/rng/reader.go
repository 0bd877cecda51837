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

package rng

import (
	crand "crypto/rand"
	"io"
)

// Reader is the library-wide source of randomness. Reads are served by the
// table active at the time of the call, so installing a different backend
// takes effect for readers handed out earlier as well.
//
// Reader 是全库共享的随机源，每次读取都由调用时激活的方法表提供。
var Reader io.Reader = reader{}

type reader struct{}

func (reader) Read(p []byte) (int, error) {
	if err := Bytes(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// System is the backend reading from the operating system CSPRNG. Seeding and
// entropy mixing are accepted and ignored, the kernel pool needs neither.
type System struct{}

func (System) Seed(buf []byte) bool { return true }

func (System) Bytes(buf []byte) bool {
	_, err := io.ReadFull(crand.Reader, buf)
	return err == nil
}

func (System) Add(buf []byte, entropy float64) bool { return true }
func (System) Status() bool                         { return true }
func (System) Cleanup()                             {}
