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
	"github.com/sunyihoo/detrand/crypto/rng"
	"github.com/sunyihoo/detrand/log"
)

// The rng table has no user-data slot, so the installed generator is a
// process-wide singleton. Its state is only touched under the generator's
// own lock.
var (
	defaultGenerator = New()
	defaultMethod    = rng.NewMethod(defaultGenerator)
)

// Default returns the process-wide generator used by Install.
func Default() *Generator {
	return defaultGenerator
}

// Install registers the process-wide generator as the active rng backend.
// It takes effect immediately and stays in effect until another table is
// installed. Installing twice is harmless.
//
// Install 将进程范围的生成器注册为当前的随机后端，立即生效。
func Install() {
	rng.SetMethod(defaultMethod)
	log.Debug("Installed deterministic rng backend", "state", defaultGenerator.State())
}

// Installed reports whether the deterministic backend is the active table.
func Installed() bool {
	return rng.CurrentMethod() == defaultMethod
}

// Reset puts the process-wide generator back to InitialSeed, so the next
// execution replays the same stream.
func Reset() {
	defaultGenerator.Reset()
	log.Trace("Reset deterministic rng state", "state", InitialSeed)
}
