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

// Package accounts holds the account descriptor shared by key backends.
package accounts

import "github.com/sunyihoo/detrand/common"

// Account represents a key stored by a backend, located at an optional URL.
type Account struct {
	Address common.Address `json:"address"` // address derived from the key
	URL     URL            `json:"url"`     // optional resource locator within a backend
}
