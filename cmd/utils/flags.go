// Copyright 2026 The detrand Authors
// This file is part of detrand.
//
// detrand is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// detrand is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with detrand. If not, see <http://www.gnu.org/licenses/>.

// Package utils contains internal helper functions for detrand commands.
package utils

import (
	"github.com/sunyihoo/detrand/accounts/keystore"
	"github.com/sunyihoo/detrand/internal/flags"
	"github.com/urfave/cli/v2"
)

// These are all the command line flags we support.
// If you add to this list, please remember to include the
// flag in the appropriate command definition.
//
// The flags are defined here so their names and help texts
// are the same for all commands.

var (
	// Randomness settings
	DeterministicFlag = &cli.BoolFlag{
		Name:     "deterministic",
		Usage:    "Install the reproducible generator as the randomness backend (NOT secure)",
		Value:    true,
		Category: flags.RandCategory,
	}
	SeedFlag = &cli.StringFlag{
		Name:     "seed",
		Usage:    "Hex encoded seed handed to the backend (at least 8 bytes to take effect)",
		Category: flags.RandCategory,
	}
	CountFlag = &cli.IntFlag{
		Name:     "count",
		Aliases:  []string{"n"},
		Usage:    "Number of bytes to generate",
		Value:    32,
		Category: flags.RandCategory,
	}

	// Keystore settings
	KeyStoreDirFlag = &flags.DirectoryFlag{
		Name:     "keystore",
		Usage:    "Directory for encrypted key files",
		Category: flags.KeystoreCategory,
	}
	PasswordFileFlag = &cli.PathFlag{
		Name:      "password",
		Usage:     "Password file to use for key encryption",
		TakesFile: true,
		Category:  flags.KeystoreCategory,
	}
	LightKDFFlag = &cli.BoolFlag{
		Name:     "lightkdf",
		Usage:    "Reduce key-derivation RAM & CPU usage at some expense of KDF strength",
		Category: flags.KeystoreCategory,
	}
	KeyFileFlag = &cli.PathFlag{
		Name:      "keyfile",
		Usage:     "Write the plain hex private key to this file",
		TakesFile: true,
		Category:  flags.KeystoreCategory,
	}

	// Encrypted storage settings
	StorageFileFlag = &cli.PathFlag{
		Name:      "storage",
		Usage:     "Encrypted key/value storage file",
		TakesFile: true,
		Category:  flags.StorageCategory,
	}
	StorageKeyFlag = &cli.StringFlag{
		Name:     "storage.key",
		Usage:    "Hex encoded AES key (16, 24 or 32 bytes) sealing the storage values",
		Category: flags.StorageCategory,
	}
)

var (
	// RandFlags is the flag group of the randomness backend.
	RandFlags = []cli.Flag{
		DeterministicFlag,
		SeedFlag,
	}
	// KeystoreFlags is the flag group of key generation and storage.
	KeystoreFlags = []cli.Flag{
		KeyStoreDirFlag,
		PasswordFileFlag,
		LightKDFFlag,
	}
	// StorageFlags is the flag group of the encrypted storage.
	StorageFlags = []cli.Flag{
		StorageFileFlag,
		StorageKeyFlag,
	}
)

// scryptParams returns the KDF parameters selected on the command line.
func scryptParams(ctx *cli.Context) (int, int) {
	if ctx.Bool(LightKDFFlag.Name) {
		return keystore.LightScryptN, keystore.LightScryptP
	}
	return keystore.StandardScryptN, keystore.StandardScryptP
}
