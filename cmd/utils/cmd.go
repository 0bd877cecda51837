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

package utils

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sunyihoo/detrand/accounts/keystore"
	"github.com/sunyihoo/detrand/crypto/deterministic"
	"github.com/sunyihoo/detrand/crypto/rng"
	"github.com/sunyihoo/detrand/log"
	"github.com/urfave/cli/v2"
)

// RandConfig selects the randomness backend.
type RandConfig struct {
	Deterministic bool
	Seed          string `toml:",omitempty"` // hex
}

// KeystoreConfig holds the key file location and the scrypt cost.
type KeystoreConfig struct {
	Dir     string `toml:",omitempty"`
	ScryptN int
	ScryptP int
}

// StorageConfig locates the encrypted key/value file. The AES key is not
// part of the config, it is only accepted from the command line or the
// environment.
type StorageConfig struct {
	File string `toml:",omitempty"`
}

// DefaultRandConfig installs the deterministic backend with no extra seed.
var DefaultRandConfig = RandConfig{Deterministic: true}

// DefaultKeystoreConfig uses the standard scrypt cost.
var DefaultKeystoreConfig = KeystoreConfig{
	ScryptN: keystore.StandardScryptN,
	ScryptP: keystore.StandardScryptP,
}

// SetRandConfig applies randomness related command line flags to the config.
func SetRandConfig(ctx *cli.Context, cfg *RandConfig) {
	if ctx.IsSet(DeterministicFlag.Name) {
		cfg.Deterministic = ctx.Bool(DeterministicFlag.Name)
	}
	if ctx.IsSet(SeedFlag.Name) {
		cfg.Seed = ctx.String(SeedFlag.Name)
	}
}

// SetKeystoreConfig applies keystore related command line flags to the config.
func SetKeystoreConfig(ctx *cli.Context, cfg *KeystoreConfig) {
	if ctx.IsSet(KeyStoreDirFlag.Name) {
		cfg.Dir = ctx.String(KeyStoreDirFlag.Name)
	}
	if ctx.IsSet(LightKDFFlag.Name) {
		cfg.ScryptN, cfg.ScryptP = scryptParams(ctx)
	}
}

// SetStorageConfig applies storage related command line flags to the config.
func SetStorageConfig(ctx *cli.Context, cfg *StorageConfig) {
	if ctx.IsSet(StorageFileFlag.Name) {
		cfg.File = ctx.String(StorageFileFlag.Name)
	}
}

// SetupRandomness installs the backend selected by cfg and hands it the
// configured seed. The deterministic generator always starts over from its
// initial state. A seed the backend rejects is reported as a warning and
// the backend keeps its current state.
func SetupRandomness(cfg *RandConfig) error {
	if cfg.Deterministic {
		deterministic.Reset()
		deterministic.Install()
		log.Warn("Deterministic randomness enabled, generated keys are NOT secret")
	} else {
		rng.SetMethod(nil)
	}
	if cfg.Seed == "" {
		return nil
	}
	if !cfg.Deterministic {
		log.Warn("System randomness ignores the configured seed")
		return nil
	}
	seed, err := hex.DecodeString(strings.TrimPrefix(cfg.Seed, "0x"))
	if err != nil {
		return fmt.Errorf("invalid seed %q: %v", cfg.Seed, err)
	}
	switch err := rng.Seed(seed); {
	case errors.Is(err, rng.ErrSeedRejected):
		log.Warn("Backend rejected seed, keeping current state", "len", len(seed), "want", deterministic.SeedLength)
	case err != nil:
		return err
	default:
		log.Debug("Seeded randomness backend", "len", len(seed))
	}
	return nil
}

// StorageKey decodes the AES key of the encrypted storage.
func StorageKey(ctx *cli.Context) ([]byte, error) {
	hexkey := ctx.String(StorageKeyFlag.Name)
	if hexkey == "" {
		return nil, fmt.Errorf("missing --%s", StorageKeyFlag.Name)
	}
	key, err := hex.DecodeString(strings.TrimPrefix(hexkey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid storage key: %v", err)
	}
	switch len(key) {
	case 16, 24, 32:
		return key, nil
	}
	return nil, fmt.Errorf("invalid storage key length %d, want 16, 24 or 32 bytes", len(key))
}

// ReadPassword returns the first line of the password file given on the
// command line.
func ReadPassword(ctx *cli.Context) (string, error) {
	path := ctx.String(PasswordFileFlag.Name)
	if path == "" {
		return "", fmt.Errorf("missing --%s", PasswordFileFlag.Name)
	}
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to read password file: %v", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read password file: %v", err)
		}
		return "", errors.New("password file is empty")
	}
	return strings.TrimRight(scanner.Text(), "\r"), nil
}
