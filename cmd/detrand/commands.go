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

package main

import (
	"encoding/hex"
	"fmt"

	"github.com/sunyihoo/detrand/accounts/keystore"
	"github.com/sunyihoo/detrand/cmd/utils"
	"github.com/sunyihoo/detrand/crypto"
	"github.com/sunyihoo/detrand/crypto/rng"
	"github.com/sunyihoo/detrand/log"
	"github.com/sunyihoo/detrand/signer/storage"
	"github.com/urfave/cli/v2"
)

// maxCount bounds a single bytes invocation.
const maxCount = 1 << 20

var (
	bytesCommand = &cli.Command{
		Action: printBytes,
		Name:   "bytes",
		Usage:  "Print bytes drawn from the randomness backend",
		Flags:  []cli.Flag{utils.CountFlag},
		Description: `
Prints --count bytes, hex encoded. With the deterministic backend (the
default) the output only depends on --seed.`,
	}
	keyCommand = &cli.Command{
		Action: generateKey,
		Name:   "key",
		Usage:  "Generate a secp256k1 key",
		Flags:  append([]cli.Flag{utils.KeyFileFlag}, utils.KeystoreFlags...),
		Description: `
Generates a private key and prints its address. With --keystore the key is
encrypted with the password read from --password and written to a key file.
With --keyfile the plain hex key is written to the given file instead.`,
	}
	storeCommand = &cli.Command{
		Name:  "store",
		Usage: "Manage the encrypted key/value storage",
		Subcommands: []*cli.Command{
			{
				Action:    storePut,
				Name:      "put",
				Usage:     "Seal a value under a key",
				ArgsUsage: "<key> <value>",
			},
			{
				Action:    storeGet,
				Name:      "get",
				Usage:     "Print the value stored under a key",
				ArgsUsage: "<key>",
			},
			{
				Action:    storeDel,
				Name:      "del",
				Usage:     "Remove a key",
				ArgsUsage: "<key>",
			},
		},
	}
)

func printBytes(ctx *cli.Context) error {
	if _, err := prepare(ctx); err != nil {
		return err
	}
	n := ctx.Int(utils.CountFlag.Name)
	if n < 0 || n > maxCount {
		return fmt.Errorf("invalid --%s %d", utils.CountFlag.Name, n)
	}
	buf := make([]byte, n)
	if err := rng.Bytes(buf); err != nil {
		return err
	}
	log.Debug("Generated bytes", "count", n)
	fmt.Fprintln(ctx.App.Writer, hex.EncodeToString(buf))
	return nil
}

func generateKey(ctx *cli.Context) error {
	cfg, err := prepare(ctx)
	if err != nil {
		return err
	}
	if cfg.Keystore.Dir != "" {
		password, err := utils.ReadPassword(ctx)
		if err != nil {
			return err
		}
		account, err := keystore.StoreKey(cfg.Keystore.Dir, password, cfg.Keystore.ScryptN, cfg.Keystore.ScryptP)
		if err != nil {
			return fmt.Errorf("failed to store key: %v", err)
		}
		fmt.Fprintf(ctx.App.Writer, "Address: %s\n", account.Address.Hex())
		fmt.Fprintf(ctx.App.Writer, "Path:    %s\n", account.URL.Path)
		return nil
	}
	key, err := crypto.GenerateKey()
	if err != nil {
		return err
	}
	if file := ctx.String(utils.KeyFileFlag.Name); file != "" {
		if err := crypto.SaveECDSA(file, key); err != nil {
			return fmt.Errorf("failed to save key: %v", err)
		}
		log.Info("Wrote private key", "file", file)
	} else {
		fmt.Fprintf(ctx.App.Writer, "Private key: %x\n", crypto.FromECDSA(key))
	}
	fmt.Fprintf(ctx.App.Writer, "Public key:  %x\n", crypto.CompressPubkey(&key.PublicKey))
	fmt.Fprintf(ctx.App.Writer, "Address:     %s\n", crypto.PubkeyToAddress(key.PublicKey).Hex())
	return nil
}

func openStorage(ctx *cli.Context) (*storage.AESEncryptedStorage, error) {
	cfg, err := prepare(ctx)
	if err != nil {
		return nil, err
	}
	if cfg.Storage.File == "" {
		return nil, fmt.Errorf("missing --%s", utils.StorageFileFlag.Name)
	}
	key, err := utils.StorageKey(ctx)
	if err != nil {
		return nil, err
	}
	return storage.NewAESEncryptedStorage(cfg.Storage.File, key), nil
}

func storePut(ctx *cli.Context) error {
	if ctx.NArg() != 2 {
		return fmt.Errorf("need <key> <value>, got %d arguments", ctx.NArg())
	}
	s, err := openStorage(ctx)
	if err != nil {
		return err
	}
	return s.Put(ctx.Args().Get(0), ctx.Args().Get(1))
}

func storeGet(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("need <key>, got %d arguments", ctx.NArg())
	}
	s, err := openStorage(ctx)
	if err != nil {
		return err
	}
	value, err := s.Get(ctx.Args().Get(0))
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, value)
	return nil
}

func storeDel(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("need <key>, got %d arguments", ctx.NArg())
	}
	s, err := openStorage(ctx)
	if err != nil {
		return err
	}
	return s.Del(ctx.Args().Get(0))
}
