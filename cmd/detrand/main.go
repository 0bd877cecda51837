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

// detrand is the command line interface to the reproducible randomness
// backend.
package main

import (
	"fmt"
	"os"

	"github.com/sunyihoo/detrand/cmd/utils"
	"github.com/sunyihoo/detrand/internal/debug"
	"github.com/sunyihoo/detrand/internal/flags"
	"github.com/urfave/cli/v2"
)

const (
	clientIdentifier = "detrand" // Client identifier used in config comments and paths
)

var app = flags.NewApp("reproducible randomness for keys, nonces and salts")

func init() {
	// Initialize the CLI app
	app.Commands = []*cli.Command{
		bytesCommand,
		keyCommand,
		storeCommand,
		dumpConfigCommand,
	}
	app.Flags = flags.Merge(
		[]cli.Flag{configFileFlag},
		utils.RandFlags,
		utils.StorageFlags,
		debug.Flags,
	)
	flags.AutoEnvVars(app.Flags, "DETRAND")

	app.Before = func(ctx *cli.Context) error {
		flags.MigrateGlobalFlags(ctx)
		if err := debug.Setup(ctx); err != nil {
			return err
		}
		flags.CheckEnvVars(ctx, app.Flags, "DETRAND")
		return nil
	}
	app.After = func(ctx *cli.Context) error {
		debug.Exit()
		return nil
	}
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
