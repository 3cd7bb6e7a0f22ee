// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/volkszaehler/vzview/pkg/api"
	"github.com/volkszaehler/vzview/pkg/server"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:                  "serve",
		EnableShellCompletion: true,
		Usage:                 "Serve catalog documents over HTTP",
		Description: `Start the HTTP server on a catalog. Settings default to the server
environment (PORT, VZ_RATE_LIMIT, SHUTDOWN_TIMEOUT_SECONDS) and are
overridden by flags.`,
		Flags: []cli.Flag{
			catalogFlag,
			debugFlag,
			&cli.StringFlag{
				Name:  "address",
				Usage: "listen address",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "listen port",
				Sources: cli.EnvVars(server.EnvPort),
				Value:   8080,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := server.NewConfig()
			cfg.CatalogPath = cmd.String("catalog")
			cfg.Debug = cmd.Bool("debug")
			cfg.Address = cmd.String("address")
			cfg.Port = int(cmd.Int("port"))

			return api.ServeWithConfig(ctx, cfg)
		},
	}
}
