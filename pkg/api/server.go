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

package api

import (
	"context"
	"log/slog"

	"github.com/volkszaehler/vzview/pkg/catalog"
	"github.com/volkszaehler/vzview/pkg/errors"
	"github.com/volkszaehler/vzview/pkg/logging"
	"github.com/volkszaehler/vzview/pkg/server"
)

const (
	name           = "vzviewd"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/volkszaehler/vzview/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve configures the default logger and runs the server with
// configuration from the environment until ctx is canceled.
func Serve(ctx context.Context) error {
	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	return ServeWithConfig(ctx, server.NewConfig())
}

// ServeWithConfig loads the catalog named by cfg and runs the server until
// ctx is canceled.
func ServeWithConfig(ctx context.Context, cfg *server.Config) error {
	if cfg.CatalogPath == "" {
		return errors.New(errors.ErrCodeInvalidRequest,
			"no catalog configured, set "+server.EnvCatalog)
	}

	c, err := catalog.Load(ctx, cfg.CatalogPath)
	if err != nil {
		slog.Error("failed to load catalog", "path", cfg.CatalogPath, "error", err)
		return err
	}
	slog.Info("catalog loaded", "path", cfg.CatalogPath, "entities", c.Len())

	// Create and run server
	s := server.New(
		server.WithConfig(cfg),
		server.WithName(name),
		server.WithVersion(version),
		server.WithCatalog(c),
	)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}
