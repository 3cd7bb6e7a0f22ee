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
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/volkszaehler/vzview/pkg/catalog"
	"github.com/volkszaehler/vzview/pkg/defaults"
	"github.com/volkszaehler/vzview/pkg/diagnostics"
	"github.com/volkszaehler/vzview/pkg/errors"
	"github.com/volkszaehler/vzview/pkg/logging"
	"github.com/volkszaehler/vzview/pkg/serializer"
	"github.com/volkszaehler/vzview/pkg/view"
)

func renderCmd() *cli.Command {
	return &cli.Command{
		Name:                  "render",
		EnableShellCompletion: true,
		Usage:                 "Render a catalog entity or its series as a document",
		Description: `Render entities of a catalog as a volkszaehler document:
  - without --uuid, every root entity of the catalog
  - with --uuid, that entity, or the aggregator with its nested children
  - with --uuid and --data, the series of that channel

Failures are rendered as exception nodes in the document and make the
command exit non-zero.

# Examples

  vzview render --catalog catalog.yaml
  vzview render --catalog catalog.yaml --uuid 82bb6e40-00d5-11e0-9a3f-dd1f3ef8d2a4 --format json
  vzview render --catalog catalog.yaml --uuid 82bb6e40-00d5-11e0-9a3f-dd1f3ef8d2a4 --data --group hour`,
		Flags: []cli.Flag{
			catalogFlag,
			&cli.StringFlag{
				Name:    "uuid",
				Aliases: []string{"u"},
				Usage:   "entity to render (default: all root entities)",
			},
			&cli.BoolFlag{
				Name:  "data",
				Usage: "render the series of the entity instead of its properties",
			},
			&cli.StringFlag{
				Name:  "tuples",
				Usage: "maximum number of series tuples",
			},
			&cli.StringFlag{
				Name:  "group",
				Usage: "series grouping (minute, hour, day, week, month, year)",
			},
			debugFlag,
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(ctx, defaults.CLIRenderTimeout)
			defer cancel()

			r := &renderer{
				catalogPath: cmd.String("catalog"),
				uuid:        cmd.String("uuid"),
				data:        cmd.Bool("data"),
				opts: []view.Option{
					view.WithDebug(cmd.Bool("debug")),
					view.WithSeriesParams(cmd.String("tuples"), cmd.String("group")),
				},
			}
			doc, renderErr := r.render(ctx)

			ser := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer func() {
				if err := ser.Close(); err != nil {
					slog.Warn("failed to close serializer", "error", err)
				}
			}()

			if err := ser.Serialize(ctx, doc.Root()); err != nil {
				return fmt.Errorf("failed to write document: %w", err)
			}
			return renderErr
		},
	}
}

// renderer builds one document from a catalog.
type renderer struct {
	catalogPath string
	uuid        string
	data        bool
	opts        []view.Option
}

// render returns the document and the failure it carries, if any. The
// document is always usable.
func (r *renderer) render(ctx context.Context) (*view.Document, error) {
	doc := view.NewDocument(r.opts...)

	var rec *diagnostics.Recorder
	if doc.Options().Debug {
		rec = diagnostics.NewRecorder()
		tee := diagnostics.Tee(logging.FromContext(ctx).Handler(), rec.Handler(slog.LevelDebug))
		ctx = logging.NewContext(ctx, slog.New(tee))
	}

	err := r.add(ctx, doc, rec)
	if err != nil {
		doc.AddFailure(err)
	}

	if rec != nil {
		if berr := doc.Add(ctx, rec.Bundle()); berr != nil {
			slog.Warn("failed to add debug bundle", "error", berr)
		}
	}
	return doc, err
}

func (r *renderer) add(ctx context.Context, doc *view.Document, rec *diagnostics.Recorder) error {
	if r.data && r.uuid == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "--data requires --uuid")
	}

	c, err := catalog.Load(ctx, r.catalogPath)
	if err != nil {
		return err
	}

	query := func(q string) {
		if rec != nil {
			rec.Query(q)
		}
	}

	switch {
	case r.uuid == "":
		query("entities")
		for _, e := range c.Entities() {
			if err := doc.Add(ctx, e); err != nil {
				return err
			}
		}
		return nil
	case r.data:
		query("series " + r.uuid)
		h, err := c.Series(r.uuid)
		if err != nil {
			return err
		}
		return doc.Add(ctx, h)
	default:
		query("lookup " + r.uuid)
		e, err := c.Lookup(r.uuid)
		if err != nil {
			return err
		}
		return doc.Add(ctx, e)
	}
}
