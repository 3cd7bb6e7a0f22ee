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

package view

import (
	"context"

	"github.com/volkszaehler/vzview/pkg/document"
	"github.com/volkszaehler/vzview/pkg/errors"
	"github.com/volkszaehler/vzview/pkg/logging"
	"github.com/volkszaehler/vzview/pkg/number"
	"github.com/volkszaehler/vzview/pkg/series"
)

// ConvertSeries drives production of h and converts it into a "data" node.
// Each produced tuple is turned into a "tuple" node as it arrives, so no
// more than one tuple is held at a time. The summary (uuid, min, max,
// average, consumption) precedes the "tuples" node.
func (c *Converter) ConvertSeries(ctx context.Context, h series.Handle, tuples, group string) (*document.Node, error) {
	entity := h.Entity()
	if entity == nil {
		return nil, errors.New(errors.ErrCodeInternal, "series handle is not bound to an entity")
	}

	tuplesNode := document.New("tuples")
	var produced int
	err := h.Process(ctx, tuples, group, func(t series.Tuple) error {
		v, err := c.format.Format(t.Value)
		if err != nil {
			return err
		}
		tuplesNode.Append(document.New("tuple").
			SetAttr("timestamp", number.FormatInt(t.Timestamp)).
			SetAttr("value", v).
			SetAttr("count", number.FormatInt(t.Count)))
		produced++
		return nil
	})
	if err != nil {
		return nil, err
	}
	tuplesProduced.Add(float64(produced))

	logging.FromContext(ctx).Debug("converted series",
		"uuid", entity.UUID,
		"tuples", produced)

	data := document.New("data")
	data.Append(document.NewText("uuid", entity.UUID))

	summary := []struct {
		name string
		v    float64
	}{
		{"min", h.Min()},
		{"max", h.Max()},
		{"average", h.Average()},
		{"consumption", h.Consumption()},
	}
	for _, s := range summary {
		text, err := c.format.Format(s.v)
		if err != nil {
			return nil, err
		}
		data.Append(document.NewText(s.name, text))
	}

	data.Append(tuplesNode)
	return data, nil
}
