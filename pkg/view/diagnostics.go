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
	"strconv"

	"github.com/volkszaehler/vzview/pkg/diagnostics"
	"github.com/volkszaehler/vzview/pkg/document"
	"github.com/volkszaehler/vzview/pkg/value"
)

// ConvertFailure converts a failure into an "exception" node. File, line
// and backtrace are only included in debug mode.
func (c *Converter) ConvertFailure(f *diagnostics.Failure) (*document.Node, error) {
	node := document.New("exception").
		SetAttr("code", f.Code).
		SetAttr("type", f.Type)
	node.Append(document.NewText("message", f.Message))

	if c.opts.Debug {
		node.Append(document.NewText("file", f.File))
		node.Append(document.NewText("line", strconv.Itoa(f.Line)))
		trace, err := c.ConvertTrace(f.Trace)
		if err != nil {
			return nil, err
		}
		node.Append(trace)
	}
	return node, nil
}

// ConvertMessage converts a diagnostic message into a "message" node.
func (c *Converter) ConvertMessage(m diagnostics.Message) (*document.Node, error) {
	node := document.New("message")
	node.Append(document.NewText("message", m.Text))

	if c.opts.Debug {
		node.Append(document.NewText("file", m.File))
		node.Append(document.NewText("line", strconv.Itoa(m.Line)))

		args := m.Args
		if args == nil {
			args = value.Sequence{}
		}
		argsNode, err := c.ConvertValue(args, "args", "arg")
		if err != nil {
			return nil, err
		}
		node.Append(argsNode)

		trace, err := c.ConvertTrace(m.Trace)
		if err != nil {
			return nil, err
		}
		node.Append(trace)
	}
	return node, nil
}

// ConvertTrace converts a stack trace into a "backtrace" node of "trace"
// nodes, each tagged with its step index.
func (c *Converter) ConvertTrace(trace diagnostics.StackTrace) (*document.Node, error) {
	node := document.New("backtrace")
	for step, fr := range trace {
		t := document.New("trace").SetAttr("step", strconv.Itoa(step))
		t.Append(document.NewText("file", fr.File))
		t.Append(document.NewText("line", strconv.Itoa(fr.Line)))
		t.Append(document.NewText("function", fr.Function))
		if fr.Type != "" {
			t.Append(document.NewText("class", fr.Type))
		}
		if fr.Args != nil {
			args, err := c.ConvertValue(fr.Args, "args", "arg")
			if err != nil {
				return nil, err
			}
			t.Append(args)
		}
		node.Append(t)
	}
	return node, nil
}

// ConvertBundle converts the diagnostic state of a request into a "debug"
// node with the execution time in seconds, messages and queries.
func (c *Converter) ConvertBundle(b *diagnostics.Bundle) (*document.Node, error) {
	node := document.New("debug")

	secs, err := c.format.Format(b.ExecutionTime.Seconds())
	if err != nil {
		return nil, err
	}
	node.Append(document.NewText("time", secs))

	messages := document.New("messages")
	for _, m := range b.Messages {
		n, err := c.ConvertMessage(m)
		if err != nil {
			return nil, err
		}
		messages.Append(n)
	}
	node.Append(messages)

	queries, err := c.ConvertValue(value.Strings(b.Queries), "queries", "query")
	if err != nil {
		return nil, err
	}
	node.Append(queries)
	return node, nil
}
