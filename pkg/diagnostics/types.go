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

package diagnostics

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"time"

	vzerrors "github.com/volkszaehler/vzview/pkg/errors"
	"github.com/volkszaehler/vzview/pkg/value"
)

// Frame is one call-stack entry.
type Frame struct {
	File     string
	Line     int
	Function string
	Type     string
	Args     value.Sequence
}

// StackTrace is an ordered call stack, innermost frame first.
type StackTrace []Frame

// Failure describes an error in renderable form.
type Failure struct {
	Code    string
	Type    string
	Message string
	File    string
	Line    int
	Trace   StackTrace
}

// Error implements the error interface.
func (f *Failure) Error() string {
	return fmt.Sprintf("[%s] %s", f.Code, f.Message)
}

// Message is a diagnostic message recorded during a request.
type Message struct {
	Text  string
	File  string
	Line  int
	Args  value.Value
	Trace StackTrace
}

// Bundle is the diagnostic state of a request.
type Bundle struct {
	ExecutionTime time.Duration
	Messages      []Message
	Queries       []string
}

// NewFailure converts err into a Failure. The code is taken from the
// outermost structured error in the chain; the type is the dynamic type of
// that error; file, line and trace point at the caller of NewFailure.
func NewFailure(err error) *Failure {
	return newFailure(err, 2)
}

func newFailure(err error, skip int) *Failure {
	if err == nil {
		return nil
	}
	if f, ok := err.(*Failure); ok {
		return f
	}

	trace := Capture(skip)
	f := &Failure{
		Code:    string(vzerrors.CodeOf(err)),
		Type:    errorType(err),
		Message: err.Error(),
		Trace:   trace,
	}
	if len(trace) > 0 {
		f.File = trace[0].File
		f.Line = trace[0].Line
	}
	return f
}

func errorType(err error) string {
	return reflect.TypeOf(err).String()
}

// Capture returns the call stack of its caller, omitting the innermost
// skip frames.
func Capture(skip int) StackTrace {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return nil
	}

	frames := runtime.CallersFrames(pcs[:n])
	var trace StackTrace
	for {
		fr, more := frames.Next()
		typ, fn := splitFunction(fr.Function)
		trace = append(trace, Frame{
			File:     fr.File,
			Line:     fr.Line,
			Function: fn,
			Type:     typ,
		})
		if !more {
			break
		}
	}
	return trace
}

// splitFunction splits a qualified Go function name such as
// "pkg/path.(*Type).Method" into its receiver type and function name.
func splitFunction(qualified string) (string, string) {
	slash := strings.LastIndex(qualified, "/")
	rest := qualified[slash+1:]
	parts := strings.Split(rest, ".")
	if len(parts) < 2 {
		return "", qualified
	}
	pkg := qualified[:slash+1] + parts[0]
	if len(parts) > 2 && strings.HasPrefix(parts[1], "(") {
		recv := strings.Trim(parts[1], "()")
		return pkg + "." + recv, strings.Join(parts[2:], ".")
	}
	return "", pkg + "." + strings.Join(parts[1:], ".")
}
