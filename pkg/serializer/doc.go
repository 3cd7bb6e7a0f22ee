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

// Package serializer renders document trees and reads structured input files.
//
// # Overview
//
// Documents built by the view package are plain element trees. This package
// turns them into bytes in one of three formats and, in the other direction,
// decodes JSON or YAML input files (entity catalogs) into Go values.
//
// # Supported Formats
//
// XML (default):
//   - The canonical representation served to volkszaehler clients
//   - Declaration `<?xml version="1.0" encoding="UTF-8"?>`, then the tree
//   - Node names that are not valid XML names are rewritten with '_'
//
// JSON:
//   - Each node is an object with name, attributes, text and children
//   - Attribute and child order is preserved
//
// YAML:
//   - Each node is a single-key mapping; attributes use an '@' prefix,
//     text uses '#text' and children are listed under '#children'
//
// # Writing
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatXML, path)
//	defer w.Close()
//	if err := w.Serialize(ctx, root); err != nil {
//		return err
//	}
//
// For HTTP responses, Respond encodes into a buffer before any header is
// written so a failed encoding never produces a partial body:
//
//	serializer.Respond(w, http.StatusOK, format, root)
//
// # Reading
//
//	r, err := serializer.NewFileReaderWithContext(ctx, serializer.FormatFromPath(path), path,
//		serializer.WithUserAgent(agent))
//	if err != nil {
//		return err
//	}
//	defer r.Close()
//	err = r.Deserialize(&catalog)
//
// Paths may also be http:// or https:// URLs; the content is fetched with
// HttpReader.
package serializer
