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

// Package catalog loads entity definitions and their series from YAML.
//
// A catalog file lists top-level entities. Groups own children, either
// defined inline or referenced by UUID so a channel can belong to more than
// one group. Channels take their tuples from a CSV file (optionally zstd
// compressed) or inline:
//
//	entities:
//	  - uuid: 6836dd20-00d5-11e0-bab1-856ed5f959ae
//	    type: group
//	    properties:
//	      title: House
//	    children:
//	      - uuid: 82bb6e40-00d5-11e0-9a3f-dd1f3ef8d2a4
//	        type: power
//	        properties:
//	          title: Kitchen
//	          resolution: 2000
//	        data: kitchen.csv
//	      - ref: a1b2c3d4-0000-4000-8000-000000000001
//	  - uuid: a1b2c3d4-0000-4000-8000-000000000001
//	    type: gas
//	    tuples:
//	      - [1000, 1.5, 1]
//	      - [2000, 2.25, 3]
//
// Property order is kept as written. The catalog is validated on load:
// UUIDs must parse and be unique, types must be set and the hierarchy
// must be acyclic.
package catalog
