// Package cli implements the command-line interface of the vzview tool.
//
// # Overview
//
// vzview renders entities and series of a catalog as volkszaehler
// documents, or serves them over HTTP.
//
// # Commands
//
// render - Render a document:
//
//	vzview render --catalog FILE [--uuid UUID] [--data] [--tuples N] [--group G]
//	              [--format xml|json|yaml] [--output FILE] [--debug]
//
// Without --uuid every root entity of the catalog is rendered. With --uuid
// the entity, or the aggregator with its nested children, is rendered; with
// --data the series of that channel instead. Failures are rendered as
// exception nodes and the command exits non-zero.
//
// serve - Start the HTTP server:
//
//	vzview serve --catalog FILE [--port 8080] [--debug]
//
// # Global Flags
//
//	--log-level    Log level: debug, info, warn, error (default: info)
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// # Environment
//
//	VZ_CATALOG   Default for --catalog
//	VZ_DEBUG     Default for --debug
//	LOG_LEVEL    Default for --log-level
//	PORT         Default for --port
//
// # Output Formats
//
// XML (default):
//   - The volkszaehler document format
//
// JSON:
//   - Tree of name, attributes, text and children
//
// YAML:
//   - Element name keys, @-prefixed attributes, #text and #children
package cli
