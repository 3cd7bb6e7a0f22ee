// Package api wires the entity catalog into the HTTP server.
//
// This package is a thin wrapper around the reusable pkg/server package: it
// loads the catalog named by the configuration and serves it. The vzviewd
// binary and the "vzview serve" command both start here.
//
// # Usage
//
//	func main() {
//	    ctx := context.Background()
//	    if err := api.Serve(ctx); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// # Configuration
//
// Serve reads its configuration from the environment, see server.NewConfig.
// VZ_CATALOG must name a catalog file or URL.
//
// # Version Information
//
// Version, commit and date are set at build time with -ldflags:
//
//	go build -ldflags="-X 'github.com/volkszaehler/vzview/pkg/api.version=v1.0.0'"
package api
