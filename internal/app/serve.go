// internal/app/serve.go
package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"primertail/internal/httpapi"
	"primertail/internal/mcp"
	"primertail/internal/store"
	"primertail/internal/version"
)

func newServeCmd(e *env) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve primer design, tailing and Tm as JSON over HTTP:
  POST /api/v1/design, /api/v1/tail, /api/v1/tm
  GET  /api/v1/primers, /api/v1/primers/{id}, /healthz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = e.cfg.HTTPAddr
			}
			return e.withStore(func(st *store.Store) error {
				return httpapi.NewServer(e.settings, st, e.logger).ListenAndServe(cmd.Context(), addr)
			})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from PRIMERTAIL_HTTP_ADDR, 127.0.0.1:8080)")
	return cmd
}

func newMCPCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the Model Context Protocol tools on stdio",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return e.withStore(func(st *store.Store) error {
				return mcp.NewServer(e.settings, st, e.logger).ServeStdio()
			})
		},
	}
}

func newVersionCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(e.stdout, "primertail %s (commit %s)\n", version.Version, version.Commit)
			return err
		},
	}
}
