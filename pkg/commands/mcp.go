package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/syncvault/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command) {
	var transport string
	r := &mcp.Runner{}

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the signed-in session over the Model Context Protocol.",
		Long: `Launch an MCP server that lets assistants search, read, save and delete
snippets with the signed-in session. New snippets are saved from the
selected device.`,
		Example: `
syncvault mcp
syncvault mcp --transport stdio
syncvault mcp --http-port 0
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			t, err := mcp.ParseTransport(transport)
			if err != nil {
				return err
			}
			e, err := load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.Close()

			r.Service = e.Service
			r.Version = Version
			r.Transport = t
			r.Log = e.Log
			r.Ready = func(url string) {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "MCP HTTP server listening on %s\n", url)
			}
			return r.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&transport, "transport", string(mcp.TransportHTTP), "Transport to use: http or stdio.")
	cmd.Flags().StringVar(&r.Endpoint.Host, "http-host", "127.0.0.1", "Interface for the HTTP transport.")
	cmd.Flags().IntVar(&r.Endpoint.Port, "http-port", 8080, "Port for the HTTP transport, 0 picks a free one.")
	cmd.Flags().StringVar(&r.Endpoint.Path, "http-path", "/mcp", "HTTP endpoint path.")
	cmd.Flags().StringVar(&r.Endpoint.CertFile, "http-tls-cert", "", "TLS certificate file for HTTPS.")
	cmd.Flags().StringVar(&r.Endpoint.KeyFile, "http-tls-key", "", "TLS private key file for HTTPS.")

	topLevel.AddCommand(cmd)
}
