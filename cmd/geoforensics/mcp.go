package main

import (
	"geo-forensics-service/internal/tool"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

func newMCPCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the geolocation tools over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := root.buildApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			server := tool.NewServer(version, &tool.Resolver{Pipeline: a.Pipeline})
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
