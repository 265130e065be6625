package tool

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer returns an MCP server exposing the geolocation tools.
func NewServer(version string, resolver *Resolver) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "geoforensics", Version: version}, nil)

	mcp.AddTool(server, MetadataResolveEvidenceFolder, resolver.ResolveEvidenceFolder)
	mcp.AddTool(server, MetadataTrajectoryDistance, TrajectoryDistance)

	return server
}
