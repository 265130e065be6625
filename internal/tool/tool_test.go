package tool

import (
	"context"
	"geo-forensics-service/internal/adapters/exifmeta"
	"geo-forensics-service/internal/adapters/vision"
	"geo-forensics-service/internal/domain"
	"geo-forensics-service/internal/services"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrajectoryDistance(t *testing.T) {
	ctx := context.Background()
	req := &mcp.CallToolRequest{}

	tests := []struct {
		name           string
		input          InputTrajectoryDistance
		wantErr        bool
		errContains    string
		validateOutput func(t *testing.T, output OutputTrajectoryDistance)
	}{
		{
			name:  "no points",
			input: InputTrajectoryDistance{},
			validateOutput: func(t *testing.T, output OutputTrajectoryDistance) {
				assert.Zero(t, output.TotalDistanceKm)
				assert.Empty(t, output.LegsKm)
			},
		},
		{
			name:  "single point",
			input: InputTrajectoryDistance{Points: []Point{{Lat: 35.6586, Lon: 139.7454}}},
			validateOutput: func(t *testing.T, output OutputTrajectoryDistance) {
				assert.Zero(t, output.TotalDistanceKm)
			},
		},
		{
			name:  "three points sum consecutive legs",
			input: InputTrajectoryDistance{Points: []Point{{0, 0}, {0, 1}, {1, 1}}},
			validateOutput: func(t *testing.T, output OutputTrajectoryDistance) {
				require.Len(t, output.LegsKm, 2)
				assert.InDelta(t, output.LegsKm[0]+output.LegsKm[1], output.TotalDistanceKm, 1e-9)
				assert.InDelta(t, 111.195, output.LegsKm[0], 0.001)
			},
		},
		{
			name:        "out of range point",
			input:       InputTrajectoryDistance{Points: []Point{{0, 0}, {0, 181}}},
			wantErr:     true,
			errContains: "point 1 is out of range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output, err := TrajectoryDistance(ctx, req, tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			if tt.validateOutput != nil {
				tt.validateOutput(t, output)
			}
		})
	}
}

func writeImages(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func TestResolveEvidenceFolder(t *testing.T) {
	ctx := context.Background()
	req := &mcp.CallToolRequest{}

	model := vision.NewMockVisionModel(map[string][]vision.MockReply{
		"one":   {{Text: `{"name": "West", "lat": 0, "lng": 0}`}},
		"two":   {{Err: domain.ErrModelRefusal}},
		"three": {{Text: `{"name": "East", "lat": 0, "lng": 1}`}},
	})
	resolver := &Resolver{Pipeline: services.NewResolutionPipeline(
		exifmeta.NewExtractor(),
		services.NewLandmarkIdentifier(model, nil),
	)}

	tests := []struct {
		name           string
		input          InputResolveEvidenceFolder
		wantErr        bool
		errContains    string
		validateOutput func(t *testing.T, output OutputResolveEvidenceFolder)
	}{
		{
			name:        "empty folder path returns error",
			input:       InputResolveEvidenceFolder{},
			wantErr:     true,
			errContains: "folder is required",
		},
		{
			name:        "folder without images returns error",
			input:       InputResolveEvidenceFolder{Folder: writeImages(t, map[string]string{"readme.md": "x"})},
			wantErr:     true,
			errContains: "no images found",
		},
		{
			name: "images resolve in file-name order",
			input: InputResolveEvidenceFolder{Folder: writeImages(t, map[string]string{
				"01.jpg": "one",
				"02.jpg": "two",
				"03.png": "three",
			})},
			validateOutput: func(t *testing.T, output OutputResolveEvidenceFolder) {
				assert.NotEmpty(t, output.BatchID)
				assert.Equal(t, 2, output.Resolved)
				assert.Equal(t, 1, output.Failed)
				require.Len(t, output.Track, 2)
				assert.Equal(t, "01.jpg", output.Track[0].File)
				assert.Equal(t, "03.png", output.Track[1].File)
				require.Len(t, output.Diagnostics, 1)
				assert.Equal(t, domain.KindModelRefusal, output.Diagnostics[0].Kind)
				assert.InDelta(t, 111.195, output.TotalDistanceKm, 0.001)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output, err := resolver.ResolveEvidenceFolder(ctx, req, tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			if tt.validateOutput != nil {
				tt.validateOutput(t, output)
			}
		})
	}
}

func TestResolveEvidenceFolderNotConfigured(t *testing.T) {
	resolver := &Resolver{Pipeline: services.NewResolutionPipeline(
		exifmeta.NewExtractor(),
		services.NewLandmarkIdentifier(nil, nil),
	)}

	dir := writeImages(t, map[string]string{"a.jpg": "a"})
	_, _, err := resolver.ResolveEvidenceFolder(context.Background(), &mcp.CallToolRequest{}, InputResolveEvidenceFolder{Folder: dir})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrServiceUnavailable)
}

func TestNewServerListsTools(t *testing.T) {
	ctx := context.Background()
	server := NewServer("test", &Resolver{Pipeline: services.NewResolutionPipeline(exifmeta.NewExtractor())})

	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	defer serverSession.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "test"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer session.Close()

	res, err := session.ListTools(ctx, nil)
	require.NoError(t, err)

	names := make([]string, 0, len(res.Tools))
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"resolve_evidence_folder", "trajectory_distance"}, names)
}
