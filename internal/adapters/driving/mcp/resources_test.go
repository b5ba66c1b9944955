package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyrag/rustyrag/internal/core/domain"
)

func TestExtractRecordID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid record URI",
			uri:      "rustyrag://records/rec-123",
			expected: "rec-123",
		},
		{
			name:     "invalid prefix",
			uri:      "file://records/rec-123",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extractRecordID(tt.uri)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleStatsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil settings service degrades gracefully", func(t *testing.T) {
		ports := &Ports{
			Records: &mockRecordService{count: 3},
			Search:  &mockSearchService{mode: domain.SearchModeLocal},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := makeReadResourceRequest("rustyrag://stats")
		result, err := server.handleStatsResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Contains(t, result.Contents[0].Text, `"records": 3`)
		assert.Contains(t, result.Contents[0].Text, `"search_mode": "local"`)
		assert.NotContains(t, result.Contents[0].Text, "storage_backend")
	})

	t.Run("reports backends from settings", func(t *testing.T) {
		settings := domain.DefaultAppSettings()
		settings.Storage.Backend = domain.StorageSQLite
		settings.Weaviate.URL = "https://cluster.weaviate.network"
		settings.Weaviate.APIKey = "key"

		ports := &Ports{
			Records:  &mockRecordService{count: 42},
			Search:   &mockSearchService{mode: domain.SearchModeSemantic},
			Settings: &mockSettingsService{settings: &settings},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := makeReadResourceRequest("rustyrag://stats")
		result, err := server.handleStatsResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Contains(t, result.Contents[0].Text, `"records": 42`)
		assert.Contains(t, result.Contents[0].Text, `"search_mode": "semantic"`)
		assert.Contains(t, result.Contents[0].Text, `"storage_backend": "sqlite"`)
		assert.Contains(t, result.Contents[0].Text, `"vector_backend_configured": true`)
	})

	t.Run("returns error on count failure", func(t *testing.T) {
		ports := &Ports{
			Records: &mockRecordService{err: errors.New("store offline")},
			Search:  &mockSearchService{},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := makeReadResourceRequest("rustyrag://stats")
		_, err = server.handleStatsResource(ctx, req)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "counting records")
	})
}

func TestServer_handleRecordResource(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid URI returns not found", func(t *testing.T) {
		ports := newTestPorts()
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := makeReadResourceRequest("rustyrag://invalid/uri")
		_, err = server.handleRecordResource(ctx, req)

		require.Error(t, err)
	})

	t.Run("returns the record as JSON", func(t *testing.T) {
		mockRecords := &mockRecordService{
			record: domain.Record{
				ID:      "rec-1",
				Title:   "serde",
				Content: "# Serde",
				Tags:    []string{"rust"},
			},
		}
		ports := &Ports{Records: mockRecords, Search: &mockSearchService{}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := makeReadResourceRequest("rustyrag://records/rec-1")
		result, err := server.handleRecordResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, `"id": "rec-1"`)
		assert.Contains(t, result.Contents[0].Text, `"title": "serde"`)
	})

	t.Run("missing record returns not found", func(t *testing.T) {
		mockRecords := &mockRecordService{err: domain.ErrNotFound}
		ports := &Ports{Records: mockRecords, Search: &mockSearchService{}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := makeReadResourceRequest("rustyrag://records/rec-404")
		_, err = server.handleRecordResource(ctx, req)

		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("returns error on store failure", func(t *testing.T) {
		mockRecords := &mockRecordService{err: errors.New("store offline")}
		ports := &Ports{Records: mockRecords, Search: &mockSearchService{}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := makeReadResourceRequest("rustyrag://records/rec-1")
		_, err = server.handleRecordResource(ctx, req)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "getting record")
	})
}
