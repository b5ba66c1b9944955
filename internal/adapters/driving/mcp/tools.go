package mcp

import (
	"context"
	"errors"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rustyrag/rustyrag/internal/core/domain"
)

// SearchInput is the input schema for the search_packages tool.
type SearchInput struct {
	Query    string   `json:"query" jsonschema:"the text to search packages for"`
	Limit    int      `json:"limit,omitempty" jsonschema:"maximum number of results (default 10, capped at 100)"`
	Tags     []string `json:"tags,omitempty" jsonschema:"only match records carrying at least one of these tags"`
	Semantic bool     `json:"semantic,omitempty" jsonschema:"force the vector backend instead of the configured mode"`
}

// SearchOutput is the output schema for the search_packages tool.
type SearchOutput struct {
	Results []ResultOutput `json:"results"`
	Total   int            `json:"total"`
	Query   string         `json:"query"`
}

// ResultOutput is a single search hit.
type ResultOutput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Readme      string `json:"readme,omitempty"`
	CratesURL   string `json:"crates_url,omitempty"`
	Repository  string `json:"repository,omitempty"`
}

// GetRecordInput is the input schema for the get_record tool.
type GetRecordInput struct {
	ID string `json:"id" jsonschema:"the record identifier"`
}

// RecordOutput is the full record projection.
type RecordOutput struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Content     string         `json:"content"`
	RepoURL     string         `json:"repo_url,omitempty"`
	PackageURL  string         `json:"package_url,omitempty"`
	Description string         `json:"description,omitempty"`
	Tags        []string       `json:"tags"`
	Metadata    map[string]any `json:"metadata"`
	CreatedAt   string         `json:"created_at"`
	UpdatedAt   string         `json:"updated_at"`
}

// ListRecordsInput is the input schema for the list_records tool.
type ListRecordsInput struct {
	Limit  int `json:"limit,omitempty" jsonschema:"page size (default 50)"`
	Offset int `json:"offset,omitempty" jsonschema:"records to skip from the newest end"`
}

// ListRecordsOutput is the output schema for the list_records tool.
type ListRecordsOutput struct {
	Records []RecordOutput `json:"records"`
	Count   int            `json:"count"`
}

// CreateRecordInput is the input schema for the create_record tool.
type CreateRecordInput struct {
	Title       string         `json:"title" jsonschema:"the package name"`
	Content     string         `json:"content" jsonschema:"the full text body, typically the readme"`
	RepoURL     string         `json:"repo_url,omitempty" jsonschema:"source repository URL"`
	PackageURL  string         `json:"package_url,omitempty" jsonschema:"package listing page URL"`
	Description string         `json:"description,omitempty" jsonschema:"short summary"`
	Tags        []string       `json:"tags,omitempty" jsonschema:"free-form labels"`
	Metadata    map[string]any `json:"metadata,omitempty" jsonschema:"key-value pairs; strings, numbers, bools and nested maps only"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_packages",
		Description: "Search the developer-package records",
	}, s.handleSearchPackages)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_record",
		Description: "Fetch one package record by ID",
	}, s.handleGetRecord)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_records",
		Description: "List package records newest-first with pagination",
	}, s.handleListRecords)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "create_record",
		Description: "Store a new package record",
	}, s.handleCreateRecord)
}

// handleSearchPackages handles the search_packages tool invocation.
func (s *Server) handleSearchPackages(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	opts := domain.SearchOptions{
		Limit: input.Limit,
		Tags:  input.Tags,
	}
	if input.Semantic {
		opts.Mode = domain.SearchModeSemantic
	}

	resp, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, toolError(err)
	}

	output := SearchOutput{
		Results: make([]ResultOutput, len(resp.Results)),
		Total:   resp.Total,
		Query:   resp.Query,
	}
	for i, r := range resp.Results {
		output.Results[i] = ResultOutput{
			Name:        r.Name,
			Description: r.Description,
			Readme:      r.Readme,
			CratesURL:   r.CratesURL,
			Repository:  r.Repository,
		}
	}

	return nil, output, nil
}

// handleGetRecord handles the get_record tool invocation.
func (s *Server) handleGetRecord(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetRecordInput,
) (*mcp.CallToolResult, RecordOutput, error) {
	record, err := s.ports.Records.Get(ctx, input.ID)
	if err != nil {
		return nil, RecordOutput{}, toolError(err)
	}
	return nil, recordOutput(record), nil
}

// handleListRecords handles the list_records tool invocation.
func (s *Server) handleListRecords(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListRecordsInput,
) (*mcp.CallToolResult, ListRecordsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := input.Offset
	if offset < 0 {
		offset = 0
	}

	records, err := s.ports.Records.List(ctx, limit, offset)
	if err != nil {
		return nil, ListRecordsOutput{}, toolError(err)
	}

	output := ListRecordsOutput{
		Records: make([]RecordOutput, len(records)),
		Count:   len(records),
	}
	for i, r := range records {
		output.Records[i] = recordOutput(r)
	}

	return nil, output, nil
}

// handleCreateRecord handles the create_record tool invocation.
func (s *Server) handleCreateRecord(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CreateRecordInput,
) (*mcp.CallToolResult, RecordOutput, error) {
	meta, err := domain.MetadataFromPlain(input.Metadata)
	if err != nil {
		return nil, RecordOutput{}, toolError(err)
	}

	draft := domain.RecordDraft{
		Title:       input.Title,
		Content:     input.Content,
		RepoURL:     input.RepoURL,
		PackageURL:  input.PackageURL,
		Description: input.Description,
		Tags:        input.Tags,
		Metadata:    meta,
	}

	record, err := s.ports.Records.Create(ctx, draft)
	if err != nil {
		return nil, RecordOutput{}, toolError(err)
	}
	return nil, recordOutput(record), nil
}

// recordOutput projects a record into the tool output shape.
func recordOutput(r domain.Record) RecordOutput {
	return RecordOutput{
		ID:          r.ID,
		Title:       r.Title,
		Content:     r.Content,
		RepoURL:     r.RepoURL,
		PackageURL:  r.PackageURL,
		Description: r.Description,
		Tags:        r.Tags,
		Metadata:    r.Metadata.Plain(),
		CreatedAt:   r.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt:   r.UpdatedAt.Format(time.RFC3339Nano),
	}
}

// toolError keeps what the agent sees readable: backend sentinels get a
// fixed message, domain validation errors pass through as written.
func toolError(err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return errors.New("record not found")
	case errors.Is(err, domain.ErrBatchTooLarge):
		return errors.New("batch size cannot exceed 100 records")
	case errors.Is(err, domain.ErrNotConfigured):
		return errors.New("semantic search is not configured: set weaviate.url and weaviate.api_key first")
	case errors.Is(err, domain.ErrUpstream):
		return errors.New("the vector backend could not serve the request")
	default:
		return err
	}
}
