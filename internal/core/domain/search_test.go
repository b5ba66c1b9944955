package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewSearchResponse_TotalMatchesResults tests the envelope invariant
func TestNewSearchResponse_TotalMatchesResults(t *testing.T) {
	results := []SearchResult{
		{Name: "tokio"},
		{Name: "serde"},
	}

	resp := NewSearchResponse(results, "async runtime")

	assert.Equal(t, 2, resp.Total)
	assert.Len(t, resp.Results, 2)
	assert.Equal(t, "async runtime", resp.Query)
}

// TestNewSearchResponse_NilResults tests nil normalizes to empty, not null
func TestNewSearchResponse_NilResults(t *testing.T) {
	resp := NewSearchResponse(nil, "nothing")

	require.NotNil(t, resp.Results)
	assert.Empty(t, resp.Results)
	assert.Equal(t, 0, resp.Total)
	assert.Equal(t, "nothing", resp.Query)
}

// TestNewSearchResponse_EchoesRawQuery tests the query is not normalized
func TestNewSearchResponse_EchoesRawQuery(t *testing.T) {
	resp := NewSearchResponse([]SearchResult{}, "  HTTP Client  ")

	assert.Equal(t, "  HTTP Client  ", resp.Query)
}

// TestCratesURL_Template tests the fixed derivation template
func TestCratesURL_Template(t *testing.T) {
	assert.Equal(t, "https://crates.io/crates/tokio", CratesURL("tokio"))
	assert.Equal(t, "https://crates.io/crates/serde_json", CratesURL("serde_json"))
}

// TestResultFromRecord_Projection tests field mapping from a record
func TestResultFromRecord_Projection(t *testing.T) {
	rec := NewRecord(RecordDraft{
		Title:       "hyper",
		Content:     "A fast HTTP implementation",
		RepoURL:     "https://github.com/hyperium/hyper",
		Description: "HTTP library",
	}, "rec-1", time.Now())

	result := ResultFromRecord(rec)

	assert.Equal(t, "hyper", result.Name)
	assert.Equal(t, "HTTP library", result.Description)
	assert.Equal(t, "A fast HTTP implementation", result.Readme)
	assert.Equal(t, "https://github.com/hyperium/hyper", result.Repository)
	assert.Equal(t, "https://crates.io/crates/hyper", result.CratesURL)
}

// TestResultFromRecord_ExplicitPackageURL tests an explicit URL wins over derivation
func TestResultFromRecord_ExplicitPackageURL(t *testing.T) {
	rec := NewRecord(RecordDraft{
		Title:      "left-pad",
		Content:    "padding",
		PackageURL: "https://example.com/packages/left-pad",
	}, "rec-1", time.Now())

	result := ResultFromRecord(rec)

	assert.Equal(t, "https://example.com/packages/left-pad", result.CratesURL)
}

// TestResultFromRecord_AbsentFieldsAreEmpty tests absence maps to empty strings
func TestResultFromRecord_AbsentFieldsAreEmpty(t *testing.T) {
	rec := NewRecord(RecordDraft{Title: "bare", Content: "minimal"}, "rec-1", time.Now())

	result := ResultFromRecord(rec)

	assert.Equal(t, "", result.Description)
	assert.Equal(t, "", result.Repository)
	assert.NotEmpty(t, result.CratesURL)
}

// TestResultsFromRecords_PreservesOrder tests projection keeps ordering
func TestResultsFromRecords_PreservesOrder(t *testing.T) {
	now := time.Now()
	records := []Record{
		NewRecord(RecordDraft{Title: "b-second", Content: "x"}, "2", now),
		NewRecord(RecordDraft{Title: "a-first", Content: "x"}, "1", now),
	}

	results := ResultsFromRecords(records)

	require.Len(t, results, 2)
	assert.Equal(t, "b-second", results[0].Name)
	assert.Equal(t, "a-first", results[1].Name)
}

// TestResultsFromRecords_Empty tests empty input yields empty, never nil
func TestResultsFromRecords_Empty(t *testing.T) {
	results := ResultsFromRecords(nil)

	require.NotNil(t, results)
	assert.Empty(t, results)
}
