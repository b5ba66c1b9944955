package domain

// Search limits. Requested limits above MaxSearchLimit are clamped, never
// rejected; a missing or non-positive limit falls back to the default.
const (
	MaxSearchLimit     = 100
	DefaultSearchLimit = 10
)

// cratesBaseURL is the fixed template for deriving a package-listing URL
// from a package name.
const cratesBaseURL = "https://crates.io/crates/"

// SearchQuery is the input both search strategies accept.
type SearchQuery struct {
	// Text is the free-text query, passed through non-normalized.
	Text string

	// Limit is the maximum number of results, already clamped by the caller.
	Limit int

	// Tags filters matches to records sharing at least one of these tags
	// (OR semantics). Only the local matcher honours it; empty passes all.
	Tags []string
}

// SearchOptions configures a search request before clamping.
type SearchOptions struct {
	// Limit is the maximum number of results. Non-positive means default.
	Limit int

	// Tags filters local matches by tag overlap.
	Tags []string

	// Mode overrides the configured search mode when valid.
	Mode SearchMode
}

// SearchResult is the display projection served by both search paths.
// Field absence in a source maps to an empty string, never null.
type SearchResult struct {
	// Name is the package name (the record title for local matches).
	Name string `json:"name"`

	// Description is the short summary.
	Description string `json:"description"`

	// Readme is the full text body (the record content for local matches).
	Readme string `json:"readme"`

	// CratesURL is the package-listing page, derived from Name when the
	// source carries no explicit package URL.
	CratesURL string `json:"crates_url"`

	// Repository is the source repository URL.
	Repository string `json:"repository"`
}

// SearchResponse is the uniform envelope both search endpoints return.
type SearchResponse struct {
	// Results are the matches, already truncated upstream.
	Results []SearchResult `json:"results"`

	// Total is len(Results); truncation happens before assembly.
	Total int `json:"total"`

	// Query echoes the original, non-normalized query text.
	Query string `json:"query"`
}

// NewSearchResponse assembles the response envelope. Pure; a nil result
// slice normalizes to empty so the wire shape is never null.
func NewSearchResponse(results []SearchResult, query string) SearchResponse {
	if results == nil {
		results = []SearchResult{}
	}
	return SearchResponse{
		Results: results,
		Total:   len(results),
		Query:   query,
	}
}

// CratesURL derives the package-listing URL for a package name.
func CratesURL(name string) string {
	return cratesBaseURL + name
}

// ResultFromRecord projects a Record into the search result shape.
func ResultFromRecord(r Record) SearchResult {
	cratesURL := r.PackageURL
	if cratesURL == "" {
		cratesURL = CratesURL(r.Title)
	}
	return SearchResult{
		Name:        r.Title,
		Description: r.Description,
		Readme:      r.Content,
		CratesURL:   cratesURL,
		Repository:  r.RepoURL,
	}
}

// ResultsFromRecords projects records in order. Never returns nil.
func ResultsFromRecords(records []Record) []SearchResult {
	results := make([]SearchResult, len(records))
	for i, r := range records {
		results[i] = ResultFromRecord(r)
	}
	return results
}
