package httpapi

import (
	"time"

	"github.com/rustyrag/rustyrag/internal/core/domain"
)

// draftJSON is the client-supplied record body.
type draftJSON struct {
	Title       string          `json:"title"`
	Content     string          `json:"content"`
	RepoURL     string          `json:"repo_url"`
	PackageURL  string          `json:"package_url"`
	Description string          `json:"description"`
	Tags        []string        `json:"tags"`
	Metadata    domain.Metadata `json:"metadata"`
}

func (d draftJSON) draft() domain.RecordDraft {
	return domain.RecordDraft{
		Title:       d.Title,
		Content:     d.Content,
		RepoURL:     d.RepoURL,
		PackageURL:  d.PackageURL,
		Description: d.Description,
		Tags:        d.Tags,
		Metadata:    d.Metadata,
	}
}

// recordJSON is the full record projection served by the CRUD endpoints.
type recordJSON struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Content     string          `json:"content"`
	RepoURL     string          `json:"repo_url"`
	PackageURL  string          `json:"package_url"`
	Description string          `json:"description"`
	Tags        []string        `json:"tags"`
	Metadata    domain.Metadata `json:"metadata"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func recordToJSON(r domain.Record) recordJSON {
	return recordJSON{
		ID:          r.ID,
		Title:       r.Title,
		Content:     r.Content,
		RepoURL:     r.RepoURL,
		PackageURL:  r.PackageURL,
		Description: r.Description,
		Tags:        r.Tags,
		Metadata:    r.Metadata,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// recordsToJSON projects records in order. Never returns nil so the wire
// shape is always an array.
func recordsToJSON(records []domain.Record) []recordJSON {
	out := make([]recordJSON, len(records))
	for i, r := range records {
		out[i] = recordToJSON(r)
	}
	return out
}

// searchRequestJSON is the POST /search body.
type searchRequestJSON struct {
	Query string   `json:"query"`
	Limit int      `json:"limit"`
	Tags  []string `json:"tags"`
}

// resultJSON is the search projection served by both search endpoints.
type resultJSON struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Readme      string `json:"readme"`
	CratesURL   string `json:"crates_url"`
	Repository  string `json:"repository"`
}

// searchResponseJSON is the search envelope.
type searchResponseJSON struct {
	Results []resultJSON `json:"results"`
	Total   int          `json:"total"`
	Query   string       `json:"query"`
}

func responseToJSON(resp domain.SearchResponse) searchResponseJSON {
	results := make([]resultJSON, len(resp.Results))
	for i, r := range resp.Results {
		results[i] = resultJSON{
			Name:        r.Name,
			Description: r.Description,
			Readme:      r.Readme,
			CratesURL:   r.CratesURL,
			Repository:  r.Repository,
		}
	}
	return searchResponseJSON{
		Results: results,
		Total:   resp.Total,
		Query:   resp.Query,
	}
}
