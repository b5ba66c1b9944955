// Package weaviate provides the semantic search strategy backed by a
// Weaviate cluster, plus the collection provisioner and batch writer the
// ingest pipeline uses. Every operation opens its own connection and
// releases it when the round-trip finishes.
package weaviate

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	wv "github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/auth"

	"github.com/rustyrag/rustyrag/internal/core/domain"
)

// Default configuration values.
const (
	DefaultCollection = "Crates"
	DefaultModel      = "Snowflake/snowflake-arctic-embed-l-v2.0"
	DefaultTimeout    = 30 * time.Second
)

// Config holds connection settings for the cluster.
type Config struct {
	// URL is the cluster endpoint, with or without a scheme.
	URL string

	// APIKey authenticates against the cluster.
	APIKey string

	// Collection is the class holding package objects (default: Crates).
	Collection string

	// Model is the server-side vectorizer model.
	Model string

	// Timeout bounds each round-trip (default: 30s).
	Timeout time.Duration
}

// ConfigFromSettings maps application settings into a connection config.
func ConfigFromSettings(s domain.WeaviateSettings) Config {
	cfg := Config{
		URL:        s.URL,
		APIKey:     s.APIKey,
		Collection: s.Collection,
		Model:      s.Model,
	}
	if s.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(s.TimeoutSeconds) * time.Second
	}
	return cfg
}

// IsConfigured returns true if the connection can be attempted.
func (c Config) IsConfigured() bool {
	return c.URL != "" && c.APIKey != ""
}

func (c Config) collection() string {
	if c.Collection == "" {
		return DefaultCollection
	}
	return c.Collection
}

func (c Config) model() string {
	if c.Model == "" {
		return DefaultModel
	}
	return c.Model
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}

// connect builds a client scoped to one request. The release func closes
// the connections the round-trip opened; callers defer it unconditionally.
func (c Config) connect() (*wv.Client, func(), error) {
	host, scheme, err := splitURL(c.URL)
	if err != nil {
		return nil, nil, err
	}

	httpClient := &http.Client{Timeout: c.timeout()}
	client, err := wv.NewClient(wv.Config{
		Host:             host,
		Scheme:           scheme,
		AuthConfig:       auth.ApiKey{Value: c.APIKey},
		ConnectionClient: httpClient,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect %s: %w", host, err)
	}

	release := func() { httpClient.CloseIdleConnections() }
	return client, release, nil
}

// splitURL separates a cluster URL into host and scheme. A bare host
// defaults to https, matching managed cluster endpoints.
func splitURL(raw string) (host, scheme string, err error) {
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("parse cluster url: %w", err)
	}
	if u.Host == "" {
		return "", "", fmt.Errorf("parse cluster url %q: no host", raw)
	}
	return u.Host, u.Scheme, nil
}
