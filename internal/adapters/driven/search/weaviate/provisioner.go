package weaviate

import (
	"context"
	"fmt"

	"github.com/weaviate/weaviate/entities/models"

	"github.com/rustyrag/rustyrag/internal/core/domain"
	"github.com/rustyrag/rustyrag/internal/core/ports/driven"
)

// Ensure Provisioner implements the interface.
var _ driven.CollectionProvisioner = (*Provisioner)(nil)

// vectorizer is the server-side embedding module the collection uses.
const vectorizer = "text2vec-weaviate"

// Provisioner manages the package collection schema.
type Provisioner struct {
	cfg Config
}

// NewProvisioner creates a provisioner for the given cluster config.
func NewProvisioner(cfg Config) *Provisioner {
	return &Provisioner{cfg: cfg}
}

// Recreate drops the collection if present and creates it fresh.
// Existing objects are destroyed.
func (p *Provisioner) Recreate(ctx context.Context) error {
	if !p.cfg.IsConfigured() {
		return domain.ErrNotConfigured
	}

	client, release, err := p.cfg.connect()
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrUpstream, err)
	}
	defer release()

	class := p.cfg.collection()

	exists, err := client.Schema().ClassExistenceChecker().
		WithClassName(class).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("%w: check class: %w", domain.ErrUpstream, err)
	}
	if exists {
		if err := client.Schema().ClassDeleter().WithClassName(class).Do(ctx); err != nil {
			return fmt.Errorf("%w: delete class: %w", domain.ErrUpstream, err)
		}
	}

	if err := client.Schema().ClassCreator().WithClass(p.classDefinition()).Do(ctx); err != nil {
		return fmt.Errorf("%w: create class: %w", domain.ErrUpstream, err)
	}
	return nil
}

// Ready reports whether the cluster is reachable and serving.
func (p *Provisioner) Ready(ctx context.Context) error {
	if !p.cfg.IsConfigured() {
		return domain.ErrNotConfigured
	}

	client, release, err := p.cfg.connect()
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrUpstream, err)
	}
	defer release()

	ready, err := client.Misc().ReadyChecker().Do(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrUpstream, err)
	}
	if !ready {
		return fmt.Errorf("%w: cluster reports not ready", domain.ErrUpstream)
	}
	return nil
}

// classDefinition builds the collection schema: text properties vectorized
// server-side, except repository which is stored verbatim.
func (p *Provisioner) classDefinition() *models.Class {
	return &models.Class{
		Class:      p.cfg.collection(),
		Vectorizer: vectorizer,
		ModuleConfig: map[string]any{
			vectorizer: map[string]any{
				"model": p.cfg.model(),
			},
		},
		Properties: []*models.Property{
			{Name: "name", DataType: []string{"text"}},
			{Name: "readme", DataType: []string{"text"}},
			{Name: "description", DataType: []string{"text"}},
			{
				Name:     "repository",
				DataType: []string{"text"},
				ModuleConfig: map[string]any{
					vectorizer: map[string]any{"skip": true},
				},
			},
		},
	}
}
