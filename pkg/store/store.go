package store

import (
	"context"
	"encoding/json"
)

// License is the license of the cluster backing the store.
type License struct {
	Status string `json:"status"`
	Type   string `json:"type"`
}

// Active returns true if the license can be used.
func (l License) Active() bool {
	return l.Status == "active"
}

// Store interface defines access to the pipeline store backend.
// Pipeline definitions are owned by the store, implementations never cache them.
type Store interface {
	// GetPipeline returns the definition of the pipeline with the given id.
	GetPipeline(ctx context.Context, id string) (json.RawMessage, error)

	// PutPipeline creates or overwrites the pipeline with the given id and returns the raw store response.
	PutPipeline(ctx context.Context, id string, body interface{}) (json.RawMessage, error)

	// DeletePipeline deletes the pipeline with the given id and returns the raw store response.
	DeletePipeline(ctx context.Context, id string) (json.RawMessage, error)

	// ListPipelines returns all the pipeline definitions keyed by id.
	ListPipelines(ctx context.Context) (map[string]json.RawMessage, error)

	// License returns the license of the store.
	License(ctx context.Context) (License, error)
}
