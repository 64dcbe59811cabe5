// Package store persists datasets and animation definitions for the
// HTTP service.
//
// This package defines interfaces for record storage with implementations
// for different backends:
//   - memory: In-memory storage for development/testing
//   - mongo: MongoDB-backed storage for production deployments
//
// # Architecture
//
// The service stores two kinds of records. Dataset records hold an
// uploaded dataset in its JSON wire form together with a content hash;
// animation records hold a transition definition (strategy, view chain,
// parameters) referencing a dataset by ID. Prepared geometry is never
// stored here; it lives in the cache, keyed by the content hash, and is
// rebuilt on demand.
//
// # Usage
//
// Create a store:
//
//	// Development
//	st := store.NewMemoryStore()
//
//	// Production
//	st, err := store.NewMongoStore(ctx, store.MongoConfig{
//	    URI: "mongodb://localhost:27017",
//	})
//
// Manage records:
//
//	rec := &store.DatasetRecord{ID: id, Data: raw, Hash: cache.Hash(raw)}
//	if err := st.PutDataset(ctx, rec); err != nil {
//	    return err
//	}
//
//	rec, err := st.GetDataset(ctx, id)
//	if errors.Is(err, store.ErrNotFound) {
//	    // 404
//	}
package store

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrMissingID is returned when a record is stored without an ID.
	ErrMissingID = errors.New("missing record id")
)

// DatasetRecord stores an uploaded dataset.
type DatasetRecord struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name,omitempty" bson:"name,omitempty"`
	Hash      string    `json:"hash" bson:"hash"`
	Data      []byte    `json:"data" bson:"data"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// ViewRef names one view of an animation's chain by its axis dimensions.
type ViewRef struct {
	X string `json:"x" bson:"x"`
	Y string `json:"y" bson:"y"`
}

// AnimationRecord stores a transition definition over a stored dataset.
type AnimationRecord struct {
	ID        string         `json:"id" bson:"_id"`
	DatasetID string         `json:"dataset_id" bson:"dataset_id"`
	Strategy  string         `json:"strategy" bson:"strategy"`
	Views     []ViewRef      `json:"views" bson:"views"`
	Params    map[string]any `json:"params,omitempty" bson:"params,omitempty"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`
}

// DatasetStore is the interface for dataset record storage.
type DatasetStore interface {
	// PutDataset stores a record, replacing any record with the same ID.
	PutDataset(ctx context.Context, rec *DatasetRecord) error

	// GetDataset retrieves a record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetDataset(ctx context.Context, id string) (*DatasetRecord, error)

	// DeleteDataset removes a record and returns ErrNotFound if it
	// doesn't exist.
	DeleteDataset(ctx context.Context, id string) error

	// ListDatasets returns all records, newest first.
	ListDatasets(ctx context.Context) ([]*DatasetRecord, error)
}

// AnimationStore is the interface for animation record storage.
type AnimationStore interface {
	// PutAnimation stores a record, replacing any record with the same ID.
	PutAnimation(ctx context.Context, rec *AnimationRecord) error

	// GetAnimation retrieves a record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetAnimation(ctx context.Context, id string) (*AnimationRecord, error)

	// DeleteAnimation removes a record and returns ErrNotFound if it
	// doesn't exist.
	DeleteAnimation(ctx context.Context, id string) error

	// ListAnimations returns the records referencing a dataset, newest
	// first. An empty datasetID lists every animation.
	ListAnimations(ctx context.Context, datasetID string) ([]*AnimationRecord, error)
}

// Store combines both record stores behind one backend connection.
type Store interface {
	DatasetStore
	AnimationStore

	// Close releases backend resources.
	Close(ctx context.Context) error
}
