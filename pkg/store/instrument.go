package store

import (
	"context"

	"github.com/viewmorph/viewmorph/pkg/observability"
)

// Record kinds reported to store hooks.
const (
	kindDataset   = "dataset"
	kindAnimation = "animation"
)

// Instrumented wraps a Store and reports every record operation to the
// registered [observability.StoreHooks]. Writes and deletes report only
// when the backend succeeds; lookups always report, with found indicating
// whether the record came back. List operations pass through unreported.
type Instrumented struct {
	Store
}

// NewInstrumented wraps s with store hook reporting.
func NewInstrumented(s Store) *Instrumented {
	return &Instrumented{Store: s}
}

func (i *Instrumented) PutDataset(ctx context.Context, rec *DatasetRecord) error {
	err := i.Store.PutDataset(ctx, rec)
	if err == nil {
		observability.Store().OnPut(ctx, kindDataset, rec.ID)
	}
	return err
}

func (i *Instrumented) GetDataset(ctx context.Context, id string) (*DatasetRecord, error) {
	rec, err := i.Store.GetDataset(ctx, id)
	observability.Store().OnGet(ctx, kindDataset, id, err == nil)
	return rec, err
}

func (i *Instrumented) DeleteDataset(ctx context.Context, id string) error {
	err := i.Store.DeleteDataset(ctx, id)
	if err == nil {
		observability.Store().OnDelete(ctx, kindDataset, id)
	}
	return err
}

func (i *Instrumented) PutAnimation(ctx context.Context, rec *AnimationRecord) error {
	err := i.Store.PutAnimation(ctx, rec)
	if err == nil {
		observability.Store().OnPut(ctx, kindAnimation, rec.ID)
	}
	return err
}

func (i *Instrumented) GetAnimation(ctx context.Context, id string) (*AnimationRecord, error) {
	rec, err := i.Store.GetAnimation(ctx, id)
	observability.Store().OnGet(ctx, kindAnimation, id, err == nil)
	return rec, err
}

func (i *Instrumented) DeleteAnimation(ctx context.Context, id string) error {
	err := i.Store.DeleteAnimation(ctx, id)
	if err == nil {
		observability.Store().OnDelete(ctx, kindAnimation, id)
	}
	return err
}
