package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStore_DatasetRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	rec := &DatasetRecord{
		ID:        "ds-1",
		Name:      "gapminder",
		Hash:      "abc",
		Data:      []byte(`{"points": []}`),
		CreatedAt: time.Now(),
	}
	if err := s.PutDataset(ctx, rec); err != nil {
		t.Fatalf("PutDataset: %v", err)
	}

	got, err := s.GetDataset(ctx, "ds-1")
	if err != nil {
		t.Fatalf("GetDataset: %v", err)
	}
	if got.Name != "gapminder" || got.Hash != "abc" || string(got.Data) != `{"points": []}` {
		t.Errorf("GetDataset() = %+v", got)
	}

	// Stored records are detached from the caller's value.
	rec.Name = "mutated"
	again, _ := s.GetDataset(ctx, "ds-1")
	if again.Name != "gapminder" {
		t.Errorf("stored record changed with caller mutation: %q", again.Name)
	}

	if err := s.DeleteDataset(ctx, "ds-1"); err != nil {
		t.Fatalf("DeleteDataset: %v", err)
	}
	if _, err := s.GetDataset(ctx, "ds-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetDataset after delete = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore_NotFound(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, err := s.GetDataset(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetDataset = %v, want ErrNotFound", err)
	}
	if err := s.DeleteDataset(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteDataset = %v, want ErrNotFound", err)
	}
	if _, err := s.GetAnimation(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetAnimation = %v, want ErrNotFound", err)
	}
	if err := s.DeleteAnimation(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteAnimation = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore_RejectsMissingID(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.PutDataset(ctx, &DatasetRecord{}); !errors.Is(err, ErrMissingID) {
		t.Errorf("PutDataset = %v, want ErrMissingID", err)
	}
	if err := s.PutAnimation(ctx, &AnimationRecord{}); !errors.Is(err, ErrMissingID) {
		t.Errorf("PutAnimation = %v, want ErrMissingID", err)
	}
}

func TestMemoryStore_ListDatasetsNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"old", "mid", "new"} {
		rec := &DatasetRecord{ID: id, CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		if err := s.PutDataset(ctx, rec); err != nil {
			t.Fatalf("PutDataset(%s): %v", id, err)
		}
	}

	recs, err := s.ListDatasets(ctx)
	if err != nil {
		t.Fatalf("ListDatasets: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("got %d records, want 3", len(recs))
	}
	want := []string{"new", "mid", "old"}
	for i, rec := range recs {
		if rec.ID != want[i] {
			t.Errorf("recs[%d].ID = %q, want %q", i, rec.ID, want[i])
		}
	}
}

func TestMemoryStore_ListAnimationsFiltersByDataset(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	now := time.Now()

	anims := []*AnimationRecord{
		{ID: "a1", DatasetID: "ds-1", Strategy: "spline", CreatedAt: now},
		{ID: "a2", DatasetID: "ds-2", Strategy: "straight", CreatedAt: now.Add(time.Minute)},
		{ID: "a3", DatasetID: "ds-1", Strategy: "rotation", CreatedAt: now.Add(2 * time.Minute)},
	}
	for _, rec := range anims {
		if err := s.PutAnimation(ctx, rec); err != nil {
			t.Fatalf("PutAnimation(%s): %v", rec.ID, err)
		}
	}

	got, err := s.ListAnimations(ctx, "ds-1")
	if err != nil {
		t.Fatalf("ListAnimations: %v", err)
	}
	if len(got) != 2 || got[0].ID != "a3" || got[1].ID != "a1" {
		t.Errorf("ListAnimations(ds-1) = %v", ids(got))
	}

	all, err := s.ListAnimations(ctx, "")
	if err != nil {
		t.Fatalf("ListAnimations: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("ListAnimations(\"\") returned %d records, want 3", len(all))
	}
}

func ids(recs []*AnimationRecord) []string {
	out := make([]string, len(recs))
	for i, rec := range recs {
		out[i] = rec.ID
	}
	return out
}
