package cluster

import (
	"errors"
	"testing"
)

func TestPartition_Validate(t *testing.T) {
	tests := []struct {
		name    string
		p       Partition
		n       int
		wantErr error
	}{
		{"valid", Partition{{0, 2}, {1}}, 3, nil},
		{"empty cluster", Partition{{0}, {}}, 1, ErrEmptyCluster},
		{"duplicate index", Partition{{0, 1}, {1}}, 2, ErrPartition},
		{"missing index", Partition{{0}}, 2, ErrPartition},
		{"out of range", Partition{{0, 5}}, 2, ErrPartition},
	}
	for _, tt := range tests {
		err := tt.p.Validate(tt.n)
		if tt.wantErr == nil {
			if err != nil {
				t.Errorf("%s: Validate() = %v, want nil", tt.name, err)
			}
			continue
		}
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("%s: Validate() = %v, want %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestSingletons(t *testing.T) {
	p := Singletons(3)
	if len(p) != 3 {
		t.Fatalf("Singletons(3) has %d clusters, want 3", len(p))
	}
	if err := p.Validate(3); err != nil {
		t.Errorf("Singletons(3).Validate() = %v", err)
	}
	for i, c := range p {
		if len(c) != 1 || c[0] != i {
			t.Errorf("cluster %d = %v, want [%d]", i, c, i)
		}
	}
}

func TestPartition_Sizes(t *testing.T) {
	p := Partition{{0, 1, 2}, {3}, {4, 5}}
	got := p.Sizes()
	want := []int{3, 1, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Sizes()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestRows_PackedSize(t *testing.T) {
	if _, err := rows([]float64{1, 2, 3}, 2); !errors.Is(err, ErrPackedSize) {
		t.Errorf("rows(3 values, 2 dims) error = %v, want ErrPackedSize", err)
	}
	n, err := rows([]float64{1, 2, 3, 4}, 2)
	if err != nil || n != 2 {
		t.Errorf("rows(4 values, 2 dims) = %d, %v, want 2, nil", n, err)
	}
	if n, err := rows(nil, 0); err != nil || n != 0 {
		t.Errorf("rows(nil, 0) = %d, %v, want 0, nil", n, err)
	}
}
