package cluster

import (
	"testing"
)

func TestHierarchical_TargetCountOne(t *testing.T) {
	h := Hierarchical{TargetCount: 1}
	packed := pack2(
		[2]float64{0.1, 0.1}, [2]float64{0.9, 0.9},
		[2]float64{0.1, 0.9}, [2]float64{0.9, 0.1},
	)

	p, err := h.Partition(packed, 2)
	if err != nil {
		t.Fatalf("Partition: %v", err)
	}
	if len(p) != 1 {
		t.Fatalf("Partition() has %d clusters, want 1", len(p))
	}
	if err := p.Validate(4); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestHierarchical_PartitionIsValid(t *testing.T) {
	h := Hierarchical{TargetCount: 3}
	packed := pack2(
		[2]float64{0.10, 0.10}, [2]float64{0.12, 0.11}, [2]float64{0.11, 0.13},
		[2]float64{0.80, 0.80}, [2]float64{0.82, 0.79},
		[2]float64{0.50, 0.20}, [2]float64{0.48, 0.22},
	)

	p, err := h.Partition(packed, 2)
	if err != nil {
		t.Fatalf("Partition: %v", err)
	}
	if len(p) != 3 {
		t.Fatalf("Partition() has %d clusters, want 3", len(p))
	}
	if err := p.Validate(7); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestHierarchical_TieBreakFirstPair(t *testing.T) {
	// Distances (0,1) and (1,2) are both 0.1; the first pair in index
	// order wins the merge.
	h := Hierarchical{TargetCount: 2}
	packed := []float64{0.0, 0.1, 0.2}

	p, err := h.Partition(packed, 1)
	if err != nil {
		t.Fatalf("Partition: %v", err)
	}
	if len(p) != 2 {
		t.Fatalf("Partition() has %d clusters, want 2", len(p))
	}
	if len(p[0]) != 2 || p[0][0] != 0 || p[0][1] != 1 {
		t.Errorf("first cluster = %v, want [0 1]", p[0])
	}
	if len(p[1]) != 1 || p[1][0] != 2 {
		t.Errorf("second cluster = %v, want [2]", p[1])
	}
}

func TestHierarchical_NoTargetsKeepsSingletons(t *testing.T) {
	h := Hierarchical{}
	packed := []float64{0.0, 0.001, 0.002}

	p, err := h.Partition(packed, 1)
	if err != nil {
		t.Fatalf("Partition: %v", err)
	}
	if len(p) != 3 {
		t.Errorf("Partition() with no targets has %d clusters, want 3 singletons", len(p))
	}
}

func TestHierarchical_RadiusHoldsMerging(t *testing.T) {
	// Count target alone would stop at 2 clusters, and the two pairs are
	// tight enough that the radius target is satisfied there too.
	h := Hierarchical{TargetCount: 2, TargetRadius: 0.01}
	packed := []float64{0.0, 0.01, 0.5, 0.51}

	p, err := h.Partition(packed, 1)
	if err != nil {
		t.Fatalf("Partition: %v", err)
	}
	if len(p) != 2 {
		t.Fatalf("Partition() has %d clusters, want 2", len(p))
	}
	if err := p.Validate(4); err != nil {
		t.Errorf("Validate() = %v", err)
	}
	if len(p[0]) != 2 || len(p[1]) != 2 {
		t.Errorf("Partition() = %v, want two pairs", p)
	}
}

func TestHierarchical_EmptyAndSingle(t *testing.T) {
	h := Hierarchical{TargetCount: 1}

	p, err := h.Partition(nil, 2)
	if err != nil {
		t.Fatalf("Partition(empty): %v", err)
	}
	if len(p) != 0 {
		t.Errorf("Partition(empty) = %v, want none", p)
	}

	p, err = h.Partition([]float64{0.3, 0.4}, 2)
	if err != nil {
		t.Fatalf("Partition(single): %v", err)
	}
	if len(p) != 1 || len(p[0]) != 1 {
		t.Errorf("Partition(single) = %v, want one singleton", p)
	}
}

func TestHierarchical_MergeRecording(t *testing.T) {
	h := Hierarchical{TargetCount: 1}
	packed := []float64{0.0, 0.1, 0.5}

	p, merges, err := h.PartitionWithMerges(packed, 1)
	if err != nil {
		t.Fatalf("PartitionWithMerges: %v", err)
	}
	if len(p) != 1 {
		t.Fatalf("final partition has %d clusters, want 1", len(p))
	}
	// Three singletons merging to one cluster takes two merges.
	if len(merges) != 2 {
		t.Fatalf("recorded %d merges, want 2", len(merges))
	}
	if merges[0].A != 0 || merges[0].B != 1 {
		t.Errorf("first merge = %+v, want positions 0 and 1", merges[0])
	}
}
