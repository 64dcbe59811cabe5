package dendro_test

import (
	"fmt"

	"github.com/viewmorph/viewmorph/pkg/cluster"
	"github.com/viewmorph/viewmorph/pkg/render/dendro"
)

func ExampleToDOT() {
	// Two tight pairs in normalized 2D space.
	packed := []float64{
		0.0, 0.0,
		0.1, 0.0,
		1.0, 1.0,
		0.9, 1.0,
	}

	// Merge all the way to a single cluster, recording every step.
	h := cluster.Hierarchical{TargetCount: 1}
	_, merges, err := h.PartitionWithMerges(packed, 2)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	dot, err := dendro.ToDOT([]string{"a", "b", "c", "d"}, merges, dendro.Options{})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	_ = dot

	fmt.Printf("Recorded %d merges\n", len(merges))
	// Output:
	// Recorded 3 merges
}

func ExampleRenderSVG() {
	merges := []cluster.Merge{
		{A: 0, B: 1, Distance: 0.1},
		{A: 0, B: 1, Distance: 0.8},
	}

	dot, err := dendro.ToDOT([]string{"usa", "chn", "deu"}, merges, dendro.Options{Detailed: true})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	// Render to SVG (in-process Graphviz)
	svg, err := dendro.RenderSVG(dot)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Printf("Generated SVG (%d bytes)\n", len(svg))
	// Output varies based on Graphviz version
}
