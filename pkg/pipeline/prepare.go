package pipeline

import (
	"context"
	"fmt"

	"github.com/viewmorph/viewmorph/pkg/scatter"
	"github.com/viewmorph/viewmorph/pkg/transition"
)

// Prepare builds the configured transition over the dataset and runs its
// preparation work. The returned transition is ready to evaluate.
func Prepare(ctx context.Context, ds *scatter.Dataset, opts Options) (transition.Transition, error) {
	tr, err := buildTransition(ds, opts)
	if err != nil {
		return nil, err
	}
	if err := tr.Prepare(ctx); err != nil {
		return nil, err
	}
	return tr, nil
}

// buildTransition constructs the transition without preparing it.
func buildTransition(ds *scatter.Dataset, opts Options) (transition.Transition, error) {
	views, err := opts.ResolveViews(ds)
	if err != nil {
		return nil, err
	}
	tr, err := transition.New(opts.ParsedStrategy(), ds, views, opts.Params)
	if err != nil {
		return nil, fmt.Errorf("build %s transition: %w", opts.Strategy, err)
	}
	return tr, nil
}
