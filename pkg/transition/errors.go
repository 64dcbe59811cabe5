package transition

import "errors"

var (
	// ErrTooFewViews is returned by transition constructors when fewer
	// than two views are supplied.
	ErrTooFewViews = errors.New("transition needs at least two views")

	// ErrIncompatibleViews is returned by transition constructors when an
	// adjacent view pair violates the strategy's chaining rules, either
	// because the views share no axis or because a dimension changes axis
	// role. The wrapped message names both views and the strategy.
	ErrIncompatibleViews = errors.New("incompatible views")

	// ErrNoData is returned by [NewSpline] when no dataset is supplied.
	ErrNoData = errors.New("spline transition needs a dataset")

	// ErrNotReady is returned by X and Y when the transition has not
	// finished preparing. Callers must wait for Prepare to succeed before
	// querying positions.
	ErrNotReady = errors.New("transition not ready")

	// ErrUnknownPoint is returned by X and Y when the queried point was
	// not part of the dataset supplied at preparation time.
	ErrUnknownPoint = errors.New("point not in prepared dataset")

	// ErrPreparation is returned by [Spline.Prepare] when the worker
	// reports a failure. The transition stays permanently not ready.
	ErrPreparation = errors.New("preparation failed")

	// ErrInvalidParam is returned by [Schema.Normalize] for values that do
	// not fit a parameter's declared kind or variants.
	ErrInvalidParam = errors.New("invalid parameter value")
)
