package transition

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/viewmorph/viewmorph/pkg/tween"
)

// ParamKind tells a UI layer which control to render for a parameter.
type ParamKind int

const (
	// ParamNumber is a float within a closed domain.
	ParamNumber ParamKind = iota

	// ParamBool is a toggle.
	ParamBool

	// ParamEnum is a choice from a fixed set of names.
	ParamEnum

	// ParamGroup nests a sub-schema under one name.
	ParamGroup

	// ParamDerived is computed from the other parameters and never set
	// directly.
	ParamDerived
)

var paramKindNames = map[ParamKind]string{
	ParamNumber:  "number",
	ParamBool:    "bool",
	ParamEnum:    "enum",
	ParamGroup:   "group",
	ParamDerived: "derived",
}

func (k ParamKind) String() string {
	if name, ok := paramKindNames[k]; ok {
		return name
	}
	return "number"
}

// ParamSpec describes one parameter: its kind, domain or variants, default,
// and when a UI should show it. The engine renders no controls itself; it
// only validates and clamps values against the spec.
type ParamSpec struct {
	Kind ParamKind

	// Min and Max bound a number parameter.
	Min, Max float64

	// Round snaps a number parameter to the nearest integer.
	Round bool

	// Variants lists the accepted names of an enum parameter.
	Variants []string

	// Contents is the sub-schema of a group parameter.
	Contents Schema

	// Default is used when the caller supplies no value.
	Default any

	// Visible reports whether a UI should currently show the parameter,
	// given the normalized values of the schema level it lives in. Nil
	// means always visible.
	Visible func(values map[string]any) bool

	// Derive computes the value of a derived parameter from the other
	// normalized values at its schema level.
	Derive func(values map[string]any) any
}

// Schema maps parameter names to their descriptions.
type Schema map[string]ParamSpec

// Normalize validates a raw value map against the schema: missing entries
// take their defaults, numbers clamp into their domain and round when
// flagged, enums must name a variant, groups recurse, and derived entries
// are recomputed. The input map is not modified. The returned error wraps
// [ErrInvalidParam].
func (s Schema) Normalize(values map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(s))
	for name, spec := range s {
		if spec.Kind == ParamDerived {
			continue
		}
		v, err := spec.normalize(name, values[name])
		if err != nil {
			return nil, err
		}
		out[name] = v
	}
	for name, spec := range s {
		if spec.Kind == ParamDerived && spec.Derive != nil {
			out[name] = spec.Derive(out)
		}
	}
	return out, nil
}

func (spec ParamSpec) normalize(name string, v any) (any, error) {
	if v == nil {
		v = spec.Default
	}
	switch spec.Kind {
	case ParamNumber:
		f, ok := toFloat(v)
		if !ok || math.IsNaN(f) {
			return nil, fmt.Errorf("parameter %q: %w: %v is not a number", name, ErrInvalidParam, v)
		}
		f = math.Min(math.Max(f, spec.Min), spec.Max)
		if spec.Round {
			f = math.Round(f)
		}
		return f, nil
	case ParamBool:
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("parameter %q: %w: %v is not a bool", name, ErrInvalidParam, v)
		}
		return b, nil
	case ParamEnum:
		c, ok := v.(string)
		if !ok || !slices.Contains(spec.Variants, c) {
			return nil, fmt.Errorf("parameter %q: %w: %v (choose one of %s)",
				name, ErrInvalidParam, v, strings.Join(spec.Variants, ", "))
		}
		return c, nil
	case ParamGroup:
		sub, ok := v.(map[string]any)
		if v != nil && !ok {
			return nil, fmt.Errorf("parameter %q: %w: %v is not a table", name, ErrInvalidParam, v)
		}
		return spec.Contents.Normalize(sub)
	}
	return nil, fmt.Errorf("parameter %q: %w: unsupported kind %s", name, ErrInvalidParam, spec.Kind)
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	}
	return 0, false
}

// SchemaFor returns the parameter schema a UI should render for the
// strategy.
func SchemaFor(s Strategy) Schema {
	switch s {
	case StrategyRotation:
		return RotationSchema()
	case StrategySpline:
		return SplineSchema()
	default:
		return StraightSchema()
	}
}

// StraightSchema is empty: the straight strategy has no parameters. It is
// non-nil so callers can treat every strategy uniformly.
func StraightSchema() Schema {
	return Schema{}
}

// RotationSchema describes the rotation strategy's parameters.
func RotationSchema() Schema {
	return Schema{
		"perspective":    {Kind: ParamNumber, Min: 0, Max: 1, Default: 0.6},
		"perspFov":       {Kind: ParamNumber, Min: 10, Max: 120, Default: 45.0},
		"cameraDistance": {Kind: ParamNumber, Min: 0.5, Max: 5, Default: 1.3},
		"staged":         {Kind: ParamBool, Default: false},
		"ease":           {Kind: ParamEnum, Variants: tween.EaseNames(), Default: "quadratic"},
		"zoomTime": {Kind: ParamNumber, Min: 0, Max: 0.4, Default: 0.15,
			Visible: func(vs map[string]any) bool {
				staged, _ := vs["staged"].(bool)
				return staged
			}},
		"zoomSpan": {Kind: ParamDerived, Derive: func(vs map[string]any) any {
			p, _ := toFloat(vs["perspective"])
			z, _ := toFloat(vs["zoomTime"])
			return p * z
		}},
	}
}

// SplineSchema describes the spline strategy's parameters, including the
// nested clustering group.
func SplineSchema() Schema {
	return Schema{
		"ease":   {Kind: ParamEnum, Variants: tween.EaseNames(), Default: "quadratic"},
		"retime": {Kind: ParamEnum, Variants: tween.RetimeModeNames(), Default: "none"},
		"stagger": {Kind: ParamBool, Default: false,
			Visible: func(vs map[string]any) bool {
				mode, _ := vs["retime"].(string)
				return mode == "none"
			}},
		"bundlingStrength":   {Kind: ParamNumber, Min: 0, Max: 10, Round: true, Default: 0.0},
		"looseIntermediates": {Kind: ParamBool, Default: false},
		"clustering": {Kind: ParamGroup, Contents: Schema{
			"method":       {Kind: ParamEnum, Variants: ClusterMethodNames(), Default: "fuzzy"},
			"epsMin":       {Kind: ParamNumber, Min: 0, Max: 1, Default: 0.05, Visible: methodIs("fuzzy")},
			"epsMax":       {Kind: ParamNumber, Min: 0, Max: 1, Default: 0.12, Visible: methodIs("fuzzy")},
			"ptsMin":       {Kind: ParamNumber, Min: 0, Max: 100, Default: 2.0, Visible: methodIs("fuzzy")},
			"ptsMax":       {Kind: ParamNumber, Min: 0, Max: 100, Default: 6.0, Visible: methodIs("fuzzy")},
			"targetCount":  {Kind: ParamNumber, Min: 0, Max: 100, Round: true, Default: 8.0, Visible: methodIs("hierarchical")},
			"targetRadius": {Kind: ParamNumber, Min: 0, Max: 1, Default: 0.1, Visible: methodIs("hierarchical")},
		}},
	}
}

func methodIs(want string) func(map[string]any) bool {
	return func(vs map[string]any) bool {
		m, _ := vs["method"].(string)
		return m == want
	}
}

// RotationParams configures the rotation strategy.
type RotationParams struct {
	// Perspective blends between orthographic (0) and perspective (1)
	// projection.
	Perspective float64

	// FOV is the vertical field of view of the perspective projection, in
	// degrees.
	FOV float64

	// CameraDistance is how far the camera sits from the cube center.
	CameraDistance float64

	// Staged zooms into perspective before rotating and back out after,
	// instead of blending during the rotation.
	Staged bool

	// Ease shapes the rotation progress.
	Ease tween.Ease

	// ZoomTime is the fraction of the segment spent in each staged zoom
	// phase, scaled by Perspective.
	ZoomTime float64
}

// DefaultRotationParams returns the schema defaults as a typed value.
func DefaultRotationParams() RotationParams {
	p, err := RotationParamsFromValues(nil)
	if err != nil {
		panic(err)
	}
	return p
}

// RotationParamsFromValues normalizes a raw value map against
// [RotationSchema] and converts it to typed parameters.
func RotationParamsFromValues(values map[string]any) (RotationParams, error) {
	vs, err := RotationSchema().Normalize(values)
	if err != nil {
		return RotationParams{}, err
	}
	ease, err := tween.ParseEase(vs["ease"].(string))
	if err != nil {
		return RotationParams{}, err
	}
	return RotationParams{
		Perspective:    vs["perspective"].(float64),
		FOV:            vs["perspFov"].(float64),
		CameraDistance: vs["cameraDistance"].(float64),
		Staged:         vs["staged"].(bool),
		Ease:           ease,
		ZoomTime:       vs["zoomTime"].(float64),
	}, nil
}

// clamped forces the live-critical fields into their working ranges so a
// hand-built parameter struct cannot break the phase math.
func (p RotationParams) clamped() RotationParams {
	def := DefaultRotationParams()
	p.Perspective = tween.Clamp01(p.Perspective)
	p.ZoomTime = math.Min(tween.Clamp01(p.ZoomTime), 0.4)
	if math.IsNaN(p.FOV) || p.FOV <= 0 {
		p.FOV = def.FOV
	}
	if math.IsNaN(p.CameraDistance) || p.CameraDistance <= 0 {
		p.CameraDistance = def.CameraDistance
	}
	return p
}

// ClusterMethod selects how the spline strategy groups points.
type ClusterMethod int

const (
	// ClusterNone puts every point in its own singleton cluster.
	ClusterNone ClusterMethod = iota

	// ClusterFuzzy runs density-based fuzzy clustering.
	ClusterFuzzy

	// ClusterHierarchical merges centroid-closest clusters until the
	// configured targets hold.
	ClusterHierarchical
)

var clusterMethodNames = map[ClusterMethod]string{
	ClusterNone:         "none",
	ClusterFuzzy:        "fuzzy",
	ClusterHierarchical: "hierarchical",
}

func (m ClusterMethod) String() string {
	if name, ok := clusterMethodNames[m]; ok {
		return name
	}
	return "none"
}

// ParseClusterMethod resolves a clustering method name.
func ParseClusterMethod(s string) (ClusterMethod, error) {
	for m, name := range clusterMethodNames {
		if name == s {
			return m, nil
		}
	}
	return ClusterNone, fmt.Errorf("unknown clustering method %q", s)
}

// ClusterMethodNames lists the accepted method names in declaration order.
func ClusterMethodNames() []string {
	return []string{"none", "fuzzy", "hierarchical"}
}

// ClusteringParams configures the clustering step of the spline strategy.
// The eps and pts fields drive [ClusterFuzzy]; the target fields drive
// [ClusterHierarchical].
type ClusteringParams struct {
	Method ClusterMethod

	EpsMin, EpsMax float64
	PtsMin, PtsMax float64

	TargetCount  int
	TargetRadius float64
}

// SplineParams configures the spline strategy.
type SplineParams struct {
	// Ease shapes each point's progress along its path.
	Ease tween.Ease

	// Retime staggers clusters into animation windows. It supersedes
	// Stagger when both are set.
	Retime tween.RetimeMode

	// Stagger shifts each cluster's time window by its index. Retained
	// for callers of the older offset behavior; prefer Retime.
	Stagger bool

	// BundlingStrength is how many midpoint control points pull a point's
	// path toward its cluster centerline.
	BundlingStrength int

	// LooseIntermediates joins all view pairs into one long curve, so
	// intermediate views are only approximated.
	LooseIntermediates bool

	Clustering ClusteringParams
}

// DefaultSplineParams returns the schema defaults as a typed value.
func DefaultSplineParams() SplineParams {
	p, err := SplineParamsFromValues(nil)
	if err != nil {
		panic(err)
	}
	return p
}

// SplineParamsFromValues normalizes a raw value map against [SplineSchema]
// and converts it to typed parameters.
func SplineParamsFromValues(values map[string]any) (SplineParams, error) {
	vs, err := SplineSchema().Normalize(values)
	if err != nil {
		return SplineParams{}, err
	}
	ease, err := tween.ParseEase(vs["ease"].(string))
	if err != nil {
		return SplineParams{}, err
	}
	retime, err := tween.ParseRetimeMode(vs["retime"].(string))
	if err != nil {
		return SplineParams{}, err
	}
	cl := vs["clustering"].(map[string]any)
	method, err := ParseClusterMethod(cl["method"].(string))
	if err != nil {
		return SplineParams{}, err
	}
	return SplineParams{
		Ease:               ease,
		Retime:             retime,
		Stagger:            vs["stagger"].(bool),
		BundlingStrength:   int(vs["bundlingStrength"].(float64)),
		LooseIntermediates: vs["looseIntermediates"].(bool),
		Clustering: ClusteringParams{
			Method:       method,
			EpsMin:       cl["epsMin"].(float64),
			EpsMax:       cl["epsMax"].(float64),
			PtsMin:       cl["ptsMin"].(float64),
			PtsMax:       cl["ptsMax"].(float64),
			TargetCount:  int(cl["targetCount"].(float64)),
			TargetRadius: cl["targetRadius"].(float64),
		},
	}, nil
}

// retimeFunc resolves the staggering precedence: an explicit retime mode
// wins, the older index offset comes second, identity otherwise.
func (p SplineParams) retimeFunc() tween.RetimeFunc {
	if p.Retime != tween.RetimeNone {
		return p.Retime.Func()
	}
	if p.Stagger {
		return tween.LegacyOffset
	}
	return tween.Identity
}
