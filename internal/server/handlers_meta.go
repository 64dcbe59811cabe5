package server

import (
	"net/http"

	"github.com/viewmorph/viewmorph/pkg/buildinfo"
	"github.com/viewmorph/viewmorph/pkg/transition"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"version": buildinfo.Version,
		"commit":  buildinfo.Commit,
		"date":    buildinfo.Date,
	})
}

// paramSpecWire is the serializable projection of a parameter spec.
// Visibility rules and derive functions are code, not data; a spec that
// carries one is marked conditional so a UI knows the static fields are
// not the whole story.
type paramSpecWire struct {
	Kind        string                   `json:"kind"`
	Min         *float64                 `json:"min,omitempty"`
	Max         *float64                 `json:"max,omitempty"`
	Round       bool                     `json:"round,omitempty"`
	Variants    []string                 `json:"variants,omitempty"`
	Default     any                      `json:"default"`
	Conditional bool                     `json:"conditional,omitempty"`
	Contents    map[string]paramSpecWire `json:"contents,omitempty"`
}

func specWire(spec transition.ParamSpec) paramSpecWire {
	w := paramSpecWire{
		Kind:        spec.Kind.String(),
		Default:     spec.Default,
		Conditional: spec.Visible != nil || spec.Derive != nil,
	}
	switch spec.Kind {
	case transition.ParamNumber:
		min, max := spec.Min, spec.Max
		w.Min, w.Max = &min, &max
		w.Round = spec.Round
	case transition.ParamEnum:
		w.Variants = spec.Variants
	case transition.ParamGroup:
		w.Contents = schemaWire(spec.Contents)
	}
	return w
}

func schemaWire(schema transition.Schema) map[string]paramSpecWire {
	out := make(map[string]paramSpecWire, len(schema))
	for name, spec := range schema {
		out[name] = specWire(spec)
	}
	return out
}

// handleSchemas reports every strategy's parameter schema so clients can
// build parameter forms without hardcoding the engine's knobs.
func (s *Server) handleSchemas(w http.ResponseWriter, r *http.Request) {
	schemas := make(map[string]map[string]paramSpecWire)
	for _, name := range transition.StrategyNames() {
		strategy, err := transition.ParseStrategy(name)
		if err != nil {
			continue
		}
		schemas[name] = schemaWire(transition.SchemaFor(strategy))
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"schemas": schemas})
}
