package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/viewmorph/viewmorph/pkg/cache"
	apperrors "github.com/viewmorph/viewmorph/pkg/errors"
	"github.com/viewmorph/viewmorph/pkg/pipeline"
	"github.com/viewmorph/viewmorph/pkg/scatter"
	"github.com/viewmorph/viewmorph/pkg/store"
	"github.com/viewmorph/viewmorph/pkg/transition"
)

// prepareTimeout bounds one server-side geometry build.
const prepareTimeout = 5 * time.Minute

// Animation preparation states reported over the API.
const (
	statusPreparing = "preparing"
	statusReady     = "ready"
	statusFailed    = "failed"
)

// preparation tracks one animation's server-side geometry build. The
// fields past done are written once before done closes and read only
// after it.
type preparation struct {
	done chan struct{}

	tr  transition.Transition
	ds  *scatter.Dataset
	err error
}

// status reports the preparation state without blocking.
func (p *preparation) status() string {
	select {
	case <-p.done:
	default:
		return statusPreparing
	}
	if p.err != nil {
		return statusFailed
	}
	return statusReady
}

type createAnimationRequest struct {
	DatasetID string          `json:"dataset_id"`
	Strategy  string          `json:"strategy"`
	Views     []store.ViewRef `json:"views"`
	Params    map[string]any  `json:"params,omitempty"`
}

type animationResponse struct {
	ID        string          `json:"id"`
	DatasetID string          `json:"dataset_id"`
	Strategy  string          `json:"strategy"`
	Views     []store.ViewRef `json:"views"`
	Params    map[string]any  `json:"params,omitempty"`
	Status    string          `json:"status"`
	Error     string          `json:"error,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// animationOptions converts a stored definition to pipeline options over
// the stored dataset document.
func animationOptions(rec *store.AnimationRecord, dsRec *store.DatasetRecord) pipeline.Options {
	views := make([]pipeline.ViewSpec, len(rec.Views))
	for i, v := range rec.Views {
		views[i] = pipeline.ViewSpec{X: v.X, Y: v.Y}
	}
	return pipeline.Options{
		DatasetJSON: dsRec.Data,
		Strategy:    rec.Strategy,
		Views:       views,
		Params:      rec.Params,
	}
}

// handleCreateAnimation validates and stores a definition, then starts
// preparing its geometry in the background. Construction errors (unknown
// strategy, bad params, incompatible views) surface here; geometry errors
// surface later through the status and positions endpoints.
func (s *Server) handleCreateAnimation(w http.ResponseWriter, r *http.Request) {
	var req createAnimationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, apperrors.New(apperrors.ErrCodeInvalidInput, "parse request: %v", err))
		return
	}

	dsRec, err := s.store.GetDataset(r.Context(), req.DatasetID)
	if err != nil {
		s.writeError(w, r, storeError(err, apperrors.ErrCodeDatasetNotFound, "dataset %s", req.DatasetID))
		return
	}

	rec := &store.AnimationRecord{
		ID:        uuid.NewString(),
		DatasetID: req.DatasetID,
		Strategy:  req.Strategy,
		Views:     req.Views,
		Params:    req.Params,
		CreatedAt: time.Now().UTC(),
	}

	opts := animationOptions(rec, dsRec)
	if err := opts.ValidateForPrepare(); err != nil {
		s.writeError(w, r, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "invalid animation"))
		return
	}
	rec.Strategy = opts.Strategy

	ds, err := s.runner.Load(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, apperrors.Wrap(apperrors.ErrCodeInvalidDataset, err, "load dataset %s", req.DatasetID))
		return
	}

	// Build once synchronously so definition errors fail the request
	// instead of the background preparation.
	views, err := opts.ResolveViews(ds)
	if err != nil {
		s.writeError(w, r, apperrors.Wrap(apperrors.ErrCodeInvalidView, err, "resolve views"))
		return
	}
	if _, err := transition.New(opts.ParsedStrategy(), ds, views, opts.Params); err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.store.PutAnimation(r.Context(), rec); err != nil {
		s.writeError(w, r, apperrors.Wrap(apperrors.ErrCodeStore, err, "store animation"))
		return
	}

	p := s.startPreparation(rec.ID, ds, opts)
	s.writeJSON(w, http.StatusCreated, animationResponse{
		ID:        rec.ID,
		DatasetID: rec.DatasetID,
		Strategy:  rec.Strategy,
		Views:     rec.Views,
		Params:    rec.Params,
		Status:    p.status(),
		CreatedAt: rec.CreatedAt,
	})
}

// startPreparation registers and launches the geometry build for an
// animation, or returns the build already in flight.
func (s *Server) startPreparation(id string, ds *scatter.Dataset, opts pipeline.Options) *preparation {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.preps[id]; ok {
		return p
	}

	p := &preparation{done: make(chan struct{})}
	s.preps[id] = p
	go func() {
		defer close(p.done)
		ctx, cancel := context.WithTimeout(context.Background(), prepareTimeout)
		defer cancel()
		tr, _, err := s.runner.PrepareWithCacheInfo(ctx, ds, opts)
		if err != nil {
			p.err = err
			s.logger.Error("preparation failed", "animation", id, "error", err)
			return
		}
		p.tr = tr
		p.ds = ds
	}()
	return p
}

// preparationFor returns the animation's build, lazily restarting it from
// the stored definition when this instance has none in flight.
func (s *Server) preparationFor(ctx context.Context, id string) (*preparation, error) {
	s.mu.Lock()
	p, ok := s.preps[id]
	s.mu.Unlock()
	if ok {
		return p, nil
	}

	rec, err := s.store.GetAnimation(ctx, id)
	if err != nil {
		return nil, storeError(err, apperrors.ErrCodeAnimationNotFound, "animation %s", id)
	}
	dsRec, err := s.store.GetDataset(ctx, rec.DatasetID)
	if err != nil {
		return nil, storeError(err, apperrors.ErrCodeDatasetNotFound, "dataset %s", rec.DatasetID)
	}

	opts := animationOptions(rec, dsRec)
	ds, err := s.runner.Load(ctx, opts)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "load dataset %s", rec.DatasetID)
	}
	return s.startPreparation(id, ds, opts), nil
}

// dropPreparation forgets an animation's in-process build.
func (s *Server) dropPreparation(id string) {
	s.mu.Lock()
	delete(s.preps, id)
	s.mu.Unlock()
}

func (s *Server) handleListAnimations(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.ListAnimations(r.Context(), r.URL.Query().Get("dataset_id"))
	if err != nil {
		s.writeError(w, r, apperrors.Wrap(apperrors.ErrCodeStore, err, "list animations"))
		return
	}

	out := make([]animationResponse, len(recs))
	for i, rec := range recs {
		out[i] = s.animationResponseFor(rec)
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"animations": out})
}

func (s *Server) handleGetAnimation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := s.store.GetAnimation(r.Context(), id)
	if err != nil {
		s.writeError(w, r, storeError(err, apperrors.ErrCodeAnimationNotFound, "animation %s", id))
		return
	}
	s.writeJSON(w, http.StatusOK, s.animationResponseFor(rec))
}

// animationResponseFor reports the stored definition with this instance's
// preparation state. An animation no instance has touched since restart
// reports as preparing; the positions endpoint restarts the build.
func (s *Server) animationResponseFor(rec *store.AnimationRecord) animationResponse {
	resp := animationResponse{
		ID:        rec.ID,
		DatasetID: rec.DatasetID,
		Strategy:  rec.Strategy,
		Views:     rec.Views,
		Params:    rec.Params,
		Status:    statusPreparing,
		CreatedAt: rec.CreatedAt,
	}

	s.mu.Lock()
	p, ok := s.preps[rec.ID]
	s.mu.Unlock()
	if ok {
		resp.Status = p.status()
		if resp.Status == statusFailed {
			resp.Error = apperrors.UserMessage(p.err)
		}
	}
	return resp
}

func (s *Server) handleDeleteAnimation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.DeleteAnimation(r.Context(), id); err != nil {
		s.writeError(w, r, storeError(err, apperrors.ErrCodeAnimationNotFound, "animation %s", id))
		return
	}
	s.dropPreparation(id)
	w.WriteHeader(http.StatusNoContent)
}

// handlePositions evaluates every point's position at one animation time.
// Responses are cached under an HTTP key; geometry is shared through the
// pipeline cache, so only the first request after a deploy pays the
// preparation cost.
func (s *Server) handlePositions(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	raw := r.URL.Query().Get("t")
	if raw == "" {
		s.writeError(w, r, apperrors.New(apperrors.ErrCodeInvalidInput, "missing query parameter t"))
		return
	}
	t, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		s.writeError(w, r, apperrors.New(apperrors.ErrCodeInvalidInput, "t %q is not a number", raw))
		return
	}
	if err := apperrors.ValidateTime(t); err != nil {
		s.writeError(w, r, err)
		return
	}

	p, err := s.preparationFor(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	select {
	case <-p.done:
	default:
		s.writeError(w, r, &apperrors.PreparingError{AnimationID: id})
		return
	}
	if p.err != nil {
		s.writeError(w, r, p.err)
		return
	}

	key := s.keyer.HTTPKey("positions", fmt.Sprintf("%s:%.6f", id, t))
	if data, ok, _ := s.cache.Get(r.Context(), key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	frame, err := pipeline.FrameAt(p.tr, p.ds, t)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := json.Marshal(frame)
	if err != nil {
		s.writeError(w, r, apperrors.Wrap(apperrors.ErrCodeInternal, err, "encode positions"))
		return
	}
	_ = s.cache.Set(r.Context(), key, data, cache.TTLHTTP)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
