package server

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/viewmorph/viewmorph/pkg/cache"
	apperrors "github.com/viewmorph/viewmorph/pkg/errors"
	morphio "github.com/viewmorph/viewmorph/pkg/io"
	"github.com/viewmorph/viewmorph/pkg/store"
)

// maxDatasetBytes bounds uploaded dataset documents.
const maxDatasetBytes = 32 << 20

// datasetResponse describes a stored dataset without its data payload.
type datasetResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name,omitempty"`
	Hash       string    `json:"hash"`
	Points     int       `json:"points,omitempty"`
	Dimensions int       `json:"dimensions,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// handleCreateDataset stores an uploaded dataset document. The body is
// parsed and re-encoded, so the stored form is canonical and its hash
// does not depend on the uploader's formatting.
func (s *Server) handleCreateDataset(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDatasetBytes))
	if err != nil {
		s.writeError(w, r, apperrors.New(apperrors.ErrCodeInvalidDataset, "read dataset body: %v", err))
		return
	}

	ds, err := morphio.ReadJSON(bytes.NewReader(body))
	if err != nil {
		s.writeError(w, r, apperrors.Wrap(apperrors.ErrCodeInvalidDataset, err, "parse dataset"))
		return
	}

	name := r.URL.Query().Get("name")
	if name != "" {
		if err := apperrors.ValidateDatasetName(name); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	var buf bytes.Buffer
	if err := morphio.WriteJSON(ds, &buf); err != nil {
		s.writeError(w, r, apperrors.Wrap(apperrors.ErrCodeInternal, err, "encode dataset"))
		return
	}

	rec := &store.DatasetRecord{
		ID:        uuid.NewString(),
		Name:      name,
		Hash:      cache.Hash(buf.Bytes()),
		Data:      buf.Bytes(),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.PutDataset(r.Context(), rec); err != nil {
		s.writeError(w, r, apperrors.Wrap(apperrors.ErrCodeStore, err, "store dataset"))
		return
	}

	s.writeJSON(w, http.StatusCreated, datasetResponse{
		ID:         rec.ID,
		Name:       rec.Name,
		Hash:       rec.Hash,
		Points:     ds.Len(),
		Dimensions: len(ds.Dimensions()),
		CreatedAt:  rec.CreatedAt,
	})
}

func (s *Server) handleListDatasets(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.ListDatasets(r.Context())
	if err != nil {
		s.writeError(w, r, apperrors.Wrap(apperrors.ErrCodeStore, err, "list datasets"))
		return
	}

	out := make([]datasetResponse, len(recs))
	for i, rec := range recs {
		out[i] = datasetResponse{
			ID:        rec.ID,
			Name:      rec.Name,
			Hash:      rec.Hash,
			CreatedAt: rec.CreatedAt,
		}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"datasets": out})
}

// handleGetDataset returns the stored dataset document itself.
func (s *Server) handleGetDataset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := s.store.GetDataset(r.Context(), id)
	if err != nil {
		s.writeError(w, r, storeError(err, apperrors.ErrCodeDatasetNotFound, "dataset %s", id))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(rec.Data)
}

// handleDeleteDataset removes a dataset and every animation defined over
// it.
func (s *Server) handleDeleteDataset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	anims, err := s.store.ListAnimations(r.Context(), id)
	if err != nil {
		s.writeError(w, r, apperrors.Wrap(apperrors.ErrCodeStore, err, "list animations"))
		return
	}
	for _, anim := range anims {
		if err := s.store.DeleteAnimation(r.Context(), anim.ID); err != nil {
			s.writeError(w, r, apperrors.Wrap(apperrors.ErrCodeStore, err, "delete animation %s", anim.ID))
			return
		}
		s.dropPreparation(anim.ID)
	}

	if err := s.store.DeleteDataset(r.Context(), id); err != nil {
		s.writeError(w, r, storeError(err, apperrors.ErrCodeDatasetNotFound, "dataset %s", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
