package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/vesselsim/rivergen/internal/catalog"
	"github.com/vesselsim/rivergen/internal/config"
	"github.com/vesselsim/rivergen/internal/export"
	"github.com/vesselsim/rivergen/internal/geo"
	"github.com/vesselsim/rivergen/internal/river"
)

// Handler serves river generation over HTTP. Every request builds from
// the service's base configuration plus the request's overrides, so
// concurrent generations never share sampler state.
type Handler struct {
	base config.Config
	cat  *catalog.Catalog
}

func NewHandler(base config.Config, cat *catalog.Catalog) *Handler {
	return &Handler{base: base, cat: cat}
}

type generateRequest struct {
	Seed     *int64  `json:"seed,omitempty"`
	Segments *int    `json:"segments,omitempty"`
	Canal    *bool   `json:"canal,omitempty"`
	Exporter *string `json:"exporter,omitempty"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"service":   "rivergen",
	})
}

// GenerateRiver builds, exports and catalogs a new river.
func (h *Handler) GenerateRiver(w http.ResponseWriter, r *http.Request) {
	cfg := h.base

	if r.Body != nil && r.ContentLength != 0 {
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.renderError(w, r, http.StatusBadRequest, "invalid request body", err)
			return
		}
		if req.Seed != nil {
			cfg.Seed = *req.Seed
		}
		if req.Segments != nil {
			cfg.Segments = *req.Segments
		}
		if req.Canal != nil {
			cfg.Canal = *req.Canal
		}
		if req.Exporter != nil {
			cfg.Exporter = *req.Exporter
		}
	}

	built, err := river.Build(cfg)
	if err != nil {
		if errors.Is(err, config.ErrInvalidConfig) {
			h.renderError(w, r, http.StatusBadRequest, "invalid configuration", err)
			return
		}
		log.Error("failed to build river", "error", err)
		h.renderError(w, r, http.StatusInternalServerError, "failed to build river", err)
		return
	}

	if err := geo.ShiftToZone(built, cfg.StartAtUTM); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid utm zone", err)
		return
	}

	dir, err := export.Run(built, cfg.Exporter, cfg.SavePath)
	if err != nil {
		log.Error("failed to export river", "error", err, "exporter", cfg.Exporter)
		h.renderError(w, r, http.StatusInternalServerError, "failed to export river", err)
		return
	}

	rec := catalog.Record{
		ID:        uuid.New().String(),
		Seed:      built.Seed,
		Segments:  len(built.Segments),
		Stations:  built.StationCount(),
		Points:    built.PointCount(),
		Exporter:  cfg.Exporter,
		Path:      dir,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.cat.Insert(r.Context(), rec); err != nil {
		log.Error("failed to catalog river", "error", err, "id", rec.ID)
		h.renderError(w, r, http.StatusInternalServerError, "failed to catalog river", err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, rec)
}

func (h *Handler) ListRivers(w http.ResponseWriter, r *http.Request) {
	records, err := h.cat.List(r.Context())
	if err != nil {
		log.Error("failed to list rivers", "error", err)
		h.renderError(w, r, http.StatusInternalServerError, "failed to list rivers", err)
		return
	}
	if records == nil {
		records = []catalog.Record{}
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, records)
}

func (h *Handler) GetRiver(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := h.cat.Get(r.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		h.renderError(w, r, http.StatusNotFound, "river not found", err)
		return
	}
	if err != nil {
		log.Error("failed to get river", "error", err, "id", id)
		h.renderError(w, r, http.StatusInternalServerError, "failed to get river", err)
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, rec)
}

// DeleteRiver removes the catalog row and the exported files.
func (h *Handler) DeleteRiver(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := h.cat.Get(r.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		h.renderError(w, r, http.StatusNotFound, "river not found", err)
		return
	}
	if err != nil {
		h.renderError(w, r, http.StatusInternalServerError, "failed to get river", err)
		return
	}

	if err := h.cat.Delete(r.Context(), id); err != nil {
		h.renderError(w, r, http.StatusInternalServerError, "failed to delete river", err)
		return
	}
	if err := os.RemoveAll(rec.Path); err != nil {
		// The row is already gone; report but do not fail the request.
		log.Error("failed to remove exported files", "error", err, "path", rec.Path)
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]string{"deleted": id})
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, code int, message string, err error) {
	resp := errorResponse{Error: message, Code: code, Message: message}
	if err != nil {
		resp.Message = err.Error()
	}
	render.Status(r, code)
	render.JSON(w, r, resp)
}
