// Package httpapi serves rack elevations, chassis slot grids and navigation targets as JSON.
package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/metal-toolbox/rackview/internal/layout"
	"github.com/metal-toolbox/rackview/internal/metrics"
	"github.com/metal-toolbox/rackview/internal/model"
	"github.com/metal-toolbox/rackview/internal/store"
)

const (
	pkgName = "internal/httpapi"

	requestTimeout = 15 * time.Second
)

type Handler struct {
	logger  logrus.FieldLogger
	repo    store.Repository
	builder *layout.Builder
}

func NewHandler(logger logrus.FieldLogger, repo store.Repository, builder *layout.Builder) *Handler {
	if builder == nil {
		builder = layout.NewBuilder()
	}

	return &Handler{logger: logger, repo: repo, builder: builder}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(h.accessLog)

	r.Get("/healthz", h.handleHealthz)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/racks", h.handleListRacks)
		r.Get("/racks/{id}/elevation", h.handleRackElevation)
		r.Get("/assets/{id}/chassis", h.handleChassis)
		r.Get("/assets/{id}/navigate", h.handleNavigate)
	})

	return r
}

func (h *Handler) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		h.logger.WithFields(logrus.Fields{
			"requestID":  middleware.GetReqID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"bytes":      ww.BytesWritten(),
			"durationMs": time.Since(start).Milliseconds(),
		}).Info("http request")
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, code, msg string) {
	h.writeJSON(w, status, map[string]any{
		"error": map[string]any{
			"code":    code,
			"message": msg,
		},
	})
}

// writeStoreError maps repository errors to response statuses.
func (h *Handler) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrRackNotFound):
		h.writeError(w, http.StatusNotFound, "rack_not_found", err.Error())
	case errors.Is(err, store.ErrAssetNotFound):
		h.writeError(w, http.StatusNotFound, "asset_not_found", err.Error())
	case errors.Is(err, store.ErrNotChassis):
		h.writeError(w, http.StatusUnprocessableEntity, "not_chassis", err.Error())
	default:
		h.logger.WithError(err).WithField("path", r.URL.Path).Error("inventory query failed")
		h.writeError(w, http.StatusInternalServerError, "store_error", "inventory query failed")
	}
}

func (h *Handler) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

type rack struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	RowLetter string    `json:"row_letter"`
	RackNum   int       `json:"rack_num"`
	Height    int       `json:"height"`
}

func (h *Handler) handleListRacks(w http.ResponseWriter, r *http.Request) {
	rng, err := model.ParseRackRange(r.URL.Query().Get("rows"), r.URL.Query().Get("nums"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_range", err.Error())
		return
	}

	ctx, span := otel.Tracer(pkgName).Start(r.Context(), "Handler.ListRacks")
	defer span.End()

	racks, err := h.repo.Racks(ctx, rng)
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}

	resp := make([]rack, 0, len(racks))
	for _, rk := range racks {
		resp = append(resp, rack{ID: rk.ID, Name: rk.Name(), RowLetter: rk.RowLetter, RackNum: rk.RackNum, Height: rk.Height})
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// handleRackElevation returns the rack view, the chassis query parameter selects a
// chassis in the rack for the detail view.
func (h *Handler) handleRackElevation(w http.ResponseWriter, r *http.Request) {
	rackKey := chi.URLParam(r, "id")

	focus, err := focusParam(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_focus", err.Error())
		return
	}

	var chassisID uuid.UUID
	if param := r.URL.Query().Get("chassis"); param != "" {
		chassisID, err = uuid.Parse(param)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "invalid_id", "chassis: "+err.Error())
			return
		}
	}

	ctx, span := otel.Tracer(pkgName).Start(r.Context(), "Handler.RackElevation")
	defer span.End()

	span.SetAttributes(attribute.String("rack", rackKey))

	snapshot, err := h.repo.RackSnapshot(ctx, rackKey)
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}

	start := time.Now()

	var view model.RackView
	if chassisID != uuid.Nil {
		view = h.builder.RackViewWithDetail(snapshot, chassisID, focus)
	} else {
		view = h.builder.RackView(snapshot)
	}

	metrics.ObserveLayoutBuild("elevation", start)

	h.writeJSON(w, http.StatusOK, view)
}

func (h *Handler) handleChassis(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_id", err.Error())
		return
	}

	focus, err := focusParam(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_focus", err.Error())
		return
	}

	ctx, span := otel.Tracer(pkgName).Start(r.Context(), "Handler.Chassis")
	defer span.End()

	span.SetAttributes(attribute.String("assetID", id.String()))

	snapshot, err := store.ChassisSnapshot(ctx, h.repo, id, focus)
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}

	start := time.Now()
	view := h.builder.ChassisView(snapshot)

	metrics.ObserveLayoutBuild("chassis", start)

	h.writeJSON(w, http.StatusOK, view)
}

// handleNavigate returns the navigation event for the asset, projections navigate to
// the asset they project.
func (h *Handler) handleNavigate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_id", err.Error())
		return
	}

	ref, err := h.repo.AssetByID(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}

	event, ok := layout.Navigate(layout.ResolveIdentity(*ref))
	if !ok {
		h.writeError(w, http.StatusNotFound, "asset_not_found", "asset has no navigation target")
		return
	}

	h.writeJSON(w, http.StatusOK, event)
}

// focusParam returns the focus query parameter, zero when unset.
func focusParam(r *http.Request) (int, error) {
	param := r.URL.Query().Get("focus")
	if param == "" {
		return 0, nil
	}

	focus, err := strconv.Atoi(param)
	if err != nil || focus < 0 {
		return 0, errors.New("focus must be a slot number: " + param)
	}

	return focus, nil
}
