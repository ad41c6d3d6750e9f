/*
handlers.go - HTTP API handlers for the staffing engine

PURPOSE:
  Exposes the workforce-sizing engine via REST. Handles HTTP
  request/response, JSON serialization, and delegates to the engine.

ENDPOINTS:
  Simulations:
    POST   /api/simulations            Run a workforce-sizing simulation

  Centres:
    GET    /api/centres                List centres
    POST   /api/centres                Import a centre definition (JSON)
    GET    /api/centres/{id}           Centre details
    GET    /api/centres/{id}/stations  Job stations of a centre
    GET    /api/centres/{id}/tasks     Tasks of a centre

  Reference:
    GET    /api/reference/flows
    GET    /api/reference/directions
    GET    /api/reference/segments

  Scenarios:
    GET    /api/scenarios              List demo scenarios
    POST   /api/scenarios/load         Seed a demo scenario

ERROR HANDLING:
  Engine error kinds map onto HTTP status codes:
  - CENTRE_NOT_FOUND       -> 404
  - INVALID_PARAMETER      -> 400
  - REFERENCE_UNRESOLVED   -> 400
  - anything else          -> 500
  Per-task anomalies are warnings inside a 200 response, never errors.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario seeds
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tawazoon/staffing-engine/engine"
	"github.com/tawazoon/staffing-engine/factory"
	"github.com/tawazoon/staffing-engine/metrics"
	"github.com/tawazoon/staffing-engine/reference"
	"github.com/tawazoon/staffing-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Engine    *engine.Engine
	Repo      engine.Repository
	Catalogue *reference.Catalogue

	// Store is the optional write side: simulation history and centre
	// imports. Nil when running on the in-memory repository.
	Store *sqlite.Store
}

// NewHandler creates a handler. Store may be nil.
func NewHandler(eng *engine.Engine, repo engine.Repository, cat *reference.Catalogue, store *sqlite.Store) *Handler {
	return &Handler{Engine: eng, Repo: repo, Catalogue: cat, Store: store}
}

// =============================================================================
// SIMULATIONS
// =============================================================================

// RunSimulation handles POST /api/simulations.
func (h *Handler) RunSimulation(w http.ResponseWriter, r *http.Request) {
	var dto SimulationRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "invalid JSON body: "+err.Error())
		return
	}

	req := dto.toEngineRequest()
	start := time.Now()
	res, err := h.Engine.Simulate(r.Context(), req)
	metrics.SimulationDurationSeconds.Observe(time.Since(start).Seconds())

	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	metrics.SimulationsTotal.WithLabelValues("ok").Inc()
	metrics.StrategySelections.WithLabelValues(res.StrategyName).Inc()
	metrics.TasksEvaluated.Observe(float64(len(res.Tasks)))
	for _, warn := range res.Warnings {
		metrics.WarningsTotal.WithLabelValues(string(warn.Kind)).Inc()
	}
	centreLabel := strconv.FormatInt(int64(res.CentreID), 10)
	metrics.LastFTERounded.WithLabelValues(centreLabel).Set(res.FTERounded.InexactFloat64())
	metrics.LastTotalHours.WithLabelValues(centreLabel).Set(res.TotalHours.InexactFloat64())

	// Persist the run when a write store is wired. Failures are logged,
	// not surfaced: the simulation itself succeeded.
	if h.Store != nil {
		if err := h.Store.SaveSimulation(r.Context(), req, res); err != nil {
			log.Printf("warning: failed to persist simulation for centre %d: %v", req.CentreID, err)
		}
	}

	writeJSON(w, http.StatusOK, toSimulationResultDTO(res))
}

func (h *Handler) writeEngineError(w http.ResponseWriter, err error) {
	kind := engine.KindOf(err)
	switch {
	case engine.IsNotFound(err):
		metrics.SimulationsTotal.WithLabelValues("client_error").Inc()
		writeError(w, http.StatusNotFound, kind, err.Error())
	case engine.IsClientError(err):
		metrics.SimulationsTotal.WithLabelValues("client_error").Inc()
		writeError(w, http.StatusBadRequest, kind, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// Client went away before aggregation; nobody is listening.
		metrics.SimulationsTotal.WithLabelValues("client_error").Inc()
	default:
		metrics.SimulationsTotal.WithLabelValues("server_error").Inc()
		writeError(w, http.StatusInternalServerError, "INTERNAL", err.Error())
	}
}

// =============================================================================
// CENTRES
// =============================================================================

// ListCentres handles GET /api/centres.
func (h *Handler) ListCentres(w http.ResponseWriter, r *http.Request) {
	centres, err := h.Repo.ListCentres(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "INTERNAL", err.Error())
		return
	}
	out := make([]CentreDTO, 0, len(centres))
	for _, c := range centres {
		out = append(out, toCentreDTO(c))
	}
	writeJSON(w, http.StatusOK, out)
}

// GetCentre handles GET /api/centres/{id}.
func (h *Handler) GetCentre(w http.ResponseWriter, r *http.Request) {
	id, ok := centreParam(w, r)
	if !ok {
		return
	}
	c, err := h.Repo.Centre(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, engine.KindCentreNotFound, "centre not found")
		return
	}
	writeJSON(w, http.StatusOK, toCentreDTO(c))
}

// ListStations handles GET /api/centres/{id}/stations.
func (h *Handler) ListStations(w http.ResponseWriter, r *http.Request) {
	id, ok := centreParam(w, r)
	if !ok {
		return
	}
	stations, err := h.Repo.StationsForCentre(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "INTERNAL", err.Error())
		return
	}
	out := make([]StationDTO, 0, len(stations))
	for _, st := range stations {
		out = append(out, toStationDTO(st))
	}
	writeJSON(w, http.StatusOK, out)
}

// ListTasks handles GET /api/centres/{id}/tasks.
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	id, ok := centreParam(w, r)
	if !ok {
		return
	}
	tasks, err := h.Repo.TasksForCentre(r.Context(), id, nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "INTERNAL", err.Error())
		return
	}
	out := make([]TaskDTO, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskDTO(t))
	}
	writeJSON(w, http.StatusOK, out)
}

// ImportCentre handles POST /api/centres: a full centre definition in
// the factory JSON schema, persisted to the write store.
func (h *Handler) ImportCentre(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		writeError(w, http.StatusNotImplemented, "NO_STORE", "centre import requires a persistent store")
		return
	}

	var doc factory.CentreJSON
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "invalid JSON body: "+err.Error())
		return
	}

	centre, stations, tasks, err := factory.BuildCentre(doc)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_CENTRE", err.Error())
		return
	}

	ctx := r.Context()
	if err := h.Store.SaveCentre(ctx, centre); err != nil {
		writeError(w, http.StatusInternalServerError, "INTERNAL", err.Error())
		return
	}
	for _, st := range stations {
		if err := h.Store.SaveTemplate(ctx, st.Template); err != nil {
			writeError(w, http.StatusInternalServerError, "INTERNAL", err.Error())
			return
		}
		if err := h.Store.SaveStation(ctx, st); err != nil {
			writeError(w, http.StatusInternalServerError, "INTERNAL", err.Error())
			return
		}
	}
	for _, t := range tasks {
		if err := h.Store.SaveTask(ctx, t); err != nil {
			writeError(w, http.StatusInternalServerError, "INTERNAL", err.Error())
			return
		}
	}

	writeJSON(w, http.StatusCreated, toCentreDTO(centre))
}

// =============================================================================
// REFERENCE
// =============================================================================

// ListFlows handles GET /api/reference/flows.
func (h *Handler) ListFlows(w http.ResponseWriter, r *http.Request) {
	out := make([]ReferenceEntryDTO, 0)
	for _, f := range h.Catalogue.Flows() {
		out = append(out, ReferenceEntryDTO{Code: f.Code, Label: f.Label})
	}
	writeJSON(w, http.StatusOK, out)
}

// ListDirections handles GET /api/reference/directions.
func (h *Handler) ListDirections(w http.ResponseWriter, r *http.Request) {
	out := make([]ReferenceEntryDTO, 0)
	for _, d := range h.Catalogue.Directions() {
		out = append(out, ReferenceEntryDTO{Code: d.Code, Label: d.Label})
	}
	writeJSON(w, http.StatusOK, out)
}

// ListSegments handles GET /api/reference/segments.
func (h *Handler) ListSegments(w http.ResponseWriter, r *http.Request) {
	out := make([]ReferenceEntryDTO, 0)
	for _, s := range h.Catalogue.Segments() {
		out = append(out, ReferenceEntryDTO{Code: s.Code, Label: s.Label})
	}
	writeJSON(w, http.StatusOK, out)
}

// =============================================================================
// HELPERS
// =============================================================================

func centreParam(w http.ResponseWriter, r *http.Request) (engine.CentreID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "centre id must be an integer")
		return 0, false
	}
	return engine.CentreID(id), true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("warning: failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: message, Code: code})
}
