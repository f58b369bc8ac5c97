// Package server exposes the scenario store and calculation engine over a
// JSON HTTP API.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/mgerber/venue-forecast/internal/engine"
	"github.com/mgerber/venue-forecast/internal/report"
	"github.com/mgerber/venue-forecast/internal/scenario"
	"github.com/mgerber/venue-forecast/internal/store"
	"github.com/mgerber/venue-forecast/pkg/calendarweek"
	"github.com/mgerber/venue-forecast/pkg/constants"
)

type handler struct {
	logger      *zap.Logger
	store       store.Store
	maxBodySize int64
	version     string
	currentWeek func() int
}

// Option adjusts handler construction.
type Option func(*handler)

// WithCurrentWeekFunc overrides how the handler derives the current
// calendar week; used for a configured fixed week and in tests.
func WithCurrentWeekFunc(fn func() int) Option {
	return func(h *handler) {
		if fn != nil {
			h.currentWeek = fn
		}
	}
}

// NewHandler constructs the HTTP handler that serves the scenario API.
func NewHandler(logger *zap.Logger, st store.Store, maxBodySize int64, version string, opts ...Option) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:      logger,
		store:       st,
		maxBodySize: maxBodySize,
		version:     trimmedVersion,
		currentWeek: calendarweek.Current,
	}
	for _, opt := range opts {
		opt(h)
	}

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/scenarios", h.handleListScenarios).Methods(http.MethodGet)
	api.HandleFunc("/scenarios", h.handleCreateScenario).Methods(http.MethodPost)
	api.HandleFunc("/scenarios/{id}", h.handleGetScenario).Methods(http.MethodGet)
	api.HandleFunc("/scenarios/{id}", h.handleUpdateScenario).Methods(http.MethodPut)
	api.HandleFunc("/scenarios/{id}", h.handleDeleteScenario).Methods(http.MethodDelete)
	api.HandleFunc("/scenarios/{id}/report", h.handleScenarioReport).Methods(http.MethodGet)
	api.HandleFunc("/scenarios/{id}/export", h.handleScenarioExport).Methods(http.MethodGet)
	api.HandleFunc("/compute", h.handleCompute).Methods(http.MethodPost)
	api.HandleFunc("/version", h.handleVersion).Methods(http.MethodGet)

	return r
}

type createScenarioRequest struct {
	Name string `json:"name"`
	// Inputs stays raw so partial objects can be merged over the base
	// record after the base is chosen.
	Inputs json.RawMessage `json:"inputs,omitempty"`
	Empty  bool            `json:"empty,omitempty"`
}

type updateScenarioRequest struct {
	Name   *string        `json:"name,omitempty"`
	Inputs *engine.Inputs `json:"inputs,omitempty"`
}

type computeRequest struct {
	Inputs             engine.Inputs `json:"inputs"`
	CurrentWeek        *int          `json:"currentWeek,omitempty"`
	RevenueMultipliers []float64     `json:"revenueMultipliers,omitempty"`
	CostMultipliers    []float64     `json:"costMultipliers,omitempty"`
}

type computeResponse struct {
	Metrics     engine.Metrics `json:"metrics"`
	CurrentWeek int            `json:"currentWeek"`
	Duration    string         `json:"duration"`
}

func (h *handler) handleListScenarios(w http.ResponseWriter, r *http.Request) {
	scenarios, err := h.store.List(r.Context())
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to list scenarios: %v", err), "server.handleListScenarios")
		return
	}
	if scenarios == nil {
		scenarios = []scenario.Scenario{}
	}
	h.writeJSON(w, http.StatusOK, scenarios)
}

func (h *handler) handleCreateScenario(w http.ResponseWriter, r *http.Request) {
	op := "server.handleCreateScenario"

	var req createScenarioRequest
	if !h.decodeBody(w, r, &req, op) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		h.respondError(w, http.StatusBadRequest, "scenario name must not be empty", op)
		return
	}

	// Partial inputs merge over the base record; omitted fields keep the
	// base values rather than falling to zero.
	base := scenario.DefaultInputs()
	if req.Empty {
		base = scenario.EmptyInputs()
	}
	if len(req.Inputs) > 0 {
		if err := json.Unmarshal(req.Inputs, &base); err != nil {
			h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode inputs: %v", err), op)
			return
		}
	}
	s := scenario.New(req.Name, base)

	if err := h.store.Save(r.Context(), s); err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to save scenario: %v", err), op)
		return
	}

	h.logger.Info("scenario created",
		zap.String("op", op),
		zap.String("id", s.ID),
		zap.String("name", s.Name),
	)
	h.writeJSON(w, http.StatusCreated, s)
}

func (h *handler) handleGetScenario(w http.ResponseWriter, r *http.Request) {
	s, ok := h.loadScenario(w, r, "server.handleGetScenario")
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, s)
}

func (h *handler) handleUpdateScenario(w http.ResponseWriter, r *http.Request) {
	op := "server.handleUpdateScenario"

	s, ok := h.loadScenario(w, r, op)
	if !ok {
		return
	}

	var req updateScenarioRequest
	if !h.decodeBody(w, r, &req, op) {
		return
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		h.respondError(w, http.StatusBadRequest, "scenario name must not be empty", op)
		return
	}

	s.Apply(scenario.Update{Name: req.Name, Inputs: req.Inputs}, engine.ComputeOptions{})

	if err := h.store.Save(r.Context(), s); err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to save scenario: %v", err), op)
		return
	}

	h.logger.Info("scenario updated",
		zap.String("op", op),
		zap.String("id", s.ID),
	)
	h.writeJSON(w, http.StatusOK, s)
}

func (h *handler) handleDeleteScenario(w http.ResponseWriter, r *http.Request) {
	op := "server.handleDeleteScenario"
	id := mux.Vars(r)["id"]

	err := h.store.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		h.respondError(w, http.StatusNotFound, "scenario not found", op)
		return
	}
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to delete scenario: %v", err), op)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) handleScenarioReport(w http.ResponseWriter, r *http.Request) {
	s, ok := h.loadScenario(w, r, "server.handleScenarioReport")
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(report.PrettyString(s)))
}

func (h *handler) handleScenarioExport(w http.ResponseWriter, r *http.Request) {
	op := "server.handleScenarioExport"
	s, ok := h.loadScenario(w, r, op)
	if !ok {
		return
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode scenario: %v", err), op)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"scenarioYaml": string(data)})
}

func (h *handler) handleCompute(w http.ResponseWriter, r *http.Request) {
	op := "server.handleCompute"
	start := time.Now()

	var req computeRequest
	if !h.decodeBody(w, r, &req, op) {
		return
	}

	currentWeek := h.currentWeek()
	if req.CurrentWeek != nil {
		currentWeek = calendarweek.Clamp(*req.CurrentWeek)
	}

	metrics := engine.ComputeMetricsWithOptions(req.Inputs, engine.ComputeOptions{
		CurrentWeek:        currentWeek,
		RevenueMultipliers: req.RevenueMultipliers,
		CostMultipliers:    req.CostMultipliers,
	})

	elapsed := time.Since(start)
	h.logger.Debug("metrics computed",
		zap.String("op", op),
		zap.Int("currentWeek", currentWeek),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, computeResponse{
		Metrics:     metrics,
		CurrentWeek: currentWeek,
		Duration:    elapsed.String(),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// loadScenario resolves the path id against the store, writing the error
// response itself when the lookup fails.
func (h *handler) loadScenario(w http.ResponseWriter, r *http.Request, op string) (*scenario.Scenario, bool) {
	id := mux.Vars(r)["id"]
	s, err := h.store.Load(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		h.respondError(w, http.StatusNotFound, "scenario not found", op)
		return nil, false
	}
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to load scenario: %v", err), op)
		return nil, false
	}
	return s, true
}

func (h *handler) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}, op string) bool {
	if h.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxBodySize), op)
			return false
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return false
	}
	return true
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	if h.logger != nil {
		h.logger.Error("request failed",
			zap.String("op", op),
			zap.Int("status", status),
			zap.String("error", msg),
		)
	}

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && h.logger != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
