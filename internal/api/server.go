// Package api exposes the simulation engine over a JSON HTTP surface:
// /api/simulate runs a full culture simulation, /api/cell-lines dumps the
// registry, and the /api/predict endpoints serve the closed-form heuristics.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/biodynlabs/cellculture-simulator/core"
	"github.com/biodynlabs/cellculture-simulator/internal/logging"
	"github.com/biodynlabs/cellculture-simulator/internal/observability"
	"github.com/biodynlabs/cellculture-simulator/kb"
	"github.com/biodynlabs/cellculture-simulator/model"
)

// Version is reported by the health endpoint.
const Version = "2.0"

// Server holds the API dependencies. A nil metrics collector disables
// instrumentation without changing behaviour.
type Server struct {
	reg     *kb.Registry
	log     logging.Logger
	metrics *observability.Collector
}

// NewServer constructs the API server over a registry.
func NewServer(reg *kb.Registry, log logging.Logger, metrics *observability.Collector) *Server {
	if log == nil {
		log = logging.Noop()
	}
	return &Server{reg: reg, log: log, metrics: metrics}
}

// Handler builds the routed handler chain: otelhttp tracing outermost, then
// CORS (so preflights never hit method checks), request IDs, and per-route
// metrics around each endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/simulate", s.route(http.MethodPost, "/api/simulate", s.handleSimulate))
	mux.Handle("/api/cell-lines", s.route(http.MethodGet, "/api/cell-lines", s.handleCellLines))
	mux.Handle("/api/predict/optimal-dose", s.route(http.MethodPost, "/api/predict/optimal-dose", s.handlePredictDose))
	mux.Handle("/api/predict/growth", s.route(http.MethodPost, "/api/predict/growth", s.handlePredictGrowth))
	mux.Handle("/api/health", s.route(http.MethodGet, "/api/health", s.handleHealth))

	var h http.Handler = mux
	h = withRequestID(s.log, h)
	h = withCORS(h)
	return otelhttp.NewHandler(h, "cellsim-api")
}

func (s *Server) route(method, path string, handler http.HandlerFunc) http.Handler {
	var h http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		handler(w, r)
	})
	if s.metrics != nil {
		h = s.metrics.Middleware(path, h)
	}
	return h
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logging.LoggerFromContext(ctx)

	var req simulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed simulation request: "+err.Error())
		return
	}

	runID := uuid.NewString()
	log = log.With(logging.String("run_id", runID), logging.String("cell_line", req.CellLineName))
	log.Info(ctx, "simulation requested",
		logging.Int("initial_cells", req.ExperimentParams.InitialCells),
		logging.Float("duration_hours", req.ExperimentParams.Duration),
	)

	sim, err := core.NewSimulation(s.reg, core.Config{
		CellLine:     req.CellLineName,
		InitialCells: req.ExperimentParams.InitialCells,
		CultureSize:  req.CultureSize,
		Treatment:    req.Treatment,
		Seed:         req.Seed,
	}, core.WithLogger(log), core.WithMetricsRecorder(s.metrics))
	if err != nil {
		s.failRun(w, err)
		return
	}

	start := time.Now()
	samples, err := sim.Run(ctx, req.ExperimentParams.Duration, req.ExperimentParams.TimeInterval)
	if err != nil {
		s.failRun(w, err)
		return
	}

	s.metrics.ObserveRun("ok", time.Since(start).Seconds())
	log.Info(ctx, "simulation finished",
		logging.Int("final_population", sim.Population()),
		logging.Int("samples", len(samples)),
	)
	writeJSON(w, http.StatusOK, simulateResponse{Success: true, RunID: runID, Data: samples})
}

func (s *Server) failRun(w http.ResponseWriter, err error) {
	status := statusFromError(err)
	outcome := "error"
	if status == http.StatusBadRequest {
		outcome = "bad_request"
	}
	s.metrics.ObserveRun(outcome, 0)
	writeError(w, status, err.Error())
}

func (s *Server) handleCellLines(w http.ResponseWriter, r *http.Request) {
	lines := s.reg.List()
	payload := make(map[string]*model.CellLineProfile, len(lines))
	for _, p := range lines {
		payload[p.Name] = p
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handlePredictDose(w http.ResponseWriter, r *http.Request) {
	var req doseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed dose request: "+err.Error())
		return
	}

	pred, err := core.PredictOptimalDose(s.reg, req.CellLineName, model.DrugClass(req.DrugClass))
	if err != nil {
		writeError(w, statusFromError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, pred)
}

func (s *Server) handlePredictGrowth(w http.ResponseWriter, r *http.Request) {
	var req simulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed growth request: "+err.Error())
		return
	}

	temperature := 37.0
	if req.Environment != nil {
		temperature = req.Environment.Temperature
	}

	pred, err := core.PredictGrowthRate(s.reg, core.GrowthQuery{
		LineName:     req.CellLineName,
		Temperature:  temperature,
		Treatment:    req.Treatment,
		InitialCells: req.ExperimentParams.InitialCells,
		Duration:     req.ExperimentParams.Duration,
	})
	if err != nil {
		writeError(w, statusFromError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, pred)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "healthy",
		Version: Version,
		Features: []string{
			"Spatial microenvironment",
			"Cell cycle modeling",
			"PK/PD simulation",
			"Dose and growth heuristics",
			"Cell-cell interactions",
		},
	})
}
