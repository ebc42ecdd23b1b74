package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/growthlens/investscan/internal/export"
	"github.com/growthlens/investscan/internal/geo"
	"github.com/growthlens/investscan/internal/pipeline"
)

// scanRunner is the slice of the pipeline the API needs.
type scanRunner interface {
	Run(ctx context.Context, req pipeline.Request) (*pipeline.Result, error)
}

// windowPattern accepts discovery windows like 24h, 7d, 2w.
var windowPattern = regexp.MustCompile(`^[0-9]+[hdwm]$`)

// newRouter builds the dashboard API router.
func newRouter(runner scanRunner, states *geo.Table, corsOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Minute))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/records", handleRecords(runner, states))
		r.Get("/states", handleStates(states))
	})
	return r
}

// requestLogger emits one zap line per request, tagged with the chi request
// ID.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		zap.L().Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleRecords runs one scan per request. Bad parameters are 400, a missing
// AI credential is 422, anything else is 500.
func handleRecords(runner scanRunner, states *geo.Table) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, diag, err := parseRecordsQuery(r.URL.Query(), states)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		res, err := runner.Run(r.Context(), req)
		if err != nil {
			if errors.Is(err, pipeline.ErrMissingAPIKey) {
				writeError(w, http.StatusUnprocessableEntity, err)
				return
			}
			zap.L().Error("scan failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, err)
			return
		}

		env := export.Envelope{
			Records:     res.Records,
			GeneratedAt: time.Now().UTC(),
		}
		if diag {
			counts := res.Counts
			env.Counts = &counts
		}
		writeJSON(w, http.StatusOK, env)
	}
}

func handleStates(states *geo.Table) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"states": states.States()})
	}
}

// parseRecordsQuery validates the records query parameters and builds the
// scan request. The bool reports whether diagnostics were requested.
func parseRecordsQuery(values url.Values, states *geo.Table) (pipeline.Request, bool, error) {
	var req pipeline.Request

	if raw := values.Get("states"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if _, ok := states.Canonical(name); !ok {
				return req, false, eris.Errorf("unknown state %q", name)
			}
			req.States = append(req.States, name)
		}
	}

	if window := values.Get("window"); window != "" {
		if !windowPattern.MatchString(window) {
			return req, false, eris.Errorf("invalid window %q", window)
		}
		req.Window = window
	}

	switch mode := values.Get("mode"); mode {
	case "", pipeline.ModeAI, pipeline.ModeHeuristic:
		req.Mode = mode
	default:
		return req, false, eris.Errorf("invalid mode %q", mode)
	}

	if raw := values.Get("max"); raw != "" {
		max, err := strconv.Atoi(raw)
		if err != nil || max < 0 {
			return req, false, eris.Errorf("invalid max %q", raw)
		}
		req.MaxRecords = max
	}

	diag := false
	if raw := values.Get("diag"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return req, false, eris.Errorf("invalid diag %q", raw)
		}
		diag = v
	}

	return req, diag, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
