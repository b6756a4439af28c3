// Package server exposes the viability analysis over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/iwvelando/event-viability/internal/breakeven"
	"github.com/iwvelando/event-viability/internal/config"
	"github.com/iwvelando/event-viability/internal/evaluation"
	"github.com/iwvelando/event-viability/pkg/constants"
	"github.com/iwvelando/event-viability/pkg/output"
	"github.com/iwvelando/event-viability/pkg/validation"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
}

type analyzeResponse struct {
	output.Document
	Warnings []string          `json:"warnings,omitempty"`
	Duration string            `json:"duration"`
	Batch    *evaluation.Batch `json:"batch,omitempty"`
}

type breakevenResponse struct {
	breakeven.Summary
	Warnings []string `json:"warnings,omitempty"`
	Duration string   `json:"duration"`
}

// NewHandler constructs the HTTP handler that serves the analysis API. A nil
// cfg selects DefaultConfig.
func NewHandler(logger *zap.Logger, cfg *Config, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}

	maxUploadSize := cfg.UploadSizeBytes()
	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxUploadSize: maxUploadSize, version: trimmedVersion}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(h.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.handleHealth)

	r.Route("/api", func(r chi.Router) {
		if cfg.RequestsPerSecond > 0 {
			r.Use(h.rateLimit(rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), max(cfg.Burst, 1))))
		}
		r.Get("/version", h.handleVersion)
		r.Post("/analyze", h.handleAnalyze)
		r.Post("/breakeven", h.handleBreakeven)
		r.Post("/resolve", h.handleResolve)
	})

	return r
}

func (h *handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.logger.Debug("request served",
			zap.String("op", "server.logRequests"),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func (h *handler) rateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				w.Header().Set("Retry-After", "1")
				h.respondError(w, r, http.StatusTooManyRequests, "rate limit exceeded", "server.rateLimit")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) handleVersion(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// handleAnalyze evaluates every active scenario in the uploaded configuration.
// The format query parameter switches from the JSON envelope to one of the
// report renderings; detail=true adds the unrounded batch.
func (h *handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleAnalyze"
	start := time.Now()

	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format != "" {
		if err := validation.ValidateOutputFormat(format); err != nil {
			h.respondError(w, r, http.StatusBadRequest, err.Error(), op)
			return
		}
	}

	conf, ok := h.loadConfiguration(w, r, op)
	if !ok {
		return
	}
	warnings := conf.ValidateConfiguration()

	batch, err := evaluation.Evaluate(r.Context(), h.logger, conf)
	if err != nil {
		h.respondError(w, r, evaluationStatus(r.Context()), err.Error(), op)
		return
	}

	if format != "" {
		h.writeReport(w, r, format, batch)
		return
	}

	elapsed := time.Since(start)
	response := analyzeResponse{
		Document: output.Document{
			RunID:       batch.RunID,
			GeneratedAt: batch.GeneratedAt,
			Scenarios:   output.Summarize(batch),
		},
		Warnings: warnings,
		Duration: elapsed.String(),
	}
	if detail, _ := strconv.ParseBool(r.URL.Query().Get("detail")); detail {
		response.Batch = &batch
	}

	h.logger.Info("analysis computed",
		zap.String("op", op),
		zap.String("run_id", batch.RunID),
		zap.Int("scenarios", len(batch.Results)),
		zap.Int("succeeded", len(batch.Succeeded())),
		zap.Duration("duration", elapsed),
	)
	h.writeJSON(w, http.StatusOK, response)
}

// handleBreakeven solves one scenario for the value of a single parameter at
// which its BCR reaches 1.0. Without a scenario query parameter the first
// active scenario is used.
func (h *handler) handleBreakeven(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleBreakeven"
	start := time.Now()
	q := r.URL.Query()

	field := breakeven.FieldPublicSpending
	if raw := q.Get("field"); raw != "" {
		parsed, err := breakeven.ParseField(raw)
		if err != nil {
			h.respondError(w, r, http.StatusBadRequest, err.Error(), op)
			return
		}
		field = parsed
	}
	var opts breakeven.Options
	bounds := []struct {
		name string
		dst  **float64
	}{
		{"lower", &opts.Lower},
		{"upper", &opts.Upper},
	}
	for _, b := range bounds {
		raw := strings.TrimSpace(q.Get(b.name))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid %s bound %q", b.name, raw), op)
			return
		}
		*b.dst = &v
	}

	conf, ok := h.loadConfiguration(w, r, op)
	if !ok {
		return
	}
	warnings := conf.ValidateConfiguration()

	scenario, status, err := pickScenario(conf, strings.TrimSpace(q.Get("scenario")))
	if err != nil {
		h.respondError(w, r, status, err.Error(), op)
		return
	}

	summary, err := breakeven.NewSolver(h.logger, scenario.Name, scenario.Parameters).Solve(field, opts)
	if err != nil {
		h.respondError(w, r, http.StatusUnprocessableEntity, err.Error(), op)
		return
	}

	h.writeJSON(w, http.StatusOK, breakevenResponse{
		Summary:  summary,
		Warnings: warnings,
		Duration: time.Since(start).String(),
	})
}

// handleResolve returns the merged parameters of every active scenario as YAML.
func (h *handler) handleResolve(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleResolve"
	conf, ok := h.loadConfiguration(w, r, op)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := conf.WriteResolved(&buf); err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Error("failed to write resolved configuration", zap.String("op", op), zap.Error(err))
	}
}

func pickScenario(conf *config.Configuration, name string) (config.ResolvedScenario, int, error) {
	if name == "" {
		active, err := conf.ActiveScenarios()
		if err != nil {
			return config.ResolvedScenario{}, http.StatusBadRequest, err
		}
		if len(active) == 0 {
			return config.ResolvedScenario{}, http.StatusBadRequest, errors.New("configuration has no active scenario")
		}
		return active[0], http.StatusOK, nil
	}

	s, ok := conf.FindScenario(name)
	if !ok {
		return config.ResolvedScenario{}, http.StatusNotFound, fmt.Errorf("scenario %q not found", name)
	}
	p, err := conf.ScenarioParameters(s)
	if err != nil {
		return config.ResolvedScenario{}, http.StatusBadRequest, err
	}
	return config.ResolvedScenario{Name: s.Name, Parameters: p}, http.StatusOK, nil
}

// loadConfiguration reads the configuration from either a multipart "file"
// field or the raw request body.
func (h *handler) loadConfiguration(w http.ResponseWriter, r *http.Request, op string) (*config.Configuration, bool) {
	data, err := h.readUpload(w, r)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytesErr):
			h.respondError(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
		case errors.Is(err, http.ErrMissingFile):
			h.respondError(w, r, http.StatusBadRequest, "missing configuration file", op)
		default:
			h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("failed to read upload: %v", err), op)
		}
		return nil, false
	}
	if len(bytes.TrimSpace(data)) == 0 {
		h.respondError(w, r, http.StatusBadRequest, "empty configuration", op)
		return nil, false
	}

	conf, err := config.LoadConfigurationFromReader(bytes.NewReader(data))
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error(), op)
		return nil, false
	}
	return conf, true
}

func (h *handler) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return io.ReadAll(r.Body)
	}

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		return nil, err
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", "server.readUpload"),
				zap.Error(closeErr),
			)
		}
	}()
	return io.ReadAll(file)
}

func (h *handler) writeReport(w http.ResponseWriter, r *http.Request, format string, batch evaluation.Batch) {
	var buf bytes.Buffer
	if err := output.Write(&buf, format, batch); err != nil {
		h.respondError(w, r, http.StatusInternalServerError, err.Error(), "server.writeReport")
		return
	}

	switch format {
	case constants.OutputFormatCSV:
		w.Header().Set("Content-Type", "text/csv")
	case constants.OutputFormatJSON:
		w.Header().Set("Content-Type", "application/json")
	case constants.OutputFormatXLSX:
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "viability-"+batch.RunID+".xlsx"))
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Error("failed to write report", zap.String("op", "server.writeReport"), zap.Error(err))
	}
}

func evaluationStatus(ctx context.Context) int {
	if ctx.Err() != nil {
		return http.StatusServiceUnavailable
	}
	return http.StatusBadRequest
}

func (h *handler) respondError(w http.ResponseWriter, r *http.Request, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
