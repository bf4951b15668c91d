package server

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/iwvelando/loan-amortizer/internal/config"
	"github.com/iwvelando/loan-amortizer/internal/schedule"
	"github.com/iwvelando/loan-amortizer/pkg/constants"
	"github.com/iwvelando/loan-amortizer/pkg/format"
	"github.com/iwvelando/loan-amortizer/pkg/loans"
	"github.com/iwvelando/loan-amortizer/pkg/output"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:embed static/*
var staticFiles embed.FS

//go:embed templates/*.html
var templateFiles embed.FS

type handler struct {
	logger      *zap.Logger
	maxBodySize int64
	version     string
	rateLimit   RateLimitConfig
	now         func() time.Time
	metrics     *metrics
	printPage   *template.Template
}

// NewHandler constructs the HTTP handler that serves the web UI and schedule API.
func NewHandler(logger *zap.Logger, cfg *Config, version string) http.Handler {
	return newHandler(logger, cfg, version).routes()
}

func newHandler(logger *zap.Logger, cfg *Config, version string) *handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}

	maxBodySize := cfg.BodySizeBytes()
	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	printPage := template.Must(template.New("print.html").Funcs(template.FuncMap{
		"currency": format.Currency,
		"plain":    format.Plain,
	}).ParseFS(templateFiles, "templates/print.html"))

	return &handler{
		logger:      logger,
		maxBodySize: maxBodySize,
		version:     trimmedVersion,
		rateLimit:   cfg.RateLimit,
		now:         time.Now,
		metrics:     newMetrics(),
		printPage:   printPage,
	}
}

func (h *handler) routes() http.Handler {
	limiter := newRateLimiter(h.rateLimit, h.logger, h.metrics.rateLimited.Inc)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(limiter.middleware)
	router.Use(middleware.RealIP)
	router.Use(requestLogger(h.logger))
	router.Use(middleware.Recoverer)
	router.Use(h.metrics.middleware)

	router.Route("/api", func(r chi.Router) {
		r.Post("/schedule", h.handleSchedule)
		r.Post("/export", h.handleExport)
		r.Post("/print", h.handlePrint)
		r.Get("/version", h.handleVersion)
	})

	router.Handle("/metrics", promhttp.HandlerFor(h.metrics.registry, promhttp.HandlerOpts{}))

	// Static assets (web UI)
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	router.Handle("/*", http.FileServer(http.FS(sub)))

	return router
}

type scheduleRequest struct {
	Terms    termsRequest    `json:"terms"`
	Payments paymentsRequest `json:"payments"`
}

type termsRequest struct {
	Principal           decimal.Decimal `json:"principal"`
	AnnualRate          float64         `json:"annualRate"`
	TermMonths          int             `json:"termMonths"`
	AnnualInsuranceRate float64         `json:"annualInsuranceRate"`
	StartDate           string          `json:"startDate"`
}

type paymentsRequest struct {
	FillAll      decimal.Decimal   `json:"fillAll"`
	TargetMonths int               `json:"targetMonths"`
	Overrides    []overrideRequest `json:"overrides"`
}

type overrideRequest struct {
	Month  int             `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

func (req scheduleRequest) configuration() config.Configuration {
	conf := config.Configuration{
		Loan: config.Loan{
			Principal:           req.Terms.Principal.InexactFloat64(),
			AnnualRate:          req.Terms.AnnualRate,
			TermMonths:          req.Terms.TermMonths,
			AnnualInsuranceRate: req.Terms.AnnualInsuranceRate,
			StartDate:           req.Terms.StartDate,
		},
		Payments: config.Payments{
			FillAll:      req.Payments.FillAll.InexactFloat64(),
			TargetMonths: req.Payments.TargetMonths,
		},
	}
	for _, override := range req.Payments.Overrides {
		conf.Payments.Overrides = append(conf.Payments.Overrides, config.PaymentOverride{
			Month:  override.Month,
			Amount: override.Amount.InexactFloat64(),
		})
	}
	return conf
}

type scheduleResponse struct {
	output.Report
	Duration string `json:"duration"`
}

func (h *handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSchedule"
	start := time.Now()

	result, ok := h.compute(w, r, op, "schedule")
	if !ok {
		return
	}

	elapsed := time.Since(start)
	h.logger.Info("schedule computed",
		zap.String("op", op),
		zap.Int("rows", len(result.Rows)),
		zap.Int("monthsSaved", result.Summary.MonthsSaved),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, scheduleResponse{
		Report:   output.NewReport(result),
		Duration: elapsed.String(),
	})
}

func (h *handler) handleExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleExport"

	result, ok := h.compute(w, r, op, "export")
	if !ok {
		return
	}

	body := output.CsvString(result.Rows)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", constants.ExportFileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, body); err != nil {
		h.logger.Error("failed to write CSV export",
			zap.String("op", op),
			zap.Error(err),
		)
	}
}

type printView struct {
	Result      schedule.Result
	Header      []string
	GeneratedAt string
}

func (h *handler) handlePrint(w http.ResponseWriter, r *http.Request) {
	const op = "server.handlePrint"

	result, ok := h.compute(w, r, op, "print")
	if !ok {
		return
	}

	view := printView{
		Result:      result,
		Header:      constants.CSVHeader,
		GeneratedAt: h.now().Format(constants.DateLayout),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := h.printPage.Execute(w, view); err != nil {
		h.logger.Error("failed to render printable schedule",
			zap.String("op", op),
			zap.Error(err),
		)
	}
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// compute decodes the request body and runs the schedule. On failure it
// writes the error response and returns false.
func (h *handler) compute(w http.ResponseWriter, r *http.Request, op, endpoint string) (schedule.Result, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	var req scheduleRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		h.metrics.recalculations.WithLabelValues(endpoint, "rejected").Inc()
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodySize), op)
			return schedule.Result{}, false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return schedule.Result{}, false
	}

	result, err := schedule.RunAt(h.logger, req.configuration(), h.now())
	if err != nil {
		h.metrics.recalculations.WithLabelValues(endpoint, "rejected").Inc()
		msg := err.Error()
		if errors.Is(err, loans.ErrValidation) {
			msg = loans.Advisory(err)
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, msg, op)
		return schedule.Result{}, false
	}

	h.metrics.recalculations.WithLabelValues(endpoint, "ok").Inc()
	h.metrics.monthsSaved.Observe(float64(result.Summary.MonthsSaved))
	return result, true
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("schedule request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	writeJSON(h.logger, w, status, payload)
}

func writeJSON(logger *zap.Logger, w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("failed to write JSON response", zap.Error(err))
	}
}
