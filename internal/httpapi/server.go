// Package httpapi serves DRE statements and comparisons over HTTP.
package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/unrolled/secure"
	"golang.org/x/sync/singleflight"

	"github.com/resultado/dre/internal/ledger"
	"github.com/resultado/dre/internal/model"
	"github.com/resultado/dre/internal/render"
	"github.com/resultado/dre/internal/report"
)

// Source provides ledger lines per entity selection.
type Source interface {
	Lines(entityIDs []string) []model.LedgerLine
	Scope(entityIDs []string) model.Scope
	Entities() []ledger.Entity
}

// Config wires a Server.
type Config struct {
	Logger          *slog.Logger
	Engine          *report.Engine
	Source          Source
	Metrics         *Metrics
	DefaultEntities []string         // used when a request names none
	DefaultMode     report.ValueMode // compare mode when the request omits it
	RequestTimeout  time.Duration
	ExportRateLimit int // export requests per minute per client IP; 0 disables
}

// Server holds the HTTP handlers.
type Server struct {
	logger          *slog.Logger
	engine          *report.Engine
	source          Source
	metrics         *Metrics
	validate        *validator.Validate
	builds          singleflight.Group
	defaultEntities []string
	defaultMode     report.ValueMode
	requestTimeout  time.Duration
	exportRateLimit int
}

// New creates a Server.
func New(cfg Config) *Server {
	s := &Server{
		logger:          cfg.Logger,
		engine:          cfg.Engine,
		source:          cfg.Source,
		metrics:         cfg.Metrics,
		validate:        newValidator(),
		defaultEntities: cfg.DefaultEntities,
		defaultMode:     cfg.DefaultMode,
		requestTimeout:  cfg.RequestTimeout,
		exportRateLimit: cfg.ExportRateLimit,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if !s.defaultMode.Valid() {
		s.defaultMode = report.PeriodMovement
	}
	return s
}

// Routes returns the router with the middleware stack installed.
func (s *Server) Routes() http.Handler {
	headers := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "no-referrer",
		ContentSecurityPolicy: "default-src 'none'",
	})

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(headers.Handler)
	r.Use(s.metrics.Middleware)
	if s.requestTimeout > 0 {
		r.Use(middleware.Timeout(s.requestTimeout))
	}

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	r.Get("/entities", s.handleEntities)
	r.Get("/reports/dre", s.handleStatement)
	r.Get("/reports/dre/compare", s.handleCompare)

	export := r.With()
	if s.exportRateLimit > 0 {
		export = r.With(httprate.LimitByIP(s.exportRateLimit, time.Minute))
	}
	export.Get("/reports/dre/export.csv", s.handleExportCSV)
	return r
}

type statementResponse struct {
	ReportID string `json:"report_id"`
	*report.Statement
}

type comparativeResponse struct {
	ReportID string `json:"report_id"`
	*report.Comparative
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleEntities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"entities": s.source.Entities()})
}

func (s *Server) handleStatement(w http.ResponseWriter, r *http.Request) {
	p, err := parseStatementParams(s.validate, r.URL.Query())
	if err != nil {
		respondError(w, err)
		return
	}
	st, err := s.statement(r.Context(), p)
	if err != nil {
		s.fail(w, r, "build statement", err)
		return
	}
	id := uuid.NewString()
	w.Header().Set("X-Report-ID", id)
	writeJSON(w, http.StatusOK, statementResponse{ReportID: id, Statement: st.Filter(p.Query)})
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	p, err := parseCompareParams(s.validate, r.URL.Query())
	if err != nil {
		respondError(w, err)
		return
	}
	cmp, err := s.comparative(r.Context(), p)
	if err != nil {
		s.fail(w, r, "build comparative", err)
		return
	}
	id := uuid.NewString()
	w.Header().Set("X-Report-ID", id)
	writeJSON(w, http.StatusOK, comparativeResponse{ReportID: id, Comparative: cmp.Filter(p.Query)})
}

// handleExportCSV serves the statement as CSV.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	p, err := parseStatementParams(s.validate, r.URL.Query())
	if err != nil {
		respondError(w, err)
		return
	}
	st, err := s.statement(r.Context(), p)
	if err != nil {
		s.fail(w, r, "build statement", err)
		return
	}
	var buf bytes.Buffer
	if err := render.StatementCSV(&buf, st.Filter(p.Query)); err != nil {
		s.fail(w, r, "write statement csv", err)
		return
	}

	name := "dre.csv"
	if p.Year != 0 {
		name = fmt.Sprintf("dre-%d.csv", p.Year)
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("X-Report-ID", uuid.NewString())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, what string, err error) {
	s.logger.Error(what,
		slog.Any("error", err),
		slog.String("path", r.URL.Path),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	respondError(w, err)
}

// entityIDs returns the requested IDs or the configured defaults.
func (s *Server) entityIDs(requested []string) []string {
	ids := requested
	if len(ids) == 0 {
		ids = s.defaultEntities
	}
	ids = slices.Clone(ids)
	slices.Sort(ids)
	return slices.Compact(ids)
}

func (s *Server) statement(ctx context.Context, p statementParams) (*report.Statement, error) {
	ids := s.entityIDs(p.Entities)
	key := statementKey(p.Year, ids, p.LineQuery)
	v, err := s.build(ctx, key, func() (any, error) {
		start := time.Now()
		st := s.engine.Statement(s.source.Scope(ids), s.source.Lines(ids), report.StatementQuery{
			Year:       p.Year,
			LineFilter: p.LineQuery,
		})
		s.metrics.ObserveBuild("statement", time.Since(start), st.Skipped)
		return st, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*report.Statement), nil
}

func (s *Server) comparative(ctx context.Context, p compareParams) (*report.Comparative, error) {
	q, err := p.query(s.defaultMode)
	if err != nil {
		return nil, err
	}
	ids := s.entityIDs(p.Entities)
	key := compareKey(q, ids)
	v, err := s.build(ctx, key, func() (any, error) {
		start := time.Now()
		cmp, err := s.engine.Compare(s.source.Scope(ids), s.source.Lines(ids), q)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		s.metrics.ObserveBuild("compare", time.Since(start), cmp.Skipped)
		return cmp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*report.Comparative), nil
}

// statementKey and compareKey identify identical builds. Free-text parts are
// quoted so separators inside IDs or filters cannot collide.
func statementKey(year int, ids []string, lineQuery string) string {
	return fmt.Sprintf("statement|%d|%q|%q", year, ids, lineQuery)
}

func compareKey(q report.CompareQuery, ids []string) string {
	return fmt.Sprintf("compare|%s|%s|%s|%q|%q", q.Period1, q.Period2, q.Mode, ids, q.LineFilter)
}

// build deduplicates concurrent identical report builds.
func (s *Server) build(ctx context.Context, key string, fn func() (any, error)) (any, error) {
	ch := s.builds.DoChan(key, fn)
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.Val, res.Err
	}
}
