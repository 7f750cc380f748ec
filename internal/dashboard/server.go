// Package dashboard serves the HTML pages, JSON API and SVG charts over HTTP.
// Every request fetches fresh data; nothing is cached between requests.
package dashboard

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/fekuna/stockintel-service/internal/insight"
	"github.com/fekuna/stockintel-service/internal/middleware"
	"github.com/fekuna/stockintel-service/internal/model"
	"github.com/fekuna/stockintel-service/internal/pkg/logger"
	"github.com/fekuna/stockintel-service/internal/stock"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

const requestTimeout = 30 * time.Second

var pageNames = []string{"overview", "clusters", "items", "insights", "settings"}

// Settings is the read-only configuration shown on the settings page.
type Settings struct {
	APIURL          string
	UpstreamTimeout time.Duration
	CriticalRule    string
	RiskThresholds  model.RiskThresholds
	CatalogSource   string
	Environment     string
	Version         string
	CORSOrigins     []string
}

type Server struct {
	stock    stock.UseCase
	insights insight.UseCase
	settings Settings
	pages    map[string]*template.Template
	logger   logger.ZapLogger
	started  time.Time
}

func New(stockUC stock.UseCase, insightUC insight.UseCase, settings Settings, log logger.ZapLogger) (*Server, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.gohtml", "templates/"+name+".gohtml")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &Server{
		stock:    stockUC,
		insights: insightUC,
		settings: settings,
		pages:    pages,
		logger:   log,
		started:  time.Now(),
	}, nil
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.AccessLog(s.logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(requestTimeout))

	r.Get("/health", s.handleHealth)

	r.Get("/", s.overviewPage)
	r.Get("/clusters", s.clustersPage)
	r.Get("/items", s.itemsPage)
	r.Get("/insights", s.insightsPage)
	r.Get("/settings", s.settingsPage)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.CORS(s.settings.CORSOrigins))
		r.Get("/items", s.apiItems)
		r.Get("/overview", s.apiOverview)
		r.Get("/clusters", s.apiClusters)
		r.Get("/groups", s.apiGroups)
		r.Get("/insights", s.apiInsights)
		r.Get("/insights/risk", s.apiRisk)
		r.Get("/insights/seasonality/{id}", s.apiSeasonalItem)
	})

	r.Route("/charts", func(r chi.Router) {
		r.Get("/scatter.svg", s.scatterChart)
		r.Get("/clusters.svg", s.clusterChart)
		r.Get("/risk.svg", s.riskChart)
		r.Get("/seasonality/{id}.svg", s.seasonalChart)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"service": "stockintel",
		"version": s.settings.Version,
		"uptime":  time.Since(s.started).Round(time.Second).String(),
	})
}

// view is the data handed to every page template.
type view struct {
	Title  string
	Active string
	Source string
	Data   any
}

func (s *Server) render(w http.ResponseWriter, name string, v view) {
	v.Active = name
	var buf bytes.Buffer
	if err := s.pages[name].ExecuteTemplate(&buf, "layout", v); err != nil {
		s.logger.Error("failed to render page", zap.String("page", name), zap.Error(err))
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
