package dashboard

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fekuna/stockintel-service/internal/dashboard/charts"
	"github.com/fekuna/stockintel-service/internal/insight"
	"github.com/fekuna/stockintel-service/internal/stock/dto"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	msgNoData      = "Sem dados para exibir"
	msgUnavailable = "Dados indisponíveis no momento"
)

// writeSVG serves a placeholder image in place of a chart that failed or had nothing to draw.
func (s *Server) writeSVG(w http.ResponseWriter, r *http.Request, status int, out []byte, err error) {
	if err != nil {
		msg := msgNoData
		if !errors.Is(err, charts.ErrNoData) {
			msg = msgUnavailable
			s.logger.Warn("Chart unavailable", zap.String("path", r.URL.Path), zap.Error(err))
		}
		out = charts.Placeholder(msg)
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = w.Write(out)
}

func (s *Server) groupItems(r *http.Request) (*dto.ItemList, error) {
	return s.stock.ListItems(r.Context(), &dto.ItemFilters{Group: groupParam(r.URL.Query())})
}

func (s *Server) scatterChart(w http.ResponseWriter, r *http.Request) {
	list, err := s.groupItems(r)
	if err != nil {
		s.writeSVG(w, r, http.StatusOK, nil, err)
		return
	}
	out, err := charts.Scatter(list.Items)
	s.writeSVG(w, r, http.StatusOK, out, err)
}

func (s *Server) clusterChart(w http.ResponseWriter, r *http.Request) {
	list, err := s.groupItems(r)
	if err != nil {
		s.writeSVG(w, r, http.StatusOK, nil, err)
		return
	}
	out, err := charts.ClusterSizes(list.Items)
	s.writeSVG(w, r, http.StatusOK, out, err)
}

func (s *Server) riskChart(w http.ResponseWriter, r *http.Request) {
	risk, err := s.insights.Risk(r.Context())
	if err != nil {
		s.writeSVG(w, r, http.StatusOK, nil, err)
		return
	}
	out, err := charts.Risk(risk.Items, risk.Thresholds)
	s.writeSVG(w, r, http.StatusOK, out, err)
}

func (s *Server) seasonalChart(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.writeSVG(w, r, http.StatusBadRequest, nil, charts.ErrNoData)
		return
	}

	item, err := s.insights.SeasonalItem(r.Context(), id)
	switch {
	case errors.Is(err, insight.ErrItemNotFound):
		s.writeSVG(w, r, http.StatusNotFound, nil, charts.ErrNoData)
		return
	case err != nil:
		s.writeSVG(w, r, http.StatusOK, nil, err)
		return
	}
	out, err := charts.Seasonal(*item)
	s.writeSVG(w, r, http.StatusOK, out, err)
}
