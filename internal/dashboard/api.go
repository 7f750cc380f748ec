package dashboard

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/fekuna/stockintel-service/internal/insight"
	"github.com/fekuna/stockintel-service/internal/model"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func (s *Server) apiFail(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.logger.Error("API request failed", zap.String("path", r.URL.Path), zap.Int("status", status), zap.Error(err))
	respondError(w, status, err.Error())
}

func (s *Server) apiItems(w http.ResponseWriter, r *http.Request) {
	filters, err := parseItemFilters(r.URL.Query())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	res, err := s.stock.ListItems(r.Context(), filters)
	if err != nil {
		s.apiFail(w, r, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (s *Server) apiOverview(w http.ResponseWriter, r *http.Request) {
	res, err := s.stock.Overview(r.Context())
	if err != nil {
		s.apiFail(w, r, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (s *Server) apiClusters(w http.ResponseWriter, r *http.Request) {
	res, err := s.stock.Clusters(r.Context(), groupParam(r.URL.Query()))
	if err != nil {
		s.apiFail(w, r, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (s *Server) apiGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.stock.Groups(r.Context())
	if err != nil {
		s.apiFail(w, r, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string][]string{"groups": groups})
}

func (s *Server) apiInsights(w http.ResponseWriter, r *http.Request) {
	dash, err := s.insights.Dashboard(r.Context())
	if err != nil {
		s.apiFail(w, r, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, dash)
}

func (s *Server) apiRisk(w http.ResponseWriter, r *http.Request) {
	res, err := s.insights.Risk(r.Context())
	if err != nil {
		s.apiFail(w, r, http.StatusBadGateway, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

type seasonalDetail struct {
	Item       *model.SeasonalItem `json:"item"`
	Comparison *insight.Comparison `json:"comparison,omitempty"`
	Band       []insight.BandPoint `json:"band,omitempty"`
}

func (s *Server) apiSeasonalItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := s.insights.SeasonalItem(r.Context(), id)
	switch {
	case errors.Is(err, insight.ErrItemNotFound):
		respondError(w, http.StatusNotFound, err.Error())
		return
	case err != nil:
		s.apiFail(w, r, http.StatusBadGateway, err)
		return
	}

	out := seasonalDetail{Item: item}
	if item.Classification == model.SeasonalPeak {
		cmp := insight.SeasonalComparison(*item)
		out.Comparison = &cmp
	} else {
		out.Band = insight.LinearBand(*item)
	}
	respondJSON(w, http.StatusOK, out)
}
