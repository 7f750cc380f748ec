package dashboard

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	idto "github.com/fekuna/stockintel-service/internal/insight/dto"
	"github.com/fekuna/stockintel-service/internal/model"
	"github.com/fekuna/stockintel-service/internal/stock/dto"
	"go.uber.org/zap"
)

const maxZombieRows = 10

var (
	abcClasses = []string{"A", "B", "C"}
	xyzClasses = []string{"X", "Y", "Z"}
)

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("failed to load page data", zap.String("path", r.URL.Path), zap.Error(err))
	http.Error(w, "failed to load data", http.StatusInternalServerError)
}

func (s *Server) overviewPage(w http.ResponseWriter, r *http.Request) {
	res, err := s.stock.Overview(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, "overview", view{Title: "Visão geral", Source: string(res.Source), Data: res})
}

func (s *Server) clustersPage(w http.ResponseWriter, r *http.Request) {
	res, err := s.stock.Clusters(r.Context(), groupParam(r.URL.Query()))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, "clusters", view{Title: "Clusters", Source: string(res.Source), Data: res})
}

type itemsData struct {
	*dto.ItemList
	Search  string
	Group   string
	Cluster string
}

func (s *Server) itemsPage(w http.ResponseWriter, r *http.Request) {
	// an unparsable cluster on the page falls back to all clusters
	filters, _ := parseItemFilters(r.URL.Query())

	res, err := s.stock.ListItems(r.Context(), filters)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	data := itemsData{ItemList: res, Search: filters.Search, Group: filters.Group}
	if filters.ClusterID != nil {
		data.Cluster = strconv.Itoa(*filters.ClusterID)
	}
	s.render(w, "items", view{Title: "Itens", Source: string(res.Source), Data: data})
}

type matrixRow struct {
	Class  string
	Counts []int
}

type insightsData struct {
	*idto.Dashboard
	Filter   string
	Seasonal []model.SeasonalItem
	Selected *model.SeasonalItem
	Matrix   []matrixRow
	Zombies  []model.ZombieItem
}

func (s *Server) insightsPage(w http.ResponseWriter, r *http.Request) {
	dash, err := s.insights.Dashboard(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	q := r.URL.Query()
	data := insightsData{Dashboard: dash, Filter: q.Get("filter")}

	if dash.Seasonality != nil {
		data.Seasonal = filterSeasonal(dash.Seasonality.Items, data.Filter)
		data.Selected = selectSeasonal(data.Seasonal, q.Get("item"))
	}
	if dash.Strategy != nil {
		for _, a := range abcClasses {
			row := matrixRow{Class: a}
			for _, x := range xyzClasses {
				row.Counts = append(row.Counts, dash.Strategy.Matrix[a+x])
			}
			data.Matrix = append(data.Matrix, row)
		}
		data.Zombies = dash.Strategy.Zombies
		if len(data.Zombies) > maxZombieRows {
			data.Zombies = data.Zombies[:maxZombieRows]
		}
	}

	s.render(w, "insights", view{Title: "Insights", Data: data})
}

func (s *Server) settingsPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, "settings", view{Title: "Configurações", Data: s.settings})
}

// filterSeasonal keeps items of one classification: "peak", "stable" or anything else for all.
func filterSeasonal(items []model.SeasonalItem, filter string) []model.SeasonalItem {
	var want string
	switch filter {
	case "peak":
		want = model.SeasonalPeak
	case "stable":
		want = model.SeasonalStable
	default:
		return items
	}

	out := make([]model.SeasonalItem, 0, len(items))
	for _, it := range items {
		if it.Classification == want {
			out = append(out, it)
		}
	}
	return out
}

// selectSeasonal returns the item with the requested id, or the first one when it is missing.
func selectSeasonal(items []model.SeasonalItem, raw string) *model.SeasonalItem {
	if len(items) == 0 {
		return nil
	}
	if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
		for i := range items {
			if items[i].ID == id {
				return &items[i]
			}
		}
	}
	return &items[0]
}

func groupParam(q url.Values) string {
	g := q.Get("group")
	if g == "all" {
		return ""
	}
	return g
}

// parseItemFilters always returns usable filters. The error reports a cluster value that
// is not an integer, in which case the cluster filter is left empty.
func parseItemFilters(q url.Values) (*dto.ItemFilters, error) {
	f := &dto.ItemFilters{Search: q.Get("q"), Group: groupParam(q)}

	raw := q.Get("cluster")
	if raw == "" || raw == "all" {
		return f, nil
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return f, fmt.Errorf("invalid cluster %q", raw)
	}
	f.ClusterID = &id
	return f, nil
}
