package dto

import (
	"time"

	"github.com/fekuna/stockintel-service/internal/analytics"
	"github.com/fekuna/stockintel-service/internal/catalog"
	"github.com/fekuna/stockintel-service/internal/model"
)

type Source string

const (
	SourceUpstream Source = "upstream"
	SourceFallback Source = "fallback"
)

// ItemSet is one fetched collection. It is never modified after the fetch.
type ItemSet struct {
	Items     []model.StockItem
	Source    Source
	FetchedAt time.Time
}

type ItemFilters struct {
	Search    string // case-insensitive substring of the name
	Group     string // empty means all groups
	ClusterID *int   // nil means all clusters
}

type ItemList struct {
	Items    []model.StockItem `json:"items"`
	Total    int               `json:"total"`
	Groups   []string          `json:"groups"`
	Clusters []int             `json:"clusters"`
	Source   Source            `json:"source"`
}

type OverviewResult struct {
	Stats  analytics.Overview `json:"stats"`
	Items  []model.StockItem  `json:"items"`
	Source Source             `json:"source"`
}

// ClusterProfile summarizes one (group, cluster) bucket.
type ClusterProfile struct {
	Group      string             `json:"group"`
	ClusterID  int                `json:"cluster_id"`
	ItemCount  int                `json:"item_count"`
	Means      analytics.Means    `json:"means"`
	Examples   []string           `json:"examples"`
	Remaining  int                `json:"remaining"`
	Definition catalog.Definition `json:"definition"`
}

type ClusterSummary struct {
	Groups   []string         `json:"groups"`
	Group    string           `json:"group,omitempty"`
	Profiles []ClusterProfile `json:"profiles"`
	Overall  analytics.Means  `json:"overall"`
	Source   Source           `json:"source"`
}
