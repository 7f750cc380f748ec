// Package analytics derives the dashboard aggregates from an in-memory item collection.
// Every function is pure and recomputed per request.
package analytics

import (
	"sort"

	"github.com/fekuna/stockintel-service/internal/model"
	"github.com/shopspring/decimal"
)

type Overview struct {
	TotalStockValue   decimal.Decimal `json:"total_stock_value"`
	ItemCount         int             `json:"item_count"`
	ClusterCount      int             `json:"cluster_count"`
	GroupCount        int             `json:"group_count"`
	CriticalItemCount int             `json:"critical_item_count"`
	CriticalRule      string          `json:"critical_rule"`
}

// ComputeOverview sums Σ unit_cost × stock_quantity and counts distinct clusters, groups
// and the items matched by rule.
func ComputeOverview(items []model.StockItem, rule CriticalRule) Overview {
	o := Overview{
		TotalStockValue: TotalStockValue(items),
		ItemCount:       len(items),
		ClusterCount:    len(DistinctClusters(items)),
		GroupCount:      len(DistinctGroups(items)),
	}
	if rule != nil {
		o.CriticalRule = rule.Name()
		o.CriticalItemCount = CountCritical(items, rule)
	}
	return o
}

func TotalStockValue(items []model.StockItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.StockValue())
	}
	return total
}

func CountCritical(items []model.StockItem, rule CriticalRule) int {
	n := 0
	for _, it := range items {
		if rule.IsCritical(it) {
			n++
		}
	}
	return n
}

// Means are per-collection averages. An empty collection yields zeros.
type Means struct {
	UnitCost    decimal.Decimal `json:"unit_cost"`
	Consumption float64         `json:"consumption"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	Stock       float64         `json:"stock"`
}

func ComputeMeans(items []model.StockItem) Means {
	if len(items) == 0 {
		return Means{UnitCost: decimal.Zero, TotalCost: decimal.Zero}
	}
	unit, total := decimal.Zero, decimal.Zero
	var consumption, stock float64
	for _, it := range items {
		unit = unit.Add(it.UnitCost)
		total = total.Add(it.TotalCost)
		consumption += it.AverageMonthlyConsumption
		stock += float64(it.StockQuantity)
	}
	n := decimal.NewFromInt(int64(len(items)))
	return Means{
		UnitCost:    unit.Div(n),
		Consumption: consumption / float64(len(items)),
		TotalCost:   total.Div(n),
		Stock:       stock / float64(len(items)),
	}
}

// DistinctClusters returns the cluster ids present, ascending.
func DistinctClusters(items []model.StockItem) []int {
	seen := make(map[int]struct{})
	out := []int{}
	for _, it := range items {
		if _, ok := seen[it.ClusterID]; ok {
			continue
		}
		seen[it.ClusterID] = struct{}{}
		out = append(out, it.ClusterID)
	}
	sort.Ints(out)
	return out
}

// DistinctGroups returns the group names present, sorted.
func DistinctGroups(items []model.StockItem) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, it := range items {
		if _, ok := seen[it.Group]; ok {
			continue
		}
		seen[it.Group] = struct{}{}
		out = append(out, it.Group)
	}
	sort.Strings(out)
	return out
}
