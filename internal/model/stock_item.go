package model

import (
	"github.com/shopspring/decimal"
)

// DefaultGroup is used for items delivered without a group label.
const DefaultGroup = "Outros"

// StockItem is one pre-clustered inventory line. Collections are replaced wholesale on
// every fetch and never patched in place.
type StockItem struct {
	ID                        int64           `json:"id"`
	Name                      string          `json:"name"`
	Group                     string          `json:"group"`
	UnitCost                  decimal.Decimal `json:"unit_cost"`
	AverageMonthlyConsumption float64         `json:"average_monthly_consumption"`
	StockQuantity             int64           `json:"stock_quantity"`
	ClusterID                 int             `json:"cluster_id"`
	ClusterLabel              string          `json:"cluster_label,omitempty"`
	TotalCost                 decimal.Decimal `json:"total_cost"`
}

// StockValue is unit cost times quantity on hand.
func (i StockItem) StockValue() decimal.Decimal {
	return i.UnitCost.Mul(decimal.NewFromInt(i.StockQuantity))
}

// Coverage is how many months the current stock lasts. Zero consumption yields 0.
func (i StockItem) Coverage() float64 {
	return CoverageMonths(float64(i.StockQuantity), i.AverageMonthlyConsumption)
}

// CoverageMonths divides stock by consumption and returns 0 when the divisor is not positive.
func CoverageMonths(stock, consumption float64) float64 {
	if consumption <= 0 {
		return 0
	}
	return nonNegative(stock) / consumption
}

// DecodeItems parses an upstream JSON array into canonical items. Non-object entries are
// dropped, missing or malformed numbers default to 0 and the total cost is always derived.
func DecodeItems(data []byte) ([]StockItem, error) {
	records, err := decodeRecords(data)
	if err != nil {
		return nil, err
	}
	items := make([]StockItem, 0, len(records))
	for _, r := range records {
		items = append(items, itemFromRecord(r))
	}
	return items, nil
}

func itemFromRecord(r record) StockItem {
	item := StockItem{
		ID:                        r.integer("id", "id_produto", "id_item"),
		Name:                      r.text("name", "nome", "ds_material_hospital"),
		Group:                     r.text("group", "grupo", "ds_grupo_material"),
		UnitCost:                  r.money("unit_cost", "custo_unitario"),
		AverageMonthlyConsumption: nonNegative(r.number("average_monthly_consumption", "consumo_medio_mensal")),
		StockQuantity:             r.integer("stock_quantity", "qt_estoque"),
		ClusterID:                 int(r.integer("cluster_id", "cluster")),
		ClusterLabel:              r.text("cluster_label", "descricao_cluster"),
	}
	if item.Group == "" {
		item.Group = DefaultGroup
	}
	if item.UnitCost.IsNegative() {
		item.UnitCost = decimal.Zero
	}
	if item.StockQuantity < 0 {
		item.StockQuantity = 0
	}
	if item.ClusterID < 0 {
		item.ClusterID = 0
	}
	return item.WithDerived()
}

// WithDerived recomputes TotalCost as unit cost times average monthly consumption.
func (i StockItem) WithDerived() StockItem {
	i.TotalCost = i.UnitCost.Mul(decimal.NewFromFloat(i.AverageMonthlyConsumption))
	return i
}
