package analytics

import (
	"fmt"

	"github.com/fekuna/stockintel-service/config"
	"github.com/fekuna/stockintel-service/internal/model"
	"github.com/shopspring/decimal"
)

// CriticalRule decides whether an item counts towards the "critical items" KPI. The two
// rules are alternatives; exactly one is active per deployment.
type CriticalRule interface {
	Name() string
	IsCritical(item model.StockItem) bool
}

// ClusterRule flags every item assigned to one cluster id.
type ClusterRule struct {
	ClusterID int
}

func (r ClusterRule) Name() string {
	return fmt.Sprintf("cluster_id == %d", r.ClusterID)
}

func (r ClusterRule) IsCritical(item model.StockItem) bool {
	return item.ClusterID == r.ClusterID
}

// ThresholdRule flags expensive items with little stock on hand.
type ThresholdRule struct {
	MinUnitCost decimal.Decimal
	MaxStock    int64
}

func (r ThresholdRule) Name() string {
	return fmt.Sprintf("unit_cost > %s AND stock_quantity < %d", r.MinUnitCost.String(), r.MaxStock)
}

func (r ThresholdRule) IsCritical(item model.StockItem) bool {
	return item.UnitCost.GreaterThan(r.MinUnitCost) && item.StockQuantity < r.MaxStock
}

func NewCriticalRule(cfg config.RulesConfig) (CriticalRule, error) {
	switch cfg.CriticalRule {
	case config.RuleCluster:
		return ClusterRule{ClusterID: cfg.CriticalClusterID}, nil
	case config.RuleThreshold:
		return ThresholdRule{
			MinUnitCost: decimal.NewFromFloat(cfg.CriticalUnitCost),
			MaxStock:    cfg.CriticalMaxStock,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidRule, cfg.CriticalRule)
	}
}
