package dto

import "github.com/fekuna/stockintel-service/internal/model"

// Dataset names, used as keys in Dashboard.Errors.
const (
	DatasetRisk        = "risk"
	DatasetSeasonality = "seasonality"
	DatasetStrategy    = "strategy"
	DatasetInflation   = "inflation"
)

type RiskView struct {
	Items            []model.RiskItem     `json:"items"`
	Thresholds       model.RiskThresholds `json:"thresholds"`
	CriticalCount    int                  `json:"critical_count"`
	UnstableCount    int                  `json:"unstable_count"`
	LowCoverageCount int                  `json:"low_coverage_count"`
	TopCritical      []model.RiskItem     `json:"top_critical"`
}

type SeasonalityView struct {
	Items  []model.SeasonalItem `json:"items"`
	Counts map[string]int       `json:"counts"`
}

type InflationRow struct {
	model.InflationSeries
	ChangePct float64 `json:"change_pct"`
}

// Dashboard is the insights page model. A nil section failed to load and has its reason
// in Errors.
type Dashboard struct {
	Risk        *RiskView             `json:"risk"`
	Seasonality *SeasonalityView      `json:"seasonality"`
	Strategy    *model.StrategyReport `json:"strategy"`
	Inflation   []InflationRow        `json:"inflation"`
	Errors      map[string]string     `json:"errors,omitempty"`
}

func (d *Dashboard) Failed(dataset string) bool {
	_, ok := d.Errors[dataset]
	return ok
}
