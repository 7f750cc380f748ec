package insight

import (
	"sort"

	"github.com/fekuna/stockintel-service/internal/model"
)

// TopCriticalLimit caps the critical list shown on the insights page.
const TopCriticalLimit = 10

// IsCritical reports the stock-out risk zone: volatile demand with less than the allowed
// coverage on hand.
func IsCritical(cv, coverage float64, t model.RiskThresholds) bool {
	return cv > t.CVMin && coverage < t.CoverageMax
}

// Classify returns a copy of items with Critical recomputed against t.
func Classify(items []model.RiskItem, t model.RiskThresholds) []model.RiskItem {
	out := make([]model.RiskItem, len(items))
	for i, it := range items {
		it.Critical = IsCritical(it.CV, it.Coverage, t)
		out[i] = it
	}
	return out
}

// TopCritical returns the critical items by accumulated cost, highest first.
func TopCritical(items []model.RiskItem, limit int) []model.RiskItem {
	out := []model.RiskItem{}
	for _, it := range items {
		if it.Critical {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AccumulatedCost.GreaterThan(out[j].AccumulatedCost)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
