package insight

import (
	"sort"

	"github.com/fekuna/stockintel-service/internal/model"
)

const (
	bandLower = 0.8
	bandUpper = 1.2
)

var monthInitials = [12]string{"J", "F", "M", "A", "M", "J", "J", "A", "S", "O", "N", "D"}

type MonthPair struct {
	Month    int     `json:"month"`
	Label    string  `json:"label"`
	Current  float64 `json:"current"`
	Previous float64 `json:"previous"`
}

// Comparison lines up twelve months of the latest year against the year before.
type Comparison struct {
	CurrentYear  int          `json:"current_year"`
	PreviousYear int          `json:"previous_year"`
	Months       [12]MonthPair `json:"months"`
}

// SeasonalComparison picks the two most recent years in the history. With a single year
// the previous one is assumed to be year-1 and reads as zeros; months without data are 0.
func SeasonalComparison(item model.SeasonalItem) Comparison {
	seen := map[int]bool{}
	var years []int
	for _, h := range item.History {
		if h.Year != 0 && !seen[h.Year] {
			seen[h.Year] = true
			years = append(years, h.Year)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	var c Comparison
	if len(years) > 0 {
		c.CurrentYear = years[0]
		c.PreviousYear = c.CurrentYear - 1
	}
	if len(years) > 1 {
		c.PreviousYear = years[1]
	}

	for i := range c.Months {
		c.Months[i] = MonthPair{Month: i + 1, Label: monthInitials[i]}
	}
	filled := map[[2]int]bool{}
	for _, h := range item.History {
		if h.Month < 1 || h.Month > 12 {
			continue
		}
		k := [2]int{h.Year, h.Month}
		if filled[k] {
			continue
		}
		switch h.Year {
		case c.CurrentYear:
			c.Months[h.Month-1].Current = h.Consumption
		case c.PreviousYear:
			c.Months[h.Month-1].Previous = h.Consumption
		default:
			continue
		}
		filled[k] = true
	}
	return c
}

type BandPoint struct {
	Label       string  `json:"label"`
	Consumption float64 `json:"consumption"`
	Lower       float64 `json:"lower"`
	Upper       float64 `json:"upper"`
}

// LinearBand returns the history with a band of ±20% around the mean consumption.
func LinearBand(item model.SeasonalItem) []BandPoint {
	lower, upper := item.Mean*bandLower, item.Mean*bandUpper
	out := make([]BandPoint, 0, len(item.History))
	for _, h := range item.History {
		out = append(out, BandPoint{
			Label:       h.Label(),
			Consumption: h.Consumption,
			Lower:       lower,
			Upper:       upper,
		})
	}
	return out
}

// CountByClassification tallies the seasonality labels. Unknown labels are counted under
// their own key.
func CountByClassification(items []model.SeasonalItem) map[string]int {
	out := map[string]int{model.SeasonalPeak: 0, model.SeasonalStable: 0}
	for _, it := range items {
		out[it.Classification]++
	}
	return out
}
