// Package charts renders the dashboard figures as SVG.
package charts

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"math"
	"sort"

	"github.com/fekuna/stockintel-service/internal/analytics"
	"github.com/fekuna/stockintel-service/internal/insight"
	"github.com/fekuna/stockintel-service/internal/model"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	Width  = 800
	Height = 420
)

// ErrNoData is returned when there is nothing worth plotting.
var ErrNoData = errors.New("no data to plot")

func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    4,
		DotColor:    col,
	}
}

func lineStyle(col drawing.Color, dashed bool) chart.Style {
	st := chart.Style{
		StrokeWidth: 2,
		StrokeColor: col,
	}
	if dashed {
		st.StrokeDashArray = []float64{6, 4}
	}
	return st
}

// paddedRange never collapses to a zero-width interval, which go-chart refuses to draw.
func paddedRange(values ...float64) *chart.ContinuousRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if math.IsInf(lo, 0) {
		return &chart.ContinuousRange{Min: 0, Max: 1}
	}
	lo = math.Min(lo, 0)
	if hi <= lo {
		hi = lo + 1
	}
	return &chart.ContinuousRange{Min: lo, Max: hi * 1.1}
}

func render(c chart.Chart) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Render(chart.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render %q: %w", c.Title, err)
	}
	return buf.Bytes(), nil
}

// Scatter plots consumption against unit cost, one series per cluster.
func Scatter(items []model.StockItem) ([]byte, error) {
	if len(items) == 0 {
		return nil, ErrNoData
	}

	buckets := analytics.GroupByCluster(items)
	sort.SliceStable(buckets, func(i, j int) bool { return buckets[i].ClusterID < buckets[j].ClusterID })

	var xs, ys []float64
	series := make([]chart.Series, 0, len(buckets))
	for i, b := range buckets {
		s := chart.ContinuousSeries{
			Name:  fmt.Sprintf("Cluster %d", b.ClusterID),
			Style: pointStyle(chart.GetDefaultColor(i)),
		}
		for _, it := range b.Items {
			cost, _ := it.UnitCost.Float64()
			s.XValues = append(s.XValues, it.AverageMonthlyConsumption)
			s.YValues = append(s.YValues, cost)
		}
		xs = append(xs, s.XValues...)
		ys = append(ys, s.YValues...)
		series = append(series, s)
	}

	c := chart.Chart{
		Title:      "Consumo x Custo Unitário",
		Width:      Width,
		Height:     Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: "Consumo médio mensal", Range: paddedRange(xs...)},
		YAxis:      chart.YAxis{Name: "Custo unitário (R$)", Range: paddedRange(ys...)},
		Series:     series,
	}
	c.Elements = []chart.Renderable{chart.Legend(&c)}
	return render(c)
}

// ClusterSizes draws one bar per cluster with its item count.
func ClusterSizes(items []model.StockItem) ([]byte, error) {
	if len(items) == 0 {
		return nil, ErrNoData
	}

	buckets := analytics.GroupByCluster(items)
	sort.SliceStable(buckets, func(i, j int) bool { return buckets[i].ClusterID < buckets[j].ClusterID })

	bars := make([]chart.Value, 0, len(buckets))
	peak := 0.0
	for i, b := range buckets {
		n := float64(len(b.Items))
		peak = math.Max(peak, n)
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("Cluster %d", b.ClusterID),
			Value: n,
			Style: chart.Style{FillColor: chart.GetDefaultColor(i), StrokeColor: chart.GetDefaultColor(i)},
		})
	}

	return renderBars(chart.BarChart{
		Title:      "Itens por cluster",
		Width:      Width,
		Height:     Height,
		BarWidth:   60,
		BarSpacing: 30,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		YAxis: chart.YAxis{Range: &chart.ContinuousRange{Min: 0, Max: peak * 1.1}},
		Bars:  bars,
	})
}

func renderBars(bc chart.BarChart) ([]byte, error) {
	var buf bytes.Buffer
	if err := bc.Render(chart.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render %q: %w", bc.Title, err)
	}
	return buf.Bytes(), nil
}

// Risk plots CV against coverage and marks the two thresholds with dashed lines. Critical
// items get their own series so they stand out.
func Risk(items []model.RiskItem, t model.RiskThresholds) ([]byte, error) {
	if len(items) == 0 {
		return nil, ErrNoData
	}

	normal := chart.ContinuousSeries{Name: "Itens", Style: pointStyle(chart.ColorBlue)}
	critical := chart.ContinuousSeries{Name: "Críticos", Style: pointStyle(chart.ColorRed)}
	xs := []float64{t.CVMin}
	ys := []float64{t.CoverageMax}
	for _, it := range items {
		target := &normal
		if it.Critical {
			target = &critical
		}
		target.XValues = append(target.XValues, it.CV)
		target.YValues = append(target.YValues, it.Coverage)
		xs = append(xs, it.CV)
		ys = append(ys, it.Coverage)
	}

	xr, yr := paddedRange(xs...), paddedRange(ys...)
	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    fmt.Sprintf("CV = %.2f", t.CVMin),
			XValues: []float64{t.CVMin, t.CVMin},
			YValues: []float64{yr.Min, yr.Max},
			Style:   lineStyle(chart.ColorAlternateGray, true),
		},
		chart.ContinuousSeries{
			Name:    fmt.Sprintf("Cobertura = %.2f", t.CoverageMax),
			XValues: []float64{xr.Min, xr.Max},
			YValues: []float64{t.CoverageMax, t.CoverageMax},
			Style:   lineStyle(chart.ColorOrange, true),
		},
	}
	for _, s := range []chart.ContinuousSeries{normal, critical} {
		if len(s.XValues) > 0 {
			series = append(series, s)
		}
	}

	c := chart.Chart{
		Title:      "Zona de risco de ruptura",
		Width:      Width,
		Height:     Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: "Coeficiente de variação", Range: xr},
		YAxis:      chart.YAxis{Name: "Cobertura (meses)", Range: yr},
		Series:     series,
	}
	c.Elements = []chart.Renderable{chart.Legend(&c)}
	return render(c)
}

// Seasonal draws the year-over-year comparison for peak items and the ±20% band around the
// mean for everything else.
func Seasonal(item model.SeasonalItem) ([]byte, error) {
	if item.Classification == model.SeasonalPeak {
		return seasonalComparison(item)
	}
	return seasonalBand(item)
}

func seasonalComparison(item model.SeasonalItem) ([]byte, error) {
	cmp := insight.SeasonalComparison(item)
	if cmp.CurrentYear == 0 {
		return nil, ErrNoData
	}

	months := make([]float64, 12)
	current := make([]float64, 12)
	previous := make([]float64, 12)
	ticks := make([]chart.Tick, 12)
	for i, m := range cmp.Months {
		months[i] = float64(m.Month)
		current[i] = m.Current
		previous[i] = m.Previous
		ticks[i] = chart.Tick{Value: float64(m.Month), Label: m.Label}
	}

	c := chart.Chart{
		Title:      item.Name,
		Width:      Width,
		Height:     Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Ticks: ticks, Range: &chart.ContinuousRange{Min: 1, Max: 12}},
		YAxis:      chart.YAxis{Name: "Consumo", Range: paddedRange(append(current, previous...)...)},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: fmt.Sprint(cmp.PreviousYear), XValues: months, YValues: previous, Style: lineStyle(chart.ColorAlternateGray, false)},
			chart.ContinuousSeries{Name: fmt.Sprint(cmp.CurrentYear), XValues: months, YValues: current, Style: lineStyle(chart.ColorOrange, false)},
		},
	}
	c.Elements = []chart.Renderable{chart.Legend(&c)}
	return render(c)
}

func seasonalBand(item model.SeasonalItem) ([]byte, error) {
	band := insight.LinearBand(item)
	if len(band) < 2 {
		return nil, ErrNoData
	}

	xs := make([]float64, len(band))
	consumption := make([]float64, len(band))
	lower := make([]float64, len(band))
	upper := make([]float64, len(band))
	ticks := make([]chart.Tick, len(band))
	for i, p := range band {
		xs[i] = float64(i)
		consumption[i] = p.Consumption
		lower[i] = p.Lower
		upper[i] = p.Upper
		ticks[i] = chart.Tick{Value: float64(i), Label: p.Label}
	}

	c := chart.Chart{
		Title:      item.Name,
		Width:      Width,
		Height:     Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Ticks: ticks, Range: &chart.ContinuousRange{Min: 0, Max: float64(len(band) - 1)}},
		YAxis:      chart.YAxis{Name: "Consumo", Range: paddedRange(append(append(consumption, lower...), upper...)...)},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: "Limite inferior", XValues: xs, YValues: lower, Style: lineStyle(chart.ColorLightGray, true)},
			chart.ContinuousSeries{Name: "Limite superior", XValues: xs, YValues: upper, Style: lineStyle(chart.ColorLightGray, true)},
			chart.ContinuousSeries{Name: "Consumo", XValues: xs, YValues: consumption, Style: lineStyle(chart.ColorGreen, false)},
		},
	}
	c.Elements = []chart.Renderable{chart.Legend(&c)}
	return render(c)
}

// Placeholder is served instead of a chart that cannot be drawn.
func Placeholder(message string) []byte {
	return []byte(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+
		`<rect width="100%%" height="100%%" fill="#f8fafc"/>`+
		`<text x="50%%" y="50%%" text-anchor="middle" font-family="sans-serif" font-size="16" fill="#64748b">%s</text>`+
		`</svg>`, Width, Height, Width, Height, html.EscapeString(message)))
}
