package model

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

const (
	SeasonalPeak   = "Sazonal/Pico"
	SeasonalStable = "Estável/Linear"
)

// RiskItem carries per-item stock-out metrics computed upstream.
type RiskItem struct {
	ID               int64           `json:"id"`
	Name             string          `json:"name"`
	Group            string          `json:"group"`
	MeanConsumption  float64         `json:"mean_consumption"`
	ConsumptionStd   float64         `json:"consumption_std"`
	TotalConsumption float64         `json:"total_consumption"`
	MeanStock        float64         `json:"mean_stock"`
	AccumulatedCost  decimal.Decimal `json:"accumulated_cost"`
	CV               float64         `json:"cv"`
	Coverage         float64         `json:"coverage_months"`
	Critical         bool            `json:"critical"`
}

type RiskThresholds struct {
	CVMin       float64 `json:"cv_min"`
	CoverageMax float64 `json:"coverage_max"`
}

// RiskMeta mirrors the upstream risk zone. Nil thresholds were not delivered.
type RiskMeta struct {
	TotalCritical int      `json:"total_critical"`
	CVMin         *float64 `json:"cv_min,omitempty"`
	CoverageMax   *float64 `json:"coverage_max,omitempty"`
}

// Thresholds fills every threshold upstream left out from fallback.
func (m RiskMeta) Thresholds(fallback RiskThresholds) RiskThresholds {
	out := fallback
	if m.CVMin != nil {
		out.CVMin = *m.CVMin
	}
	if m.CoverageMax != nil {
		out.CoverageMax = *m.CoverageMax
	}
	return out
}

type RiskReport struct {
	Items []RiskItem `json:"items"`
	Meta  RiskMeta   `json:"meta"`
}

// MonthlyPoint is one month of consumption history.
type MonthlyPoint struct {
	Period      string  `json:"period"`
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	Consumption float64 `json:"consumption"`
}

// Label returns the period string, synthesizing "YYYY-MM" when upstream left it blank.
func (p MonthlyPoint) Label() string {
	if p.Period != "" {
		return p.Period
	}
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

type SeasonalItem struct {
	ID             int64          `json:"id"`
	Name           string         `json:"name"`
	Group          string         `json:"group"`
	PeakRatio      float64        `json:"peak_ratio"`
	CV             float64        `json:"cv"`
	Mean           float64        `json:"mean"`
	Classification string         `json:"classification"`
	History        []MonthlyPoint `json:"history"`
}

// StrategyPoint places an item on the ABC-XYZ scatter.
type StrategyPoint struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	ABC              string  `json:"abc"`
	XYZ              string  `json:"xyz"`
	ConsumptionValue float64 `json:"consumption_value"`
	CV               float64 `json:"cv"`
}

// ZombieItem is stock with long coverage and immobilized value, flagged for liquidation.
type ZombieItem struct {
	ID               int64           `json:"id"`
	Name             string          `json:"name"`
	Group            string          `json:"group"`
	CoverageDays     float64         `json:"coverage_days"`
	ImmobilizedValue decimal.Decimal `json:"immobilized_value"`
}

type StrategyReport struct {
	Matrix  map[string]int  `json:"matrix"`
	Scatter []StrategyPoint `json:"scatter"`
	Zombies []ZombieItem    `json:"zombies"`
}

type CostPoint struct {
	Period   string          `json:"period"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

type InflationSeries struct {
	ID      int64       `json:"id"`
	Name    string      `json:"name"`
	Group   string      `json:"group"`
	History []CostPoint `json:"history"`
}

// Change is the relative unit-cost variation between the first and last points, in percent.
// Series with fewer than two points or a zero starting cost report 0.
func (s InflationSeries) Change() float64 {
	if len(s.History) < 2 {
		return 0
	}
	first := s.History[0].UnitCost
	last := s.History[len(s.History)-1].UnitCost
	if first.IsZero() {
		return 0
	}
	pct, _ := last.Sub(first).Div(first).Mul(decimal.NewFromInt(100)).Float64()
	return pct
}

// DecodeRisk accepts {"data": [...], "meta": {...}} or a bare array.
func DecodeRisk(data []byte) (RiskReport, error) {
	var rows []record
	var meta record
	if obj, err := decodeObject(data); err == nil {
		rows = obj.list("data", "items")
		meta = obj.object("meta")
	} else {
		list, lerr := decodeRecords(data)
		if lerr != nil {
			return RiskReport{}, err
		}
		rows = list
		meta = record{}
	}

	report := RiskReport{Items: make([]RiskItem, 0, len(rows))}
	for _, r := range rows {
		item := RiskItem{
			ID:               r.integer("id", "id_produto"),
			Name:             r.text("name", "nome"),
			Group:            r.text("group", "grupo"),
			MeanConsumption:  nonNegative(r.number("mean_consumption", "consumo_medio")),
			ConsumptionStd:   nonNegative(r.number("consumption_std", "consumo_std")),
			TotalConsumption: nonNegative(r.number("total_consumption", "consumo_total")),
			MeanStock:        nonNegative(r.number("mean_stock", "estoque_medio")),
			AccumulatedCost:  r.money("accumulated_cost", "custo_total_acumulado"),
			CV:               nonNegative(r.number("cv", "cv_consumo")),
			Critical:         r.flag("critical", "is_critical"),
		}
		if item.Group == "" {
			item.Group = DefaultGroup
		}
		if r.has("coverage_months", "cobertura_meses") {
			item.Coverage = nonNegative(r.number("coverage_months", "cobertura_meses"))
		} else {
			item.Coverage = CoverageMonths(item.MeanStock, item.MeanConsumption)
		}
		if !r.has("cv", "cv_consumo") && item.MeanConsumption > 0 {
			item.CV = item.ConsumptionStd / item.MeanConsumption
		}
		report.Items = append(report.Items, item)
	}

	report.Meta.TotalCritical = int(meta.integer("total_critical", "total_criticos"))
	zone := meta.object("thresholds", "zona_risco")
	if zone.has("cv_min") {
		v := nonNegative(zone.number("cv_min"))
		report.Meta.CVMin = &v
	}
	if zone.has("coverage_max", "cobertura_max") {
		v := nonNegative(zone.number("coverage_max", "cobertura_max"))
		report.Meta.CoverageMax = &v
	}
	return report, nil
}

func DecodeSeasonality(data []byte) ([]SeasonalItem, error) {
	rows, err := decodeRecords(data)
	if err != nil {
		return nil, err
	}
	out := make([]SeasonalItem, 0, len(rows))
	for _, r := range rows {
		item := SeasonalItem{
			ID:             r.integer("id", "id_produto"),
			Name:           r.text("name", "nome"),
			Group:          r.text("group", "grupo"),
			PeakRatio:      nonNegative(r.number("peak_ratio", "razao_pico")),
			CV:             nonNegative(r.number("cv")),
			Mean:           nonNegative(r.number("mean", "media")),
			Classification: r.text("classification", "classificacao"),
		}
		for _, h := range r.list("history", "historico") {
			item.History = append(item.History, MonthlyPoint{
				Period:      h.text("period", "periodo_str"),
				Year:        int(h.integer("year", "ano")),
				Month:       int(h.integer("month", "mes")),
				Consumption: nonNegative(h.number("consumption", "qt_consumo")),
			})
		}
		out = append(out, item)
	}
	return out, nil
}

func DecodeStrategy(data []byte) (StrategyReport, error) {
	obj, err := decodeObject(data)
	if err != nil {
		return StrategyReport{}, err
	}
	report := StrategyReport{Matrix: map[string]int{}}
	for k, v := range obj.object("matrix", "matriz") {
		if f, ok := toFloat(v); ok {
			report.Matrix[k] = int(nonNegative(f))
		}
	}
	for _, r := range obj.list("scatter", "dispersao") {
		report.Scatter = append(report.Scatter, StrategyPoint{
			ID:               r.integer("id", "id_produto"),
			Name:             r.text("name", "nome"),
			ABC:              r.text("abc", "classe_abc"),
			XYZ:              r.text("xyz", "classe_xyz"),
			ConsumptionValue: nonNegative(r.number("consumption_value", "valor_consumo")),
			CV:               nonNegative(r.number("cv")),
		})
	}
	for _, r := range obj.list("zombies", "zumbis") {
		report.Zombies = append(report.Zombies, ZombieItem{
			ID:               r.integer("id", "id_produto"),
			Name:             r.text("name", "nome"),
			Group:            r.text("group", "grupo"),
			CoverageDays:     nonNegative(r.number("coverage_days", "cobertura_dias")),
			ImmobilizedValue: r.money("immobilized_value", "valor_imobilizado"),
		})
	}
	sort.SliceStable(report.Zombies, func(a, b int) bool {
		return report.Zombies[a].ImmobilizedValue.GreaterThan(report.Zombies[b].ImmobilizedValue)
	})
	return report, nil
}

func DecodeInflation(data []byte) ([]InflationSeries, error) {
	rows, err := decodeRecords(data)
	if err != nil {
		return nil, err
	}
	out := make([]InflationSeries, 0, len(rows))
	for _, r := range rows {
		s := InflationSeries{
			ID:    r.integer("id", "id_produto"),
			Name:  r.text("name", "nome"),
			Group: r.text("group", "grupo"),
		}
		for _, h := range r.list("history", "historico") {
			s.History = append(s.History, CostPoint{
				Period:   h.text("period", "periodo", "periodo_str"),
				UnitCost: h.money("unit_cost", "custo_unitario"),
			})
		}
		out = append(out, s)
	}
	return out, nil
}
