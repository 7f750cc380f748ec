package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRisk_WithMeta(t *testing.T) {
	payload := []byte(`{
		"data": [
			{"id_produto": 10, "nome": "Levetiracetam", "grupo": "Medicamentos", "consumo_medio": 40,
			 "consumo_std": 48, "estoque_medio": 20, "custo_total_acumulado": 15000.5,
			 "cv_consumo": 1.2, "cobertura_meses": 0.5, "is_critical": true},
			{"id_produto": 11, "nome": "Gaze", "consumo_medio": 0, "estoque_medio": 30}
		],
		"meta": {"total_criticos": 1, "zona_risco": {"cv_min": 0.9, "cobertura_max": 1.5}}
	}`)

	report, err := DecodeRisk(payload)
	require.NoError(t, err)
	require.Len(t, report.Items, 2)

	first := report.Items[0]
	assert.Equal(t, int64(10), first.ID)
	assert.Equal(t, 1.2, first.CV)
	assert.Equal(t, 0.5, first.Coverage)
	assert.True(t, first.Critical)
	assert.True(t, first.AccumulatedCost.Equal(decimal.RequireFromString("15000.5")))

	second := report.Items[1]
	assert.Equal(t, DefaultGroup, second.Group)
	assert.Equal(t, 0.0, second.Coverage)
	assert.Equal(t, 0.0, second.CV)

	assert.Equal(t, 1, report.Meta.TotalCritical)
	got := report.Meta.Thresholds(RiskThresholds{CVMin: 0.8, CoverageMax: 1.0})
	assert.Equal(t, RiskThresholds{CVMin: 0.9, CoverageMax: 1.5}, got)
}

func TestRiskMeta_PartialThresholds(t *testing.T) {
	report, err := DecodeRisk([]byte(`{"data": [], "meta": {"zona_risco": {"cv_min": 1.1}}}`))
	require.NoError(t, err)
	assert.Empty(t, report.Items)

	got := report.Meta.Thresholds(RiskThresholds{CVMin: 0.8, CoverageMax: 1.0})
	assert.Equal(t, RiskThresholds{CVMin: 1.1, CoverageMax: 1.0}, got)
}

func TestDecodeRisk_DerivesMissingMetrics(t *testing.T) {
	report, err := DecodeRisk([]byte(`[{"id": 1, "mean_consumption": 10, "consumption_std": 5, "mean_stock": 25}]`))
	require.NoError(t, err)
	require.Len(t, report.Items, 1)
	assert.Equal(t, 0.5, report.Items[0].CV)
	assert.Equal(t, 2.5, report.Items[0].Coverage)
	assert.Nil(t, report.Meta.CVMin)
	assert.Nil(t, report.Meta.CoverageMax)
}

func TestDecodeSeasonality(t *testing.T) {
	payload := []byte(`[
		{"id_produto": 5, "nome": "Oseltamivir", "grupo": "Medicamentos", "razao_pico": 4.2, "cv": 0.9,
		 "media": 120, "classificacao": "Sazonal/Pico",
		 "historico": [{"periodo_str": "2024-06", "ano": 2024, "mes": 6, "qt_consumo": 500},
		               {"ano": 2024, "mes": 7, "qt_consumo": 80}]}
	]`)

	items, err := DecodeSeasonality(payload)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, SeasonalPeak, items[0].Classification)
	require.Len(t, items[0].History, 2)
	assert.Equal(t, "2024-06", items[0].History[0].Label())
	assert.Equal(t, "2024-07", items[0].History[1].Label())
}

func TestDecodeStrategy_SortsZombiesByValue(t *testing.T) {
	payload := []byte(`{
		"matriz": {"AX": 4, "CZ": 12, "BY": "3"},
		"dispersao": [{"id_produto": 1, "nome": "A", "classe_abc": "A", "classe_xyz": "X", "valor_consumo": 1000, "cv": 0.1}],
		"zumbis": [
			{"id_produto": 2, "nome": "Small", "cobertura_dias": 120, "valor_imobilizado": 100},
			{"id_produto": 3, "nome": "Large", "cobertura_dias": 400, "valor_imobilizado": 9000}
		]
	}`)

	report, err := DecodeStrategy(payload)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"AX": 4, "CZ": 12, "BY": 3}, report.Matrix)
	require.Len(t, report.Scatter, 1)
	assert.Equal(t, "X", report.Scatter[0].XYZ)
	require.Len(t, report.Zombies, 2)
	assert.Equal(t, "Large", report.Zombies[0].Name)
}

func TestInflationChange(t *testing.T) {
	series, err := DecodeInflation([]byte(`[
		{"id_produto": 1, "nome": "Luva", "historico": [
			{"periodo": "2024-01", "custo_unitario": 10},
			{"periodo": "2024-06", "custo_unitario": 12.5}
		]},
		{"id_produto": 2, "nome": "Gaze", "historico": [{"periodo": "2024-01", "custo_unitario": 0}, {"periodo": "2024-02", "custo_unitario": 3}]},
		{"id_produto": 3, "nome": "Soro", "historico": []}
	]`))
	require.NoError(t, err)
	require.Len(t, series, 3)

	assert.InDelta(t, 25.0, series[0].Change(), 1e-9)
	assert.Equal(t, 0.0, series[1].Change())
	assert.Equal(t, 0.0, series[2].Change())
}
