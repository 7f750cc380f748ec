package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fekuna/stockintel-service/internal/insight"
	"github.com/fekuna/stockintel-service/internal/insight/dto"
	"github.com/fekuna/stockintel-service/internal/model"
	"github.com/fekuna/stockintel-service/internal/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeRepo struct {
	risk      model.RiskReport
	seasonal  []model.SeasonalItem
	strategy  model.StrategyReport
	inflation []model.InflationSeries

	riskErr, seasonalErr, strategyErr, inflationErr error

	delay    time.Duration
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (f *fakeRepo) enter() func() {
	n := f.inFlight.Add(1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(f.delay)
	return func() { f.inFlight.Add(-1) }
}

func (f *fakeRepo) FetchRisk(context.Context) (model.RiskReport, error) {
	defer f.enter()()
	return f.risk, f.riskErr
}

func (f *fakeRepo) FetchSeasonality(context.Context) ([]model.SeasonalItem, error) {
	defer f.enter()()
	return f.seasonal, f.seasonalErr
}

func (f *fakeRepo) FetchStrategy(context.Context) (model.StrategyReport, error) {
	defer f.enter()()
	return f.strategy, f.strategyErr
}

func (f *fakeRepo) FetchInflation(context.Context) ([]model.InflationSeries, error) {
	defer f.enter()()
	return f.inflation, f.inflationErr
}

var defaults = model.RiskThresholds{CVMin: 0.8, CoverageMax: 1.0}

func risk(id int64, cv, coverage float64, cost int64) model.RiskItem {
	return model.RiskItem{ID: id, CV: cv, Coverage: coverage, AccumulatedCost: decimal.NewFromInt(cost)}
}

func TestDashboard_AllDatasets(t *testing.T) {
	repo := &fakeRepo{
		risk: model.RiskReport{Items: []model.RiskItem{
			risk(1, 1.2, 0.5, 100),
			risk(2, 0.5, 0.5, 900),
			risk(3, 0.9, 2.0, 50),
			risk(4, 2.0, 0.1, 700),
		}},
		seasonal: []model.SeasonalItem{
			{ID: 1, Classification: model.SeasonalPeak},
			{ID: 2, Classification: model.SeasonalStable},
			{ID: 3, Classification: model.SeasonalStable},
		},
		strategy: model.StrategyReport{Matrix: map[string]int{"AX": 2}},
		inflation: []model.InflationSeries{{ID: 9, History: []model.CostPoint{
			{Period: "2024-01", UnitCost: decimal.NewFromInt(10)},
			{Period: "2024-06", UnitCost: decimal.NewFromInt(15)},
		}}},
	}

	d, err := NewInsightUseCase(repo, defaults, logger.NewNop()).Dashboard(context.Background())
	require.NoError(t, err)
	assert.Empty(t, d.Errors)

	require.NotNil(t, d.Risk)
	assert.Equal(t, defaults, d.Risk.Thresholds)
	assert.Equal(t, 2, d.Risk.CriticalCount)
	assert.Equal(t, 3, d.Risk.UnstableCount)
	assert.Equal(t, 3, d.Risk.LowCoverageCount)
	require.Len(t, d.Risk.TopCritical, 2)
	assert.Equal(t, int64(4), d.Risk.TopCritical[0].ID)
	assert.Equal(t, int64(1), d.Risk.TopCritical[1].ID)

	require.NotNil(t, d.Seasonality)
	assert.Equal(t, 1, d.Seasonality.Counts[model.SeasonalPeak])
	assert.Equal(t, 2, d.Seasonality.Counts[model.SeasonalStable])

	require.NotNil(t, d.Strategy)
	assert.Equal(t, 2, d.Strategy.Matrix["AX"])

	require.Len(t, d.Inflation, 1)
	assert.InDelta(t, 50.0, d.Inflation[0].ChangePct, 1e-9)
}

func TestDashboard_UpstreamThresholdsWin(t *testing.T) {
	cv := 1.5
	repo := &fakeRepo{risk: model.RiskReport{
		Items: []model.RiskItem{risk(1, 1.2, 0.5, 1)},
		Meta:  model.RiskMeta{CVMin: &cv},
	}}

	d, err := NewInsightUseCase(repo, defaults, logger.NewNop()).Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.RiskThresholds{CVMin: 1.5, CoverageMax: 1.0}, d.Risk.Thresholds)
	assert.Zero(t, d.Risk.CriticalCount)
}

func TestDashboard_FailuresAreIndependent(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	repo := &fakeRepo{
		riskErr:     errors.New("risk down"),
		seasonal:    []model.SeasonalItem{{ID: 1, Classification: model.SeasonalPeak}},
		strategyErr: insight.ErrNotConfigured,
		inflation:   []model.InflationSeries{},
	}

	d, err := NewInsightUseCase(repo, defaults, logger.Wrap(zap.New(core))).Dashboard(context.Background())
	require.NoError(t, err)

	assert.Nil(t, d.Risk)
	assert.Nil(t, d.Strategy)
	assert.NotNil(t, d.Seasonality)
	assert.NotNil(t, d.Inflation)
	assert.True(t, d.Failed(dto.DatasetRisk))
	assert.True(t, d.Failed(dto.DatasetStrategy))
	assert.False(t, d.Failed(dto.DatasetSeasonality))
	assert.Equal(t, "risk down", d.Errors[dto.DatasetRisk])
	assert.Equal(t, 2, logs.Len())
}

func TestDashboard_AllFail(t *testing.T) {
	boom := errors.New("boom")
	repo := &fakeRepo{riskErr: boom, seasonalErr: boom, strategyErr: boom, inflationErr: boom}

	d, err := NewInsightUseCase(repo, defaults, logger.NewNop()).Dashboard(context.Background())
	require.NoError(t, err)
	assert.Len(t, d.Errors, 4)
	assert.Nil(t, d.Risk)
	assert.Nil(t, d.Seasonality)
	assert.Nil(t, d.Inflation)
}

func TestDashboard_FetchesConcurrently(t *testing.T) {
	repo := &fakeRepo{delay: 50 * time.Millisecond}

	_, err := NewInsightUseCase(repo, defaults, logger.NewNop()).Dashboard(context.Background())
	require.NoError(t, err)
	assert.Greater(t, repo.peak.Load(), int32(1))
}

func TestDashboard_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewInsightUseCase(&fakeRepo{}, defaults, logger.NewNop()).Dashboard(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSeasonalItem(t *testing.T) {
	repo := &fakeRepo{seasonal: []model.SeasonalItem{{ID: 1}, {ID: 7, Name: "Oseltamivir"}}}
	uc := NewInsightUseCase(repo, defaults, logger.NewNop())

	item, err := uc.SeasonalItem(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Oseltamivir", item.Name)

	_, err = uc.SeasonalItem(context.Background(), 99)
	assert.ErrorIs(t, err, insight.ErrItemNotFound)
}

func TestRisk(t *testing.T) {
	repo := &fakeRepo{risk: model.RiskReport{Items: []model.RiskItem{risk(1, 1.2, 0.5, 10), risk(2, 0.1, 0.5, 20)}}}
	uc := NewInsightUseCase(repo, defaults, logger.NewNop())

	v, err := uc.Risk(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, v.CriticalCount)
	assert.True(t, v.Items[0].Critical)
	assert.False(t, v.Items[1].Critical)

	repo.riskErr = errors.New("down")
	_, err = uc.Risk(context.Background())
	assert.Error(t, err)
}
