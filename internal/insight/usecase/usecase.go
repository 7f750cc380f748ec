package usecase

import (
	"context"

	"github.com/fekuna/stockintel-service/internal/insight"
	"github.com/fekuna/stockintel-service/internal/insight/dto"
	"github.com/fekuna/stockintel-service/internal/model"
	"github.com/fekuna/stockintel-service/internal/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type insightUseCase struct {
	repo       insight.Repository
	thresholds model.RiskThresholds
	logger     logger.ZapLogger
}

// NewInsightUseCase takes the configured risk thresholds, used whenever the risk
// endpoint does not deliver its own.
func NewInsightUseCase(repo insight.Repository, thresholds model.RiskThresholds, log logger.ZapLogger) insight.UseCase {
	return &insightUseCase{
		repo:       repo,
		thresholds: thresholds,
		logger:     log,
	}
}

// Dashboard fetches the four datasets concurrently. A failed fetch never cancels or fails
// the others; it only leaves its section empty and records the reason.
func (uc *insightUseCase) Dashboard(ctx context.Context) (*dto.Dashboard, error) {
	var (
		risk      model.RiskReport
		seasonal  []model.SeasonalItem
		strategy  model.StrategyReport
		inflation []model.InflationSeries

		riskErr, seasonalErr, strategyErr, inflationErr error
	)

	var g errgroup.Group
	g.Go(func() error {
		risk, riskErr = uc.repo.FetchRisk(ctx)
		return nil
	})
	g.Go(func() error {
		seasonal, seasonalErr = uc.repo.FetchSeasonality(ctx)
		return nil
	})
	g.Go(func() error {
		strategy, strategyErr = uc.repo.FetchStrategy(ctx)
		return nil
	})
	g.Go(func() error {
		inflation, inflationErr = uc.repo.FetchInflation(ctx)
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d := &dto.Dashboard{Errors: map[string]string{}}
	uc.record(d, dto.DatasetRisk, riskErr)
	uc.record(d, dto.DatasetSeasonality, seasonalErr)
	uc.record(d, dto.DatasetStrategy, strategyErr)
	uc.record(d, dto.DatasetInflation, inflationErr)

	if riskErr == nil {
		d.Risk = uc.riskView(risk)
	}
	if seasonalErr == nil {
		d.Seasonality = &dto.SeasonalityView{
			Items:  seasonal,
			Counts: insight.CountByClassification(seasonal),
		}
	}
	if strategyErr == nil {
		d.Strategy = &strategy
	}
	if inflationErr == nil {
		d.Inflation = make([]dto.InflationRow, 0, len(inflation))
		for _, s := range inflation {
			d.Inflation = append(d.Inflation, dto.InflationRow{InflationSeries: s, ChangePct: s.Change()})
		}
	}
	return d, nil
}

func (uc *insightUseCase) Risk(ctx context.Context) (*dto.RiskView, error) {
	report, err := uc.repo.FetchRisk(ctx)
	if err != nil {
		return nil, err
	}
	return uc.riskView(report), nil
}

func (uc *insightUseCase) SeasonalItem(ctx context.Context, id int64) (*model.SeasonalItem, error) {
	items, err := uc.repo.FetchSeasonality(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, insight.ErrItemNotFound
}

func (uc *insightUseCase) riskView(report model.RiskReport) *dto.RiskView {
	t := report.Meta.Thresholds(uc.thresholds)
	items := insight.Classify(report.Items, t)

	v := &dto.RiskView{
		Items:       items,
		Thresholds:  t,
		TopCritical: insight.TopCritical(items, insight.TopCriticalLimit),
	}
	for _, it := range items {
		if it.Critical {
			v.CriticalCount++
		}
		if it.CV > t.CVMin {
			v.UnstableCount++
		}
		if it.Coverage < t.CoverageMax {
			v.LowCoverageCount++
		}
	}
	if report.Meta.TotalCritical != 0 && report.Meta.TotalCritical != v.CriticalCount {
		uc.logger.Debug("Upstream critical count differs from local classification",
			zap.Int("upstream", report.Meta.TotalCritical),
			zap.Int("local", v.CriticalCount),
		)
	}
	return v
}

func (uc *insightUseCase) record(d *dto.Dashboard, dataset string, err error) {
	if err == nil {
		return
	}
	uc.logger.Warn("Insight dataset unavailable", zap.String("dataset", dataset), zap.Error(err))
	d.Errors[dataset] = err.Error()
}
