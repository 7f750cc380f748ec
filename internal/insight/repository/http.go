package repository

import (
	"context"
	"fmt"

	"github.com/fekuna/stockintel-service/internal/insight"
	"github.com/fekuna/stockintel-service/internal/model"
	"github.com/fekuna/stockintel-service/internal/pkg/upstream"
)

type Endpoints struct {
	Risk        string
	Seasonality string
	Strategy    string
	Inflation   string
}

type HTTPRepository struct {
	client    *upstream.Client
	endpoints Endpoints
}

func NewHTTPRepository(client *upstream.Client, endpoints Endpoints) *HTTPRepository {
	return &HTTPRepository{
		client:    client,
		endpoints: endpoints,
	}
}

func (r *HTTPRepository) FetchRisk(ctx context.Context) (model.RiskReport, error) {
	body, err := r.get(ctx, r.endpoints.Risk)
	if err != nil {
		return model.RiskReport{}, err
	}
	report, err := model.DecodeRisk(body)
	if err != nil {
		return model.RiskReport{}, fmt.Errorf("decode risk: %w", err)
	}
	return report, nil
}

func (r *HTTPRepository) FetchSeasonality(ctx context.Context) ([]model.SeasonalItem, error) {
	body, err := r.get(ctx, r.endpoints.Seasonality)
	if err != nil {
		return nil, err
	}
	items, err := model.DecodeSeasonality(body)
	if err != nil {
		return nil, fmt.Errorf("decode seasonality: %w", err)
	}
	return items, nil
}

func (r *HTTPRepository) FetchStrategy(ctx context.Context) (model.StrategyReport, error) {
	body, err := r.get(ctx, r.endpoints.Strategy)
	if err != nil {
		return model.StrategyReport{}, err
	}
	report, err := model.DecodeStrategy(body)
	if err != nil {
		return model.StrategyReport{}, fmt.Errorf("decode strategy: %w", err)
	}
	return report, nil
}

func (r *HTTPRepository) FetchInflation(ctx context.Context) ([]model.InflationSeries, error) {
	body, err := r.get(ctx, r.endpoints.Inflation)
	if err != nil {
		return nil, err
	}
	series, err := model.DecodeInflation(body)
	if err != nil {
		return nil, fmt.Errorf("decode inflation: %w", err)
	}
	return series, nil
}

func (r *HTTPRepository) get(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, insight.ErrNotConfigured
	}
	return r.client.Get(ctx, url)
}
