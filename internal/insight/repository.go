package insight

import (
	"context"
	"errors"

	"github.com/fekuna/stockintel-service/internal/model"
)

// ErrNotConfigured is returned for an insight endpoint without a URL.
var ErrNotConfigured = errors.New("insight endpoint not configured")

// Repository fetches the auxiliary insight datasets. Unlike stock.Repository there is no
// fallback: callers render an empty state on error.
type Repository interface {
	FetchRisk(ctx context.Context) (model.RiskReport, error)
	FetchSeasonality(ctx context.Context) ([]model.SeasonalItem, error)
	FetchStrategy(ctx context.Context) (model.StrategyReport, error)
	FetchInflation(ctx context.Context) ([]model.InflationSeries, error)
}
