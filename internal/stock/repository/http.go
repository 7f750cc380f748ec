package repository

import (
	"context"
	_ "embed"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/fekuna/stockintel-service/internal/model"
	"github.com/fekuna/stockintel-service/internal/pkg/logger"
	"github.com/fekuna/stockintel-service/internal/pkg/upstream"
	"github.com/fekuna/stockintel-service/internal/stock/dto"
	"go.uber.org/zap"
)

//go:embed mock_items.json
var mockItems []byte

var fallback = sync.OnceValue(func() []model.StockItem {
	items, err := model.DecodeItems(mockItems)
	if err != nil {
		panic(fmt.Sprintf("embedded fallback dataset: %v", err))
	}
	return items
})

// FallbackItems returns a fresh copy of the embedded dataset.
func FallbackItems() []model.StockItem {
	return slices.Clone(fallback())
}

type HTTPRepository struct {
	client *upstream.Client
	url    string
	logger logger.ZapLogger
}

func NewHTTPRepository(client *upstream.Client, url string, log logger.ZapLogger) *HTTPRepository {
	return &HTTPRepository{
		client: client,
		url:    url,
		logger: log,
	}
}

// Fetch performs the single upstream GET and reports every failure.
func (r *HTTPRepository) Fetch(ctx context.Context) ([]model.StockItem, error) {
	body, err := r.client.Get(ctx, r.url)
	if err != nil {
		return nil, err
	}
	items, err := model.DecodeItems(body)
	if err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return items, nil
}

// FetchItems is Fetch with the embedded dataset substituted on any failure.
func (r *HTTPRepository) FetchItems(ctx context.Context) dto.ItemSet {
	items, err := r.Fetch(ctx)
	if err != nil {
		r.logger.Warn("Upstream unavailable, using fallback dataset",
			zap.String("url", r.url),
			zap.Error(err),
		)
		return dto.ItemSet{Items: FallbackItems(), Source: dto.SourceFallback, FetchedAt: time.Now()}
	}

	r.logger.Debug("Fetched items from upstream", zap.Int("count", len(items)))
	return dto.ItemSet{Items: items, Source: dto.SourceUpstream, FetchedAt: time.Now()}
}
