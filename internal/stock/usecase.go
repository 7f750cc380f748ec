package stock

import (
	"context"

	"github.com/fekuna/stockintel-service/internal/stock/dto"
)

type UseCase interface {
	Snapshot(ctx context.Context) (*dto.ItemSet, error)
	ListItems(ctx context.Context, filters *dto.ItemFilters) (*dto.ItemList, error)
	Overview(ctx context.Context) (*dto.OverviewResult, error)
	Clusters(ctx context.Context, group string) (*dto.ClusterSummary, error)
	Groups(ctx context.Context) ([]string, error)
}
