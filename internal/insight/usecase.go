package insight

import (
	"context"
	"errors"

	"github.com/fekuna/stockintel-service/internal/insight/dto"
	"github.com/fekuna/stockintel-service/internal/model"
)

var ErrItemNotFound = errors.New("seasonal item not found")

type UseCase interface {
	Dashboard(ctx context.Context) (*dto.Dashboard, error)
	Risk(ctx context.Context) (*dto.RiskView, error)
	SeasonalItem(ctx context.Context, id int64) (*model.SeasonalItem, error)
}
