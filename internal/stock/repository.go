package stock

import (
	"context"

	"github.com/fekuna/stockintel-service/internal/stock/dto"
)

// Repository never fails: implementations substitute a fallback dataset instead.
type Repository interface {
	FetchItems(ctx context.Context) dto.ItemSet
}
