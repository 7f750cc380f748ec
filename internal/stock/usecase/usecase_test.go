package usecase

import (
	"context"
	"testing"

	"github.com/fekuna/stockintel-service/internal/analytics"
	"github.com/fekuna/stockintel-service/internal/catalog"
	"github.com/fekuna/stockintel-service/internal/model"
	"github.com/fekuna/stockintel-service/internal/pkg/logger"
	"github.com/fekuna/stockintel-service/internal/stock"
	"github.com/fekuna/stockintel-service/internal/stock/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticRepo struct {
	items  []model.StockItem
	source dto.Source
}

func (r staticRepo) FetchItems(context.Context) dto.ItemSet {
	return dto.ItemSet{Items: r.items, Source: r.source}
}

func mk(id int64, name, group string, cluster int, cost string, qty int64) model.StockItem {
	return model.StockItem{
		ID:                        id,
		Name:                      name,
		Group:                     group,
		UnitCost:                  decimal.RequireFromString(cost),
		AverageMonthlyConsumption: 10,
		StockQuantity:             qty,
		ClusterID:                 cluster,
	}.WithDerived()
}

func newUseCase(items ...model.StockItem) stock.UseCase {
	return NewStockUseCase(
		staticRepo{items: items, source: dto.SourceUpstream},
		catalog.Default(),
		analytics.ClusterRule{ClusterID: 3},
		logger.NewNop(),
	)
}

func fixture() []model.StockItem {
	return []model.StockItem{
		mk(1, "Dipirona 500mg", "Medicamentos", 0, "0.50", 1000),
		mk(2, "Spinraza", "Medicamentos", 1, "300000", 2),
		mk(3, "Luva Nitrílica", "Materiais", 0, "0.80", 5000),
		mk(4, "Dipirona Gotas", "Medicamentos", 0, "4.00", 200),
		mk(5, "Stent Coronário", "OPME", 3, "9000", 3),
	}
}

func TestListItems_NoFilters(t *testing.T) {
	res, err := newUseCase(fixture()...).ListItems(context.Background(), nil)
	require.NoError(t, err)

	assert.Len(t, res.Items, 5)
	assert.Equal(t, 5, res.Total)
	assert.Equal(t, []string{"Materiais", "Medicamentos", "OPME"}, res.Groups)
	assert.Equal(t, []int{0, 1, 3}, res.Clusters)
	assert.Equal(t, dto.SourceUpstream, res.Source)
}

func TestListItems_SearchIsCaseInsensitive(t *testing.T) {
	res, err := newUseCase(fixture()...).ListItems(context.Background(), &dto.ItemFilters{Search: "  dIPIRONA "})
	require.NoError(t, err)

	require.Len(t, res.Items, 2)
	assert.Equal(t, int64(1), res.Items[0].ID)
	assert.Equal(t, int64(4), res.Items[1].ID)
	assert.Equal(t, 5, res.Total)
}

func TestListItems_GroupAndCluster(t *testing.T) {
	zero := 0
	res, err := newUseCase(fixture()...).ListItems(context.Background(), &dto.ItemFilters{
		Group:     "Medicamentos",
		ClusterID: &zero,
	})
	require.NoError(t, err)

	require.Len(t, res.Items, 2)
	for _, it := range res.Items {
		assert.Equal(t, "Medicamentos", it.Group)
		assert.Equal(t, 0, it.ClusterID)
	}
	// cluster options follow the selected group
	assert.Equal(t, []int{0, 1}, res.Clusters)
}

func TestListItems_DefaultGroupIsFilterable(t *testing.T) {
	items := []model.StockItem{mk(1, "Sem grupo", model.DefaultGroup, 0, "1", 1)}
	res, err := newUseCase(items...).ListItems(context.Background(), &dto.ItemFilters{Group: "Outros"})
	require.NoError(t, err)
	assert.Len(t, res.Items, 1)
}

func TestOverview(t *testing.T) {
	res, err := newUseCase(fixture()...).Overview(context.Background())
	require.NoError(t, err)

	// 0.5*1000 + 300000*2 + 0.8*5000 + 4*200 + 9000*3
	assert.True(t, res.Stats.TotalStockValue.Equal(decimal.NewFromInt(632300)), res.Stats.TotalStockValue.String())
	assert.Equal(t, 5, res.Stats.ItemCount)
	assert.Equal(t, 1, res.Stats.CriticalItemCount)
	assert.Len(t, res.Items, 5)
}

func TestOverview_Empty(t *testing.T) {
	res, err := newUseCase().Overview(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Stats.TotalStockValue.IsZero())
	assert.Zero(t, res.Stats.ItemCount)
	assert.Zero(t, res.Stats.ClusterCount)
	assert.Zero(t, res.Stats.CriticalItemCount)
}

func TestClusters_ProfilesAndDefinitions(t *testing.T) {
	res, err := newUseCase(fixture()...).Clusters(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, res.Profiles, 4)
	assert.Equal(t, "Materiais", res.Profiles[0].Group)
	assert.Equal(t, "Medicamentos", res.Profiles[1].Group)
	assert.Equal(t, 0, res.Profiles[1].ClusterID)
	assert.Equal(t, 1, res.Profiles[2].ClusterID)
	assert.Equal(t, "OPME", res.Profiles[3].Group)

	med0 := res.Profiles[1]
	assert.Equal(t, 2, med0.ItemCount)
	assert.Equal(t, []string{"Dipirona 500mg", "Dipirona Gotas"}, med0.Examples)
	assert.Zero(t, med0.Remaining)
	assert.True(t, med0.Means.UnitCost.Equal(decimal.RequireFromString("2.25")))

	assert.Equal(t, "Cluster 1: Medicamento de Alto Custo", res.Profiles[2].Definition.Title)
}

func TestClusters_ExamplesAreCapped(t *testing.T) {
	var items []model.StockItem
	for i := int64(1); i <= 8; i++ {
		items = append(items, mk(i, "item", "Dietas", 2, "1", 1))
	}
	res, err := newUseCase(items...).Clusters(context.Background(), "Dietas")
	require.NoError(t, err)

	require.Len(t, res.Profiles, 1)
	assert.Len(t, res.Profiles[0].Examples, 5)
	assert.Equal(t, 3, res.Profiles[0].Remaining)
	assert.Equal(t, "Dietas", res.Group)
}

func TestClusters_UnknownPairUsesDefault(t *testing.T) {
	res, err := newUseCase(mk(1, "x", "Desconhecido", 9, "1", 1)).Clusters(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, res.Profiles, 1)
	assert.Equal(t, catalog.Default().DefaultDefinition(), res.Profiles[0].Definition)
}

func TestGroups(t *testing.T) {
	groups, err := newUseCase(fixture()...).Groups(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Materiais", "Medicamentos", "OPME"}, groups)
}

func TestSnapshot_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newUseCase(fixture()...).Snapshot(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
