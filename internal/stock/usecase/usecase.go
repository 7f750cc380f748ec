package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/fekuna/stockintel-service/internal/analytics"
	"github.com/fekuna/stockintel-service/internal/catalog"
	"github.com/fekuna/stockintel-service/internal/model"
	"github.com/fekuna/stockintel-service/internal/pkg/logger"
	"github.com/fekuna/stockintel-service/internal/stock"
	"github.com/fekuna/stockintel-service/internal/stock/dto"
	"go.uber.org/zap"
)

// maxExamples is how many item names a cluster profile lists before summarizing the rest.
const maxExamples = 5

type stockUseCase struct {
	repo    stock.Repository
	catalog *catalog.Catalog
	rule    analytics.CriticalRule
	logger  logger.ZapLogger
}

func NewStockUseCase(repo stock.Repository, cat *catalog.Catalog, rule analytics.CriticalRule, log logger.ZapLogger) stock.UseCase {
	return &stockUseCase{
		repo:    repo,
		catalog: cat,
		rule:    rule,
		logger:  log,
	}
}

func (uc *stockUseCase) Snapshot(ctx context.Context) (*dto.ItemSet, error) {
	set := uc.repo.FetchItems(ctx)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &set, nil
}

func (uc *stockUseCase) ListItems(ctx context.Context, filters *dto.ItemFilters) (*dto.ItemList, error) {
	set, err := uc.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if filters == nil {
		filters = &dto.ItemFilters{}
	}

	scoped := set.Items
	if filters.Group != "" {
		scoped = filter(scoped, func(it model.StockItem) bool { return it.Group == filters.Group })
	}

	query := strings.ToLower(strings.TrimSpace(filters.Search))
	matched := filter(scoped, func(it model.StockItem) bool {
		if query != "" && !strings.Contains(strings.ToLower(it.Name), query) {
			return false
		}
		return filters.ClusterID == nil || it.ClusterID == *filters.ClusterID
	})

	uc.logger.Debug("Listed items",
		zap.String("search", filters.Search),
		zap.String("group", filters.Group),
		zap.Int("matched", len(matched)),
		zap.Int("total", len(set.Items)),
	)

	return &dto.ItemList{
		Items:    matched,
		Total:    len(set.Items),
		Groups:   analytics.DistinctGroups(set.Items),
		Clusters: analytics.DistinctClusters(scoped),
		Source:   set.Source,
	}, nil
}

func (uc *stockUseCase) Overview(ctx context.Context) (*dto.OverviewResult, error) {
	set, err := uc.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.OverviewResult{
		Stats:  analytics.ComputeOverview(set.Items, uc.rule),
		Items:  set.Items,
		Source: set.Source,
	}, nil
}

// Clusters profiles every (group, cluster) pair, optionally restricted to one group.
// Groups are listed alphabetically and clusters ascending inside each group.
func (uc *stockUseCase) Clusters(ctx context.Context, group string) (*dto.ClusterSummary, error) {
	set, err := uc.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	scoped := set.Items
	if group != "" {
		scoped = filter(scoped, func(it model.StockItem) bool { return it.Group == group })
	}

	buckets := analytics.GroupByGroupAndCluster(scoped)
	sort.SliceStable(buckets, func(i, j int) bool { return buckets[i].Group < buckets[j].Group })

	profiles := []dto.ClusterProfile{}
	for _, g := range buckets {
		clusters := g.Clusters
		sort.SliceStable(clusters, func(i, j int) bool { return clusters[i].ClusterID < clusters[j].ClusterID })
		for _, c := range clusters {
			profiles = append(profiles, uc.profile(g.Group, c))
		}
	}

	return &dto.ClusterSummary{
		Groups:   analytics.DistinctGroups(set.Items),
		Group:    group,
		Profiles: profiles,
		Overall:  analytics.ComputeMeans(scoped),
		Source:   set.Source,
	}, nil
}

func (uc *stockUseCase) Groups(ctx context.Context) ([]string, error) {
	set, err := uc.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.DistinctGroups(set.Items), nil
}

func (uc *stockUseCase) profile(group string, bucket analytics.ClusterBucket) dto.ClusterProfile {
	examples := make([]string, 0, maxExamples)
	for _, it := range bucket.Items {
		if len(examples) == maxExamples {
			break
		}
		examples = append(examples, it.Name)
	}

	return dto.ClusterProfile{
		Group:      group,
		ClusterID:  bucket.ClusterID,
		ItemCount:  len(bucket.Items),
		Means:      analytics.ComputeMeans(bucket.Items),
		Examples:   examples,
		Remaining:  len(bucket.Items) - len(examples),
		Definition: uc.catalog.Lookup(group, bucket.ClusterID),
	}
}

func filter(items []model.StockItem, keep func(model.StockItem) bool) []model.StockItem {
	out := make([]model.StockItem, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
