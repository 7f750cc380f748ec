package analytics

import "github.com/fekuna/stockintel-service/internal/model"

// ClusterBucket keeps the items of one cluster in the order they were encountered.
type ClusterBucket struct {
	ClusterID int
	Items     []model.StockItem
}

type GroupBucket struct {
	Group    string
	Clusters []ClusterBucket
}

// GroupByCluster partitions items by cluster id. Buckets appear in first-seen order and
// items keep their input order inside each bucket.
func GroupByCluster(items []model.StockItem) []ClusterBucket {
	index := make(map[int]int)
	var out []ClusterBucket
	for _, it := range items {
		i, ok := index[it.ClusterID]
		if !ok {
			i = len(out)
			index[it.ClusterID] = i
			out = append(out, ClusterBucket{ClusterID: it.ClusterID})
		}
		out[i].Items = append(out[i].Items, it)
	}
	return out
}

// GroupByGroupAndCluster partitions first by group name and then by cluster id, with the
// same first-seen ordering guarantees as GroupByCluster.
func GroupByGroupAndCluster(items []model.StockItem) []GroupBucket {
	index := make(map[string]int)
	var partitions [][]model.StockItem
	var names []string
	for _, it := range items {
		i, ok := index[it.Group]
		if !ok {
			i = len(names)
			index[it.Group] = i
			names = append(names, it.Group)
			partitions = append(partitions, nil)
		}
		partitions[i] = append(partitions[i], it)
	}

	out := make([]GroupBucket, len(names))
	for i, name := range names {
		out[i] = GroupBucket{Group: name, Clusters: GroupByCluster(partitions[i])}
	}
	return out
}

// ClusterMap is the keyed view of GroupByCluster.
func ClusterMap(items []model.StockItem) map[int][]model.StockItem {
	out := make(map[int][]model.StockItem)
	for _, b := range GroupByCluster(items) {
		out[b.ClusterID] = b.Items
	}
	return out
}

// GroupClusterMap is the keyed view of GroupByGroupAndCluster.
func GroupClusterMap(items []model.StockItem) map[string]map[int][]model.StockItem {
	out := make(map[string]map[int][]model.StockItem)
	for _, g := range GroupByGroupAndCluster(items) {
		inner := make(map[int][]model.StockItem, len(g.Clusters))
		for _, c := range g.Clusters {
			inner[c.ClusterID] = c.Items
		}
		out[g.Group] = inner
	}
	return out
}
