package tally

import "github.com/tallyhq/gcptally/pkg/inventory"

// Counts holds per-resource-type accumulators for one scope: a single
// project while it is being audited, or the whole run. The zero value is a
// fully reset counter set.
type Counts struct {
	Compute   int `json:"compute_instances"`
	SQL       int `json:"sql_instances"`
	Storage   int `json:"storage_buckets"`
	Filestore int `json:"filestore_instances"`
	BigQuery  int `json:"bigquery_datasets"`
	Bigtable  int `json:"bigtable_instances"`
	Spanner   int `json:"spanner_instances"`
	Redis     int `json:"redis_instances"`
	Memcache  int `json:"memcache_instances"`
	Firestore int `json:"firestore_databases"`
}

func (c *Counts) field(resource inventory.ResourceType) *int {
	switch resource {
	case inventory.ComputeInstances:
		return &c.Compute
	case inventory.SQLInstances:
		return &c.SQL
	case inventory.StorageBuckets:
		return &c.Storage
	case inventory.FilestoreInstances:
		return &c.Filestore
	case inventory.BigQueryDatasets:
		return &c.BigQuery
	case inventory.BigtableInstances:
		return &c.Bigtable
	case inventory.SpannerInstances:
		return &c.Spanner
	case inventory.RedisInstances:
		return &c.Redis
	case inventory.MemcacheInstances:
		return &c.Memcache
	case inventory.FirestoreDatabases:
		return &c.Firestore
	}
	return nil
}

// Add accumulates n resources of the given type. Counters never decrease,
// so negative contributions are ignored.
func (c *Counts) Add(resource inventory.ResourceType, n int) {
	if n <= 0 {
		return
	}
	if f := c.field(resource); f != nil {
		*f += n
	}
}

// Get returns the accumulated count for the given resource type.
func (c *Counts) Get(resource inventory.ResourceType) int {
	if f := c.field(resource); f != nil {
		return *f
	}
	return 0
}

// Merge folds another counter set into this one, field by field.
func (c *Counts) Merge(other Counts) {
	for _, resource := range inventory.ReportOrder {
		c.Add(resource, other.Get(resource))
	}
}

// Reset zeroes every accumulator.
func (c *Counts) Reset() {
	*c = Counts{}
}

// Total is the derived total: always the sum of the ten accumulators.
func (c *Counts) Total() int {
	total := 0
	for _, resource := range inventory.ReportOrder {
		total += c.Get(resource)
	}
	return total
}
