package inventory

import "context"

// ResourceType identifies one billable GCP service category.
type ResourceType string

const (
	ComputeInstances   ResourceType = "compute-instances"
	SQLInstances       ResourceType = "sql-instances"
	StorageBuckets     ResourceType = "storage-buckets"
	FilestoreInstances ResourceType = "filestore-instances"
	BigQueryDatasets   ResourceType = "bigquery-datasets"
	BigtableInstances  ResourceType = "bigtable-instances"
	SpannerInstances   ResourceType = "spanner-instances"
	RedisInstances     ResourceType = "redis-instances"
	MemcacheInstances  ResourceType = "memcache-instances"
	FirestoreDatabases ResourceType = "firestore-databases"
)

// ReportOrder is the order resource types are queried and reported in.
// Report output must be reproducible, so this order is fixed.
var ReportOrder = []ResourceType{
	ComputeInstances,
	SQLInstances,
	StorageBuckets,
	FilestoreInstances,
	BigQueryDatasets,
	BigtableInstances,
	SpannerInstances,
	RedisInstances,
	MemcacheInstances,
	FirestoreDatabases,
}

var labels = map[ResourceType]string{
	ComputeInstances:   "Compute instances (running)",
	SQLInstances:       "Cloud SQL instances",
	StorageBuckets:     "Storage buckets",
	FilestoreInstances: "Filestore instances",
	BigQueryDatasets:   "BigQuery datasets",
	BigtableInstances:  "Bigtable instances",
	SpannerInstances:   "Spanner instances",
	RedisInstances:     "Redis instances",
	MemcacheInstances:  "Memcache instances",
	FirestoreDatabases: "Firestore databases",
}

// Label returns the human-readable report label for the resource type.
func (r ResourceType) Label() string {
	if l, ok := labels[r]; ok {
		return l
	}
	return string(r)
}

func (r ResourceType) String() string {
	return string(r)
}

// Record is a single entry of a resource listing. Only the name field is
// consumed; records are counted, not inspected.
type Record struct {
	Name string `json:"name"`
}

// Lister enumerates projects and the billable resources within them. A
// failed query returns an error; callers treat that as zero resources so an
// unused or permission-restricted service never breaks the report.
type Lister interface {
	Projects(ctx context.Context) ([]string, error)
	List(ctx context.Context, project string, resource ResourceType) ([]Record, error)
}
