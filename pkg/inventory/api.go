package inventory

import (
	"context"
	"fmt"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/bigquery/v2"
	"google.golang.org/api/bigtableadmin/v2"
	"google.golang.org/api/cloudresourcemanager/v1"
	"google.golang.org/api/compute/v1"
	"google.golang.org/api/file/v1"
	"google.golang.org/api/firestore/v1"
	"google.golang.org/api/memcache/v1"
	"google.golang.org/api/option"
	"google.golang.org/api/redis/v1"
	"google.golang.org/api/spanner/v1"
	"google.golang.org/api/sqladmin/v1beta4"
	"google.golang.org/api/storage/v1"
)

// APILister queries resources directly through the GCP service APIs instead
// of the gcloud CLI. Credentials come from an explicit service account file
// or from application default credentials.
type APILister struct {
	crm       *cloudresourcemanager.Service
	compute   *compute.Service
	sql       *sqladmin.Service
	storage   *storage.Service
	filestore *file.Service
	bigquery  *bigquery.Service
	bigtable  *bigtableadmin.Service
	spanner   *spanner.Service
	redis     *redis.Service
	memcache  *memcache.Service
	firestore *firestore.Service
}

func NewAPILister(ctx context.Context, credentialsFile string) (*APILister, error) {
	var opts []option.ClientOption
	if credentialsFile != "" { // main auth method for GCP
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	} else {
		// attempt to use application default credentials or default auth
		// that the SDK can find
		if _, err := google.FindDefaultCredentials(ctx); err != nil {
			return nil, fmt.Errorf("cannot find default credentials: %w", err)
		}
	}

	a := &APILister{}
	var err error
	if a.crm, err = cloudresourcemanager.NewService(ctx, opts...); err != nil {
		return nil, fmt.Errorf("cloud resource manager service: %w", err)
	}
	if a.compute, err = compute.NewService(ctx, opts...); err != nil {
		return nil, fmt.Errorf("compute service: %w", err)
	}
	if a.sql, err = sqladmin.NewService(ctx, opts...); err != nil {
		return nil, fmt.Errorf("sqladmin service: %w", err)
	}
	if a.storage, err = storage.NewService(ctx, opts...); err != nil {
		return nil, fmt.Errorf("storage service: %w", err)
	}
	if a.filestore, err = file.NewService(ctx, opts...); err != nil {
		return nil, fmt.Errorf("filestore service: %w", err)
	}
	if a.bigquery, err = bigquery.NewService(ctx, opts...); err != nil {
		return nil, fmt.Errorf("bigquery service: %w", err)
	}
	if a.bigtable, err = bigtableadmin.NewService(ctx, opts...); err != nil {
		return nil, fmt.Errorf("bigtable admin service: %w", err)
	}
	if a.spanner, err = spanner.NewService(ctx, opts...); err != nil {
		return nil, fmt.Errorf("spanner service: %w", err)
	}
	if a.redis, err = redis.NewService(ctx, opts...); err != nil {
		return nil, fmt.Errorf("redis service: %w", err)
	}
	if a.memcache, err = memcache.NewService(ctx, opts...); err != nil {
		return nil, fmt.Errorf("memcache service: %w", err)
	}
	if a.firestore, err = firestore.NewService(ctx, opts...); err != nil {
		return nil, fmt.Errorf("firestore admin service: %w", err)
	}
	return a, nil
}

func (a *APILister) Projects(ctx context.Context) ([]string, error) {
	projects := make([]string, 0)
	req := a.crm.Projects.List()
	err := req.Pages(ctx, func(page *cloudresourcemanager.ListProjectsResponse) error {
		for _, p := range page.Projects {
			projects = append(projects, p.ProjectId)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

func (a *APILister) List(ctx context.Context, project string, resource ResourceType) ([]Record, error) {
	switch resource {
	case ComputeInstances:
		return a.listComputeInstances(ctx, project)
	case SQLInstances:
		return a.listSQLInstances(ctx, project)
	case StorageBuckets:
		return a.listStorageBuckets(ctx, project)
	case FilestoreInstances:
		return a.listFilestoreInstances(ctx, project)
	case BigQueryDatasets:
		return a.listBigQueryDatasets(ctx, project)
	case BigtableInstances:
		return a.listBigtableInstances(ctx, project)
	case SpannerInstances:
		return a.listSpannerInstances(ctx, project)
	case RedisInstances:
		return a.listRedisInstances(ctx, project)
	case MemcacheInstances:
		return a.listMemcacheInstances(ctx, project)
	case FirestoreDatabases:
		return a.listFirestoreDatabases(ctx, project)
	default:
		return nil, fmt.Errorf("unknown resource type %q", resource)
	}
}

func (a *APILister) listComputeInstances(ctx context.Context, project string) ([]Record, error) {
	records := make([]Record, 0)
	req := a.compute.Instances.AggregatedList(project).Filter("status = RUNNING")
	err := req.Pages(ctx, func(page *compute.InstanceAggregatedList) error {
		for _, scoped := range page.Items {
			for _, instance := range scoped.Instances {
				records = append(records, Record{Name: instance.Name})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (a *APILister) listSQLInstances(ctx context.Context, project string) ([]Record, error) {
	records := make([]Record, 0)
	err := a.sql.Instances.List(project).Pages(ctx, func(page *sqladmin.InstancesListResponse) error {
		for _, instance := range page.Items {
			records = append(records, Record{Name: instance.Name})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (a *APILister) listStorageBuckets(ctx context.Context, project string) ([]Record, error) {
	records := make([]Record, 0)
	err := a.storage.Buckets.List(project).Pages(ctx, func(page *storage.Buckets) error {
		for _, bucket := range page.Items {
			records = append(records, Record{Name: bucket.Name})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (a *APILister) listFilestoreInstances(ctx context.Context, project string) ([]Record, error) {
	records := make([]Record, 0)
	parent := fmt.Sprintf("projects/%s/locations/-", project)
	err := a.filestore.Projects.Locations.Instances.List(parent).Pages(ctx, func(page *file.ListInstancesResponse) error {
		for _, instance := range page.Instances {
			records = append(records, Record{Name: instance.Name})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (a *APILister) listBigQueryDatasets(ctx context.Context, project string) ([]Record, error) {
	records := make([]Record, 0)
	err := a.bigquery.Datasets.List(project).Pages(ctx, func(page *bigquery.DatasetList) error {
		for _, dataset := range page.Datasets {
			records = append(records, Record{Name: dataset.Id})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (a *APILister) listBigtableInstances(ctx context.Context, project string) ([]Record, error) {
	records := make([]Record, 0)
	parent := fmt.Sprintf("projects/%s", project)
	err := a.bigtable.Projects.Instances.List(parent).Pages(ctx, func(page *bigtableadmin.ListInstancesResponse) error {
		for _, instance := range page.Instances {
			records = append(records, Record{Name: instance.Name})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (a *APILister) listSpannerInstances(ctx context.Context, project string) ([]Record, error) {
	records := make([]Record, 0)
	parent := fmt.Sprintf("projects/%s", project)
	err := a.spanner.Projects.Instances.List(parent).Pages(ctx, func(page *spanner.ListInstancesResponse) error {
		for _, instance := range page.Instances {
			records = append(records, Record{Name: instance.Name})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (a *APILister) listRedisInstances(ctx context.Context, project string) ([]Record, error) {
	records := make([]Record, 0)
	parent := fmt.Sprintf("projects/%s/locations/-", project)
	err := a.redis.Projects.Locations.Instances.List(parent).Pages(ctx, func(page *redis.ListInstancesResponse) error {
		for _, instance := range page.Instances {
			records = append(records, Record{Name: instance.Name})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (a *APILister) listMemcacheInstances(ctx context.Context, project string) ([]Record, error) {
	records := make([]Record, 0)
	parent := fmt.Sprintf("projects/%s/locations/-", project)
	err := a.memcache.Projects.Locations.Instances.List(parent).Pages(ctx, func(page *memcache.ListInstancesResponse) error {
		for _, instance := range page.Instances {
			records = append(records, Record{Name: instance.Name})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (a *APILister) listFirestoreDatabases(ctx context.Context, project string) ([]Record, error) {
	parent := fmt.Sprintf("projects/%s", project)
	resp, err := a.firestore.Projects.Databases.List(parent).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	records := make([]Record, 0, len(resp.Databases))
	for _, db := range resp.Databases {
		records = append(records, Record{Name: db.Name})
	}
	return records, nil
}
