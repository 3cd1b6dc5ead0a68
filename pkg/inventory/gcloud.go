package inventory

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"slices"
	"strings"

	"github.com/tallyhq/gcptally/pkg/jq"
)

// Runner abstracts execution of the gcloud binary so tests can substitute a
// fake that replays canned JSON listings.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, msg)
		}
		return nil, fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return stdout.Bytes(), nil
}

// Listing arguments per resource type. Every invocation additionally gets
// --project and --format=json. Compute counts only running instances;
// location-scoped services are listed across all locations; BigQuery dataset
// listing is only available on the alpha surface.
var gcloudArgs = map[ResourceType][]string{
	ComputeInstances:   {"compute", "instances", "list", "--filter=status:RUNNING"},
	SQLInstances:       {"sql", "instances", "list"},
	StorageBuckets:     {"storage", "buckets", "list"},
	FilestoreInstances: {"filestore", "instances", "list", "--location=-"},
	BigQueryDatasets:   {"alpha", "bq", "datasets", "list"},
	BigtableInstances:  {"bigtable", "instances", "list"},
	SpannerInstances:   {"spanner", "instances", "list"},
	RedisInstances:     {"redis", "instances", "list", "--region=-"},
	MemcacheInstances:  {"memcache", "instances", "list", "--region=-"},
	FirestoreDatabases: {"firestore", "databases", "list"},
}

// GcloudLister queries resources by shelling out to the gcloud CLI,
// delegating credentials to its ambient authenticated session.
type GcloudLister struct {
	runner Runner
}

// NewGcloudLister fails fast when gcloud is not on PATH; that is the single
// fatal precondition of a gcloud-backed run.
func NewGcloudLister() (*GcloudLister, error) {
	if _, err := exec.LookPath("gcloud"); err != nil {
		return nil, fmt.Errorf("gcloud binary not found on PATH: %w", err)
	}
	return &GcloudLister{runner: execRunner{}}, nil
}

// NewGcloudListerWithRunner is used by tests to inject a fake runner.
func NewGcloudListerWithRunner(runner Runner) *GcloudLister {
	return &GcloudLister{runner: runner}
}

func (g *GcloudLister) Projects(ctx context.Context) ([]string, error) {
	out, err := g.runner.Run(ctx, "gcloud", "projects", "list", "--format=json")
	if err != nil {
		return nil, err
	}
	return jq.ExtractField(out, "projectId")
}

func (g *GcloudLister) List(ctx context.Context, project string, resource ResourceType) ([]Record, error) {
	base, ok := gcloudArgs[resource]
	if !ok {
		return nil, fmt.Errorf("unknown resource type %q", resource)
	}

	args := append(slices.Clone(base), "--project="+project, "--format=json")
	out, err := g.runner.Run(ctx, "gcloud", args...)
	if err != nil {
		return nil, err
	}

	names, err := jq.ExtractField(out, "name")
	if err != nil {
		slog.Debug("unparseable gcloud listing", "project", project, "resource", resource, "error", err)
		return nil, err
	}

	records := make([]Record, 0, len(names))
	for _, name := range names {
		records = append(records, Record{Name: name})
	}
	return records, nil
}
