package tally

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tallyhq/gcptally/pkg/inventory"
)

func init() {
	color.NoColor = true
}

// fakeLister serves canned listings per project and resource type.
type fakeLister struct {
	projects    []string
	projectsErr error
	listings    map[string]map[inventory.ResourceType][]inventory.Record
	errs        map[string]map[inventory.ResourceType]error
}

func (f *fakeLister) Projects(ctx context.Context) ([]string, error) {
	if f.projectsErr != nil {
		return nil, f.projectsErr
	}
	return f.projects, nil
}

func (f *fakeLister) List(ctx context.Context, project string, resource inventory.ResourceType) ([]inventory.Record, error) {
	if errs, ok := f.errs[project]; ok {
		if err, ok := errs[resource]; ok {
			return nil, err
		}
	}
	return f.listings[project][resource], nil
}

func records(names ...string) []inventory.Record {
	rs := make([]inventory.Record, 0, len(names))
	for _, n := range names {
		rs = append(rs, inventory.Record{Name: n})
	}
	return rs
}

func runAudit(t *testing.T, lister inventory.Lister) (*RunReport, string) {
	t.Helper()
	var buf bytes.Buffer
	auditor := NewAuditor(lister, NewReporter(&buf))
	report, err := auditor.Run(context.Background())
	require.NoError(t, err)
	return report, buf.String()
}

func TestAuditSingleProject(t *testing.T) {
	lister := &fakeLister{
		projects: []string{"proj-a"},
		listings: map[string]map[inventory.ResourceType][]inventory.Record{
			"proj-a": {
				inventory.ComputeInstances: records("vm-1", "vm-2", "vm-3"),
			},
		},
	}

	report, out := runAudit(t, lister)

	require.Len(t, report.Projects, 1)
	assert.Equal(t, "proj-a", report.Projects[0].Project)
	assert.Equal(t, 3, report.Projects[0].Counts.Compute)
	assert.Equal(t, 3, report.Projects[0].Total)
	assert.Equal(t, 3, report.Global.Compute)
	assert.Equal(t, 3, report.Total)

	assert.Contains(t, out, "Project: proj-a")
	assert.Contains(t, out, "Compute instances (running)")
	assert.Contains(t, out, "(subtotal: 3)")
	assert.Contains(t, out, "Total for proj-a")
}

func TestAuditGlobalAccumulation(t *testing.T) {
	lister := &fakeLister{
		projects: []string{"proj-a", "proj-b"},
		listings: map[string]map[inventory.ResourceType][]inventory.Record{
			"proj-a": {inventory.StorageBuckets: records("bucket-1", "bucket-2")},
			"proj-b": {inventory.SQLInstances: records("db-1", "db-2", "db-3", "db-4", "db-5")},
		},
	}

	report, _ := runAudit(t, lister)

	assert.Equal(t, 2, report.Global.Storage)
	assert.Equal(t, 5, report.Global.SQL)
	assert.Equal(t, 7, report.Total)

	// no double counting across per-project resets
	assert.Equal(t, 2, report.Projects[0].Total)
	assert.Equal(t, 5, report.Projects[1].Total)
}

func TestAuditQueryFailureCountsZero(t *testing.T) {
	lister := &fakeLister{
		projects: []string{"proj-a"},
		listings: map[string]map[inventory.ResourceType][]inventory.Record{
			"proj-a": {inventory.ComputeInstances: records("vm-1", "vm-2")},
		},
		errs: map[string]map[inventory.ResourceType]error{
			"proj-a": {inventory.SQLInstances: fmt.Errorf("permission denied")},
		},
	}

	report, _ := runAudit(t, lister)

	assert.Equal(t, 0, report.Global.SQL)
	assert.Equal(t, 2, report.Global.Compute)
	assert.Equal(t, 2, report.Total)
}

func TestAuditProjectListFailure(t *testing.T) {
	lister := &fakeLister{projectsErr: fmt.Errorf("resourcemanager unreachable")}

	report, out := runAudit(t, lister)

	assert.Empty(t, report.Projects)
	assert.Equal(t, Counts{}, report.Global)
	assert.Equal(t, 0, report.Total)
	assert.Contains(t, out, "Global summary: 0 projects")
}

func TestAuditExplicitProjectScope(t *testing.T) {
	lister := &fakeLister{
		projects: []string{"proj-a", "proj-b"},
		listings: map[string]map[inventory.ResourceType][]inventory.Record{
			"proj-a": {inventory.SpannerInstances: records("spanner-1")},
			"proj-b": {inventory.SpannerInstances: records("spanner-2")},
		},
	}

	var buf bytes.Buffer
	auditor := NewAuditor(lister, NewReporter(&buf))
	auditor.Projects = []string{"proj-b"}
	report, err := auditor.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Projects, 1)
	assert.Equal(t, "proj-b", report.Projects[0].Project)
	assert.Equal(t, 1, report.Total)
}

func TestAuditReportIsReproducible(t *testing.T) {
	lister := &fakeLister{
		projects: []string{"proj-a", "proj-b"},
		listings: map[string]map[inventory.ResourceType][]inventory.Record{
			"proj-a": {
				inventory.ComputeInstances:   records("vm-1"),
				inventory.BigtableInstances:  records("bt-1"),
				inventory.FirestoreDatabases: records("(default)"),
			},
			"proj-b": {inventory.RedisInstances: records("cache-1")},
		},
	}

	_, first := runAudit(t, lister)
	_, second := runAudit(t, lister)

	assert.Equal(t, first, second)
}

func TestAuditResourceOrdering(t *testing.T) {
	lister := &fakeLister{projects: []string{"proj-a"}}

	_, out := runAudit(t, lister)

	last := -1
	for _, resource := range inventory.ReportOrder {
		idx := bytes.Index([]byte(out), []byte(resource.Label()))
		require.GreaterOrEqual(t, idx, 0, "missing %s", resource)
		assert.Greater(t, idx, last, "%s out of order", resource)
		last = idx
	}
}

func TestAuditCancelledContext(t *testing.T) {
	lister := &fakeLister{projects: []string{"proj-a"}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	_, err := NewAuditor(lister, NewReporter(&buf)).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteJSON(t *testing.T) {
	report := &RunReport{
		RunID:    "test-run",
		Projects: []ProjectReport{{Project: "proj-a", Counts: Counts{Storage: 2}, Total: 2}},
		Global:   Counts{Storage: 2},
		Total:    2,
	}

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, WriteJSON(path, report))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got RunReport
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "test-run", got.RunID)
	assert.Equal(t, 2, got.Global.Storage)
	assert.Equal(t, 2, got.Total)
}
