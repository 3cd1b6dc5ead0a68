package tally

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/tallyhq/gcptally/pkg/inventory"
)

// ProjectReport is the audited footprint of one project.
type ProjectReport struct {
	Project string `json:"project"`
	Counts  Counts `json:"counts"`
	Total   int    `json:"total"`
}

// RunReport is the machine-readable result of a whole run, written out when
// a report file is requested.
type RunReport struct {
	RunID     string          `json:"run_id"`
	StartedAt time.Time       `json:"started_at"`
	Projects  []ProjectReport `json:"projects"`
	Global    Counts          `json:"global"`
	Total     int             `json:"total"`
}

// Auditor walks every visible project and counts billable resources in each.
// The walk is deliberately sequential: queries are cheap, ordering must be
// reproducible, and one slow or broken service must not disturb the rest.
type Auditor struct {
	lister   inventory.Lister
	reporter *Reporter

	// Projects restricts the audit to an explicit set instead of everything
	// the credentials can see.
	Projects []string
}

func NewAuditor(lister inventory.Lister, reporter *Reporter) *Auditor {
	return &Auditor{lister: lister, reporter: reporter}
}

// Run performs the audit. Failure to obtain the project list yields an empty
// run and an all-zero report; a failed resource query contributes a zero
// count for that type only and never aborts the run.
func (a *Auditor) Run(ctx context.Context) (*RunReport, error) {
	report := &RunReport{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Projects:  make([]ProjectReport, 0),
	}

	projects := a.Projects
	if len(projects) == 0 {
		var err error
		projects, err = a.lister.Projects(ctx)
		if err != nil {
			slog.Warn("failed to list projects, reporting zero projects", "error", err)
			projects = nil
		}
	}
	slog.Debug("auditing projects", "count", len(projects))

	var global Counts
	for _, project := range projects {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		a.reporter.ProjectHeader(project)

		var counts Counts
		for _, resource := range inventory.ReportOrder {
			records, err := a.lister.List(ctx, project, resource)
			if err != nil {
				// Disabled API, missing permission, and transient failures
				// all count as zero resources.
				slog.Debug("query failed, counting zero",
					"project", project, "resource", resource, "error", err)
				records = nil
			}
			counts.Add(resource, len(records))
			a.reporter.ResourceLine(resource, len(records), counts.Total())
		}
		a.reporter.ProjectTotal(project, counts.Total())

		global.Merge(counts)
		report.Projects = append(report.Projects, ProjectReport{
			Project: project,
			Counts:  counts,
			Total:   counts.Total(),
		})
	}

	report.Global = global
	report.Total = global.Total()
	a.reporter.GlobalSummary(global, len(projects))
	return report, nil
}
