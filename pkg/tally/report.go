package tally

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/tallyhq/gcptally/pkg/inventory"
)

var (
	headerColor = color.New(color.FgHiCyan, color.Bold)
	totalColor  = color.New(color.Bold)
)

// Reporter renders the human-readable audit report. All report output goes
// through a single writer so the line ordering is exactly the query
// ordering.
type Reporter struct {
	w io.Writer
}

func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

func (r *Reporter) ProjectHeader(project string) {
	headerColor.Fprintf(r.w, "\n-=[Project: %s]=-\n\n", project)
}

// ResourceLine prints the count for one resource type together with the
// running per-project subtotal.
func (r *Reporter) ResourceLine(resource inventory.ResourceType, count, subtotal int) {
	fmt.Fprintf(r.w, "  %-28s %6d   (subtotal: %d)\n", resource.Label(), count, subtotal)
}

func (r *Reporter) ProjectTotal(project string, total int) {
	totalColor.Fprintf(r.w, "  %-28s %6d\n", "Total for "+project, total)
}

// GlobalSummary prints the per-type global accumulators and the grand
// total, in query order, as a table.
func (r *Reporter) GlobalSummary(global Counts, projects int) {
	headerColor.Fprintf(r.w, "\n-=[Global summary: %d projects]=-\n\n", projects)

	table := tablewriter.NewTable(r.w,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Settings: tw.Settings{
				Separators: tw.Separators{BetweenRows: tw.Off, ShowHeader: tw.On},
			},
		})))
	table.Header("Resource", "Count")
	for _, resource := range inventory.ReportOrder {
		_ = table.Append([]string{resource.Label(), strconv.Itoa(global.Get(resource))})
	}
	_ = table.Append([]string{"TOTAL", strconv.Itoa(global.Total())})
	_ = table.Render()
}

// WriteJSON writes the machine-readable run report to the given path.
func WriteJSON(path string, report *RunReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report to %s: %w", path, err)
	}
	return nil
}
