package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tallyhq/gcptally/internal/message"
	"github.com/tallyhq/gcptally/pkg/inventory"
	"github.com/tallyhq/gcptally/pkg/tally"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Count billable resources across every visible project",
	Long: `Audit walks every project visible to the active credentials and counts
billable resources in each: running compute instances, Cloud SQL instances,
storage buckets, Filestore, BigQuery datasets, Bigtable, Spanner, Redis,
Memcache, and Firestore databases. Services that are disabled or not
permitted count as zero and never break the report.`,
	RunE: runAudit,
}

func runAudit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	backend, _ := cmd.Flags().GetString("backend")
	credsFile, _ := cmd.Flags().GetString("creds-file")
	projects, _ := cmd.Flags().GetStringSlice("project")
	output, _ := cmd.Flags().GetString("output")

	var lister inventory.Lister
	var err error
	switch backend {
	case "gcloud":
		lister, err = inventory.NewGcloudLister()
	case "api":
		lister, err = inventory.NewAPILister(ctx, credsFile)
	default:
		err = fmt.Errorf("unknown backend %q (want gcloud or api)", backend)
	}
	if err != nil {
		message.Critical("%s", err)
		return err
	}

	message.Banner()

	auditor := tally.NewAuditor(lister, tally.NewReporter(os.Stdout))
	auditor.Projects = projects

	report, err := auditor.Run(ctx)
	if err != nil {
		return err
	}

	if output != "" {
		if err := tally.WriteJSON(output, report); err != nil {
			message.Error("%s", err)
			return err
		}
		message.Success("Wrote report %s to %s", report.RunID, output)
	}
	return nil
}

func init() {
	auditCmd.Flags().String("backend", "gcloud", "inventory backend: gcloud (CLI) or api (service APIs)")
	auditCmd.Flags().String("creds-file", "", "service account credentials file (api backend; default is ADC)")
	auditCmd.Flags().StringSlice("project", nil, "restrict the audit to specific project IDs")
	auditCmd.Flags().StringP("output", "o", "", "write a JSON report to this file")
	auditCmd.SilenceUsage = true
	rootCmd.AddCommand(auditCmd)
}
