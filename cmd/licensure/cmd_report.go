package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	orchestrators "github.com/ochairo/licensure/internal/domain-orchestrators"
)

const (
	formatText = "text"
	formatJSON = "json"
)

type reportFlags struct {
	reportFile string
	format     string
}

func newReportCmd(c *cli) *cobra.Command {
	flags := &reportFlags{}
	cmd := &cobra.Command{
		Use:   "report <sbom>...",
		Short: "Categorize the licenses of one or more SBOMs against the licensing policy",
		Long: `Categorize every license found in the (merged) SBOMs into the allow,
review-required and counsel-required tiers of the licensing configuration.
Components without a license or with an Unknown license are flagged for
counsel together with the components that depend on them.`,
		Example: `  licensure report sbom.cyclonedx.json
  licensure report *.cdx.json --policy licensing-config.yaml --format json
  licensure report *.cdx.json --fail-on counsel,uncategorized`,
		Args: requireInputs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runReport(cmd.Context(), args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.reportFile, "report-file", orchestrators.DefaultReportFile,
		"license report file name inside --output-dir (empty to skip)")
	cmd.Flags().StringVar(&flags.format, "format", formatText,
		"console output format: text or json")
	return cmd
}

func (c *cli) runReport(ctx context.Context, paths []string, flags *reportFlags) error {
	if flags.format != formatText && flags.format != formatJSON {
		return usageError{err: fmt.Errorf("unsupported format %q (want text or json)", flags.format)}
	}
	conds, err := c.failConditions()
	if err != nil {
		return err
	}

	orch := c.newOrchestrator(orchestrators.ComplianceOrchestratorConfig{
		ReportFile: flags.reportFile,
	}, true)

	result, err := orch.Run(ctx, orchestrators.RunRequest{
		Paths:   paths,
		Project: c.project(),
		Report:  true,
	})
	if err != nil {
		return err
	}

	if flags.format == formatJSON {
		enc := json.NewEncoder(c.stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result.Report); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
	} else {
		out := newPrinter(c.stdout)
		out.printReport(result.Report)
		out.printArtifacts(result.Artifacts)
	}

	return checkViolations(result, conds)
}
