package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ochairo/licensure/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/licensure/internal/domain-orchestrators"
	"github.com/ochairo/licensure/internal/domain/interfaces/repositories"
	"github.com/ochairo/licensure/internal/external-adapters/yaml"
)

type runFlags struct {
	sbomFile   string
	reportFile string
	noticeFile string
}

func newRunCmd(c *cli) *cobra.Command {
	flags := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run <sbom>...",
		Short: "Merge SBOMs, report license compliance and write the third-party notice",
		Long: `Run the complete compliance workflow: verify input signatures (with --keyring),
merge the SBOMs, categorize their licenses and assemble the third-party license
text. Every artifact is written with a .sha256 sidecar.`,
		Example: `  # Full run over npm, Cargo and Python SBOMs
  licensure run web.cdx.json core.cdx.json api.cdx.json --project-name shop

  # Fail the build on counsel-tier findings or missing license texts
  licensure run *.cdx.json --fail-on counsel,missing

  # Require signed inputs
  licensure run *.cdx.json --keyring KEYS --require-signatures`,
		Args: requireInputs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAll(cmd.Context(), args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.sbomFile, "sbom-file", orchestrators.DefaultMergedSBOMFile,
		"merged SBOM file name inside --output-dir (empty to skip)")
	cmd.Flags().StringVar(&flags.reportFile, "report-file", orchestrators.DefaultReportFile,
		"license report file name inside --output-dir (empty to skip)")
	cmd.Flags().StringVar(&flags.noticeFile, "notice-file", orchestrators.DefaultNoticeFile,
		"third-party license text file name inside --output-dir (empty to skip)")
	return cmd
}

func (c *cli) runAll(ctx context.Context, paths []string, flags *runFlags) error {
	conds, err := c.failConditions()
	if err != nil {
		return err
	}

	out := newPrinter(c.stdout)
	out.progress("🔗", fmt.Sprintf("Merging %d SBOM file(s)...", len(paths)))

	orch := c.newOrchestrator(orchestrators.ComplianceOrchestratorConfig{
		MergedSBOMFile: flags.sbomFile,
		ReportFile:     flags.reportFile,
		NoticeFile:     flags.noticeFile,
	}, true)

	result, err := orch.Run(ctx, orchestrators.RunRequest{
		Paths:   paths,
		Project: c.project(),
		Report:  true,
		Notice:  true,
	})
	if err != nil {
		return err
	}

	out.printReport(result.Report)
	out.printNotice(result.Notice)
	out.printArtifacts(result.Artifacts)
	out.line("")
	out.line(result.Summary())

	return checkViolations(result, conds)
}

// newOrchestrator wires the file-based adapters into a compliance orchestrator
func (c *cli) newOrchestrator(config orchestrators.ComplianceOrchestratorConfig, withPolicy bool) *orchestrators.ComplianceOrchestrator {
	config.OutputDir = c.flags.outputDir
	config.KeyringPath = c.flags.keyring
	config.RequireSignatures = c.flags.requireSignatures

	var policies repositories.PolicyRepository
	if withPolicy {
		policies = yaml.NewPolicyRepository(c.flags.policyPath)
	}

	return orchestrators.NewComplianceOrchestrator(
		gateways.NewSBOMSource(c.logger),
		policies,
		gateways.NewSignatureVerifier(),
		gateways.NewArtifactWriter(c.logger),
		c.logger,
		config,
	)
}

func (c *cli) failConditions() ([]orchestrators.FailCondition, error) {
	conds, err := orchestrators.ParseFailConditions(c.flags.failOn)
	if err != nil {
		return nil, usageError{err: err}
	}
	return conds, nil
}

func checkViolations(result *orchestrators.RunResult, conds []orchestrators.FailCondition) error {
	if violations := result.Violations(conds); len(violations) > 0 {
		return violationError{violations: violations}
	}
	return nil
}
