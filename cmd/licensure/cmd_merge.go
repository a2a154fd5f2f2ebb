package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	orchestrators "github.com/ochairo/licensure/internal/domain-orchestrators"
)

type mergeFlags struct {
	sbomFile string
}

func newMergeCmd(c *cli) *cobra.Command {
	flags := &mergeFlags{}
	cmd := &cobra.Command{
		Use:   "merge <sbom>...",
		Short: "Merge CycloneDX SBOMs into one document",
		Long: `Merge CycloneDX SBOMs into one CycloneDX 1.6 document. Components are
deduplicated by purl (or group/name@version), the first occurrence wins, and
dependency edges are unioned by ref. No licensing configuration is needed.`,
		Example: `  licensure merge frontend.cdx.json backend.cdx.json -o dist
  licensure merge *.cdx.json --sbom-file merged.json --project-name shop --project-version 2.1.0`,
		Args: requireInputs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runMerge(cmd.Context(), args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.sbomFile, "sbom-file", orchestrators.DefaultMergedSBOMFile,
		"merged SBOM file name inside --output-dir")
	return cmd
}

func (c *cli) runMerge(ctx context.Context, paths []string, flags *mergeFlags) error {
	out := newPrinter(c.stdout)
	out.progress("🔗", fmt.Sprintf("Merging %d SBOM file(s)...", len(paths)))

	orch := c.newOrchestrator(orchestrators.ComplianceOrchestratorConfig{
		MergedSBOMFile: flags.sbomFile,
	}, false)

	result, err := orch.Run(ctx, orchestrators.RunRequest{
		Paths:   paths,
		Project: c.project(),
	})
	if err != nil {
		return err
	}

	for _, artifact := range result.Artifacts {
		out.success(fmt.Sprintf("Merged SBOM created: %s", artifact.Path))
	}
	out.line(result.Summary())
	return nil
}
