package main

import (
	"context"

	"github.com/spf13/cobra"

	orchestrators "github.com/ochairo/licensure/internal/domain-orchestrators"
)

type noticeFlags struct {
	noticeFile string
	stdout     bool
}

func newNoticeCmd(c *cli) *cobra.Command {
	flags := &noticeFlags{}
	cmd := &cobra.Command{
		Use:   "notice <sbom>...",
		Short: "Assemble the third-party license text for one or more SBOMs",
		Long: `Assemble the third-party license text: one numbered section per license
variant found in the SBOMs that the licensesToInclude section of the licensing
configuration covers (directly or through licenseVariations). Licenses without
configured text are reported as missing; configured licenses that no component
uses are reported as unused.`,
		Example: `  licensure notice sbom.cyclonedx.json
  licensure notice *.cdx.json --notice-file NOTICE.txt --fail-on missing
  licensure notice *.cdx.json --stdout > LICENSE-THIRD-PARTY.txt`,
		Args: requireInputs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runNotice(cmd.Context(), args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.noticeFile, "notice-file", orchestrators.DefaultNoticeFile,
		"third-party license text file name inside --output-dir")
	cmd.Flags().BoolVar(&flags.stdout, "stdout", false,
		"print the license text instead of writing a file")
	return cmd
}

func (c *cli) runNotice(ctx context.Context, paths []string, flags *noticeFlags) error {
	conds, err := c.failConditions()
	if err != nil {
		return err
	}

	config := orchestrators.ComplianceOrchestratorConfig{NoticeFile: flags.noticeFile}
	if flags.stdout {
		config.NoticeFile = ""
	}
	orch := c.newOrchestrator(config, true)

	result, err := orch.Run(ctx, orchestrators.RunRequest{
		Paths:   paths,
		Project: c.project(),
		Notice:  true,
	})
	if err != nil {
		return err
	}

	out := newPrinter(c.stdout)
	if flags.stdout {
		out.raw(result.Notice.Document)
	} else {
		out.printNotice(result.Notice)
		out.printArtifacts(result.Artifacts)
	}

	return checkViolations(result, conds)
}
