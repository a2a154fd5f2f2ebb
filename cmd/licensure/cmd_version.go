package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/ochairo/licensure/internal/domain/entities"
)

func newVersionCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version information",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(c.stdout, "licensure %s (%s/%s, CycloneDX %s)\n",
				VERSION, runtime.GOOS, runtime.GOARCH, entities.SpecVersion)
			if err != nil {
				return fmt.Errorf("failed to print version: %w", err)
			}
			return nil
		},
	}
}
