package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ochairo/licensure/internal/external-adapters/schema"
)

func newSchemaCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the licensing configuration file",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			data, err := schema.GeneratePolicySchema()
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintln(c.stdout, string(data)); err != nil {
				return fmt.Errorf("failed to print schema: %w", err)
			}
			return nil
		},
	}
}
