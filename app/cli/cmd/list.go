package cmd

import (
	"context"
	"os"

	"ingest/app/cli/cmd/client"
	"ingest/app/cli/cmd/common"

	"github.com/spf13/cobra"
)

// NewListCommand returns a new instance of the list command
func NewListCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "list",
		Short: "list ingest pipelines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := client.New()
			if err != nil {
				return err
			}
			pipelines, err := cli.List(context.Background())
			if err != nil {
				return err
			}
			common.PrintPipelines(os.Stdout, pipelines)
			return nil
		},
	}
	return command
}
