package cmd

import (
	"context"
	"os"

	"ingest/app/cli/cmd/client"
	"ingest/app/cli/cmd/common"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// NewDeleteCommand returns a new instance of the delete command
func NewDeleteCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "delete NAME...",
		Short: "delete ingest pipelines",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := client.New()
			if err != nil {
				return err
			}
			res, err := cli.Delete(context.Background(), args...)
			if err != nil {
				return err
			}
			common.PrintDeleteResult(os.Stdout, res)
			if len(res.Errors) > 0 {
				return errors.Errorf("%d pipeline(s) could not be deleted", len(res.Errors))
			}
			return nil
		},
	}
	return command
}
