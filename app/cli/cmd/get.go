package cmd

import (
	"context"

	"ingest/app/cli/cmd/client"
	"ingest/app/cli/cmd/common"
	pclient "ingest/pkg/client"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// NewGetCommand returns a new instance of the get command
func NewGetCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "get NAME",
		Short: "print an ingest pipeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := client.New()
			if err != nil {
				return err
			}
			p, err := cli.Get(context.Background(), args[0])
			if err != nil {
				if pclient.IsNotFound(err) {
					return errors.Errorf("pipeline %s not found", args[0])
				}
				return err
			}
			return common.PrintPipeline(cmd.OutOrStdout(), p)
		},
	}
	return command
}
