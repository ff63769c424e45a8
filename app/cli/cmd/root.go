package cmd

import (
	"fmt"

	"ingest/app/cli/cmd/client"

	"github.com/spf13/cobra"
)

// NewRootCommand returns a new instance of the ingestctl command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "ingestctl",
		Short:        "ingestctl is the command line interface to the ingest pipelines API",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&client.Server, "server", "s", "", fmt.Sprintf("address of the server, defaults to $%s", client.EnvServer))

	rootCmd.AddCommand(NewListCommand())
	rootCmd.AddCommand(NewGetCommand())
	rootCmd.AddCommand(NewCreateCommand())
	rootCmd.AddCommand(NewUpdateCommand())
	rootCmd.AddCommand(NewDeleteCommand())
	return rootCmd
}
