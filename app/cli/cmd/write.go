package cmd

import (
	"context"
	"fmt"
	"io/ioutil"
	"os"

	"ingest/app/cli/cmd/client"
	"ingest/pkg/api"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type writeOpts struct {
	file string // --file
}

// NewCreateCommand returns a new instance of the create command
func NewCreateCommand() *cobra.Command {
	var opts writeOpts
	command := &cobra.Command{
		Use:   "create NAME -f FILE",
		Short: "create an ingest pipeline from a definition file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := readDefinition(opts.file)
			if err != nil {
				return err
			}
			cli, err := client.New()
			if err != nil {
				return err
			}
			if _, err := cli.Create(context.Background(), args[0], req); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Pipeline %s created\n", args[0])
			return nil
		},
	}
	addFileFlag(command, &opts)
	return command
}

// NewUpdateCommand returns a new instance of the update command
func NewUpdateCommand() *cobra.Command {
	var opts writeOpts
	command := &cobra.Command{
		Use:   "update NAME -f FILE",
		Short: "replace the definition of an existing ingest pipeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := readDefinition(opts.file)
			if err != nil {
				return err
			}
			cli, err := client.New()
			if err != nil {
				return err
			}
			if _, err := cli.Update(context.Background(), args[0], req); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Pipeline %s updated\n", args[0])
			return nil
		},
	}
	addFileFlag(command, &opts)
	return command
}

func addFileFlag(command *cobra.Command, opts *writeOpts) {
	command.Flags().StringVarP(&opts.file, "file", "f", "", "JSON file holding the pipeline definition, - for stdin")
	command.MarkFlagRequired("file")
}

// readDefinition reads and validates the pipeline definition held by the given file.
func readDefinition(path string) (api.PipelineRequest, error) {
	var b []byte
	var err error
	if path == "-" {
		b, err = ioutil.ReadAll(os.Stdin)
	} else {
		b, err = ioutil.ReadFile(path)
	}
	if err != nil {
		return api.PipelineRequest{}, errors.Wrapf(err, "cannot read file %s", path)
	}
	req, err := api.DecodePipelineRequest(b)
	if err != nil {
		return api.PipelineRequest{}, errors.Wrapf(err, "cannot decode file %s as a pipeline definition", path)
	}
	return req, nil
}
