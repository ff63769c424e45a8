package common

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"ingest/pkg/api"

	tm "github.com/buger/goterm"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// PrintPipelines prints a table of the given pipelines in the given writer
func PrintPipelines(w io.Writer, pipelines []api.Pipeline) {
	if len(pipelines) == 0 {
		fmt.Fprintln(w, "No ingest pipeline found")
		return
	}
	table := tm.NewTable(0, 10, 3, ' ', 0)
	fmt.Fprintln(table, "NAME\tVERSION\tPROCESSORS\tDESCRIPTION")
	for _, p := range pipelines {
		fmt.Fprintf(table, "%s\t%s\t%d\t%s\n", p.Name, version(p.Version), len(p.Processors), p.Description)
	}
	fmt.Fprint(w, table.String())
}

// PrintPipeline prints the pipeline definition in the given writer
func PrintPipeline(w io.Writer, p api.Pipeline) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "Name:\t%s\n", p.Name)
	fmt.Fprintf(tw, "Description:\t%s\n", p.Description)
	fmt.Fprintf(tw, "Version:\t%s\n", version(p.Version))
	tw.Flush()

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Processors:")
	if err := printProcessors(w, p.Processors); err != nil {
		return err
	}
	if len(p.OnFailure) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "On failure:")
		if err := printProcessors(w, p.OnFailure); err != nil {
			return err
		}
	}
	return nil
}

// PrintDeleteResult prints the outcome of a delete in the given writer
func PrintDeleteResult(w io.Writer, res api.DeleteResult) {
	for _, name := range res.ItemsDeleted {
		fmt.Fprintf(w, "Pipeline %s deleted\n", name)
	}
	for _, e := range res.Errors {
		fmt.Fprintf(w, "Pipeline %s not deleted: %s\n", e.Name, errorReason(e.Error))
	}
}

// printProcessors prints one line per processor: its type then its options.
func printProcessors(w io.Writer, processors []api.Processor) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, proc := range processors {
		for typ, opts := range proc {
			b, err := json.Marshal(opts)
			if err != nil {
				return errors.Wrapf(err, "cannot encode processor %s", typ)
			}
			fmt.Fprintf(tw, "  %d.\t%s\t%s\n", i+1, typ, b)
		}
	}
	return tw.Flush()
}

func version(v *json.Number) string {
	if v == nil {
		return "-"
	}
	return v.String()
}

// errorReason extracts the reason of an error body returned by the server.
func errorReason(body interface{}) string {
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Sprintf("%v", body)
	}
	for _, path := range []string{"error.reason", "message", "error"} {
		if r := gjson.GetBytes(b, path); r.Exists() && r.Type == gjson.String {
			return r.String()
		}
	}
	return string(b)
}
