package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newCheckCmd(a *app) *cobra.Command {
	var withMetrics bool
	cmd := &cobra.Command{
		Use:   "check <records>",
		Short: "Validate a record stream against the schema",
		Long: `Load every record of a JSONL or MessagePack stream into a fresh graph,
checking each edge and hyperedge against the configuration of its type.
Rejected records and dangling references are reported. The exit status is 1
when any record was rejected. Use "-" to read standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.loadRegistry()
			if err != nil {
				return err
			}
			res, err := a.ingest(args[0], cmd.InOrStdin(), reg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if a.flags.jsonMode {
				if withMetrics {
					if res.report.Metrics, err = res.collector.Gather(); err != nil {
						return sysError("%w", err)
					}
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(res.report); err != nil {
					return sysError("encode report: %w", err)
				}
			} else {
				printReport(out, res.report)
				if withMetrics {
					if err := res.collector.Print(out); err != nil {
						return sysError("%w", err)
					}
				}
			}
			if res.report.failed() {
				return &ExitError{Code: exitUserError}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&withMetrics, "metrics", false, "print the metrics gathered during the run")
	return cmd
}

func printReport(w io.Writer, rep *report) {
	for _, r := range rep.Rejected {
		what := "record"
		if r.Kind != "" {
			what = r.Kind
			if r.Type != "" {
				what += " " + r.Type
			}
		}
		if r.ID != "" {
			what += " " + shortID(r.ID)
		}
		fmt.Fprintf(w, "%s:%d: rejected %s: %s\n", rep.Input, r.Position, what, r.Error)
	}
	for _, o := range rep.Orphans {
		fmt.Fprintf(w, "%s: %s %s %s references missing node %s\n",
			rep.Input, o.Kind, o.RelationType, shortID(o.RelationID), o.MissingID)
	}
	fmt.Fprintf(w, "%d records: %d nodes, %d edges, %d hyperedges admitted; %d rejected; %d orphaned references\n",
		rep.Records, rep.Admitted.Nodes, rep.Admitted.Edges, rep.Admitted.Hyperedges,
		len(rep.Rejected), len(rep.Orphans))
}
