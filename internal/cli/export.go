package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/hgraph/internal/codec"
)

func newExportCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export <in> <out>",
		Short: "Write the admitted entities of a record stream",
		Long: `Validate a record stream as check does, then write the entities that were
admitted: nodes, then edges, then hyperedges, each in input order. The output
file is replaced atomically. Use "-" for standard input or output.
The exit status is 1 when any record was rejected; the output is written
either way.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out := args[0], args[1]

			reg, err := a.loadRegistry()
			if err != nil {
				return err
			}
			res, err := a.ingest(in, cmd.InOrStdin(), reg)
			if err != nil {
				return err
			}

			f, err := a.outputFormat(format, out)
			if err != nil {
				return err
			}
			recs := records(res.graph)
			if out == "-" {
				w, err := codec.NewWriter(cmd.OutOrStdout(), f)
				if err != nil {
					return userError("%w", err)
				}
				for _, rec := range recs {
					if err := w.Write(rec); err != nil {
						return sysError("write output: %w", err)
					}
				}
				if err := w.Close(); err != nil {
					return sysError("write output: %w", err)
				}
			} else if err := codec.WriteFile(out, f, recs); err != nil {
				return sysError("write %s: %w", out, err)
			}

			// The report goes to stderr when the records go to stdout.
			msg := cmd.OutOrStdout()
			if out == "-" {
				msg = cmd.ErrOrStderr()
			}
			printReport(msg, res.report)
			if out != "-" {
				fmt.Fprintf(msg, "wrote %d entities to %s (%s)\n", len(recs), out, f)
			}
			if res.report.failed() {
				return &ExitError{Code: exitUserError}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "output format: jsonl or msgpack (default: from the output extension, then config)")
	return cmd
}

// outputFormat picks the output format: --format, then the output file
// extension, then the configured default.
func (a *app) outputFormat(flag, path string) (codec.Format, error) {
	if flag != "" {
		f, err := codec.ParseFormat(flag)
		if err != nil {
			return "", userError("%w", err)
		}
		return f, nil
	}
	def, err := defaultFormat(a.cfg)
	if err != nil {
		return "", userError("config %s: %w", cfgKeyFormat, err)
	}
	return codec.FormatFromPath(path, def), nil
}
