package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/hgraph/internal/registry"
	"github.com/mesh-intelligence/hgraph/pkg/types"
)

func newTypesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List declared types",
		Long:  "List the node, edge and hyperedge types declared in the schema, with their flags and attributes.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.loadRegistry()
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(reg.Schema())
			}
			return printTypes(cmd.OutOrStdout(), reg)
		},
	}
}

// loadRegistry declares every type in the resolved schema file and seals
// the registry.
func (a *app) loadRegistry() (*registry.Registry, error) {
	path, err := a.schemaPath()
	if err != nil {
		return nil, sysError("resolve schema: %w", err)
	}
	reg := registry.New()
	if err := reg.DeclareFile(path); err != nil {
		return nil, userError("%w", err)
	}
	reg.Seal()
	a.logger.Debug("schema loaded", "path", path,
		"nodes", len(reg.NodeTypes()), "edges", len(reg.EdgeTypes()), "hyperedges", len(reg.HyperedgeTypes()))
	return reg, nil
}

func printTypes(w io.Writer, reg *registry.Registry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tNAME\tFLAGS\tATTRIBUTES")
	for _, t := range reg.NodeTypes() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", types.KindNode, t.Name, "-", attributeList(t.Attributes))
	}
	for _, t := range reg.EdgeTypes() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", types.KindEdge, t.Name, flagList(t.Config.Flags()), attributeList(t.Attributes))
	}
	for _, t := range reg.HyperedgeTypes() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", types.KindHyperedge, t.Name, flagList(t.Config.Flags()), attributeList(t.Attributes))
	}
	return tw.Flush()
}

// flagList renders the set flags of a config, sorted, with inverse last.
func flagList(flags map[string]any) string {
	var set []string
	for _, k := range slices.Sorted(maps.Keys(flags)) {
		if b, ok := flags[k].(bool); ok && b {
			set = append(set, k)
		}
	}
	if inv, ok := flags["inverse"].(string); ok && inv != "" {
		set = append(set, "inverse="+inv)
	}
	if len(set) == 0 {
		return "-"
	}
	return strings.Join(set, ",")
}

func attributeList(specs []types.AttributeSpec) string {
	if len(specs) == 0 {
		return "-"
	}
	parts := make([]string, len(specs))
	for i, s := range specs {
		parts[i] = s.Name + ":" + s.ValueType
		if s.Required {
			parts[i] += "!"
		}
	}
	return strings.Join(parts, ",")
}
