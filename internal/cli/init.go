package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/hgraph/internal/paths"
)

// exampleSchemaYAML is the schema written by init when none exists.
const exampleSchemaYAML = `# hgraph schema: node, edge and hyperedge type declarations.
#
# Edge flags: symmetric, antisymmetric, asymmetric, reflexive, irreflexive,
# transitive, functional, inverse_functional, allows_duplicates, inverse.
# Hyperedge flags: unordered, allows_duplicates, cyclic, reflexive,
# functional, inverse_functional, transitive, inverse.
# Attribute types: text, integer, number, boolean, timestamp, list, id.

nodes:
  - name: Person
    attributes:
      - {name: name, type: text, required: true}
      - {name: born, type: timestamp}

edges:
  - name: ParentOf
    config:
      asymmetric: true
      irreflexive: true
      inverse: ChildOf
  - name: SpouseOf
    config:
      symmetric: true
      irreflexive: true
      functional: true
      inverse_functional: true

hyperedges:
  - name: Siblings
    config:
      unordered: true
      cyclic: true
      reflexive: true
`

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration directory",
		Long:  "Create the configuration directory with a default config.yaml and an example schema.yaml.\nExisting files are left untouched.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(cmd)
		},
	}
}

func (a *app) runInit(cmd *cobra.Command) error {
	configDir := a.configDir()
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return sysError("create config directory: %w", err)
	}

	files := []struct {
		path    string
		content string
	}{
		{configPath(configDir), defaultConfigYAML},
		{filepath.Join(configDir, paths.SchemaFileName), exampleSchemaYAML},
	}
	out := cmd.OutOrStdout()
	for _, f := range files {
		written, err := writeIfMissing(f.path, f.content)
		if err != nil {
			return sysError("write %s: %w", filepath.Base(f.path), err)
		}
		if written {
			fmt.Fprintf(out, "created %s\n", f.path)
		} else {
			fmt.Fprintf(out, "kept existing %s\n", f.path)
		}
	}
	a.logger.Debug("initialized", "config_dir", configDir)
	return nil
}
