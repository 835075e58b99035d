package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

// GeneratorInfo describes one declared identifier generator.
type GeneratorInfo struct {
	Kind           string `json:"kind"`
	Name           string `json:"name"`
	Target         string `json:"target"`
	InitialValue   int    `json:"initial_value"`
	AllocationSize int    `json:"allocation_size"`
}

// NewGeneratorsCommand creates the generators command.
func NewGeneratorsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "generators <file>",
		Short: "List the declared sequence and table generators",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerators(rootOpts, cmd, args[0])
		},
	}
}

func runGenerators(opts *RootOptions, cmd *cobra.Command, path string) error {
	m, err := loadMetamodel(opts, path, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	infos := []GeneratorInfo{}
	for _, name := range m.Sequences().Names() {
		g, _ := m.Sequences().Lookup(name)
		target := g.SequenceName
		if g.Schema != "" {
			target = g.Schema + "." + target
		}
		infos = append(infos, GeneratorInfo{
			Kind:           "sequence",
			Name:           g.Name,
			Target:         target,
			InitialValue:   g.InitialValue,
			AllocationSize: g.AllocationSize,
		})
	}
	for _, name := range m.TableGenerators().Names() {
		g, _ := m.TableGenerators().Lookup(name)
		infos = append(infos, GeneratorInfo{
			Kind:           "table",
			Name:           g.Name,
			Target:         g.Table + "[" + g.PkColumnName + "=" + g.PkColumnValue + "]." + g.ValueColumnName,
			InitialValue:   g.InitialValue,
			AllocationSize: g.AllocationSize,
		})
	}
	tbl := &table{header: []string{"KIND", "NAME", "TARGET", "INITIAL", "ALLOCATION"}}
	for _, g := range infos {
		tbl.append(g.Kind, g.Name, g.Target, strconv.Itoa(g.InitialValue), strconv.Itoa(g.AllocationSize))
	}
	return write(cmd.OutOrStdout(), opts.Format, infos, tbl)
}
