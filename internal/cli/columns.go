package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// ColumnInfo describes one mapped attribute.
type ColumnInfo struct {
	Entity    string   `json:"entity"`
	Table     string   `json:"table"`
	Attribute string   `json:"attribute"`
	Column    string   `json:"column"`
	Type      string   `json:"type"`
	Code      string   `json:"code"`
	Identity  string   `json:"identity,omitempty"`
	Generator string   `json:"generator,omitempty"`
	Flags     []string `json:"flags,omitempty"`
}

// NewColumnsCommand creates the columns command.
func NewColumnsCommand(rootOpts *RootOptions) *cobra.Command {
	var entity string
	cmd := &cobra.Command{
		Use:   "columns <file>",
		Short: "List the columns mapped from each entity attribute",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runColumns(rootOpts, cmd, args[0], entity)
		},
	}
	cmd.Flags().StringVarP(&entity, "entity", "e", "", "only list the named entity")
	return cmd
}

func runColumns(opts *RootOptions, cmd *cobra.Command, path, entity string) error {
	m, err := loadMetamodel(opts, path, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	var (
		infos []ColumnInfo
		tbl   = &table{header: []string{"ENTITY", "ATTRIBUTE", "COLUMN", "TYPE", "IDENTITY", "FLAGS"}}
	)
	for _, et := range m.Entities() {
		if entity != "" && et.Name() != entity {
			continue
		}
		for _, a := range et.Attributes() {
			c := a.Column()
			info := ColumnInfo{
				Entity:    et.Name(),
				Table:     et.Table(),
				Attribute: a.Name(),
				Column:    c.Name,
				Type:      c.DDL,
				Code:      c.Code.String(),
				Generator: a.Generator(),
			}
			if a.IsID() {
				info.Identity = a.Identity().String()
				info.Flags = append(info.Flags, "pk")
			}
			if c.Optional {
				info.Flags = append(info.Flags, "null")
			}
			if c.Version {
				info.Flags = append(info.Flags, "version")
			}
			if c.Size > 0 {
				info.Flags = append(info.Flags, "size="+strconv.FormatInt(c.Size, 10))
			}
			infos = append(infos, info)
			identity := info.Identity
			if info.Generator != "" {
				identity += "(" + info.Generator + ")"
			}
			tbl.append(info.Entity, info.Attribute, info.Table+"."+info.Column, info.Type, identity, strings.Join(info.Flags, ","))
		}
	}
	return write(cmd.OutOrStdout(), opts.Format, infos, tbl)
}
