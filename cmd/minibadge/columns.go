// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/minibadge/internal/badge"
)

func newColumnsCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "columns",
		Short: "Print the column headers each badge field is read from",
		Long: `Columns prints the effective field-to-header map as YAML, including any
overrides from the config file. The output can be pasted into minibadge.yaml
and edited when the form's questions are renamed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			columns, err := badge.NewColumns(v.GetStringMapString(keyColumns))
			if err != nil {
				return err
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(struct {
				Columns badge.ColumnMap `yaml:"columns"`
			}{columns}); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}
