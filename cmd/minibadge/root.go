// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// newRootCmd builds the command tree around v, which holds flags,
// environment and config file values for the run.
func newRootCmd(v *viper.Viper) *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "minibadge",
		Short: "Convert form submissions into the minibadge catalog",
		Long: `minibadge turns a spreadsheet export of form submissions into the JSON
badge catalog consumed by the static site. Front and back images hosted
remotely (including Drive share links) are mirrored into a local images
directory so the site can serve them directly.

Run "minibadge convert" after each batch of submissions and commit the
resulting JSON and images.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
			return readConfig(v, cfgFile, cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./minibadge.yaml or ~/.config/minibadge/minibadge.yaml)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	_ = v.BindPFlag(keyVerbose, cmd.PersistentFlags().Lookup("verbose"))

	bindEnv(v)

	cmd.AddCommand(newConvertCmd(v))
	cmd.AddCommand(newColumnsCmd(v))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// readConfig loads the config file into v. An explicit file must exist; the
// default search locations are optional.
func readConfig(v *viper.Viper, cfgFile string, cmd *cobra.Command) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", cfgFile, err)
		}
		return nil
	}

	v.SetConfigName("minibadge")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "minibadge"))
	}

	err := v.ReadInConfig()
	if err == nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Using config file:", v.ConfigFileUsed())
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}
	return fmt.Errorf("reading config: %w", err)
}
