// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/minibadge/internal/badge"
	"github.com/pdiddy/minibadge/internal/catalog"
	"github.com/pdiddy/minibadge/internal/images"
	"github.com/pdiddy/minibadge/internal/logging"
	"github.com/pdiddy/minibadge/internal/rows"
)

func newConvertCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a form-response export into the badge catalog JSON",
		Long: `Convert reads the form-response export (CSV or XLSX) from a local path or
a URL, maps each submission to a badge, mirrors front and back images into the
images directory and writes the catalog as a JSON array.

Rows without a title are skipped. Images that fail to download keep their
submitted URL. A missing or unreachable export aborts the run.`,
		Example: `  # Convert the default local export
  minibadge convert

  # Convert straight from a published sheet
  minibadge convert --csv-url "https://docs.google.com/spreadsheets/d/ID/export?format=csv"

  # Write somewhere else without touching images
  minibadge convert -o site/data/minibadges.json --skip-images`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, v)
		},
	}

	flags := cmd.Flags()
	flags.String("csv-path", defaultCSVPath, "local export path (CSV or XLSX)")
	flags.String("csv-url", "", "export URL; overrides --csv-path")
	flags.StringP("output", "o", defaultOutputPath, "output JSON path")
	flags.String("images-dir", defaultImagesDir, "directory for mirrored images")
	flags.Duration("timeout", defaultTimeout, "HTTP request timeout")
	flags.Bool("skip-images", false, "keep image URLs as submitted")

	_ = v.BindPFlag(keyCSVPath, flags.Lookup("csv-path"))
	_ = v.BindPFlag(keyCSVURL, flags.Lookup("csv-url"))
	_ = v.BindPFlag(keyOutput, flags.Lookup("output"))
	_ = v.BindPFlag(keyImagesDir, flags.Lookup("images-dir"))
	_ = v.BindPFlag(keyTimeout, flags.Lookup("timeout"))
	_ = v.BindPFlag(keySkipImages, flags.Lookup("skip-images"))

	return cmd
}

func runConvert(cmd *cobra.Command, v *viper.Viper) error {
	cfg := loadConvertConfig(v)
	log := logging.New(cmd.ErrOrStderr(), v.GetBool(keyVerbose))

	columns, err := badge.NewColumns(cfg.Columns)
	if err != nil {
		return err
	}

	client := &http.Client{
		Timeout: cfg.Timeout,
	}

	tbl, err := rows.Open(cmd.Context(), client, cfg.SourceConfig, cfg.UserAgent, log)
	if err != nil {
		return err
	}
	log.WithField("rows", tbl.Len()).Debug("Loaded export")

	var materializer badge.ImageMaterializer
	if !cfg.SkipImages {
		materializer = images.New(client, cfg.ImagesDir, cfg.UserAgent, log)
	}
	mapper := badge.NewMapper(columns, materializer)

	_, err = catalog.Convert(cmd.Context(), tbl, mapper, cfg.OutputPath, cmd.OutOrStdout())
	return err
}
