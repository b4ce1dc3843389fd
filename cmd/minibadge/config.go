// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/minibadge/pkg/types"
)

const (
	defaultCSVPath    = "data/google-form-responses.csv"
	defaultOutputPath = "data/minibadges_from_form.json"
	defaultImagesDir  = "images"
	defaultTimeout    = 60 * time.Second
	defaultUserAgent  = "minibadge/0.1"
)

// Config keys shared by flags, environment variables and the config file.
const (
	keyCSVPath    = "csv_path"
	keyCSVURL     = "csv_url"
	keyOutput     = "output"
	keyImagesDir  = "images_dir"
	keyTimeout    = "timeout"
	keySkipImages = "skip_images"
	keyColumns    = "columns"
	keyVerbose    = "verbose"
)

// bindEnv registers defaults and the environment variable names for each key.
// The CSV URL falls back to GOOGLE_FORM_CSV_URL when MINIBADGE_CSV_URL is unset.
func bindEnv(v *viper.Viper) {
	v.SetDefault(keyCSVPath, defaultCSVPath)
	v.SetDefault(keyOutput, defaultOutputPath)
	v.SetDefault(keyImagesDir, defaultImagesDir)
	v.SetDefault(keyTimeout, defaultTimeout)

	_ = v.BindEnv(keyCSVPath, "MINIBADGE_CSV")
	_ = v.BindEnv(keyCSVURL, "MINIBADGE_CSV_URL", "GOOGLE_FORM_CSV_URL")
	_ = v.BindEnv(keyOutput, "MINIBADGE_JSON")
	_ = v.BindEnv(keyImagesDir, "MINIBADGE_IMAGES_DIR")
	_ = v.BindEnv(keyTimeout, "MINIBADGE_TIMEOUT")
	_ = v.BindEnv(keySkipImages, "MINIBADGE_SKIP_IMAGES")
	_ = v.BindEnv(keyVerbose, "MINIBADGE_VERBOSE")
}

// loadConvertConfig resolves the conversion settings from v.
func loadConvertConfig(v *viper.Viper) types.ConvertConfig {
	timeout := v.GetDuration(keyTimeout)
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return types.ConvertConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		SourceConfig: types.SourceConfig{
			CSVPath: v.GetString(keyCSVPath),
			CSVURL:  v.GetString(keyCSVURL),
		},
		OutputPath: v.GetString(keyOutput),
		ImagesDir:  v.GetString(keyImagesDir),
		SkipImages: v.GetBool(keySkipImages),
		Columns:    v.GetStringMapString(keyColumns),
	}
}
