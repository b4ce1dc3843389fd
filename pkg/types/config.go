// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "minibadge/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SourceConfig locates the tabular input. When CSVURL is set it wins over CSVPath.
type SourceConfig struct {
	CSVPath string `json:"csv_path" yaml:"csv_path"`
	CSVURL  string `json:"csv_url,omitempty" yaml:"csv_url,omitempty"`
}

// ConvertConfig holds settings for a conversion run.
type ConvertConfig struct {
	HTTPConfig   `yaml:",inline"`
	SourceConfig `yaml:",inline"`

	// OutputPath is the JSON catalog file to write.
	OutputPath string `json:"output" yaml:"output"`

	// ImagesDir receives mirrored front and back images.
	ImagesDir string `json:"images_dir" yaml:"images_dir"`

	// SkipImages leaves every image reference as submitted.
	SkipImages bool `json:"skip_images" yaml:"skip_images"`

	// Columns overrides individual Column Map headers, keyed by field name.
	Columns map[string]string `json:"columns,omitempty" yaml:"columns,omitempty"`
}
