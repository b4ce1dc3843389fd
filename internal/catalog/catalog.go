// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog assembles badge records into the JSON catalog file.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdiddy/minibadge/internal/badge"
	"github.com/pdiddy/minibadge/internal/images"
	"github.com/pdiddy/minibadge/internal/rows"
	"github.com/pdiddy/minibadge/pkg/types"
)

// Summary holds the outcome of a conversion run.
type Summary struct {
	Written      int
	ImagesSaved  int
	ImagesFailed int
	Badges       []types.Badge
}

func (s *Summary) countImage(r images.Result) {
	switch r.Outcome {
	case images.OutcomeSaved:
		s.ImagesSaved++
	case images.OutcomeFailed:
		s.ImagesFailed++
	}
}

// Build maps every row of tbl in order. Rows without a title are left out.
func Build(ctx context.Context, tbl *rows.Table, mapper *badge.Mapper) Summary {
	s := Summary{Badges: []types.Badge{}}
	for _, row := range tbl.Rows {
		m, ok := mapper.Map(ctx, row)
		if !ok {
			continue
		}
		s.countImage(m.Front)
		s.countImage(m.Back)
		s.Badges = append(s.Badges, m.Badge)
		s.Written++
	}
	return s
}

// Convert builds the catalog from tbl, writes it to outputPath and reports
// the result on w.
func Convert(ctx context.Context, tbl *rows.Table, mapper *badge.Mapper, outputPath string, w io.Writer) (Summary, error) {
	s := Build(ctx, tbl, mapper)
	if err := Write(outputPath, s.Badges); err != nil {
		return s, err
	}

	fmt.Fprintf(w, "Wrote %d badges to %s\n", len(s.Badges), outputPath)
	fmt.Fprintf(w, "Images: %d saved, %d failed\n", s.ImagesSaved, s.ImagesFailed)
	return s, nil
}

// Write serializes badges as an indented JSON array at path, creating the
// parent directory. Non-ASCII and HTML characters are written as-is.
func Write(path string, badges []types.Badge) error {
	if badges == nil {
		badges = []types.Badge{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(badges); err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
