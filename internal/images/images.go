// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package images mirrors remotely hosted badge images into a local directory.
package images

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/minibadge/internal/httputil"
)

// Outcome classifies what Materialize did with a reference.
type Outcome int

const (
	// OutcomeSkipped means the reference was empty.
	OutcomeSkipped Outcome = iota
	// OutcomePassthrough means the reference is not an HTTP(S) URL and was left alone.
	OutcomePassthrough
	// OutcomeSaved means the image was downloaded and written locally.
	OutcomeSaved
	// OutcomeFailed means the download or the local write failed.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomePassthrough:
		return "passthrough"
	case OutcomeSaved:
		return "saved"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the outcome of materializing one image reference.
// Path is empty for OutcomeSkipped and OutcomeFailed.
type Result struct {
	Outcome Outcome
	Path    string
	Err     error
}

// Resolve returns the local path when there is one and raw otherwise, so a
// failed download keeps the submitted URL in the record.
func (r Result) Resolve(raw string) string {
	if r.Path != "" {
		return r.Path
	}
	return raw
}

// driveDownloadBase is the direct-download endpoint for Drive files.
// Declared as a var so tests can substitute an httptest server.
var driveDownloadBase = "https://drive.google.com/uc"

const driveHost = "drive.google.com"

// Materializer downloads images into Dir.
type Materializer struct {
	Client    *http.Client
	Dir       string
	UserAgent string
	Log       logrus.FieldLogger
}

// New creates a Materializer writing into dir.
func New(client *http.Client, dir, userAgent string, log logrus.FieldLogger) *Materializer {
	return &Materializer{
		Client:    client,
		Dir:       dir,
		UserAgent: userAgent,
		Log:       log,
	}
}

// Materialize fetches rawURL and stores it as {Dir}/{stem}.{ext}, overwriting
// any existing file of that name. Empty references are skipped and non-HTTP
// references are returned unchanged. Failures are logged and reported in the
// result; they never abort the run.
func (m *Materializer) Materialize(ctx context.Context, rawURL, stem string) Result {
	if rawURL == "" {
		return Result{Outcome: OutcomeSkipped}
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return Result{Outcome: OutcomePassthrough, Path: rawURL}
	}

	target := DirectURL(rawURL)
	if target != rawURL {
		m.Log.WithFields(logrus.Fields{"url": rawURL, "direct": target}).Debug("Rewrote Drive share link")
	}

	relPath, err := m.download(ctx, target, stem)
	if err != nil {
		m.Log.WithFields(logrus.Fields{"url": rawURL, "error": err}).Warn("Failed to download image")
		return Result{Outcome: OutcomeFailed, Err: err}
	}

	m.Log.WithFields(logrus.Fields{"url": rawURL, "path": relPath}).Info("Saved image")
	return Result{Outcome: OutcomeSaved, Path: relPath}
}

// download fetches url into the images directory through a temporary file
// and returns the slash-separated path of the written image.
func (m *Materializer) download(ctx context.Context, url, stem string) (string, error) {
	resp, err := httputil.Get(ctx, m.Client, url, m.UserAgent)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	ext := ExtensionFor(resp.Header.Get("Content-Type"))
	name := stem + "." + ext

	if err := os.MkdirAll(m.Dir, 0o755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", m.Dir, err)
	}

	tmpFile, err := os.CreateTemp(m.Dir, ".image-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, resp.Body)
	if copyErr == nil {
		copyErr = tmpFile.Chmod(0o644)
	}
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, filepath.Join(m.Dir, name)); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("renaming temp file: %w", err)
	}

	return strings.ReplaceAll(m.Dir+"/"+name, `\`, "/"), nil
}

// ExtensionFor maps a Content-Type header to an image file extension,
// defaulting to jpg.
func ExtensionFor(contentType string) string {
	ct := strings.ToLower(contentType)
	switch {
	case ct == "":
		return "jpg"
	case strings.Contains(ct, "jpeg"), strings.Contains(ct, "jpg"):
		return "jpg"
	case strings.Contains(ct, "png"):
		return "png"
	case strings.Contains(ct, "gif"):
		return "gif"
	case strings.Contains(ct, "webp"):
		return "webp"
	case strings.Contains(ct, "bmp"):
		return "bmp"
	default:
		return "jpg"
	}
}
