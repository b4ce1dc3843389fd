// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/minibadge/internal/rows"
	"github.com/pdiddy/minibadge/pkg/types"
)

const formCSV = "Timestamp,Title of your badge,Your handle/name,How many did you make?,Front image\n" +
	"3/14/2025 09:00:00,Scratch and Sniff!,hacker,12,https://example.invalid/front.png\n" +
	"3/15/2025 10:00:00,,nobody,1,\n" +
	"3/16/2025 11:00:00,Glow Worm,maker,twelve,\n"

// isolateEnv clears every variable the CLI reads and points HOME at an
// empty directory so no user config is picked up.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"MINIBADGE_CSV", "MINIBADGE_CSV_URL", "GOOGLE_FORM_CSV_URL", "MINIBADGE_JSON",
		"MINIBADGE_IMAGES_DIR", "MINIBADGE_TIMEOUT", "MINIBADGE_SKIP_IMAGES", "MINIBADGE_VERBOSE",
	} {
		t.Setenv(name, "")
	}
	t.Setenv("HOME", t.TempDir())
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd(viper.New())
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func readCatalog(t *testing.T, path string) []types.Badge {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got []types.Badge
	require.NoError(t, json.Unmarshal(data, &got))
	return got
}

func TestConvertCmd_LocalFile(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "responses.csv")
	outPath := filepath.Join(dir, "out", "badges.json")
	require.NoError(t, os.WriteFile(csvPath, []byte(formCSV), 0o644))

	stdout, _, err := execute(t, "convert", "--csv-path", csvPath, "--output", outPath, "--skip-images")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrote 2 badges to "+outPath)

	got := readCatalog(t, outPath)
	require.Len(t, got, 2)
	assert.Equal(t, "Scratch and Sniff!", got[0].Title)
	assert.Equal(t, "https://example.invalid/front.png", got[0].FrontImageURL)
	assert.Equal(t, "Glow Worm", got[1].Title)
	assert.Equal(t, 0, got[1].QuantityMade)
}

func TestConvertCmd_EnvironmentAndURLFallback(t *testing.T) {
	isolateEnv(t)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/export.csv" {
			w.Header().Set("Content-Type", "text/csv; charset=utf-8")
			fmt.Fprint(w, formCSV)
			return
		}
		http.NotFound(w, r)
	}))
	defer ts.Close()

	dir := t.TempDir()
	outPath := filepath.Join(dir, "env.json")
	t.Setenv("MINIBADGE_CSV", filepath.Join(dir, "does-not-exist.csv"))
	t.Setenv("GOOGLE_FORM_CSV_URL", ts.URL+"/export.csv")
	t.Setenv("MINIBADGE_JSON", outPath)
	t.Setenv("MINIBADGE_SKIP_IMAGES", "true")

	stdout, _, err := execute(t, "convert")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrote 2 badges")
	assert.Len(t, readCatalog(t, outPath), 2)
}

func TestConvertCmd_FlagBeatsEnvironment(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "responses.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(formCSV), 0o644))

	envOut := filepath.Join(dir, "env.json")
	flagOut := filepath.Join(dir, "flag.json")
	t.Setenv("MINIBADGE_CSV", csvPath)
	t.Setenv("MINIBADGE_JSON", envOut)

	_, _, err := execute(t, "convert", "-o", flagOut, "--skip-images")
	require.NoError(t, err)

	assert.FileExists(t, flagOut)
	assert.NoFileExists(t, envOut)
}

func TestConvertCmd_MissingFileIsFatal(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	outPath := filepath.Join(dir, "out.json")

	_, _, err := execute(t, "convert", "--csv-path", filepath.Join(dir, "missing.csv"), "-o", outPath)
	require.Error(t, err)
	assert.ErrorIs(t, err, rows.ErrNotFound)
	assert.NoFileExists(t, outPath)
}

func TestConvertCmd_UnreachableURLIsFatal(t *testing.T) {
	isolateEnv(t)
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	_, _, err := execute(t, "convert", "--csv-url", ts.URL+"/gone.csv", "-o", filepath.Join(t.TempDir(), "out.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestConvertCmd_ConfigColumns(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "responses.csv")
	outPath := filepath.Join(dir, "out.json")
	cfgPath := filepath.Join(dir, "minibadge.yaml")

	require.NoError(t, os.WriteFile(csvPath, []byte("Badge name,Count\nRenamed,4\n"), 0o644))
	cfg := fmt.Sprintf("csv_path: %s\noutput: %s\nskip_images: true\ncolumns:\n  title: Badge name\n  quantityMade: Count\n", csvPath, outPath)
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	_, _, err := execute(t, "--config", cfgPath, "convert")
	require.NoError(t, err)

	got := readCatalog(t, outPath)
	require.Len(t, got, 1)
	assert.Equal(t, "Renamed", got[0].Title)
	assert.Equal(t, 4, got[0].QuantityMade)
}

func TestConvertCmd_UnknownColumnField(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "minibadge.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("columns:\n  nickname: Nick\n"), 0o644))

	_, _, err := execute(t, "--config", cfgPath, "convert", "--csv-path", filepath.Join(dir, "x.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown column field")
}

func TestColumnsCmd(t *testing.T) {
	isolateEnv(t)
	stdout, _, err := execute(t, "columns")
	require.NoError(t, err)

	assert.Contains(t, stdout, "columns:\n  title: Title of your badge\n")
	assert.Contains(t, stdout, "  frontImageUrl: Front image\n")
}

func TestVersionCmd(t *testing.T) {
	isolateEnv(t)
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "minibadge dev\n", stdout)
}

func TestLoadConvertConfig_Defaults(t *testing.T) {
	isolateEnv(t)
	v := viper.New()
	bindEnv(v)

	cfg := loadConvertConfig(v)
	assert.Equal(t, defaultCSVPath, cfg.CSVPath)
	assert.Equal(t, "", cfg.CSVURL)
	assert.Equal(t, defaultOutputPath, cfg.OutputPath)
	assert.Equal(t, defaultImagesDir, cfg.ImagesDir)
	assert.Equal(t, defaultTimeout, cfg.Timeout)
	assert.False(t, cfg.SkipImages)
}

func TestLoadConvertConfig_URLPrecedence(t *testing.T) {
	isolateEnv(t)
	t.Setenv("MINIBADGE_CSV_URL", "https://primary.example/export.csv")
	t.Setenv("GOOGLE_FORM_CSV_URL", "https://fallback.example/export.csv")
	t.Setenv("MINIBADGE_TIMEOUT", "5s")

	v := viper.New()
	bindEnv(v)
	cfg := loadConvertConfig(v)
	assert.Equal(t, "https://primary.example/export.csv", cfg.CSVURL)
	assert.Equal(t, "5s", cfg.Timeout.String())
}
