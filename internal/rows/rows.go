// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rows reads form-response exports into header-keyed rows.
// CSV and XLSX exports are supported, from a local path or an HTTP(S) URL.
package rows

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/pdiddy/minibadge/internal/httputil"
	"github.com/pdiddy/minibadge/pkg/types"
)

// ErrNotFound is wrapped by errors for a local input that does not exist.
var ErrNotFound = errors.New("input file not found")

// Row maps a column header to its raw cell text. Columns absent from a
// short row are absent from the map.
type Row map[string]string

// Table is a parsed export: the header and its data rows in file order.
type Table struct {
	Header []string
	Rows   []Row
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

const xlsxExt = ".xlsx"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Open loads the table named by src. A non-empty CSVURL wins over CSVPath.
// Every error returned here is fatal for a conversion run.
func Open(ctx context.Context, client *http.Client, src types.SourceConfig, userAgent string, log logrus.FieldLogger) (*Table, error) {
	if src.CSVURL != "" {
		log.WithField("url", src.CSVURL).Info("Fetching export from URL")
		t, err := LoadURL(ctx, client, src.CSVURL, userAgent, log)
		if err != nil {
			return nil, fmt.Errorf("fetching CSV from URL: %w", err)
		}
		return t, nil
	}

	log.WithField("path", src.CSVPath).Info("Reading export from file")
	return LoadFile(src.CSVPath)
}

// LoadFile reads a local CSV or XLSX export. The format follows the extension.
func LoadFile(p string) (*Table, error) {
	f, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("CSV file not found: %s: %w", p, ErrNotFound)
		}
		return nil, fmt.Errorf("opening %s: %w", p, err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(p), xlsxExt) {
		return ParseXLSX(f)
	}
	return ParseCSV(f)
}

// LoadURL fetches an export over HTTP. Spreadsheet responses are parsed as
// XLSX; everything else is decoded with the declared charset (UTF-8 when
// absent) and parsed as CSV.
func LoadURL(ctx context.Context, client *http.Client, rawURL, userAgent string, log logrus.FieldLogger) (*Table, error) {
	resp, err := httputil.Get(ctx, client, rawURL, userAgent)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	if isSpreadsheet(contentType, rawURL) {
		return ParseXLSX(resp.Body)
	}

	enc := charsetEncoding(contentType, log)
	return ParseCSV(transform.NewReader(resp.Body, enc.NewDecoder()))
}

// ParseCSV parses delimited text whose first record is the header.
// Ragged rows are accepted; a leading UTF-8 byte-order mark is dropped.
func ParseCSV(r io.Reader) (*Table, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return &Table{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	t := &Table{Header: header}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row %d: %w", len(t.Rows)+1, err)
		}
		t.Rows = append(t.Rows, newRow(header, rec))
	}
	return t, nil
}

// ParseXLSX parses the first sheet of a workbook whose first row is the header.
func ParseXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &Table{}, nil
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	if len(records) == 0 {
		return &Table{}, nil
	}

	t := &Table{Header: records[0]}
	for _, rec := range records[1:] {
		if isBlank(rec) {
			continue
		}
		t.Rows = append(t.Rows, newRow(t.Header, rec))
	}
	return t, nil
}

// newRow pairs header names with cells. A repeated header keeps its last value.
func newRow(header, rec []string) Row {
	row := make(Row, len(header))
	for i, name := range header {
		if i >= len(rec) {
			break
		}
		row[name] = rec[i]
	}
	return row
}

func isBlank(rec []string) bool {
	for _, cell := range rec {
		if cell != "" {
			return false
		}
	}
	return true
}

func isSpreadsheet(contentType, rawURL string) bool {
	if strings.Contains(strings.ToLower(contentType), "spreadsheetml") {
		return true
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.EqualFold(path.Ext(u.Path), xlsxExt)
}

// charsetEncoding resolves the charset parameter of contentType. Unknown or
// missing charsets fall back to UTF-8; invalid bytes decode to U+FFFD.
func charsetEncoding(contentType string, log logrus.FieldLogger) encoding.Encoding {
	if contentType == "" {
		return unicode.UTF8
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return unicode.UTF8
	}
	name := params["charset"]
	if name == "" {
		return unicode.UTF8
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		log.WithField("charset", name).Warn("Unknown charset, decoding as UTF-8")
		return unicode.UTF8
	}
	return enc
}
