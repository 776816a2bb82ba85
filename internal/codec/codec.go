// Package codec serializes the item collection to and from the four
// supported file formats (CSV, JSON, XML and the line-oriented LITEMS
// format) and merges imports with duplicate suppression.
package codec

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/erazemk/najdeno/internal/model"
)

// Format identifies an export/import file format.
type Format string

// Supported formats; the string value doubles as the file extension.
const (
	FormatCSV    Format = "csv"
	FormatJSON   Format = "json"
	FormatXML    Format = "xml"
	FormatLITEMS Format = "litems"
)

// ErrUnknownFormat reports a file extension or format name that no parser
// handles.
var ErrUnknownFormat = errors.New("unknown format")

// ParseError reports a format-specific import failure. Imports are
// all-or-nothing: when one is returned the existing collection is untouched.
type ParseError struct {
	Format Format
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func parseErr(f Format, format string, args ...any) error {
	return &ParseError{Format: f, Err: fmt.Errorf(format, args...)}
}

// ParseFormat maps a format name to a Format.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case FormatCSV, FormatJSON, FormatXML, FormatLITEMS:
		return Format(strings.ToLower(name)), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// DetectFormat sniffs the format from a file name's extension.
func DetectFormat(filename string) (Format, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %q has no extension", ErrUnknownFormat, filename)
	}
	return ParseFormat(ext)
}

// Export serializes items in the given format.
func Export(items []model.Item, f Format) (string, error) {
	switch f {
	case FormatCSV:
		return ExportCSV(items)
	case FormatJSON:
		return ExportJSON(items)
	case FormatXML:
		return ExportXML(items)
	case FormatLITEMS:
		return ExportLITEMS(items), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// Import parses items from content in the given format.
func Import(content string, f Format) ([]model.Item, error) {
	switch f {
	case FormatCSV:
		return ImportCSV(content)
	case FormatJSON:
		return ImportJSON(content)
	case FormatXML:
		return ImportXML(content)
	case FormatLITEMS:
		return ImportLITEMS(content)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// dateLayouts are accepted on import, most specific first. Export always
// writes RFC 3339.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02",
}

func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}

// checkImported validates the parsed items the way the store would before
// accepting them: ids, titles and dates must be present, and categories are
// coerced to the default bucket when unset.
func checkImported(items []model.Item, f Format) ([]model.Item, error) {
	for i := range items {
		items[i].Category = model.NormalizeCategory(items[i].Category)
		if !model.ValidItem(items[i]) {
			return nil, parseErr(f, "item %d is missing an id, title or date", i+1)
		}
	}
	return items, nil
}
