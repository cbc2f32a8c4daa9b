// Package codec decodes and encodes the site configuration in TOML, YAML
// and JSON. Decoding is strict: unknown keys, trailing documents and type
// mismatches are all reported as *domain.ConfigLoadError.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/docsite/internal/core/domain"
)

// Decode parses data in format. source names the input in errors.
func Decode(source string, format domain.ExportFormat, data []byte) (*domain.SiteConfig, error) {
	switch format {
	case domain.ExportFormatTOML:
		return decodeTOML(source, data)
	case domain.ExportFormatYAML:
		return decodeYAML(source, data)
	case domain.ExportFormatJSON:
		return decodeJSON(source, data)
	default:
		return nil, &domain.ConfigLoadError{
			Source: source,
			Err:    fmt.Errorf("format %q: %w", format, domain.ErrUnsupportedFormat),
		}
	}
}

func decodeTOML(source string, data []byte) (*domain.SiteConfig, error) {
	var cfg domain.SiteConfig
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields() // Reject unknown fields

	err := dec.Decode(&cfg)
	if err == nil {
		return &cfg, nil
	}

	var strictErr *toml.StrictMissingError
	if errors.As(err, &strictErr) && len(strictErr.Errors) > 0 {
		first := strictErr.Errors[0]
		row, col := first.Position()
		cause := domain.ErrUnknownField
		if n := len(strictErr.Errors); n > 1 {
			cause = fmt.Errorf("%w (and %d more)", domain.ErrUnknownField, n-1)
		}
		return nil, &domain.ConfigLoadError{
			Source: source,
			Line:   row,
			Column: col,
			Key:    strings.Join(first.Key(), "."),
			Err:    cause,
		}
	}

	var decErr *toml.DecodeError
	if errors.As(err, &decErr) {
		row, col := decErr.Position()
		return nil, &domain.ConfigLoadError{
			Source: source,
			Line:   row,
			Column: col,
			Key:    strings.Join(decErr.Key(), "."),
			Err:    errors.New(decErr.Error()),
		}
	}

	return nil, &domain.ConfigLoadError{Source: source, Err: err}
}

// yamlLine matches the "line N: message" form of yaml.v3 errors.
var yamlLine = regexp.MustCompile(`line (\d+): (.*)$`)

func decodeYAML(source string, data []byte) (*domain.SiteConfig, error) {
	var cfg domain.SiteConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true) // Reject unknown fields

	if err := dec.Decode(&cfg); err != nil {
		if err == io.EOF {
			return &cfg, nil
		}
		return nil, yamlLoadError(source, err)
	}

	// Strict: ensure no multiple documents or trailing content
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, &domain.ConfigLoadError{
			Source: source,
			Err:    errors.New("configuration contains multiple documents or trailing content"),
		}
	}
	return &cfg, nil
}

func yamlLoadError(source string, err error) error {
	msg := err.Error()
	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) && len(typeErr.Errors) > 0 {
		msg = typeErr.Errors[0]
	}

	loadErr := &domain.ConfigLoadError{Source: source, Err: err}
	if m := yamlLine.FindStringSubmatch(msg); m != nil {
		loadErr.Line, _ = strconv.Atoi(m[1])
		loadErr.Column = 1
		loadErr.Err = errors.New(m[2])
	}
	// "field navv not found in type domain.ThemeConfig"
	if i := strings.Index(msg, "field "); i >= 0 && strings.Contains(msg, "not found in type") {
		if fields := strings.Fields(msg[i+len("field "):]); len(fields) > 0 {
			loadErr.Key = fields[0]
		}
		loadErr.Err = domain.ErrUnknownField
	}
	return loadErr
}

func decodeJSON(source string, data []byte) (*domain.SiteConfig, error) {
	var cfg domain.SiteConfig
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&cfg); err != nil {
		return nil, jsonLoadError(source, data, err)
	}
	if dec.More() {
		return nil, &domain.ConfigLoadError{
			Source: source,
			Err:    errors.New("configuration contains trailing content"),
		}
	}
	return &cfg, nil
}

func jsonLoadError(source string, data []byte, err error) error {
	loadErr := &domain.ConfigLoadError{Source: source, Err: err}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		loadErr.Line, loadErr.Column = lineCol(data, syntaxErr.Offset)
	case errors.As(err, &typeErr):
		loadErr.Line, loadErr.Column = lineCol(data, typeErr.Offset)
		loadErr.Key = typeErr.Field
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		loadErr.Key = strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		loadErr.Err = domain.ErrUnknownField
	}
	return loadErr
}

// lineCol converts a byte offset into a 1-based line and column.
func lineCol(data []byte, offset int64) (int, int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	line, col := 1, 1
	for _, b := range data[:offset] {
		if b == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}
