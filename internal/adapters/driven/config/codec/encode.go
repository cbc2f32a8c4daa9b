package codec

import (
	"bytes"
	"encoding/json"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/docsite/internal/core/domain"
	"github.com/custodia-labs/docsite/internal/core/ports/driven"
)

// Ensure the encoders implement the interface.
var (
	_ driven.SiteEncoder = JSONEncoder{}
	_ driven.SiteEncoder = YAMLEncoder{}
	_ driven.SiteEncoder = TOMLEncoder{}
)

// Encoders returns one encoder per supported format.
func Encoders() []driven.SiteEncoder {
	return []driven.SiteEncoder{JSONEncoder{}, YAMLEncoder{}, TOMLEncoder{}}
}

// JSONEncoder writes indented JSON.
type JSONEncoder struct{}

// Format returns the format produced by Encode.
func (JSONEncoder) Format() domain.ExportFormat { return domain.ExportFormatJSON }

// Encode writes cfg.
func (JSONEncoder) Encode(cfg *domain.SiteConfig) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// YAMLEncoder writes YAML with two-space indentation.
type YAMLEncoder struct{}

// Format returns the format produced by Encode.
func (YAMLEncoder) Format() domain.ExportFormat { return domain.ExportFormatYAML }

// Encode writes cfg.
func (YAMLEncoder) Encode(cfg *domain.SiteConfig) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// TOMLEncoder writes TOML.
type TOMLEncoder struct{}

// Format returns the format produced by Encode.
func (TOMLEncoder) Format() domain.ExportFormat { return domain.ExportFormatTOML }

// Encode writes cfg.
func (TOMLEncoder) Encode(cfg *domain.SiteConfig) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
