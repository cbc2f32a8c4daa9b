package domain

// ExportFormat is a serialisation of the site configuration.
type ExportFormat string

// Available export formats.
const (
	ExportFormatJSON ExportFormat = "json"
	ExportFormatYAML ExportFormat = "yaml"
	ExportFormatTOML ExportFormat = "toml"
)

// IsValid returns true if the format is recognised.
func (f ExportFormat) IsValid() bool {
	switch f {
	case ExportFormatJSON, ExportFormatYAML, ExportFormatTOML:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (f ExportFormat) String() string {
	return string(f)
}

// FormatForExt maps a file extension (with dot) to a format.
func FormatForExt(ext string) (ExportFormat, bool) {
	switch ext {
	case ".json":
		return ExportFormatJSON, true
	case ".yaml", ".yml":
		return ExportFormatYAML, true
	case ".toml":
		return ExportFormatTOML, true
	default:
		return "", false
	}
}

// ToolSettings holds the preferences of the docsite tool itself,
// as opposed to the site configuration it manages.
type ToolSettings struct {
	// SiteFile is the site configuration file. Empty selects the built-in configuration.
	SiteFile string

	// ContentDir is the Markdown content root used for link checks and search.
	ContentDir string

	// DataDir holds the local search index.
	DataDir string

	// GitHubToken authenticates edit link verification. Optional.
	GitHubToken string
}

// DefaultToolSettings returns settings with sensible defaults.
func DefaultToolSettings() ToolSettings {
	return ToolSettings{
		ContentDir: "docs",
	}
}
