// Package file provides file-based implementations of driven port interfaces.
// These adapters read from and persist to the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML-based storage of the tool's own preferences
//   - SiteSource: the site configuration read from a TOML, YAML or JSON file
package file
