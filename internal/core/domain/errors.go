package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfigLoad classifies every failure to load the site configuration.
	// Use errors.Is(err, ErrConfigLoad) instead of type assertions.
	ErrConfigLoad = errors.New("configuration load error")

	// ErrUnknownField indicates the configuration contains a key the schema does not define.
	ErrUnknownField = errors.New("unknown configuration field")

	// ErrUnknownLocale indicates a locale code or path outside every locale.
	ErrUnknownLocale = errors.New("unknown locale")

	// ErrUnsupportedFormat indicates a configuration format with no codec.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrSearchUnavailable indicates the local search index cannot serve queries,
	// either because it is not configured or the site selects another provider.
	ErrSearchUnavailable = errors.New("search unavailable")

	// ErrRepoNotFound indicates the repository named by the edit link does not exist.
	ErrRepoNotFound = errors.New("repository not found")
)

// ConfigLoadError is the single error kind of configuration loading.
// It carries the location of the problem when the decoder reports one.
type ConfigLoadError struct {
	// Source is the file name or "builtin".
	Source string

	// Line and Column are 1-based; zero when unknown.
	Line   int
	Column int

	// Key is the offending key path, when known.
	Key string

	// Err is the underlying decoder or read error.
	Err error
}

func (e *ConfigLoadError) Error() string {
	loc := e.Source
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d:%d", e.Source, e.Line, e.Column)
	}
	if e.Key != "" {
		return fmt.Sprintf("%s: %s: %v", loc, e.Key, e.Err)
	}
	return fmt.Sprintf("%s: %v", loc, e.Err)
}

// Unwrap exposes both the ErrConfigLoad class and the cause.
func (e *ConfigLoadError) Unwrap() []error {
	return []error{ErrConfigLoad, e.Err}
}
