// Package filesystem serves the Markdown content tree from the local disk
// and watches files for changes.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/docsite/internal/core/domain"
	"github.com/custodia-labs/docsite/internal/core/ports/driven"
)

// Ensure ContentStore implements the interface.
var _ driven.ContentStore = (*ContentStore)(nil)

// skipDirs are never part of the content tree.
var skipDirs = map[string]bool{
	"node_modules": true,
	"public":       true,
}

// ContentStore reads Markdown pages below a root directory.
type ContentStore struct {
	rootPath string
}

// NewContentStore creates a store for the content tree at rootPath.
func NewContentStore(rootPath string) *ContentStore {
	return &ContentStore{rootPath: rootPath}
}

// Root returns the content root directory.
func (s *ContentStore) Root() string {
	return s.rootPath
}

// Exists returns true if a Markdown document is served at route.
func (s *ContentStore) Exists(ctx context.Context, route string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	rel := domain.FileForRoute(route)
	info, err := os.Stat(filepath.Join(s.rootPath, filepath.FromSlash(rel)))
	if err == nil {
		return info.Mode().IsRegular(), nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat %s: %w", rel, err)
}

// Pages returns every Markdown page below the root, ordered by route.
// Hidden files and directories are skipped.
func (s *ContentStore) Pages(ctx context.Context) ([]driven.Page, error) {
	info, err := os.Stat(s.rootPath)
	if err != nil {
		return nil, fmt.Errorf("content root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content root %s is not a directory: %w", s.rootPath, domain.ErrInvalidInput)
	}

	var pages []driven.Page
	err = filepath.WalkDir(s.rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(s.rootPath, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		if d.IsDir() {
			if isHidden(d.Name()) || skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if isHidden(d.Name()) || !strings.EqualFold(filepath.Ext(d.Name()), ".md") {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", rel, err)
		}
		slashed := filepath.ToSlash(rel)
		pages = append(pages, driven.Page{
			Route:   domain.RouteForFile(slashed),
			File:    slashed,
			Content: content,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(pages, func(i, j int) bool { return pages[i].Route < pages[j].Route })
	return pages, nil
}

// isHidden reports whether a path element starts with a dot.
// "." and ".." are not hidden.
func isHidden(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part != "." && part != ".." && strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
