package sqlite

import (
	"context"
	"sync"

	"github.com/custodia-labs/docsite/internal/core/domain"
	"github.com/custodia-labs/docsite/internal/core/ports/driven"
)

// LazyIndex is a SectionIndex that opens its store on first use, so
// commands that never search leave the data directory untouched.
type LazyIndex struct {
	dataDir string

	mu    sync.Mutex
	store *Store
	index driven.SectionIndex
}

// Ensure LazyIndex implements the interface.
var _ driven.SectionIndex = (*LazyIndex)(nil)

// NewLazyIndex creates an index for the store in dataDir without opening it.
func NewLazyIndex(dataDir string) *LazyIndex {
	return &LazyIndex{dataDir: dataDir}
}

func (l *LazyIndex) open() (driven.SectionIndex, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.index != nil {
		return l.index, nil
	}
	store, err := NewStore(l.dataDir)
	if err != nil {
		return nil, err
	}
	l.store, l.index = store, store.SectionIndex()
	return l.index, nil
}

// Opened reports whether the store has been opened.
func (l *LazyIndex) Opened() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.store != nil
}

// Index opens the store and adds sections.
func (l *LazyIndex) Index(ctx context.Context, sections []domain.Section) error {
	idx, err := l.open()
	if err != nil {
		return err
	}
	return idx.Index(ctx, sections)
}

// Reset opens the store and removes every section.
func (l *LazyIndex) Reset(ctx context.Context) error {
	idx, err := l.open()
	if err != nil {
		return err
	}
	return idx.Reset(ctx)
}

// Search opens the store and queries it.
func (l *LazyIndex) Search(ctx context.Context, query, locale string, limit int) ([]driven.SearchHit, error) {
	idx, err := l.open()
	if err != nil {
		return nil, err
	}
	return idx.Search(ctx, query, locale, limit)
}

// Count opens the store and counts its sections.
func (l *LazyIndex) Count(ctx context.Context) (int, error) {
	idx, err := l.open()
	if err != nil {
		return 0, err
	}
	return idx.Count(ctx)
}

// Close closes the store if it was opened.
func (l *LazyIndex) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.store == nil {
		return nil
	}
	err := l.store.Close()
	l.store, l.index = nil, nil
	return err
}
