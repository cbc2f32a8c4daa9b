package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/custodia-labs/docsite/internal/core/domain"
	"github.com/custodia-labs/docsite/internal/core/ports/driven"
)

// Ensure SectionIndex implements the interface.
var _ driven.SectionIndex = (*SectionIndex)(nil)

// Score weights per field.
const (
	headingWeight   = 3.0
	pageTitleWeight = 2.0
	contentWeight   = 1.0
)

// snippetRadius is the number of runes kept on each side of the first match.
const snippetRadius = 60

// SectionIndex is an in-memory implementation of driven.SectionIndex.
// It matches query terms as case-insensitive substrings, which also works
// for scripts that do not separate words with spaces.
type SectionIndex struct {
	mu       sync.RWMutex
	sections map[string]domain.Section
}

// NewSectionIndex creates a new in-memory section index.
func NewSectionIndex() *SectionIndex {
	return &SectionIndex{
		sections: make(map[string]domain.Section),
	}
}

// Index adds or replaces sections by ID.
func (s *SectionIndex) Index(_ context.Context, sections []domain.Section) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range sections {
		s.sections[sections[i].ID] = sections[i]
	}
	return nil
}

// Reset removes every section.
func (s *SectionIndex) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sections = make(map[string]domain.Section)
	return nil
}

// Search returns sections containing every query term, best first.
func (s *SectionIndex) Search(ctx context.Context, query, locale string, limit int) ([]driven.SearchHit, error) {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return []driven.SearchHit{}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	hits := make([]driven.SearchHit, 0)
	for _, sec := range s.sections {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if locale != "" && sec.Locale != locale {
			continue
		}
		score, ok := scoreSection(sec, terms)
		if !ok {
			continue
		}
		hits = append(hits, driven.SearchHit{
			Section: sec,
			Score:   score,
			Snippet: snippet(sec.Content, terms[0]),
		})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Section.URL() < hits[j].Section.URL()
	})

	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

// Count returns the number of indexed sections.
func (s *SectionIndex) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sections), nil
}

// Close is a no-op for the memory index.
func (s *SectionIndex) Close() error {
	return nil
}

// scoreSection weighs term occurrences per field. Every term must occur.
func scoreSection(sec domain.Section, terms []string) (float64, bool) {
	heading := strings.ToLower(sec.Heading)
	title := strings.ToLower(sec.PageTitle)
	content := strings.ToLower(sec.Content)

	var score float64
	for _, term := range terms {
		h := strings.Count(heading, term)
		p := strings.Count(title, term)
		c := strings.Count(content, term)
		if h+p+c == 0 {
			return 0, false
		}
		score += headingWeight*float64(h) + pageTitleWeight*float64(p) + contentWeight*float64(c)
	}
	return score, true
}

// snippet returns the text around the first occurrence of term.
func snippet(content, term string) string {
	lower := strings.ToLower(content)
	idx := strings.Index(lower, term)
	if idx < 0 || len(lower) != len(content) {
		// Case folding changed byte offsets; fall back to the opening text.
		return truncateRunes(content, 2*snippetRadius)
	}

	start := idx
	for n := 0; n < snippetRadius && start > 0; n++ {
		_, size := utf8.DecodeLastRuneInString(content[:start])
		start -= size
	}
	end := idx + len(term)
	for n := 0; n < snippetRadius && end < len(content); n++ {
		_, size := utf8.DecodeRuneInString(content[end:])
		end += size
	}

	out := content[start:end]
	if start > 0 {
		out = "…" + out
	}
	if end < len(content) {
		out += "…"
	}
	return out
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "…"
}
