package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/docsite/internal/core/domain"
	"github.com/custodia-labs/docsite/internal/core/ports/driven"
)

// trigramLen is the shortest term the trigram tokenizer can match.
const trigramLen = 3

// sectionIndex implements driven.SectionIndex.
type sectionIndex struct {
	store *Store
}

var _ driven.SectionIndex = (*sectionIndex)(nil)

// Index adds or replaces sections by ID.
func (s *sectionIndex) Index(ctx context.Context, sections []domain.Section) error {
	if len(sections) == 0 {
		return nil
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	del, err := tx.PrepareContext(ctx, "DELETE FROM sections_fts WHERE id = ?")
	if err != nil {
		return fmt.Errorf("preparing delete: %w", err)
	}
	defer del.Close()

	ins, err := tx.PrepareContext(ctx, `
		INSERT INTO sections_fts (id, locale, route, anchor, page_title, heading, content)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer ins.Close()

	for i := range sections {
		sec := &sections[i]
		if _, err := del.ExecContext(ctx, sec.ID); err != nil {
			return fmt.Errorf("replacing section %s: %w", sec.ID, err)
		}
		if _, err := ins.ExecContext(ctx,
			sec.ID, sec.Locale, sec.Route, sec.Anchor, sec.PageTitle, sec.Heading, sec.Content,
		); err != nil {
			return fmt.Errorf("inserting section %s: %w", sec.ID, err)
		}
	}

	return tx.Commit()
}

// Reset removes every section.
func (s *sectionIndex) Reset(ctx context.Context) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM sections_fts")
	return err
}

// Search ranks sections with bm25. Terms shorter than a trigram cannot use
// the full-text index, so such queries fall back to substring matching.
func (s *sectionIndex) Search(ctx context.Context, query, locale string, limit int) ([]driven.SearchHit, error) {
	terms := strings.Fields(query)
	if len(terms) == 0 {
		return []driven.SearchHit{}, nil
	}
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	for _, t := range terms {
		if utf8.RuneCountInString(t) < trigramLen {
			return s.searchLike(ctx, terms, locale, limit)
		}
	}
	return s.searchFTS(ctx, terms, locale, limit)
}

func (s *sectionIndex) searchFTS(ctx context.Context, terms []string, locale string, limit int) ([]driven.SearchHit, error) {
	// bm25 weights follow column order; UNINDEXED columns get zero.
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, locale, route, anchor, page_title, heading, content,
		       -bm25(sections_fts, 0, 0, 0, 0, 2.0, 3.0, 1.0) AS score,
		       snippet(sections_fts, 6, '', '', '…', 24)
		FROM sections_fts
		WHERE sections_fts MATCH ? AND (? = '' OR locale = ?)
		ORDER BY score DESC, route, anchor
		LIMIT ?
	`, matchExpr(terms), locale, locale, limit)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	defer rows.Close()

	return scanHits(rows)
}

func (s *sectionIndex) searchLike(ctx context.Context, terms []string, locale string, limit int) ([]driven.SearchHit, error) {
	var (
		scores    []string
		filters   []string
		scoreArgs []any
		whereArgs []any
	)
	for _, t := range terms {
		pattern := "%" + escapeLike(strings.ToLower(t)) + "%"
		scores = append(scores,
			`(CASE WHEN lower(heading) LIKE ? ESCAPE '\' THEN 3 ELSE 0 END)`,
			`(CASE WHEN lower(page_title) LIKE ? ESCAPE '\' THEN 2 ELSE 0 END)`,
			`(CASE WHEN lower(content) LIKE ? ESCAPE '\' THEN 1 ELSE 0 END)`,
		)
		filters = append(filters,
			`(lower(heading) LIKE ? ESCAPE '\' OR lower(page_title) LIKE ? ESCAPE '\' OR lower(content) LIKE ? ESCAPE '\')`,
		)
		scoreArgs = append(scoreArgs, pattern, pattern, pattern)
		whereArgs = append(whereArgs, pattern, pattern, pattern)
	}

	q := fmt.Sprintf(`
		SELECT id, locale, route, anchor, page_title, heading, content,
		       CAST(%s AS REAL) AS score,
		       substr(content, 1, 120)
		FROM sections_fts
		WHERE %s AND (? = '' OR locale = ?)
		ORDER BY score DESC, route, anchor
		LIMIT ?
	`, strings.Join(scores, " + "), strings.Join(filters, " AND "))

	args := append(scoreArgs, whereArgs...)
	args = append(args, locale, locale, limit)

	rows, err := s.store.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	defer rows.Close()

	return scanHits(rows)
}

// Count returns the number of indexed sections.
func (s *sectionIndex) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sections_fts").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Close closes the underlying store.
func (s *sectionIndex) Close() error {
	return s.store.Close()
}

func scanHits(rows *sql.Rows) ([]driven.SearchHit, error) {
	hits := make([]driven.SearchHit, 0)
	for rows.Next() {
		var h driven.SearchHit
		sec := &h.Section
		if err := rows.Scan(
			&sec.ID, &sec.Locale, &sec.Route, &sec.Anchor, &sec.PageTitle, &sec.Heading, &sec.Content,
			&h.Score, &h.Snippet,
		); err != nil {
			return nil, fmt.Errorf("scanning hit: %w", err)
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

// matchExpr quotes every term as an FTS5 string so that operators and
// punctuation in user input are matched literally. Terms are ANDed.
func matchExpr(terms []string) string {
	quoted := make([]string, len(terms))
	for i, t := range terms {
		quoted[i] = `"` + strings.ReplaceAll(t, `"`, `""`) + `"`
	}
	return strings.Join(quoted, " ")
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
