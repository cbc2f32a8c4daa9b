package markdown

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"path"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/adrg/frontmatter"
	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/docsite/internal/core/domain"
	"github.com/custodia-labs/docsite/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// sectionNamespace scopes the name-based section IDs.
var sectionNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("docsite:section"))

// frontmatterFormats are the page headers the site generator accepts.
var frontmatterFormats = []*frontmatter.Format{
	frontmatter.NewFormat("---", "---", yaml.Unmarshal),
	frontmatter.NewFormat("+++", "+++", toml.Unmarshal),
}

var (
	containers    = regexp.MustCompile(`(?m)^[ \t]*:::.*$`)
	multiSpaces   = regexp.MustCompile(`[ \t]+`)
	multiNewlines = regexp.MustCompile(`\n{3,}`)
)

// Normaliser splits Markdown pages into searchable sections.
type Normaliser struct {
	md goldmark.Markdown
}

// New creates a new Markdown normaliser.
func New() *Normaliser {
	return &Normaliser{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithHeadingAttribute()),
		),
	}
}

// pageMeta holds the keys of a page's header that affect indexing.
type pageMeta struct {
	Title  string `yaml:"title" toml:"title"`
	Search *bool  `yaml:"search" toml:"search"`
}

// heading is a top-level heading of the page body.
type heading struct {
	level  int
	text   string
	anchor string
}

// Sections splits page at headings of level minLevel..maxLevel.
// Text before the first such heading forms a section anchored at the page
// itself. Pages whose frontmatter sets "search: false" yield no sections.
func (n *Normaliser) Sections(
	_ context.Context, page driven.Page, locale string, minLevel, maxLevel int,
) ([]domain.Section, error) {
	if minLevel < 1 || maxLevel > 6 || minLevel > maxLevel {
		return nil, fmt.Errorf("heading range [%d, %d]: %w", minLevel, maxLevel, domain.ErrInvalidInput)
	}

	meta, body, err := parseFrontmatter(page.Content)
	if err != nil {
		return nil, fmt.Errorf("%s: frontmatter: %w", page.File, err)
	}
	if meta.Search != nil && !*meta.Search {
		return []domain.Section{}, nil
	}

	doc := n.md.Parser().Parse(text.NewReader(body))
	headings := collectHeadings(doc, body)

	title := meta.Title
	if title == "" {
		title = pageTitle(headings, page.File)
	}

	var (
		sections  []domain.Section
		content   strings.Builder
		anchor    string
		name      = title
		titleSeen bool
		next      int
	)
	flush := func() {
		plain := cleanText(content.String())
		if anchor != "" || plain != "" {
			sections = append(sections, newSection(page.Route, locale, anchor, title, name, plain))
		}
		content.Reset()
	}

	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		if _, ok := node.(*ast.Heading); ok {
			h := headings[next]
			next++
			if h.level == 1 && h.text == title && anchor == "" && !titleSeen {
				// The page title heading belongs to the lead section.
				titleSeen = true
				continue
			}
			if h.level >= minLevel && h.level <= maxLevel {
				flush()
				anchor, name = h.anchor, h.text
				continue
			}
		}
		writeBlock(&content, node, body)
	}
	flush()

	if sections == nil {
		sections = []domain.Section{}
	}
	return sections, nil
}

func newSection(route, locale, anchor, title, name, content string) domain.Section {
	key := locale + ":" + route + "#" + anchor
	return domain.Section{
		ID:        uuid.NewSHA1(sectionNamespace, []byte(key)).String(),
		Locale:    locale,
		Route:     route,
		Anchor:    anchor,
		PageTitle: title,
		Heading:   name,
		Content:   content,
	}
}

// parseFrontmatter separates the page header from the Markdown body.
// Line endings are normalised to LF first.
func parseFrontmatter(content []byte) (pageMeta, []byte, error) {
	var meta pageMeta
	content = bytes.TrimPrefix(content, []byte("\ufeff"))
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))

	body, err := frontmatter.Parse(bytes.NewReader(content), &meta, frontmatterFormats...)
	if err != nil {
		return meta, nil, err
	}
	return meta, body, nil
}

// collectHeadings lists the top-level headings in document order and
// assigns unique anchors the way the site generator does.
func collectHeadings(doc ast.Node, source []byte) []heading {
	var out []heading
	seen := make(map[string]int)
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		h, ok := node.(*ast.Heading)
		if !ok {
			continue
		}

		var b strings.Builder
		writeInline(&b, h, source)
		label := strings.TrimSpace(html.UnescapeString(b.String()))

		anchor := ""
		if id, ok := h.AttributeString("id"); ok {
			if v, ok := id.([]byte); ok {
				anchor = string(v)
			}
		}
		if anchor == "" {
			anchor = Slugify(label)
		}
		if n := seen[anchor]; n > 0 {
			seen[anchor] = n + 1
			anchor = anchor + "-" + strconv.Itoa(n)
		} else {
			seen[anchor] = 1
		}

		out = append(out, heading{level: h.Level, text: label, anchor: anchor})
	}
	return out
}

// writeBlock appends the plain text of a block node. Code, HTML blocks and
// thematic breaks leave an empty line so the text around them stays apart.
func writeBlock(b *strings.Builder, node ast.Node, source []byte) {
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || n.Type() != ast.TypeBlock {
			return ast.WalkContinue, nil
		}
		if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
			b.WriteByte('\n')
		}
		switch n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock, *ast.ThematicBreak:
			b.WriteByte('\n')
			return ast.WalkSkipChildren, nil
		}
		if first := n.FirstChild(); first != nil && first.Type() == ast.TypeInline {
			writeInline(b, n, source)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
}

// writeInline appends the text of the inline children of node.
// Images and raw HTML are dropped; link and emphasis text is kept.
func writeInline(b *strings.Builder, node ast.Node, source []byte) {
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || n == node {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Text:
			b.Write(n.Segment.Value(source))
			if n.SoftLineBreak() || n.HardLineBreak() {
				b.WriteByte('\n')
			}
		case *ast.String:
			b.Write(n.Value)
		case *ast.AutoLink:
			b.Write(n.Label(source))
		case *ast.Image, *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
}

// cleanText drops container fences, resolves entities and collapses
// whitespace.
func cleanText(s string) string {
	s = containers.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	s = multiSpaces.ReplaceAllString(s, " ")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	s = multiNewlines.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(s)
}

// plainText renders a whole Markdown document as plain text.
func (n *Normaliser) plainText(src string) string {
	source := []byte(src)
	doc := n.md.Parser().Parse(text.NewReader(source))
	var b strings.Builder
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		writeBlock(&b, node, source)
	}
	return cleanText(b.String())
}

// pageTitle returns the first H1, falling back to the file name.
func pageTitle(headings []heading, file string) string {
	for _, h := range headings {
		if h.level == 1 {
			return h.text
		}
	}

	name := strings.TrimSuffix(path.Base(strings.ReplaceAll(file, "\\", "/")), ".md")
	if name == "index" {
		if dir := path.Base(path.Dir(strings.ReplaceAll(file, "\\", "/"))); dir != "." && dir != "/" {
			name = dir
		}
	}
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	return name
}

// Slugify turns heading text into an anchor: lower case, punctuation
// removed, runs of spaces and dashes collapsed to one dash. Letters of
// every script are kept.
func Slugify(text string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(text)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			b.WriteRune(r)
			dash = false
		case unicode.IsSpace(r) || r == '-':
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
