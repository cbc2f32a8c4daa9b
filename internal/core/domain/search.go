package domain

// SearchProvider identifies the search implementation the site uses.
type SearchProvider string

// Available search providers.
const (
	// SearchProviderLocal is the built-in full-text index over the site content.
	SearchProviderLocal SearchProvider = "local"

	// SearchProviderAlgolia is Algolia DocSearch.
	SearchProviderAlgolia SearchProvider = "algolia"
)

// AllSearchProviders returns every supported provider.
func AllSearchProviders() []SearchProvider {
	return []SearchProvider{SearchProviderLocal, SearchProviderAlgolia}
}

// IsValid returns true if the provider is recognised.
func (p SearchProvider) IsValid() bool {
	switch p {
	case SearchProviderLocal, SearchProviderAlgolia:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p SearchProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p SearchProvider) Description() string {
	switch p {
	case SearchProviderLocal:
		return "Local (built-in full-text index)"
	case SearchProviderAlgolia:
		return "Algolia DocSearch (hosted)"
	default:
		return "Unknown"
	}
}

// SearchConfig selects the search provider.
type SearchConfig struct {
	Provider SearchProvider `json:"provider" toml:"provider" yaml:"provider"`

	// Algolia is required when Provider is algolia.
	Algolia *AlgoliaOptions `json:"algolia,omitempty" toml:"algolia,omitempty" yaml:"algolia,omitempty"`

	// Locales holds the translated search box strings keyed by locale code.
	Locales map[string]SearchStrings `json:"locales,omitempty" toml:"locales,omitempty" yaml:"locales,omitempty"`
}

// AlgoliaOptions are the DocSearch credentials.
type AlgoliaOptions struct {
	AppID     string `json:"appId" toml:"appId" yaml:"appId"`
	APIKey    string `json:"apiKey" toml:"apiKey" yaml:"apiKey"`
	IndexName string `json:"indexName" toml:"indexName" yaml:"indexName"`
}

// SearchStrings are the labels of the search box.
type SearchStrings struct {
	ButtonText    string `json:"buttonText" toml:"buttonText" yaml:"buttonText"`
	Placeholder   string `json:"placeholder" toml:"placeholder" yaml:"placeholder"`
	NoResultsText string `json:"noResultsText" toml:"noResultsText" yaml:"noResultsText"`
}

// Section is the unit of the local search index: the text between two
// outline headings of a page.
type Section struct {
	// ID is derived from Route and Anchor, so re-indexing is stable.
	ID string `json:"id"`

	// Locale is the locale code of the page.
	Locale string `json:"locale"`

	// Route is the page route, e.g. "/en/games/tag".
	Route string `json:"route"`

	// Anchor is the heading slug, empty for the text before the first heading.
	Anchor string `json:"anchor,omitempty"`

	// PageTitle is the page's first-level heading.
	PageTitle string `json:"page_title"`

	// Heading is the section heading text.
	Heading string `json:"heading,omitempty"`

	// Content is the plain text of the section.
	Content string `json:"content"`
}

// URL returns the route with the section anchor.
func (s Section) URL() string {
	if s.Anchor == "" {
		return s.Route
	}
	return s.Route + "#" + s.Anchor
}

// SearchOptions configures a search query.
type SearchOptions struct {
	// Locale restricts results to one locale. Empty searches all locales.
	Locale string

	// Limit is the maximum number of results.
	Limit int
}

// SearchResult represents a single search hit.
type SearchResult struct {
	Section Section `json:"section"`
	Score   float64 `json:"score"`
	Snippet string  `json:"snippet,omitempty"`
}
