package domain

// PageLink is a labelled link to another page.
type PageLink struct {
	// Label is the doc footer label ("Previous page").
	Label string `json:"label"`

	// Text is the sidebar text of the target page.
	Text string `json:"text"`

	// Link is the target route.
	Link string `json:"link"`
}

// Pager holds the previous and next pages of a page in sidebar order.
// Either side is nil at the ends of the sidebar.
type Pager struct {
	Prev *PageLink `json:"prev,omitempty"`
	Next *PageLink `json:"next,omitempty"`
}

// Resolution is everything the theme needs to render the chrome of a page.
type Resolution struct {
	Path          string         `json:"path"`
	Locale        string         `json:"locale"`
	Lang          string         `json:"lang"`
	Nav           []NavItem      `json:"nav"`
	SidebarPrefix string         `json:"sidebar_prefix,omitempty"`
	Sidebar       []SidebarGroup `json:"sidebar,omitempty"`
	Pager         Pager          `json:"pager"`
	EditURL       string         `json:"edit_url,omitempty"`
	EditText      string         `json:"edit_text,omitempty"`
}

// ValidateOptions selects the optional validation rules.
type ValidateOptions struct {
	// CheckContent verifies that every link target resolves to a content file.
	CheckContent bool

	// CheckRemote verifies the edit link repository on GitHub.
	CheckRemote bool
}
