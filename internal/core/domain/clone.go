package domain

// Clone returns a deep copy of the configuration.
// No slice, map or pointer of the copy is shared with the receiver.
func (c *SiteConfig) Clone() *SiteConfig {
	if c == nil {
		return nil
	}
	out := *c
	if c.Head != nil {
		out.Head = append([]HeadIcon(nil), c.Head...)
	}
	if c.Locales != nil {
		out.Locales = make(map[string]LocaleConfig, len(c.Locales))
		for code, loc := range c.Locales {
			loc.ThemeConfig = loc.ThemeConfig.Clone()
			out.Locales[code] = loc
		}
	}
	out.ThemeConfig = c.ThemeConfig.Clone()
	out.Search = c.Search.Clone()
	return &out
}

// Clone returns a deep copy of the theme configuration.
func (t ThemeConfig) Clone() ThemeConfig {
	out := t
	if t.Nav != nil {
		out.Nav = append([]NavItem(nil), t.Nav...)
	}
	if t.Sidebar != nil {
		out.Sidebar = make(map[string][]SidebarGroup, len(t.Sidebar))
		for prefix, groups := range t.Sidebar {
			cp := make([]SidebarGroup, len(groups))
			for i, g := range groups {
				cp[i] = g
				if g.Items != nil {
					cp[i].Items = append([]SidebarItem(nil), g.Items...)
				}
			}
			out.Sidebar[prefix] = cp
		}
	}
	if t.SocialLinks != nil {
		out.SocialLinks = append([]SocialLink(nil), t.SocialLinks...)
	}
	if t.Footer != nil {
		f := *t.Footer
		out.Footer = &f
	}
	if t.EditLink != nil {
		e := *t.EditLink
		out.EditLink = &e
	}
	if t.Outline != nil {
		o := *t.Outline
		if t.Outline.Level != nil {
			o.Level = append([]int(nil), t.Outline.Level...)
		}
		out.Outline = &o
	}
	if t.DocFooter != nil {
		d := *t.DocFooter
		out.DocFooter = &d
	}
	return out
}

// Clone returns a deep copy of the search configuration.
func (s SearchConfig) Clone() SearchConfig {
	out := s
	if s.Algolia != nil {
		a := *s.Algolia
		out.Algolia = &a
	}
	if s.Locales != nil {
		out.Locales = make(map[string]SearchStrings, len(s.Locales))
		for k, v := range s.Locales {
			out.Locales[k] = v
		}
	}
	return out
}
