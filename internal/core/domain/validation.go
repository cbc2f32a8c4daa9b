package domain

import (
	"fmt"
	"sort"
)

// Severity grades a validation finding.
type Severity string

// Severities.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Rule names a consistency check of the site configuration.
type Rule string

// Validation rules.
const (
	RuleLocaleRootUnique     Rule = "locale-root-unique"
	RuleLocaleRootFormat     Rule = "locale-root-format"
	RuleTargetUnderRoot      Rule = "target-under-root"
	RuleSidebarNavConsistent Rule = "sidebar-nav-consistent"
	RuleSidebarParity        Rule = "sidebar-parity"
	RuleSidebarItemParity    Rule = "sidebar-item-parity"
	RuleSearchProvider       Rule = "search-provider"
	RuleOutlineLevel         Rule = "outline-level"
	RuleEditLinkPattern      Rule = "edit-link-pattern"
	RuleTargetExists         Rule = "target-exists"
	RuleEditLinkRemote       Rule = "edit-link-remote"
)

// Violation is one finding of the validator.
type Violation struct {
	Rule     Rule     `json:"rule"`
	Severity Severity `json:"severity"`
	Locale   string   `json:"locale,omitempty"`
	Path     string   `json:"path,omitempty"`
	Message  string   `json:"message"`
}

func (v Violation) String() string {
	where := v.Locale
	if v.Path != "" {
		if where != "" {
			where += " "
		}
		where += v.Path
	}
	if where == "" {
		return fmt.Sprintf("%s [%s] %s", v.Severity, v.Rule, v.Message)
	}
	return fmt.Sprintf("%s [%s] %s: %s", v.Severity, v.Rule, where, v.Message)
}

// Report collects the violations of one validation run.
type Report struct {
	Violations []Violation `json:"violations"`
}

// Add records a violation.
func (r *Report) Add(v Violation) {
	r.Violations = append(r.Violations, v)
}

// Errorf records an error-severity violation.
func (r *Report) Errorf(rule Rule, locale, path, format string, args ...any) {
	r.Add(Violation{Rule: rule, Severity: SeverityError, Locale: locale, Path: path, Message: fmt.Sprintf(format, args...)})
}

// Warnf records a warning-severity violation.
func (r *Report) Warnf(rule Rule, locale, path, format string, args ...any) {
	r.Add(Violation{Rule: rule, Severity: SeverityWarning, Locale: locale, Path: path, Message: fmt.Sprintf(format, args...)})
}

// Errors returns the error-severity violations.
func (r *Report) Errors() []Violation {
	return r.filter(SeverityError)
}

// Warnings returns the warning-severity violations.
func (r *Report) Warnings() []Violation {
	return r.filter(SeverityWarning)
}

// OK returns true when the report has no errors.
func (r *Report) OK() bool {
	return len(r.Errors()) == 0
}

// Has returns true when at least one violation of rule was recorded.
func (r *Report) Has(rule Rule) bool {
	for _, v := range r.Violations {
		if v.Rule == rule {
			return true
		}
	}
	return false
}

// Sort orders violations by severity, rule, locale and path.
func (r *Report) Sort() {
	sort.SliceStable(r.Violations, func(i, j int) bool {
		a, b := r.Violations[i], r.Violations[j]
		if a.Severity != b.Severity {
			return a.Severity == SeverityError
		}
		if a.Rule != b.Rule {
			return a.Rule < b.Rule
		}
		if a.Locale != b.Locale {
			return a.Locale < b.Locale
		}
		return a.Path < b.Path
	})
}

func (r *Report) filter(s Severity) []Violation {
	var out []Violation
	for _, v := range r.Violations {
		if v.Severity == s {
			out = append(out, v)
		}
	}
	return out
}
