// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - SiteSource: Loads the site configuration (built-in literal or file)
//   - ConfigStore: Tool preferences
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ContentStore: Markdown content tree. Without it, link targets are not checked against files
//     and the local search index cannot be built.
//   - SectionIndex: Local search index (SQLite or memory). Without it, search is unavailable.
//   - Normaliser: Splits a page into searchable sections.
//   - RepoVerifier: Remote edit link verification (GitHub).
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
