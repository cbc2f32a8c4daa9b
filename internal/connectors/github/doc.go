// Package github verifies that the repository named by an edit link exists.
//
// # Architecture
//
// The package implements [driven.RepoVerifier]. It comprises:
//
//   - Client: wraps go-github with rate limiting and error mapping
//   - RateLimiter: proactive token bucket plus the API's own quota headers
//
// # Authentication
//
// A personal access token is optional. With a token the client gets 5,000
// API requests per hour and can see private repositories. Without one it
// makes unauthenticated requests, limited to 60 per hour, and private
// repositories are reported as not found.
package github
