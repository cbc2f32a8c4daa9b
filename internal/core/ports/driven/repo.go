package driven

import "context"

// RepoVerifier checks that a source repository exists.
type RepoVerifier interface {
	// VerifyRepo returns domain.ErrRepoNotFound if owner/repo does not exist
	// or is not visible with the configured credentials.
	VerifyRepo(ctx context.Context, owner, repo string) error
}
