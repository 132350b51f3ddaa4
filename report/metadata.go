package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/bitrise-io/go-utils/v2/env"
)

const unknown = "unknown"

// Metadata describes the CI build a report belongs to.
type Metadata struct {
	Repository   string
	Branch       string
	CommitSha    string
	CommitAuthor string
	ActionURL    string
	Timestamp    string
}

// MetadataProvider ...
type MetadataProvider interface {
	Metadata() Metadata
}

type envMetadataProvider struct {
	envRepository env.Repository
	now           func() time.Time
}

// NewMetadataProvider reads build metadata from GitHub Actions or Bitrise environment variables.
func NewMetadataProvider(envRepository env.Repository, now func() time.Time) MetadataProvider {
	return envMetadataProvider{
		envRepository: envRepository,
		now:           now,
	}
}

func (p envMetadataProvider) Metadata() Metadata {
	get := p.envRepository.Get

	metadata := Metadata{Timestamp: p.now().UTC().Format(time.RFC3339)}

	if get("GITHUB_ACTIONS") == "true" {
		repository := get("GITHUB_REPOSITORY")
		serverURL := firstNonEmpty(get("GITHUB_SERVER_URL"), "https://github.com")

		metadata.Repository = firstNonEmpty(repository, "unknown/repository")
		metadata.Branch = firstNonEmpty(get("GITHUB_HEAD_REF"), strings.TrimPrefix(get("GITHUB_REF"), "refs/heads/"), unknown)
		metadata.CommitSha = firstNonEmpty(shortSha(get("GITHUB_SHA")), unknown)
		metadata.CommitAuthor = firstNonEmpty(get("GITHUB_ACTOR"), unknown)
		metadata.ActionURL = fmt.Sprintf("%s/%s/actions/runs/%s", serverURL, repository, get("GITHUB_RUN_ID"))
		return metadata
	}

	metadata.Repository = firstNonEmpty(get("BITRISEIO_GIT_REPOSITORY_SLUG"), get("GIT_REPOSITORY_URL"), "unknown/repository")
	metadata.Branch = firstNonEmpty(get("BITRISE_GIT_BRANCH"), unknown)
	metadata.CommitSha = firstNonEmpty(shortSha(firstNonEmpty(get("BITRISE_GIT_COMMIT"), get("GIT_CLONE_COMMIT_HASH"))), unknown)
	metadata.CommitAuthor = firstNonEmpty(get("GIT_CLONE_COMMIT_AUTHOR_NAME"), unknown)
	metadata.ActionURL = firstNonEmpty(get("BITRISE_BUILD_URL"), unknown)

	return metadata
}

func shortSha(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
