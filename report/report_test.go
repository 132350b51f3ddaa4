package report

import (
	"errors"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-qa-ci-reporter/results"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testMetadata = Metadata{
	Repository:   "acme/shop",
	Branch:       "main",
	CommitSha:    "0123456",
	CommitAuthor: "octocat",
	ActionURL:    "https://github.com/acme/shop/actions/runs/42",
	Timestamp:    "2026-01-02T03:04:05Z",
}

type staticMetadataProvider Metadata

func (p staticMetadataProvider) Metadata() Metadata {
	return Metadata(p)
}

func failingResults() results.ParsedResults {
	cases := []results.TestCase{
		results.NewTestCase("creates an order", results.WithTime(1)),
		results.NewTestCase("charges the card",
			results.WithStatus(results.StatusFailed),
			results.WithFailure(results.Detail{Message: "expected 200, got 402", Type: "AssertionError", StackTrace: "at pay.test.js:7"}),
		),
		results.NewTestCase("refunds", results.WithStatus(results.StatusError), results.WithError(results.Detail{Message: "timeout"})),
		results.NewTestCase("ships", results.WithStatus(results.StatusSkipped)),
	}
	suites := []results.TestSuite{
		results.NewSuite("Checkout", results.Counts{Tests: 10, Failures: 1, Errors: 1, Skipped: 1, Time: 75.4}, cases),
	}
	return results.ParsedResults{
		Summary: results.Summarize(suites),
		Suites:  suites,
		Format:  results.FormatJUnitXML,
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{seconds: 0, want: "0s"},
		{seconds: 12.5, want: "12.5s"},
		{seconds: 45, want: "45s"},
		{seconds: 61, want: "1m 1s"},
		{seconds: 90.25, want: "1m 30.25s"},
		{seconds: 3600, want: "1h 0m 0s"},
		{seconds: 3725, want: "1h 2m 5s"},
		{seconds: 59.994, want: "59.99s"},
		{seconds: 59.996, want: "1m 0s"},
		{seconds: 119.996, want: "2m 0s"},
		{seconds: 3599.999, want: "1h 0m 0s"},
		{seconds: 3661.5, want: "1h 1m 1.5s"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.seconds), tt.seconds)
	}
}

var summaryRowPattern = regexp.MustCompile(`(?m)^\| (Total Tests|✅ Passed|❌ Failed|💥 Errors|⚠️ Skipped) \| (-?\d+) \| (\d+)% \|$`)

func TestRenderMarkdown_SummaryTableCanBeReadBack(t *testing.T) {
	parsed := failingResults()

	markdown := RenderMarkdown("Nightly", parsed, testMetadata)

	counts := map[string]int{}
	for _, match := range summaryRowPattern.FindAllStringSubmatch(markdown, -1) {
		n, err := strconv.Atoi(match[2])
		require.NoError(t, err)
		counts[match[1]] = n
	}

	summary := parsed.Summary
	assert.Equal(t, map[string]int{
		"Total Tests": summary.Total,
		"✅ Passed":    summary.Passed,
		"❌ Failed":    summary.Failed,
		"💥 Errors":    summary.Errors,
		"⚠️ Skipped":  summary.Skipped,
	}, counts)
	assert.Contains(t, markdown, "| ✅ Passed | 7 | 70% |")
}

func TestRenderMarkdown_Failing(t *testing.T) {
	markdown := RenderMarkdown("Nightly", failingResults(), testMetadata)

	assert.Contains(t, markdown, "# ❌ Nightly\n")
	assert.Contains(t, markdown, "**Commit:** 0123456 (octocat)")
	assert.Contains(t, markdown, "**Status:** FAILED")
	assert.Contains(t, markdown, "**Duration:** 1m 15.4s")
	assert.Contains(t, markdown, "### ❌ Checkout\n")
	assert.Contains(t, markdown, "- **Passed:** 7\n")
	assert.Contains(t, markdown, "- **Duration:** 75s\n")
	assert.Contains(t, markdown, "## ❌ Failed Tests")
	assert.Contains(t, markdown, "### charges the card\n\n**Error:** expected 200, got 402\n\n**Stack Trace:**\n```\nat pay.test.js:7\n```")
	assert.Contains(t, markdown, "### refunds\n\n**Error:** timeout\n\n")
	assert.NotContains(t, markdown, "### ships")
	assert.Contains(t, markdown, "[CI Run](https://github.com/acme/shop/actions/runs/42)")
}

func TestRenderMarkdown_Passing(t *testing.T) {
	suites := []results.TestSuite{results.NewSuite("Unit", results.Counts{Tests: 3, Time: 2}, nil)}
	parsed := results.ParsedResults{Summary: results.Summarize(suites), Suites: suites}

	markdown := RenderMarkdown("Unit tests", parsed, testMetadata)

	assert.Contains(t, markdown, "# ✅ Unit tests\n")
	assert.Contains(t, markdown, "**Status:** PASSED")
	assert.Contains(t, markdown, "| Total Tests | 3 | 100% |")
	assert.NotContains(t, markdown, "Failed Tests")
	assert.NotContains(t, markdown, "- **Failed:**")
}

func TestRenderMarkdown_NoTests(t *testing.T) {
	markdown := RenderMarkdown("Empty", results.ParsedResults{Summary: results.Summarize(nil)}, testMetadata)

	assert.Contains(t, markdown, "| ✅ Passed | 0 | 0% |")
	assert.NotContains(t, markdown, "Test Suites")
}

func TestRender_UsesTemplate(t *testing.T) {
	// Given
	g := NewGenerator(log.NewLogger(), staticMetadataProvider(testMetadata), "report.html", func(name string) ([]byte, error) {
		assert.Equal(t, "report.html", name)
		return []byte("<h1>{{title}}</h1><p>{{status}} {{passed}}/{{total}} on {{branch}}</p>{{content}}"), nil
	})

	// When
	rep := g.Render(failingResults(), "Nightly")

	// Then
	assert.Equal(t, "Nightly", rep.Title)
	assert.False(t, rep.IsPassed())
	assert.Equal(t, testMetadata, rep.Metadata)
	assert.Contains(t, rep.HTML, "<h1>Nightly</h1><p>FAILED 7/10 on main</p>")
	assert.Contains(t, rep.HTML, "<table>")
	assert.NotContains(t, rep.HTML, "{{content}}")
}

func TestRender_FallsBackToBuiltInPage(t *testing.T) {
	// Given
	g := NewGenerator(log.NewLogger(), staticMetadataProvider(testMetadata), "missing.html", func(string) ([]byte, error) {
		return nil, errors.New("no such file")
	})

	// When
	rep := g.Render(failingResults(), "A & B")

	// Then
	assert.Contains(t, rep.HTML, "<!DOCTYPE html>")
	assert.Contains(t, rep.HTML, "<title>A &amp; B</title>")
	assert.Contains(t, rep.HTML, "❌ Tests Failed")
	assert.Contains(t, rep.HTML, "<table>")
	assert.Contains(t, rep.Markdown, "# ❌ A & B")
}

func TestRender_DefaultTitle(t *testing.T) {
	g := NewGenerator(log.NewLogger(), staticMetadataProvider(testMetadata), "", nil)

	rep := g.Render(results.ParsedResults{Summary: results.Summarize(nil)}, "")

	assert.Equal(t, DefaultTitle, rep.Title)
	assert.True(t, rep.IsPassed())
	assert.Contains(t, rep.HTML, "✅ All Tests Passed")
}

type mapRepository map[string]string

func (r mapRepository) List() []string { return nil }
func (r mapRepository) Unset(key string) error { delete(r, key); return nil }
func (r mapRepository) Get(key string) string { return r[key] }
func (r mapRepository) Set(key, value string) error { r[key] = value; return nil }

func TestMetadata(t *testing.T) {
	now := func() time.Time { return time.Date(2026, 1, 2, 4, 4, 5, 0, time.FixedZone("CET", 3600)) }

	tests := []struct {
		name string
		envs mapRepository
		want Metadata
	}{
		{
			name: "github actions push",
			envs: mapRepository{
				"GITHUB_ACTIONS":    "true",
				"GITHUB_REPOSITORY": "acme/shop",
				"GITHUB_REF":        "refs/heads/main",
				"GITHUB_SHA":        "0123456789abcdef",
				"GITHUB_ACTOR":      "octocat",
				"GITHUB_RUN_ID":     "42",
			},
			want: testMetadata,
		},
		{
			name: "github actions pull request on enterprise server",
			envs: mapRepository{
				"GITHUB_ACTIONS":    "true",
				"GITHUB_REPOSITORY": "acme/shop",
				"GITHUB_HEAD_REF":   "feature/login",
				"GITHUB_REF":        "refs/pull/7/merge",
				"GITHUB_SERVER_URL": "https://git.acme.dev",
				"GITHUB_RUN_ID":     "9",
			},
			want: Metadata{
				Repository:   "acme/shop",
				Branch:       "feature/login",
				CommitSha:    "unknown",
				CommitAuthor: "unknown",
				ActionURL:    "https://git.acme.dev/acme/shop/actions/runs/9",
				Timestamp:    "2026-01-02T03:04:05Z",
			},
		},
		{
			name: "bitrise",
			envs: mapRepository{
				"BITRISEIO_GIT_REPOSITORY_SLUG": "shop",
				"BITRISE_GIT_BRANCH":            "develop",
				"GIT_CLONE_COMMIT_HASH":         "abcdef1234",
				"GIT_CLONE_COMMIT_AUTHOR_NAME":  "Jane",
				"BITRISE_BUILD_URL":             "https://app.bitrise.io/build/1",
			},
			want: Metadata{
				Repository:   "shop",
				Branch:       "develop",
				CommitSha:    "abcdef1",
				CommitAuthor: "Jane",
				ActionURL:    "https://app.bitrise.io/build/1",
				Timestamp:    "2026-01-02T03:04:05Z",
			},
		},
		{
			name: "no ci environment",
			envs: mapRepository{},
			want: Metadata{
				Repository:   "unknown/repository",
				Branch:       "unknown",
				CommitSha:    "unknown",
				CommitAuthor: "unknown",
				ActionURL:    "unknown",
				Timestamp:    "2026-01-02T03:04:05Z",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewMetadataProvider(tt.envs, now).Metadata()

			assert.Equal(t, tt.want, got)
		})
	}
}
