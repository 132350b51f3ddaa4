// Package results normalizes test runner output into a single suite/case model.
package results

import "github.com/hashicorp/go-version"

// Status ...
type Status string

// Test case statuses ...
const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
	StatusError   Status = "error"
)

// Format names the parse path that produced a ParsedResults.
type Format string

// Formats ...
const (
	FormatJUnitXML    Format = "junit-xml"
	FormatMochaJSON   Format = "mocha-json"
	FormatPlaywright  Format = "playwright-json"
	FormatGenericJSON Format = "generic-json"
	FormatJestOutput  Format = "jest-output"
	FormatMochaOutput Format = "mocha-output"
	FormatCypress     Format = "cypress-output"
	FormatGeneric     Format = "generic-output"
	FormatUnknown     Format = "unknown"
)

// Detail describes why a test case failed or errored.
type Detail struct {
	Message    string
	Type       string
	StackTrace string
}

// TestCase is the outcome of a single test.
type TestCase struct {
	Name      string
	Classname string
	Time      float64
	Status    Status
	Failure   *Detail
	Error     *Detail
	SystemOut string
	SystemErr string
}

// CaseOption sets an optional TestCase field at construction time.
type CaseOption func(*TestCase)

// WithClassname ...
func WithClassname(classname string) CaseOption {
	return func(c *TestCase) { c.Classname = classname }
}

// WithTime ...
func WithTime(seconds float64) CaseOption {
	return func(c *TestCase) { c.Time = seconds }
}

// WithStatus ...
func WithStatus(status Status) CaseOption {
	return func(c *TestCase) { c.Status = status }
}

// WithFailure ...
func WithFailure(detail Detail) CaseOption {
	return func(c *TestCase) { c.Failure = &detail }
}

// WithError ...
func WithError(detail Detail) CaseOption {
	return func(c *TestCase) { c.Error = &detail }
}

// WithSystemOut ...
func WithSystemOut(out string) CaseOption {
	return func(c *TestCase) { c.SystemOut = out }
}

// WithSystemErr ...
func WithSystemErr(out string) CaseOption {
	return func(c *TestCase) { c.SystemErr = out }
}

// NewTestCase builds a passed test case and applies the given options.
func NewTestCase(name string, opts ...CaseOption) TestCase {
	c := TestCase{
		Name:   name,
		Status: StatusPassed,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// IsFailing reports whether the case counts towards the failed tests section of a report.
func (c TestCase) IsFailing() bool {
	return c.Status == StatusFailed || c.Status == StatusError
}

// FailureDetail returns the failure detail, or the error detail if there is no failure.
func (c TestCase) FailureDetail() *Detail {
	if c.Failure != nil {
		return c.Failure
	}
	return c.Error
}

// Counts are the aggregate counters of a suite.
type Counts struct {
	Tests    int
	Failures int
	Errors   int
	Skipped  int
	Time     float64
}

// TestSuite is a named group of test cases.
//
// The aggregate counters are kept as the source format reported them,
// they are not guaranteed to match the owned TestCases.
type TestSuite struct {
	Name      string
	Tests     int
	Failures  int
	Errors    int
	Skipped   int
	Time      float64
	TestCases []TestCase
}

// NewSuite builds a suite that trusts the given counters.
func NewSuite(name string, counts Counts, cases []TestCase) TestSuite {
	return TestSuite{
		Name:      name,
		Tests:     counts.Tests,
		Failures:  counts.Failures,
		Errors:    counts.Errors,
		Skipped:   counts.Skipped,
		Time:      counts.Time,
		TestCases: cases,
	}
}

// NewDerivedSuite builds a suite whose counters are computed from its cases.
func NewDerivedSuite(name string, cases []TestCase) TestSuite {
	return NewSuite(name, CountCases(cases), cases)
}

// CountCases derives suite counters from a list of cases.
func CountCases(cases []TestCase) Counts {
	counts := Counts{Tests: len(cases)}
	for _, c := range cases {
		switch c.Status {
		case StatusFailed:
			counts.Failures++
		case StatusError:
			counts.Errors++
		case StatusSkipped:
			counts.Skipped++
		}
		counts.Time += c.Time
	}
	return counts
}

// Passed returns the number of passed tests derived from the suite counters.
func (s TestSuite) Passed() int {
	return s.Tests - s.Failures - s.Errors - s.Skipped
}

// IsPassing ...
func (s TestSuite) IsPassing() bool {
	return s.Failures == 0 && s.Errors == 0
}

// Summary aggregates every suite of a run.
type Summary struct {
	Total    int
	Passed   int
	Failed   int
	Skipped  int
	Errors   int
	Duration float64
	Status   Status
}

// Summarize sums the suite counters and derives the passed count and overall status.
//
// Passed may become negative when the source counters are inconsistent.
func Summarize(suites []TestSuite) Summary {
	var summary Summary
	for _, suite := range suites {
		summary.Total += suite.Tests
		summary.Failed += suite.Failures
		summary.Errors += suite.Errors
		summary.Skipped += suite.Skipped
		summary.Duration += suite.Time
	}

	summary.Passed = summary.Total - summary.Failed - summary.Errors - summary.Skipped
	summary.Status = StatusPassed
	if summary.Failed > 0 || summary.Errors > 0 {
		summary.Status = StatusFailed
	}

	return summary
}

// Reporter identifies the tool that produced a results file.
type Reporter struct {
	Name    string
	Version *version.Version
}

// String ...
func (r Reporter) String() string {
	if r.Version == nil {
		return r.Name
	}
	return r.Name + " " + r.Version.String()
}

// ParsedResults is the normalized outcome of a test run.
type ParsedResults struct {
	Summary   Summary
	Suites    []TestSuite
	RawOutput string
	RawError  string
	Format    Format
	Reporter  *Reporter
}

func newParsedResults(format Format, suites ...TestSuite) ParsedResults {
	return ParsedResults{
		Summary: Summarize(suites),
		Suites:  suites,
		Format:  format,
	}
}
