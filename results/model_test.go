package results

import (
	"testing"

	"github.com/hashicorp/go-version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		suites []TestSuite
		want   Summary
	}{
		{
			name: "no suites",
			want: Summary{Status: StatusPassed},
		},
		{
			name: "sums every suite",
			suites: []TestSuite{
				NewSuite("a", Counts{Tests: 4, Failures: 1, Skipped: 1, Time: 1.5}, nil),
				NewSuite("b", Counts{Tests: 6, Errors: 2, Time: 2}, nil),
			},
			want: Summary{Total: 10, Passed: 5, Failed: 1, Errors: 2, Skipped: 1, Duration: 3.5, Status: StatusFailed},
		},
		{
			name:   "errors alone fail the run",
			suites: []TestSuite{NewSuite("a", Counts{Tests: 1, Errors: 1}, nil)},
			want:   Summary{Total: 1, Errors: 1, Status: StatusFailed},
		},
		{
			name:   "skipped tests do not fail the run",
			suites: []TestSuite{NewSuite("a", Counts{Tests: 2, Skipped: 2}, nil)},
			want:   Summary{Total: 2, Skipped: 2, Status: StatusPassed},
		},
		{
			name:   "inconsistent counters give a negative passed count",
			suites: []TestSuite{NewSuite("a", Counts{Tests: 1, Failures: 3}, nil)},
			want:   Summary{Total: 1, Passed: -2, Failed: 3, Status: StatusFailed},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Summarize(tt.suites)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, got.Total, got.Passed+got.Failed+got.Errors+got.Skipped)
		})
	}
}

func TestCountCases(t *testing.T) {
	t.Parallel()

	cases := []TestCase{
		NewTestCase("a", WithTime(0.5)),
		NewTestCase("b", WithStatus(StatusFailed), WithTime(0.25)),
		NewTestCase("c", WithStatus(StatusError)),
		NewTestCase("d", WithStatus(StatusSkipped)),
		NewTestCase("e", WithStatus("flaky")),
	}

	assert.Equal(t, Counts{Tests: 5, Failures: 1, Errors: 1, Skipped: 1, Time: 0.75}, CountCases(cases))

	suite := NewDerivedSuite("derived", cases)
	assert.Equal(t, 2, suite.Passed())
	assert.False(t, suite.IsPassing())
}

func TestTestCase_FailureDetail(t *testing.T) {
	t.Parallel()

	failure := Detail{Message: "failure"}
	errDetail := Detail{Message: "error"}

	assert.Nil(t, NewTestCase("passed").FailureDetail())
	assert.Equal(t, &errDetail, NewTestCase("errored", WithError(errDetail)).FailureDetail())
	assert.Equal(t, &failure, NewTestCase("both", WithFailure(failure), WithError(errDetail)).FailureDetail())

	assert.True(t, NewTestCase("f", WithStatus(StatusFailed)).IsFailing())
	assert.True(t, NewTestCase("e", WithStatus(StatusError)).IsFailing())
	assert.False(t, NewTestCase("s", WithStatus(StatusSkipped)).IsFailing())
}

func TestReporter_String(t *testing.T) {
	t.Parallel()

	v, err := version.NewVersion("1.40.0")
	require.NoError(t, err)

	assert.Equal(t, "playwright 1.40.0", Reporter{Name: "playwright", Version: v}.String())
	assert.Equal(t, "mochawesome", Reporter{Name: "mochawesome"}.String())
}
