package framework

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
)

func withoutColor(t *testing.T) {
	saved := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = saved })
}

func TestPrintResults(t *testing.T) {
	withoutColor(t)

	logout := TestResult{
		TestID:      TestID{Path: []string{"Blog app", "When logged in", "the user can logout"}},
		FailedPhase: "log in",
		Errors: []error{&RequestError{
			Method: "POST",
			URL:    "http://localhost:3001/api/users",
			Status: 400,
			Body:   "username must be unique",
		}},
	}
	wrongCredentials := TestResult{
		TestID: TestID{Path: []string{"Blog app", "Login", "fails with wrong credentials"}},
		Errors: []error{&AssertionError{
			Expectation: `to contain text "Wrong username or password"`,
			Target:      ".error",
			Err:         errors.New("not found"),
		}},
	}
	results := Results{
		Tests: []TestResult{
			{TestID: TestID{Path: []string{"Blog app", "Login form is shown"}}},
			logout,
			wrongCredentials,
			{TestID: TestID{Path: []string{"Blog app", "Reset"}}, Skipped: true},
		},
		Failures: []TestResult{logout, wrongCredentials},
	}

	var buf bytes.Buffer
	PrintResults(&buf, results)

	g := goldie.New(t)
	g.Assert(t, "results_summary", buf.Bytes())
}

func TestPrintResultsWhenAllPassed(t *testing.T) {
	withoutColor(t)

	var buf bytes.Buffer
	PrintResults(&buf, Results{Tests: []TestResult{{TestID: TestID{Path: []string{"a"}}}}})
	assert.Equal(t, "Scenarios: 1 passed, 0 failed, 0 skipped\n", buf.String())
}

func TestConsoleTestLoggerDumpsDebugOutputOnFailure(t *testing.T) {
	withoutColor(t)

	var buf bytes.Buffer
	logger := ConsoleTestLogger{Out: &buf, DebugOutputOnFailure: true}
	id := TestID{Path: []string{"Blog app", "Login"}}
	output := CapturedOutput{{Time: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), Message: "filling username"}}

	logger.TestStarted(id)
	logger.TestError(id, &TimeoutError{Action: "wait", Target: "text=a b"})
	logger.TestFinished(id, true, output)

	assert.Equal(t, "[Blog app/Login]\n"+
		"  (timeout)\n"+
		"  timed out in wait of text=a b\n"+
		"  FAILED: Blog app/Login\n"+
		"    DEBUG [2024-01-02 03:04:05.000] filling username\n",
		buf.String())
}

func TestConsoleTestLoggerOmitsDebugOutputOnSuccess(t *testing.T) {
	withoutColor(t)

	var buf bytes.Buffer
	logger := ConsoleTestLogger{Out: &buf, DebugOutputOnFailure: true}
	logger.TestFinished(TestID{Path: []string{"a"}}, false, CapturedOutput{{Message: "x"}})
	logger.TestSkipped(TestID{Path: []string{"b"}}, "")
	assert.Equal(t, "  SKIPPED: b\n", buf.String())
}
