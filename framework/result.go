package framework

import (
	"fmt"
	"strings"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

type TestResult struct {
	TestID  TestID
	Errors  []error
	Skipped bool

	// FailedPhase is the name of the setup phase that failed, if the scenario failed before
	// its body started.
	FailedPhase string
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Counts returns the number of scenarios that passed, failed, and were skipped.
func (r Results) Counts() (passed, failed, skipped int) {
	for _, t := range r.Tests {
		switch {
		case t.Skipped:
			skipped++
		case r.isFailure(t.TestID):
			failed++
		default:
			passed++
		}
	}
	return
}

func (r Results) isFailure(id TestID) bool {
	for _, f := range r.Failures {
		if f.TestID.String() == id.String() {
			return true
		}
	}
	return false
}

type TestID struct {
	Path []string
}

// Plus returns a new TestID for a child of this one. The receiver's path is not modified.
func (t TestID) Plus(name string) TestID {
	return TestID{Path: append(append([]string(nil), t.Path...), name)}
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}
