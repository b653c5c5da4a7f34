package framework

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// TestLogger receives progress notifications as scenarios run.
type TestLogger interface {
	TestStarted(id TestID)
	TestError(id TestID, err error)
	TestFinished(id TestID, failed bool, debugOutput CapturedOutput)
	TestSkipped(id TestID, reason string)
}

type nullTestLogger struct{}

func (n nullTestLogger) TestStarted(TestID)                        {}
func (n nullTestLogger) TestError(TestID, error)                   {}
func (n nullTestLogger) TestFinished(TestID, bool, CapturedOutput) {}
func (n nullTestLogger) TestSkipped(TestID, string)                {}

var (
	failedLabel  = color.New(color.FgRed, color.Bold)
	skippedLabel = color.New(color.FgYellow)
	passedLabel  = color.New(color.FgGreen)
)

// ConsoleTestLogger writes human-readable progress to Out, or to standard output if Out is nil.
type ConsoleTestLogger struct {
	Out                  io.Writer
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

func (c ConsoleTestLogger) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c ConsoleTestLogger) TestStarted(id TestID) {
	fmt.Fprintf(c.out(), "[%s]\n", id)
}

func (c ConsoleTestLogger) TestError(id TestID, err error) {
	fmt.Fprintf(c.out(), "  (%s)\n", Classify(err))
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Fprintf(c.out(), "  %s\n", line)
	}
}

func (c ConsoleTestLogger) TestFinished(id TestID, failed bool, debugOutput CapturedOutput) {
	if failed {
		failedLabel.Fprintf(c.out(), "  FAILED: %s\n", id)
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(c.out(), "    DEBUG ")
	}
}

func (c ConsoleTestLogger) TestSkipped(id TestID, reason string) {
	if reason == "" {
		skippedLabel.Fprintf(c.out(), "  SKIPPED: %s\n", id)
	} else {
		skippedLabel.Fprintf(c.out(), "  SKIPPED: %s (%s)\n", id, reason)
	}
}

// PrintResults writes a summary of the test run, followed by the list of failed scenarios.
func PrintResults(out io.Writer, results Results) {
	passed, failed, skipped := results.Counts()
	fmt.Fprintf(out, "Scenarios: %s, %s, %s\n",
		passedLabel.Sprintf("%d passed", passed),
		failedLabel.Sprintf("%d failed", failed),
		skippedLabel.Sprintf("%d skipped", skipped),
	)
	if results.OK() {
		return
	}
	fmt.Fprintln(out, "Failures:")
	for _, f := range results.Failures {
		if f.FailedPhase != "" {
			fmt.Fprintf(out, "  %s (during setup: %s)\n", f.TestID, f.FailedPhase)
		} else {
			fmt.Fprintf(out, "  %s\n", f.TestID)
		}
		for _, err := range f.Errors {
			fmt.Fprintf(out, "    %s: %s\n", Classify(err), firstLine(err.Error()))
		}
	}
}

func firstLine(s string) string {
	if i := strings.Index(s, "\n"); i >= 0 {
		return s[:i]
	}
	return s
}
