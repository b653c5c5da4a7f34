package framework

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
)

type environment struct {
	results    Results
	testLogger TestLogger
	filter     Filter
	newScope   ScopeFactory
}

// Scope holds whatever per-scenario resources the domain-specific test code needs, such as a
// browser page. A new Scope is created for every scenario and closed when the scenario ends.
type Scope interface {
	Close()
}

// ScopeFactory creates the Scope for a scenario. It is called before any setup phase runs.
type ScopeFactory func(*Context) (Scope, error)

// SetupPhase is one step of the setup that a group performs before each of its scenarios.
type SetupPhase struct {
	Name   string
	Action func(*Context)
}

// Context is the state of a group or scenario. It implements the same basic methods as
// *testing.T, so that the assert and require packages can be used with it.
type Context struct {
	env         *environment
	id          TestID
	phases      []SetupPhase
	scenario    bool
	scope       Scope
	debugLogger CapturingLogger
	deferred    []func()
	phase       string
	failedPhase string
	failed      bool
	skipped     bool
	skipReason  string
	errors      []error
}

// Run creates the root context and passes it to action, which declares groups and scenarios.
// Scenarios run synchronously as they are declared, so by the time Run returns every result
// has been recorded.
func Run(
	filter Filter,
	testLogger TestLogger,
	newScope ScopeFactory,
	action func(*Context),
) Results {
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	env := &environment{
		filter:     filter,
		testLogger: testLogger,
		newScope:   newScope,
	}
	c := &Context{env: env}
	c.run(action)
	return env.results
}

func (c *Context) run(action func(*Context)) {
	defer func() {
		if r := recover(); r != nil {
			c.recordPanic(r)
		}
		c.runDeferred()
		if c.scenario || c.failed {
			result := TestResult{
				TestID:      c.id,
				Errors:      c.errors,
				Skipped:     c.skipped && !c.failed,
				FailedPhase: c.failedPhase,
			}
			c.env.results.Tests = append(c.env.results.Tests, result)
			if c.failed {
				c.env.results.Failures = append(c.env.results.Failures, result)
			}
		}
	}()

	action(c)
}

func (c *Context) recordPanic(r interface{}) {
	if c.skipped && !c.failed {
		return
	}
	c.failed = true
	var addError error
	if _, ok := r.(*Context); ok {
		if len(c.errors) == 0 {
			addError = errors.New("test failed with no failure message")
		}
	} else {
		addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
	}
	if addError != nil {
		c.addError(addError)
	}
}

func (c *Context) runDeferred() {
	for len(c.deferred) > 0 {
		fn := c.deferred[len(c.deferred)-1]
		c.deferred = c.deferred[:len(c.deferred)-1]
		func() {
			defer func() {
				if r := recover(); r != nil {
					c.recordPanic(r)
				}
			}()
			fn()
		}()
	}
}

// ID returns the full identifier of this group or scenario.
func (c *Context) ID() TestID {
	return c.id
}

// Scope returns the per-scenario resources created by the ScopeFactory, or nil if this is a
// group rather than a scenario.
func (c *Context) Scope() Scope {
	return c.scope
}

// Phase returns the name of the setup phase currently running, or "" if the scenario body
// is running.
func (c *Context) Phase() string {
	return c.phase
}

// Group declares a named group of scenarios that share setup. The group's phases run after
// the phases of all enclosing groups, in the order given. The action declares the group's
// scenarios and nested groups.
func (c *Context) Group(name string, phases []SetupPhase, action func(*Context)) {
	g := &Context{
		id:     c.id.Plus(name),
		env:    c.env,
		phases: append(append([]SetupPhase(nil), c.phases...), phases...),
	}
	g.run(action)
}

// Scenario runs one independently passing or failing test case: it creates a new Scope, runs
// every inherited setup phase, and then runs the body. If a setup phase fails, the body is
// skipped and the scenario is marked as failed. Deferred teardown always runs.
func (c *Context) Scenario(name string, body func(*Context)) {
	id := c.id.Plus(name)

	c.env.testLogger.TestStarted(id)
	if c.env.filter != nil && !c.env.filter(id) {
		c.env.results.Tests = append(c.env.results.Tests, TestResult{TestID: id, Skipped: true})
		c.env.testLogger.TestSkipped(id, "excluded by filter parameters")
		return
	}
	s := &Context{
		id:       id,
		env:      c.env,
		phases:   c.phases,
		scenario: true,
	}
	s.run(func(s *Context) {
		if s.env.newScope != nil {
			scope, err := s.env.newScope(s)
			if err != nil {
				s.Fail(fmt.Errorf("could not create scenario resources: %w", err))
			}
			s.scope = scope
			s.Defer(scope.Close)
		}
		for _, p := range s.phases {
			s.phase = p.Name
			s.Debug("setup: %s", p.Name)
			p.Action(s)
			if s.failed {
				s.FailNow()
			}
		}
		s.phase = ""
		body(s)
	})
	if s.skipped && !s.failed {
		c.env.testLogger.TestSkipped(id, s.skipReason)
	} else {
		c.env.testLogger.TestFinished(id, s.failed, s.debugLogger.Output())
	}
}

// Defer schedules a function to run when the current scenario or group ends. Deferred
// functions run in reverse order of registration, whether or not the scenario failed.
func (c *Context) Defer(fn func()) {
	c.deferred = append(c.deferred, fn)
}

func (c *Context) addError(err error) {
	if c.failedPhase == "" && c.phase != "" {
		c.failedPhase = c.phase
	}
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, err)
}

// Errorf is called by assertions to record a failure. It does not cause an immediate exit.
func (c *Context) Errorf(format string, args ...interface{}) {
	c.failed = true
	c.addError(&AssertionError{Expectation: reformatError(fmt.Sprintf(format, args...))})
}

// Fail records an error returned by an action, preserving its type, and exits immediately.
func (c *Context) Fail(err error) {
	c.failed = true
	c.addError(err)
	c.FailNow()
}

// FailNow is called by assertions when a test should fail and immediately exit.
func (c *Context) FailNow() {
	panic(c)
}

func (c *Context) Skip() {
	c.skipped = true
	panic(c)
}

func (c *Context) SkipWithReason(reason string) {
	c.skipReason = reason
	c.Skip()
}

func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}

// reformatError drops the "Error Trace" section that testify puts in its failure messages,
// since the file locations are always inside the harness and just add noise.
func reformatError(message string) string {
	var lines []string
	inTrace := false
	for _, line := range strings.Split(message, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "Error Trace:") {
			inTrace = true
			continue
		}
		if inTrace && !strings.Contains(trimmed, ":\t") && strings.Contains(trimmed, ".go:") {
			continue
		}
		inTrace = false
		lines = append(lines, trimmed)
	}
	return strings.Join(lines, "\n")
}
