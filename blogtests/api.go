package blogtests

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bloglist/bloglist-e2e/driver"
	"github.com/bloglist/bloglist-e2e/framework"
)

const defaultWaitTimeout = time.Second * 5

// Environment is everything the suite needs to reach the application under test.
type Environment struct {
	// UIURL is the address of the application's front end.
	UIURL string
	// API is used for setup steps that bypass the UI.
	API *driver.APIClient
	// NewPage opens a page in a fresh browser context.
	NewPage func(logger framework.Logger) (driver.Page, error)
	// WaitTimeout bounds waits that the browser does not handle itself, such as waiting for a
	// dialog.
	WaitTimeout time.Duration
}

// T represents one scenario of the blog-list suite.
//
// It implements the same basic functionality as Go's testing.T, so the assert and require
// packages can be used with it. Every T owns a browser page in its own browser context and an
// API client whose requests are logged to the scenario's debug output, so nothing a scenario
// does is visible to any other scenario except through the backend, which is reset by the
// outermost setup phase.
//
// Errors returned by actions should be passed to Must, which fails the scenario while keeping
// the error's type, so that a rejected request or a timeout is reported as such.
type T struct {
	context *framework.Context
	env     Environment
	page    driver.Page
	api     *driver.APIClient
	ctx     context.Context
	cancel  context.CancelFunc
}

// DialogInfo describes a dialog that was answered by a handler from AcceptNextDialog or
// DismissNextDialog.
type DialogInfo struct {
	Type    string
	Message string
	err     error
}

func newScope(env Environment) framework.ScopeFactory {
	return func(c *framework.Context) (framework.Scope, error) {
		page, err := env.NewPage(framework.LoggerWithPrefix(c.DebugLogger(), "page: "))
		if err != nil {
			return nil, err
		}
		ctx, cancel := context.WithCancel(context.Background())
		return &T{
			context: c,
			env:     env,
			page:    page,
			api:     env.API.WithLogger(framework.LoggerWithPrefix(c.DebugLogger(), "api: ")),
			ctx:     ctx,
			cancel:  cancel,
		}, nil
	}
}

func requireT(c *framework.Context) *T {
	if t, ok := c.Scope().(*T); ok {
		return t
	}
	panic("scenario has no blog-list scope; the suite must be started with RunTestSuite")
}

// Close fails the scenario if the page opened a dialog that nothing was waiting for, and then
// releases the page.
func (t *T) Close() {
	defer t.cancel()
	if unhandled := t.page.UnhandledDialogs(); len(unhandled) > 0 {
		t.context.Errorf("unexpected dialog: %s", strings.Join(unhandled, ", "))
	}
	if err := t.page.Close(); err != nil {
		t.Debug("error closing page: %s", err)
	}
}

// Errorf is called by assertions to log a scenario failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a scenario should fail and immediately exit.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Must fails the scenario and exits immediately if err is not nil.
func (t *T) Must(err error) {
	if err != nil {
		t.context.Fail(err)
	}
}

// Debug logs some debug output for the scenario. It is shown if the scenario fails.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

func (t *T) Page() driver.Page { return t.page }

func (t *T) API() driver.API { return t.api }

// Context is cancelled when the scenario ends.
func (t *T) Context() context.Context { return t.ctx }

// RequireVisible waits until exactly one visible element matches the locator.
func (t *T) RequireVisible(l driver.Locator) {
	t.Must(l.ExpectVisible())
}

// RequireHidden waits until nothing visible matches the locator.
func (t *T) RequireHidden(l driver.Locator) {
	t.Must(l.ExpectHidden())
}

// RequireText waits until the locator's text contains s.
func (t *T) RequireText(l driver.Locator, s string) {
	t.Must(l.ExpectContainsText(s))
}

// RequireCSS waits until the computed style property has the given value.
func (t *T) RequireCSS(l driver.Locator, property, value string) {
	t.Must(l.ExpectCSS(property, value))
}

// RequireTextContent returns the full text of the element matched by the locator.
func (t *T) RequireTextContent(l driver.Locator) string {
	s, err := l.TextContent()
	t.Must(err)
	return s
}

// AcceptNextDialog arranges for the next dialog the page opens to be accepted. It must be
// called before the action that opens the dialog. The dialog's details are delivered on the
// returned channel, so that they can be checked from the scenario with RequireDialog rather
// than from inside the browser's event handler.
func (t *T) AcceptNextDialog() <-chan DialogInfo {
	return t.answerNextDialog(driver.Dialog.Accept)
}

// DismissNextDialog is like AcceptNextDialog, but cancels the dialog instead.
func (t *T) DismissNextDialog() <-chan DialogInfo {
	return t.answerNextDialog(driver.Dialog.Dismiss)
}

func (t *T) answerNextDialog(answer func(driver.Dialog) error) <-chan DialogInfo {
	ch := make(chan DialogInfo, 1)
	t.page.ExpectDialog(func(d driver.Dialog) {
		info := DialogInfo{Type: d.Type(), Message: d.Message()}
		info.err = answer(d)
		ch <- info
	})
	return ch
}

// RequireDialog waits for a dialog registered with AcceptNextDialog or DismissNextDialog to
// have been answered.
func (t *T) RequireDialog(ch <-chan DialogInfo) DialogInfo {
	timeout := t.env.WaitTimeout
	if timeout <= 0 {
		timeout = defaultWaitTimeout
	}
	select {
	case info := <-ch:
		if info.err != nil {
			t.Must(fmt.Errorf("could not answer %s dialog: %w", info.Type, info.err))
		}
		return info
	case <-time.After(timeout):
		t.Must(&framework.TimeoutError{Action: "wait", Target: "dialog"})
	}
	return DialogInfo{}
}
