package driver

import (
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/bloglist/bloglist-e2e/framework"
)

// BrowserOptions controls how the browser is launched.
type BrowserOptions struct {
	// Browser is "chromium", "firefox", or "webkit". The default is "chromium".
	Browser  string
	Headless bool
	// WaitTimeout is the budget for every wait, action, and expectation.
	WaitTimeout time.Duration
}

// Browser is a running Playwright browser. Each page it creates gets its own browser context,
// with separate cookies and storage.
type Browser struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	timeout time.Duration
}

// LaunchBrowser starts Playwright and launches a browser.
func LaunchBrowser(opts BrowserOptions) (*Browser, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}

	var browserType playwright.BrowserType
	switch opts.Browser {
	case "", "chromium":
		browserType = pw.Chromium
	case "firefox":
		browserType = pw.Firefox
	case "webkit":
		browserType = pw.WebKit
	default:
		_ = pw.Stop()
		return nil, fmt.Errorf("unknown browser %q", opts.Browser)
	}

	browser, err := browserType.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("could not launch %s: %w", browserType.Name(), err)
	}

	return &Browser{pw: pw, browser: browser, timeout: opts.WaitTimeout}, nil
}

// NewPage opens a page in a fresh browser context. Actions on the page are logged to logger.
func (b *Browser) NewPage(logger framework.Logger) (Page, error) {
	if logger == nil {
		logger = framework.NullLogger()
	}
	context, err := b.browser.NewContext()
	if err != nil {
		return nil, fmt.Errorf("could not create browser context: %w", err)
	}
	timeoutMS := float64(b.timeout.Milliseconds())
	context.SetDefaultTimeout(timeoutMS)

	page, err := context.NewPage()
	if err != nil {
		_ = context.Close()
		return nil, fmt.Errorf("could not create page: %w", err)
	}

	p := &playwrightPage{
		context:    context,
		page:       page,
		assertions: playwright.NewPlaywrightAssertions(timeoutMS),
		logger:     logger,
	}
	page.OnDialog(func(d playwright.Dialog) {
		logger.Printf("dialog opened: %s %q", d.Type(), d.Message())
		p.dialogs.Dispatch(playwrightDialog{d})
	})
	return p, nil
}

// Close shuts down the browser and Playwright.
func (b *Browser) Close() error {
	if err := b.browser.Close(); err != nil {
		_ = b.pw.Stop()
		return err
	}
	return b.pw.Stop()
}

type playwrightPage struct {
	context    playwright.BrowserContext
	page       playwright.Page
	assertions playwright.PlaywrightAssertions
	dialogs    DialogSlot
	logger     framework.Logger
}

func (p *playwrightPage) Goto(url string) error {
	p.logger.Printf("navigating to %s", url)
	if _, err := p.page.Goto(url); err != nil {
		if errors.Is(err, playwright.ErrTimeout) {
			return &framework.TimeoutError{Action: "navigation", Target: url, Err: err}
		}
		return fmt.Errorf("could not navigate to %s: %w", url, err)
	}
	return nil
}

func (p *playwrightPage) ByTestID(id string) Locator {
	return p.wrap(p.page.GetByTestId(id), fmt.Sprintf("[data-testid=%s]", id))
}

func (p *playwrightPage) ByRole(role, name string) Locator {
	return p.wrap(
		p.page.GetByRole(playwright.AriaRole(role), playwright.PageGetByRoleOptions{Name: name}),
		fmt.Sprintf("role=%s[name=%q]", role, name),
	)
}

func (p *playwrightPage) ByText(text string) Locator {
	return p.wrap(p.page.GetByText(text), fmt.Sprintf("text=%q", text))
}

func (p *playwrightPage) Locator(selector string) Locator {
	return p.wrap(p.page.Locator(selector), selector)
}

func (p *playwrightPage) ExpectDialog(handler DialogHandler) {
	p.dialogs.Set(handler)
}

func (p *playwrightPage) UnhandledDialogs() []string {
	return p.dialogs.Unhandled()
}

func (p *playwrightPage) Close() error {
	return p.context.Close()
}

func (p *playwrightPage) wrap(l playwright.Locator, description string) *playwrightLocator {
	return &playwrightLocator{page: p, locator: l, description: description}
}

type playwrightLocator struct {
	page        *playwrightPage
	locator     playwright.Locator
	description string
}

func (l *playwrightLocator) String() string { return l.description }

func (l *playwrightLocator) ByRole(role, name string) Locator {
	return l.page.wrap(
		l.locator.GetByRole(playwright.AriaRole(role), playwright.LocatorGetByRoleOptions{Name: name}),
		fmt.Sprintf("%s >> role=%s[name=%q]", l.description, role, name),
	)
}

func (l *playwrightLocator) Locator(selector string) Locator {
	return l.page.wrap(l.locator.Locator(selector), l.description+" >> "+selector)
}

func (l *playwrightLocator) Parent() Locator {
	return l.page.wrap(l.locator.Locator(".."), l.description+" >> ..")
}

func (l *playwrightLocator) First() Locator {
	return l.page.wrap(l.locator.First(), l.description+" >> nth=0")
}

func (l *playwrightLocator) Nth(i int) Locator {
	return l.page.wrap(l.locator.Nth(i), fmt.Sprintf("%s >> nth=%d", l.description, i))
}

func (l *playwrightLocator) Fill(text string) error {
	l.page.logger.Printf("filling %s with %q", l.description, text)
	return l.actionError("fill", l.locator.Fill(text))
}

func (l *playwrightLocator) Click() error {
	l.page.logger.Printf("clicking %s", l.description)
	return l.actionError("click", l.locator.Click())
}

func (l *playwrightLocator) WaitFor() error {
	l.page.logger.Printf("waiting for %s", l.description)
	return l.actionError("wait", l.locator.WaitFor())
}

func (l *playwrightLocator) TextContent() (string, error) {
	text, err := l.locator.TextContent()
	return text, l.actionError("text content", err)
}

func (l *playwrightLocator) ExpectVisible() error {
	return l.expectation("to be visible", l.page.assertions.Locator(l.locator).ToBeVisible())
}

func (l *playwrightLocator) ExpectHidden() error {
	return l.expectation("not to be visible", l.page.assertions.Locator(l.locator).Not().ToBeVisible())
}

func (l *playwrightLocator) ExpectContainsText(text string) error {
	return l.expectation(fmt.Sprintf("to contain text %q", text),
		l.page.assertions.Locator(l.locator).ToContainText(text))
}

func (l *playwrightLocator) ExpectCSS(property, value string) error {
	return l.expectation(fmt.Sprintf("to have CSS %s %q", property, value),
		l.page.assertions.Locator(l.locator).ToHaveCSS(property, value))
}

func (l *playwrightLocator) actionError(action string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, playwright.ErrTimeout) {
		return &framework.TimeoutError{Action: action, Target: l.description, Err: err}
	}
	return fmt.Errorf("%s of %s failed: %w", action, l.description, err)
}

func (l *playwrightLocator) expectation(expectation string, err error) error {
	l.page.logger.Printf("expecting %s %s", l.description, expectation)
	if err == nil {
		return nil
	}
	return &framework.AssertionError{Expectation: expectation, Target: l.description, Err: err}
}

type playwrightDialog struct {
	dialog playwright.Dialog
}

func (d playwrightDialog) Type() string    { return d.dialog.Type() }
func (d playwrightDialog) Message() string { return d.dialog.Message() }
func (d playwrightDialog) Accept() error   { return d.dialog.Accept() }
func (d playwrightDialog) Dismiss() error  { return d.dialog.Dismiss() }
