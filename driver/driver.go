// Package driver defines the small surface of browser and HTTP automation that the blog-list
// tests need, and implements it with Playwright and net/http.
//
// Every blocking operation waits for its condition up to the driver's wait budget. Running out
// of time is reported as a *framework.TimeoutError, and a failed expectation as a
// *framework.AssertionError.
package driver

import (
	"context"
)

// Page is one browser tab in its own isolated browser context, so that sessions never leak
// between scenarios.
type Page interface {
	// Goto navigates to an absolute URL and waits for the page to load.
	Goto(url string) error
	// ByTestID finds elements by their data-testid attribute.
	ByTestID(id string) Locator
	// ByRole finds elements by accessible role and name.
	ByRole(role, name string) Locator
	// ByText finds the elements whose text contains the given string.
	ByText(text string) Locator
	// Locator finds elements by CSS selector.
	Locator(selector string) Locator
	// ExpectDialog registers a one-shot handler for the next dialog the page opens. It must
	// be called before the action that triggers the dialog.
	ExpectDialog(handler DialogHandler)
	// UnhandledDialogs describes every dialog that opened while no handler was registered.
	// Those dialogs were dismissed.
	UnhandledDialogs() []string
	Close() error
}

// Locator is a lazy query for elements on a page. It is resolved each time it is used.
type Locator interface {
	ByRole(role, name string) Locator
	Locator(selector string) Locator
	Parent() Locator
	First() Locator
	// Nth narrows the matches to the one at index i, counting from zero.
	Nth(i int) Locator

	Fill(text string) error
	Click() error
	// WaitFor blocks until the locator matches a visible element.
	WaitFor() error
	TextContent() (string, error)

	ExpectVisible() error
	// ExpectHidden succeeds if nothing visible matches the locator.
	ExpectHidden() error
	ExpectContainsText(text string) error
	ExpectCSS(property, value string) error

	// String describes the query, for logging.
	String() string
}

// Dialog is a pending alert, confirm, or prompt dialog.
type Dialog interface {
	Type() string
	Message() string
	Accept() error
	Dismiss() error
}

// API is the HTTP side of the application.
type API interface {
	// Post sends body as JSON. Any non-2xx status is returned as a *framework.RequestError.
	Post(ctx context.Context, path string, body interface{}) error
	// Get decodes the JSON response into out.
	Get(ctx context.Context, path string, out interface{}) error
}
