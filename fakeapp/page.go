package fakeapp

import (
	"errors"
	"fmt"

	"github.com/bloglist/bloglist-e2e/appdef"
	"github.com/bloglist/bloglist-e2e/driver"
	"github.com/bloglist/bloglist-e2e/framework"
)

var errNoMatch = errors.New("no element matches the locator")

// Page is a browser tab showing the application. Its session and form state are private to
// it, like a real browser context.
type Page struct {
	app        *App
	loaded     bool
	closed     bool
	session    *user
	errMessage string
	formOpen   bool
	expanded   map[string]bool
	inputs     map[string]string
	dialogs    driver.DialogSlot
	logger     framework.Logger
}

// NewPage opens a blank page. Call Goto to load the application.
func (a *App) NewPage(logger framework.Logger) *Page {
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &Page{
		app:      a,
		expanded: make(map[string]bool),
		inputs:   make(map[string]string),
		logger:   logger,
	}
}

func (p *Page) Goto(url string) error {
	if p.closed {
		return errors.New("page has been closed")
	}
	p.logger.Printf("navigating to %s", url)
	p.loaded = true
	return nil
}

func (p *Page) ByTestID(id string) driver.Locator {
	return p.query(fmt.Sprintf("[data-testid=%s]", id), func(e *element) bool {
		return e.testID == id
	})
}

func (p *Page) ByRole(role, name string) driver.Locator {
	return p.query(fmt.Sprintf("role=%s[name=%q]", role, name), roleMatcher(role, name))
}

func (p *Page) ByText(s string) driver.Locator {
	return p.query(fmt.Sprintf("text=%q", s), func(e *element) bool {
		return e.text != "" && containsFold(e.text, s)
	})
}

func (p *Page) Locator(selector string) driver.Locator {
	return p.query(selector, func(e *element) bool { return e.matchesSelector(selector) })
}

func (p *Page) ExpectDialog(handler driver.DialogHandler) {
	p.dialogs.Set(handler)
}

func (p *Page) UnhandledDialogs() []string {
	return p.dialogs.Unhandled()
}

func (p *Page) Close() error {
	p.closed = true
	p.session = nil
	return nil
}

func roleMatcher(role, name string) func(*element) bool {
	return func(e *element) bool {
		return e.role == role && containsFold(e.name, name)
	}
}

func (p *Page) query(description string, match func(*element) bool) *locator {
	return &locator{
		page:        p,
		description: description,
		resolve: func(root *element) []*element {
			var ret []*element
			for _, e := range root.descendants() {
				if match(e) {
					ret = append(ret, e)
				}
			}
			return ret
		},
	}
}

func (p *Page) render() *element {
	root := div("root")
	if !p.loaded || p.closed {
		return root
	}
	if p.session == nil {
		root.children = append(root.children, text("log in to application"))
		if p.errMessage != "" {
			root.children = append(root.children, p.notification())
		}
		root.children = append(root.children,
			input(appdef.TestIDUsername, p.fill(appdef.TestIDUsername)),
			input(appdef.TestIDPassword, p.fill(appdef.TestIDPassword)),
			button(appdef.ButtonLogin, p.login),
		)
		return root.link()
	}

	root.children = append(root.children, text("blogs"))
	if p.errMessage != "" {
		root.children = append(root.children, p.notification())
	}
	root.children = append(root.children,
		text(appdef.LoggedInText(p.session.username), button(appdef.ButtonLogout, p.logout)))
	if p.formOpen {
		root.children = append(root.children, div("blog-form",
			text("create new"),
			input(appdef.TestIDTitle, p.fill(appdef.TestIDTitle)),
			input(appdef.TestIDAuthor, p.fill(appdef.TestIDAuthor)),
			input(appdef.TestIDURL, p.fill(appdef.TestIDURL)),
			button(appdef.ButtonCreate, p.createBlog),
			button("cancel", func() error { p.formOpen = false; return nil }),
		))
	} else {
		root.children = append(root.children,
			button(appdef.ButtonNewBlog, func() error { p.formOpen = true; return nil }))
	}
	for _, b := range p.app.sortedBlogs() {
		root.children = append(root.children, p.blogElement(b))
	}
	return root.link()
}

func (p *Page) notification() *element {
	return &element{
		class: "error",
		text:  p.errMessage,
		css: map[string]string{
			"border-style": appdef.ErrorBorderStyle,
			"color":        appdef.ErrorColor,
		},
	}
}

func (p *Page) blogElement(b blog) *element {
	id := b.id
	entry := div("blog", text(appdef.BlogHeading(b.title, b.author)))
	if !p.expanded[id] {
		entry.children = append(entry.children,
			button(appdef.ButtonView, func() error { p.expanded[id] = true; return nil }))
		return entry
	}
	entry.children = append(entry.children,
		button(appdef.ButtonHide, func() error { delete(p.expanded, id); return nil }),
		text(b.url),
		text(appdef.LikesText(b.likes), button(appdef.ButtonLike, func() error { p.app.like(id); return nil })),
	)
	if b.owner != nil {
		entry.children = append(entry.children, text(b.owner.name))
	}
	if b.owner == p.session || p.app.Faults.ShowRemoveToEveryone {
		entry.children = append(entry.children, button(appdef.ButtonRemove, func() error {
			return p.confirmRemove(b)
		}))
	}
	return entry
}

func (p *Page) fill(testID string) func(string) {
	return func(value string) { p.inputs[testID] = value }
}

func (p *Page) login() error {
	u := p.app.authenticate(p.inputs[appdef.TestIDUsername], p.inputs[appdef.TestIDPassword])
	delete(p.inputs, appdef.TestIDUsername)
	delete(p.inputs, appdef.TestIDPassword)
	if u == nil {
		p.errMessage = appdef.MessageWrongCredentials
		return nil
	}
	p.session = u
	p.errMessage = ""
	return nil
}

func (p *Page) logout() error {
	p.session = nil
	p.formOpen = false
	p.expanded = make(map[string]bool)
	return nil
}

func (p *Page) createBlog() error {
	err := p.app.addBlog(
		p.inputs[appdef.TestIDTitle],
		p.inputs[appdef.TestIDAuthor],
		p.inputs[appdef.TestIDURL],
		p.session,
	)
	delete(p.inputs, appdef.TestIDTitle)
	delete(p.inputs, appdef.TestIDAuthor)
	delete(p.inputs, appdef.TestIDURL)
	if err != nil {
		p.errMessage = err.Error()
	}
	return nil
}

func (p *Page) confirmRemove(b blog) error {
	d := &dialog{kind: "confirm", message: appdef.RemoveConfirmation(b.title, b.author)}
	p.logger.Printf("dialog opened: %s %q", d.kind, d.message)
	p.dialogs.Dispatch(d)
	if !d.accepted {
		return nil
	}
	if err := p.app.removeBlog(b.id, p.session); err != nil {
		p.errMessage = err.Error()
	}
	return nil
}

type dialog struct {
	kind     string
	message  string
	accepted bool
	answered bool
}

func (d *dialog) Type() string    { return d.kind }
func (d *dialog) Message() string { return d.message }

func (d *dialog) Accept() error {
	if d.answered {
		return errors.New("dialog was already answered")
	}
	d.answered, d.accepted = true, true
	return nil
}

func (d *dialog) Dismiss() error {
	if d.answered {
		return errors.New("dialog was already answered")
	}
	d.answered = true
	return nil
}
