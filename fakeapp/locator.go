package fakeapp

import (
	"fmt"
	"strings"

	"github.com/bloglist/bloglist-e2e/driver"
	"github.com/bloglist/bloglist-e2e/framework"
)

type locator struct {
	page        *Page
	description string
	resolve     func(root *element) []*element
}

func (l *locator) String() string { return l.description }

func (l *locator) derive(suffix string, resolve func(matches []*element) []*element) *locator {
	parent := l
	return &locator{
		page:        l.page,
		description: l.description + " >> " + suffix,
		resolve: func(root *element) []*element {
			return unique(resolve(parent.resolve(root)))
		},
	}
}

func (l *locator) within(suffix string, match func(*element) bool) *locator {
	return l.derive(suffix, func(matches []*element) []*element {
		var ret []*element
		for _, m := range matches {
			for _, d := range m.descendants() {
				if match(d) {
					ret = append(ret, d)
				}
			}
		}
		return ret
	})
}

func (l *locator) ByRole(role, name string) driver.Locator {
	return l.within(fmt.Sprintf("role=%s[name=%q]", role, name), roleMatcher(role, name))
}

func (l *locator) Locator(selector string) driver.Locator {
	return l.within(selector, func(e *element) bool { return e.matchesSelector(selector) })
}

func (l *locator) Parent() driver.Locator {
	return l.derive("..", func(matches []*element) []*element {
		var ret []*element
		for _, m := range matches {
			if m.parent != nil {
				ret = append(ret, m.parent)
			}
		}
		return ret
	})
}

func (l *locator) First() driver.Locator {
	return l.derive("nth=0", func(matches []*element) []*element {
		if len(matches) == 0 {
			return nil
		}
		return matches[:1]
	})
}

func (l *locator) Nth(i int) driver.Locator {
	return l.derive(fmt.Sprintf("nth=%d", i), func(matches []*element) []*element {
		if i < 0 || i >= len(matches) {
			return nil
		}
		return matches[i : i+1]
	})
}

// single resolves the locator, requiring exactly one match like Playwright's strict mode.
// Since the fake application updates synchronously, a missing element will never appear, so
// it is reported as a timeout right away.
func (l *locator) single(action string) (*element, error) {
	matches := l.resolve(l.page.render())
	switch len(matches) {
	case 0:
		return nil, &framework.TimeoutError{Action: action, Target: l.description, Err: errNoMatch}
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%s of %s failed: strict mode violation: locator resolved to %d elements",
			action, l.description, len(matches))
	}
}

func (l *locator) Fill(value string) error {
	l.page.logger.Printf("filling %s with %q", l.description, value)
	e, err := l.single("fill")
	if err != nil {
		return err
	}
	if e.onFill == nil {
		return fmt.Errorf("fill of %s failed: element is not an input", l.description)
	}
	e.onFill(value)
	return nil
}

func (l *locator) Click() error {
	l.page.logger.Printf("clicking %s", l.description)
	e, err := l.single("click")
	if err != nil {
		return err
	}
	if e.onClick == nil {
		return nil
	}
	return e.onClick()
}

func (l *locator) WaitFor() error {
	l.page.logger.Printf("waiting for %s", l.description)
	_, err := l.single("wait")
	return err
}

func (l *locator) TextContent() (string, error) {
	e, err := l.single("text content")
	if err != nil {
		return "", err
	}
	return e.textContent(), nil
}

func (l *locator) expected(expectation string, check func(e *element) error) error {
	l.page.logger.Printf("expecting %s %s", l.description, expectation)
	e, err := l.single("expect")
	if err == nil {
		err = check(e)
	}
	if err != nil {
		return &framework.AssertionError{Expectation: expectation, Target: l.description, Err: err}
	}
	return nil
}

func (l *locator) ExpectVisible() error {
	return l.expected("to be visible", func(*element) error { return nil })
}

func (l *locator) ExpectHidden() error {
	l.page.logger.Printf("expecting %s not to be visible", l.description)
	if n := len(l.resolve(l.page.render())); n > 0 {
		return &framework.AssertionError{
			Expectation: "not to be visible",
			Target:      l.description,
			Err:         fmt.Errorf("%d matching element(s) are visible", n),
		}
	}
	return nil
}

func (l *locator) ExpectContainsText(s string) error {
	return l.expected(fmt.Sprintf("to contain text %q", s), func(e *element) error {
		actual := normalizeSpace(e.textContent())
		if !strings.Contains(actual, normalizeSpace(s)) {
			return fmt.Errorf("actual text was %q", actual)
		}
		return nil
	})
}

func (l *locator) ExpectCSS(property, value string) error {
	return l.expected(fmt.Sprintf("to have CSS %s %q", property, value), func(e *element) error {
		if actual := e.cssValue(property); actual != value {
			return fmt.Errorf("actual value was %q", actual)
		}
		return nil
	})
}

func unique(elements []*element) []*element {
	seen := make(map[*element]bool, len(elements))
	var ret []*element
	for _, e := range elements {
		if !seen[e] {
			seen[e] = true
			ret = append(ret, e)
		}
	}
	return ret
}
