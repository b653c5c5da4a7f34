package fakeapp

import (
	"strings"
)

// element is one node of a rendered page. Pages are rendered again every time a locator is
// resolved, so elements are never mutated after rendering.
type element struct {
	role     string
	name     string
	testID   string
	class    string
	text     string
	css      map[string]string
	children []*element
	parent   *element

	onClick func() error
	onFill  func(string)
}

var defaultCSS = map[string]string{
	"border-style": "none",
	"color":        "rgb(0, 0, 0)",
}

func div(class string, children ...*element) *element {
	return &element{class: class, children: children}
}

func text(s string, children ...*element) *element {
	return &element{text: s, children: children}
}

func button(name string, onClick func() error) *element {
	return &element{role: "button", name: name, text: name, onClick: onClick}
}

func input(testID string, onFill func(string)) *element {
	return &element{role: "textbox", testID: testID, onFill: onFill}
}

func (e *element) link() *element {
	for _, c := range e.children {
		c.parent = e
		c.link()
	}
	return e
}

// descendants returns every element below e in document order.
func (e *element) descendants() []*element {
	var ret []*element
	for _, c := range e.children {
		ret = append(ret, c)
		ret = append(ret, c.descendants()...)
	}
	return ret
}

// textContent concatenates the text of e and all of its descendants.
func (e *element) textContent() string {
	var parts []string
	if e.text != "" {
		parts = append(parts, e.text)
	}
	for _, c := range e.children {
		if s := c.textContent(); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

func (e *element) cssValue(property string) string {
	if v, ok := e.css[property]; ok {
		return v
	}
	return defaultCSS[property]
}

// matchesSelector supports the small subset of CSS that the tests use: ".class".
func (e *element) matchesSelector(selector string) bool {
	if strings.HasPrefix(selector, ".") {
		return e.class == selector[1:]
	}
	return false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(normalizeSpace(s)), strings.ToLower(normalizeSpace(substr)))
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
