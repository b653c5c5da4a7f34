package blogapp

import (
	"github.com/bloglist/bloglist-e2e/appdef"
	"github.com/bloglist/bloglist-e2e/driver"
)

// entryLocator names the embedded field of BlogEntry, so that it does not hide the Locator method.
type entryLocator = driver.Locator

// BlogEntry is one blog in the list shown to a logged-in user. It can be passed anywhere a
// driver.Locator is expected.
type BlogEntry struct {
	entryLocator
}

var _ driver.Locator = BlogEntry{}

// BlogEntries matches every entry in the list, in display order.
func BlogEntries(page driver.Page) driver.Locator {
	return page.Locator(appdef.SelectorBlog)
}

// OnlyBlogEntry is the entry of a list that is expected to contain a single blog.
func OnlyBlogEntry(page driver.Page) BlogEntry {
	return BlogEntry{BlogEntries(page)}
}

// TopBlogEntry is the first entry of the list, which has the most likes.
func TopBlogEntry(page driver.Page) BlogEntry {
	return BlogEntry{BlogEntries(page).First()}
}

// NthBlogEntry is the entry at the given position of the list, counting from zero.
func NthBlogEntry(page driver.Page, i int) BlogEntry {
	return BlogEntry{BlogEntries(page).Nth(i)}
}

// FindBlogEntry is the entry whose heading shows the given blog.
func FindBlogEntry(page driver.Page, blog Blog) BlogEntry {
	return BlogEntry{page.ByText(blog.Heading()).Parent()}
}

// View expands the entry to show its details.
func (b BlogEntry) View() error {
	return b.ByRole(appdef.RoleButton, appdef.ButtonView).Click()
}

// Like adds one like.
func (b BlogEntry) Like() error {
	return b.ByRole(appdef.RoleButton, appdef.ButtonLike).Click()
}

// RemoveButton is only shown to the user who created the blog.
func (b BlogEntry) RemoveButton() driver.Locator {
	return b.ByRole(appdef.RoleButton, appdef.ButtonRemove)
}

// Remove clicks the remove button. The application asks for confirmation first, so a dialog
// handler must be registered with the page beforehand.
func (b BlogEntry) Remove() error {
	return b.RemoveButton().Click()
}
