// Package blogapp contains reusable actions against the blog-list application. Each action
// performs one multi-step interaction and returns once the application has acknowledged it;
// none of them assert anything about the outcome, which is left to the caller.
package blogapp

import (
	"context"
	"fmt"

	"github.com/bloglist/bloglist-e2e/appdef"
	"github.com/bloglist/bloglist-e2e/driver"
)

// User is an account created through the API.
type User struct {
	Name     string
	Username string
	Password string
}

// Blog is the data entered in the new-blog form.
type Blog struct {
	Title  string
	Author string
	URL    string
}

// Heading is the text that identifies the blog in the list.
func (b Blog) Heading() string {
	return appdef.BlogHeading(b.Title, b.Author)
}

// ResetState deletes every user and blog in the backend.
func ResetState(ctx context.Context, api driver.API) error {
	if err := api.Post(ctx, appdef.PathTestingReset, nil); err != nil {
		return fmt.Errorf("could not reset application state: %w", err)
	}
	return nil
}

// CreateUser creates an account. A rejection by the backend, such as a duplicate username, is
// returned as a *framework.RequestError.
func CreateUser(ctx context.Context, api driver.API, user User) error {
	params := appdef.CreateUserParams{
		Name:     user.Name,
		Username: user.Username,
		Password: user.Password,
	}
	if err := api.Post(ctx, appdef.PathUsers, params); err != nil {
		return fmt.Errorf("could not create user %q: %w", user.Username, err)
	}
	return nil
}

// ListUsers returns every user known to the backend.
func ListUsers(ctx context.Context, api driver.API) ([]appdef.UserRecord, error) {
	var users []appdef.UserRecord
	if err := api.Get(ctx, appdef.PathUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListBlogs returns every blog known to the backend.
func ListBlogs(ctx context.Context, api driver.API) ([]appdef.BlogRecord, error) {
	var blogs []appdef.BlogRecord
	if err := api.Get(ctx, appdef.PathBlogs, &blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}

// Login fills in the login form and submits it. It works the same way for valid and invalid
// credentials.
func Login(page driver.Page, username, password string) error {
	if err := page.ByTestID(appdef.TestIDUsername).Fill(username); err != nil {
		return err
	}
	if err := page.ByTestID(appdef.TestIDPassword).Fill(password); err != nil {
		return err
	}
	if err := page.ByRole(appdef.RoleButton, appdef.ButtonLogin).Click(); err != nil {
		return fmt.Errorf("could not submit login form: %w", err)
	}
	return nil
}

// Logout ends the current session.
func Logout(page driver.Page) error {
	return page.ByRole(appdef.RoleButton, appdef.ButtonLogout).Click()
}

// OpenBlogForm reveals the new-blog form.
func OpenBlogForm(page driver.Page) error {
	return page.ByRole(appdef.RoleButton, appdef.ButtonNewBlog).Click()
}

// CreateBlogEntry fills in the new-blog form, submits it, and then waits until the new entry
// is shown in the list. The form must already be open.
func CreateBlogEntry(page driver.Page, blog Blog) error {
	fields := []struct {
		testID, value string
	}{
		{appdef.TestIDTitle, blog.Title},
		{appdef.TestIDAuthor, blog.Author},
		{appdef.TestIDURL, blog.URL},
	}
	for _, f := range fields {
		if err := page.ByTestID(f.testID).Fill(f.value); err != nil {
			return err
		}
	}
	if err := page.ByRole(appdef.RoleButton, appdef.ButtonCreate).Click(); err != nil {
		return fmt.Errorf("could not submit blog form: %w", err)
	}
	if err := page.ByText(blog.Heading()).WaitFor(); err != nil {
		return fmt.Errorf("blog %q did not appear in the list: %w", blog.Heading(), err)
	}
	return nil
}
