package appdef

import "fmt"

// Test identifiers of the form inputs.
const (
	TestIDUsername = "username"
	TestIDPassword = "password"
	TestIDTitle    = "title"
	TestIDAuthor   = "author"
	TestIDURL      = "url"
)

// Accessible names of buttons.
const (
	ButtonLogin   = "login"
	ButtonLogout  = "logout"
	ButtonNewBlog = "new blog"
	ButtonCreate  = "create"
	ButtonView    = "view"
	ButtonHide    = "hide"
	ButtonLike    = "like"
	ButtonRemove  = "remove"
)

const (
	RoleButton = "button"

	// SelectorBlog matches the container of one blog entry in the list.
	SelectorBlog = ".blog"
	// SelectorError matches the notification shown after a failed action.
	SelectorError = ".error"
)

const (
	MessageWrongCredentials = "Wrong username or password"
	ErrorBorderStyle        = "solid"
	ErrorColor              = "rgb(255, 0, 0)"
)

// BlogHeading is the text that identifies a blog entry in the list.
func BlogHeading(title, author string) string {
	return fmt.Sprintf("%s %s", title, author)
}

// LoggedInText is the text shown when the given user has a session.
func LoggedInText(username string) string {
	return username + " logged in"
}

// LikesText is the text shown in an expanded blog entry.
func LikesText(likes int) string {
	return fmt.Sprintf("likes %d", likes)
}

// RemoveConfirmation is the message of the confirmation dialog shown before a blog is removed.
func RemoveConfirmation(title, author string) string {
	return fmt.Sprintf("Remove %s by %s", title, author)
}
