// Package appdef describes the observable surface of the blog-list application: the JSON
// bodies of its HTTP API and the stable identifiers used to find things in its UI.
package appdef

import (
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const (
	DefaultUIURL  = "http://localhost:5173"
	DefaultAPIURL = "http://localhost:3001"
)

const (
	PathTestingReset = "/api/testing/reset"
	PathUsers        = "/api/users"
	PathBlogs        = "/api/blogs"
)

// CreateUserParams is the body of POST /api/users.
type CreateUserParams struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserRecord is one element of the response to GET /api/users.
type UserRecord struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// BlogRecord is one element of the response to GET /api/blogs.
type BlogRecord struct {
	ID     string              `json:"id"`
	Title  string              `json:"title"`
	Author string              `json:"author"`
	URL    string              `json:"url"`
	Likes  ldvalue.OptionalInt `json:"likes"`
	User   *UserRecord         `json:"user,omitempty"`
}

// LikeCount returns the number of likes, treating a missing value as zero as the backend does.
func (b BlogRecord) LikeCount() int {
	return b.Likes.OrElse(0)
}
