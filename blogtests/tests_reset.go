package blogtests

import (
	"errors"

	"github.com/bloglist/bloglist-e2e/blogapp"
	"github.com/bloglist/bloglist-e2e/framework"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// DoResetTests checks the API operations that every other scenario's setup relies on.
func DoResetTests(g Group) {
	g.Scenario("reset is idempotent", func(t *T) {
		t.Must(blogapp.ResetState(t.Context(), t.API()))
		t.Must(blogapp.CreateUser(t.Context(), t.API(), mainUser))
		openApplication(t)
		logIn(mainUser)(t)
		openBlogForm(t)
		t.Must(blogapp.CreateBlogEntry(t.Page(), playwrightBlog))

		before, err := blogapp.ListBlogs(t.Context(), t.API())
		t.Must(err)
		require.Len(t, before, 1, "the blog was not stored before the reset")

		for i := 0; i < 2; i++ {
			t.Must(blogapp.ResetState(t.Context(), t.API()))
		}

		users, err := blogapp.ListUsers(t.Context(), t.API())
		t.Must(err)
		assert.Len(t, users, 0)

		blogs, err := blogapp.ListBlogs(t.Context(), t.API())
		t.Must(err)
		assert.Len(t, blogs, 0)
	})

	g.Scenario("duplicate username is rejected", func(t *T) {
		t.Must(blogapp.ResetState(t.Context(), t.API()))
		t.Must(blogapp.CreateUser(t.Context(), t.API(), mainUser))

		err := blogapp.CreateUser(t.Context(), t.API(), mainUser)
		var re *framework.RequestError
		require.True(t, errors.As(err, &re), "expected a rejected request, got: %v", err)
		assert.GreaterOrEqual(t, re.Status, 400)
		assert.Less(t, re.Status, 500)
	})
}
