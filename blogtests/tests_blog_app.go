package blogtests

import (
	"github.com/bloglist/bloglist-e2e/appdef"
	"github.com/bloglist/bloglist-e2e/blogapp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func DoBlogAppTests(g Group) {
	g.Scenario("Login form is shown", func(t *T) {
		t.RequireVisible(t.Page().ByTestID(appdef.TestIDUsername))
		t.RequireVisible(t.Page().ByTestID(appdef.TestIDPassword))
	})

	g.Group("Login", nil, doLoginTests)

	g.Group("When logged in", []Step{{"log in", logIn(mainUser)}}, doLoggedInTests)
}

func doLoginTests(g Group) {
	g.Scenario("succeeds with correct credentials", func(t *T) {
		t.Must(blogapp.Login(t.Page(), mainUser.Username, mainUser.Password))
		t.RequireVisible(t.Page().ByText(appdef.LoggedInText(mainUser.Username)))
	})

	g.Scenario("fails with wrong credentials", func(t *T) {
		t.Must(blogapp.Login(t.Page(), "otherUser", "otherPass"))

		errorDiv := t.Page().Locator(appdef.SelectorError)
		t.RequireText(errorDiv, appdef.MessageWrongCredentials)
		t.RequireCSS(errorDiv, "border-style", appdef.ErrorBorderStyle)
		t.RequireCSS(errorDiv, "color", appdef.ErrorColor)

		t.RequireHidden(t.Page().ByText(appdef.LoggedInText(mainUser.Username)))
	})
}

func doLoggedInTests(g Group) {
	g.Scenario("the user can logout", func(t *T) {
		t.Must(blogapp.Logout(t.Page()))

		t.RequireVisible(t.Page().ByTestID(appdef.TestIDUsername))
		t.RequireVisible(t.Page().ByTestID(appdef.TestIDPassword))
	})

	g.Scenario("a new blog can be created", func(t *T) {
		t.Must(blogapp.OpenBlogForm(t.Page()))
		t.Must(blogapp.CreateBlogEntry(t.Page(), playwrightBlog))

		entry := blogapp.OnlyBlogEntry(t.Page())
		t.RequireVisible(entry)
		t.RequireText(entry, playwrightBlog.Title)
	})

	g.Scenario("a created blog is stored with zero likes", func(t *T) {
		t.Must(blogapp.OpenBlogForm(t.Page()))
		t.Must(blogapp.CreateBlogEntry(t.Page(), playwrightBlog))

		blogs, err := blogapp.ListBlogs(t.Context(), t.API())
		t.Must(err)
		require.Len(t, blogs, 1)
		assert.Equal(t, playwrightBlog.Title, blogs[0].Title)
		assert.Equal(t, playwrightBlog.Author, blogs[0].Author)
		assert.Equal(t, playwrightBlog.URL, blogs[0].URL)
		assert.Equal(t, 0, blogs[0].LikeCount())
		if assert.NotNil(t, blogs[0].User, "blog has no owner") {
			assert.Equal(t, mainUser.Username, blogs[0].User.Username)
		}
	})

	g.Group("When a blog exists", []Step{
		{"open blog form", openBlogForm},
		{"create blog", createBlogs(playwrightBlog)},
	}, doBlogExistsTests)

	g.Group("When there are multiple blogs created", []Step{
		{"open blog form", openBlogForm},
		{"create blogs", createBlogs(playwrightBlog, exampleBlog, testBlog)},
	}, doMultipleBlogsTests)
}

func doBlogExistsTests(g Group) {
	g.Scenario("likes can be increased", func(t *T) {
		entry := blogapp.OnlyBlogEntry(t.Page())

		t.Must(entry.View())
		t.RequireText(entry, appdef.LikesText(0))

		t.Must(entry.Like())
		t.RequireText(entry, appdef.LikesText(1))
	})

	g.Scenario("the user who creates the blog can delete it", func(t *T) {
		entry := blogapp.OnlyBlogEntry(t.Page())

		t.Must(entry.View())
		t.RequireText(entry, mainUser.Name)

		dialog := t.AcceptNextDialog()
		t.Must(entry.Remove())
		info := t.RequireDialog(dialog)
		assert.Equal(t, "confirm", info.Type)
		assert.Equal(t, appdef.RemoveConfirmation(playwrightBlog.Title, playwrightBlog.Author), info.Message)

		t.RequireHidden(entry)
	})

	g.Group("And there are two users", []Step{
		{"create user " + newUser.Username, createUser(newUser)},
		{"log out", logOut},
		{"log in as " + newUser.Username, logIn(newUser)},
	}, func(g Group) {
		g.Scenario("the user can not delete a blog that other user created", func(t *T) {
			entry := blogapp.OnlyBlogEntry(t.Page())

			t.Must(entry.View())
			t.RequireText(entry, mainUser.Name)

			t.RequireHidden(entry.RemoveButton())
		})
	})
}

func doMultipleBlogsTests(g Group) {
	g.Scenario("the blogs are arranged in the order according to the likes", func(t *T) {
		entry := blogapp.FindBlogEntry(t.Page(), testBlog)

		t.Must(entry.View())
		t.Must(entry.Like())
		t.RequireText(entry, appdef.LikesText(1))

		top := blogapp.TopBlogEntry(t.Page())
		assert.Equal(t, t.RequireTextContent(entry), t.RequireTextContent(top),
			"the blog with the most likes is not shown first")

		// blogs with equal likes keep their creation order
		for i, blog := range []blogapp.Blog{testBlog, playwrightBlog, exampleBlog} {
			t.RequireText(blogapp.NthBlogEntry(t.Page(), i), blog.Heading())
		}
	})
}
