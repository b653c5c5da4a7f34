package blogapp

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bloglist/bloglist-e2e/appdef"
	"github.com/bloglist/bloglist-e2e/driver"
	"github.com/bloglist/bloglist-e2e/fakeapp"
	"github.com/bloglist/bloglist-e2e/framework"
)

var (
	testUser = User{Name: "Matti Luukkainen", Username: "mluukkai", Password: "salainen"}
	testBlog = Blog{Title: "a test blog", Author: "Test Author", URL: "http://example.com/blog"}
)

type fixture struct {
	app  *fakeapp.App
	api  *driver.APIClient
	page driver.Page
}

func newFixture(t *testing.T) fixture {
	app := fakeapp.New()
	server := httptest.NewServer(app.Handler())
	t.Cleanup(server.Close)
	page := app.NewPage(nil)
	require.NoError(t, page.Goto(appdef.DefaultUIURL))
	return fixture{app: app, api: driver.NewAPIClient(server.URL, 0), page: page}
}

func (f fixture) loggedIn(t *testing.T) fixture {
	require.NoError(t, CreateUser(context.Background(), f.api, testUser))
	require.NoError(t, Login(f.page, testUser.Username, testUser.Password))
	return f
}

func TestCreateUserAndReset(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, CreateUser(ctx, f.api, testUser))
	users, err := ListUsers(ctx, f.api)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, testUser.Username, users[0].Username)

	require.NoError(t, ResetState(ctx, f.api))
	users, err = ListUsers(ctx, f.api)
	require.NoError(t, err)
	assert.Len(t, users, 0)
}

func TestCreateDuplicateUserIsRequestError(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, CreateUser(ctx, f.api, testUser))

	err := CreateUser(ctx, f.api, testUser)
	var re *framework.RequestError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, 400, re.Status)
	assert.Equal(t, "request", framework.Classify(err))
}

func TestLoginAndLogout(t *testing.T) {
	f := newFixture(t).loggedIn(t)

	assert.NoError(t, f.page.ByText(appdef.LoggedInText(testUser.Username)).ExpectVisible())
	require.NoError(t, Logout(f.page))
	assert.NoError(t, f.page.ByRole(appdef.RoleButton, appdef.ButtonLogin).ExpectVisible())
}

func TestLoginWithWrongPasswordDoesNotFail(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, CreateUser(context.Background(), f.api, testUser))

	assert.NoError(t, Login(f.page, testUser.Username, "wrong"))
	assert.NoError(t, f.page.Locator(appdef.SelectorError).ExpectContainsText(appdef.MessageWrongCredentials))
}

func TestCreateBlogEntryWaitsForHeading(t *testing.T) {
	f := newFixture(t).loggedIn(t)
	require.NoError(t, OpenBlogForm(f.page))

	require.NoError(t, CreateBlogEntry(f.page, testBlog))
	assert.NoError(t, f.page.ByText(testBlog.Heading()).ExpectVisible())

	blogs, err := ListBlogs(context.Background(), f.api)
	require.NoError(t, err)
	require.Len(t, blogs, 1)
	assert.Equal(t, testBlog.Title, blogs[0].Title)
	assert.Equal(t, 0, blogs[0].LikeCount())
}

func TestCreateBlogEntryWithoutOpenFormFails(t *testing.T) {
	f := newFixture(t).loggedIn(t)

	err := CreateBlogEntry(f.page, testBlog)
	var te *framework.TimeoutError
	assert.ErrorAs(t, err, &te)
}

func TestCreateBlogEntryThatIsRejectedTimesOut(t *testing.T) {
	f := newFixture(t).loggedIn(t)
	require.NoError(t, OpenBlogForm(f.page))

	err := CreateBlogEntry(f.page, Blog{Author: "Nobody"})
	var te *framework.TimeoutError
	require.ErrorAs(t, err, &te)
	assert.Contains(t, err.Error(), "did not appear")
}

func TestBlogEntryActions(t *testing.T) {
	f := newFixture(t).loggedIn(t)
	require.NoError(t, OpenBlogForm(f.page))
	require.NoError(t, CreateBlogEntry(f.page, testBlog))

	entry := FindBlogEntry(f.page, testBlog)
	require.NoError(t, entry.View())
	require.NoError(t, entry.Like())
	assert.NoError(t, entry.ExpectContainsText(appdef.LikesText(1)))
	assert.NoError(t, OnlyBlogEntry(f.page).ExpectContainsText(testBlog.Heading()))

	var message string
	f.page.ExpectDialog(func(d driver.Dialog) {
		message = d.Message()
		_ = d.Accept()
	})
	require.NoError(t, entry.Remove())
	assert.Equal(t, appdef.RemoveConfirmation(testBlog.Title, testBlog.Author), message)
	assert.NoError(t, BlogEntries(f.page).ExpectHidden())
}

func TestBlogEntryIsALocator(t *testing.T) {
	f := newFixture(t).loggedIn(t)
	require.NoError(t, OpenBlogForm(f.page))
	require.NoError(t, CreateBlogEntry(f.page, testBlog))

	textOf := func(l driver.Locator) string {
		require.NoError(t, l.ExpectVisible())
		s, err := l.TextContent()
		require.NoError(t, err)
		return s
	}
	for _, entry := range []BlogEntry{
		OnlyBlogEntry(f.page),
		TopBlogEntry(f.page),
		NthBlogEntry(f.page, 0),
		FindBlogEntry(f.page, testBlog),
	} {
		assert.Contains(t, textOf(entry), testBlog.Heading(), entry.String())
		assert.NoError(t, entry.Locator(appdef.SelectorBlog).ExpectHidden(), "entries are not nested")
	}
}

func TestTopBlogEntryHasMostLikes(t *testing.T) {
	f := newFixture(t).loggedIn(t)
	require.NoError(t, OpenBlogForm(f.page))
	blogs := []Blog{
		{Title: "first", Author: "A", URL: "http://a"},
		{Title: "second", Author: "B", URL: "http://b"},
	}
	for _, b := range blogs {
		require.NoError(t, CreateBlogEntry(f.page, b))
	}

	entry := FindBlogEntry(f.page, blogs[1])
	require.NoError(t, entry.View())
	require.NoError(t, entry.Like())

	assert.NoError(t, TopBlogEntry(f.page).ExpectContainsText(blogs[1].Heading()))
	assert.NoError(t, NthBlogEntry(f.page, 1).ExpectContainsText(blogs[0].Heading()))
}
