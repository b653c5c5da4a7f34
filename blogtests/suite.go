package blogtests

import (
	"github.com/bloglist/bloglist-e2e/blogapp"
	"github.com/bloglist/bloglist-e2e/framework"
)

var (
	mainUser = blogapp.User{Name: "Matti Luukkainen", Username: "mluukkai", Password: "salainen"}
	newUser  = blogapp.User{Name: "New User", Username: "newuser", Password: "newpass"}

	playwrightBlog = blogapp.Blog{
		Title:  "a blog created by playwright",
		Author: "Playwright Author",
		URL:    "http://playwrightTest.com/",
	}
	exampleBlog = blogapp.Blog{Title: "an example blog", Author: "example blog", URL: "http://manyBlogs.com/"}
	testBlog    = blogapp.Blog{Title: "a test blog", Author: "Test Author", URL: "http://Testexample.com/"}
)

// Group declares scenarios that share setup steps.
type Group struct {
	context *framework.Context
}

// Step is one setup phase of a Group.
type Step struct {
	Name   string
	Action func(*T)
}

// Group declares a nested group. Its steps run after the steps of every enclosing group.
func (g Group) Group(name string, steps []Step, action func(Group)) {
	phases := make([]framework.SetupPhase, 0, len(steps))
	for _, s := range steps {
		s := s
		phases = append(phases, framework.SetupPhase{
			Name:   s.Name,
			Action: func(c *framework.Context) { s.Action(requireT(c)) },
		})
	}
	g.context.Group(name, phases, func(c *framework.Context) {
		action(Group{context: c})
	})
}

// Scenario declares one scenario, which runs immediately after all of the setup steps.
func (g Group) Scenario(name string, body func(*T)) {
	g.context.Scenario(name, func(c *framework.Context) {
		body(requireT(c))
	})
}

// RunTestSuite runs every scenario against the application described by env.
func RunTestSuite(
	env Environment,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	return framework.Run(filter, testLogger, newScope(env), func(c *framework.Context) {
		root := Group{context: c}
		root.Group("Blog app", []Step{
			{"reset application state", resetState},
			{"create user " + mainUser.Username, createUser(mainUser)},
			{"open application", openApplication},
		}, DoBlogAppTests)
		root.Group("Reset", nil, DoResetTests)
	})
}

func resetState(t *T) {
	t.Must(blogapp.ResetState(t.Context(), t.API()))
}

func createUser(user blogapp.User) func(*T) {
	return func(t *T) {
		t.Must(blogapp.CreateUser(t.Context(), t.API(), user))
	}
}

func openApplication(t *T) {
	t.Must(t.Page().Goto(t.env.UIURL))
}

func logIn(user blogapp.User) func(*T) {
	return func(t *T) {
		t.Must(blogapp.Login(t.Page(), user.Username, user.Password))
	}
}

func logOut(t *T) {
	t.Must(blogapp.Logout(t.Page()))
}

func openBlogForm(t *T) {
	t.Must(blogapp.OpenBlogForm(t.Page()))
}

func createBlogs(blogs ...blogapp.Blog) func(*T) {
	return func(t *T) {
		for _, b := range blogs {
			t.Must(blogapp.CreateBlogEntry(t.Page(), b))
		}
	}
}
