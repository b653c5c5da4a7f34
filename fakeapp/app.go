// Package fakeapp is an in-memory stand-in for the blog-list application. It serves the same
// HTTP API and renders the same UI, as a tree of elements that can be queried through the
// driver interfaces without a real browser. It lets the action helpers and the scenario suite
// be tested deterministically.
package fakeapp

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"sync"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/bloglist/bloglist-e2e/appdef"
)

const minCredentialLength = 3

var (
	errUsernameTaken   = errors.New("expected `username` to be unique")
	errInvalidUser     = errors.New("username and password must be at least 3 characters long")
	errMissingBlogData = errors.New("title and url are required")
	errNotOwner        = errors.New("only the creator can delete a blog")
)

// Faults deliberately break parts of the application, so that tests can check that the
// scenarios notice.
type Faults struct {
	// SortAscending lists blogs with the fewest likes first.
	SortAscending bool
	// ShowRemoveToEveryone shows the remove button to every logged-in user.
	ShowRemoveToEveryone bool
	// IgnoreLikes makes the like button do nothing.
	IgnoreLikes bool
	// ReverseTies lists blogs with equal likes newest first, instead of in creation order.
	ReverseTies bool
}

// App holds the backend state shared by the HTTP API and every page.
type App struct {
	Faults Faults

	users  []*user
	blogs  []*blog
	nextID int
	lock   sync.Mutex
}

type user struct {
	id       string
	name     string
	username string
	password string
}

type blog struct {
	id     string
	title  string
	author string
	url    string
	likes  int
	owner  *user
}

func New() *App {
	return &App{}
}

func (a *App) newID() string {
	a.nextID++
	return strconv.Itoa(a.nextID)
}

func (a *App) reset() {
	a.lock.Lock()
	a.users = nil
	a.blogs = nil
	a.lock.Unlock()
}

func (a *App) addUser(params appdef.CreateUserParams) (*user, error) {
	if len(params.Username) < minCredentialLength || len(params.Password) < minCredentialLength {
		return nil, errInvalidUser
	}
	a.lock.Lock()
	defer a.lock.Unlock()
	for _, u := range a.users {
		if u.username == params.Username {
			return nil, errUsernameTaken
		}
	}
	u := &user{id: a.newID(), name: params.Name, username: params.Username, password: params.Password}
	a.users = append(a.users, u)
	return u, nil
}

func (a *App) authenticate(username, password string) *user {
	a.lock.Lock()
	defer a.lock.Unlock()
	for _, u := range a.users {
		if u.username == username && u.password == password {
			return u
		}
	}
	return nil
}

func (a *App) addBlog(title, author, url string, owner *user) error {
	if title == "" || url == "" {
		return errMissingBlogData
	}
	a.lock.Lock()
	a.blogs = append(a.blogs, &blog{id: a.newID(), title: title, author: author, url: url, owner: owner})
	a.lock.Unlock()
	return nil
}

func (a *App) like(id string) {
	a.lock.Lock()
	defer a.lock.Unlock()
	if a.Faults.IgnoreLikes {
		return
	}
	for _, b := range a.blogs {
		if b.id == id {
			b.likes++
		}
	}
}

func (a *App) removeBlog(id string, by *user) error {
	a.lock.Lock()
	defer a.lock.Unlock()
	for i, b := range a.blogs {
		if b.id == id {
			if by == nil || b.owner != by {
				return errNotOwner
			}
			a.blogs = append(a.blogs[:i], a.blogs[i+1:]...)
			return nil
		}
	}
	return nil
}

// sortedBlogs returns copies of the blogs in display order: most likes first, and blogs with
// equal likes in the order they were created.
func (a *App) sortedBlogs() []blog {
	a.lock.Lock()
	ret := make([]blog, 0, len(a.blogs))
	for _, b := range a.blogs {
		ret = append(ret, *b)
	}
	ascending, reverseTies := a.Faults.SortAscending, a.Faults.ReverseTies
	a.lock.Unlock()

	if reverseTies {
		for i, j := 0, len(ret)-1; i < j; i, j = i+1, j-1 {
			ret[i], ret[j] = ret[j], ret[i]
		}
	}

	sort.SliceStable(ret, func(i, j int) bool {
		if ascending {
			return ret[i].likes < ret[j].likes
		}
		return ret[i].likes > ret[j].likes
	})
	return ret
}

// Handler serves the HTTP API.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+appdef.PathTestingReset, func(w http.ResponseWriter, r *http.Request) {
		a.reset()
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("POST "+appdef.PathUsers, func(w http.ResponseWriter, r *http.Request) {
		var params appdef.CreateUserParams
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
			return
		}
		u, err := a.addUser(params)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusCreated, userRecord(u))
	})
	mux.HandleFunc("GET "+appdef.PathUsers, func(w http.ResponseWriter, r *http.Request) {
		a.lock.Lock()
		records := make([]appdef.UserRecord, 0, len(a.users))
		for _, u := range a.users {
			records = append(records, *userRecord(u))
		}
		a.lock.Unlock()
		writeJSON(w, http.StatusOK, records)
	})
	mux.HandleFunc("GET "+appdef.PathBlogs, func(w http.ResponseWriter, r *http.Request) {
		a.lock.Lock()
		records := make([]appdef.BlogRecord, 0, len(a.blogs))
		for _, b := range a.blogs {
			records = append(records, appdef.BlogRecord{
				ID:     b.id,
				Title:  b.title,
				Author: b.author,
				URL:    b.url,
				Likes:  ldvalue.NewOptionalInt(b.likes),
				User:   userRecord(b.owner),
			})
		}
		a.lock.Unlock()
		writeJSON(w, http.StatusOK, records)
	})
	return mux
}

func userRecord(u *user) *appdef.UserRecord {
	if u == nil {
		return nil
	}
	return &appdef.UserRecord{ID: u.id, Name: u.name, Username: u.username}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	data, _ := json.Marshal(body)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
