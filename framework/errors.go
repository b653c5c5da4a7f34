package framework

import (
	"errors"
	"fmt"
)

// RequestError means that the application's API rejected a request made during setup, for
// instance because a username was already taken.
type RequestError struct {
	Method string
	URL    string
	Status int
	Body   string
}

func (e *RequestError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s returned HTTP %d", e.Method, e.URL, e.Status)
	}
	return fmt.Sprintf("%s %s returned HTTP %d: %s", e.Method, e.URL, e.Status, e.Body)
}

// TimeoutError means that a wait condition never became true within the wait budget.
type TimeoutError struct {
	Action string
	Target string
	Err    error
}

func (e *TimeoutError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("timed out in %s of %s", e.Action, e.Target)
	}
	return fmt.Sprintf("timed out in %s of %s: %s", e.Action, e.Target, e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// AssertionError means that some observable state did not match what was expected.
type AssertionError struct {
	Expectation string
	Target      string
	Err         error
}

func (e *AssertionError) Error() string {
	s := e.Expectation
	if e.Target != "" {
		s = fmt.Sprintf("expected %s %s", e.Target, e.Expectation)
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *AssertionError) Unwrap() error { return e.Err }

// Classify returns a short name for the kind of failure that err represents.
func Classify(err error) string {
	var requestErr *RequestError
	var timeoutErr *TimeoutError
	var assertionErr *AssertionError
	switch {
	case errors.As(err, &requestErr):
		return "request"
	case errors.As(err, &timeoutErr):
		return "timeout"
	case errors.As(err, &assertionErr):
		return "assertion"
	default:
		return "error"
	}
}
