package framework

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	assert.Equal(t, "request", Classify(&RequestError{Method: "POST", URL: "/api/users", Status: 400}))
	assert.Equal(t, "timeout", Classify(fmt.Errorf("creating blog: %w", &TimeoutError{Action: "wait", Target: "x"})))
	assert.Equal(t, "assertion", Classify(&AssertionError{Expectation: "to be visible", Target: "x"}))
	assert.Equal(t, "error", Classify(errors.New("something else")))
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "POST /api/users returned HTTP 400",
		(&RequestError{Method: "POST", URL: "/api/users", Status: 400}).Error())
	assert.Equal(t, "POST /api/users returned HTTP 400: taken",
		(&RequestError{Method: "POST", URL: "/api/users", Status: 400, Body: "taken"}).Error())
	assert.Equal(t, "expected .error to have CSS color rgb(255, 0, 0)",
		(&AssertionError{Expectation: "to have CSS color rgb(255, 0, 0)", Target: ".error"}).Error())

	cause := errors.New("deadline")
	timeout := &TimeoutError{Action: "wait", Target: "text=a", Err: cause}
	assert.Equal(t, "timed out in wait of text=a: deadline", timeout.Error())
	assert.True(t, errors.Is(timeout, cause))
}
