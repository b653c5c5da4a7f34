package framework

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAwaitServiceSucceedsWhenServiceResponds(t *testing.T) {
	handler, requests := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(404))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		var out bytes.Buffer
		require.NoError(t, AwaitService(server.URL, time.Second, &out))
		assert.Equal(t, "Connecting to "+server.URL+". ok\n", out.String())
		r := <-requests
		assert.Equal(t, "GET", r.Request.Method)
	})
}

func TestAwaitServiceRetriesServerErrors(t *testing.T) {
	handler := httphelpers.SequentialHandler(
		httphelpers.HandlerWithStatus(503),
		httphelpers.HandlerWithStatus(http.StatusOK),
	)
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		var out bytes.Buffer
		require.NoError(t, AwaitService(server.URL, time.Second*5, &out))
		assert.Equal(t, "Connecting to "+server.URL+".. ok\n", out.String())
	})
}

func TestAwaitServiceTimesOut(t *testing.T) {
	httphelpers.WithServer(httphelpers.HandlerWithStatus(500), func(server *httptest.Server) {
		var out bytes.Buffer
		err := AwaitService(server.URL, time.Millisecond*250, &out)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "service returned status code 500")
	})
}
