package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bloglist/bloglist-e2e/appdef"
	"github.com/bloglist/bloglist-e2e/framework"
)

func readParams(t *testing.T, args ...string) (commandParams, bool, string) {
	var params commandParams
	var out bytes.Buffer
	ok := params.Read(append([]string{"bloglist-e2e"}, args...), &out)
	return params, ok, out.String()
}

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultParams(t *testing.T) {
	params, ok, _ := readParams(t)
	require.True(t, ok)
	assert.Equal(t, appdef.DefaultUIURL, params.uiURL)
	assert.Equal(t, appdef.DefaultAPIURL, params.apiURL)
	assert.Equal(t, "chromium", params.browser)
	assert.True(t, params.headless)
	assert.Equal(t, defaultWaitTimeout, params.timeout)
	assert.Equal(t, defaultStartupTimeout, params.startupTimeout)
	assert.False(t, params.filters.MustMatch.IsDefined())
}

func TestInvalidParams(t *testing.T) {
	for _, args := range [][]string{
		{"-browser", "netscape"},
		{"-timeout", "0s"},
		{"-run", "("},
		{"extra"},
		{"-config", "/no/such/file.yaml"},
	} {
		_, ok, out := readParams(t, args...)
		assert.False(t, ok, "args: %v", args)
		assert.NotEmpty(t, out, "args: %v", args)
	}
}

func TestConfigFileSuppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
uiUrl: http://ui.example
apiUrl: http://api.example
browser: firefox
headless: false
timeoutMs: 1500
run: ["^Blog app/Login/"]
skip: ["logout"]
`)
	params, ok, out := readParams(t, "-config", path)
	require.True(t, ok, out)
	assert.Equal(t, "http://ui.example", params.uiURL)
	assert.Equal(t, "http://api.example", params.apiURL)
	assert.Equal(t, "firefox", params.browser)
	assert.False(t, params.headless)
	assert.Equal(t, 1500*time.Millisecond, params.timeout)
	assert.Equal(t, defaultStartupTimeout, params.startupTimeout)

	filter := params.filters.AsFilter
	assert.True(t, filter(framework.TestID{Path: []string{"Blog app", "Login", "succeeds with correct credentials"}}))
	assert.False(t, filter(framework.TestID{Path: []string{"Blog app", "When logged in", "the user can logout"}}))
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	path := writeConfig(t, `
uiUrl: http://ui.example
timeoutMs: 1500
run: ["Login"]
`)
	params, ok, out := readParams(t, "-config", path, "-ui-url", "http://other.example", "-timeout", "2s",
		"-run", "Reset")
	require.True(t, ok, out)
	assert.Equal(t, "http://other.example", params.uiURL)
	assert.Equal(t, 2*time.Second, params.timeout)
	assert.Equal(t, `"Reset"`, params.filters.MustMatch.String())
}

func TestConfigFileTimeouts(t *testing.T) {
	path := writeConfig(t, `
timeoutMs: 250
startupTimeoutMs: 90000
`)
	params, ok, out := readParams(t, "-config", path)
	require.True(t, ok, out)
	assert.Equal(t, 250*time.Millisecond, params.timeout)
	assert.Equal(t, 90*time.Second, params.startupTimeout)

	params, ok, out = readParams(t, "-config", path, "-startup-timeout", "5s")
	require.True(t, ok, out)
	assert.Equal(t, 250*time.Millisecond, params.timeout)
	assert.Equal(t, 5*time.Second, params.startupTimeout)
}

func TestInvalidConfigFile(t *testing.T) {
	path := writeConfig(t, "timeoutMs: [")
	_, ok, out := readParams(t, "-config", path)
	assert.False(t, ok)
	assert.Contains(t, out, "invalid config file")
}

func TestRerunCommand(t *testing.T) {
	params, ok, _ := readParams(t, "-browser", "webkit")
	require.True(t, ok)
	results := framework.Results{
		Failures: []framework.TestResult{
			{TestID: framework.TestID{Path: []string{"Blog app", "Login", "fails with wrong credentials"}}},
		},
	}

	assert.Equal(t,
		`./bloglist-e2e -browser webkit -debug -run '^Blog app/Login/fails with wrong credentials$'`,
		params.rerunCommand("./bloglist-e2e", results))
}
