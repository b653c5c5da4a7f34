package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/bloglist/bloglist-e2e/appdef"
	"github.com/bloglist/bloglist-e2e/framework"

	"github.com/alessio/shellescape"
)

const (
	defaultWaitTimeout    = time.Second * 5
	defaultStartupTimeout = time.Second * 30
)

const (
	flagUIURL          = "ui-url"
	flagAPIURL         = "api-url"
	flagRun            = "run"
	flagSkip           = "skip"
	flagBrowser        = "browser"
	flagHeadless       = "headless"
	flagTimeout        = "timeout"
	flagStartupTimeout = "startup-timeout"
	flagDebug          = "debug"
	flagDebugAll       = "debug-all"
	flagConfig         = "config"
)

type commandParams struct {
	uiURL          string
	apiURL         string
	filters        framework.RegexFilters
	browser        string
	headless       bool
	timeout        time.Duration
	startupTimeout time.Duration
	debug          bool
	debugAll       bool
	configFile     string
}

func (c *commandParams) flagSet(output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&c.uiURL, flagUIURL, appdef.DefaultUIURL, "base URL of the application's UI")
	fs.StringVar(&c.apiURL, flagAPIURL, appdef.DefaultAPIURL, "base URL of the application's API")
	fs.Var(&c.filters.MustMatch, flagRun, "regex pattern(s) to select scenarios to run")
	fs.Var(&c.filters.MustNotMatch, flagSkip, "regex pattern(s) to select scenarios not to run")
	fs.StringVar(&c.browser, flagBrowser, "chromium", "browser to use: chromium, firefox, or webkit")
	fs.BoolVar(&c.headless, flagHeadless, true, "run the browser without a window")
	fs.DurationVar(&c.timeout, flagTimeout, defaultWaitTimeout, "how long to wait for any page condition")
	fs.DurationVar(&c.startupTimeout, flagStartupTimeout, defaultStartupTimeout,
		"how long to wait for the application to come up")
	fs.BoolVar(&c.debug, flagDebug, false, "enable debug logging for failed scenarios")
	fs.BoolVar(&c.debugAll, flagDebugAll, false, "enable debug logging for all scenarios")
	fs.StringVar(&c.configFile, flagConfig, "", "YAML file with default values for these options")
	return fs
}

// Read parses the command line, then fills in anything not given there from the config file.
func (c *commandParams) Read(args []string, output io.Writer) bool {
	fs := c.flagSet(output)
	if err := fs.Parse(args[1:]); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(output, err)
		}
		return false
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(output, "unexpected argument: %s\n", fs.Arg(0))
		fs.Usage()
		return false
	}
	if c.configFile != "" {
		explicit := make(map[string]bool)
		fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
		config, err := loadConfigFile(c.configFile)
		if err == nil {
			err = config.applyTo(c, explicit)
		}
		if err != nil {
			fmt.Fprintln(output, err)
			return false
		}
	}
	switch c.browser {
	case "chromium", "firefox", "webkit":
	default:
		fmt.Fprintf(output, "-%s must be chromium, firefox, or webkit\n", flagBrowser)
		return false
	}
	if c.timeout <= 0 {
		fmt.Fprintf(output, "-%s must be positive\n", flagTimeout)
		return false
	}
	return true
}

// rerunCommand builds a command line that runs only the scenarios that failed, with the same
// settings as this run.
func (c commandParams) rerunCommand(program string, results framework.Results) string {
	var b commandBuilder
	b.add(program)
	if c.uiURL != appdef.DefaultUIURL {
		b.add("-"+flagUIURL, c.uiURL)
	}
	if c.apiURL != appdef.DefaultAPIURL {
		b.add("-"+flagAPIURL, c.apiURL)
	}
	if c.browser != "chromium" {
		b.add("-"+flagBrowser, c.browser)
	}
	if !c.headless {
		b.add("-" + flagHeadless + "=false")
	}
	if c.timeout != defaultWaitTimeout {
		b.add("-"+flagTimeout, c.timeout.String())
	}
	b.add("-" + flagDebug)
	for _, f := range results.Failures {
		b.add("-"+flagRun, "^"+regexp.QuoteMeta(f.TestID.String())+"$")
	}
	return b.String()
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
