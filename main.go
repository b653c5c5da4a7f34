package main

import (
	"fmt"
	"log"
	"os"

	"github.com/bloglist/bloglist-e2e/blogtests"
	"github.com/bloglist/bloglist-e2e/driver"
	"github.com/bloglist/bloglist-e2e/framework"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	var params commandParams
	if !params.Read(args, os.Stderr) {
		return 1
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = log.New(os.Stdout, "", log.LstdFlags)
	}

	for _, url := range []string{params.uiURL, params.apiURL} {
		if err := framework.AwaitService(url, params.startupTimeout, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Application is not available: %s\n", err)
			return 1
		}
	}

	mainDebugLogger.Printf("launching %s (headless: %t)", params.browser, params.headless)
	browser, err := driver.LaunchBrowser(driver.BrowserOptions{
		Browser:     params.browser,
		Headless:    params.headless,
		WaitTimeout: params.timeout,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Browser error: %s\n", err)
		return 1
	}
	defer func() {
		if err := browser.Close(); err != nil {
			mainDebugLogger.Printf("error closing browser: %s", err)
		}
	}()

	fmt.Println()
	framework.PrintFilterDescription(os.Stdout, params.filters)

	fmt.Println("Running test suite")

	testLogger := framework.ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}
	env := blogtests.Environment{
		UIURL:       params.uiURL,
		API:         driver.NewAPIClient(params.apiURL, 0),
		NewPage:     browser.NewPage,
		WaitTimeout: params.timeout,
	}

	results := blogtests.RunTestSuite(env, params.filters.AsFilter, testLogger)

	fmt.Println()
	framework.PrintResults(os.Stdout, results)
	if !results.OK() {
		fmt.Println()
		fmt.Println("To rerun the failed scenarios:")
		fmt.Printf("  %s\n", params.rerunCommand(args[0], results))
		return 1
	}
	return 0
}
