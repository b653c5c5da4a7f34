package framework

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

const servicePollInterval = time.Millisecond * 100

// AwaitService polls the given URL until it responds with a status below 500, so that the
// test run does not start before the application under test is up. Each attempt prints a dot
// to output.
func AwaitService(url string, timeout time.Duration, output io.Writer) error {
	fmt.Fprintf(output, "Connecting to %s", url)

	client := &http.Client{Timeout: timeout}
	deadline := time.Now().Add(timeout)
	for {
		fmt.Fprintf(output, ".")
		resp, err := client.Get(url)
		if err == nil {
			if resp.Body != nil {
				_, _ = io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
			}
			if resp.StatusCode < 500 {
				fmt.Fprintln(output, " ok")
				return nil
			}
			err = fmt.Errorf("service returned status code %d", resp.StatusCode)
		}
		if !time.Now().Before(deadline) {
			fmt.Fprintln(output)
			return fmt.Errorf("timed out, result of last query was: %w", err)
		}
		time.Sleep(servicePollInterval)
	}
}
