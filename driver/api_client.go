package driver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bloglist/bloglist-e2e/framework"
)

const defaultRequestTimeout = time.Second * 10

// APIClient talks to the application's HTTP API.
type APIClient struct {
	baseURL string
	client  *http.Client
	logger  framework.Logger
}

// NewAPIClient creates an APIClient for the API at baseURL.
func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &APIClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  framework.NullLogger(),
	}
}

// WithLogger returns a copy of the client that logs each request to logger.
func (a *APIClient) WithLogger(logger framework.Logger) *APIClient {
	if logger == nil {
		logger = framework.NullLogger()
	}
	a1 := *a
	a1.logger = logger
	return &a1
}

func (a *APIClient) Post(ctx context.Context, path string, body interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		a.logger.Printf("POST %s %s", path, string(data))
		reader = bytes.NewBuffer(data)
	} else {
		a.logger.Printf("POST %s", path)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	_, err = a.do(req)
	return err
}

func (a *APIClient) Get(ctx context.Context, path string, out interface{}) error {
	a.logger.Printf("GET %s", path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	data, err := a.do(req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("malformed response from %s: %w", req.URL, err)
	}
	return nil
}

func (a *APIClient) do(req *http.Request) ([]byte, error) {
	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s failed: %w", req.Method, req.URL, err)
	}
	var data []byte
	if resp.Body != nil {
		data, err = io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("error reading response from %s: %w", req.URL, err)
		}
	}
	a.logger.Printf("%s %s -> %d", req.Method, req.URL.Path, resp.StatusCode)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &framework.RequestError{
			Method: req.Method,
			URL:    req.URL.String(),
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(data)),
		}
	}
	return data, nil
}
