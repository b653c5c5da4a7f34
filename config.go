package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is the format of the file named by -config. Every setting is optional, and a
// command-line flag always takes precedence over the same setting in the file.
type fileConfig struct {
	UIURL            string   `yaml:"uiUrl"`
	APIURL           string   `yaml:"apiUrl"`
	Browser          string   `yaml:"browser"`
	Headless         *bool    `yaml:"headless"`
	TimeoutMS        *int     `yaml:"timeoutMs"`
	StartupTimeoutMS *int     `yaml:"startupTimeoutMs"`
	Run              []string `yaml:"run"`
	Skip             []string `yaml:"skip"`
	Debug            bool     `yaml:"debug"`
	DebugAll         bool     `yaml:"debugAll"`
}

func loadConfigFile(path string) (fileConfig, error) {
	var config fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return config, err
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return config, nil
}

// applyTo copies each setting from the file into params, unless the flag for that setting was
// given explicitly.
func (f fileConfig) applyTo(params *commandParams, explicit map[string]bool) error {
	if f.UIURL != "" && !explicit[flagUIURL] {
		params.uiURL = f.UIURL
	}
	if f.APIURL != "" && !explicit[flagAPIURL] {
		params.apiURL = f.APIURL
	}
	if f.Browser != "" && !explicit[flagBrowser] {
		params.browser = f.Browser
	}
	if f.Headless != nil && !explicit[flagHeadless] {
		params.headless = *f.Headless
	}
	if f.TimeoutMS != nil && !explicit[flagTimeout] {
		params.timeout = time.Duration(*f.TimeoutMS) * time.Millisecond
	}
	if f.StartupTimeoutMS != nil && !explicit[flagStartupTimeout] {
		params.startupTimeout = time.Duration(*f.StartupTimeoutMS) * time.Millisecond
	}
	if !explicit[flagRun] {
		for _, p := range f.Run {
			if err := params.filters.MustMatch.Set(p); err != nil {
				return fmt.Errorf("run pattern %q: %w", p, err)
			}
		}
	}
	if !explicit[flagSkip] {
		for _, p := range f.Skip {
			if err := params.filters.MustNotMatch.Set(p); err != nil {
				return fmt.Errorf("skip pattern %q: %w", p, err)
			}
		}
	}
	if !explicit[flagDebug] {
		params.debug = params.debug || f.Debug
	}
	if !explicit[flagDebugAll] {
		params.debugAll = params.debugAll || f.DebugAll
	}
	return nil
}
