// internal/config/validate.go
package config

import (
	"net/url"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// CheckLogLevel reports whether level is accepted by [log] level.
// It is exported so command-line overrides get the same treatment as the file.
func CheckLogLevel(level string) error {
	if p, ok := checkLogLevel(level); !ok {
		return p
	}
	return nil
}

func checkLogLevel(level string) (Problem, bool) {
	if validLogLevels[level] {
		return Problem{}, true
	}
	return problemf("log", "level", "must be one of debug, info, warn, error; got %q", level), false
}

// Validate checks the configuration for errors.
// Returns the invalid settings (empty if valid).
func (c *Config) Validate() []Problem {
	var problems []Problem

	if c.Service.URL == "" {
		problems = append(problems, problemf("service", "url", "required"))
	} else if u, err := url.Parse(c.Service.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		problems = append(problems, problemf("service", "url", "must be an absolute http(s) URL, got %q", c.Service.URL))
	}
	if c.Service.Timeout.Duration < 0 {
		problems = append(problems, problemf("service", "timeout", "must not be negative, got %s", c.Service.Timeout))
	}

	if p, ok := checkLogLevel(c.Log.Level); !ok {
		problems = append(problems, p)
	}

	return problems
}
