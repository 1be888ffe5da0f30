// internal/config/error.go
package config

import (
	"fmt"
	"strings"
)

// sections lists the config tables in the order they appear in config.toml.
var sections = []string{"service", "log", "screen"}

// Problem is a single invalid setting, addressed by its table and key.
type Problem struct {
	Section string // TOML table, e.g. "service"
	Key     string // key within the table, e.g. "url"
	Message string
}

func (p Problem) Error() string {
	return fmt.Sprintf("[%s] %s: %s", p.Section, p.Key, p.Message)
}

func problemf(section, key, format string, args ...any) Problem {
	return Problem{Section: section, Key: key, Message: fmt.Sprintf(format, args...)}
}

// Error aggregates configuration errors.
type Error struct {
	Path    string    // Config file path
	Missing []string  // Unresolved environment variables
	Errors  []Problem // Validation errors
}

func (e *Error) Error() string {
	if !e.HasErrors() {
		return ""
	}

	var parts []string

	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing environment variables: %s", strings.Join(e.Missing, ", ")))
	}

	if len(e.Errors) > 0 {
		parts = append(parts, "validation failed:")
		for _, p := range e.Errors {
			parts = append(parts, "  "+p.Error())
		}
	}

	return strings.Join(parts, "\n")
}

// HasErrors returns true if there are any errors.
func (e *Error) HasErrors() bool {
	return len(e.Missing) > 0 || len(e.Errors) > 0
}

// BySection groups validation problems by table, in file order.
// Tables without problems are omitted.
func (e *Error) BySection() map[string][]Problem {
	grouped := make(map[string][]Problem)
	for _, p := range e.Errors {
		grouped[p.Section] = append(grouped[p.Section], p)
	}
	return grouped
}

// Sections returns the names of the tables that have problems, in file order.
func (e *Error) Sections() []string {
	grouped := e.BySection()
	var names []string
	for _, s := range sections {
		if len(grouped[s]) > 0 {
			names = append(names, s)
		}
	}
	return names
}
