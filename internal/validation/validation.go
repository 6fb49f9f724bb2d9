// Package validation collects field problems so one error reports all of
// them.
package validation

import (
	"fmt"
	"strings"
)

// Issue is one problem with a field, addressed by its dotted path.
type Issue struct {
	Field   string
	Message string
}

// Error aggregates the issues found in one document.
type Error struct {
	// Subject names what was validated, such as "quiz" or "config".
	Subject string
	Issues  []Issue
}

// Error renders a header line followed by one indented line per issue.
func (err *Error) Error() string {
	if err == nil {
		return "validation failed"
	}
	subject := err.Subject
	if subject == "" {
		subject = "document"
	}
	if len(err.Issues) == 0 {
		return subject + " validation failed"
	}
	lines := make([]string, 0, len(err.Issues)+1)
	lines = append(lines, subject+" validation failed:")
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("  %s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

// Has reports whether an issue was recorded for field.
func (err *Error) Has(field string) bool {
	if err == nil {
		return false
	}
	for _, issue := range err.Issues {
		if issue.Field == field {
			return true
		}
	}
	return false
}

// Adder records one issue. Validators of nested sections take an Adder so
// they stay unaware of where the section lives.
type Adder func(field, message string)

// Collector accumulates issues for one subject.
type Collector struct {
	subject string
	issues  []Issue
}

// NewCollector starts an empty collector for subject.
func NewCollector(subject string) *Collector {
	return &Collector{subject: subject}
}

// Add records an issue for field.
func (c *Collector) Add(field, message string) {
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

// Under returns an Adder that records fields below prefix.
func (c *Collector) Under(prefix string) Adder {
	return func(field, message string) {
		c.Add(join(prefix, field), message)
	}
}

// Len returns the number of issues recorded so far.
func (c *Collector) Len() int {
	return len(c.issues)
}

// Err returns an *Error when issues are present and nil otherwise.
func (c *Collector) Err() error {
	if len(c.issues) == 0 {
		return nil
	}
	issues := make([]Issue, len(c.issues))
	copy(issues, c.issues)
	return &Error{Subject: c.subject, Issues: issues}
}

func join(prefix, field string) string {
	switch {
	case prefix == "":
		return field
	case field == "" || strings.HasPrefix(field, "["):
		return prefix + field
	default:
		return prefix + "." + field
	}
}
