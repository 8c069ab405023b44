package validator

import "fmt"

// Issue represents a single violated front-matter rule.
type Issue struct {
	// File is the path of the checked file, as given on the command line.
	File string
	// Field identifies the rule that failed (optional).
	Field string
	// Message is a human-readable description of the problem.
	Message string
}

// String renders the issue in diagnostic form.
func (i Issue) String() string {
	return fmt.Sprintf("In file %s, %s", i.File, i.Message)
}

// Error implements the error interface.
func (i Issue) Error() string {
	return i.String()
}

// Result aggregates the issues found in a single file.
type Result struct {
	File   string
	Issues []Issue
}

// NewResult returns an empty result for file.
func NewResult(file string) *Result {
	return &Result{File: file}
}

// Add records a violated rule.
func (r *Result) Add(field, message string) {
	r.Issues = append(r.Issues, Issue{
		File:    r.File,
		Field:   field,
		Message: message,
	})
}

// Failed reports whether any rule was violated.
func (r *Result) Failed() bool {
	return r != nil && len(r.Issues) > 0
}

// Fields returns the rule names that failed, in the order they were checked.
func (r *Result) Fields() []string {
	if r == nil {
		return nil
	}
	fields := make([]string, 0, len(r.Issues))
	for _, i := range r.Issues {
		fields = append(fields, i.Field)
	}
	return fields
}
