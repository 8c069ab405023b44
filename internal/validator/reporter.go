package validator

import (
	"fmt"
	"io"

	"github.com/thoreinstein/fmcheck/internal/errors"
)

// Reporter writes validation results as plain diagnostic lines.
type Reporter struct {
	out io.Writer
}

// NewReporter creates a new Reporter.
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// Report writes one line per issue in result. Passing results print nothing.
func (r *Reporter) Report(result *Result) error {
	if result == nil {
		return nil
	}
	for _, issue := range result.Issues {
		if _, err := fmt.Fprintln(r.out, issue.String()); err != nil {
			return errors.Wrap(err, "writing diagnostic")
		}
	}
	return nil
}
