// Package fileutil holds small file helpers shared by the fmcheck packages.
package fileutil

import (
	"os"

	"github.com/thoreinstein/fmcheck/internal/errors"
)

// ReadFile reads the whole file at path. There is no size cap: a content
// file of any size is checked rather than rejected.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}
	return data, nil
}
