package validator

import (
	"bytes"
	"errors"
	"testing"
)

func TestReporter_Report(t *testing.T) {
	t.Run("one line per issue", func(t *testing.T) {
		result := NewResult("post.md")
		result.Add("title", "missing `title` in front-matter")
		result.Add("tags", "minimum 2 `tags` required in front-matter")

		var buf bytes.Buffer
		if err := NewReporter(&buf).Report(result); err != nil {
			t.Fatalf("Report() error: %v", err)
		}

		want := "In file post.md, missing `title` in front-matter\n" +
			"In file post.md, minimum 2 `tags` required in front-matter\n"
		if buf.String() != want {
			t.Errorf("Report() output = %q, want %q", buf.String(), want)
		}
	})

	t.Run("passing result prints nothing", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewReporter(&buf).Report(NewResult("ok.md")); err != nil {
			t.Fatalf("Report() error: %v", err)
		}
		if buf.Len() != 0 {
			t.Errorf("expected no output, got %q", buf.String())
		}
	})

	t.Run("nil result", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewReporter(&buf).Report(nil); err != nil {
			t.Fatalf("Report() error: %v", err)
		}
	})

	t.Run("write failure", func(t *testing.T) {
		result := NewResult("post.md")
		result.Add("date", "missing `date` in front-matter")

		err := NewReporter(failingWriter{}).Report(result)
		if err == nil {
			t.Fatal("expected write error")
		}
		if !errors.Is(err, errDiskFull) {
			t.Errorf("expected errDiskFull in chain, got %v", err)
		}
	})
}

var errDiskFull = errors.New("disk full")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errDiskFull
}
