package frontmatter

import "fmt"

// ParseError records the file whose front-matter could not be parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parsing front-matter: %v", e.Err)
	}
	return fmt.Sprintf("parsing front-matter %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
