// Package lint checks content files for the front-matter fields a page
// needs: a title, a summary or description, a date and enough tags.
//
// Each field is looked up under a fixed set of spellings (for example
// "title" and "Title"). This is deliberately not case-insensitive: "TITLE"
// does not satisfy the title rule.
//
// A [Linter] walks a list of paths in order, skipping those outside the
// policy's base path or matching an exclusion pattern, and reports every
// violated rule of every checked file. A malformed front-matter block or
// an unreadable file aborts the run.
package lint
