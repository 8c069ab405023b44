// Package frontmatter detects, extracts and decodes the metadata block at
// the top of a content file, as used by static site generators.
//
// Three conventions are recognised, selected solely by the first line of
// the file with trailing whitespace removed:
//
//	+++          TOML, closed by the next "+++" line
//	---          YAML, closed by the next "---" line
//	{            JSON, closed by (and including) the first "}" line
//
// Extraction is plain line slicing. The block is handed to the matching
// decoder, which is responsible for rejecting malformed content. A block
// without its closing marker runs to the end of the file.
//
// # Basic Usage
//
//	doc, err := frontmatter.ParseFile("content/posts/hello.md")
//	if errors.Is(err, frontmatter.ErrNoFrontmatter) {
//		// first line is not a front-matter marker
//	}
//	title, ok := doc.Metadata["title"]
//
// # Error Handling
//
//   - [ErrNoFrontmatter]: the first line is not "+++", "---" or "{"
//   - [ErrInvalidTOML], [ErrInvalidYAML], [ErrInvalidJSON]: the block was
//     found but the decoder rejected it
//
// Every error returned by [ParseFile] is a [*ParseError] carrying the path.
package frontmatter
