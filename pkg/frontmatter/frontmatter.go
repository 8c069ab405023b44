package frontmatter

import (
	"encoding/json"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/fmcheck/internal/errors"
	"github.com/thoreinstein/fmcheck/pkg/fileutil"
)

// Format identifies the serialization of a front-matter block.
type Format string

const (
	// FormatNone means the file has no recognised front-matter.
	FormatNone Format = ""
	// FormatTOML is a block delimited by "+++" lines.
	FormatTOML Format = "toml"
	// FormatYAML is a block delimited by "---" lines.
	FormatYAML Format = "yaml"
	// FormatJSON is a brace-delimited block.
	FormatJSON Format = "json"
)

// Delimiter lines, compared after trimming trailing whitespace.
const (
	tomlDelimiter = "+++"
	yamlDelimiter = "---"
	jsonOpen      = "{"
	jsonClose     = "}"
)

// Sentinel errors for front-matter parsing.
var (
	ErrNoFrontmatter = errors.New("missing front-matter")
	ErrInvalidTOML   = errors.New("invalid TOML front-matter")
	ErrInvalidYAML   = errors.New("invalid YAML front-matter")
	ErrInvalidJSON   = errors.New("invalid JSON front-matter")
	ErrInvalidUTF8   = errors.New("content is not valid UTF-8")
)

// Metadata is the decoded front-matter mapping.
type Metadata map[string]any

// Document is the result of parsing a content file's front-matter.
type Document struct {
	Format   Format
	Raw      string
	Metadata Metadata
}

// SplitLines splits content into lines that keep their line terminator.
// Empty content has no lines.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.SplitAfter(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Detect returns the front-matter format announced by the first line.
func Detect(lines []string) Format {
	if len(lines) == 0 {
		return FormatNone
	}
	switch trimRight(lines[0]) {
	case tomlDelimiter:
		return FormatTOML
	case yamlDelimiter:
		return FormatYAML
	case jsonOpen:
		return FormatJSON
	default:
		return FormatNone
	}
}

// Extract returns the raw text of the front-matter block in the given format.
//
// TOML and YAML blocks exclude both delimiter lines. JSON blocks include the
// opening brace line and the closing brace line.
func Extract(format Format, lines []string) (string, error) {
	if len(lines) == 0 {
		return "", ErrNoFrontmatter
	}

	var sb strings.Builder
	switch format {
	case FormatTOML, FormatYAML:
		delim := tomlDelimiter
		if format == FormatYAML {
			delim = yamlDelimiter
		}
		for _, line := range lines[1:] {
			if trimRight(line) == delim {
				break
			}
			sb.WriteString(line)
		}
	case FormatJSON:
		for _, line := range lines {
			sb.WriteString(line)
			if trimRight(line) == jsonClose {
				break
			}
		}
	default:
		return "", ErrNoFrontmatter
	}

	return sb.String(), nil
}

// Decode deserializes a raw block with the decoder for format.
// An empty TOML or YAML block decodes to an empty, non-nil Metadata.
func Decode(format Format, raw string) (Metadata, error) {
	meta := Metadata{}

	switch format {
	case FormatTOML:
		if err := toml.Unmarshal([]byte(raw), &meta); err != nil {
			return nil, errors.Mark(errors.Wrap(err, "decoding toml"), ErrInvalidTOML)
		}
	case FormatYAML:
		if err := decodeYAML(raw, &meta); err != nil {
			return nil, errors.Mark(errors.Wrap(err, "decoding yaml"), ErrInvalidYAML)
		}
	case FormatJSON:
		if err := json.Unmarshal([]byte(raw), &meta); err != nil {
			return nil, errors.Mark(errors.Wrap(err, "decoding json"), ErrInvalidJSON)
		}
	default:
		return nil, ErrNoFrontmatter
	}

	if meta == nil {
		meta = Metadata{}
	}
	return meta, nil
}

// safeYAMLTags are the tags a safe YAML loader resolves. "!" is the
// non-specific tag, which resolves to a string.
var safeYAMLTags = map[string]bool{
	"!":           true,
	"!!str":       true,
	"!!int":       true,
	"!!float":     true,
	"!!bool":      true,
	"!!null":      true,
	"!!timestamp": true,
	"!!binary":    true,
	"!!seq":       true,
	"!!map":       true,
	"!!merge":     true,
	"!!set":       true,
	"!!omap":      true,
	"!!pairs":     true,
}

// decodeYAML rejects any node carrying a tag outside safeYAMLTags before
// decoding, since yaml.v3 would otherwise ignore the tag.
func decodeYAML(raw string, meta *Metadata) error {
	var root yaml.Node
	if err := yaml.Unmarshal([]byte(raw), &root); err != nil {
		return err
	}
	if root.Kind == 0 {
		return nil
	}
	if err := checkYAMLTags(&root); err != nil {
		return err
	}
	return root.Decode(meta)
}

func checkYAMLTags(n *yaml.Node) error {
	switch n.Kind {
	case yaml.AliasNode:
		// The anchored node is checked where it is defined.
		return nil
	case yaml.DocumentNode:
	default:
		if tag := n.ShortTag(); !safeYAMLTags[tag] {
			return errors.Newf("line %d: unsupported tag %s", n.Line, tag)
		}
	}
	for _, c := range n.Content {
		if err := checkYAMLTags(c); err != nil {
			return err
		}
	}
	return nil
}

// ParseBytes detects, extracts and decodes the front-matter in data.
// Content that is not valid UTF-8 is rejected as unreadable.
func ParseBytes(data []byte) (*Document, error) {
	if !utf8.Valid(data) {
		return nil, ErrInvalidUTF8
	}
	lines := SplitLines(string(data))

	format := Detect(lines)
	if format == FormatNone {
		return nil, ErrNoFrontmatter
	}

	raw, err := Extract(format, lines)
	if err != nil {
		return nil, err
	}

	meta, err := Decode(format, raw)
	if err != nil {
		return nil, err
	}

	return &Document{Format: format, Raw: raw, Metadata: meta}, nil
}

// Parse reads all of r and parses its front-matter.
func Parse(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading content")
	}
	return ParseBytes(data)
}

// ParseFile reads the file at path and parses its front-matter.
func ParseFile(path string) (*Document, error) {
	data, err := fileutil.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	doc, err := ParseBytes(data)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return doc, nil
}

func trimRight(line string) string {
	return strings.TrimRightFunc(line, unicode.IsSpace)
}
