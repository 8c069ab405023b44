package lint

import (
	"fmt"
	"reflect"
	"unicode/utf8"

	"github.com/thoreinstein/fmcheck/internal/config"
	"github.com/thoreinstein/fmcheck/internal/errors"
	"github.com/thoreinstein/fmcheck/internal/validator"
	"github.com/thoreinstein/fmcheck/pkg/frontmatter"
)

// Rule names, used as the Field of reported issues.
const (
	RuleFrontmatter = "front-matter"
	RuleTitle       = "title"
	RuleSummary     = "summary"
	RuleDate        = "date"
	RuleTags        = "tags"
)

// Accepted key spellings per rule.
var (
	titleKeys   = []string{"title", "Title"}
	summaryKeys = []string{"summary", "Summary", "description", "Description"}
	dateKeys    = []string{"date", "Date"}
	tagsKeys    = []string{"tags", "Tags"}
)

// ErrUnsizedTags indicates a tags value whose length cannot be measured.
var ErrUnsizedTags = errors.New("tags value has no length")

// CheckMetadata evaluates every enabled rule against meta and records one
// issue per violated rule. It never stops at the first failure.
func CheckMetadata(path string, meta frontmatter.Metadata, policy *config.Policy) (*validator.Result, error) {
	result := validator.NewResult(path)

	if !policy.IgnoreTitle && !hasAny(meta, titleKeys) {
		result.Add(RuleTitle, "missing `title` in front-matter")
	}

	if !policy.IgnoreSummary && !hasAny(meta, summaryKeys) {
		result.Add(RuleSummary, "missing `summary` or `description` in front-matter")
	}

	if !policy.IgnoreDate && !hasAny(meta, dateKeys) {
		result.Add(RuleDate, "missing `date` in front-matter")
	}

	if !policy.IgnoreTags {
		if err := checkTags(result, meta, policy.MinimumTags); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// checkTags requires a tags field, and that every present spelling holds
// at least minimum entries. Only one issue is recorded for short tags even
// if both spellings fall short.
func checkTags(result *validator.Result, meta frontmatter.Metadata, minimum int) error {
	if !hasAny(meta, tagsKeys) {
		result.Add(RuleTags, "missing `tags` in front-matter")
		return nil
	}

	for _, key := range tagsKeys {
		value, ok := meta[key]
		if !ok {
			continue
		}
		n, err := length(value)
		if err != nil {
			return errors.Wrapf(err, "field %q", key)
		}
		if n < minimum {
			result.Add(RuleTags, fmt.Sprintf("minimum %d `tags` required in front-matter", minimum))
			return nil
		}
	}
	return nil
}

func hasAny(meta frontmatter.Metadata, keys []string) bool {
	for _, k := range keys {
		if _, ok := meta[k]; ok {
			return true
		}
	}
	return false
}

// length counts sequence and mapping entries, or the characters of a string.
func length(value any) (int, error) {
	if s, ok := value.(string); ok {
		return utf8.RuneCountInString(s), nil
	}

	if value != nil {
		rv := reflect.ValueOf(value)
		switch rv.Kind() {
		case reflect.Slice, reflect.Array, reflect.Map:
			return rv.Len(), nil
		}
	}

	return 0, errors.Wrapf(ErrUnsizedTags, "got %T", value)
}
