package config

import (
	"regexp"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"

	"github.com/thoreinstein/fmcheck/internal/errors"
)

// AppName is the application name.
const AppName = "fmcheck"

// EnvPrefix prefixes every environment variable fmcheck reads.
const EnvPrefix = "FMCHECK"

// DefaultMinimumTags is the tag count required when none is configured.
const DefaultMinimumTags = 2

// Keys shared by flags, viper and environment variables.
const (
	KeyBasePath      = "base_path"
	KeyExcludeFile   = "exclude_file"
	KeyIgnoreTitle   = "ignore_title"
	KeyIgnoreSummary = "ignore_summary_and_description"
	KeyIgnoreDate    = "ignore_date"
	KeyIgnoreTags    = "ignore_tags"
	KeyMinimumTags   = "minimum_tags"
)

// ErrInvalidMinimumTags indicates minimum_tags is not an integer.
var ErrInvalidMinimumTags = errors.New("minimum_tags must be an integer")

// Policy controls which files are checked and which rules apply.
type Policy struct {
	// BasePath restricts checking to paths with this prefix.
	BasePath string `json:"base_path"`
	// Exclude holds regular expressions matched from the start of a path.
	Exclude []string `json:"exclude_file"`

	IgnoreTitle   bool `json:"ignore_title"`
	IgnoreSummary bool `json:"ignore_summary_and_description"`
	IgnoreDate    bool `json:"ignore_date"`
	IgnoreTags    bool `json:"ignore_tags"`

	// MinimumTags is the smallest accepted length of the tags field.
	MinimumTags int `json:"minimum_tags"`

	patterns []*regexp.Regexp
}

// Default returns a policy with every rule enabled.
func Default() *Policy {
	return &Policy{MinimumTags: DefaultMinimumTags}
}

// Init sets defaults and environment variable support on v.
func Init(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyBasePath, "")
	v.SetDefault(KeyExcludeFile, []string{})
	v.SetDefault(KeyIgnoreTitle, false)
	v.SetDefault(KeyIgnoreSummary, false)
	v.SetDefault(KeyIgnoreDate, false)
	v.SetDefault(KeyIgnoreTags, false)
	v.SetDefault(KeyMinimumTags, strconv.Itoa(DefaultMinimumTags))
}

// Load builds a validated, compiled Policy from v.
func Load(v *viper.Viper) (*Policy, error) {
	minTags, err := ParseMinimumTags(v.GetString(KeyMinimumTags))
	if err != nil {
		return nil, err
	}

	p := &Policy{
		BasePath:      v.GetString(KeyBasePath),
		Exclude:       v.GetStringSlice(KeyExcludeFile),
		IgnoreTitle:   v.GetBool(KeyIgnoreTitle),
		IgnoreSummary: v.GetBool(KeyIgnoreSummary),
		IgnoreDate:    v.GetBool(KeyIgnoreDate),
		IgnoreTags:    v.GetBool(KeyIgnoreTags),
		MinimumTags:   minTags,
	}

	if err := p.Compile(); err != nil {
		return nil, err
	}
	return p, nil
}

// ParseMinimumTags converts the minimum_tags setting to an int.
func ParseMinimumTags(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.Mark(errors.Wrapf(ErrInvalidMinimumTags, "got %q", s), errors.ErrInvalidConfig)
	}
	return n, nil
}

// Validate checks the policy without compiling it.
func (p *Policy) Validate() error {
	err := validation.ValidateStruct(p,
		validation.Field(&p.MinimumTags, validation.Min(0)),
		validation.Field(&p.Exclude, validation.Each(validation.By(isPattern))),
	)
	if err != nil {
		return errors.Mark(errors.Wrap(err, "validating policy"), errors.ErrInvalidConfig)
	}
	return nil
}

// Compile validates the policy and prepares its exclusion patterns.
// It must be called before Excluded.
func (p *Policy) Compile() error {
	if err := p.Validate(); err != nil {
		return err
	}

	patterns := make([]*regexp.Regexp, 0, len(p.Exclude))
	for _, expr := range p.Exclude {
		re, err := compileAnchored(expr)
		if err != nil {
			return errors.Mark(errors.Wrapf(err, "exclude pattern %q", expr), errors.ErrInvalidConfig)
		}
		patterns = append(patterns, re)
	}
	p.patterns = patterns
	return nil
}

// InBasePath reports whether path starts with the configured base path.
func (p *Policy) InBasePath(path string) bool {
	return strings.HasPrefix(path, p.BasePath)
}

// Excluded returns the first exclusion pattern matching at the start of
// path. The match does not have to cover the whole path.
func (p *Policy) Excluded(path string) (string, bool) {
	for i, re := range p.patterns {
		if re.MatchString(path) {
			return p.Exclude[i], true
		}
	}
	return "", false
}

// compileAnchored compiles expr so it only matches at the start of input.
// expr is compiled on its own first so unbalanced groups cannot escape the
// anchoring group.
func compileAnchored(expr string) (*regexp.Regexp, error) {
	if _, err := regexp.Compile(expr); err != nil {
		return nil, err
	}
	return regexp.Compile(`^(?:` + expr + `)`)
}

func isPattern(value any) error {
	s, _ := value.(string)
	if _, err := compileAnchored(s); err != nil {
		return errors.Newf("invalid regular expression %q", s)
	}
	return nil
}
