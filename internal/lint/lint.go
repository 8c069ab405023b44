package lint

import (
	"context"
	"log/slog"

	"github.com/thoreinstein/fmcheck/internal/config"
	"github.com/thoreinstein/fmcheck/internal/errors"
	"github.com/thoreinstein/fmcheck/internal/logging"
	"github.com/thoreinstein/fmcheck/internal/validator"
	"github.com/thoreinstein/fmcheck/pkg/frontmatter"
)

// Summary counts what happened to each path given to Run.
type Summary struct {
	Checked int
	Skipped int
	Failed  int
}

// OK reports whether every checked file passed.
func (s Summary) OK() bool {
	return s.Failed == 0
}

// Linter checks batches of files against a policy.
type Linter struct {
	policy   *config.Policy
	reporter *validator.Reporter
	logger   *slog.Logger
}

// Option configures a Linter.
type Option func(*Linter)

// WithLogger sets the logger used for progress messages.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Linter) {
		l.logger = logger
	}
}

// New creates a Linter. The policy is compiled if it has not been already.
func New(policy *config.Policy, reporter *validator.Reporter, opts ...Option) (*Linter, error) {
	if policy == nil {
		policy = config.Default()
	}
	if err := policy.Compile(); err != nil {
		return nil, err
	}

	l := &Linter{
		policy:   policy,
		reporter: reporter,
		logger:   logging.NewDiscard(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// CheckFile parses the front-matter of path and checks it against the
// policy. A file without front-matter yields a single issue. Read and
// decode failures are returned as errors.
func (l *Linter) CheckFile(ctx context.Context, path string) (*validator.Result, error) {
	doc, err := frontmatter.ParseFile(path)
	if errors.Is(err, frontmatter.ErrNoFrontmatter) {
		result := validator.NewResult(path)
		result.Add(RuleFrontmatter, "missing front-matter")
		return result, nil
	}
	if err != nil {
		return nil, err
	}

	l.logger.Log(ctx, logging.LevelTrace, "decoded front-matter",
		"path", path, "format", string(doc.Format), "keys", len(doc.Metadata))

	result, err := CheckMetadata(path, doc.Metadata, l.policy)
	if err != nil {
		return nil, errors.Wrapf(err, "checking %s", path)
	}
	return result, nil
}

// Run checks each path in order and reports issues as it goes.
//
// The batch fails if any checked file failed, no matter where it appears in
// the list. A fatal error stops the run immediately; diagnostics already
// written stay written.
func (l *Linter) Run(ctx context.Context, paths []string) (Summary, error) {
	var sum Summary

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		if skip, reason := l.skip(path); skip {
			l.logger.Debug("skipping file", "path", path, "reason", reason)
			sum.Skipped++
			continue
		}

		result, err := l.CheckFile(ctx, path)
		if err != nil {
			return sum, err
		}
		sum.Checked++

		if err := l.reporter.Report(result); err != nil {
			return sum, err
		}
		if result.Failed() {
			sum.Failed++
			l.logger.Info("file failed", "path", path, "rules", result.Fields())
		} else {
			l.logger.Debug("file passed", "path", path)
		}
	}

	return sum, nil
}

func (l *Linter) skip(path string) (bool, string) {
	if !l.policy.InBasePath(path) {
		return true, "outside base path " + l.policy.BasePath
	}
	if pattern, ok := l.policy.Excluded(path); ok {
		return true, "matches exclude pattern " + pattern
	}
	return false, ""
}
