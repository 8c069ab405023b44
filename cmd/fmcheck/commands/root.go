// Package commands implements the fmcheck command line.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thoreinstein/fmcheck/cmd"
	"github.com/thoreinstein/fmcheck/internal/config"
	"github.com/thoreinstein/fmcheck/internal/errors"
	"github.com/thoreinstein/fmcheck/internal/lint"
	"github.com/thoreinstein/fmcheck/internal/logging"
	"github.com/thoreinstein/fmcheck/internal/validator"
)

// debugEnv raises the log level when no -v flag is given.
const debugEnv = "FMCHECK_DEBUG"

// rootOptions holds the ambient flags that are not part of the policy.
type rootOptions struct {
	verbosity int
	quiet     bool
	logFormat string
	logFile   string

	// closeLog releases the --log-file handle, if one was opened.
	closeLog func() error
}

// NewRootCmd builds the fmcheck command with a fresh flag set and viper
// instance, so it can be executed more than once in a process.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	v := viper.New()
	config.Init(v)

	rootCmd := &cobra.Command{
		Use:   "fmcheck [flags] [filenames...]",
		Short: "Check content files for required front-matter fields",
		Long: `fmcheck is a pre-commit hook that checks the front-matter of content
files for a title, a summary or description, a date and a minimum number
of tags.

The front-matter format is chosen by the first line of each file:
"+++" for TOML, "---" for YAML and "{" for JSON. A file whose first line
is none of these is reported as missing front-matter.

Every problem is printed on its own line to standard output. The exit
status is 1 if any checked file has a problem, and 2 if a file cannot be
read or its front-matter cannot be parsed.

Flags can also be set through FMCHECK_-prefixed environment variables,
for example FMCHECK_MINIMUM_TAGS=3.`,
		Example: `  # Check files the way pre-commit calls the hook
  fmcheck content/posts/hello.md content/posts/world.md

  # Only check files under content/, skipping drafts
  fmcheck --base_path content/ --exclude_file 'content/drafts/' content/**/*.md

  # Require three tags and do not require a date
  fmcheck --minimum_tags 3 --ignore_date content/posts/hello.md`,
		Version: cmd.VersionString(),
		Args:    cobra.ArbitraryArgs,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			return setupLogging(c, opts)
		},
		RunE: func(c *cobra.Command, args []string) error {
			defer opts.close()
			return runCheck(c, v, args)
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	rootCmd.SetVersionTemplate("fmcheck version {{.Version}}\n")

	flags := rootCmd.Flags()
	flags.String(config.KeyBasePath, "", "only check files whose path starts with this prefix")
	flags.StringArray(config.KeyExcludeFile, nil, "skip files matching this regular expression at the start of the path (repeatable)")
	flags.Bool(config.KeyIgnoreTitle, false, "do not check title")
	flags.Bool(config.KeyIgnoreSummary, false, "do not check summary and description")
	flags.Bool(config.KeyIgnoreDate, false, "do not check date")
	flags.Bool(config.KeyIgnoreTags, false, "do not check tags")
	flags.String(config.KeyMinimumTags, "2", "minimum number of tags")

	for _, key := range []string{
		config.KeyBasePath,
		config.KeyExcludeFile,
		config.KeyIgnoreTitle,
		config.KeyIgnoreSummary,
		config.KeyIgnoreDate,
		config.KeyIgnoreTags,
		config.KeyMinimumTags,
	} {
		// Only fails for unknown flag names
		_ = v.BindPFlag(key, flags.Lookup(key))
	}

	pflags := rootCmd.PersistentFlags()
	pflags.CountVarP(&opts.verbosity, "verbose", "v", "increase verbosity level (e.g., -v, -vv)")
	pflags.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress non-error log output")
	pflags.StringVar(&opts.logFormat, "log-format", "text", "log format: text, json")
	pflags.StringVar(&opts.logFile, "log-file", "", "also write logs to file in JSON format")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.NewUserError(err, "Run 'fmcheck --help' for usage")
	})

	return rootCmd
}

func (o *rootOptions) close() {
	if o.closeLog != nil {
		_ = o.closeLog()
		o.closeLog = nil
	}
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(c *cobra.Command, opts *rootOptions) error {
	if opts.quiet && opts.verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "Pick one of -q or -v")
	}

	var level slog.Level
	if opts.quiet {
		level = slog.LevelError
	} else {
		v := opts.verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv(debugEnv); ok {
				switch val {
				case "1", "true":
					v = 2
				case "2":
					v = 3
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	format, err := logging.ParseFormat(opts.logFormat)
	if err != nil {
		return errors.NewUserError(err, "Use --log-format text or --log-format json")
	}

	cfg := logging.Config{Level: level, Format: format, Output: c.ErrOrStderr()}
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(errors.Wrap(err, "opening log file"), "Check the --log-file path")
		}
		opts.closeLog = f.Close
		cfg.Tee = f
	}

	logger := logging.New(cfg)
	slog.SetDefault(logger)

	ctx := c.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	c.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// runCheck loads the policy and lints every path given on the command line.
func runCheck(c *cobra.Command, v *viper.Viper, paths []string) error {
	ctx := c.Context()
	logger := logging.FromContext(ctx)

	// Viper's string-slice conversion drops empty entries, and an empty
	// pattern must still exclude every path.
	if f := c.Flags().Lookup(config.KeyExcludeFile); f != nil && f.Changed {
		exclude, err := c.Flags().GetStringArray(config.KeyExcludeFile)
		if err != nil {
			return errors.NewConfigError(err)
		}
		v.Set(config.KeyExcludeFile, exclude)
	}

	policy, err := config.Load(v)
	if err != nil {
		return errors.NewConfigError(err)
	}
	logger.Debug("loaded policy",
		"base_path", policy.BasePath,
		"exclude", policy.Exclude,
		"minimum_tags", policy.MinimumTags)

	linter, err := lint.New(policy, validator.NewReporter(c.OutOrStdout()), lint.WithLogger(logger))
	if err != nil {
		return errors.NewConfigError(err)
	}

	sum, err := linter.Run(ctx, paths)
	if err != nil {
		return errors.NewSystemError(err, "")
	}
	logger.Info("check complete", "checked", sum.Checked, "skipped", sum.Skipped, "failed", sum.Failed)

	if !sum.OK() {
		return errors.NewExitError(errors.ErrLintFailed, errors.ExitUser)
	}
	return nil
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := NewRootCmd().ExecuteContext(ctx)
	printError(os.Stderr, err)
	return errors.ExitCode(err)
}

// printError writes err and any suggestion to w. Lint failures are not
// repeated since their diagnostics are already on stdout.
func printError(w io.Writer, err error) {
	if err == nil || errors.Is(err, errors.ErrLintFailed) {
		return
	}

	fmt.Fprintf(w, "%s %v\n", color.New(color.FgRed, color.Bold).Sprint("Error:"), err)

	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) && exitErr.Suggestion != "" {
		fmt.Fprintf(w, "%s\n", exitErr.Suggestion)
	}
}
