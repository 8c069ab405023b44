// Package config builds the front-matter validation policy for fmcheck.
//
// The policy comes from command-line flags bound into a [viper.Viper]
// instance, with FMCHECK_-prefixed environment variables as a fallback
// (for example FMCHECK_MINIMUM_TAGS=3). No configuration file is read.
//
// # Loading
//
//	v := viper.New()
//	config.Init(v)
//	_ = v.BindPFlags(cmd.Flags())
//	policy, err := config.Load(v)
//	if err != nil {
//	    return err // wraps errors.ErrInvalidConfig
//	}
//
// # Validation
//
// [Load] parses minimum_tags eagerly: a value that is not an integer is a
// configuration error rather than something discovered while checking
// files. Exclusion patterns must compile as Go regular expressions.
package config
