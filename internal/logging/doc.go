// Package logging provides structured logging for the fmcheck CLI using slog.
//
// Logs always go to stderr so that they never interleave with the lint
// diagnostics fmcheck prints on stdout. Both text and JSON formats are
// supported; the text handler colours its output when stderr is a terminal.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  logging.LevelFromVerbosity(verbosity),
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	logger.Debug("skipping file", "path", path)
//
// # Testing
//
// For tests, use [ForTest] to capture log output via the testing framework:
//
//	func TestSomething(t *testing.T) {
//		logger := logging.ForTest(t)
//		// logs appear in test output on failure
//	}
package logging
