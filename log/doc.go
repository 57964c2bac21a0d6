// Package log provides a small structured logging layer on top of
// [log/slog].
//
// A [Logger] is an immutable value: options are applied when it is made and
// [Logger.Wrap] or [Logger.With] return new loggers. The zero Logger discards
// everything, which lets library packages accept an optional logger without
// nil checks.
//
//	logger := log.Make(os.Stderr, log.WithLevel(log.LevelDebug))
//	logger.Info("render complete", slog.Int("bytes", n))
//
// # Levels
//
// [LevelTrace] sits below [LevelDebug] and is used by the template engine to
// report lexer, parser and evaluator progress.
//
// # Formats
//
// [FormatJSON] (default) and [FormatText]. With [WithPretty] enabled, both
// are colorized for terminals.
//
// # Default logger
//
// Package-level functions such as [Info] and [ErrorContext] write through a
// process default logger that [Config] reconfigures.
package log
