// Package diagnostics models failures, debug messages and execution traces
// so a view can render its own error state with the same machinery it uses
// for measurement data.
//
// A Recorder is created per request. Its Handler can be combined with the
// process logger through Tee so that log records issued while handling the
// request become debug messages:
//
//	rec := diagnostics.NewRecorder()
//	logger := slog.New(diagnostics.Tee(slog.Default().Handler(), rec.Handler(slog.LevelDebug)))
//	logger.Info("loaded channel", "uuid", id)
//	doc.Add(rec.Bundle())
package diagnostics
