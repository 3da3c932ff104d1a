// Package logger builds slog loggers and provides attribute helpers with
// consistent key names.
//
//	log := logger.New(
//		logger.WithProduction("polljoyd"),
//		logger.WithContextValue("request_id", requestIDKey{}),
//	)
//	log.InfoContext(ctx, "session registered",
//		logger.Operation("register"),
//		logger.Error(err), // dropped when err is nil
//	)
//
// Libraries in this module take a *slog.Logger option and default to
// Discard, so nothing is written unless the caller wires a logger in.
package logger
