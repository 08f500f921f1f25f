// Package logger builds log/slog loggers for the OAuth clients and the
// applications hosting them.
//
// Loggers write JSON and can enrich every record with values pulled from the
// context (request id, provider name) through ContextExtractor functions:
//
//	requestID := func(ctx context.Context) (slog.Attr, bool) {
//		id, ok := ctx.Value(requestIDKey{}).(string)
//		return slog.String("request_id", id), ok && id != ""
//	}
//
//	log := logger.New(logger.WithLevel(slog.LevelDebug), logger.WithExtractors(requestID))
//	client, err := oauth.NewQQClient(cfg, oauth.WithLogger(log))
//
// NewWithSentry additionally forwards warnings and errors to Sentry and falls
// back to plain JSON output when no DSN is configured.
//
// NewNope discards everything; the oauth package uses it when no logger is given.
package logger
