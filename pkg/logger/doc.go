// Package logger builds configured slog.Logger instances for learnkit
// applications.
//
// The factory produces JSON output at info level by default, suitable for
// log aggregation; WithDevelopment switches to human-readable text at
// debug level. Handlers can be decorated with context extractors that
// inject request-scoped attributes (request IDs, user IDs) into every
// record at log time.
//
//	log := logger.New(logger.WithDevelopment("learnkit"))
//	m := session.New(client, session.WithLogger(log))
//
// The attr helpers keep attribute keys consistent across the module.
package logger
