// Package logging builds the structured slog logger shared by the session,
// the translation breaker and the CLI.
package logging
