// Package client contains the HTTP client the flatauth CLI uses to reach
// the server.
//
// Replies are plain text. Signup and Login hand back the status code and the
// server's message as-is; only transport failures are errors, reported as
// ErrUnavailable so callers can match them with errors.Is.
package client
