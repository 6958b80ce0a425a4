// Package client contains the remote side of the photoshare client.
//
// # Overview
//
// The package provides:
//  1. Transport-agnostic API contracts: Client (register, login and the
//     profile endpoints) and FeedClient (post/comment readers).
//  2. A concrete HTTP/JSON implementation (see HTTPClient) that reads the
//     session token from a TokenLoader on every authenticated call, sends it
//     as "Authorization: JWT <token>", tags requests with X-Request-ID and
//     trace-context headers, and maps HTTP failures to sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Failures are *APIError values that unwrap to one of the sentinels, so
// callers match with errors.Is: ErrUnavailable, ErrAuthRejected,
// ErrUnauthorized, ErrRejected, ErrProfileNotFound.
//
// The client keeps no session state of its own; it is safe for concurrent
// use and honours context cancellation on every call.
package client
