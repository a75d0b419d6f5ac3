// Package client contains the transport layer of the Warranty Reminder
// client.
//
// # Overview
//
// The package provides:
//  1. A transport contract (see the Client interface) with the four verbs
//     Get, Post, Put and Delete against the backend base URL.
//  2. A concrete HTTP implementation (see HTTPClient) that reads the bearer
//     credential from a TokenSource before every send, tags each request
//     with an X-Request-ID and maps response statuses to sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Non-2xx responses come back as *APIError. Its Kind is ErrUnauthorized
// (401, 403), ErrNotFound (404) or ErrUnavailable (502, 503, 504), so callers
// can match with errors.Is and still read the backend message through
// MessageOf. Transport failures wrap ErrUnavailable; a cancelled context is
// returned as is.
//
// The client never retries and never refreshes the credential. Reacting to
// ErrUnauthorized is up to the caller.
package client
