// Package cli provides the interactive Warranty Reminder command-line client.
//
// It wires configuration, the local credential database, the REST API
// client, the session store and a route table of screens behind a REPL.
// Typical flow: the stored credential is validated in the background while
// the welcome screen is shown; protected screens wait for that check and
// send anonymous users to the login screen.
//
// Key features:
//   - Login / Signup / Google sign-in / Logout
//   - Forgot and reset password
//   - List, search, sort and delete warranties
//   - Create and edit warranties with an attached document
//   - Show a warranty and download its document
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, runREPL and the screens for details.
package cli
