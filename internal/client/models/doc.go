// Package models defines the client-side data models of Warranty Reminder:
// the signed-in user, warranty records as the backend returns them, and the
// session snapshot shared with the screens.
package models
