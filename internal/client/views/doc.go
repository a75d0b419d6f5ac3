// Package views holds the screen state of the Warranty Reminder client:
// the warranty list, the shared create/edit form, the detail page and the
// authentication forms. Views own their state and talk to the backend
// through the services package; rendering goes to an io.Writer.
package views
