// Package controller keeps a rendered species list in sync with the remote
// collection and mediates create, update and delete actions.
//
// The Controller owns the form state machine:
//
//	Closed ──OpenCreateForm──▶ CreateMode
//	Closed ──PrepareEdit─────▶ EditMode
//	CreateMode/EditMode ──CloseForm or successful SubmitForm──▶ Closed
//
// FormState.EditingID decides what a submit does: zero creates through the
// collection endpoint, non-zero updates the record it addresses. Every
// successful mutation is followed by exactly one full reload of the list;
// failed mutations never reload.
//
// The controller is surface agnostic. A View renders the list and the form and
// a Dialogs implementation provides the blocking confirm and notification
// primitives. The web server, the terminal UI and the one-shot CLI commands
// each provide their own.
package controller
