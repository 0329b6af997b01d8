// Package history provides the Command interface and the bounded undo/redo
// manager the builder core pushes commands onto.
//
// # Commands
//
// A Command captures whatever pre/post snapshot it needs to invert and
// reapply one user-visible action. Commands are pushed already applied:
// Push never calls Redo. A missing canvas or item at undo/redo time is a
// silent no-op by policy, never an error.
//
// # The position model
//
// The manager keeps a single bounded list of commands plus a position in
// [-1, len-1]; -1 means nothing to undo. Pushing discards everything after
// the position (any redo-able future is lost) and appends. Once the list
// reaches capacity the oldest entry is dropped instead of advancing the
// position, giving a sliding window whose position stays pinned at the end.
package history
