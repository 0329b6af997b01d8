// Package builder is the public facade of the grid builder core.
//
// A Builder wires a reactive document store, an undo/redo manager and an
// event bus behind a typed operation surface. Every mutating operation
// performs, in order: construct the appropriate command from current state,
// apply its forward effect, push it to the undo manager, and emit a domain
// event with a structured payload. Each operation is one atomic
// user-visible action.
//
// # Sharing
//
// A builder created with WithSharing joins the shared document registered
// under its key: canvases and the item id counter live in the shared store,
// while viewport, selection, grid visibility and breakpoints stay private
// to the instance. Undo history is shared per key. Closing the builder
// detaches it; the shared state is disposed when the last instance
// detaches.
//
// # Execution model
//
// The core is single-threaded and cooperative: all store mutation, command
// execution and event dispatch happen synchronously within the calling
// operation. Callers must not re-enter builder operations from an event
// callback fired by the same operation. The optional before-delete hook is
// the one place an operation can wait: RemoveItem blocks on it (with the
// caller's context) before mutating anything.
package builder
