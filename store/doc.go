// Package store provides the reactive document store the builder core is
// built on.
//
// # Reference-identity reactivity
//
// The store holds one live *document.Document. Mutation follows a strict
// copy-then-publish contract: callers build a new top-level value for a
// field (for example a shallow copy of the canvases map with one canvas
// replaced) and publish it with Replace. The reference swap is the sole
// reactivity signal; the store never deep-compares, so callers that replace
// a field with structurally identical data get a notification anyway.
//
// # Routing
//
// NewRouted splits a document across two backing stores: shared data
// (canvases and the item id counter) goes to a store owned by the shared
// state registry, while per-instance view state (selection, viewport, grid
// visibility, breakpoints) stays in a store owned by the instance. Get
// returns a merged document whose Canvases field is the live shared map, so
// every instance of a sharing group observes the same underlying object.
package store
