// Package registry provides the reference-counted shared state registry.
//
// Independent builder instances that pass the same opaque sharing key get
// the same {store, undo history} pair, so they edit one logical document
// while keeping their view state (viewport, selection, breakpoints) in
// their own per-instance stores. The registry creates an entry on first
// use, counts instance attachments, and synchronously disposes the entry
// when the last instance detaches: the store's subscriptions are released
// and the undo history cleared before the key is deleted.
//
// Over-release is tolerated, not fatal: an instance detaching after a
// sibling already disposed the key is clamped and logged. Sharing is
// intra-process only.
package registry
