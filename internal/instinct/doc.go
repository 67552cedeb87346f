// Package instinct implements a persisted store of learned patterns
// ("instincts") with confidence tracking.
//
// An instinct is a discrete pattern observed during agent sessions,
// identified by a caller-chosen ID and scored with a confidence in
// [0.1, 1.0]. Re-observing a pattern reinforces it, unused patterns decay
// over time, and stores on different machines can be reconciled through
// export/import with a highest-confidence-wins merge rule.
//
// The store persists as a single pretty-printed JSON document. Every public
// operation is a full load -> mutate -> save cycle against that file; there
// is no in-process cache between calls. Calls within one process are
// serialized by the store's mutex, so each cycle is internally consistent.
// Concurrent writers from other processes still race last-writer-wins; the
// Monitor makes such external writes visible instead of silent.
package instinct
