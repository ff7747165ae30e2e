// Package pipeline drives one ingest batch: it discovers unseen source
// images, advances each through a strict per-item status sequence
// (discovered, converted, recognized, described, slotted, written,
// archived), and finishes the run with index regeneration, state
// persistence, and publication side effects.
//
// The runner is single-threaded and fully synchronous. It suspends only at
// the interactive metadata step, which blocks indefinitely on human input.
// Durable state changes happen exactly once, after the whole batch, and
// never in dry-run.
package pipeline
