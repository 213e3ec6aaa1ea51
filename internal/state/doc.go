// Package state holds the in-memory stores shared by the synchronization
// layer and the UI.
//
// # Stores
//
//   - SessionStore: the logged-in identity, or none
//   - PostStore: posts in insertion order; Replace, Append, Update, Remove
//   - AuthorStore: the author directory; Replace only
//   - NotificationStore: at most one transient message with auto-expiry
//
// Stores groups them so a single value can be injected into blog.Service and
// the UI. There are no package-level singletons.
//
// # Concurrency Model
//
// Bubble Tea commands and the optional refresh poller run on their own
// goroutines, so every store guards its data with a mutex and hands out
// defensive copies. Mutations only go through the typed operations above.
// Two actions running at once interleave between store operations; nothing
// serializes a whole action.
//
// # Notification Timers
//
// Publish replaces the current message and stops the previous expiry timer.
// A generation counter guards against a timer that fired just before Stop,
// so a stale timer never clears a newer message:
//
//	store.Publish("first", 5*time.Second)
//	store.Publish("A new T By A", 5*time.Second) // first's timer is cancelled
//
// Messages starting with "A new" are successes; everything else is a failure.
package state
