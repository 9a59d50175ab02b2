// Package state holds the catalogue listing shared between the list loaders
// and the UI.
//
// # Overview
//
// Loads run as background commands and write the result into a Store; the
// UI reads a Snapshot whenever it renders the admin page's card list.
//
//	load command:                  UI:
//	┌───────────────────┐         ┌───────────────────┐
//	│ client.List(ctx)  │         │                   │
//	│        ↓          │         │                   │
//	│ store.Update(...) │────────→│ store.Snapshot()  │
//	└───────────────────┘ (mutex) │        ↓          │
//	                              │ present.List(...) │
//	                              └───────────────────┘
//
// # Update Semantics
//
// The listing is never patched. A successful load replaces every entry; an
// empty load clears them. A failed load keeps the previous entries and
// records the error:
//
//	store.Update(entries, nil)  → Entries = entries, LastError = nil
//	store.Update(nil, err)      → Entries unchanged, LastError = err
//
// ConsecutiveFailures counts failed loads since the last success; IsOffline
// reports two or more.
//
// # Copying
//
// Update and Snapshot copy the entry slice so the UI can never mutate what a
// later load replaces. The zero Store is ready to use.
package state
