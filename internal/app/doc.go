// Package app is the composition root for the lostfound client.
//
// # Overview
//
// Setup wires configuration, the log file, user preferences and the
// Catalogue Service client into a Runtime. Every CLI command starts from a
// Runtime; Run additionally boots the TUI.
//
//	┌──────────────┐
//	│   Setup()    │
//	└──────┬───────┘
//	       ├─────> config.Load()          TOML + env overrides
//	       ├─────> logging.Open()         slog text file
//	       ├─────> prefs.Load()           theme, last directory
//	       └─────> catalogue.NewClient()  HTTP client
//
//	Run():  refresh() ──> state.Store ──> ui.Run() (blocks)
//
// # Headless driver
//
// Driver runs the search and upload workflows without a terminal UI. It
// loads the file, proposes it, submits, performs the single request and feeds
// the response back, exactly as the TUI does, then reports the effects as an
// Outcome. The find and add commands print that Outcome.
//
// # Error Handling
//
// Setup failures (bad config, unwritable log dir, bad API base) are fatal.
// A failed initial listing is not: the TUI starts and the admin page shows
// the failure.
package app
