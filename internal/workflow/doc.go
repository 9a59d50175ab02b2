// Package workflow implements the submission state machine shared by the
// search and admin-upload pages.
//
// # Model
//
// A Workflow holds at most one Candidate and is always in exactly one Phase:
//
//	Idle ──Propose(image)──▶ Previewing ──Submit──▶ Submitting
//	 ▲                         │    ▲                  │
//	 └────────Cancel───────────┘    └──failure/empty───┤
//	 ▲                                                 │
//	 └──────────────────success────────────────────────┘
//
// The response step ("settled") never persists as a phase: a success with
// reset folds into Idle, an error or empty search folds into Previewing with
// the candidate intact so the user can retry or cancel.
//
// # Transition
//
// Transition(role, state, event) returns the next state and an ordered list
// of Effects. It performs no I/O. Adapters (the TUI, the headless driver)
// translate their own input into Events and carry out the Effects:
// StartRequest issues the single network call, SetBusy toggles the submit
// control, ShowError/ShowSuccess raise banners, RefreshList reloads the
// catalogue after an upload.
//
// While Submitting, Propose, Cancel and Submit are ignored, so a page never
// has two requests outstanding.
//
// # Request ids
//
// Workflow.Handle stamps each Submit with a fresh request id and remembers it
// as State.Pending. A SearchDone or UploadDone whose id does not match the
// pending one is dropped without effects.
//
// # Tiers
//
// Classify buckets a similarity score: above 0.85 is TierHigh, above 0.60 is
// TierPossible, anything else TierLow.
package workflow
