// Package ui provides the lostfound terminal interface.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program with two pages. The Search page looks up a
// lost item by image; the Admin page catalogues found items and manages the
// listing. Each page owns a workflow.Workflow and the widgets it drives: a
// capture.Zone with its file chooser, a preview, the submit button and, on the
// Admin page, a description input.
//
// # Event Flow
//
//  1. Keys, pastes and mouse events become workflow events (Propose, Submit,
//     Cancel). A paste acts as a drop; mouse motion over the drop zone toggles
//     the drag highlight.
//  2. Workflow.Handle returns effects; applyEffects is the only code that
//     turns them into widget changes and commands.
//  3. File reads, catalogue requests and deletes run as tea.Cmds and report
//     back as messages. Responses for a superseded request are logged and
//     dropped.
//
// # Catalogue
//
// The Admin page lists the catalogue from state.Store. Every load replaces
// the whole listing; a failed load keeps the previous cards and raises a
// banner. Deleting an entry goes through a confirmation modal and never
// touches workflow state.
//
// # Key Bindings
//
//   - tab, 1, 2: switch page
//   - o: choose a file
//   - enter or s: search or upload
//   - esc or x: cancel the selection
//   - i: edit the description (Admin)
//   - j/k, g/G: move through the catalogue
//   - r: reload the catalogue
//   - d: delete the selected entry
//   - T: cycle theme
//   - ?: help
//   - q or ctrl+c: quit
package ui
