package workflow

import "github.com/five82/lostfound/internal/catalogue"

// Event is an input to Transition.
type Event interface{ isEvent() }

// Propose offers a file as the new candidate.
type Propose struct{ File File }

// Cancel discards the candidate.
type Cancel struct{}

// Submit starts the page's request. Info is the admin description.
type Submit struct {
	Info      string
	RequestID string
}

// SearchDone reports a finished search. Match is nil when nothing was found.
type SearchDone struct {
	RequestID string
	Match     *catalogue.Match
	Err       error
}

// UploadDone reports a finished upload.
type UploadDone struct {
	RequestID string
	Err       error
}

func (Propose) isEvent()    {}
func (Cancel) isEvent()     {}
func (Submit) isEvent()     {}
func (SearchDone) isEvent() {}
func (UploadDone) isEvent() {}

// Effect is an instruction for the adapter driving the workflow.
type Effect interface{ isEffect() }

// ShowPreview renders the candidate's preview.
type ShowPreview struct{ File File }

// HidePreview removes the preview.
type HidePreview struct{}

// ShowInput restores the input surface (drop zone and chooser).
type ShowInput struct{}

// HideInput hides the input surface.
type HideInput struct{}

// ShowResult renders a search match, replacing any prior result.
type ShowResult struct{ Match catalogue.Match }

// HideResult hides any stale result.
type HideResult struct{}

// ShowError raises a transient error banner.
type ShowError struct{ Message string }

// ShowSuccess raises a transient success banner.
type ShowSuccess struct{ Message string }

// SetBusy disables (or re-enables) the submit control, swaps its label and
// toggles the global loading indicator.
type SetBusy struct {
	Busy  bool
	Label string
}

// StartRequest issues exactly one network request for the candidate.
type StartRequest struct {
	RequestID string
	Role      Role
	File      File
	Info      string
}

// ClearPicker resets the file chooser's selection.
type ClearPicker struct{}

// ClearInfo empties the admin description field.
type ClearInfo struct{}

// RefreshList reloads the whole catalogue listing.
type RefreshList struct{}

func (ShowPreview) isEffect()  {}
func (HidePreview) isEffect()  {}
func (ShowInput) isEffect()    {}
func (HideInput) isEffect()    {}
func (ShowResult) isEffect()   {}
func (HideResult) isEffect()   {}
func (ShowError) isEffect()    {}
func (ShowSuccess) isEffect()  {}
func (SetBusy) isEffect()      {}
func (StartRequest) isEffect() {}
func (ClearPicker) isEffect()  {}
func (ClearInfo) isEffect()    {}
func (RefreshList) isEffect()  {}
