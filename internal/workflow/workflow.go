package workflow

import (
	"strings"

	"github.com/five82/lostfound/internal/catalogue"
)

// Role selects which page a Workflow serves.
type Role int

const (
	RoleSearch Role = iota
	RoleUpload
)

func (r Role) String() string {
	if r == RoleUpload {
		return "upload"
	}
	return "search"
}

// Phase is the workflow's position in the transition table.
type Phase int

const (
	// Idle: no candidate, input surface active.
	Idle Phase = iota
	// Previewing: candidate held, preview shown, actions enabled.
	Previewing
	// Submitting: one request outstanding; everything else is blocked.
	Submitting
)

func (p Phase) String() string {
	switch p {
	case Previewing:
		return "previewing"
	case Submitting:
		return "submitting"
	default:
		return "idle"
	}
}

// User-facing messages.
const (
	MsgNotImage      = "Please select an image file"
	MsgNoCandidate   = "Please select an image first"
	MsgNoMatch       = "No similar image found in the catalogue"
	MsgUploaded      = "Image uploaded"
	MsgSearchBusy    = "Searching..."
	MsgUploadBusy    = "Uploading..."
	MsgSearchLabel   = "Search"
	MsgUploadLabel   = "Upload"
	imageMediaPrefix = "image/"
)

// File is a proposed image.
type File struct {
	Name      string
	Path      string
	MediaType string
	Data      []byte
}

// IsImage reports whether the declared media type is an image type.
func (f File) IsImage() bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(f.MediaType)), imageMediaPrefix)
}

// Payload converts the file into the network representation.
func (f File) Payload() catalogue.File {
	return catalogue.File{Name: f.Name, MediaType: f.MediaType, Data: f.Data}
}

// Candidate is the single staged selection.
type Candidate struct {
	File File
	Info string // upload role only; set when the request starts
}

// State is the full workflow state. The zero value is Idle.
type State struct {
	Phase     Phase
	Candidate *Candidate
	// Pending is the request id of the outstanding submission.
	Pending string
}

// Workflow owns one page's state. It is not safe for concurrent use; the UI
// drives it from a single event loop.
type Workflow struct {
	role  Role
	state State
	newID func() string
}

// New returns an Idle workflow for role.
func New(role Role) *Workflow {
	return &Workflow{role: role, newID: catalogue.NewRequestID}
}

// Role returns the page role.
func (w *Workflow) Role() Role { return w.role }

// State returns a copy of the current state.
func (w *Workflow) State() State { return w.state }

// Phase returns the current phase.
func (w *Workflow) Phase() Phase { return w.state.Phase }

// Candidate returns the staged candidate, or nil.
func (w *Workflow) Candidate() *Candidate {
	if w.state.Candidate == nil {
		return nil
	}
	c := *w.state.Candidate
	return &c
}

// Handle applies ev and returns the effects the caller must perform. Submit
// events without a RequestID are stamped with a fresh one.
func (w *Workflow) Handle(ev Event) []Effect {
	if submit, ok := ev.(Submit); ok && submit.RequestID == "" {
		submit.RequestID = w.newID()
		ev = submit
	}
	next, effects := Transition(w.role, w.state, ev)
	w.state = next
	return effects
}

// SubmitLabel is the submit control's idle label for role.
func SubmitLabel(role Role) string {
	if role == RoleUpload {
		return MsgUploadLabel
	}
	return MsgSearchLabel
}

// BusyLabel replaces the submit label while a request is outstanding.
func BusyLabel(role Role) string {
	if role == RoleUpload {
		return MsgUploadBusy
	}
	return MsgSearchBusy
}

// trimInfo drops surrounding whitespace and keeps the text otherwise as typed.
func trimInfo(info string) string {
	return strings.TrimSpace(info)
}
