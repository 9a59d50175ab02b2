package workflow

import (
	"errors"
	"reflect"
	"testing"

	"github.com/five82/lostfound/internal/catalogue"
)

var (
	jpeg = File{Name: "photo.jpg", MediaType: "image/jpeg", Data: []byte{0xff, 0xd8}}
	png  = File{Name: "img.png", MediaType: "image/png", Data: []byte{0x89, 'P'}}
)

func newTestWorkflow(role Role) *Workflow {
	w := New(role)
	n := 0
	w.newID = func() string {
		n++
		return "req-" + string(rune('0'+n))
	}
	return w
}

func hasEffect[T Effect](effects []Effect) (T, bool) {
	for _, e := range effects {
		if v, ok := e.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func countEffects[T Effect](effects []Effect) int {
	n := 0
	for _, e := range effects {
		if _, ok := e.(T); ok {
			n++
		}
	}
	return n
}

func TestPropose_RejectsNonImages(t *testing.T) {
	for _, mediaType := range []string{"", "text/plain", "application/pdf", "video/mp4", "application/octet-stream", "imagex/png"} {
		for _, start := range []*Workflow{newTestWorkflow(RoleSearch), previewing(t, RoleSearch)} {
			before := start.State()
			effects := start.Handle(Propose{File: File{Name: "x", MediaType: mediaType}})
			if !reflect.DeepEqual(start.State(), before) {
				t.Fatalf("%q: state changed from %+v to %+v", mediaType, before, start.State())
			}
			msg, ok := hasEffect[ShowError](effects)
			if !ok || msg.Message != MsgNotImage || len(effects) != 1 {
				t.Fatalf("%q: effects = %#v, want single ShowError", mediaType, effects)
			}
		}
	}
}

func TestPropose_ImageEntersPreviewing(t *testing.T) {
	w := newTestWorkflow(RoleSearch)
	effects := w.Handle(Propose{File: jpeg})

	if w.Phase() != Previewing {
		t.Fatalf("phase = %v, want previewing", w.Phase())
	}
	if c := w.Candidate(); c == nil || c.File.Name != "photo.jpg" {
		t.Fatalf("candidate = %#v, want photo.jpg", c)
	}
	want := []Effect{ShowPreview{File: jpeg}, HideInput{}, HideResult{}}
	if !reflect.DeepEqual(effects, want) {
		t.Fatalf("effects = %#v, want %#v", effects, want)
	}
}

func TestPropose_ReplacesCandidate(t *testing.T) {
	w := previewing(t, RoleUpload)
	w.Handle(Propose{File: png})
	if c := w.Candidate(); c == nil || c.File.Name != "img.png" {
		t.Fatalf("candidate = %#v, want img.png", c)
	}
	if w.Phase() != Previewing {
		t.Fatalf("phase = %v, want previewing", w.Phase())
	}
}

func TestPropose_MediaTypeCaseInsensitive(t *testing.T) {
	w := newTestWorkflow(RoleSearch)
	w.Handle(Propose{File: File{Name: "a.png", MediaType: " Image/PNG"}})
	if w.Phase() != Previewing {
		t.Fatalf("phase = %v, want previewing", w.Phase())
	}
}

func TestCancel_ReturnsToIdle(t *testing.T) {
	for _, role := range []Role{RoleSearch, RoleUpload} {
		w := previewing(t, role)
		effects := w.Handle(Cancel{})
		if w.Phase() != Idle || w.Candidate() != nil {
			t.Fatalf("%v: state = %+v, want idle without candidate", role, w.State())
		}
		for _, want := range []Effect{ClearPicker{}, ShowInput{}, HidePreview{}, HideResult{}} {
			if !containsEffect(effects, want) {
				t.Fatalf("%v: effects %#v missing %#v", role, effects, want)
			}
		}
		_, clearsInfo := hasEffect[ClearInfo](effects)
		if clearsInfo != (role == RoleUpload) {
			t.Fatalf("%v: ClearInfo present = %v", role, clearsInfo)
		}
	}
}

func TestCancel_IdleIsNoop(t *testing.T) {
	w := newTestWorkflow(RoleSearch)
	if effects := w.Handle(Cancel{}); len(effects) != 0 {
		t.Fatalf("effects = %#v, want none", effects)
	}
}

func TestSubmit_WithoutCandidate(t *testing.T) {
	w := newTestWorkflow(RoleSearch)
	effects := w.Handle(Submit{})
	if w.Phase() != Idle {
		t.Fatalf("phase = %v, want idle", w.Phase())
	}
	if countEffects[StartRequest](effects) != 0 {
		t.Fatalf("submit without candidate started a request")
	}
	if msg, ok := hasEffect[ShowError](effects); !ok || msg.Message != MsgNoCandidate {
		t.Fatalf("effects = %#v, want %q", effects, MsgNoCandidate)
	}
}

func TestSubmit_StartsExactlyOneRequest(t *testing.T) {
	w := previewing(t, RoleUpload)
	effects := w.Handle(Submit{Info: "  blue backpack "})

	if w.Phase() != Submitting {
		t.Fatalf("phase = %v, want submitting", w.Phase())
	}
	if countEffects[StartRequest](effects) != 1 {
		t.Fatalf("effects = %#v, want exactly one StartRequest", effects)
	}
	start, _ := hasEffect[StartRequest](effects)
	if start.RequestID == "" || start.RequestID != w.State().Pending {
		t.Fatalf("request id = %q, pending = %q", start.RequestID, w.State().Pending)
	}
	if start.Info != "blue backpack" || start.Role != RoleUpload || start.File.Name != "photo.jpg" {
		t.Fatalf("StartRequest = %#v", start)
	}
	busy, _ := hasEffect[SetBusy](effects)
	if !busy.Busy || busy.Label != MsgUploadBusy {
		t.Fatalf("SetBusy = %#v, want busy uploading label", busy)
	}

	// Every further trigger while submitting is blocked.
	for _, ev := range []Event{Submit{}, Cancel{}, Propose{File: png}} {
		if more := w.Handle(ev); len(more) != 0 {
			t.Fatalf("%T while submitting produced %#v", ev, more)
		}
	}
	if w.Phase() != Submitting || w.Candidate().File.Name != "photo.jpg" {
		t.Fatalf("state mutated while submitting: %+v", w.State())
	}
}

func TestSubmit_InfoKeptAsTyped(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"ascii", "Brown wallet", "Brown wallet"},
		{"trimmed", "  Brown wallet\n", "Brown wallet"},
		{"full width and kana", "黑色錢包①，２㎏ ｽｲｶ", "黑色錢包①，２㎏ ｽｲｶ"},
		{"inner spacing", "雨傘　藍色", "雨傘　藍色"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := previewing(t, RoleUpload)
			start, ok := hasEffect[StartRequest](w.Handle(Submit{Info: tc.in}))
			if !ok {
				t.Fatal("no StartRequest")
			}
			if start.Info != tc.want {
				t.Fatalf("Info = %q, want %q", start.Info, tc.want)
			}
			if w.Candidate().Info != tc.want {
				t.Fatalf("candidate Info = %q, want %q", w.Candidate().Info, tc.want)
			}
		})
	}
}

func TestSubmit_SearchIgnoresInfo(t *testing.T) {
	w := previewing(t, RoleSearch)
	effects := w.Handle(Submit{Info: "ignored"})
	start, _ := hasEffect[StartRequest](effects)
	if start.Info != "" {
		t.Fatalf("search Info = %q, want empty", start.Info)
	}
}

func TestSearchDone_MatchResetsToIdle(t *testing.T) {
	w := submitting(t, RoleSearch)
	match := &catalogue.Match{Similarity: 0.91, ImageURL: "/x.jpg", Image: catalogue.Entry{Filename: "a.jpg"}}
	effects := w.Handle(SearchDone{RequestID: w.State().Pending, Match: match})

	if w.Phase() != Idle || w.Candidate() != nil {
		t.Fatalf("state = %+v, want idle", w.State())
	}
	res, ok := hasEffect[ShowResult](effects)
	if !ok || res.Match.Image.Filename != "a.jpg" {
		t.Fatalf("effects = %#v, want ShowResult a.jpg", effects)
	}
	assertSettled(t, effects, MsgSearchLabel)
}

func TestSearchDone_EmptyKeepsCandidate(t *testing.T) {
	w := submitting(t, RoleSearch)
	effects := w.Handle(SearchDone{RequestID: w.State().Pending})

	if w.Phase() != Previewing || w.Candidate() == nil || w.Candidate().File.Name != "photo.jpg" {
		t.Fatalf("state = %+v, want previewing with candidate", w.State())
	}
	if msg, ok := hasEffect[ShowError](effects); !ok || msg.Message != MsgNoMatch {
		t.Fatalf("effects = %#v, want no-match error", effects)
	}
	if _, ok := hasEffect[HidePreview](effects); ok {
		t.Fatalf("empty result must keep the preview")
	}
	assertSettled(t, effects, MsgSearchLabel)
}

func TestDone_FailureKeepsCandidate(t *testing.T) {
	w := submitting(t, RoleUpload)
	err := &catalogue.Failure{Op: catalogue.OpUpload, Status: 400, Message: "unsupported format"}
	effects := w.Handle(UploadDone{RequestID: w.State().Pending, Err: err})

	if w.Phase() != Previewing || w.Candidate() == nil {
		t.Fatalf("state = %+v, want previewing with candidate", w.State())
	}
	if w.State().Pending != "" {
		t.Fatalf("pending = %q, want cleared", w.State().Pending)
	}
	if msg, _ := hasEffect[ShowError](effects); msg.Message != "unsupported format" {
		t.Fatalf("error message = %q", msg.Message)
	}
	if _, ok := hasEffect[RefreshList](effects); ok {
		t.Fatalf("failed upload must not refresh the list")
	}
	assertSettled(t, effects, MsgUploadLabel)

	// The user can retry.
	retry := w.Handle(Submit{})
	if countEffects[StartRequest](retry) != 1 {
		t.Fatalf("retry effects = %#v", retry)
	}
}

func TestDone_GenericFailureMessage(t *testing.T) {
	w := submitting(t, RoleSearch)
	effects := w.Handle(SearchDone{RequestID: w.State().Pending, Err: errors.New("dial tcp: refused")})
	if msg, _ := hasEffect[ShowError](effects); msg.Message != catalogue.OpSearch.Fallback() {
		t.Fatalf("error message = %q, want fallback", msg.Message)
	}
}

func TestUploadDone_SuccessClearsAndRefreshes(t *testing.T) {
	w := submitting(t, RoleUpload)
	effects := w.Handle(UploadDone{RequestID: w.State().Pending})

	if w.Phase() != Idle || w.Candidate() != nil {
		t.Fatalf("state = %+v, want idle", w.State())
	}
	for _, want := range []Effect{ClearPicker{}, ClearInfo{}, ShowInput{}, HidePreview{}, RefreshList{}} {
		if !containsEffect(effects, want) {
			t.Fatalf("effects %#v missing %#v", effects, want)
		}
	}
	if msg, ok := hasEffect[ShowSuccess](effects); !ok || msg.Message != MsgUploaded {
		t.Fatalf("effects = %#v, want success banner", effects)
	}
	assertSettled(t, effects, MsgUploadLabel)
}

func TestDone_StaleResponseDiscarded(t *testing.T) {
	w := submitting(t, RoleSearch)
	before := w.State()
	effects := w.Handle(SearchDone{RequestID: "someone-else", Match: &catalogue.Match{}})
	if len(effects) != 0 || !reflect.DeepEqual(w.State(), before) {
		t.Fatalf("stale response applied: effects=%#v state=%+v", effects, w.State())
	}

	idle := newTestWorkflow(RoleUpload)
	if effects := idle.Handle(UploadDone{RequestID: ""}); len(effects) != 0 {
		t.Fatalf("response while idle applied: %#v", effects)
	}
}

func TestTransition_UnknownEventIsNoop(t *testing.T) {
	s := State{Phase: Previewing, Candidate: &Candidate{File: jpeg}}
	next, effects := Transition(RoleSearch, s, nil)
	if !reflect.DeepEqual(next, s) || effects != nil {
		t.Fatalf("Transition(nil) = %+v, %#v", next, effects)
	}
}

func containsEffect(effects []Effect, want Effect) bool {
	for _, e := range effects {
		if reflect.DeepEqual(e, want) {
			return true
		}
	}
	return false
}

func previewing(t *testing.T, role Role) *Workflow {
	t.Helper()
	w := newTestWorkflow(role)
	w.Handle(Propose{File: jpeg})
	if w.Phase() != Previewing {
		t.Fatalf("setup: phase = %v", w.Phase())
	}
	return w
}

func submitting(t *testing.T, role Role) *Workflow {
	t.Helper()
	w := previewing(t, role)
	w.Handle(Submit{})
	if w.Phase() != Submitting {
		t.Fatalf("setup: phase = %v", w.Phase())
	}
	return w
}

func assertSettled(t *testing.T, effects []Effect, label string) {
	t.Helper()
	busy, ok := hasEffect[SetBusy](effects)
	if !ok || busy.Busy || busy.Label != label {
		t.Fatalf("effects = %#v, want SetBusy{false, %q}", effects, label)
	}
}
