package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/five82/lostfound/internal/catalogue"
)

type recordingService struct {
	searchIDs []string
	uploads   []string
	match     *catalogue.Match
	err       error
}

func (s *recordingService) Search(ctx context.Context, file catalogue.File) (*catalogue.Match, error) {
	s.searchIDs = append(s.searchIDs, catalogue.RequestID(ctx))
	return s.match, s.err
}

func (s *recordingService) Upload(ctx context.Context, file catalogue.File, info string) error {
	s.uploads = append(s.uploads, file.Name+"|"+info+"|"+catalogue.RequestID(ctx))
	return s.err
}

func (s *recordingService) List(context.Context) ([]catalogue.Entry, error) { return nil, nil }
func (s *recordingService) Delete(context.Context, int64) error             { return nil }

func TestPerform_SearchCarriesRequestID(t *testing.T) {
	svc := &recordingService{match: &catalogue.Match{Similarity: 0.7}}
	ev := Perform(context.Background(), svc, StartRequest{RequestID: "r-1", Role: RoleSearch, File: jpeg})

	done, ok := ev.(SearchDone)
	if !ok {
		t.Fatalf("Perform returned %T, want SearchDone", ev)
	}
	if done.RequestID != "r-1" || done.Match == nil || done.Match.Similarity != 0.7 {
		t.Fatalf("SearchDone = %#v", done)
	}
	if len(svc.searchIDs) != 1 || svc.searchIDs[0] != "r-1" {
		t.Fatalf("search request ids = %v", svc.searchIDs)
	}
}

func TestPerform_Upload(t *testing.T) {
	svc := &recordingService{err: errors.New("boom")}
	ev := Perform(context.Background(), svc, StartRequest{RequestID: "r-2", Role: RoleUpload, File: png, Info: "keys"})

	done, ok := ev.(UploadDone)
	if !ok || done.RequestID != "r-2" || done.Err == nil {
		t.Fatalf("Perform = %#v", ev)
	}
	if len(svc.uploads) != 1 || svc.uploads[0] != "img.png|keys|r-2" {
		t.Fatalf("uploads = %v", svc.uploads)
	}
}

func TestIsStale(t *testing.T) {
	w := submitting(t, RoleSearch)
	pending := w.State().Pending
	if w.IsStale(SearchDone{RequestID: pending}) {
		t.Fatalf("pending response reported stale")
	}
	if !w.IsStale(SearchDone{RequestID: "other"}) {
		t.Fatalf("foreign response not reported stale")
	}
	if w.IsStale(Cancel{}) {
		t.Fatalf("non-response event reported stale")
	}
}

// A search that finds a match resets the page and shows the result; a search
// over an empty catalogue keeps the candidate for another try.
func TestSearchFlowAgainstService(t *testing.T) {
	svc := &recordingService{match: &catalogue.Match{Similarity: 0.91, Image: catalogue.Entry{Filename: "wallet.jpg"}}}
	w := New(RoleSearch)
	w.Handle(Propose{File: jpeg})
	effects := w.Handle(Submit{})
	start, _ := hasEffect[StartRequest](effects)

	w.Handle(Perform(context.Background(), svc, start))
	if w.Phase() != Idle {
		t.Fatalf("phase after match = %v", w.Phase())
	}

	svc.match = nil
	w.Handle(Propose{File: jpeg})
	effects = w.Handle(Submit{})
	start, _ = hasEffect[StartRequest](effects)
	effects = w.Handle(Perform(context.Background(), svc, start))
	if w.Phase() != Previewing || w.Candidate() == nil {
		t.Fatalf("phase after empty search = %v", w.Phase())
	}
	if msg, _ := hasEffect[ShowError](effects); msg.Message != MsgNoMatch {
		t.Fatalf("effects = %#v", effects)
	}
	if len(svc.searchIDs) != 2 || svc.searchIDs[0] == svc.searchIDs[1] {
		t.Fatalf("request ids = %v, want two distinct", svc.searchIDs)
	}
}
