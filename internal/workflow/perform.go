package workflow

import (
	"context"

	"github.com/five82/lostfound/internal/catalogue"
)

// Perform executes a StartRequest against svc and returns the matching Done
// event. It blocks until the request finishes; adapters run it off their
// event loop.
func Perform(ctx context.Context, svc catalogue.Service, req StartRequest) Event {
	ctx = catalogue.WithRequestID(ctx, req.RequestID)
	payload := req.File.Payload()
	if req.Role == RoleUpload {
		return UploadDone{RequestID: req.RequestID, Err: svc.Upload(ctx, payload, req.Info)}
	}
	match, err := svc.Search(ctx, payload)
	return SearchDone{RequestID: req.RequestID, Match: match, Err: err}
}

// IsStale reports whether ev is a response this workflow is no longer
// waiting for. Non-response events are never stale.
func (w *Workflow) IsStale(ev Event) bool {
	switch ev := ev.(type) {
	case SearchDone:
		return !awaiting(w.state, ev.RequestID)
	case UploadDone:
		return !awaiting(w.state, ev.RequestID)
	}
	return false
}
