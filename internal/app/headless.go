package app

import (
	"context"
	"log/slog"

	"github.com/five82/lostfound/internal/capture"
	"github.com/five82/lostfound/internal/catalogue"
	"github.com/five82/lostfound/internal/present"
	"github.com/five82/lostfound/internal/workflow"
)

// Outcome is what a headless run would have shown on screen.
type Outcome struct {
	Result  *present.ResultView
	Success string
	Error   string
	Refresh bool // the listing should be reloaded
}

// Failed reports whether the run ended with an error banner.
func (o Outcome) Failed() bool {
	return o.Error != ""
}

// Driver runs the search and upload workflows without a UI: the same
// transitions, with effects collected into an Outcome.
type Driver struct {
	Service catalogue.Service
	Render  present.Renderer
	Logger  *slog.Logger
}

// Find searches the catalogue for the image at path.
func (d Driver) Find(ctx context.Context, path string) (Outcome, error) {
	return d.run(ctx, workflow.RoleSearch, path, "")
}

// Add uploads the image at path with an optional description.
func (d Driver) Add(ctx context.Context, path, info string) (Outcome, error) {
	return d.run(ctx, workflow.RoleUpload, path, info)
}

func (d Driver) run(ctx context.Context, role workflow.Role, path, info string) (Outcome, error) {
	file, err := capture.Load(path)
	if err != nil {
		return Outcome{}, err
	}
	logger := d.logger().With("role", role.String(), "file", file.Name)

	var out Outcome
	wf := workflow.New(role)
	d.apply(&out, wf.Handle(workflow.Propose{File: file}))
	if wf.Phase() != workflow.Previewing {
		logger.Info("candidate rejected", "media_type", file.MediaType, "reason", out.Error)
		return out, nil
	}

	pending := wf.Handle(workflow.Submit{Info: info})
	for len(pending) > 0 {
		effect := pending[0]
		pending = pending[1:]
		start, ok := effect.(workflow.StartRequest)
		if !ok {
			d.apply(&out, []workflow.Effect{effect})
			continue
		}
		logger.Info("request started", "request_id", start.RequestID)
		done := workflow.Perform(ctx, d.Service, start)
		pending = append(pending, wf.Handle(done)...)
	}

	if out.Failed() {
		logger.Warn("request failed", "reason", out.Error)
	} else {
		logger.Info("request finished", "phase", wf.Phase().String())
	}
	return out, nil
}

func (d Driver) apply(out *Outcome, effects []workflow.Effect) {
	for _, effect := range effects {
		switch e := effect.(type) {
		case workflow.ShowResult:
			view := d.Render.Result(e.Match)
			out.Result = &view
		case workflow.ShowError:
			out.Error = e.Message
		case workflow.ShowSuccess:
			out.Success = e.Message
		case workflow.RefreshList:
			out.Refresh = true
		}
	}
}

func (d Driver) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.Default()
	}
	return d.Logger
}
