package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/lostfound/internal/preview"
	"github.com/five82/lostfound/internal/workflow"
)

// applyEffects performs a page's workflow effects in order. It is the only
// place page widgets change in response to the workflow.
func (m *Model) applyEffects(id pageID, effects []workflow.Effect) tea.Cmd {
	p := &m.pages[id]
	var cmds []tea.Cmd
	for _, effect := range effects {
		switch e := effect.(type) {
		case workflow.ShowPreview:
			pv := preview.Describe(e.File)
			if p.staged != nil && p.staged.Name == e.File.Name {
				pv = *p.staged
			}
			p.staged = nil
			p.preview = &pv

		case workflow.HidePreview:
			p.preview = nil
			p.blurInfo()

		case workflow.ShowInput:
			p.inputVisible = true

		case workflow.HideInput:
			p.inputVisible = false
			p.zone.DragLeave()

		case workflow.ShowResult:
			view := m.renderer.Result(e.Match)
			p.result = &view
			m.logger.Info("search matched",
				"filename", view.Filename,
				"similarity", view.Percent,
				"tier", view.Tier.String(),
			)

		case workflow.HideResult:
			p.result = nil

		case workflow.ShowError:
			cmds = append(cmds, m.showBanner(id, bannerError, e.Message))

		case workflow.ShowSuccess:
			cmds = append(cmds, m.showBanner(id, bannerSuccess, e.Message))

		case workflow.SetBusy:
			p.busy = e.Busy
			p.submitLabel = e.Label
			if e.Busy {
				cmds = append(cmds, m.startSpinner())
			}

		case workflow.StartRequest:
			m.logger.Info("request started",
				"page", p.role.String(),
				"request_id", e.RequestID,
				"file", e.File.Name,
			)
			cmds = append(cmds, performCmd(m.ctx, m.service, id, e))

		case workflow.ClearPicker:
			p.zone.CloseChooser()
			p.picker = newPicker(m.prefs.BrowseDir())

		case workflow.ClearInfo:
			p.info.Reset()
			p.blurInfo()

		case workflow.RefreshList:
			cmds = append(cmds, m.loadList())
		}
	}
	return tea.Batch(cmds...)
}
