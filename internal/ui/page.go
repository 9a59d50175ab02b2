package ui

import (
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/five82/lostfound/internal/capture"
	"github.com/five82/lostfound/internal/present"
	"github.com/five82/lostfound/internal/preview"
	"github.com/five82/lostfound/internal/workflow"
)

// page holds the widgets one workflow drives. The search and admin pages
// differ only in role and the admin description field.
type page struct {
	role   workflow.Role
	wf     *workflow.Workflow
	zone   capture.Zone
	picker filepicker.Model

	info        textinput.Model
	infoFocused bool

	inputVisible bool
	// staged is the decoded preview of the file being proposed.
	staged       *preview.Preview
	preview      *preview.Preview
	result       *present.ResultView
	busy         bool
	submitLabel  string
	banner       banner
}

func newPage(role workflow.Role, dir string) page {
	info := textinput.New()
	info.Placeholder = "Where and when was it found?"
	info.CharLimit = infoCharLimit
	info.Prompt = "› "

	return page{
		role:         role,
		wf:           workflow.New(role),
		picker:       newPicker(dir),
		info:         info,
		inputVisible: true,
		submitLabel:  workflow.SubmitLabel(role),
	}
}

// newPicker returns a file chooser rooted at dir. Esc is left to the page so
// it always closes the chooser.
func newPicker(dir string) filepicker.Model {
	fp := filepicker.New()
	fp.CurrentDirectory = dir
	fp.ShowPermissions = false
	fp.KeyMap.Back = key.NewBinding(
		key.WithKeys("h", "backspace", "left"),
		key.WithHelp("h", "back"),
	)
	return fp
}

func (p *page) blurInfo() {
	p.infoFocused = false
	p.info.Blur()
}
