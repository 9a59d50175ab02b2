package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/lostfound/internal/present"
	"github.com/five82/lostfound/internal/workflow"
)

// renderMain renders the chrome around the current page.
func (m Model) renderMain() string {
	p := &m.pages[m.current]

	var body string
	switch {
	case p.zone.ChooserOpen():
		body = m.renderChooser(p)
	case m.current == pageAdmin:
		body = m.renderAdminPage(p)
	default:
		body = m.renderSearchPage(p)
	}

	bodyHeight := m.bodyHeight()
	body = lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderTabs(),
		m.renderBanner(),
		body,
		m.renderFooter(),
	)
}

func (m Model) bodyHeight() int {
	return maxInt(m.height-headerRows-footerRows, 1)
}

// renderSearchPage stacks the input above the result. When both do not fit,
// the page is scrolled so the result's top row is visible.
func (m Model) renderSearchPage(p *page) string {
	input := m.renderInput(p)
	if p.result == nil {
		return input
	}
	content := lipgloss.JoinVertical(lipgloss.Left, input, "", m.renderResult(*p.result))

	vp := viewport.New(m.width, m.bodyHeight())
	vp.SetContent(content)
	vp.SetYOffset(lipgloss.Height(input) + 1)
	return vp.View()
}

func (m Model) renderAdminPage(p *page) string {
	upper := lipgloss.NewStyle().Height(upperRows).MaxHeight(upperRows).Render(m.renderInput(p))
	return lipgloss.JoinVertical(lipgloss.Left, upper, m.renderCatalogue())
}

// renderInput shows the drop zone while idle and the preview otherwise.
func (m Model) renderInput(p *page) string {
	if p.inputVisible {
		return m.renderDropZone(p)
	}
	if p.preview != nil {
		return m.renderPreview(p)
	}
	return ""
}

func (m Model) renderDropZone(p *page) string {
	styles := m.theme.Styles()

	border := m.theme.Border
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Width(maxInt(m.width-2, 10)).
		Height(dropZoneRows - 2).
		Align(lipgloss.Center).
		AlignVertical(lipgloss.Center)
	if p.zone.DragActive() {
		border = m.theme.BorderFocus
		box = box.Background(lipgloss.Color(m.theme.DragBg))
	}
	box = box.BorderForeground(lipgloss.Color(border))

	action := "find a lost item"
	if p.role == workflow.RoleUpload {
		action = "catalogue a found item"
	}
	content := strings.Join([]string{
		styles.Text.Bold(true).Render("Drop an image here to " + action),
		styles.MutedText.Render("paste a path, press o or click to browse"),
		styles.FaintText.Render("png · jpg · gif · bmp · webp"),
	}, "\n")
	return box.Render(content)
}

func (m Model) renderPreview(p *page) string {
	styles := m.theme.Styles()
	pv := p.preview

	thumb := pv.Thumbnail
	if thumb == "" {
		thumb = lipgloss.NewStyle().
			Width(thumbCols).
			Height(thumbRows).
			Align(lipgloss.Center).
			AlignVertical(lipgloss.Center).
			Foreground(lipgloss.Color(m.theme.Muted)).
			Render("no preview")
	}
	thumb = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderMuted)).
		Render(thumb)

	details := []string{pv.MediaType, pv.Size}
	if dims := pv.Dimensions(); dims != "" {
		details = append(details, dims)
	}
	lines := []string{
		styles.AccentText.Bold(true).Render(truncateMiddle(pv.Name, 48)),
		styles.MutedText.Render(strings.Join(details, " · ")),
		"",
	}

	if p.role == workflow.RoleUpload {
		label := styles.MutedText.Render("Description")
		if !p.infoFocused {
			label += styles.FaintText.Render("  (i to edit)")
		}
		lines = append(lines, label, p.info.View(), "")
	}

	button := styles.Button.Render(p.submitLabel)
	if p.busy {
		button = styles.DisabledButton.Render(m.spinner.View() + " " + p.submitLabel)
	}
	lines = append(lines, button+"  "+styles.FaintText.Render(ternary(p.busy, "", "esc cancel")))

	meta := strings.Join(lines, "\n")
	if m.width < LayoutCompactWidth {
		return lipgloss.JoinVertical(lipgloss.Left, thumb, meta)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, thumb, "  ", meta)
}

func (m Model) renderResult(r present.ResultView) string {
	styles := m.theme.Styles()
	labelWidth := 14
	row := func(label, value string) string {
		return styles.MutedText.Width(labelWidth).Render(label) + styles.Text.Render(value)
	}

	lines := []string{
		styles.AccentText.Bold(true).Render("Best match") + "  " + styles.TierStyle(r.Tier).Render(r.Label),
		"",
		row("File", r.Filename),
		row("Description", r.Description),
	}
	if r.Date != "" {
		lines = append(lines, row("Uploaded", r.Date))
	}
	lines = append(lines, row("Image", styles.InfoText.Render(r.ImageURL)))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Padding(0, 1).
		Width(maxInt(m.width-2, 10)).
		Render(strings.Join(lines, "\n"))
}

func (m Model) renderChooser(p *page) string {
	styles := m.theme.Styles()
	title := styles.AccentText.Bold(true).Render("Choose an image") + "  " +
		styles.MutedText.Render(truncateMiddle(p.picker.CurrentDirectory, maxInt(m.width-20, 10)))
	return lipgloss.JoinVertical(lipgloss.Left, title, p.picker.View())
}
