package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/five82/lostfound/internal/catalogue"
	"github.com/five82/lostfound/internal/present"
	"github.com/five82/lostfound/internal/state"
)

// handleCatalogueKey handles list navigation and actions on the admin page.
func (m Model) handleCatalogueKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.selectCard(m.selected - 1)
	case key.Matches(msg, m.keys.Down):
		m.selectCard(m.selected + 1)
	case key.Matches(msg, m.keys.Top):
		m.selectCard(0)
	case key.Matches(msg, m.keys.Bottom):
		m.selectCard(len(m.cards.Cards) - 1)
	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadList()
	case key.Matches(msg, m.keys.Delete):
		entry, ok := m.selectedEntry()
		if !ok || m.deleting != nil {
			return m, nil
		}
		m.modal = confirmDelete{entry: entry}
	}
	return m, nil
}

// loadList reloads the whole catalogue. Only the latest load's reply is
// applied.
func (m *Model) loadList() tea.Cmd {
	if m.service == nil {
		return nil
	}
	m.listSeq++
	m.listLoading = true
	return tea.Batch(m.startSpinner(), listCmd(m.ctx, m.service, m.listSeq))
}

func (m Model) handleListLoaded(msg listLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.listSeq {
		m.logger.Debug("discarding superseded catalogue load", "seq", msg.seq, "latest", m.listSeq)
		return m, nil
	}
	m.listLoading = false
	m.store.Update(msg.entries, msg.err)
	m.setSnapshot(m.store.Snapshot())
	if msg.err != nil {
		m.logger.Warn("catalogue load failed", "error", msg.err)
		return m, m.showBanner(pageAdmin, bannerError, catalogue.Reason(msg.err, catalogue.OpList))
	}
	m.logger.Debug("catalogue loaded", "entries", len(msg.entries))
	return m, nil
}

func (m Model) startDelete(entry catalogue.Entry) (tea.Model, tea.Cmd) {
	if m.service == nil || m.deleting != nil {
		return m, nil
	}
	m.deleting = &entry
	m.logger.Info("deleting entry", "id", entry.ID, "filename", entry.Filename)
	return m, tea.Batch(m.startSpinner(), deleteCmd(m.ctx, m.service, entry))
}

func (m Model) handleDeleteDone(msg deleteDoneMsg) (tea.Model, tea.Cmd) {
	m.deleting = nil
	if msg.err != nil {
		m.logger.Warn("delete failed", "id", msg.entry.ID, "error", msg.err)
		return m, m.showBanner(pageAdmin, bannerError, present.DeleteFailed(msg.err))
	}
	return m, tea.Batch(
		m.showBanner(pageAdmin, bannerSuccess, present.Deleted),
		m.loadList(),
	)
}

// setSnapshot replaces the displayed listing.
func (m *Model) setSnapshot(snap state.Snapshot) {
	m.snapshot = snap
	m.cards = m.renderer.List(snap.Entries)
	m.selectCard(m.selected)
}

func (m *Model) selectCard(idx int) {
	if idx >= len(m.cards.Cards) {
		idx = len(m.cards.Cards) - 1
	}
	if idx < 0 {
		idx = 0
	}
	m.selected = idx
	m.refreshCards()
}

func (m Model) selectedEntry() (catalogue.Entry, bool) {
	if m.selected < 0 || m.selected >= len(m.cards.Cards) {
		return catalogue.Entry{}, false
	}
	return m.snapshot.Find(m.cards.Cards[m.selected].ID)
}

func (m Model) cardViewHeight() int {
	return maxInt(m.height-headerRows-footerRows-upperRows-1, cardRows)
}

// refreshCards re-renders the card list and keeps the selection visible.
func (m *Model) refreshCards() {
	m.cardView.Width = m.width
	m.cardView.Height = m.cardViewHeight()
	m.cardView.SetContent(m.renderCards())

	top := m.selected * cardRows
	switch {
	case top < m.cardView.YOffset:
		m.cardView.SetYOffset(top)
	case top+cardRows > m.cardView.YOffset+m.cardView.Height:
		m.cardView.SetYOffset(top + cardRows - m.cardView.Height)
	}
}

func (m Model) renderCards() string {
	styles := m.theme.Styles()
	width := maxInt(m.width, 20)
	lines := make([]string, 0, len(m.cards.Cards)*cardRows)
	for i, card := range m.cards.Cards {
		selected := i == m.selected
		marker := ternary(selected, "▸", " ")

		id := fmt.Sprintf("#%d", card.ID)
		dateWidth := len(card.Date)
		nameWidth := maxInt(width-len(id)-dateWidth-6, 8)
		title := fmt.Sprintf("%s %s  %s", marker, id, padRight(truncateMiddle(card.Filename, nameWidth), nameWidth))
		title = title + " " + card.Date

		rows := []string{
			title,
			"    " + truncate(card.Description, width-6),
			"    " + truncateMiddle(card.ImageURL, width-6),
		}
		if selected {
			sel := styles.Selected.Width(width)
			for j := range rows {
				rows[j] = sel.Render(rows[j])
			}
		} else {
			rows[0] = styles.Text.Render(rows[0])
			rows[1] = styles.MutedText.Render(rows[1])
			rows[2] = styles.FaintText.Render(rows[2])
		}
		lines = append(lines, rows...)
	}
	return strings.Join(lines, "\n")
}

// renderCatalogue renders the admin page's listing section.
func (m Model) renderCatalogue() string {
	styles := m.theme.Styles()

	title := styles.AccentText.Bold(true).Render(fmt.Sprintf("Catalogue (%d)", len(m.cards.Cards)))
	var status []string
	switch {
	case m.deleting != nil:
		status = append(status, fmt.Sprintf("%s deleting #%d", m.spinner.View(), m.deleting.ID))
	case m.listLoading:
		status = append(status, m.spinner.View()+" loading")
	}
	if !m.snapshot.LastUpdated.IsZero() {
		status = append(status, "updated "+humanize.Time(m.snapshot.LastUpdated))
	}
	if m.snapshot.IsOffline() {
		status = append(status, styles.DangerText.Render("offline"))
	}
	header := title
	if len(status) > 0 {
		header += "  " + styles.MutedText.Render(strings.Join(status, " · "))
	}

	var body string
	switch {
	case !m.snapshot.Loaded && m.snapshot.LastError != nil:
		body = styles.DangerText.Render(catalogue.OpList.Fallback())
	case m.cards.Empty():
		body = styles.MutedText.Render(m.cards.Placeholder)
	default:
		body = m.cardView.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}
