package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type bannerKind int

const (
	bannerNone bannerKind = iota
	bannerError
	bannerSuccess
)

// banner is a transient page notice. id ties it to its expiry tick so an
// older tick cannot clear a newer banner.
type banner struct {
	kind bannerKind
	text string
	id   int
}

const (
	fallbackErrorBanner   = 5 * time.Second
	fallbackSuccessBanner = 3 * time.Second
)

func (m *Model) showBanner(id pageID, kind bannerKind, text string) tea.Cmd {
	m.bannerSeq++
	m.pages[id].banner = banner{kind: kind, text: text, id: m.bannerSeq}
	return bannerExpireCmd(id, m.bannerSeq, m.bannerDuration(kind))
}

func (m *Model) bannerDuration(kind bannerKind) time.Duration {
	if kind == bannerError {
		if m.config.ErrorBanner > 0 {
			return m.config.ErrorBanner
		}
		return fallbackErrorBanner
	}
	if m.config.SuccessBanner > 0 {
		return m.config.SuccessBanner
	}
	return fallbackSuccessBanner
}
