package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/lostfound/internal/capture"
	"github.com/five82/lostfound/internal/catalogue"
	"github.com/five82/lostfound/internal/preview"
	"github.com/five82/lostfound/internal/workflow"
)

// Messages reporting work done off the update loop.
type (
	fileLoadedMsg struct {
		page    pageID
		path    string
		file    workflow.File
		preview preview.Preview
		err     error
	}

	requestDoneMsg struct {
		page  pageID
		event workflow.Event
	}

	listLoadedMsg struct {
		seq     int
		entries []catalogue.Entry
		err     error
	}

	deleteConfirmedMsg struct {
		entry catalogue.Entry
	}

	deleteDoneMsg struct {
		entry catalogue.Entry
		err   error
	}

	bannerExpiredMsg struct {
		page pageID
		id   int
	}
)

// loadFileCmd reads path and decodes its preview, both off the update loop.
func loadFileCmd(page pageID, path string) tea.Cmd {
	return func() tea.Msg {
		file, err := capture.Load(path)
		if err != nil {
			return fileLoadedMsg{page: page, path: path, err: err}
		}
		return fileLoadedMsg{
			page:    page,
			path:    path,
			file:    file,
			preview: preview.Build(file, thumbCols, thumbRows),
		}
	}
}

func performCmd(ctx context.Context, svc catalogue.Service, page pageID, req workflow.StartRequest) tea.Cmd {
	return func() tea.Msg {
		return requestDoneMsg{page: page, event: workflow.Perform(ctx, svc, req)}
	}
}

func listCmd(ctx context.Context, svc catalogue.Service, seq int) tea.Cmd {
	return func() tea.Msg {
		entries, err := svc.List(ctx)
		return listLoadedMsg{seq: seq, entries: entries, err: err}
	}
}

func deleteCmd(ctx context.Context, svc catalogue.Service, entry catalogue.Entry) tea.Cmd {
	return func() tea.Msg {
		return deleteDoneMsg{entry: entry, err: svc.Delete(ctx, entry.ID)}
	}
}

func bannerExpireCmd(page pageID, id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return bannerExpiredMsg{page: page, id: id}
	})
}
