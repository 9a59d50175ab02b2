package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/lostfound/internal/catalogue"
	"github.com/five82/lostfound/internal/config"
	"github.com/five82/lostfound/internal/logging"
	"github.com/five82/lostfound/internal/prefs"
	"github.com/five82/lostfound/internal/present"
	"github.com/five82/lostfound/internal/state"
	"github.com/five82/lostfound/internal/workflow"
)

// pageID selects one of the two pages.
type pageID int

const (
	pageSearch pageID = iota
	pageAdmin
)

func (p pageID) String() string {
	if p == pageAdmin {
		return "Admin"
	}
	return "Search"
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Service   catalogue.Service
	Renderer  present.Renderer
	Store     *state.Store
	Config    *config.Config
	Prefs     prefs.Prefs
	PrefsPath string
	Logger    *slog.Logger
	Admin     bool // open on the Admin page
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	service   catalogue.Service
	renderer  present.Renderer
	store     *state.Store
	config    *config.Config
	prefs     prefs.Prefs
	prefsPath string
	logger    *slog.Logger

	// UI state
	theme    Theme
	keys     keyMap
	current  pageID
	pages    [2]page
	width    int
	height   int
	ready    bool
	showHelp bool
	modal    Modal

	// Busy indicator
	spinner  spinner.Model
	spinning bool

	// Catalogue state
	snapshot    state.Snapshot
	cards       present.ListView
	selected    int
	cardView    viewport.Model
	listLoading bool
	deleting    *catalogue.Entry

	bannerSeq int
	listSeq   int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := opts.Config
	if cfg == nil {
		defaults := config.Default()
		cfg = &defaults
	}

	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	browseDir := opts.Prefs.BrowseDir()
	m := Model{
		ctx:       ctx,
		service:   opts.Service,
		renderer:  opts.Renderer,
		store:     store,
		config:    cfg,
		prefs:     opts.Prefs,
		prefsPath: prefsPath,
		logger:    logger,
		theme:     GetTheme(opts.Prefs.Theme),
		keys:      DefaultKeyMap(),
		current:   pageSearch,
		pages: [2]page{
			newPage(workflow.RoleSearch, browseDir),
			newPage(workflow.RoleUpload, browseDir),
		},
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		cardView: viewport.New(0, 0),
	}
	if opts.Admin {
		m.current = pageAdmin
	}
	m.setSnapshot(store.Snapshot())
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("lostfound")
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeChooser()
		m.refreshCards()
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case fileLoadedMsg:
		return m.handleFileLoaded(msg)

	case requestDoneMsg:
		p := &m.pages[msg.page]
		if p.wf.IsStale(msg.event) {
			m.logger.Info("discarding stale response",
				"page", p.role.String(),
				"request_id", responseID(msg.event),
			)
			return m, nil
		}
		return m, m.applyEffects(msg.page, p.wf.Handle(msg.event))

	case listLoadedMsg:
		return m.handleListLoaded(msg)

	case deleteConfirmedMsg:
		return m.startDelete(msg.entry)

	case deleteDoneMsg:
		return m.handleDeleteDone(msg)

	case bannerExpiredMsg:
		if b := &m.pages[msg.page].banner; b.id == msg.id {
			*b = banner{}
		}
		return m, nil
	}

	// Directory listings and other chooser internals.
	if p := m.page(); p.zone.ChooserOpen() {
		var cmd tea.Cmd
		p.picker, cmd = p.picker.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}

	return m.renderMain()
}

func (m *Model) page() *page {
	return &m.pages[m.current]
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		modal, cmd, closed := m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		} else {
			m.modal = modal
		}
		return m, cmd
	}

	p := m.page()
	if p.zone.ChooserOpen() {
		return m.handleChooserKey(msg)
	}
	if p.infoFocused {
		return m.handleInfoKey(msg)
	}
	if msg.Paste {
		return m.handleDrop(string(msg.Runes))
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		m.savePrefs()
		m.refreshCards()
		return m, nil

	case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.ShiftTab):
		m.switchPage(1 - m.current)
		return m, nil

	case key.Matches(msg, m.keys.ViewSearch):
		m.switchPage(pageSearch)
		return m, nil

	case key.Matches(msg, m.keys.ViewAdmin):
		m.switchPage(pageAdmin)
		return m, nil

	case key.Matches(msg, m.keys.Browse):
		return m.openChooser()

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.Cancel):
		return m, m.applyEffects(m.current, p.wf.Handle(workflow.Cancel{}))

	case key.Matches(msg, m.keys.FocusInfo):
		if p.role == workflow.RoleUpload && p.wf.Phase() == workflow.Previewing {
			p.infoFocused = true
			return m, p.info.Focus()
		}
		return m, nil
	}

	if m.current == pageAdmin {
		return m.handleCatalogueKey(msg)
	}
	return m, nil
}

func (m Model) handleChooserKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.page()
	if msg.Type == tea.KeyEsc {
		p.zone.CloseChooser()
		return m, nil
	}

	var cmd tea.Cmd
	p.picker, cmd = p.picker.Update(msg)
	if ok, selected := p.picker.DidSelectFile(msg); ok {
		path, ok := p.zone.Picked([]string{selected})
		if !ok {
			return m, cmd
		}
		m.prefs.LastDir = filepath.Dir(path)
		m.savePrefs()
		return m, tea.Batch(cmd, loadFileCmd(m.current, path))
	}
	return m, cmd
}

func (m Model) handleInfoKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.page()
	switch msg.Type {
	case tea.KeyEsc:
		p.blurInfo()
		return m, nil
	case tea.KeyEnter:
		return m.submit()
	}

	var cmd tea.Cmd
	p.info, cmd = p.info.Update(msg)
	return m, cmd
}

// handleDrop treats a bracketed paste as files dropped on the drop zone.
func (m Model) handleDrop(payload string) (tea.Model, tea.Cmd) {
	p := m.page()
	path, ok := p.zone.Drop(payload)
	if !ok {
		return m, nil
	}
	return m, loadFileCmd(m.current, path)
}

// handleMouse maps pointer motion over the drop zone to drag highlighting
// and a click to browsing.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showHelp || m.modal != nil {
		return m, nil
	}
	p := m.page()
	if p.zone.ChooserOpen() || !p.inputVisible {
		return m, nil
	}

	inside := msg.Y >= headerRows && msg.Y < headerRows+dropZoneRows
	switch msg.Action {
	case tea.MouseActionMotion:
		if inside {
			p.zone.DragOver()
		} else if p.zone.DragActive() {
			p.zone.DragLeave()
		}
	case tea.MouseActionPress:
		if inside && msg.Button == tea.MouseButtonLeft {
			return m.openChooser()
		}
	}
	return m, nil
}

func (m Model) openChooser() (tea.Model, tea.Cmd) {
	p := m.page()
	if p.wf.Phase() == workflow.Submitting {
		return m, nil
	}
	p.zone.Browse()
	p.picker = newPicker(m.prefs.BrowseDir())
	m.resizeChooser()
	return m, p.picker.Init()
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	p := m.page()
	ev := workflow.Submit{}
	if p.role == workflow.RoleUpload {
		ev.Info = p.info.Value()
	}
	p.blurInfo()
	return m, m.applyEffects(m.current, p.wf.Handle(ev))
}

func (m Model) handleFileLoaded(msg fileLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Warn("file read failed", "path", msg.path, "error", msg.err)
		return m, m.showBanner(msg.page, bannerError, fmt.Sprintf("Could not read %s", filepath.Base(msg.path)))
	}
	p := &m.pages[msg.page]
	m.logger.Debug("file proposed",
		"page", p.role.String(),
		"name", msg.file.Name,
		"media_type", msg.file.MediaType,
		"bytes", len(msg.file.Data),
	)
	p.staged = nil
	if msg.preview.Name != "" {
		pv := msg.preview
		p.staged = &pv
	}
	return m, m.applyEffects(msg.page, p.wf.Handle(workflow.Propose{File: msg.file}))
}

func (m *Model) switchPage(target pageID) {
	if target == m.current {
		return
	}
	// Leaving a page drops any drag highlight and text focus.
	p := m.page()
	p.zone.DragLeave()
	p.blurInfo()
	m.current = target
}

func (m *Model) resizeChooser() {
	height := maxInt(m.height-headerRows-footerRows-1, 3)
	for i := range m.pages {
		m.pages[i].picker, _ = m.pages[i].picker.Update(tea.WindowSizeMsg{Width: m.width, Height: height})
	}
}

// busy reports whether anything is in flight.
func (m Model) busy() bool {
	for _, p := range m.pages {
		if p.busy {
			return true
		}
	}
	return m.listLoading || m.deleting != nil
}

// startSpinner starts the spinner tick loop unless it is already running.
func (m *Model) startSpinner() tea.Cmd {
	if m.spinning {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.logger.Warn("save preferences failed", "path", m.prefsPath, "error", err)
	}
}

func responseID(ev workflow.Event) string {
	switch ev := ev.(type) {
	case workflow.SearchDone:
		return ev.RequestID
	case workflow.UploadDone:
		return ev.RequestID
	}
	return ""
}

// Run starts the Bubble Tea UI.
func Run(opts Options) error {
	m := New(opts)
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
