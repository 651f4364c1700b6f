package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"vocab-viewer/internal/render"
	"vocab-viewer/internal/section"
	"vocab-viewer/internal/speech"
	"vocab-viewer/internal/vocab"
)

// --- Enums & Types ---

type sessionState int

const (
	stateNav sessionState = iota
	stateTables
)

type (
	sectionLoadedMsg struct {
		path   string
		blocks []vocab.Block
		err    error
	}
	sectionAddedMsg struct{ entry section.Entry }
	unpronounceMsg  struct {
		key rowKey
		seq int
	}
	speechStartedMsg struct {
		word string
		err  error
	}
	clipboardMsg struct {
		word string
		err  error
	}
	resetStatusMsg struct{}
)

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

// --- Commands ---

func loadSectionCmd(ctrl *section.Controller, path string) tea.Cmd {
	return func() tea.Msg {
		blocks, err := ctrl.Load(context.Background(), path)
		return sectionLoadedMsg{path: path, blocks: blocks, err: err}
	}
}

func speakCmd(s speech.Speaker, word, lang string) tea.Cmd {
	return func() tea.Msg {
		return speechStartedMsg{word: word, err: s.Speak(context.Background(), word, lang)}
	}
}

func unpronounceCmd(key rowKey, seq int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return unpronounceMsg{key: key, seq: seq}
	})
}

func copyWordCmd(word string) tea.Cmd {
	return func() tea.Msg {
		return clipboardMsg{word: word, err: writeClipboard(word)}
	}
}

func waitForSectionCmd(events <-chan section.Entry) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		e, ok := <-events
		if !ok {
			return nil
		}
		return sectionAddedMsg{entry: e}
	}
}

func resetStatusCmd() tea.Cmd {
	return tea.Tick(2*time.Second, func(t time.Time) tea.Msg {
		return resetStatusMsg{}
	})
}

// --- Styles ---
var (
	docStyle         = lipgloss.NewStyle().Margin(1, 2)
	focusedStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62"))
	blurredStyle     = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	blockTitleStyle  = lipgloss.NewStyle().Bold(true).PaddingLeft(1).Border(lipgloss.ThickBorder(), false, false, false, true)
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#BBBBBB")).Padding(0, 1)
)

const (
	navWidth   = 28
	speakLabel = "▶ speak"
)

// --- Model ---

type options struct {
	speaker       speech.Speaker
	lang          string
	pronouncedFor time.Duration
	events        <-chan section.Entry
	logger        *slog.Logger
}

type model struct {
	state         sessionState
	status        string
	defaultStatus string
	width         int

	// UI Components
	list     list.Model
	viewport viewport.Model
	pane     *tablePane

	// Section handling
	ctrl    *section.Controller
	opts    options
	initCmd tea.Cmd
}

func initialModel(ctrl *section.Controller, pane *tablePane, opts options) model {
	if opts.logger == nil {
		opts.logger = slog.Default()
	}
	if opts.pronouncedFor <= 0 {
		opts.pronouncedFor = render.PronouncedFor
	}

	defaultStatus := "Tab: Switch Panes | Enter: Select/Speak | y: Copy | q: Quit"
	m := model{
		state:         stateNav,
		status:        defaultStatus,
		defaultStatus: defaultStatus,
		pane:          pane,
		ctrl:          ctrl,
		opts:          opts,
		viewport:      viewport.New(0, 0),
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)
	m.list = list.New(nil, delegate, navWidth, 0)
	m.list.Title = "Sections"
	m.list.SetShowHelp(false)
	m.list.SetShowStatusBar(false)
	m.refreshNav()

	// Auto-activate the first section, same as selecting it.
	if sel, ok := ctrl.Start(); ok {
		var cmd tea.Cmd
		m, cmd = m.applySelection(sel)
		m.initCmd = cmd
	}
	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.initCmd, waitForSectionCmd(m.opts.events))
}

// --- Update ---

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		fh, fv := focusedStyle.GetFrameSize()
		panelHeight := msg.Height - v - fv - 2
		tablesWidth := msg.Width - h - navWidth - 2*fh

		m.width = msg.Width - h
		m.list.SetSize(navWidth, panelHeight)
		m.viewport.Width = tablesWidth
		m.viewport.Height = panelHeight
		m.pane.width = tablesWidth
		m.refreshTables()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.state {
		case stateTables:
			return updateTables(msg, m)
		default:
			return updateNav(msg, m)
		}

	case sectionLoadedMsg:
		if msg.err != nil {
			// Already logged by the controller; keep whatever is on screen.
			m.status = m.defaultStatus
			return m, nil
		}
		if !m.ctrl.IsActive(msg.path) {
			return m, nil
		}
		m.ctrl.Show(msg.blocks)
		m.afterShow()
		e, _ := m.ctrl.ActiveEntry()
		m.status = loadedStatus(e.Title, msg.blocks)
		return m, resetStatusCmd()

	case sectionAddedMsg:
		if m.ctrl.Add(msg.entry) {
			m.refreshNav()
			m.status = fmt.Sprintf("New section '%s'", msg.entry.Title)
			return m, tea.Batch(waitForSectionCmd(m.opts.events), resetStatusCmd())
		}
		return m, waitForSectionCmd(m.opts.events)

	case unpronounceMsg:
		if m.pane.ClearPronounced(msg.key, msg.seq) {
			m.refreshTables()
		}
		return m, nil

	case speechStartedMsg:
		if msg.err != nil {
			m.opts.logger.Warn("speech failed", "word", msg.word, "err", msg.err)
		}
		return m, nil

	case clipboardMsg:
		if msg.err != nil {
			m.opts.logger.Warn("clipboard write failed", "err", msg.err)
			return m, nil
		}
		m.status = fmt.Sprintf("Copied '%s'", msg.word)
		return m, resetStatusCmd()

	case resetStatusMsg:
		m.status = m.defaultStatus
		return m, nil
	}

	var cmd tea.Cmd
	if m.state == stateNav {
		m.list, cmd = m.list.Update(msg)
	} else {
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

func updateNav(msg tea.KeyMsg, m model) (tea.Model, tea.Cmd) {
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab":
		m.state = stateTables
		m.refreshTables()
		return m, nil
	case "enter":
		item, ok := m.list.SelectedItem().(sectionItem)
		if !ok {
			return m, nil
		}
		return m.selectSection(item.index)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func updateTables(msg tea.KeyMsg, m model) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab", "esc":
		m.state = stateNav
		m.refreshTables()
		return m, nil
	case "up", "k":
		m.pane.Move(-1)
		m.refreshTables()
		return m, nil
	case "down", "j":
		m.pane.Move(1)
		m.refreshTables()
		return m, nil
	case "enter", " ":
		return m.pronounce()
	case "y":
		_, row, ok := m.pane.Current()
		if !ok || !row.Speakable {
			return m, nil
		}
		return m, copyWordCmd(row.Word)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// selectSection makes entry i active and shows it, straight from the cache
// when possible.
func (m model) selectSection(i int) (model, tea.Cmd) {
	sel, ok := m.ctrl.Select(i)
	if !ok {
		return m, nil
	}
	return m.applySelection(sel)
}

func (m model) applySelection(sel section.Selection) (model, tea.Cmd) {
	m.refreshNav()

	if sel.Pending {
		m.status = fmt.Sprintf("Loading '%s'...", sel.Entry.Title)
		return m, loadSectionCmd(m.ctrl, sel.Entry.Path)
	}

	m.afterShow()
	m.status = loadedStatus(sel.Entry.Title, sel.Blocks)
	return m, resetStatusCmd()
}

// pronounce highlights the current row and starts speech. Neither action is
// awaited.
func (m model) pronounce() (tea.Model, tea.Cmd) {
	key, row, ok := m.pane.Current()
	if !ok || !row.Speakable {
		return m, nil
	}
	seq := m.pane.MarkPronounced(key)
	m.refreshTables()
	return m, tea.Batch(
		unpronounceCmd(key, seq, m.opts.pronouncedFor),
		speakCmd(m.opts.speaker, row.Word, m.opts.lang),
	)
}

func (m *model) afterShow() {
	m.refreshTables()
	m.viewport.GotoTop()
}

func (m *model) refreshTables() {
	m.viewport.SetContent(m.pane.View(m.state == stateTables))

	line := m.pane.CursorLine()
	if m.viewport.Height <= 0 {
		return
	}
	if line < m.viewport.YOffset {
		m.viewport.SetYOffset(line)
	} else if line >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(line - m.viewport.Height + 1)
	}
}

func (m *model) refreshNav() {
	entries := m.ctrl.Entries()
	items := make([]list.Item, 0, len(entries))
	for i, e := range entries {
		items = append(items, sectionItem{entry: e, index: i, active: i == m.ctrl.Active()})
	}
	m.list.SetItems(items)
}

func loadedStatus(name string, blocks []vocab.Block) string {
	return fmt.Sprintf("Loaded '%s' (%d words)", name, vocab.WordCount(blocks))
}

// --- View ---

func (m model) View() string {
	navStyle, tablesStyle := focusedStyle, blurredStyle
	if m.state == stateTables {
		navStyle, tablesStyle = blurredStyle, focusedStyle
	}

	panels := lipgloss.JoinHorizontal(lipgloss.Top,
		navStyle.Render(m.list.View()),
		tablesStyle.Render(m.viewport.View()),
	)
	status := m.status
	if m.width > 0 {
		status = wordwrap.String(status, m.width)
	}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, panels, helpStyle.Render(status)))
}

// --- List Items ---

type sectionItem struct {
	entry  section.Entry
	index  int
	active bool
}

func (i sectionItem) Title() string {
	if i.active {
		return "● " + i.entry.Title
	}
	return "  " + i.entry.Title
}

func (i sectionItem) Description() string { return i.entry.Path }
func (i sectionItem) FilterValue() string { return i.entry.Title }
