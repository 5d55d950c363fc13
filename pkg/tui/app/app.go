// Package app hosts the Bubble Tea program for the longread reader.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/longread/pkg/config"
	"tableflip.dev/longread/pkg/document"
	"tableflip.dev/longread/pkg/runner/source"
	"tableflip.dev/longread/pkg/scrollsync"
	"tableflip.dev/longread/pkg/tui/components/backtotop"
	"tableflip.dev/longread/pkg/tui/components/eventviewer"
	"tableflip.dev/longread/pkg/tui/components/help"
	"tableflip.dev/longread/pkg/tui/components/progressbar"
	"tableflip.dev/longread/pkg/tui/components/toc"
	"tableflip.dev/longread/pkg/tui/events"
	"tableflip.dev/longread/pkg/tui/surface"
	"tableflip.dev/longread/pkg/tui/theme"
	"tableflip.dev/longread/pkg/tui/ui/overlay"
	"tableflip.dev/longread/pkg/watch"
)

const (
	tocID events.ComponentID = "toc"
	topID events.ComponentID = "back-to-top"

	wheelRows    = 3
	debugRows    = 8
	maxHelpWidth = 72
)

// Options configures the reader.
type Options struct {
	// Path names the file being read. Empty or "-" means the text came
	// from stdin and cannot be watched.
	Path string
	// Text is the initial markdown source.
	Text string
	// Title labels the status line. Defaults to the file name.
	Title string
	// Watch reloads the document when Path changes on disk.
	Watch bool
	// Debug docks the event viewer under the document.
	Debug bool
	// Style is a resolved glamour style name.
	Style  string
	Config *config.Config
	Logger *slog.Logger
}

type watchStartedMsg struct {
	ch     <-chan watch.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct {
	event watch.Event
}

type watchStoppedMsg struct{}

// Model is the root reader model.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	opts  Options
	cfg   *config.Config
	log   *slog.Logger
	keys  KeyMap
	theme theme.Theme

	sched  *surface.Scheduler
	surf   *surface.Surface
	engine *scrollsync.Engine

	text       string
	title      string
	lastActive string

	bar    *progressbar.Model
	toc    *toc.Model
	top    *backtotop.Model
	help   *help.Model
	events *eventviewer.Model

	width      int
	height     int
	bodyWidth  int
	bodyHeight int
	tocShown   bool
	showHelp   bool
	status     string

	watchCh     <-chan watch.Event
	watchCancel context.CancelFunc
}

// New constructs a reader for opts. Nothing is rendered until the first
// WindowSizeMsg.
func New(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	th := theme.Default()
	ctx, cancel := context.WithCancel(context.Background())

	m := &Model{
		ctx:    ctx,
		cancel: cancel,
		opts:   opts,
		cfg:    cfg,
		log:    log,
		keys:   DefaultKeyMap(),
		theme:  th,
		sched:  surface.NewScheduler(),
		text:   opts.Text,
		title:  titleFor(opts),
		bar:    progressbar.New(th.Progress),
		toc:    toc.New(tocID, th.TOC),
		top:    backtotop.New(topID, th.Button),
		help:   help.New(opts.Style, th.Panel.Frame),
		events: eventviewer.NewModel(0),
	}
	m.surf = surface.New(m.sched, cfg.UnitsPerRow)

	engineOpts := cfg.Options()
	engineOpts.Logger = log
	engineOpts.OnChange = m.onSnapshot
	m.engine = scrollsync.New(m.surf, m.sched, engineOpts)
	return m
}

func titleFor(opts Options) string {
	switch {
	case opts.Title != "":
		return opts.Title
	case opts.Path == "" || opts.Path == source.Stdin:
		return "stdin"
	}
	return filepath.Base(opts.Path)
}

func (m *Model) watchable() bool {
	return m.opts.Watch && m.opts.Path != "" && m.opts.Path != source.Stdin
}

// Run launches the interactive reader and blocks until it quits or ctx is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	m := New(opts)
	defer m.shutdown()
	popts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx)}
	if opts.Path == source.Stdin {
		// stdin carried the document; keys come from the terminal.
		popts = append(popts, tea.WithInputTTY())
	}
	p := tea.NewProgram(m, popts...)
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.watchable() {
		return startWatchCmd(m.ctx, m.opts.Path, m.log)
	}
	return nil
}

// Engine exposes the scroll engine.
func (m *Model) Engine() *scrollsync.Engine { return m.engine }

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.noteEvent(msg)

	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case surface.FireMsg:
		msg.Run()
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.relayout()
	case tea.KeyPressMsg:
		cmd, quit := m.handleKey(msg)
		if quit {
			m.shutdown()
			return m, tea.Quit
		}
		cmds = append(cmds, cmd)
	case tea.MouseWheelMsg:
		switch msg.Button {
		case tea.MouseWheelUp:
			m.surf.ScrollBy(-wheelRows)
		case tea.MouseWheelDown:
			m.surf.ScrollBy(wheelRows)
		}
	case events.HeadingSelectMsg:
		m.toc.Blur()
		m.engine.ScrollToHeading(msg.ID)
	case events.ScrollTopMsg:
		m.engine.ScrollToTop()
	case events.DocumentChangedMsg:
		cmds = append(cmds, loadFileCmd(msg.Path))
	case events.DocumentLoadedMsg:
		if msg.Err != nil {
			m.log.Warn("reload failed", "path", msg.Path, "err", msg.Err)
			m.status = "reload failed: " + msg.Err.Error()
			break
		}
		m.setText(msg.Text)
		m.status = "reloaded"
	case watchStartedMsg:
		if msg.err != nil {
			m.status = "watch: " + msg.err.Error()
			break
		}
		m.stopWatch()
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		m.status = "watching"
		cmds = append(cmds, m.waitForWatch())
	case watchEventMsg:
		cmds = append(cmds, m.handleWatchEvent(msg.event), m.waitForWatch())
	case watchStoppedMsg:
		m.stopWatch()
	}

	m.sync()
	cmds = append(cmds, m.sched.Drain())
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Cmd, bool) {
	if key.Matches(msg, m.keys.Quit) {
		return nil, true
	}
	if m.showHelp {
		if key.Matches(msg, m.keys.Help, m.keys.Close) {
			m.showHelp = false
			return nil, false
		}
		_, cmd := m.help.Update(msg)
		return cmd, false
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return nil, false
	case key.Matches(msg, m.keys.ToggleTOC):
		if m.toc.Focused() {
			m.toc.Blur()
		} else if m.tocShown {
			m.toc.Focus()
		}
		return nil, false
	}

	if m.toc.Focused() {
		if key.Matches(msg, m.keys.Close) {
			m.toc.Blur()
			return nil, false
		}
		_, cmd := m.toc.Update(msg)
		return cmd, false
	}
	if _, cmd := m.top.Update(msg); cmd != nil {
		return cmd, false
	}

	page := max(m.bodyHeight-1, 1)
	switch {
	case key.Matches(msg, m.keys.Down):
		m.surf.ScrollBy(1)
	case key.Matches(msg, m.keys.Up):
		m.surf.ScrollBy(-1)
	case key.Matches(msg, m.keys.PageDown):
		m.surf.ScrollBy(page)
	case key.Matches(msg, m.keys.PageUp):
		m.surf.ScrollBy(-page)
	case key.Matches(msg, m.keys.Top):
		m.engine.ScrollToTop()
	case key.Matches(msg, m.keys.Bottom):
		m.surf.ScrollToRow(m.surf.MaxOffset())
	case key.Matches(msg, m.keys.NextHeading):
		m.jumpHeading(1)
	case key.Matches(msg, m.keys.PrevHeading):
		m.jumpHeading(-1)
	}
	return nil, false
}

// jumpHeading scrolls to the next (dir > 0) or previous heading relative to
// the current offset, landing where ScrollToHeading would.
func (m *Model) jumpHeading(dir int) {
	layout := m.surf.Layout()
	if layout == nil {
		return
	}
	margin := int(math.Round(m.cfg.HeadingMargin / m.cfg.UnitsPerRow))
	offset := m.surf.Offset()
	target := ""
	for _, a := range layout.Anchors {
		if first, _ := layout.Anchor(a.ID); first.Row != a.Row {
			continue
		}
		row := min(max(a.Row-margin, 0), m.surf.MaxOffset())
		if dir > 0 && row > offset {
			target = a.ID
			break
		}
		if dir < 0 && row < offset {
			target = a.ID
		}
	}
	if target != "" {
		m.engine.ScrollToHeading(target)
	}
}

func (m *Model) setText(text string) {
	m.text = text
	m.relayout()
}

// relayout sizes every component and re-renders the document. The engine
// only restarts tracking when the text changed.
func (m *Model) relayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	m.bar.SetWidth(m.width)

	bodyHeight := max(m.height-2, 1)
	if m.opts.Debug {
		rows := min(debugRows, bodyHeight/2)
		if rows >= 3 {
			m.events.SetSize(m.width, rows)
			bodyHeight -= rows
		}
	}

	// Extraction happens once, in the engine; widgets read its outline.
	m.engine.SetText(m.text)
	headings := m.engine.Outline()
	m.toc.SetOutline(headings)
	tocWidth := m.cfg.TOCWidth
	m.tocShown = len(headings) > 0 && tocWidth > 0 && m.width >= tocWidth*2
	bodyWidth := m.width
	if m.tocShown {
		m.toc.SetSize(tocWidth, bodyHeight)
		bodyWidth -= tocWidth
	} else {
		m.toc.Blur()
	}
	m.bodyWidth = bodyWidth
	m.bodyHeight = bodyHeight
	m.help.SetSize(min(m.width, maxHelpWidth), bodyHeight)

	layout, err := document.Render(m.text, document.Options{Width: bodyWidth - 1, Style: m.opts.Style})
	if err != nil {
		m.log.Warn("render failed, falling back to plain text", "err", err)
		m.status = "plain text: " + err.Error()
		layout = document.Plain(m.text, bodyWidth-1)
	}
	m.surf.SetHeight(bodyHeight)
	m.surf.SetLayout(layout)
	m.engine.Refresh()
}

// sync copies the engine state into the widgets.
func (m *Model) sync() {
	snap := m.engine.Snapshot()
	m.toc.SetActive(snap.Active)
	m.bar.SetPercent(snap.Signal.Progress)
	m.top.SetVisible(snap.Signal.ShowBackToTop)
}

func (m *Model) onSnapshot(snap scrollsync.Snapshot) {
	if snap.Active != m.lastActive {
		m.lastActive = snap.Active
		m.log.Debug("active heading", "id", snap.Active, "generation", snap.Generation)
		m.noteEvent(events.ActiveHeadingMsg{ID: snap.Active, Generation: snap.Generation})
	}
	if m.opts.Debug {
		m.events.RecordSnapshot(snap)
	}
}

func (m *Model) noteEvent(msg tea.Msg) {
	if m.opts.Debug {
		m.events.Record(msg)
	}
}

func (m *Model) shutdown() {
	m.engine.Close()
	m.stopWatch()
	m.cancel()
}

func startWatchCmd(parent context.Context, path string, log *slog.Logger) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := watch.File(ctx, path, watch.Options{Logger: log})
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

func (m *Model) handleWatchEvent(ev watch.Event) tea.Cmd {
	switch ev.Type {
	case watch.EventRemoved:
		m.status = "file removed"
		return nil
	default:
		path := m.opts.Path
		return func() tea.Msg { return events.DocumentChangedMsg{Path: path} }
	}
}

func loadFileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		doc, err := source.Load(path, nil)
		if err != nil {
			return events.DocumentLoadedMsg{Path: path, Err: err}
		}
		return events.DocumentLoadedMsg{Path: path, Text: doc.Text}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	rows := []string{m.bar.View()}

	body := lipgloss.NewStyle().
		Width(m.bodyWidth).
		MaxWidth(m.bodyWidth).
		Height(m.bodyHeight).
		MaxHeight(m.bodyHeight).
		Render(strings.Join(m.surf.Lines(), "\n"))
	if m.tocShown {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.toc.View(), body)
	}
	if m.showHelp {
		body = overlay.Compose(body, m.width, m.bodyHeight, m.help.View(), overlay.Placement{
			Horizontal: lipgloss.Center,
			Vertical:   lipgloss.Center,
		})
	}
	rows = append(rows, body)
	if m.opts.Debug {
		if v := m.events.View(); v != "" {
			rows = append(rows, v)
		}
	}
	rows = append(rows, m.statusLine())
	return strings.Join(rows, "\n")
}

func (m *Model) statusLine() string {
	styles := m.theme.Footer
	right := []string{}
	if button := m.top.View(); button != "" {
		right = append(right, button)
	}
	right = append(right,
		styles.Percent.Render(fmt.Sprintf("%3.0f%%", m.bar.Percent())),
		styles.Help.Render("? help"),
	)
	rightView := strings.Join(right, " ")

	left := m.title
	if m.status != "" {
		left += " · " + m.status
	}
	room := max(m.width-lipgloss.Width(rightView)-1, 0)
	left = truncate.StringWithTail(left, uint(room), "…")
	gap := strings.Repeat(" ", max(m.width-lipgloss.Width(left)-lipgloss.Width(rightView), 1))
	return styles.Status.Render(left) + gap + rightView
}
