// Package tui provides a Bubble Tea terminal user interface for navitunes.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"navitunes/internal/config"
	"navitunes/internal/convert"
	"navitunes/internal/fsutil"
	"navitunes/internal/library"
	"navitunes/internal/model"
	"navitunes/internal/syncer"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	sampleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// State represents the current UI state.
type State int

const (
	StateMenu State = iota
	StateExtractXML
	StateExtractOut
	StateConvertDir
	StateConvertSource
	StateConvertTarget
	StateConvertCustom
	StateConvertStrip
	StateConvertPreview
	StateSyncSrc
	StateSyncDst
	StateRunning
	StateComplete
	StateError
)

// Task identifies which tool the wizard is driving.
type Task int

const (
	TaskNone Task = iota
	TaskExtract
	TaskConvert
	TaskSync
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   model.ProgressLevel
}

// eventLog collects progress events from the worker goroutine. The UI
// drains it on each tick rather than receiving events directly, which
// keeps the callback non-blocking.
type eventLog struct {
	mu      sync.Mutex
	entries []LogEntry
}

func (l *eventLog) append(e model.ProgressEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, LogEntry{Message: e.Message, Level: e.Level})
}

func (l *eventLog) drain() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.entries
	l.entries = nil
	return out
}

// progressRef hands a counter function from the worker goroutine to the
// UI. The worker may only learn its counters mid-run (the extractor
// exists only once the library is loaded), so the UI polls through this
// indirection instead of holding the function directly.
type progressRef struct {
	mu sync.Mutex
	fn func() (done, total int32)
}

func (p *progressRef) set(fn func() (done, total int32)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fn = fn
}

func (p *progressRef) read() (done, total int32) {
	p.mu.Lock()
	fn := p.fn
	p.mu.Unlock()
	if fn == nil {
		return 0, 0
	}
	return fn()
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	task      Task
	textInput textinput.Model
	spinner   spinner.Model
	settings  *config.Settings
	logs      []LogEntry
	errMsg    string
	err       error

	// Worker context
	ctx    context.Context
	cancel context.CancelFunc

	// Collected inputs
	xmlPath      string
	outDir       string
	convDir      string
	sourcePrefix string
	targetPrefix string
	stripSubpath string
	syncSrc      string
	syncDst      string

	samples    []convert.Sample
	candidates int
	confirmed  bool // second enter required when no candidates found

	events   *eventLog
	progress *progressRef
	summary  model.RunSummary

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel() Model {
	ti := textinput.New()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	settings, err := config.Load(configPath())
	if err != nil {
		settings = config.DefaultSettings()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateMenu,
		textInput: ti,
		spinner:   sp,
		settings:  settings,
		logs:      make([]LogEntry, 0),
		ctx:       ctx,
		cancel:    cancel,
		events:    &eventLog{},
		progress:  &progressRef{},
	}
}

func configPath() string {
	home, _ := os.UserHomeDir()
	return home + "/.config/navitunes/config.json"
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// PreviewMsg carries sample conversions for the confirmation screen.
	PreviewMsg struct {
		Samples []convert.Sample
		Err     error
	}

	// RunDoneMsg is sent when the running task completes.
	RunDoneMsg struct {
		Summary model.RunSummary
		Err     error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateMenu {
				return m, tea.Quit
			}
			if m.state == StateRunning {
				m.cancel()
				return m, nil
			}
			// Any prompt screen goes back to the menu.
			m.reset()
			return m, nil

		case "enter":
			return m.handleEnter()

		case "q":
			if m.state == StateMenu || m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				m.reset()
				return m, nil
			}
		}

		if m.state == StateMenu {
			return m.handleMenuKey(msg.String())
		}
		if m.state == StateConvertTarget {
			return m.handleTargetKey(msg.String())
		}
		if m.state == StateConvertPreview {
			return m.handlePreviewKey(msg.String())
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case PreviewMsg:
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			m.state = StateConvertDir
			m.prompt("Playlist directory:", m.convDir)
		} else {
			m.samples = msg.Samples
			m.state = StateConvertPreview
		}

	case RunDoneMsg:
		m.logs = append(m.logs, m.events.drain()...)
		m.trimLogs()
		m.summary = msg.Summary
		if msg.Err != nil && m.ctx.Err() == nil {
			m.state = StateError
			m.err = msg.Err
		} else if m.ctx.Err() != nil {
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		} else {
			m.state = StateComplete
		}

	case TickMsg:
		if m.state == StateRunning {
			m.logs = append(m.logs, m.events.drain()...)
			m.trimLogs()
			cmds = append(cmds, m.tickProgress())
		}
	}

	if m.inputActive() {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// inputActive reports whether the current state shows the text input.
func (m Model) inputActive() bool {
	switch m.state {
	case StateExtractXML, StateExtractOut, StateConvertDir, StateConvertSource,
		StateConvertCustom, StateConvertStrip, StateSyncSrc, StateSyncDst:
		return true
	}
	return false
}

// reset returns to the menu, dropping any in-flight state.
func (m *Model) reset() {
	m.state = StateMenu
	m.task = TaskNone
	m.logs = nil
	m.errMsg = ""
	m.err = nil
	m.samples = nil
	m.candidates = 0
	m.confirmed = false
	m.summary = model.RunSummary{}
	m.events = &eventLog{}
	m.progress = &progressRef{}
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.textInput.SetValue("")
	m.textInput.Blur()
}

// prompt focuses the text input with a placeholder and prefilled value.
func (m *Model) prompt(placeholder, value string) {
	m.textInput.Placeholder = placeholder
	m.textInput.SetValue(value)
	m.textInput.CursorEnd()
	m.textInput.Focus()
}

func (m Model) handleMenuKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "1":
		m.task = TaskExtract
		m.state = StateExtractXML
		m.prompt("Path to iTunes Music Library.xml", m.settings.LibraryXML)
	case "2":
		m.task = TaskConvert
		m.state = StateConvertDir
		m.prompt("Directory containing .m3u playlists", m.settings.PlaylistOutputDir())
	case "3":
		if err := syncer.Available(); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.task = TaskSync
		m.state = StateSyncSrc
		m.prompt("Music library source directory", m.settings.MusicSource)
	}
	return m, nil
}

func (m Model) handleTargetKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "1":
		m.targetPrefix = "../"
		m.state = StateConvertStrip
		m.prompt("Subpath to strip (optional, enter to skip)", m.settings.StripSubpath)
	case "2":
		m.targetPrefix = "/music/"
		m.state = StateConvertStrip
		m.prompt("Subpath to strip (optional, enter to skip)", m.settings.StripSubpath)
	case "3":
		m.state = StateConvertCustom
		m.prompt("Custom target prefix", m.settings.TargetPrefix)
	}
	return m, nil
}

func (m Model) handlePreviewKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "Y":
		m.state = StateRunning
		return m, tea.Batch(m.startConvert(), m.tickProgress(), m.spinner.Tick)
	case "n", "N":
		m.state = StateConvertSource
		m.prompt("Source prefix to replace", m.sourcePrefix)
	}
	return m, nil
}

// handleEnter advances the wizard one step, validating the current
// input. A validation failure sets errMsg and stays on the same screen.
//
// Filesystem-path prompts go through CleanPromptPath; prefix prompts
// keep their value as typed apart from whitespace, since a trailing
// slash is significant in a prefix.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.textInput.Value())
	switch m.state {
	case StateExtractXML, StateExtractOut, StateConvertDir, StateSyncSrc, StateSyncDst:
		value = fsutil.CleanPromptPath(m.textInput.Value())
	}
	m.errMsg = ""

	switch m.state {
	case StateExtractXML:
		if _, err := os.Stat(value); err != nil {
			m.errMsg = fmt.Sprintf("cannot read %q: file not found", value)
			return m, nil
		}
		m.xmlPath = value
		m.state = StateExtractOut
		m.prompt("Output directory for playlists", m.settings.PlaylistDirFor(value))

	case StateExtractOut:
		if value == "" {
			value = m.settings.PlaylistDirFor(m.xmlPath)
		}
		m.outDir = value
		m.state = StateRunning
		return m, tea.Batch(m.startExtract(), m.tickProgress(), m.spinner.Tick)

	case StateConvertDir:
		info, err := os.Stat(value)
		if err != nil || !info.IsDir() {
			m.errMsg = fmt.Sprintf("%q is not a directory", value)
			return m, nil
		}
		names, err := convert.Candidates(value)
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		if len(names) == 0 && !m.confirmed {
			m.errMsg = "no .m3u files found here; press enter again to continue anyway"
			m.confirmed = true
			return m, nil
		}
		m.convDir = value
		m.candidates = len(names)
		m.confirmed = false

		suggestion := m.settings.SourcePrefix
		if detected, err := convert.DetectPrefix(value); err == nil {
			suggestion = detected
		}
		m.state = StateConvertSource
		m.prompt("Source prefix to replace", suggestion)

	case StateConvertSource:
		if value == "" {
			m.errMsg = "a source prefix is required"
			return m, nil
		}
		m.sourcePrefix = value
		m.state = StateConvertTarget

	case StateConvertCustom:
		if value == "" {
			m.errMsg = "a target prefix is required"
			return m, nil
		}
		m.targetPrefix = value
		m.state = StateConvertStrip
		m.prompt("Subpath to strip (optional, enter to skip)", m.settings.StripSubpath)

	case StateConvertStrip:
		m.stripSubpath = value
		if m.candidates == 0 {
			m.state = StateRunning
			return m, tea.Batch(m.startConvert(), m.tickProgress(), m.spinner.Tick)
		}
		return m, m.loadPreview()

	case StateSyncSrc:
		info, err := os.Stat(value)
		if err != nil || !info.IsDir() {
			m.errMsg = fmt.Sprintf("%q is not a directory", value)
			return m, nil
		}
		m.syncSrc = value
		m.state = StateSyncDst
		m.prompt("Destination directory", m.settings.MusicDest)

	case StateSyncDst:
		if value == "" {
			m.errMsg = "a destination is required"
			return m, nil
		}
		m.syncDst = value
		m.state = StateRunning
		return m, tea.Batch(m.startSync(), m.tickProgress(), m.spinner.Tick)
	}

	return m, nil
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

func (m *Model) trimLogs() {
	if len(m.logs) > 10 {
		m.logs = m.logs[len(m.logs)-10:]
	}
}

// startExtract loads the library and writes every user playlist.
func (m *Model) startExtract() tea.Cmd {
	xmlPath, outDir := m.xmlPath, m.outDir
	opts := library.Options{
		Extension:    m.settings.PlaylistExtension,
		BackfillTags: m.settings.BackfillTags,
	}
	events, progress, ctx := m.events, m.progress, m.ctx
	return func() tea.Msg {
		lib, err := library.Load(xmlPath)
		if err != nil {
			return RunDoneMsg{Err: err}
		}

		ex := library.NewExtractor(lib, opts, events.append)
		progress.set(ex.Progress)

		summary, err := ex.Run(ctx, outDir)
		return RunDoneMsg{Summary: summary, Err: err}
	}
}

// loadPreview computes sample conversions for the confirmation screen.
func (m *Model) loadPreview() tea.Cmd {
	c := convert.New(m.rule(), nil)
	dir := m.convDir
	return func() tea.Msg {
		samples, err := c.Preview(dir, 3)
		return PreviewMsg{Samples: samples, Err: err}
	}
}

func (m Model) rule() model.PrefixRule {
	return model.NewPrefixRule(m.sourcePrefix, m.targetPrefix, m.stripSubpath)
}

// startConvert runs the batch conversion.
func (m *Model) startConvert() tea.Cmd {
	c := convert.New(m.rule(), m.events.append)
	m.progress.set(c.Progress)
	dir, ctx := m.convDir, m.ctx
	return func() tea.Msg {
		summary, err := c.Run(ctx, dir)
		return RunDoneMsg{Summary: summary, Err: err}
	}
}

// startSync copies artist directories with rsync.
func (m *Model) startSync() tea.Cmd {
	mgr := syncer.New(m.settings.SyncConcurrency, m.events.append)
	m.progress.set(mgr.Progress)
	src, dst, ctx := m.syncSrc, m.syncDst, m.ctx
	return func() tea.Msg {
		summary, err := mgr.Sync(ctx, src, dst)
		return RunDoneMsg{Summary: summary, Err: err}
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("🎵 navitunes"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Move an iTunes library to your music server"))
	b.WriteString("\n\n")

	switch m.state {
	case StateMenu:
		b.WriteString(m.viewMenu())
	case StateConvertTarget:
		b.WriteString(m.viewTargetChoice())
	case StateConvertPreview:
		b.WriteString(m.viewPreview())
	case StateRunning:
		b.WriteString(m.viewRunning())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	default:
		b.WriteString(m.viewPrompt())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewMenu() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("What would you like to do?"))
	b.WriteString("\n\n")
	b.WriteString("  1. Extract playlists from an iTunes library\n")
	b.WriteString("  2. Convert playlist paths for the server\n")
	b.WriteString("  3. Copy the music library with rsync\n")
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("  " + m.errMsg))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewPrompt() string {
	var b strings.Builder

	label := map[State]string{
		StateExtractXML:    "Where is your iTunes Music Library.xml?",
		StateExtractOut:    "Where should the playlists go?",
		StateConvertDir:    "Which directory holds the playlists to convert?",
		StateConvertSource: "Which prefix should be replaced? (suggestion prefilled)",
		StateConvertCustom: "Enter the custom target prefix:",
		StateConvertStrip:  "Remove a subpath after the prefix? (optional)",
		StateSyncSrc:       "Where is the music library to copy?",
		StateSyncDst:       "Where should it be copied to?",
	}[m.state]

	b.WriteString(subtitleStyle.Render(label))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n")
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(warningStyle.Render("! " + m.errMsg))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewTargetChoice() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Replace the prefix with:"))
	b.WriteString("\n\n")
	b.WriteString("  1. ../        (playlists live next to the artist folders)\n")
	b.WriteString("  2. /music/    (absolute server path)\n")
	b.WriteString("  3. something else\n")

	return b.String()
}

func (m Model) viewPreview() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Sample conversions:"))
	b.WriteString("\n\n")
	if len(m.samples) == 0 {
		b.WriteString(dimStyle.Render("  (first playlist has no track lines)"))
		b.WriteString("\n")
	}
	for _, s := range m.samples {
		b.WriteString(dimStyle.Render("  " + s.Input))
		b.WriteString("\n")
		b.WriteString(sampleStyle.Render("  → " + s.Output))
		b.WriteString("\n\n")
	}
	b.WriteString(infoStyle.Render(fmt.Sprintf("Convert %d playlist file(s)?", m.candidates)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewRunning() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	verb := map[Task]string{
		TaskExtract: "Extracting playlists...",
		TaskConvert: "Converting playlists...",
		TaskSync:    "Copying music...",
	}[m.task]
	b.WriteString(subtitleStyle.Render(verb))

	if done, total := m.progress.read(); total > 0 {
		b.WriteString(infoStyle.Render(fmt.Sprintf("  %d/%d", done, total)))
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	noun := map[Task]string{
		TaskExtract: "playlists written",
		TaskConvert: "playlists converted",
		TaskSync:    "artist folders copied",
	}[m.task]

	body := fmt.Sprintf("✨ Done!\n\n%d %s", m.summary.Succeeded(), noun)
	if failed := m.summary.Failed(); failed > 0 {
		body += fmt.Sprintf("\n%d failed", failed)
	}
	return boxStyle.Render(body)
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("❌ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case model.LevelError:
			style = errorStyle
			prefix = "✗"
		case model.LevelWarning:
			style = warningStyle
			prefix = "!"
		case model.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case model.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateMenu:
		return "1/2/3: choose • q: quit"
	case StateConvertTarget:
		return "1/2/3: choose • esc: back to menu"
	case StateConvertPreview:
		return "y: convert • n: change prefix • esc: back to menu"
	case StateRunning:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: back to menu • q: quit"
	}
	return "enter: continue • esc: back to menu"
}

// Run starts the TUI application.
func Run() error {
	p := tea.NewProgram(NewModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
