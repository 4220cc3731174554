package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/tutor/internal/domain"
	"github.com/renato0307/tutor/internal/logging"
	"github.com/renato0307/tutor/internal/ports"
	"github.com/renato0307/tutor/internal/services"
	"github.com/renato0307/tutor/internal/theme"
)

type uiState int

const (
	stateStarting uiState = iota
	stateChat
	stateExtending
	stateSummary
)

const (
	inputHeight    = 3
	errorAreaLines = 2
)

// Options configures the tutoring screen
type Options struct {
	AutoStart       bool // Start immediately with Defaults instead of showing the form
	Context         context.Context
	Courses         []string
	Defaults        StartFormResult
	DevMode         bool
	ErrorClearDelay time.Duration
	Sound           ports.SoundPlayer // Optional chime on the warning, time-up and end
	TickInterval    time.Duration
	TranscriptsDir  string
}

// Model hosts a SessionController on the bubbletea event loop.
// Controller requests run as commands and come back as completionMsg.
type Model struct {
	autoStart      bool
	controller     *services.SessionController
	courses        []string
	ctx            context.Context
	defaults       StartFormResult
	devMode        bool
	errorManager   *ErrorManager
	extensionForm  *Dialog
	height         int
	help           help.Model
	input          textarea.Model
	keys           KeyMap
	lastSubmitted  string
	notice         string
	showDebug      bool
	sound          ports.SoundPlayer
	spinner        spinner.Model
	spinning       bool
	startForm      *Dialog
	state          uiState
	tickInterval   time.Duration
	transcriptsDir string
	viewport       viewport.Model
	width          int
}

// NewModel creates the tutoring screen around controller
func NewModel(controller *services.SessionController, opts Options) *Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second
	}

	helpModel := help.New()
	helpModel.Styles.ShortKey = theme.HelpKeyStyle
	helpModel.Styles.ShortDesc = theme.HelpDescStyle
	helpModel.Styles.FullKey = theme.HelpKeyStyle
	helpModel.Styles.FullDesc = theme.HelpDescStyle

	input := textarea.New()
	input.Placeholder = "Type your answer"
	input.ShowLineNumbers = false
	input.CharLimit = 4000
	input.SetHeight(inputHeight)
	input.KeyMap.InsertNewline.SetEnabled(false)
	input.Cursor.SetMode(cursor.CursorStatic)

	return &Model{
		autoStart:      opts.AutoStart,
		controller:     controller,
		courses:        opts.Courses,
		ctx:            opts.Context,
		defaults:       opts.Defaults,
		devMode:        opts.DevMode,
		errorManager:   NewErrorManager(opts.ErrorClearDelay),
		height:         24,
		sound:          opts.Sound,
		help:           helpModel,
		input:          input,
		keys:           NewKeyMap(),
		spinner:        spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(theme.SpinnerStyle)),
		state:          stateStarting,
		tickInterval:   opts.TickInterval,
		transcriptsDir: opts.TranscriptsDir,
		viewport:       viewport.New(80, 10),
		width:          80,
	}
}

func (m *Model) Init() tea.Cmd {
	if m.autoStart {
		return m.startSession(m.defaults)
	}
	return m.openStartForm()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case completionMsg:
		out := m.controller.Complete(msg.completion)
		cmd := m.handleOutcome(out)
		if out.Err != nil {
			switch {
			case msg.completion.Kind == services.RequestStart:
				return m, tea.Batch(cmd, m.openStartForm())
			case msg.completion.Kind == services.RequestContinue && !msg.completion.TimeUp():
				m.restoreInput()
			}
		}
		return m, cmd

	case clockTickMsg:
		return m, m.handleTick(msg)

	case clearErrorMsg:
		m.errorManager.Clear(msg.id)
		return m, nil

	case transcriptSavedMsg:
		if msg.err != nil {
			return m, m.errorManager.SetError(fmt.Errorf("failed to save transcript: %w", msg.err))
		}
		m.notice = "Transcript saved to " + msg.path
		return m, nil

	case noticeMsg:
		m.notice = msg.text
		return m, nil

	case spinner.TickMsg:
		if !m.controller.Busy() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			logging.Logger.Info("Quitting tutor", "phase", m.controller.Phase())
			m.controller.Abandon()
			return m, tea.Quit
		}
	}

	switch m.state {
	case stateStarting:
		return m.updateStarting(msg)
	case stateChat:
		return m.updateChat(msg)
	case stateExtending:
		return m.updateExtending(msg)
	case stateSummary:
		return m.updateSummary(msg)
	}
	return m, nil
}

func (m *Model) updateStarting(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.startForm == nil {
		return m, nil
	}

	updated, cmd := m.startForm.Update(msg)
	m.startForm = updated.(*Dialog)

	if content, ok := m.startForm.Content().(*StartForm); ok && content.Completed {
		result := content.Result()
		m.startForm = nil

		if result.Cancelled {
			if m.controller.Phase() == domain.PhaseEnded {
				m.enterSummary()
				return m, nil
			}
			return m, tea.Quit
		}
		m.defaults = result
		return m, m.startSession(result)
	}
	return m, cmd
}

func (m *Model) updateChat(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, m.keys.Send):
		return m, m.submit()

	case key.Matches(keyMsg, m.keys.Newline):
		m.input.InsertString("\n")
		return m, nil

	case key.Matches(keyMsg, m.keys.Extend):
		if !m.controller.ExtensionOffered() {
			return m, m.errorManager.SetError(domain.ErrNoExtensionOffer)
		}
		return m, m.openExtensionForm()

	case key.Matches(keyMsg, m.keys.End):
		m.controller.Abandon()
		m.notice = ""
		return m, m.openStartForm()

	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
		return m, nil

	case key.Matches(keyMsg, m.keys.Debug) && m.devMode:
		m.showDebug = !m.showDebug
		m.resize()
		return m, nil

	case key.Matches(keyMsg, m.keys.ScrollUp, m.keys.ScrollDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateExtending(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.extensionForm.Update(msg)
	m.extensionForm = updated.(*Dialog)

	content, ok := m.extensionForm.Content().(*ExtensionForm)
	if !ok || !content.Completed {
		return m, cmd
	}

	result := content.Result()
	focusCmd := m.closeExtensionForm()
	switch {
	case result.Cancelled:
		// The offer stays open; the highlighted choice is kept for reopening
		if result.Minutes > 0 {
			if err := m.controller.SelectExtension(result.Minutes); err != nil {
				logging.Logger.Debug("Extension choice not kept", "minutes", result.Minutes, "error", err)
			}
		}
		return m, focusCmd
	case result.Minutes == 0:
		m.controller.DismissExtension()
		return m, focusCmd
	}

	if err := m.controller.SelectExtension(result.Minutes); err != nil {
		return m, tea.Batch(focusCmd, m.errorManager.SetError(err))
	}
	req, err := m.controller.ApplySelectedExtension()
	if err != nil {
		return m, tea.Batch(focusCmd, m.errorManager.SetError(err))
	}
	m.notice = fmt.Sprintf("Added %d minutes", result.Minutes)
	return m, tea.Batch(focusCmd, m.execute(req))
}

func (m *Model) updateSummary(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Download):
		req, err := m.controller.DownloadTranscript()
		if err != nil {
			return m, m.errorManager.SetError(err)
		}
		m.notice = "Downloading transcript..."
		return m, tea.Batch(m.execute(req), m.startSpinner())

	case key.Matches(keyMsg, m.keys.NewSession):
		m.notice = ""
		return m, m.openStartForm()

	case key.Matches(keyMsg, m.keys.ScrollUp, m.keys.ScrollDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleTick(msg clockTickMsg) tea.Cmd {
	if msg.generation != m.controller.Generation() {
		return nil
	}

	cmd := m.handleOutcome(m.controller.Tick())
	if m.state == stateExtending && !m.controller.ExtensionOffered() {
		cmd = tea.Batch(cmd, m.closeExtensionForm())
	}

	switch m.controller.Phase() {
	case domain.PhaseNotStarted, domain.PhaseEnded:
		return cmd
	}
	return tea.Batch(cmd, m.scheduleTick())
}

// handleOutcome applies controller events to the screen and runs its requests
func (m *Model) handleOutcome(out services.Outcome) tea.Cmd {
	var cmds []tea.Cmd
	if out.Err != nil {
		cmds = append(cmds, m.errorManager.SetError(out.Err))
	}

	for _, event := range out.Events {
		logging.Logger.Debug("Controller event", "event", event.Kind.String())
		switch event.Kind {
		case services.EventSessionStarted:
			m.state = stateChat
			m.notice = ""
			cmds = append(cmds, m.input.Focus(), m.scheduleTick())
		case services.EventTurnApplied:
			if event.Reconciliation.Diverged() {
				m.notice = "The tutor revised earlier messages"
			}
		case services.EventExtensionOffered:
			cmds = append(cmds, m.openExtensionForm(), m.playSound(ports.SoundWarning))
		case services.EventTimeUp:
			m.notice = "Time is up, the tutor is wrapping up"
			cmds = append(cmds, m.closeExtensionForm(), m.playSound(ports.SoundTimeUp))
		case services.EventDurationSyncFailed:
			cmds = append(cmds, m.errorManager.SetWarning(fmt.Errorf("the tutor was not told about the extension: %w", event.Err)))
		case services.EventPersistenceFailed:
			cmds = append(cmds, m.errorManager.SetWarning(fmt.Errorf("the session could not be saved: %w", event.Err)))
		case services.EventEnded:
			m.extensionForm = nil
			m.enterSummary()
			cmds = append(cmds, m.playSound(ports.SoundEnded))
		case services.EventTranscriptReady:
			cmds = append(cmds, m.saveTranscript(event.Transcript))
		}
	}

	for _, req := range out.Requests {
		cmds = append(cmds, m.execute(req))
	}
	if len(out.Requests) > 0 {
		cmds = append(cmds, m.startSpinner())
	}

	m.refresh()
	return tea.Batch(cmds...)
}

func (m *Model) playSound(event string) tea.Cmd {
	if m.sound == nil {
		return nil
	}
	player := m.sound
	return func() tea.Msg {
		if err := player.PlaySoundForEvent(event); err != nil {
			logging.Logger.Debug("Failed to play sound", "event", event, "error", err)
		}
		return nil
	}
}

func (m *Model) startSession(selection StartFormResult) tea.Cmd {
	req, err := m.controller.StartSession(selection.CourseRef, selection.TopicRef, selection.DurationMinutes)
	if err != nil {
		return tea.Batch(m.errorManager.SetError(err), m.openStartForm())
	}
	m.state = stateStarting
	m.notice = ""
	m.refresh()
	return tea.Batch(m.execute(req), m.startSpinner())
}

func (m *Model) submit() tea.Cmd {
	text := m.input.Value()
	req, err := m.controller.SubmitTurn(text)
	if err != nil {
		return m.errorManager.SetError(err)
	}
	m.lastSubmitted = text
	m.input.Reset()
	m.refresh()
	return tea.Batch(m.execute(req), m.startSpinner())
}

// restoreInput puts a failed reply back so it can be resent.
// Anything typed while the turn was in flight is kept instead.
func (m *Model) restoreInput() {
	if m.lastSubmitted == "" || m.input.Value() != "" {
		return
	}
	m.input.SetValue(m.lastSubmitted)
	m.lastSubmitted = ""
}

// execute runs req off the event loop
func (m *Model) execute(req *services.Request) tea.Cmd {
	if req == nil {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		return completionMsg{completion: req.Execute(ctx)}
	}
}

func (m *Model) scheduleTick() tea.Cmd {
	generation := m.controller.Generation()
	return tea.Tick(m.tickInterval, func(time.Time) tea.Msg {
		return clockTickMsg{generation: generation}
	})
}

func (m *Model) startSpinner() tea.Cmd {
	if m.spinning {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

func (m *Model) saveTranscript(data []byte) tea.Cmd {
	if m.transcriptsDir == "" {
		return func() tea.Msg {
			return noticeMsg{text: fmt.Sprintf("Transcript downloaded (%d bytes)", len(data))}
		}
	}
	path := filepath.Join(m.transcriptsDir, m.controller.Session().ID+".txt")
	return func() tea.Msg {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return transcriptSavedMsg{err: err}
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return transcriptSavedMsg{err: err}
		}
		return transcriptSavedMsg{path: path}
	}
}

func (m *Model) openStartForm() tea.Cmd {
	form := NewStartForm(m.courses, m.defaults)
	m.startForm = NewDialog("New session", form, m.devMode)
	m.state = stateStarting
	m.input.Blur()
	return m.startForm.Init()
}

func (m *Model) openExtensionForm() tea.Cmd {
	if m.state != stateChat || !m.controller.ExtensionOffered() {
		return nil
	}
	remaining := formatClock(m.controller.Session().RemainingSeconds)
	selected := 0
	if pending, ok := m.controller.PendingExtension(); ok {
		selected = pending.Minutes
	}
	form := NewExtensionForm(m.controller.ExtensionChoices(), selected, remaining)
	m.extensionForm = NewDialog("Extend session", form, m.devMode)
	m.state = stateExtending
	m.input.Blur()
	return m.extensionForm.Init()
}

func (m *Model) closeExtensionForm() tea.Cmd {
	if m.state != stateExtending {
		return nil
	}
	m.extensionForm = nil
	m.state = stateChat
	return m.input.Focus()
}

func (m *Model) enterSummary() {
	m.state = stateSummary
	m.input.Blur()
	m.refresh()
	m.viewport.GotoTop()
}

// resize lays out the viewport around the fixed-height parts of the screen
func (m *Model) resize() {
	width := m.width
	if m.showDebug {
		width = m.width * 2 / 3
	}
	m.viewport.Width = max(width, 10)
	m.input.SetWidth(max(m.width, 10))
	m.help.Width = m.width

	fixed := lipgloss.Height(renderHeader(m.devMode, "")) + 2 + inputHeight + errorAreaLines + 2
	if m.help.ShowAll {
		fixed += 4
	}
	m.viewport.Height = max(m.height-fixed, 3)
	m.refresh()
}

// refresh re-renders the message log or the summary into the viewport
func (m *Model) refresh() {
	if m.state == stateSummary {
		m.viewport.SetContent(renderSummary(m.controller.Summary(), m.viewport.Width))
		return
	}

	if m.controller.AwaitingYesNo() {
		m.input.Placeholder = "Answer yes or no"
	} else {
		m.input.Placeholder = "Type your answer"
	}
	m.viewport.SetContent(renderMessages(m.controller.Messages(), m.viewport.Width))
	m.viewport.GotoBottom()
}

func (m *Model) View() string {
	switch m.state {
	case stateStarting:
		if m.startForm != nil {
			return m.startForm.View() + "\n" + m.renderFooter()
		}
		return renderHeader(m.devMode, "") + "\n" + m.spinner.View() + " Starting your session...\n" + m.renderFooter()
	case stateSummary:
		return renderHeader(m.devMode, "Session summary") + "\n" +
			m.viewport.View() + "\n" +
			m.renderFooter() + "\n" +
			m.help.View(summaryKeys{keys: m.keys})
	}

	main := m.viewport.View()
	if m.showDebug {
		panel := renderDebugPanel(m.controller.Session(), m.controller.InFlight(), m.controller.Generation(), m.width-m.viewport.Width)
		main = lipgloss.JoinHorizontal(lipgloss.Top, main, panel)
	}

	var b strings.Builder
	b.WriteString(renderHeader(m.devMode, ""))
	b.WriteString("\n")
	b.WriteString(main)
	b.WriteString("\n")
	b.WriteString(renderStatusBar(m.controller.Session(), m.width))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	b.WriteString("\n")
	b.WriteString(m.help.View(chatKeys{devMode: m.devMode, keys: m.keys}))

	// The countdown stays visible under the extension prompt
	if m.state == stateExtending && m.extensionForm != nil {
		return compositeOverlay(b.String(), theme.OverlayBoxStyle.Render(m.extensionForm.View()), m.width, m.height)
	}
	return b.String()
}

// renderFooter shows the spinner, the current error or warning, or a notice
func (m *Model) renderFooter() string {
	if err := m.errorManager.Err(); err != nil {
		if m.errorManager.IsWarning() {
			return theme.WarningStyle.Render(formatErrorForDisplay(err, m.width, warningPrefix))
		}
		return theme.ErrorStyle.Render(formatErrorForDisplay(err, m.width, errorPrefix))
	}
	if m.controller.Busy() && m.state != stateStarting {
		return m.spinner.View() + " " + theme.LabelStyle.Render(busyLabel(m.controller.InFlight()))
	}
	return theme.LabelStyle.Render(m.notice)
}

func busyLabel(kind services.RequestKind) string {
	switch kind {
	case services.RequestContinue:
		return "The tutor is thinking..."
	case services.RequestSave:
		return "Saving session..."
	case services.RequestUpdateDuration:
		return "Updating session length..."
	case services.RequestDownload:
		return "Downloading transcript..."
	}
	return "Working..."
}
