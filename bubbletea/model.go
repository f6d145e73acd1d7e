package bubbletea

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/chat"
	"github.com/fwojciec/chat/markdown"
)

const (
	sidebarWidth = 25
	// inputHeight and statusHeight are the rows below the transcript.
	inputHeight  = 1
	statusHeight = 1
)

// Mode is the input mode of the UI.
type Mode int

const (
	// ModeEditing sends keys to the input line.
	ModeEditing Mode = iota
	// ModeNormal interprets keys as commands.
	ModeNormal
)

var _ tea.Model = Model{}

// Model is the Bubble Tea model for the chat TUI.
type Model struct {
	// Input is the text input component. Exported for test access.
	Input textinput.Model
	// Viewport is the scrollable transcript. Exported for test access.
	Viewport viewport.Model

	spinner   spinner.Model
	run       AgentFunc
	session   *chat.Session
	theme     chat.Theme
	styles    Styles
	hl        chat.Highlighter
	modelName string
	copy      func(string) error

	messages []chat.Message
	open     int // index of the assistant message still receiving text, -1 if none
	usage    chat.UsageTotals

	mode       Mode
	autoScroll bool
	notice     string

	running bool
	cancel  context.CancelFunc
	eventCh chan chat.Event
	doneCh  chan error
	ready   bool
	height  int
}

// New creates a new TUI Model with the given agent function, session, and theme.
func New(run AgentFunc, session *chat.Session, theme chat.Theme, opts ...Option) Model {
	ti := textinput.New()
	ti.Placeholder = "Type a message..."
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 0

	styles := NewStyles(theme)
	m := Model{
		Input:      ti,
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.System)),
		run:        run,
		session:    session,
		theme:      theme,
		styles:     styles,
		hl:         chat.PlainHighlighter{},
		copy:       clipboard.WriteAll,
		open:       -1,
		autoScroll: true,
	}
	for _, o := range opts {
		o(&m)
	}
	return m
}

// Running returns whether a turn is outstanding.
func (m Model) Running() bool { return m.running }

// Mode returns the current input mode.
func (m Model) Mode() Mode { return m.mode }

// Messages returns the displayed transcript.
func (m Model) Messages() []chat.Message { return m.messages }

// Usage returns the accumulated token usage.
func (m Model) Usage() chat.Usage { return m.usage.Totals() }

// SetRunningWithCancel is a test helper that puts the model in a running state
// with a cancel function.
func SetRunningWithCancel(m Model, cancel func()) (Model, tea.Cmd) {
	m.running = true
	m.cancel = cancel
	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m = m.refresh()
		return m, cmd

	case StreamEventMsg:
		m = m.processEvent(msg.Event)
		m = m.refresh()
		if m.eventCh != nil {
			return m, listenForEvent(m.eventCh, m.doneCh)
		}
		return m, nil

	case AgentDoneMsg:
		m.running = false
		m.cancel = nil
		m.eventCh = nil
		m.doneCh = nil
		m = m.closeOpen()
		if msg.Err != nil && !errors.Is(msg.Err, context.Canceled) {
			m.messages = append(m.messages, chat.Message{Role: chat.RoleError, Text: msg.Err.Error(), Frozen: true})
		}
		m = m.refresh()
		if m.mode != ModeEditing {
			return m, nil
		}
		cmd := m.Input.Focus()
		return m, cmd
	}

	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var right strings.Builder
	right.WriteString(m.Viewport.View())
	right.WriteString("\n")
	right.WriteString(m.statusLine())
	right.WriteString("\n")
	right.WriteString(m.Input.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar(), right.String())
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	width := max(msg.Width-sidebarWidth, 10)
	vpHeight := max(msg.Height-inputHeight-statusHeight, 1)
	m.height = msg.Height

	if !m.ready {
		m.Viewport = viewport.New(width, vpHeight)
		m.ready = true
	} else {
		m.Viewport.Width = width
		m.Viewport.Height = vpHeight
	}
	m.Input.Width = width - len(m.Input.Prompt) - 1
	return m.refresh()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		if m.running {
			if m.cancel != nil {
				m.cancel()
			}
			return m, nil
		}
		return m, tea.Quit
	}
	m.notice = ""
	if m.mode == ModeNormal {
		return m.handleNormalKey(msg)
	}

	switch msg.Type {
	case tea.KeyEsc:
		m.mode = ModeNormal
		m.Input.Blur()
		return m, nil

	case tea.KeyEnter:
		if m.running {
			m.notice = fmt.Sprintf("%s: wait for the reply or press Ctrl+C", chat.ErrTurnInProgress)
			return m, nil
		}
		text := strings.TrimSpace(m.Input.Value())
		if text == "" {
			return m, nil
		}
		return m.submitInput(text)
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

func (m Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "i":
		m.mode = ModeEditing
		cmd := m.Input.Focus()
		return m, cmd
	case "j", "down":
		m.Viewport.ScrollDown(1)
		m.autoScroll = false
	case "k", "up":
		m.Viewport.ScrollUp(1)
		m.autoScroll = false
	case "G":
		m.autoScroll = true
		m.Viewport.GotoBottom()
	case "c":
		if m.running {
			m.notice = "cannot clear while a reply is streaming"
			return m, nil
		}
		m.messages = nil
		m.session.Entries = nil
		m = m.refresh()
	case "y":
		m.notice = m.copyLastReply()
	case "q":
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) copyLastReply() string {
	for i := len(m.messages) - 1; i >= 0; i-- {
		if m.messages[i].Role != chat.RoleAssistant {
			continue
		}
		if err := m.copy(m.messages[i].Text); err != nil {
			return fmt.Sprintf("copy failed: %s", err)
		}
		return "copied last reply"
	}
	return "nothing to copy"
}

func (m Model) submitInput(text string) (tea.Model, tea.Cmd) {
	m.Input.SetValue("")
	m.autoScroll = true

	m.session.Entries = append(m.session.Entries, chat.UserEntry{Text: text})
	m.session.UpdatedAt = time.Now()
	m.messages = append(m.messages, chat.Message{Role: chat.RoleUser, Text: text, Frozen: true})
	m.open = -1

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.eventCh = make(chan chat.Event, 256)
	m.doneCh = make(chan error, 1)
	m.running = true
	m = m.refresh()

	return m, tea.Batch(
		startAgent(m.run, ctx, m.session, m.eventCh, m.doneCh),
		listenForEvent(m.eventCh, m.doneCh),
		m.spinner.Tick,
	)
}

// processEvent applies one event of the running turn to the transcript.
func (m Model) processEvent(evt chat.Event) Model {
	switch e := evt.(type) {
	case chat.EventContentDelta:
		if m.open < 0 {
			m.messages = append(m.messages, chat.Message{Role: chat.RoleAssistant})
			m.open = len(m.messages) - 1
		}
		m.messages[m.open].Append(e.Text)
	case chat.EventToolCall:
		m = m.closeOpen()
		m = m.appendSystem(fmt.Sprintf("Tool call: %s %s", e.Name, e.Arguments))
	case chat.EventToolResult:
		m = m.appendSystem(fmt.Sprintf("Tool result (%s): %s", e.Name, e.Result))
	case chat.EventUsage:
		m.usage.Apply(e.Usage)
	case chat.EventError:
		m = m.closeOpen()
		m.messages = append(m.messages, chat.Message{Role: chat.RoleError, Text: e.Message, Frozen: true})
	case chat.EventEnd:
		m = m.closeOpen()
	}
	return m
}

func (m Model) closeOpen() Model {
	if m.open >= 0 {
		m.messages[m.open].Freeze()
		m.open = -1
	}
	return m
}

// appendSystem adds a one-line System message sized to the transcript.
func (m Model) appendSystem(text string) Model {
	m.messages = append(m.messages, chat.Message{
		Role:   chat.RoleSystem,
		Text:   summarize(text, m.Viewport.Width),
		Frozen: true,
	})
	return m
}

func (m Model) refresh() Model {
	if !m.ready {
		return m
	}
	m.Viewport.SetContent(m.renderContent())
	if m.autoScroll {
		m.Viewport.GotoBottom()
	}
	return m
}

func (m Model) renderContent() string {
	width := m.Viewport.Width
	wrap := lipgloss.NewStyle().Width(width)

	var b strings.Builder
	for i, msg := range m.messages {
		style, label := m.styles.roleStyle(msg.Role)
		b.WriteString(style.Render(label))
		if i == m.open && m.running {
			b.WriteString(" ")
			b.WriteString(m.spinner.View())
		}
		b.WriteString("\n")
		for _, line := range markdown.Render(msg.Text, m.hl, m.theme) {
			b.WriteString(wrap.Render(RenderLine(line)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	if m.running && m.open < 0 {
		b.WriteString(m.spinner.View())
		b.WriteString(m.styles.Muted.Render(" waiting for reply"))
	}
	return b.String()
}

func (m Model) statusLine() string {
	switch {
	case m.notice != "":
		return m.styles.Muted.Render(m.notice)
	case m.running:
		return m.styles.Muted.Render("Generating... Ctrl+C to cancel")
	case m.mode == ModeNormal:
		return m.styles.Muted.Render("NORMAL  i edit, j/k scroll, y copy, q quit")
	default:
		return m.styles.Muted.Render("Enter to send, Esc for normal mode, Ctrl+C to quit")
	}
}

// startAgent runs the agent in a goroutine and signals completion.
func startAgent(run AgentFunc, ctx context.Context, session *chat.Session, eventCh chan<- chat.Event, doneCh chan<- error) tea.Cmd {
	return func() tea.Msg {
		err := run(ctx, session, func(e chat.Event) {
			select {
			case eventCh <- e:
			case <-ctx.Done():
				// The final EventEnd must still reach the UI after a cancel.
				if _, ok := e.(chat.EventEnd); ok {
					eventCh <- e
				}
			}
		})
		close(eventCh)
		doneCh <- err
		return nil
	}
}

// listenForEvent waits for the next event from the channel.
// When the channel closes, it reads the error from doneCh and returns AgentDoneMsg.
func listenForEvent(ch <-chan chat.Event, doneCh <-chan error) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-ch
		if !ok {
			err := <-doneCh
			return AgentDoneMsg{Err: err}
		}
		return StreamEventMsg{Event: evt}
	}
}
