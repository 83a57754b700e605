package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/petcore/host"
	"github.com/nathoo/petcore/types"
)

// rawLine stores an unstyled output line with its classification,
// so we can re-wrap and re-style when the terminal is resized.
type rawLine struct {
	text    string
	kind    host.Kind
	emotion types.Emotion // pet lines are tinted with the emotion they were said in
	isInput bool          // true for echoed user input
}

// Model is the Bubble Tea model for the petcore TUI.
type Model struct {
	host  *host.Host
	delay time.Duration

	viewport viewport.Model
	input    textinput.Model
	history  *History

	rawLines []rawLine // accumulated conversation lines (unstyled, for re-wrapping)
	greeting types.Result

	width    int
	height   int
	ready    bool
	pending  bool // a reply is scheduled; new messages are refused
	quitting bool
}

// outputMsg carries host output into the Update loop.
type outputMsg struct {
	input string // echoed user input (empty for the greeting)
	lines []host.Line
	emote types.Emotion
}

// replyMsg fires when the reply delay for input has elapsed.
type replyMsg struct {
	input string
}

// New creates a TUI model wired to the given host.
func New(h *host.Host, greeting types.Result, delay time.Duration) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Say something to " + h.Name() + " or type /help"
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	return Model{
		host:     h,
		delay:    delay,
		input:    ti,
		history:  NewHistory(100),
		greeting: greeting,
	}
}

// Run starts the Bubble Tea program.
func Run(h *host.Host, greeting types.Result, delay time.Duration) error {
	m := New(h, greeting, delay)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Init shows the session greeting.
func (m Model) Init() tea.Cmd {
	g := m.greeting
	return tea.Batch(textinput.Blink, func() tea.Msg {
		return outputMsg{lines: m.host.Render(g), emote: g.Emotion}
	})
}

// Update handles messages (key presses, window resize, replies).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := m.height - 2 // 1 status bar + 1 input line
		if vpHeight < 1 {
			vpHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}

		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "up":
			if line, ok := m.history.Older(m.input.Value()); ok {
				m.recall(line)
			}
			return m, nil

		case "down":
			if line, ok := m.history.Newer(); ok {
				m.recall(line)
			}
			return m, nil

		case "pgup", "pgdown":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

	case replyMsg:
		r := m.host.Engine.ProcessMessage(msg.input)
		m.pending = false
		m = m.appendOutput(outputMsg{lines: m.host.Render(r), emote: r.Emotion})

	case outputMsg:
		m = m.appendOutput(msg)
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	cmds = append(cmds, inputCmd)

	return m, tea.Batch(cmds...)
}

// handleEnter processes the submitted input line.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	raw := m.input.Value()
	input := strings.TrimSpace(raw)
	if input == "" {
		return m, nil
	}

	// Meta-commands run immediately.
	if host.IsCommand(input) {
		m.input.SetValue("")
		m.history.Record(input)

		lines, quit := m.host.Exec(context.Background(), input)
		m = m.appendOutput(outputMsg{input: input, lines: lines, emote: m.host.Engine.State.Pet.Emotion})
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	// One message at a time; the typed text stays in the box.
	if m.pending {
		return m, nil
	}

	m.input.SetValue("")
	m.history.Record(input)
	m.pending = true
	m = m.appendOutput(outputMsg{input: input})

	if m.delay <= 0 {
		return m, func() tea.Msg { return replyMsg{input: raw} }
	}
	return m, tea.Tick(m.delay, func(time.Time) tea.Msg { return replyMsg{input: raw} })
}

// recall puts a history line in the input box.
func (m *Model) recall(line string) {
	m.input.SetValue(line)
	m.input.CursorEnd()
}

// appendOutput adds lines to the conversation and refreshes the viewport.
func (m Model) appendOutput(msg outputMsg) Model {
	if msg.input != "" {
		m.rawLines = append(m.rawLines, rawLine{
			text: "> " + msg.input, isInput: true,
		})
	}

	for _, line := range msg.lines {
		m.rawLines = append(m.rawLines, rawLine{text: line.Text, kind: line.Kind, emotion: msg.emote})
	}

	// Blank line separator between turns, except after echoed input that
	// is still waiting for its reply.
	if len(msg.lines) > 0 {
		m.rawLines = append(m.rawLines, rawLine{})
	}

	m.refreshViewport()

	return m
}

// refreshViewport re-wraps and re-styles all raw lines at the current width
// and updates the viewport content.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := m.width
	if width < 10 {
		width = 10
	}

	name := m.host.Name()
	var styled []string
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}
		if rl.isInput {
			styled = append(styled, stylePlayerInput.Render(wordWrap(rl.text, width)))
			continue
		}
		styled = append(styled, renderLine(rl, name, width))
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// wordWrap wraps text to fit within the given width, breaking at word
// boundaries. Preserves existing newlines within the text.
func wordWrap(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	var result strings.Builder
	words := strings.Fields(text)
	lineLen := 0

	for i, word := range words {
		wLen := len(word)

		if i == 0 {
			result.WriteString(word)
			lineLen = wLen
			continue
		}

		if lineLen+1+wLen > width {
			result.WriteString("\n")
			result.WriteString(word)
			lineLen = wLen
		} else {
			result.WriteString(" ")
			result.WriteString(word)
			lineLen += 1 + wLen
		}
	}

	return result.String()
}

// View renders the full TUI layout: viewport + status bar + input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled
// (we use those for input history).
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
