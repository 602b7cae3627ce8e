package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ascentlabs/ascent/cli/pkg/terminal"
	"github.com/ascentlabs/ascent/conversation"
)

const chatGreeting = "Hello! I analyzed your profile. I can help you find resources, explain concepts, or practice for interviews. What shall we tackle first?"

var chatQuickActions = []string{
	"How do I improve my skills?",
	"Explain the first roadmap phase",
	"Mock interview question",
	"Resume tips",
}

func NewChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "chat",
		Short:   "Talk to your AI career mentor",
		GroupID: "career",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return requireSession(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			replies := make(chan tea.Msg, 4)
			transcript := conversation.NewTranscript(getAPIClient(cmd.Context()),
				conversation.WithOpening(chatGreeting),
				conversation.WithReplyListener(func(message conversation.Message) {
					replies <- replyMsg(message)
				}),
			)
			// Replies that land after the view closes are dropped.
			defer transcript.Close()

			model := newChatModel(cmd.Context(), transcript, replies)
			program := tea.NewProgram(model,
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
				tea.WithAltScreen(),
			)
			_, err := program.Run()
			return err
		},
	}
}

type replyMsg conversation.Message

type chatModel struct {
	ctx        context.Context
	transcript *conversation.Transcript
	replies    <-chan tea.Msg

	viewport  viewport.Model
	textInput textinput.Model
	messages  []conversation.Message
	waiting   bool
	width     int
	height    int
	ready     bool
}

func newChatModel(ctx context.Context, transcript *conversation.Transcript, replies <-chan tea.Msg) chatModel {
	input := textinput.New()
	input.Placeholder = "Ask your mentor anything..."
	input.Focus()
	input.CharLimit = 2000

	return chatModel{
		ctx:        ctx,
		transcript: transcript,
		replies:    replies,
		textInput:  input,
		messages:   transcript.Messages(),
	}
}

func (m chatModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForEvent(m.replies))
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, terminal.Max(msg.Height-4, 4))
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = terminal.Max(msg.Height-4, 4)
		}
		m.refreshContent()

	case replyMsg:
		m.messages = m.transcript.Messages()
		m.waiting = false
		m.refreshContent()
		m.viewport.GotoBottom()
		cmds = append(cmds, waitForEvent(m.replies))

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			m.send(m.textInput.Value())
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// send starts a turn. The transcript enforces the single-in-flight rule and
// blank-input rejection; a refused send leaves the input untouched so the
// user does not lose what they typed.
func (m *chatModel) send(text string) {
	if !m.transcript.Send(m.ctx, text) {
		return
	}

	m.waiting = true
	m.messages = m.transcript.Messages()
	m.textInput.SetValue("")
	m.refreshContent()
	m.viewport.GotoBottom()
}

func (m *chatModel) refreshContent() {
	if !m.ready {
		return
	}

	width := terminal.Max(m.width, 20)
	var content strings.Builder
	for _, message := range m.messages {
		if message.Role == conversation.RoleUser {
			content.WriteString(terminal.RenderUserMessage(message.Content, width))
		} else {
			content.WriteString(terminal.RenderAssistantMessage(message.Content, width))
		}
		content.WriteString("\n")
	}

	if m.waiting {
		content.WriteString(terminal.Muted("Mentor is thinking..."))
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}

func (m chatModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	var footer strings.Builder
	if len(m.messages) <= 1 && !m.waiting {
		footer.WriteString(terminal.Muted("Try: "+strings.Join(chatQuickActions, " · ")) + "\n")
	}
	footer.WriteString(m.textInput.View())
	footer.WriteString("\n")
	footer.WriteString(terminal.Muted("enter send · esc quit"))

	return fmt.Sprintf("%s\n%s", m.viewport.View(), footer.String())
}
