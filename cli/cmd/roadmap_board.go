package cmd

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ascentlabs/ascent/cli/pkg/fail"
	"github.com/ascentlabs/ascent/cli/pkg/terminal"
	"github.com/ascentlabs/ascent/client"
	"github.com/ascentlabs/ascent/roadmap"
)

func NewRoadmapBoardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Open the interactive roadmap board",
		Long: `Open the roadmap as an interactive checklist board.

Toggles apply instantly and are confirmed with the service in the
background; if a confirmation fails the board reverts to the server state.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient := getAPIClient(cmd.Context())
			phases, err := fetchRoadmap(cmd)
			if err != nil {
				return fail.Enhance(apiClient.BaseURL(), err)
			}

			events := make(chan tea.Msg, 16)
			coordinator := roadmap.NewCoordinator(apiClient, phases,
				roadmap.WithChangeListener(func(phases []client.RoadmapPhase) {
					events <- phasesChangedMsg(phases)
				}),
				roadmap.WithCelebration(func(task string) {
					events <- celebrationMsg(task)
				}),
				roadmap.WithErrorListener(func(err error) {
					events <- resyncErrorMsg{err}
				}),
			)
			// Unmount semantics: once the board closes, late confirmation
			// results are dropped rather than applied.
			defer coordinator.Close()

			model := newBoardModel(cmd.Context(), coordinator, phases, events)
			program := tea.NewProgram(model, tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
			_, err = program.Run()
			return err
		},
	}
}

type phasesChangedMsg []client.RoadmapPhase
type celebrationMsg string
type resyncErrorMsg struct{ err error }

type boardModel struct {
	ctx         context.Context
	coordinator *roadmap.Coordinator
	phases      []client.RoadmapPhase
	events      <-chan tea.Msg

	cursorPhase int
	cursorItem  int
	celebration string
	statusLine  string
	width       int
}

func newBoardModel(ctx context.Context, coordinator *roadmap.Coordinator, phases []client.RoadmapPhase, events <-chan tea.Msg) boardModel {
	return boardModel{
		ctx:         ctx,
		coordinator: coordinator,
		phases:      phases,
		events:      events,
		width:       80,
	}
}

func (m boardModel) Init() tea.Cmd {
	return waitForEvent(m.events)
}

// waitForEvent bridges coordinator callbacks into the single-threaded update
// loop, so state changes from background confirmations are applied in order
// with user input.
func waitForEvent(events <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-events
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case phasesChangedMsg:
		m.phases = msg
		m.clampCursor()
		return m, waitForEvent(m.events)

	case celebrationMsg:
		m.celebration = string(msg)
		return m, waitForEvent(m.events)

	case resyncErrorMsg:
		m.statusLine = fmt.Sprintf("%s Sync failed: %s", terminal.SmallErrorSymbol, msg.err)
		return m, waitForEvent(m.events)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m boardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit

	case "up", "k":
		if m.cursorItem > 0 {
			m.cursorItem--
		}

	case "down", "j":
		if m.cursorItem < len(m.currentItems())-1 {
			m.cursorItem++
		}

	case "left", "h":
		if m.cursorPhase > 0 {
			m.cursorPhase--
			m.clampCursor()
		}

	case "right", "l", "tab":
		if m.cursorPhase < len(m.phases)-1 {
			m.cursorPhase++
			m.clampCursor()
		}

	case " ", "enter":
		m.celebration = ""
		m.statusLine = ""
		if err := m.coordinator.Toggle(m.ctx, m.cursorPhase, m.cursorItem); err != nil {
			m.statusLine = fmt.Sprintf("%s %s", terminal.SmallErrorSymbol, err)
		}
	}

	return m, nil
}

func (m *boardModel) currentItems() []client.ActionItem {
	if m.cursorPhase >= len(m.phases) {
		return nil
	}
	return m.phases[m.cursorPhase].ActionItems
}

func (m *boardModel) clampCursor() {
	if m.cursorPhase >= len(m.phases) {
		m.cursorPhase = terminal.Max(len(m.phases)-1, 0)
	}
	items := m.currentItems()
	if m.cursorItem >= len(items) {
		m.cursorItem = terminal.Max(len(items)-1, 0)
	}
}

func (m boardModel) View() string {
	if len(m.phases) == 0 {
		return "No roadmap phases.\n\nPress q to quit.\n"
	}

	phase := m.phases[m.cursorPhase]

	var view strings.Builder
	view.WriteString(fmt.Sprintf("%s  %s\n", terminal.Heading(phase.Phase), terminal.Muted(phase.Week)))
	if len(phase.Topics) > 0 {
		view.WriteString(terminal.Muted("Topics: "+strings.Join(phase.Topics, ", ")) + "\n")
	}
	view.WriteString("\n")

	for i, item := range phase.ActionItems {
		view.WriteString(terminal.Cursor(i == m.cursorItem))
		view.WriteString(terminal.Checkbox(item.Task, item.Completed))
		view.WriteString("\n")
	}

	view.WriteString("\n")
	if m.celebration != "" {
		view.WriteString(fmt.Sprintf("%s Nice! Completed: %s\n", terminal.CelebrationSymbol, m.celebration))
	}
	if m.statusLine != "" {
		view.WriteString(m.statusLine + "\n")
	}

	view.WriteString(terminal.Muted(fmt.Sprintf(
		"phase %d/%d · ←/→ switch phase · ↑/↓ move · space toggle · q quit",
		m.cursorPhase+1, len(m.phases),
	)))
	view.WriteString("\n")

	return view.String()
}
