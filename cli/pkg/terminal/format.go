package terminal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	boldStyle = lipgloss.NewStyle().Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	userMessageStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Padding(0, 1)

	assistantMessageStyle = lipgloss.NewStyle().
				Padding(0, 1)

	completedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Strikethrough(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	scoreBarFilled = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	scoreBarEmpty  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

func Bold(s string) string    { return boldStyle.Render(s) }
func Muted(s string) string   { return mutedStyle.Render(s) }
func Heading(s string) string { return headingStyle.Render(s) }

func RenderUserMessage(content string, width int) string {
	frameSize := userMessageStyle.GetHorizontalFrameSize()
	return userMessageStyle.Width(Min(width-frameSize, lipgloss.Width(content)+2)).Render(content)
}

func RenderAssistantMessage(content string, width int) string {
	frameSize := assistantMessageStyle.GetHorizontalFrameSize()
	return assistantMessageStyle.Width(width - frameSize).Render(RenderMarkdown(content, width-frameSize))
}

// RenderMarkdown renders mentor replies, which arrive as markdown. Rendering
// failures fall back to the raw text; a chat reply is never dropped over
// presentation.
func RenderMarkdown(content string, width int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}

	out, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimSpace(out)
}

// ScoreBar renders a 0-100 score as a fixed-width bar, e.g. "████░░░░ 48".
func ScoreBar(score, width int) string {
	if width <= 0 {
		width = 20
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	filled := score * width / 100
	bar := scoreBarFilled.Render(strings.Repeat("█", filled)) +
		scoreBarEmpty.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%s %3d", bar, score)
}

// Checkbox renders a roadmap action item line.
func Checkbox(task string, completed bool) string {
	if completed {
		return fmt.Sprintf("[x] %s", completedStyle.Render(task))
	}
	return fmt.Sprintf("[ ] %s", task)
}

func Cursor(active bool) string {
	if active {
		return cursorStyle.Render("> ")
	}
	return "  "
}

func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
