package terminal

import "github.com/charmbracelet/lipgloss"

var (
	infoSymbolStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33")).
			Bold(true).
			SetString("ⓘ")

	errorSymbolStyle = lipgloss.NewStyle().
				SetString("❌")

	smallErrorSymbolStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196")).
				Bold(true).
				SetString("✗")

	successSymbolStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("10")).
				Bold(true).
				SetString("✔")

	actionSymbolStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39")).
				SetString("▶")

	celebrationSymbolStyle = lipgloss.NewStyle().
				SetString("🎉")
)

var (

	// InfoSymbol (ⓘ)
	InfoSymbol = infoSymbolStyle.String()

	// ErrorSymbol (❌)
	ErrorSymbol = errorSymbolStyle.String()

	// SmallErrorSymbol (✗)
	SmallErrorSymbol = smallErrorSymbolStyle.String()

	// SuccessSymbol (✔)
	SuccessSymbol = successSymbolStyle.String()

	// ActionSymbol (▶)
	ActionSymbol = actionSymbolStyle.String()

	// CelebrationSymbol (🎉)
	CelebrationSymbol = celebrationSymbolStyle.String()
)
