package cmd

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ascentlabs/ascent/cli/pkg/fail"
	"github.com/ascentlabs/ascent/cli/pkg/terminal"
	"github.com/ascentlabs/ascent/client"
	"github.com/ascentlabs/ascent/wizard"
)

type uploadOptions struct {
	Role  string
	Level string
	File  string
}

func NewUploadCmd() *cobra.Command {
	options := &uploadOptions{}

	cmd := &cobra.Command{
		Use:     "upload [flags]",
		Short:   "Upload your resume for a skill-gap analysis",
		GroupID: "career",
		Long: `Upload a resume together with your target role and experience level.

Without flags this opens a step-by-step wizard. With --role and --file the
submission runs non-interactively, which suits scripts.`,
		Example: `  # Step-by-step wizard
  ascent upload

  # Non-interactive
  ascent upload --role "Senior Go Developer" --level Senior --file resume.pdf`,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return requireSession(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if options.File != "" || options.Role != "" {
				return runUploadScripted(cmd, options)
			}
			return runUploadWizard(cmd)
		},
	}

	cmd.Flags().StringVarP(&options.Role, "role", "r", "", "target role, e.g. \"Senior React Developer\"")
	cmd.Flags().StringVarP(&options.Level, "level", "l", string(wizard.LevelFresher), "experience level (Fresher, Junior, Mid-Level, Senior)")
	cmd.Flags().StringVarP(&options.File, "file", "f", "", "path to the resume PDF")

	return cmd
}

// runUploadScripted drives the same state machine the wizard uses, so the
// scripted path cannot skip validation.
func runUploadScripted(cmd *cobra.Command, options *uploadOptions) error {
	apiClient := getAPIClient(cmd.Context())
	machine := wizard.NewMachine(apiClient)

	level, err := wizard.ParseLevel(options.Level)
	if err != nil {
		return err
	}
	machine.SetLevel(level)
	machine.SetRole(options.Role)

	if err := machine.Next(); err != nil {
		return err
	}

	if options.File == "" {
		return wizard.ErrFileRequired
	}
	if err := selectResumeFile(machine, getFileSystem(cmd.Context()), options.File); err != nil {
		return err
	}

	spinner := terminal.NewSpinner(cmd.ErrOrStderr(), "Analyzing your resume... this can take a minute")
	spinner.Start()
	profile, err := machine.Submit(cmd.Context())
	spinner.Stop("")
	if err != nil {
		if failure, ok := machine.Failure(); ok {
			return fmt.Errorf("%s", failure.Message)
		}
		return fail.Enhance(apiClient.BaseURL(), err)
	}

	printUploadSuccess(cmd, profile)
	return nil
}

// selectResumeFile reads the file and feeds it to the machine. The media
// type comes from the extension; the machine rejects anything that is not
// declared application/pdf.
func selectResumeFile(machine *wizard.Machine, fs *afero.Afero, path string) error {
	data, err := fs.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	mediaType := mime.TypeByExtension(filepath.Ext(path))
	if mediaType != "" {
		// Strip optional parameters like charset.
		if parsed, _, err := mime.ParseMediaType(mediaType); err == nil {
			mediaType = parsed
		}
	}

	return machine.SelectFile(filepath.Base(path), mediaType, data)
}

func printUploadSuccess(cmd *cobra.Command, profile *client.Profile) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s Analysis complete for %s\n", terminal.SuccessSymbol, terminal.Bold(profile.TargetRole))
	if profile.Analysis != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Match score %s\n", terminal.ScoreBar(profile.Analysis.MatchScore, 24))
	}
	fmt.Fprintln(cmd.OutOrStdout(), "See the full breakdown with 'ascent profile' and your plan with 'ascent roadmap show'.")
}

func runUploadWizard(cmd *cobra.Command) error {
	apiClient := getAPIClient(cmd.Context())
	model := newUploadModel(cmd.Context(), wizard.NewMachine(apiClient), getFileSystem(cmd.Context()))

	program := tea.NewProgram(model, tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
	final, err := program.Run()
	if err != nil {
		return err
	}

	result := final.(uploadModel)
	if result.profile != nil {
		printUploadSuccess(cmd, result.profile)
	}
	return nil
}

type submitResultMsg struct {
	profile *client.Profile
	err     error
}

type successDwellMsg struct{}

type uploadModel struct {
	ctx     context.Context
	machine *wizard.Machine
	fs      *afero.Afero

	step      wizard.Step
	roleInput textinput.Model
	fileInput textinput.Model
	levelIdx  int
	errLine   string
	profile   *client.Profile
}

func newUploadModel(ctx context.Context, machine *wizard.Machine, fs *afero.Afero) uploadModel {
	roleInput := textinput.New()
	roleInput.Placeholder = "e.g. Senior React Developer"
	roleInput.Focus()
	roleInput.CharLimit = 120

	fileInput := textinput.New()
	fileInput.Placeholder = "path/to/resume.pdf"
	fileInput.CharLimit = 512

	return uploadModel{
		ctx:       ctx,
		machine:   machine,
		fs:        fs,
		step:      machine.Step(),
		roleInput: roleInput,
		fileInput: fileInput,
	}
}

func (m uploadModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m uploadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case submitResultMsg:
		// The machine settled before this message was emitted; mirror it.
		m.step = m.machine.Step()
		if msg.err != nil {
			if failure, ok := m.machine.Failure(); ok {
				m.errLine = failure.Message
			} else {
				m.errLine = msg.err.Error()
			}
			m.fileInput.SetValue("")
			m.fileInput.Focus()
			return m, nil
		}

		m.profile = msg.profile
		return m, tea.Tick(wizard.SuccessDwell, func(time.Time) tea.Msg {
			return successDwellMsg{}
		})

	case successDwellMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateInputs(msg)
}

func (m uploadModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	// Submission is one-way: no edits or navigation until it settles.
	if m.step == wizard.StepSubmitting || m.step == wizard.StepSuccess {
		return m, nil
	}

	switch m.step {
	case wizard.StepCollectingGoal:
		switch msg.Type {
		case tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyUp, tea.KeyLeft:
			m.levelIdx = (m.levelIdx + len(wizard.Levels) - 1) % len(wizard.Levels)
			m.machine.SetLevel(wizard.Levels[m.levelIdx])
			return m, nil
		case tea.KeyDown, tea.KeyRight, tea.KeyTab:
			m.levelIdx = (m.levelIdx + 1) % len(wizard.Levels)
			m.machine.SetLevel(wizard.Levels[m.levelIdx])
			return m, nil
		case tea.KeyEnter:
			m.errLine = ""
			m.machine.SetRole(m.roleInput.Value())
			if err := m.machine.Next(); err != nil {
				m.errLine = err.Error()
				return m, nil
			}
			m.step = m.machine.Step()
			m.roleInput.Blur()
			m.fileInput.Focus()
			return m, textinput.Blink
		}

	case wizard.StepSelectingFile:
		switch msg.Type {
		case tea.KeyEsc:
			m.errLine = ""
			if err := m.machine.Back(); err == nil {
				m.step = m.machine.Step()
				m.fileInput.Blur()
				m.roleInput.Focus()
			}
			return m, textinput.Blink
		case tea.KeyEnter:
			m.errLine = ""
			path := strings.TrimSpace(m.fileInput.Value())
			if path == "" {
				m.errLine = wizard.ErrFileRequired.Error()
				return m, nil
			}
			if err := selectResumeFile(m.machine, m.fs, path); err != nil {
				m.errLine = err.Error()
				return m, nil
			}

			m.step = wizard.StepSubmitting
			machine := m.machine
			ctx := m.ctx
			return m, func() tea.Msg {
				profile, err := machine.Submit(ctx)
				return submitResultMsg{profile: profile, err: err}
			}
		}
	}

	return m.updateInputs(msg)
}

func (m uploadModel) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.step {
	case wizard.StepCollectingGoal:
		m.roleInput, cmd = m.roleInput.Update(msg)
	case wizard.StepSelectingFile:
		m.fileInput, cmd = m.fileInput.Update(msg)
	}
	return m, cmd
}

func (m uploadModel) View() string {
	var view strings.Builder

	switch m.step {
	case wizard.StepCollectingGoal:
		view.WriteString(terminal.Heading("Define your goal") + "\n")
		view.WriteString(terminal.Muted("What role are you aiming for?") + "\n\n")
		view.WriteString("Target role: " + m.roleInput.View() + "\n\n")
		view.WriteString("Experience level:\n")
		for i, level := range wizard.Levels {
			view.WriteString(terminal.Cursor(i == m.levelIdx))
			view.WriteString(string(level) + "\n")
		}
		view.WriteString("\n" + terminal.Muted("↑/↓ pick level · enter continue · esc quit"))

	case wizard.StepSelectingFile:
		view.WriteString(terminal.Heading("Upload your resume") + "\n")
		view.WriteString(terminal.Muted("Only PDF files are supported.") + "\n\n")
		view.WriteString("File: " + m.fileInput.View() + "\n")
		view.WriteString("\n" + terminal.Muted("enter submit · esc back"))

	case wizard.StepSubmitting:
		view.WriteString(terminal.Heading("Analyzing...") + "\n")
		view.WriteString(terminal.Muted("Your resume is being analyzed. This can take a minute.") + "\n")

	case wizard.StepSuccess:
		view.WriteString(fmt.Sprintf("%s %s\n", terminal.SuccessSymbol, terminal.Bold("Analysis complete!")))
		view.WriteString(terminal.Muted("Taking you to your results...") + "\n")
	}

	if m.errLine != "" {
		view.WriteString(fmt.Sprintf("\n%s %s\n", terminal.SmallErrorSymbol, m.errLine))
	}

	view.WriteString("\n")
	return view.String()
}
