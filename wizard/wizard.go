// Package wizard drives the multi-step résumé submission flow as an
// explicit state machine. The UI renders whatever step the machine is in
// and forwards user intent; every transition is validated here, so the
// submission can never leave with an empty role or a non-PDF file.
package wizard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ascentlabs/ascent/client"
)

type Step int

const (
	StepCollectingGoal Step = iota
	StepSelectingFile
	StepSubmitting
	StepSuccess
)

func (s Step) String() string {
	switch s {
	case StepCollectingGoal:
		return "collecting-goal"
	case StepSelectingFile:
		return "selecting-file"
	case StepSubmitting:
		return "submitting"
	case StepSuccess:
		return "success"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

type Level string

const (
	LevelFresher  Level = "Fresher"
	LevelJunior   Level = "Junior"
	LevelMidLevel Level = "Mid-Level"
	LevelSenior   Level = "Senior"
)

var Levels = []Level{LevelFresher, LevelJunior, LevelMidLevel, LevelSenior}

func ParseLevel(value string) (Level, error) {
	for _, level := range Levels {
		if string(level) == value {
			return level, nil
		}
	}
	return "", fmt.Errorf("unknown experience level %q (one of: Fresher, Junior, Mid-Level, Senior)", value)
}

// SuccessDwell is how long the UI holds the success view before handing off
// to the results screen, so the user perceives completion.
const SuccessDwell = 2 * time.Second

const pdfMediaType = "application/pdf"

// GenericFailureMessage is shown for submission failures that carry no
// server-supplied detail.
const GenericFailureMessage = "Something went wrong analyzing your resume. Please try again."

var (
	ErrRoleRequired = errors.New("target role must not be empty")
	ErrFileRequired = errors.New("no resume file selected")
)

type ErrNotPDF struct {
	MediaType string
}

func (e *ErrNotPDF) Error() string {
	return fmt.Sprintf("only PDF resumes are supported, got %q", e.MediaType)
}

type ErrInvalidTransition struct {
	From  Step
	Event string
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("cannot %s while in step %s", e.Event, e.From)
}

// File is the selected résumé. Data is held in memory; résumé PDFs are
// small and the submission needs a rewindable body anyway.
type File struct {
	Name string
	Data []byte
}

type FailureKind int

const (
	FailureGeneric FailureKind = iota
	FailureRateLimited
)

// Failure describes why the last submission bounced. RateLimited failures
// carry the server's human-readable reason verbatim.
type Failure struct {
	Kind    FailureKind
	Message string
}

// Uploader is the slice of the service client the wizard needs.
type Uploader interface {
	UploadResume(ctx context.Context, req client.UploadRequest) (*client.Profile, error)
}

type Machine struct {
	uploader Uploader

	step    Step
	role    string
	level   Level
	file    *File
	failure *Failure
}

func NewMachine(uploader Uploader) *Machine {
	return &Machine{
		uploader: uploader,
		step:     StepCollectingGoal,
		level:    LevelFresher,
	}
}

func (m *Machine) Step() Step   { return m.step }
func (m *Machine) Role() string { return m.role }
func (m *Machine) Level() Level { return m.level }

func (m *Machine) File() (*File, bool) {
	return m.file, m.file != nil
}

func (m *Machine) Failure() (*Failure, bool) {
	return m.failure, m.failure != nil
}

// SetRole and SetLevel edit the goal inputs. Edits are rejected once a
// submission is in flight or has succeeded.
func (m *Machine) SetRole(role string) error {
	if m.step == StepSubmitting || m.step == StepSuccess {
		return &ErrInvalidTransition{From: m.step, Event: "edit role"}
	}
	m.role = role
	return nil
}

func (m *Machine) SetLevel(level Level) error {
	if m.step == StepSubmitting || m.step == StepSuccess {
		return &ErrInvalidTransition{From: m.step, Event: "edit level"}
	}
	m.level = level
	return nil
}

// Next advances from goal collection to file selection. It is gated on a
// non-empty role; the level always holds a valid value.
func (m *Machine) Next() error {
	if m.step != StepCollectingGoal {
		return &ErrInvalidTransition{From: m.step, Event: "advance"}
	}
	if strings.TrimSpace(m.role) == "" {
		return ErrRoleRequired
	}

	m.step = StepSelectingFile
	return nil
}

// Back returns to goal collection. Always permitted from file selection and
// loses nothing: role, level and any selected file survive.
func (m *Machine) Back() error {
	if m.step != StepSelectingFile {
		return &ErrInvalidTransition{From: m.step, Event: "go back"}
	}

	m.step = StepCollectingGoal
	return nil
}

// SelectFile records the résumé choice. Anything that is not declared
// application/pdf is rejected on the spot without a state change.
func (m *Machine) SelectFile(name, mediaType string, data []byte) error {
	if m.step != StepSelectingFile {
		return &ErrInvalidTransition{From: m.step, Event: "select file"}
	}
	if mediaType != pdfMediaType {
		return &ErrNotPDF{MediaType: mediaType}
	}

	m.file = &File{Name: name, Data: data}
	m.failure = nil
	return nil
}

// Submit packages role, level and file into one multipart submission. The
// transition into StepSubmitting is one-way while the request is in flight.
// On success the machine lands in StepSuccess and returns the refreshed
// profile. On failure it regresses to StepSelectingFile with the goal inputs
// preserved and the file cleared, forcing re-selection, and records a
// classified failure.
func (m *Machine) Submit(ctx context.Context) (*client.Profile, error) {
	if m.step != StepSelectingFile {
		return nil, &ErrInvalidTransition{From: m.step, Event: "submit"}
	}
	if m.file == nil {
		return nil, ErrFileRequired
	}

	m.step = StepSubmitting
	m.failure = nil

	profile, err := m.uploader.UploadResume(ctx, client.UploadRequest{
		TargetRole:      m.role,
		ExperienceLevel: string(m.level),
		Filename:        m.file.Name,
		File:            bytes.NewReader(m.file.Data),
	})
	if err != nil {
		m.step = StepSelectingFile
		m.file = nil
		m.failure = classifyFailure(err)
		return nil, err
	}

	m.step = StepSuccess
	return profile, nil
}

func classifyFailure(err error) *Failure {
	var rateLimited *client.RateLimitError
	if errors.As(err, &rateLimited) {
		return &Failure{Kind: FailureRateLimited, Message: rateLimited.Detail}
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return &Failure{Kind: FailureGeneric, Message: apiErr.Detail}
	}

	return &Failure{Kind: FailureGeneric, Message: GenericFailureMessage}
}
