package wizard

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/ascentlabs/ascent/client"
)

type uploaderFunc func(ctx context.Context, req client.UploadRequest) (*client.Profile, error)

func (f uploaderFunc) UploadResume(ctx context.Context, req client.UploadRequest) (*client.Profile, error) {
	return f(ctx, req)
}

func readyToSubmit(t *testing.T, uploader Uploader) *Machine {
	t.Helper()

	machine := NewMachine(uploader)
	if err := machine.SetRole("Senior Go Developer"); err != nil {
		t.Fatalf("SetRole failed: %v", err)
	}
	if err := machine.SetLevel(LevelMidLevel); err != nil {
		t.Fatalf("SetLevel failed: %v", err)
	}
	if err := machine.Next(); err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if err := machine.SelectFile("resume.pdf", "application/pdf", []byte("%PDF-1.5")); err != nil {
		t.Fatalf("SelectFile failed: %v", err)
	}
	return machine
}

func TestNextRequiresRole(t *testing.T) {
	machine := NewMachine(nil)

	if err := machine.Next(); !errors.Is(err, ErrRoleRequired) {
		t.Errorf("expected ErrRoleRequired for an empty role, got %v", err)
	}

	machine.SetRole("   ")
	if err := machine.Next(); !errors.Is(err, ErrRoleRequired) {
		t.Errorf("expected ErrRoleRequired for a blank role, got %v", err)
	}
	if machine.Step() != StepCollectingGoal {
		t.Errorf("expected machine to stay in %s, got %s", StepCollectingGoal, machine.Step())
	}

	machine.SetRole("Senior Go Developer")
	if err := machine.Next(); err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if machine.Step() != StepSelectingFile {
		t.Errorf("expected %s, got %s", StepSelectingFile, machine.Step())
	}
}

func TestSelectFileRejectsNonPDF(t *testing.T) {
	machine := NewMachine(nil)
	machine.SetRole("Senior Go Developer")
	machine.Next()

	err := machine.SelectFile("resume.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", []byte("x"))
	var notPDF *ErrNotPDF
	if !errors.As(err, &notPDF) {
		t.Fatalf("expected ErrNotPDF, got %v", err)
	}

	// The rejection leaves the machine exactly where it was.
	if machine.Step() != StepSelectingFile {
		t.Errorf("expected machine to stay in %s, got %s", StepSelectingFile, machine.Step())
	}
	if _, ok := machine.File(); ok {
		t.Error("expected no file to be recorded")
	}
}

func TestBackPreservesInputs(t *testing.T) {
	machine := readyToSubmit(t, nil)

	if err := machine.Back(); err != nil {
		t.Fatalf("Back failed: %v", err)
	}
	if machine.Step() != StepCollectingGoal {
		t.Errorf("expected %s, got %s", StepCollectingGoal, machine.Step())
	}

	if machine.Role() != "Senior Go Developer" || machine.Level() != LevelMidLevel {
		t.Errorf("expected goal inputs to survive, got role=%q level=%q", machine.Role(), machine.Level())
	}
	if file, ok := machine.File(); !ok || file.Name != "resume.pdf" {
		t.Error("expected the selected file to survive going back")
	}
}

func TestSubmitSendsGoalAndFile(t *testing.T) {
	var got client.UploadRequest
	var gotBody []byte
	uploader := uploaderFunc(func(ctx context.Context, req client.UploadRequest) (*client.Profile, error) {
		got = req
		gotBody, _ = io.ReadAll(req.File)
		return &client.Profile{TargetRole: req.TargetRole}, nil
	})

	machine := readyToSubmit(t, uploader)

	profile, err := machine.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if got.TargetRole != "Senior Go Developer" || got.ExperienceLevel != "Mid-Level" || got.Filename != "resume.pdf" {
		t.Errorf("unexpected submission: %+v", got)
	}
	if string(gotBody) != "%PDF-1.5" {
		t.Errorf("unexpected file body %q", gotBody)
	}
	if machine.Step() != StepSuccess {
		t.Errorf("expected %s, got %s", StepSuccess, machine.Step())
	}
	if profile == nil || profile.TargetRole != "Senior Go Developer" {
		t.Errorf("expected the refreshed profile, got %+v", profile)
	}
}

func TestSubmitWithoutFile(t *testing.T) {
	machine := NewMachine(nil)
	machine.SetRole("Senior Go Developer")
	machine.Next()

	if _, err := machine.Submit(context.Background()); !errors.Is(err, ErrFileRequired) {
		t.Errorf("expected ErrFileRequired, got %v", err)
	}
}

func TestSubmitRateLimitedRegressesToFileSelection(t *testing.T) {
	detail := "Daily upload limit reached (2/day). Please try again tomorrow."
	uploader := uploaderFunc(func(ctx context.Context, req client.UploadRequest) (*client.Profile, error) {
		return nil, &client.RateLimitError{Detail: detail}
	})

	machine := readyToSubmit(t, uploader)

	if _, err := machine.Submit(context.Background()); err == nil {
		t.Fatal("expected Submit to fail")
	}

	if machine.Step() != StepSelectingFile {
		t.Errorf("expected regression to %s, got %s", StepSelectingFile, machine.Step())
	}
	// The file is cleared to force re-selection; the goal inputs survive.
	if _, ok := machine.File(); ok {
		t.Error("expected the file to be cleared after a failed submission")
	}
	if machine.Role() != "Senior Go Developer" || machine.Level() != LevelMidLevel {
		t.Errorf("expected goal inputs to survive, got role=%q level=%q", machine.Role(), machine.Level())
	}

	failure, ok := machine.Failure()
	if !ok {
		t.Fatal("expected a recorded failure")
	}
	if failure.Kind != FailureRateLimited {
		t.Errorf("expected FailureRateLimited, got %v", failure.Kind)
	}
	if failure.Message != detail {
		t.Errorf("expected the server reason verbatim, got %q", failure.Message)
	}

	// Selecting a new file clears the failure banner.
	if err := machine.SelectFile("resume-v2.pdf", "application/pdf", []byte("%PDF")); err != nil {
		t.Fatalf("SelectFile failed: %v", err)
	}
	if _, ok := machine.Failure(); ok {
		t.Error("expected the failure to clear on re-selection")
	}
}

func TestSubmitFailureClassification(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantKind    FailureKind
		wantMessage string
	}{
		{
			name:        "rate limited carries the server detail",
			err:         &client.RateLimitError{Detail: "slow down"},
			wantKind:    FailureRateLimited,
			wantMessage: "slow down",
		},
		{
			name:        "api error with detail surfaces it",
			err:         &client.APIError{StatusCode: 422, Detail: "Could not extract text from the PDF"},
			wantKind:    FailureGeneric,
			wantMessage: "Could not extract text from the PDF",
		},
		{
			name:        "opaque errors fall back to the generic message",
			err:         errors.New("connection reset"),
			wantKind:    FailureGeneric,
			wantMessage: GenericFailureMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uploader := uploaderFunc(func(ctx context.Context, req client.UploadRequest) (*client.Profile, error) {
				return nil, tt.err
			})
			machine := readyToSubmit(t, uploader)

			machine.Submit(context.Background())

			failure, ok := machine.Failure()
			if !ok {
				t.Fatal("expected a recorded failure")
			}
			if failure.Kind != tt.wantKind || failure.Message != tt.wantMessage {
				t.Errorf("got failure %+v, want kind=%v message=%q", failure, tt.wantKind, tt.wantMessage)
			}
		})
	}
}

func TestEditsRejectedWhileSubmitting(t *testing.T) {
	var machine *Machine
	uploader := uploaderFunc(func(ctx context.Context, req client.UploadRequest) (*client.Profile, error) {
		// Mid-flight the goal inputs are frozen.
		if err := machine.SetRole("other"); err == nil {
			t.Error("expected SetRole to be rejected while submitting")
		}
		if err := machine.SetLevel(LevelSenior); err == nil {
			t.Error("expected SetLevel to be rejected while submitting")
		}
		return &client.Profile{}, nil
	})

	machine = readyToSubmit(t, uploader)
	if _, err := machine.Submit(context.Background()); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	// And they stay frozen after success.
	var invalid *ErrInvalidTransition
	if err := machine.SetRole("other"); !errors.As(err, &invalid) {
		t.Errorf("expected ErrInvalidTransition after success, got %v", err)
	}
	if _, err := machine.Submit(context.Background()); !errors.As(err, &invalid) {
		t.Errorf("expected ErrInvalidTransition for a second submit, got %v", err)
	}
}
