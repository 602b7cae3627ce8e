package fail

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ascentlabs/ascent/cli/pkg/terminal"
	"github.com/ascentlabs/ascent/client"
)

type UserError struct {
	Cause       error
	UserMessage string
	Solutions   []string
	TechDetails string
}

func (e *UserError) Error() string {
	var msg strings.Builder

	msg.WriteString(fmt.Sprintf("%s %s\n", terminal.ErrorSymbol, terminal.Bold(e.UserMessage)))

	if len(e.Solutions) > 0 {
		msg.WriteString(fmt.Sprintf("\n%s Try these solutions:\n", terminal.InfoSymbol))
		for i, solution := range e.Solutions {
			msg.WriteString(fmt.Sprintf("  %d. %s\n", i+1, solution))
		}
	}

	if e.TechDetails != "" {
		msg.WriteString(fmt.Sprintf("\nTechnical details: %s\n", e.TechDetails))
	}

	return msg.String()
}

func (e *UserError) Unwrap() error {
	return e.Cause
}

func NewSessionExpiredError(err error) *UserError {
	return &UserError{
		Cause:       err,
		UserMessage: "Your session has expired",
		Solutions: []string{
			"Log in again: ascent login",
		},
	}
}

func NewUnreachableError(endpoint string, err error) *UserError {
	return &UserError{
		Cause:       err,
		UserMessage: "Cannot reach the career-mentor service",
		Solutions: []string{
			"Check your network connection",
			fmt.Sprintf("Verify the endpoint is correct: %s", endpoint),
			"Set a different endpoint with --api-url or ASCENT_API_URL",
		},
		TechDetails: err.Error(),
	}
}

func NewRateLimitError(err *client.RateLimitError) *UserError {
	message := err.Detail
	if message == "" {
		message = "You have hit the daily usage limit. Please try again tomorrow."
	}
	return &UserError{
		Cause:       err,
		UserMessage: message,
	}
}

// Enhance converts the client error taxonomy into user-facing errors with
// actionable solutions. Errors it does not recognize pass through unchanged.
func Enhance(endpoint string, err error) error {
	if err == nil {
		return nil
	}

	var userErr *UserError
	if errors.As(err, &userErr) {
		return err
	}

	if errors.Is(err, client.ErrSessionExpired) {
		return NewSessionExpiredError(err)
	}

	var connErr *client.ConnectionError
	if errors.As(err, &connErr) {
		return NewUnreachableError(endpoint, connErr)
	}

	var rateLimited *client.RateLimitError
	if errors.As(err, &rateLimited) {
		return NewRateLimitError(rateLimited)
	}

	return err
}
