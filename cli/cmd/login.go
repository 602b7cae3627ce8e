package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ascentlabs/ascent/cli/pkg/fail"
	"github.com/ascentlabs/ascent/cli/pkg/terminal"
	"github.com/ascentlabs/ascent/client"
)

type loginOptions struct {
	Email string
}

func NewLoginCmd() *cobra.Command {
	options := &loginOptions{}

	cmd := &cobra.Command{
		Use:     "login [flags]",
		Short:   "Sign in and store the session credential",
		GroupID: "account",
		Example: `  # Sign in interactively
  ascent login

  # Sign in with the email preset
  ascent login --email dev@example.com`,
		RunE: func(cmd *cobra.Command, args []string) error {
			email := options.Email
			if email == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Email: ")
				if _, err := fmt.Fscanln(cmd.InOrStdin(), &email); err != nil {
					return fmt.Errorf("failed to read email: %w", err)
				}
			}
			email = strings.TrimSpace(email)
			if email == "" {
				return errors.New("email must not be empty")
			}

			password, err := readPassword(cmd, "Password: ")
			if err != nil {
				return err
			}

			apiClient := getAPIClient(cmd.Context())
			credential, err := apiClient.Login(cmd.Context(), email, password)
			if err != nil {
				if errors.Is(err, client.ErrInvalidCredentials) {
					return errors.New("invalid email or password")
				}
				return fail.Enhance(apiClient.BaseURL(), err)
			}

			if err := getSessionStore(cmd.Context()).Set(credential); err != nil {
				return fmt.Errorf("signed in, but failed to store the credential: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Signed in as %s\n", terminal.SuccessSymbol, email)
			return nil
		},
	}

	cmd.Flags().StringVarP(&options.Email, "email", "e", "", "account email")

	return cmd
}

// readPassword reads without echo when attached to a terminal and falls back
// to plain reads otherwise (tests, pipes).
func readPassword(cmd *cobra.Command, prompt string) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), prompt)

	if file, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		passwordBytes, err := term.ReadPassword(int(file.Fd()))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return strings.TrimSpace(string(passwordBytes)), nil
	}

	var password string
	if _, err := fmt.Fscanln(cmd.InOrStdin(), &password); err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimSpace(password), nil
}
