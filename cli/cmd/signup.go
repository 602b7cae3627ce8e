package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ascentlabs/ascent/cli/pkg/fail"
	"github.com/ascentlabs/ascent/cli/pkg/terminal"
)

type signupOptions struct {
	Email    string
	FullName string
}

func NewSignupCmd() *cobra.Command {
	options := &signupOptions{}

	cmd := &cobra.Command{
		Use:     "signup [flags]",
		Short:   "Create a new account",
		GroupID: "account",
		RunE: func(cmd *cobra.Command, args []string) error {
			email := strings.TrimSpace(options.Email)
			if email == "" {
				return errors.New("email must not be empty")
			}
			fullName := strings.TrimSpace(options.FullName)
			if fullName == "" {
				return errors.New("name must not be empty")
			}

			password, err := readPassword(cmd, "Password: ")
			if err != nil {
				return err
			}
			confirmation, err := readPassword(cmd, "Confirm password: ")
			if err != nil {
				return err
			}
			if password != confirmation {
				return errors.New("passwords do not match")
			}

			apiClient := getAPIClient(cmd.Context())
			if err := apiClient.Signup(cmd.Context(), email, password, fullName); err != nil {
				return fail.Enhance(apiClient.BaseURL(), err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Account created. Sign in with 'ascent login'.\n", terminal.SuccessSymbol)
			return nil
		},
	}

	cmd.Flags().StringVarP(&options.Email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&options.FullName, "name", "n", "", "full name")

	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("name")

	return cmd
}
