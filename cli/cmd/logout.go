package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ascentlabs/ascent/cli/pkg/terminal"
)

func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "logout",
		Short:   "Clear the stored session credential",
		GroupID: "account",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Clearing is unconditional and idempotent; logging out while
			// logged out is fine.
			getSessionStore(cmd.Context()).Clear()
			fmt.Fprintf(cmd.OutOrStdout(), "%s Signed out\n", terminal.SuccessSymbol)
			return nil
		},
	}
}
