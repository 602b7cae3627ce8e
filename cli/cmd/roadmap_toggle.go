package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ascentlabs/ascent/cli/pkg/fail"
	"github.com/ascentlabs/ascent/cli/pkg/terminal"
	"github.com/ascentlabs/ascent/roadmap"
)

func NewRoadmapToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <phase> <item>",
		Short: "Toggle a roadmap task (numbers as shown by 'roadmap show')",
		Args:  cobra.ExactArgs(2),
		Example: `  # Mark the second task of phase 1 done (or undone)
  ascent roadmap toggle 1 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			phaseNumber, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("phase must be a number, got %q", args[0])
			}
			itemNumber, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("item must be a number, got %q", args[1])
			}

			apiClient := getAPIClient(cmd.Context())
			phases, err := fetchRoadmap(cmd)
			if err != nil {
				return fail.Enhance(apiClient.BaseURL(), err)
			}

			var resyncErr error
			coordinator := roadmap.NewCoordinator(apiClient, phases,
				roadmap.WithErrorListener(func(err error) { resyncErr = err }),
			)
			defer coordinator.Close()

			phaseIndex, itemIndex := phaseNumber-1, itemNumber-1
			if err := coordinator.Toggle(cmd.Context(), phaseIndex, itemIndex); err != nil {
				return err
			}
			coordinator.Wait()

			if resyncErr != nil {
				return fail.Enhance(apiClient.BaseURL(), resyncErr)
			}

			current := coordinator.Phases()
			if phaseIndex >= len(current) || itemIndex >= len(current[phaseIndex].ActionItems) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s The roadmap changed on the server; run 'ascent roadmap show' to see it.\n", terminal.SmallErrorSymbol)
				return nil
			}

			item := current[phaseIndex].ActionItems[itemIndex]
			expected := !phases[phaseIndex].ActionItems[itemIndex].Completed
			if item.Completed != expected {
				fmt.Fprintf(cmd.OutOrStdout(), "%s The service rejected the change; your roadmap was restored.\n", terminal.SmallErrorSymbol)
				return nil
			}

			if item.Completed {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s Done: %s\n", terminal.SuccessSymbol, terminal.CelebrationSymbol, item.Task)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s Unchecked: %s\n", terminal.SuccessSymbol, item.Task)
			}
			return nil
		},
	}
}
