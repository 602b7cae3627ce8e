package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/ascentlabs/ascent/client"
)

func NewRoadmapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "roadmap",
		Short:   "Work with your learning roadmap",
		GroupID: "career",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// The root PersistentPreRunE is shadowed by defining one here,
			// so invoke it explicitly before the session guard.
			if parent := cmd.Root(); parent.PersistentPreRunE != nil {
				if err := parent.PersistentPreRunE(cmd, args); err != nil {
					return err
				}
			}
			return requireSession(cmd)
		},
	}

	cmd.AddCommand(NewRoadmapShowCmd())
	cmd.AddCommand(NewRoadmapToggleCmd())
	cmd.AddCommand(NewRoadmapBoardCmd())

	return cmd
}

// fetchRoadmap loads the profile and returns its roadmap phases.
func fetchRoadmap(cmd *cobra.Command) ([]client.RoadmapPhase, error) {
	profile, err := getAPIClient(cmd.Context()).Me(cmd.Context())
	if err != nil {
		return nil, err
	}
	if profile.Analysis == nil || len(profile.Analysis.Roadmap) == 0 {
		return nil, errors.New("no roadmap found\n\nUpload a resume with 'ascent upload' to generate your learning path")
	}
	return profile.Analysis.Roadmap, nil
}
