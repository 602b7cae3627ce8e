package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ascentlabs/ascent/cli/pkg/fail"
	"github.com/ascentlabs/ascent/cli/pkg/terminal"
)

func NewProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "profile",
		Short:   "Show your profile and skill-gap analysis",
		GroupID: "career",
		Aliases: []string{"me"},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return requireSession(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient := getAPIClient(cmd.Context())
			profile, err := apiClient.Me(cmd.Context())
			if err != nil {
				return fail.Enhance(apiClient.BaseURL(), err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s  %s\n", terminal.Heading(profile.FullName), terminal.Muted(profile.Email))
			fmt.Fprintf(out, "Target role: %s (%s)\n", terminal.Bold(profile.TargetRole), profile.ExperienceLevel)

			analysis := profile.Analysis
			if analysis == nil {
				fmt.Fprintf(out, "\nNo analysis yet. Upload a resume with 'ascent upload'.\n")
				return nil
			}

			fmt.Fprintf(out, "\nMatch score   %s\n", terminal.ScoreBar(analysis.MatchScore, 24))
			if analysis.ExecutiveSummary != "" {
				fmt.Fprintf(out, "\n%s\n", analysis.ExecutiveSummary)
			}

			if len(analysis.SkillBreakdown) > 0 {
				fmt.Fprintf(out, "\n%s\n", terminal.Heading("Skill breakdown"))
				for _, skill := range analysis.SkillBreakdown {
					fmt.Fprintf(out, "  %-18s %s\n", skill.Category, terminal.ScoreBar(skill.Score, 24))
				}
			}

			if len(analysis.MissingSkills) > 0 {
				fmt.Fprintf(out, "\n%s\n", terminal.Heading("Missing skills"))
				for _, skill := range analysis.MissingSkills {
					fmt.Fprintf(out, "  %s %s\n", terminal.ActionSymbol, skill)
				}
			}

			return nil
		},
	}
}
