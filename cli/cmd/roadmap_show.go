package cmd

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/ascentlabs/ascent/cli/pkg/fail"
)

func NewRoadmapShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "show",
		Short:   "Print the roadmap as a table",
		Aliases: []string{"ls", "list"},
		RunE: func(cmd *cobra.Command, args []string) error {
			phases, err := fetchRoadmap(cmd)
			if err != nil {
				return fail.Enhance(getAPIClient(cmd.Context()).BaseURL(), err)
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Phase", "Week", "Item", "Done", "Task"})
			table.SetAutoWrapText(false)
			table.SetRowLine(false)

			for phaseIndex, phase := range phases {
				for itemIndex, item := range phase.ActionItems {
					done := ""
					if item.Completed {
						done = "x"
					}
					table.Append([]string{
						fmt.Sprintf("%d %s", phaseIndex+1, phase.Phase),
						phase.Week,
						fmt.Sprintf("%d", itemIndex+1),
						done,
						item.Task,
					})
				}
			}
			table.Render()

			var done, total int
			for _, phase := range phases {
				for _, item := range phase.ActionItems {
					total++
					if item.Completed {
						done++
					}
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d/%d tasks completed\n", done, total)

			if total > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(`
Toggle a task with 'ascent roadmap toggle <phase> <item>' or open the interactive board with 'ascent roadmap board'.`))
			}
			return nil
		},
	}
}
