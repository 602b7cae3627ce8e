package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ascentlabs/ascent/cli/pkg/fail"
	"github.com/ascentlabs/ascent/cli/pkg/terminal"
)

type optimizeOptions struct {
	Output string
}

func NewOptimizeCmd() *cobra.Command {
	options := &optimizeOptions{}

	cmd := &cobra.Command{
		Use:     "optimize [flags]",
		Short:   "Generate a LaTeX resume that reflects your completed roadmap tasks",
		GroupID: "career",
		Example: `  # Print the optimized resume
  ascent optimize

  # Write it to a file
  ascent optimize -o resume.tex`,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return requireSession(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient := getAPIClient(cmd.Context())

			spinner := terminal.NewSpinner(cmd.ErrOrStderr(), "Optimizing your resume...")
			spinner.Start()
			content, err := apiClient.OptimizeResume(cmd.Context())
			spinner.Stop("")
			if err != nil {
				return fail.Enhance(apiClient.BaseURL(), err)
			}

			if options.Output == "" {
				fmt.Fprintln(cmd.OutOrStdout(), content)
				return nil
			}

			fs := getFileSystem(cmd.Context())
			if err := fs.WriteFile(options.Output, []byte(content), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", options.Output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Wrote %s\n", terminal.SuccessSymbol, options.Output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&options.Output, "output", "o", "", "write the LaTeX document to a file")

	return cmd
}
