package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nomadreads/nomadreads-server/internal/config"
	"github.com/nomadreads/nomadreads-server/internal/domain/recommendation"
)

func newPromptsCmd() *cobra.Command {
	promptsCmd := &cobra.Command{
		Use:   "prompts",
		Short: "Inspect the prompts sent to the model",
	}

	showCmd := &cobra.Command{
		Use:   "show [destination]",
		Short: "Print the system prompt and the user prompt for a destination",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompts, err := promptSetFromFlag(cmd)
			if err != nil {
				return err
			}
			destination := "<destination>"
			if len(args) == 1 {
				destination = args[0]
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "system:\n%s\n\nuser:\n%s\n", prompts.System, prompts.UserPrompt(destination))
			return nil
		},
	}

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that a prompt override file parses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			if file == "" {
				return fmt.Errorf("--file is required")
			}
			if _, err := config.LoadPromptConfig(file); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", file)
			return nil
		},
	}

	promptsCmd.PersistentFlags().StringP("file", "f", "", "Prompt override YAML file")
	promptsCmd.AddCommand(showCmd)
	promptsCmd.AddCommand(validateCmd)
	return promptsCmd
}

func promptSetFromFlag(cmd *cobra.Command) (recommendation.PromptSet, error) {
	file, _ := cmd.Flags().GetString("file")
	overrides, err := config.LoadPromptConfig(file)
	if err != nil {
		return recommendation.PromptSet{}, err
	}
	if overrides == nil {
		return recommendation.NewPromptSet("", ""), nil
	}
	return recommendation.NewPromptSet(overrides.SystemPrompt, overrides.UserPromptPrefix), nil
}
