package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/interviewgen/internal/interview"
	"github.com/abhisek/interviewgen/internal/llm"
	"github.com/abhisek/interviewgen/internal/logging"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate questions once and print the raw model output",
	RunE: func(cmd *cobra.Command, args []string) error {
		req := interview.JobRequest{}
		req.Name, _ = cmd.Flags().GetString("name")
		req.Objective, _ = cmd.Flags().GetString("objective")
		number, _ := cmd.Flags().GetInt("number")
		req.Number = strconv.Itoa(number)
		req.Context, _ = cmd.Flags().GetString("context")

		logLevel, _ := cmd.Flags().GetString("log-level")
		logger, err := logging.New(logLevel, "console")
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		cfg, err := llm.ConfigFromEnv()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		gen, err := newGenerator(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}

		resp, err := gen.Generate(cmd.Context(), req)
		if err != nil {
			return err
		}
		if resp.Content == "" {
			return errors.New("no content generated")
		}

		fmt.Fprintln(cmd.OutOrStdout(), resp.Content)
		return nil
	},
}

func init() {
	generateCmd.Flags().String("name", "", "Interview or role title")
	generateCmd.Flags().String("objective", "", "What the interview should assess")
	generateCmd.Flags().Int("number", 5, "Number of questions to generate")
	generateCmd.Flags().String("context", "", "Background used to tailor the questions")
	generateCmd.Flags().String("log-level", "warn", "Log level for completion logs")

	for _, f := range []string{"name", "objective", "context"} {
		_ = generateCmd.MarkFlagRequired(f)
	}
}
