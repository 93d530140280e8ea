package main

import (
	"fmt"
	"time"

	"carebridge/internal/continuity"
	"carebridge/pkg/utils"

	"github.com/spf13/cobra"
)

func newPromptCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the daily reflection prompt",
		RunE: func(cmd *cobra.Command, args []string) error {
			day := time.Now().UTC()
			if date != "" {
				parsed, err := time.Parse(utils.DayLayout, date)
				if err != nil {
					return fmt.Errorf("--date must be YYYY-MM-DD: %w", err)
				}
				day = parsed
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", utils.DayKey(day), continuity.PromptFor(day))
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "UTC day as YYYY-MM-DD (default today)")
	return cmd
}
