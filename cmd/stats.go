package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show assessment activity statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		s, err := st.EventRepo().Stats(cmd.Context())
		if err != nil {
			return fmt.Errorf("query stats: %w", err)
		}

		completion := 0
		if s.SessionsStarted > 0 {
			completion = s.SessionsCompleted * 100 / s.SessionsStarted
		}
		fmt.Printf("Sessions started:    %d\n", s.SessionsStarted)
		fmt.Printf("Sessions completed:  %d (%d%%)\n", s.SessionsCompleted, completion)
		fmt.Printf("Answers recorded:    %d\n", s.Answers)
		fmt.Printf("Results saved:       %d\n", s.Results)
		fmt.Printf("LLM requests:        %d\n", s.LLMRequests)
		return nil
	},
}
