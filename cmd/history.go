package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/careerfit/internal/results"
	"github.com/abhisek/careerfit/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List completed assessment results",
	RunE: func(cmd *cobra.Command, args []string) error {
		assessmentID, _ := cmd.Flags().GetString("assessment")
		limit, _ := cmd.Flags().GetInt("limit")
		show, _ := cmd.Flags().GetInt64("show")

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if show > 0 {
			return showResult(cmd, st, show)
		}

		list, err := st.ResultRepo().List(cmd.Context(), store.QueryOpts{AssessmentID: assessmentID, Limit: limit})
		if err != nil {
			return fmt.Errorf("query results: %w", err)
		}
		if len(list) == 0 {
			fmt.Println("No results saved yet.")
			return nil
		}

		fmt.Printf("%-5s  %-16s  %-20s  %7s  %-14s  %s\n",
			"ID", "Completed", "Assessment", "Overall", "Recommendation", "Answered")
		fmt.Println(strings.Repeat("─", 84))
		for _, sr := range list {
			r := sr.Result
			fmt.Printf("%-5d  %-16s  %-20s  %6d%%  %-14s  %d/%d\n",
				sr.ID,
				r.CompletedAt().Local().Format("2006-01-02 15:04"),
				truncate(r.AssessmentID(), 20),
				r.Overall(),
				r.Label(),
				r.Answered(), r.Total())
		}
		return nil
	},
}

func showResult(cmd *cobra.Command, st *store.Store, id int64) error {
	sr, err := st.ResultRepo().Get(cmd.Context(), id)
	if err != nil {
		return err
	}
	reg, err := openRegistry()
	if err != nil {
		return err
	}
	a, err := reg.ByID(sr.Result.AssessmentID())
	if err != nil {
		return fmt.Errorf("result %d: %w", id, err)
	}
	if fp := sr.Result.Fingerprint(); fp != "" && a.Fingerprint != "" && fp != a.Fingerprint {
		fmt.Println("Note: the assessment has changed since this result was recorded.")
		fmt.Println()
	}
	return results.WriteText(cmd.OutOrStdout(), results.Build(a, sr.Result))
}

func init() {
	historyCmd.Flags().String("assessment", "", "Only show results for this assessment ID")
	historyCmd.Flags().IntP("limit", "n", 20, "Number of results to show")
	historyCmd.Flags().Int64("show", 0, "Print the full report for one result ID")
}
