package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/careerfit/internal/assessment"
	"github.com/abhisek/careerfit/internal/coach"
	"github.com/abhisek/careerfit/internal/response"
	"github.com/abhisek/careerfit/internal/results"
	"github.com/abhisek/careerfit/internal/store"
	"github.com/abhisek/careerfit/internal/tracking"
)

var scoreCmd = &cobra.Command{
	Use:   "score <assessment-id>",
	Short: "Score a file of answers without the interactive UI",
	Long: `Score answers from a YAML or JSON file that maps question IDs to values:

  interest-1: 4             # scale: number or option label ("Agree")
  tech-2: "Docker"          # single choice: option label
  wiscar-ability-3: true    # yes/no

Unanswered questions are skipped; at least one answer is required.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		answersPath, _ := cmd.Flags().GetString("answers")
		asJSON, _ := cmd.Flags().GetBool("json")
		save, _ := cmd.Flags().GetBool("save")
		withCoach, _ := cmd.Flags().GetBool("coach")
		ctx := cmd.Context()

		reg, err := openRegistry()
		if err != nil {
			return err
		}
		a, err := reg.ByID(args[0])
		if err != nil {
			return err
		}

		raw, err := os.ReadFile(answersPath)
		if err != nil {
			return fmt.Errorf("read answers: %w", err)
		}
		var doc map[string]any
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("parse answers: %w", err)
		}
		answers, err := response.ParseAll(a, doc)
		if err != nil {
			return err
		}
		if answers.Len() == 0 {
			return fmt.Errorf("%s: %w", answersPath, assessment.ErrNoResponses)
		}

		res := assessment.Evaluate(a, answers)
		report := results.Build(a, res)

		var st *store.Store
		if save || withCoach {
			if st, err = openStore(); err != nil {
				return err
			}
			defer st.Close()
		}

		var savedID int64
		if save {
			tr := &tracking.Tracker{Results: st.ResultRepo(), Logger: logger}
			if savedID = tr.SaveResult(ctx, res); savedID == 0 {
				return fmt.Errorf("result could not be saved; see log")
			}
		}

		var advice *coach.Advice
		if withCoach {
			svc := newCoach(ctx, st, nil, logger)
			if svc == nil {
				fmt.Fprintln(os.Stderr, "LLM provider not configured; showing the standard report only.")
			} else {
				cctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
				advice, err = svc.Advise(cctx, coach.Input{Assessment: a, Result: res, Report: report})
				cancel()
				if err != nil {
					fmt.Fprintln(os.Stderr, "Coaching unavailable:", err)
				}
			}
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Result  assessment.Result `json:"result"`
				Report  results.Report    `json:"report"`
				SavedID int64             `json:"saved_id,omitempty"`
				Advice  *coach.Advice     `json:"advice,omitempty"`
			}{res, report, savedID, advice})
		}

		if err := results.WriteText(os.Stdout, report); err != nil {
			return err
		}
		if advice != nil {
			printAdvice(advice)
		}
		if savedID > 0 {
			fmt.Printf("\nSaved as result #%d.\n", savedID)
		}
		return nil
	},
}

func printAdvice(a *coach.Advice) {
	fmt.Printf("\nCoaching notes (%s)\n", a.Model)
	fmt.Println(a.Summary)
	for _, sec := range []struct {
		title string
		items []string
	}{
		{"Build on", a.Strengths},
		{"Focus on", a.FocusAreas},
		{"Next steps", a.NextSteps},
	} {
		if len(sec.items) == 0 {
			continue
		}
		fmt.Printf("\n%s\n", sec.title)
		for _, it := range sec.items {
			fmt.Printf("  - %s\n", it)
		}
	}
}

func init() {
	scoreCmd.Flags().StringP("answers", "a", "", "YAML or JSON file of answers (required)")
	scoreCmd.Flags().Bool("json", false, "Print the result and report as JSON")
	scoreCmd.Flags().Bool("save", false, "Save the result to history")
	scoreCmd.Flags().Bool("coach", false, "Ask the configured LLM for coaching notes")
	_ = scoreCmd.MarkFlagRequired("answers")
}
