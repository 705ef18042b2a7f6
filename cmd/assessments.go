package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/careerfit/internal/catalog"
)

var assessmentsCmd = &cobra.Command{
	Use:     "assessments",
	Aliases: []string{"assessment"},
	Short:   "Browse and validate assessment catalogs",
}

var assessmentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every available assessment",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := openRegistry()
		if err != nil {
			return err
		}

		fmt.Printf("%-20s  %-40s  %-8s  %9s  %s\n", "ID", "Title", "Version", "Questions", "Duration")
		fmt.Println(strings.Repeat("─", 100))
		for _, a := range reg.All() {
			fmt.Printf("%-20s  %-40s  %-8s  %9d  %s\n",
				a.ID, truncate(a.Title, 40), a.Version, a.QuestionCount(), a.Duration)
		}
		fmt.Printf("\n%d assessments\n", reg.Len())
		return nil
	},
}

var assessmentsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the sections and questions of an assessment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := openRegistry()
		if err != nil {
			return err
		}
		a, err := reg.ByID(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s (%s)\n", a.Title, a.Version)
		if a.Summary != "" {
			fmt.Println(a.Summary)
		}
		fmt.Println()
		fmt.Println("Categories:")
		for _, c := range a.Categories {
			fmt.Printf("  %-24s %s\n", c.ID, c.Title)
		}
		for _, s := range a.Sections {
			fmt.Printf("\n%s\n%s\n", s.Title, strings.Repeat("─", len(s.Title)))
			for _, q := range s.Questions {
				fmt.Printf("  %-12s [%s/%s] %s\n", q.ID, q.Kind, q.Category, q.Prompt)
			}
		}
		if len(a.Careers) > 0 {
			fmt.Println("\nCareer paths:")
			for _, c := range a.Careers {
				fmt.Printf("  %-32s from %d%%\n", c.Title, c.MinScore)
			}
		}
		return nil
	},
}

var assessmentsValidateCmd = &cobra.Command{
	Use:   "validate <file|dir>...",
	Short: "Check assessment YAML files against the catalog schema",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := 0
		for _, path := range args {
			list, err := loadPath(path)
			if err != nil {
				fmt.Printf("✗ %s\n    %v\n", path, err)
				failed++
				continue
			}
			for _, a := range list {
				if err := catalog.Validate(a); err != nil {
					fmt.Printf("✗ %s (%s)\n    %v\n", path, a.ID, err)
					failed++
					continue
				}
				fmt.Printf("✓ %s (%s, %d questions)\n", a.ID, a.Version, a.QuestionCount())
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d catalog(s) failed validation", failed)
		}
		return nil
	},
}

func loadPath(path string) ([]*catalog.Assessment, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		list, err := catalog.LoadDir(path)
		if err == nil && len(list) == 0 {
			err = errors.New("no .yaml or .yml files found")
		}
		return list, err
	}
	a, err := catalog.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return []*catalog.Assessment{a}, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func init() {
	assessmentsCmd.AddCommand(assessmentsListCmd)
	assessmentsCmd.AddCommand(assessmentsShowCmd)
	assessmentsCmd.AddCommand(assessmentsValidateCmd)
}
