package results

import (
	"fmt"
	"io"
	"strings"
)

// WriteText renders the report as plain text.
func WriteText(w io.Writer, r Report) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n%s\n\n", r.Title, strings.Repeat("=", len(r.Title)))
	fmt.Fprintf(&b, "Overall score:   %d%%\n", r.Overall)
	fmt.Fprintf(&b, "Recommendation:  %s\n", r.Verdict)
	fmt.Fprintf(&b, "Coverage:        %d%% of questions answered\n\n", r.Confidence)
	fmt.Fprintf(&b, "%s\n%s\n", r.Headline, r.Summary)
	if r.Rationale != "" {
		fmt.Fprintf(&b, "(%s)\n", r.Rationale)
	}

	b.WriteString("\nScores by category\n")
	for _, c := range r.Categories {
		fmt.Fprintf(&b, "  %-24s %3d%%  %s\n", c.Title, c.Percent, bar(c.Percent, 20))
	}

	writeList(&b, "Strengths", r.Strengths)
	writeList(&b, "Areas to improve", r.Improvements)
	writeList(&b, "Next steps", r.NextSteps)

	if len(r.Careers) > 0 {
		b.WriteString("\nCareer paths\n")
		for _, c := range r.Careers {
			mark := " "
			if c.Matched {
				mark = "*"
			}
			fmt.Fprintf(&b, "  [%s] %s (from %d%%): %s\n", mark, c.Title, c.MinScore, c.Description)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s\n", title)
	for _, it := range items {
		fmt.Fprintf(b, "  - %s\n", it)
	}
}

func bar(percent, width int) string {
	filled := percent * width / 100
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return strings.Repeat("#", filled) + strings.Repeat(".", width-filled)
}
