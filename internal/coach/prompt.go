package coach

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a pragmatic career coach for people moving into technology roles. You explain assessment results honestly and give specific, achievable advice. You never invent scores.`

func buildUserMessage(in Input) string {
	var b strings.Builder
	rep := in.Report

	fmt.Fprintf(&b, "Assessment: %s\n", rep.Title)
	if in.Assessment != nil && in.Assessment.Summary != "" {
		fmt.Fprintf(&b, "About: %s\n", in.Assessment.Summary)
	}
	fmt.Fprintf(&b, "Overall score: %d%%\n", rep.Overall)
	fmt.Fprintf(&b, "Recommendation: %s (%s)\n", rep.Label, rep.Verdict)
	if rep.Rationale != "" {
		fmt.Fprintf(&b, "Rationale: %s\n", rep.Rationale)
	}
	fmt.Fprintf(&b, "Questions answered: %d of %d\n", in.Result.Answered(), in.Result.Total())

	b.WriteString("\nCategory scores:\n")
	for _, c := range rep.Categories {
		fmt.Fprintf(&b, "- %s: %d%% (%s)\n", c.Title, c.Percent, c.Band)
	}

	if len(rep.Careers) > 0 {
		b.WriteString("\nCareer paths:\n")
		for _, c := range rep.Careers {
			status := "not yet"
			if c.Matched {
				status = "within reach"
			}
			fmt.Fprintf(&b, "- %s (needs %d%%, %s)\n", c.Title, c.MinScore, status)
		}
	}

	b.WriteString(`
Instructions:
1. Summarize readiness in two or three sentences, consistent with the recommendation above.
2. List strengths grounded in the highest category scores.
3. List focus areas grounded in the lowest category scores, most important first.
4. Give concrete next steps (courses, projects, certifications) that fit the career paths listed.
5. Plain text only. No markdown.`)

	return b.String()
}
