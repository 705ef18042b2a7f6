package results

import (
	"fmt"

	"github.com/abhisek/careerfit/internal/assessment"
	"github.com/abhisek/careerfit/internal/catalog"
	"github.com/abhisek/careerfit/internal/recommend"
)

// Insight is one category line in the report.
type Insight struct {
	CategoryID string `json:"category_id"`
	Title      string `json:"title"`
	Percent    int    `json:"percent"`
	Band       Band   `json:"band"`
}

// CareerCard is a static career-path card. Matched is set when the overall
// score reaches the card's minimum.
type CareerCard struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	MinScore    int      `json:"min_score"`
	Skills      []string `json:"skills,omitempty"`
	Matched     bool     `json:"matched"`
}

// Report is everything the results page shows.
type Report struct {
	AssessmentID string          `json:"assessment_id"`
	Title        string          `json:"title"`
	Overall      int             `json:"overall"`
	Label        recommend.Label `json:"label"`
	Verdict      string          `json:"verdict"`
	Band         Band            `json:"band"`
	Headline     string          `json:"headline"`
	Summary      string          `json:"summary"`
	Rationale    string          `json:"rationale"`
	Confidence   int             `json:"confidence"`
	Categories   []Insight       `json:"categories"`
	Strengths    []string        `json:"strengths"`
	Improvements []string        `json:"improvements"`
	NextSteps    []string        `json:"next_steps"`
	Careers      []CareerCard    `json:"careers"`
}

// Build assembles the report for r. The headline and band copy follow the
// recommendation label, so a floor downgrade reads as a Maybe throughout.
// Strengths list high-band categories first, improvements list low and
// mid-band categories first, each followed by the band copy.
func Build(a *catalog.Assessment, r assessment.Result) Report {
	policy := recommend.PolicyFor(a)
	band := BandForLabel(r.Label())
	text := Text(band)

	headline := r.Recommendation().Headline
	if headline == "" {
		headline = policy.Headline(r.Label())
	}

	rep := Report{
		AssessmentID: a.ID,
		Title:        a.Title,
		Overall:      r.Overall(),
		Label:        r.Label(),
		Verdict:      Verdict(r.Label()),
		Band:         band,
		Headline:     headline,
		Summary:      text.Summary,
		Rationale:    r.Recommendation().Rationale,
		Confidence:   r.Confidence(),
		NextSteps:    text.NextSteps,
	}

	var strong, weak []string
	for _, c := range r.Scores().OrderedCategories(a) {
		b := BandFor(policy, c.Percent)
		rep.Categories = append(rep.Categories, Insight{
			CategoryID: c.ID,
			Title:      c.Title,
			Percent:    c.Percent,
			Band:       b,
		})
		switch b {
		case BandHigh:
			strong = append(strong, fmt.Sprintf("%s (%d%%)", c.Title, c.Percent))
		default:
			weak = append(weak, fmt.Sprintf("%s (%d%%)", c.Title, c.Percent))
		}
	}
	rep.Strengths = append(strong, text.Strengths...)
	rep.Improvements = append(weak, text.Improvements...)

	for _, c := range a.Careers {
		rep.Careers = append(rep.Careers, CareerCard{
			Title:       c.Title,
			Description: c.Description,
			MinScore:    c.MinScore,
			Skills:      append([]string(nil), c.Skills...),
			Matched:     r.Overall() >= c.MinScore,
		})
	}
	return rep
}

// MatchedCareers returns only the cards the respondent qualifies for.
func (r Report) MatchedCareers() []CareerCard {
	var out []CareerCard
	for _, c := range r.Careers {
		if c.Matched {
			out = append(out, c)
		}
	}
	return out
}
