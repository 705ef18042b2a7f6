// Package results turns a completed assessment result into a report:
// canned band text, per-category insights and career-path cards.
package results

import "github.com/abhisek/careerfit/internal/recommend"

// Band is a coarse score range.
type Band string

const (
	BandHigh Band = "high"
	BandMid  Band = "mid"
	BandLow  Band = "low"
)

// BandFor places score into a band using the recommendation thresholds.
func BandFor(p recommend.Policy, score int) Band {
	switch {
	case score >= p.YesAt:
		return BandHigh
	case score >= p.MaybeAt:
		return BandMid
	default:
		return BandLow
	}
}

// BandForLabel maps a recommendation onto the band whose copy matches it.
func BandForLabel(l recommend.Label) Band {
	switch l {
	case recommend.Yes:
		return BandHigh
	case recommend.Maybe:
		return BandMid
	default:
		return BandLow
	}
}

// BandText is the canned copy for one band.
type BandText struct {
	Summary      string
	Strengths    []string
	Improvements []string
	NextSteps    []string
}

// bandTable is the single source of canned results copy.
var bandTable = map[Band]BandText{
	BandHigh: {
		Summary: "Your interests, working style and current knowledge line up well with what this role demands.",
		Strengths: []string{
			"Genuine interest in the day-to-day work",
			"Solid grasp of the technical fundamentals",
			"Motivation to keep learning as the field changes",
		},
		Improvements: []string{
			"Deepen expertise in one specialised area",
			"Build evidence of real-world delivery for your portfolio",
		},
		NextSteps: []string{
			"Pick an industry certification and book the exam",
			"Build a portfolio project that solves a real problem",
			"Start applying for entry or associate roles",
		},
	},
	BandMid: {
		Summary: "You show real interest and a reasonable foundation, but a few areas need focused work before you are job-ready.",
		Strengths: []string{
			"Interest in the field and its problems",
			"A foundation you can build on",
		},
		Improvements: []string{
			"Strengthen the technical fundamentals covered in this assessment",
			"Get hands-on practice with the core tools",
			"Test your commitment with a short, structured course",
		},
		NextSteps: []string{
			"Complete a beginner-to-intermediate course in the next 8 weeks",
			"Build two small projects and publish them",
			"Retake this assessment to measure progress",
		},
	},
	BandLow: {
		Summary: "Your answers suggest limited alignment with this role today. That can change with exposure, or a neighbouring path may suit you better.",
		Strengths: []string{
			"Willingness to assess your fit honestly",
		},
		Improvements: []string{
			"Build basic familiarity with the field before committing",
			"Clarify which parts of the work genuinely interest you",
		},
		NextSteps: []string{
			"Try a free introductory course or workshop",
			"Talk to people working in the role",
			"Explore related assessments to compare your fit",
		},
	},
}

// Text returns the canned copy for b.
func Text(b Band) BandText {
	t := bandTable[b]
	return BandText{
		Summary:      t.Summary,
		Strengths:    append([]string(nil), t.Strengths...),
		Improvements: append([]string(nil), t.Improvements...),
		NextSteps:    append([]string(nil), t.NextSteps...),
	}
}

// Verdict returns the short wording for a recommendation label.
func Verdict(l recommend.Label) string {
	switch l {
	case recommend.Yes:
		return "Yes, pursue this career"
	case recommend.Maybe:
		return "Maybe, with focused preparation"
	default:
		return "No, consider other paths for now"
	}
}
