// Package recommend maps scores to a Yes / Maybe / No career
// recommendation.
package recommend

import (
	"fmt"
	"sort"
	"strings"

	"github.com/abhisek/careerfit/internal/catalog"
)

// Label is the recommendation outcome.
type Label string

const (
	Yes   Label = "Yes"
	Maybe Label = "Maybe"
	No    Label = "No"
)

// Default thresholds, inclusive.
const (
	DefaultYesAt   = catalog.DefaultYesAt
	DefaultMaybeAt = catalog.DefaultMaybeAt
)

// Policy holds the thresholds, optional per-category floors and the
// headline wording for each label.
type Policy struct {
	YesAt   int
	MaybeAt int

	// Floors must all be met for a Yes. An unmet floor downgrades the
	// outcome to Maybe.
	Floors []catalog.Floor

	Wording map[Label]string
}

// DefaultWording returns the stock headline for every label.
func DefaultWording() map[Label]string {
	return map[Label]string{
		Yes:   "You're a strong fit for this career path",
		Maybe: "You have potential, with some gaps to close",
		No:    "This path may not be the best fit right now",
	}
}

// DefaultPolicy returns the standard 75 / 60 thresholds with no floors.
func DefaultPolicy() Policy {
	return Policy{YesAt: DefaultYesAt, MaybeAt: DefaultMaybeAt, Wording: DefaultWording()}
}

// PolicyFor applies an assessment's overrides on top of DefaultPolicy.
func PolicyFor(a *catalog.Assessment) Policy {
	p := DefaultPolicy()
	p.YesAt, p.MaybeAt = a.Policy.Thresholds()
	p.Floors = append([]catalog.Floor(nil), a.Policy.Floors...)
	for key, text := range a.Policy.Wording {
		if l, ok := labelKeys[key]; ok && text != "" {
			p.Wording[l] = text
		}
	}
	return p
}

var labelKeys = map[string]Label{"yes": Yes, "maybe": Maybe, "no": No}

// Headline returns the wording for l, falling back to the stock text.
func (p Policy) Headline(l Label) string {
	if text := p.Wording[l]; text != "" {
		return text
	}
	return DefaultWording()[l]
}

// Input is what the rules see.
type Input struct {
	Overall   int
	SubScores map[string]int
	Policy    Policy
}

// Recommendation is the classifier output.
type Recommendation struct {
	Label     Label  `json:"label"`
	Headline  string `json:"headline,omitempty"`
	Rationale string `json:"rationale"`
	Rule      string `json:"rule"`
}

// Rule is one classification rule. It returns ("", "") when it does not
// apply.
type Rule interface {
	Name() string
	Apply(in *Input) (Label, string)
}

// DefaultRules returns rules in priority order. The floor rule runs first
// so it can veto a Yes that the thresholds alone would grant.
func DefaultRules() []Rule {
	return []Rule{
		&FloorRule{},
		&ThresholdRule{},
	}
}

// RunRules executes rules in order and returns the first match. When no
// rule matches the outcome is No. The headline follows the final label.
func RunRules(rules []Rule, in *Input) Recommendation {
	rec := Recommendation{Label: No, Rationale: "no rule matched"}
	for _, r := range rules {
		if label, why := r.Apply(in); label != "" {
			rec = Recommendation{Label: label, Rationale: why, Rule: r.Name()}
			break
		}
	}
	rec.Headline = in.Policy.Headline(rec.Label)
	return rec
}

// Classify runs the default rules. It is a pure function of its inputs.
func Classify(p Policy, overall int, subScores map[string]int) Recommendation {
	return RunRules(DefaultRules(), &Input{Overall: overall, SubScores: subScores, Policy: p})
}

// ThresholdRule applies the plain overall-score cutoffs.
type ThresholdRule struct{}

func (r *ThresholdRule) Name() string { return "threshold" }

func (r *ThresholdRule) Apply(in *Input) (Label, string) {
	p := in.Policy
	switch {
	case in.Overall >= p.YesAt:
		return Yes, fmt.Sprintf("overall score %d%% meets the %d%% threshold", in.Overall, p.YesAt)
	case in.Overall >= p.MaybeAt:
		return Maybe, fmt.Sprintf("overall score %d%% is between %d%% and %d%%", in.Overall, p.MaybeAt, p.YesAt)
	default:
		return No, fmt.Sprintf("overall score %d%% is below %d%%", in.Overall, p.MaybeAt)
	}
}

// FloorRule downgrades a would-be Yes to Maybe when any configured
// category floor is unmet. A category with no score does not meet its
// floor.
type FloorRule struct{}

func (r *FloorRule) Name() string { return "floor" }

func (r *FloorRule) Apply(in *Input) (Label, string) {
	p := in.Policy
	if len(p.Floors) == 0 || in.Overall < p.YesAt {
		return "", ""
	}
	var unmet []string
	for _, f := range p.Floors {
		got, ok := in.SubScores[f.Category]
		if !ok {
			unmet = append(unmet, fmt.Sprintf("%s unscored (needs %d%%)", f.Category, f.Min))
			continue
		}
		if got < f.Min {
			unmet = append(unmet, fmt.Sprintf("%s %d%% (needs %d%%)", f.Category, got, f.Min))
		}
	}
	if len(unmet) == 0 {
		return "", ""
	}
	sort.Strings(unmet)
	return Maybe, fmt.Sprintf("overall score %d%% meets the %d%% threshold but %s",
		in.Overall, p.YesAt, strings.Join(unmet, ", "))
}
