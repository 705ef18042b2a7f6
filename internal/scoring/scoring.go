// Package scoring turns a catalog and a set of answers into per-category,
// per-section and overall percentages. Scores are recomputed from scratch
// on every call.
package scoring

import (
	"math"

	"github.com/abhisek/careerfit/internal/catalog"
	"github.com/abhisek/careerfit/internal/response"
)

// DefaultPreferenceCredit is the fixed credit given to an answered
// single-choice question that has no correct option.
const DefaultPreferenceCredit = 0.6

// Answers is the read side of a response store.
type Answers interface {
	Answer(questionID string) (response.Value, bool)
}

// Policy configures normalization and aggregation.
type Policy struct {
	// PreferenceCredit is the normalized score for unscored single-choice
	// answers.
	PreferenceCredit float64

	// ExcludePreference drops unscored single-choice answers from the
	// category mean instead of crediting them.
	ExcludePreference bool

	// Aggregation selects how the overall score is formed:
	// catalog.AggregateCategories (default) or catalog.AggregateSections.
	Aggregation string
}

// DefaultPolicy returns the engine defaults.
func DefaultPolicy() Policy {
	return Policy{
		PreferenceCredit: DefaultPreferenceCredit,
		Aggregation:      catalog.AggregateCategories,
	}
}

// PolicyFor applies an assessment's overrides on top of DefaultPolicy.
func PolicyFor(a *catalog.Assessment) Policy {
	p := DefaultPolicy()
	if a.Policy.PreferenceCredit != nil {
		p.PreferenceCredit = *a.Policy.PreferenceCredit
	}
	p.ExcludePreference = a.Policy.ExcludePreference
	if a.Policy.Aggregation != "" {
		p.Aggregation = a.Policy.Aggregation
	}
	return p
}

// Scores is the output of one scoring pass. Categories and sections with
// no counted answers are absent from their maps.
type Scores struct {
	Categories map[string]int `json:"categories"`
	Sections   map[string]int `json:"sections"`
	Overall    int            `json:"overall"`
	Answered   int            `json:"answered"`
	Total      int            `json:"total"`
}

// Engine scores answers under a policy.
type Engine struct {
	Policy Policy
}

// NewEngine creates an engine for the given assessment's policy.
func NewEngine(a *catalog.Assessment) Engine {
	return Engine{Policy: PolicyFor(a)}
}

type tally struct {
	weighted float64
	weight   float64
}

func (t *tally) add(score, weight float64) {
	t.weighted += score * weight
	t.weight += weight
}

func (t tally) percent() int {
	return clampPercent(math.Round(t.weighted / t.weight * 100))
}

// Score computes all percentages for answers against a.
func (e Engine) Score(a *catalog.Assessment, answers Answers) Scores {
	byCategory := make(map[string]*tally)
	bySection := make(map[string]*tally)
	s := Scores{
		Categories: make(map[string]int),
		Sections:   make(map[string]int),
	}

	for _, q := range a.Flatten() {
		s.Total++
		v, ok := answers.Answer(q.ID)
		if !ok {
			continue
		}
		s.Answered++

		score, counted := e.Normalize(q, v)
		if !counted {
			continue
		}
		w := q.EffectiveWeight()
		if byCategory[q.Category] == nil {
			byCategory[q.Category] = &tally{}
		}
		byCategory[q.Category].add(score, w)
		if bySection[q.SectionID] == nil {
			bySection[q.SectionID] = &tally{}
		}
		bySection[q.SectionID].add(score, w)
	}

	for id, t := range byCategory {
		s.Categories[id] = t.percent()
	}
	for id, t := range bySection {
		s.Sections[id] = t.percent()
	}

	if e.Policy.Aggregation == catalog.AggregateSections {
		s.Overall = mean(s.Sections)
	} else {
		s.Overall = mean(s.Categories)
	}
	return s
}

// Normalize maps one answer onto [0, 1]. The second result is false when
// the answer does not count toward its category.
func (e Engine) Normalize(q catalog.Question, v response.Value) (float64, bool) {
	switch q.Kind {
	case catalog.KindScale:
		top := q.MaxValue()
		if top <= 0 {
			return 0, false
		}
		return clamp01(v.Number / top), true
	case catalog.KindBoolean:
		if q.Scored() {
			return boolScore(boolLabel(v.Bool) == q.Correct), true
		}
		return boolScore(v.Bool), true
	case catalog.KindSingleChoice:
		if q.Scored() {
			return boolScore(v.Choice == q.Correct), true
		}
		if e.Policy.ExcludePreference {
			return 0, false
		}
		return clamp01(e.Policy.PreferenceCredit), true
	}
	return 0, false
}

// Score is a convenience for NewEngine(a).Score(a, answers).
func Score(a *catalog.Assessment, answers Answers) Scores {
	return NewEngine(a).Score(a, answers)
}

// mean returns the rounded arithmetic mean of m's values, or 0 when m is
// empty.
func mean(m map[string]int) int {
	if len(m) == 0 {
		return 0
	}
	sum := 0
	for _, v := range m {
		sum += v
	}
	return clampPercent(math.Round(float64(sum) / float64(len(m))))
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func boolScore(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func clamp01(x float64) float64 {
	if math.IsNaN(x) || x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func clampPercent(x float64) int {
	if math.IsNaN(x) || x < 0 {
		return 0
	}
	if x > 100 {
		return 100
	}
	return int(x)
}
