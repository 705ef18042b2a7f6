package catalog

import (
	"fmt"
	"strings"
)

// Validate performs all structural checks on an assessment.
// Returns a combined error describing all problems found, or nil if valid.
func Validate(a *Assessment) error {
	var errs []string

	if a.ID == "" {
		errs = append(errs, "assessment ID is empty")
	}

	categories := make(map[string]bool, len(a.Categories))
	for _, c := range a.Categories {
		if categories[c.ID] {
			errs = append(errs, fmt.Sprintf("duplicate category ID: %q", c.ID))
		}
		categories[c.ID] = true
	}

	if len(a.Sections) == 0 {
		errs = append(errs, "assessment has no sections")
	}

	sectionIDs := make(map[string]bool, len(a.Sections))
	questionIDs := make(map[string]bool)
	for _, s := range a.Sections {
		if sectionIDs[s.ID] {
			errs = append(errs, fmt.Sprintf("duplicate section ID: %q", s.ID))
		}
		sectionIDs[s.ID] = true

		if len(s.Questions) == 0 {
			errs = append(errs, fmt.Sprintf("section %q has no questions", s.ID))
		}

		for _, q := range s.Questions {
			if questionIDs[q.ID] {
				errs = append(errs, fmt.Sprintf("duplicate question ID: %q", q.ID))
			}
			questionIDs[q.ID] = true
			errs = append(errs, validateQuestion(q, categories)...)
		}
	}

	errs = append(errs, validatePolicy(a.Policy, categories)...)

	for _, c := range a.Careers {
		if c.MinScore < 0 || c.MinScore > 100 {
			errs = append(errs, fmt.Sprintf("career %q: min_score must be in [0, 100], got %d", c.Title, c.MinScore))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("assessment %q validation failed:\n  %s", a.ID, strings.Join(errs, "\n  "))
	}
	return nil
}

func validateQuestion(q Question, categories map[string]bool) []string {
	var errs []string
	prefix := fmt.Sprintf("question %q", q.ID)

	if !categories[q.Category] {
		errs = append(errs, fmt.Sprintf("%s references unknown category %q", prefix, q.Category))
	}
	if strings.TrimSpace(q.Prompt) == "" {
		errs = append(errs, prefix+": prompt is empty")
	}
	if q.Weight < 0 {
		errs = append(errs, fmt.Sprintf("%s: weight must be >= 0, got %g", prefix, q.Weight))
	}

	switch q.Kind {
	case KindScale:
		if len(q.Options) < 2 {
			errs = append(errs, prefix+": scale needs at least two options")
		} else if q.MaxValue() <= 0 {
			errs = append(errs, fmt.Sprintf("%s: scale maximum must be > 0, got %g", prefix, q.MaxValue()))
		}
		if q.Scored() {
			errs = append(errs, prefix+": scale questions cannot declare a correct answer")
		}
	case KindSingleChoice:
		if len(q.Options) == 0 {
			errs = append(errs, prefix+": single-choice question has no options")
		}
		if q.Scored() && !q.HasOption(q.Correct) {
			errs = append(errs, fmt.Sprintf("%s: correct answer %q is not one of its options", prefix, q.Correct))
		}
	case KindBoolean:
		if q.Correct != "" && q.Correct != "true" && q.Correct != "false" {
			errs = append(errs, fmt.Sprintf("%s: boolean correct answer must be \"true\" or \"false\", got %q", prefix, q.Correct))
		}
	default:
		errs = append(errs, fmt.Sprintf("%s: unknown kind %q", prefix, q.Kind))
	}
	return errs
}

func validatePolicy(p Policy, categories map[string]bool) []string {
	var errs []string
	if p.PreferenceCredit != nil && (*p.PreferenceCredit < 0 || *p.PreferenceCredit > 1) {
		errs = append(errs, fmt.Sprintf("policy: preference_credit must be in [0, 1], got %g", *p.PreferenceCredit))
	}
	switch p.Aggregation {
	case "", AggregateCategories, AggregateSections:
	default:
		errs = append(errs, fmt.Sprintf("policy: unknown aggregation %q", p.Aggregation))
	}
	if p.YesAt < 0 || p.YesAt > 100 || p.MaybeAt < 0 || p.MaybeAt > 100 {
		errs = append(errs, "policy: thresholds must be in [0, 100]")
	}
	if yes, maybe := p.Thresholds(); maybe > yes {
		errs = append(errs, fmt.Sprintf("policy: effective maybe_at (%d) must not exceed yes_at (%d)", maybe, yes))
	}
	for k := range p.Wording {
		switch k {
		case "yes", "maybe", "no":
		default:
			errs = append(errs, fmt.Sprintf("policy: unknown wording key %q", k))
		}
	}
	for _, f := range p.Floors {
		if !categories[f.Category] {
			errs = append(errs, fmt.Sprintf("policy: floor references unknown category %q", f.Category))
		}
		if f.Min < 0 || f.Min > 100 {
			errs = append(errs, fmt.Sprintf("policy: floor for %q must be in [0, 100], got %d", f.Category, f.Min))
		}
	}
	return errs
}
