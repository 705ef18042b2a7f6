// Package catalog defines the static question catalogs that drive every
// assessment: sections, questions, scoring categories and per-assessment
// policy overrides. Catalogs are immutable once loaded.
package catalog

// Kind is the answer format of a question.
type Kind string

const (
	KindScale        Kind = "scale"         // Likert-style numeric scale
	KindSingleChoice Kind = "single-choice" // pick one labeled option
	KindBoolean      Kind = "boolean"       // yes/no
)

// Valid reports whether k is a known question kind.
func (k Kind) Valid() bool {
	switch k {
	case KindScale, KindSingleChoice, KindBoolean:
		return true
	}
	return false
}

// Option is one labeled answer value.
type Option struct {
	Label string  `yaml:"label" json:"label"`
	Value float64 `yaml:"value" json:"value"`
}

// LikertOptions returns the default 1-5 agreement scale used by scale
// questions that do not declare their own options.
func LikertOptions() []Option {
	return []Option{
		{Label: "Strongly disagree", Value: 1},
		{Label: "Disagree", Value: 2},
		{Label: "Neutral", Value: 3},
		{Label: "Agree", Value: 4},
		{Label: "Strongly agree", Value: 5},
	}
}

// Question is a single catalog entry.
type Question struct {
	ID        string   `yaml:"id" json:"id"`
	SectionID string   `yaml:"-" json:"section_id"`
	Category  string   `yaml:"category" json:"category"`
	Prompt    string   `yaml:"prompt" json:"prompt"`
	Kind      Kind     `yaml:"kind" json:"kind"`
	Options   []Option `yaml:"options,omitempty" json:"options,omitempty"`

	// Correct is the option label (single-choice) or "true"/"false"
	// (boolean) that earns full credit. Empty means unscored.
	Correct string `yaml:"correct,omitempty" json:"correct,omitempty"`

	// Weight multiplies the question's contribution to its category.
	// Zero is treated as 1.
	Weight float64 `yaml:"weight,omitempty" json:"weight,omitempty"`
}

// Scored reports whether the question declares a correct answer.
func (q Question) Scored() bool {
	return q.Correct != ""
}

// EffectiveWeight returns the weight used in category means.
func (q Question) EffectiveWeight() float64 {
	if q.Weight == 0 {
		return 1
	}
	return q.Weight
}

// MaxValue returns the largest option value, or 0 when there are no options.
func (q Question) MaxValue() float64 {
	var hi float64
	for i, o := range q.Options {
		if i == 0 || o.Value > hi {
			hi = o.Value
		}
	}
	return hi
}

// MinValue returns the smallest option value, or 0 when there are no options.
func (q Question) MinValue() float64 {
	var lo float64
	for i, o := range q.Options {
		if i == 0 || o.Value < lo {
			lo = o.Value
		}
	}
	return lo
}

// HasOption reports whether label names one of the question's options.
func (q Question) HasOption(label string) bool {
	for _, o := range q.Options {
		if o.Label == label {
			return true
		}
	}
	return false
}

// Section is an ordered group of questions shown together.
type Section struct {
	ID          string     `yaml:"id" json:"id"`
	Title       string     `yaml:"title" json:"title"`
	Description string     `yaml:"description,omitempty" json:"description,omitempty"`
	Questions   []Question `yaml:"questions" json:"questions"`
}

// Category is a scoring unit. Questions reference categories by ID.
type Category struct {
	ID          string `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Career is a static career-path card shown on the results page.
type Career struct {
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	MinScore    int      `yaml:"min_score" json:"min_score"`
	Skills      []string `yaml:"skills,omitempty" json:"skills,omitempty"`
}

// Floor requires a category to reach Min before a Yes can be issued.
type Floor struct {
	Category string `yaml:"category" json:"category"`
	Min      int    `yaml:"min" json:"min"`
}

// Policy holds per-assessment scoring and recommendation overrides.
// Zero values fall back to the engine defaults.
type Policy struct {
	PreferenceCredit  *float64 `yaml:"preference_credit,omitempty" json:"preference_credit,omitempty"`
	ExcludePreference bool     `yaml:"exclude_preference,omitempty" json:"exclude_preference,omitempty"`
	Aggregation       string   `yaml:"aggregation,omitempty" json:"aggregation,omitempty"`
	YesAt             int      `yaml:"yes_at,omitempty" json:"yes_at,omitempty"`
	MaybeAt           int      `yaml:"maybe_at,omitempty" json:"maybe_at,omitempty"`
	Floors            []Floor  `yaml:"floors,omitempty" json:"floors,omitempty"`

	// Wording overrides the headline per recommendation, keyed by
	// "yes", "maybe" or "no".
	Wording map[string]string `yaml:"wording,omitempty" json:"wording,omitempty"`
}

// Recommendation thresholds used when a policy leaves them unset.
const (
	DefaultYesAt   = 75
	DefaultMaybeAt = 60
)

// Thresholds returns the yes and maybe cutoffs with defaults filled in.
func (p Policy) Thresholds() (yesAt, maybeAt int) {
	yesAt, maybeAt = DefaultYesAt, DefaultMaybeAt
	if p.YesAt != 0 {
		yesAt = p.YesAt
	}
	if p.MaybeAt != 0 {
		maybeAt = p.MaybeAt
	}
	return yesAt, maybeAt
}

// Aggregation modes for Policy.Aggregation.
const (
	AggregateCategories = "category"
	AggregateSections   = "section"
)

// Assessment is a complete catalog for one career track.
type Assessment struct {
	ID          string     `yaml:"id" json:"id"`
	Title       string     `yaml:"title" json:"title"`
	Summary     string     `yaml:"summary,omitempty" json:"summary,omitempty"`
	Version     string     `yaml:"version" json:"version"`
	Duration    string     `yaml:"duration,omitempty" json:"duration,omitempty"`
	Categories  []Category `yaml:"categories" json:"categories"`
	Sections    []Section  `yaml:"sections" json:"sections"`
	Policy      Policy     `yaml:"policy,omitempty" json:"policy,omitempty"`
	Careers     []Career   `yaml:"careers,omitempty" json:"careers,omitempty"`
	Fingerprint string     `yaml:"-" json:"fingerprint,omitempty"`
}

// Question looks up a question by ID.
func (a *Assessment) Question(id string) (Question, bool) {
	for _, s := range a.Sections {
		for _, q := range s.Questions {
			if q.ID == id {
				return q, true
			}
		}
	}
	return Question{}, false
}

// Flatten returns every question in display order.
func (a *Assessment) Flatten() []Question {
	var out []Question
	for _, s := range a.Sections {
		out = append(out, s.Questions...)
	}
	return out
}

// QuestionCount returns the total number of questions.
func (a *Assessment) QuestionCount() int {
	n := 0
	for _, s := range a.Sections {
		n += len(s.Questions)
	}
	return n
}

// SectionQuestionIDs returns question IDs grouped by section, in order.
func (a *Assessment) SectionQuestionIDs() [][]string {
	out := make([][]string, len(a.Sections))
	for i, s := range a.Sections {
		ids := make([]string, len(s.Questions))
		for j, q := range s.Questions {
			ids[j] = q.ID
		}
		out[i] = ids
	}
	return out
}

// CategoryTitle returns the display title for a category ID, falling back
// to the ID itself.
func (a *Assessment) CategoryTitle(id string) string {
	for _, c := range a.Categories {
		if c.ID == id {
			return c.Title
		}
	}
	return id
}

// SectionTitle returns the display title for a section ID.
func (a *Assessment) SectionTitle(id string) string {
	for _, s := range a.Sections {
		if s.ID == id {
			return s.Title
		}
	}
	return id
}

// normalize fills derived fields after decoding.
func (a *Assessment) normalize() {
	for i := range a.Sections {
		s := &a.Sections[i]
		for j := range s.Questions {
			q := &s.Questions[j]
			q.SectionID = s.ID
			if q.Kind == KindScale && len(q.Options) == 0 {
				q.Options = LikertOptions()
			}
			if q.Kind == KindBoolean && len(q.Options) == 0 {
				q.Options = []Option{{Label: "Yes", Value: 1}, {Label: "No", Value: 0}}
			}
		}
	}
}

// Public returns a copy of a with correct answers removed, for surfaces
// that show the catalog to respondents.
func (a *Assessment) Public() *Assessment {
	out := *a
	out.Sections = make([]Section, len(a.Sections))
	for i, s := range a.Sections {
		qs := make([]Question, len(s.Questions))
		for j, q := range s.Questions {
			q.Correct = ""
			qs[j] = q
		}
		s.Questions = qs
		out.Sections[i] = s
	}
	return &out
}
