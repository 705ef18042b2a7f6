package assessment

import (
	"encoding/json"
	"math"
	"time"

	"github.com/abhisek/careerfit/internal/catalog"
	"github.com/abhisek/careerfit/internal/recommend"
	"github.com/abhisek/careerfit/internal/scoring"
)

// Result is the immutable outcome of a completed assessment. Accessors
// return copies so holders cannot change it.
type Result struct {
	sessionID      string
	assessmentID   string
	version        string
	fingerprint    string
	categories     map[string]int
	sections       map[string]int
	overall        int
	recommendation recommend.Recommendation
	confidence     int
	answered       int
	total          int
	completedAt    time.Time
}

// Evaluate scores answers against a and classifies the outcome in one
// step, without a stepper. Options set the session ID and clock.
func Evaluate(a *catalog.Assessment, answers scoring.Answers, opts ...Option) Result {
	cfg := newConfig(opts)
	return evaluate(a, answers, cfg.id, cfg.now())
}

func evaluate(a *catalog.Assessment, answers scoring.Answers, sessionID string, now time.Time) Result {
	scores := scoring.NewEngine(a).Score(a, answers)
	rec := recommend.Classify(recommend.PolicyFor(a), scores.Overall, scores.Categories)
	return Result{
		sessionID:      sessionID,
		assessmentID:   a.ID,
		version:        a.Version,
		fingerprint:    a.Fingerprint,
		categories:     scores.Categories,
		sections:       scores.Sections,
		overall:        scores.Overall,
		recommendation: rec,
		confidence:     coverage(scores.Answered, scores.Total),
		answered:       scores.Answered,
		total:          scores.Total,
		completedAt:    now.UTC(),
	}
}

// coverage is the share of questions answered, as a rounded percentage.
func coverage(answered, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(answered) / float64(total) * 100))
}

func (r Result) SessionID() string                        { return r.sessionID }
func (r Result) AssessmentID() string                     { return r.assessmentID }
func (r Result) AssessmentVersion() string                { return r.version }
func (r Result) Fingerprint() string                      { return r.fingerprint }
func (r Result) Overall() int                             { return r.overall }
func (r Result) Recommendation() recommend.Recommendation { return r.recommendation }
func (r Result) Label() recommend.Label                   { return r.recommendation.Label }
func (r Result) Confidence() int                          { return r.confidence }
func (r Result) Answered() int                            { return r.answered }
func (r Result) Total() int                               { return r.total }
func (r Result) CompletedAt() time.Time                   { return r.completedAt }

// IsZero reports whether r was never produced by a scoring pass.
func (r Result) IsZero() bool { return r.assessmentID == "" }

// Categories returns a copy of the per-category percentages.
func (r Result) Categories() map[string]int { return cloneScores(r.categories) }

// Sections returns a copy of the per-section percentages.
func (r Result) Sections() map[string]int { return cloneScores(r.sections) }

// Scores returns the result's scores in scoring form.
func (r Result) Scores() scoring.Scores {
	return scoring.Scores{
		Categories: r.Categories(),
		Sections:   r.Sections(),
		Overall:    r.overall,
		Answered:   r.answered,
		Total:      r.total,
	}
}

func cloneScores(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

type resultJSON struct {
	SessionID         string                   `json:"session_id"`
	AssessmentID      string                   `json:"assessment_id"`
	AssessmentVersion string                   `json:"assessment_version"`
	Fingerprint       string                   `json:"fingerprint,omitempty"`
	Categories        map[string]int           `json:"categories"`
	Sections          map[string]int           `json:"sections"`
	Overall           int                      `json:"overall"`
	Recommendation    recommend.Recommendation `json:"recommendation"`
	Confidence        int                      `json:"confidence"`
	Answered          int                      `json:"answered"`
	Total             int                      `json:"total"`
	CompletedAt       time.Time                `json:"completed_at"`
}

// MarshalJSON implements json.Marshaler.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(resultJSON{
		SessionID:         r.sessionID,
		AssessmentID:      r.assessmentID,
		AssessmentVersion: r.version,
		Fingerprint:       r.fingerprint,
		Categories:        r.Categories(),
		Sections:          r.Sections(),
		Overall:           r.overall,
		Recommendation:    r.recommendation,
		Confidence:        r.confidence,
		Answered:          r.answered,
		Total:             r.total,
		CompletedAt:       r.completedAt,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Result) UnmarshalJSON(b []byte) error {
	var j resultJSON
	if err := json.Unmarshal(b, &j); err != nil {
		return err
	}
	*r = Result{
		sessionID:      j.SessionID,
		assessmentID:   j.AssessmentID,
		version:        j.AssessmentVersion,
		fingerprint:    j.Fingerprint,
		categories:     cloneScores(j.Categories),
		sections:       cloneScores(j.Sections),
		overall:        j.Overall,
		recommendation: j.Recommendation,
		confidence:     j.Confidence,
		answered:       j.Answered,
		total:          j.Total,
		completedAt:    j.CompletedAt,
	}
	return nil
}
