// Package assessment holds the screens that take a respondent through one
// assessment: the intro card, the question stepper and the results page.
package assessment

import (
	"context"
	"log/slog"
	"time"

	"github.com/abhisek/careerfit/internal/coach"
	"github.com/abhisek/careerfit/internal/tracking"
)

// Advisor generates coaching notes for a finished assessment.
type Advisor interface {
	Advise(ctx context.Context, in coach.Input) (*coach.Advice, error)
}

// Deps are the services the screens use. Every field is optional.
type Deps struct {
	Tracker      *tracking.Tracker
	Coach        Advisor
	CoachTimeout time.Duration
	Logger       *slog.Logger
}

func (d Deps) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}

func (d Deps) coachTimeout() time.Duration {
	if d.CoachTimeout > 0 {
		return d.CoachTimeout
	}
	return 2 * time.Minute
}
