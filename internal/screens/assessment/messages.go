package assessment

import (
	"time"

	"github.com/abhisek/careerfit/internal/coach"
)

// adviceMsg carries the coach's reply.
type adviceMsg struct {
	Advice *coach.Advice
	Err    error
}

// thinkTickMsg animates the coaching indicator.
type thinkTickMsg time.Time
