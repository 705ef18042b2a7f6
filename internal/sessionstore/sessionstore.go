// Package sessionstore keeps in-progress assessment sessions between HTTP
// requests. Entries expire after a fixed idle TTL that each Put renews.
package sessionstore

import (
	"context"
	"errors"

	"github.com/abhisek/careerfit/internal/assessment"
)

// ErrSessionNotFound is returned for unknown or expired sessions.
var ErrSessionNotFound = errors.New("session not found")

// Store persists session state.
type Store interface {
	Get(ctx context.Context, id string) (assessment.State, error)
	Put(ctx context.Context, st assessment.State) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
