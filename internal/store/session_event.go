package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert("session_events").
		Columns("sequence", "timestamp", "session_id", "assessment_id", "action", "answered", "total").
		Values(seqNum, formatTime(time.Now()), data.SessionID, data.AssessmentID, data.Action, data.Answered, data.Total).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert("answer_events").
		Columns("sequence", "timestamp", "session_id", "assessment_id", "question_id", "category", "kind", "value").
		Values(seqNum, formatTime(time.Now()), data.SessionID, data.AssessmentID, data.QuestionID, data.Category, data.Kind, data.Value).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) SessionActions(ctx context.Context, sessionID string) ([]string, error) {
	b := entsql.Dialect(dialect.SQLite)
	query, args := b.Select("action").
		From(b.Table("session_events")).
		Where(entsql.EQ("session_id", sessionID)).
		OrderBy("sequence").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var actions []string
	for rows.Next() {
		var a string
		if err := rows.Scan(&a); err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		actions = append(actions, a)
	}
	return actions, rows.Err()
}
