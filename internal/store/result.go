package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/careerfit/internal/assessment"
)

// resultRepo implements ResultRepo. The full result is stored as JSON
// alongside indexed summary columns.
type resultRepo struct {
	db  *sql.DB
	seq *sequence
}

var resultColumns = []string{"id", "sequence", "data"}

func (r *resultRepo) Save(ctx context.Context, res assessment.Result) (int64, error) {
	data, err := json.Marshal(res)
	if err != nil {
		return 0, fmt.Errorf("marshal result: %w", err)
	}
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert("assessment_results").
		Columns("sequence", "session_id", "assessment_id", "assessment_version", "fingerprint",
			"overall", "label", "completed_at", "data").
		Values(seqNum, res.SessionID(), res.AssessmentID(), res.AssessmentVersion(), res.Fingerprint(),
			res.Overall(), string(res.Label()), formatTime(res.CompletedAt()), string(data)).
		Query()
	out, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("save result: %w", err)
	}
	id, err := out.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("save result: %w", err)
	}
	return id, nil
}

func (r *resultRepo) Get(ctx context.Context, id int64) (*StoredResult, error) {
	b := entsql.Dialect(dialect.SQLite)
	query, args := b.Select(resultColumns...).
		From(b.Table("assessment_results")).
		Where(entsql.EQ("id", id)).
		Query()

	sr, err := scanResult(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("result %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return sr, nil
}

func (r *resultRepo) List(ctx context.Context, opts QueryOpts) ([]StoredResult, error) {
	b := entsql.Dialect(dialect.SQLite)
	sel := b.Select(resultColumns...).
		From(b.Table("assessment_results")).
		OrderBy(entsql.Desc("sequence"))
	if opts.AssessmentID != "" {
		sel.Where(entsql.EQ("assessment_id", opts.AssessmentID))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("completed_at", formatTime(opts.From)))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("completed_at", formatTime(opts.To)))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []StoredResult
	for rows.Next() {
		sr, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *sr)
	}
	return out, rows.Err()
}

func (r *resultRepo) Latest(ctx context.Context, assessmentID string) (*StoredResult, error) {
	list, err := r.List(ctx, QueryOpts{AssessmentID: assessmentID, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return &list[0], nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResult(row rowScanner) (*StoredResult, error) {
	var (
		sr   StoredResult
		data string
	)
	if err := row.Scan(&sr.ID, &sr.Sequence, &data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan result: %w", err)
	}
	if err := json.Unmarshal([]byte(data), &sr.Result); err != nil {
		return nil, fmt.Errorf("unmarshal result %d: %w", sr.ID, err)
	}
	return &sr, nil
}
