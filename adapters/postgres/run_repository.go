package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"camcheck/internal/engine"
)

// ValidationRun is one persisted validation of an uploaded workbook
type ValidationRun struct {
	ID            uuid.UUID `db:"id"`
	Filename      string    `db:"filename"`
	ValidatorType string    `db:"validator_type"`
	TotalRules    int       `db:"total_rules"`
	Passed        int       `db:"passed"`
	Failed        int       `db:"failed"`
	CreatedAt     time.Time `db:"created_at"`
}

// RunRepository persists validation run history to PostgreSQL
type RunRepository struct {
	db *sqlx.DB
}

// NewRunRepository creates a new PostgreSQL run repository
func NewRunRepository(db *sqlx.DB) *RunRepository {
	return &RunRepository{db: db}
}

// SaveRun records a completed validation run
func (r *RunRepository) SaveRun(ctx context.Context, filename string, vt engine.ValidatorType, summary engine.Summary) (*ValidationRun, error) {
	run := &ValidationRun{
		ID:            uuid.New(),
		Filename:      filename,
		ValidatorType: string(vt),
		TotalRules:    summary.Total,
		Passed:        summary.Passed,
		Failed:        summary.Failed,
		CreatedAt:     time.Now(),
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO validation_runs (id, filename, validator_type, total_rules, passed, failed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, run.ID, run.Filename, run.ValidatorType, run.TotalRules, run.Passed, run.Failed, run.CreatedAt)

	if err != nil {
		return nil, err
	}

	return run, nil
}

// ListRuns returns the most recent validation runs, newest first
func (r *RunRepository) ListRuns(ctx context.Context, limit int) ([]ValidationRun, error) {
	if limit <= 0 {
		limit = 50
	}

	var runs []ValidationRun
	err := r.db.SelectContext(ctx, &runs, `
		SELECT id, filename, validator_type, total_rules, passed, failed, created_at
		FROM validation_runs
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)

	if err != nil {
		return nil, err
	}

	return runs, nil
}
