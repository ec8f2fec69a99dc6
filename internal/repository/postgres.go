package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"loanportal/internal/model"
)

// PostgresRepository stores prediction history
type PostgresRepository struct {
	db *sqlx.DB
}

const predictionLogSchema = `
CREATE EXTENSION IF NOT EXISTS vector;
CREATE TABLE IF NOT EXISTS prediction_logs (
	id               UUID PRIMARY KEY,
	session_id       TEXT,
	inputs           JSONB NOT NULL,
	prediction_text  TEXT NOT NULL,
	confidence       DOUBLE PRECISION NOT NULL,
	risk_level       TEXT NOT NULL,
	explanation_text TEXT,
	feature_labels   JSONB,
	feature_impact   vector,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS prediction_logs_created_at_idx ON prediction_logs (created_at DESC);
`

const predictionLogColumns = `
	id, session_id, inputs, prediction_text, confidence, risk_level,
	explanation_text, feature_labels, feature_impact, created_at`

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	return &PostgresRepository{db: db}, nil
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// EnsureSchema creates the prediction_logs table if it does not exist
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, predictionLogSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// LogPrediction inserts one prediction
func (r *PostgresRepository) LogPrediction(ctx context.Context, entry *model.PredictionLog) error {
	query := `
		INSERT INTO prediction_logs (
			id, session_id, inputs, prediction_text, confidence, risk_level,
			explanation_text, feature_labels, feature_impact, created_at
		) VALUES (
			:id, :session_id, :inputs, :prediction_text, :confidence, :risk_level,
			:explanation_text, :feature_labels, :feature_impact, :created_at
		)
	`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("failed to log prediction: %w", err)
	}
	return nil
}

// ListPredictions returns the newest predictions first, plus the total count
func (r *PostgresRepository) ListPredictions(ctx context.Context, limit, offset int) ([]model.PredictionLog, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM prediction_logs`); err != nil {
		return nil, 0, fmt.Errorf("failed to count predictions: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM prediction_logs ORDER BY created_at DESC LIMIT $1 OFFSET $2`, predictionLogColumns)

	logs := []model.PredictionLog{}
	if err := r.db.SelectContext(ctx, &logs, query, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to fetch predictions: %w", err)
	}

	return logs, total, nil
}

// GetPrediction retrieves a single prediction; nil when not found
func (r *PostgresRepository) GetPrediction(ctx context.Context, id string) (*model.PredictionLog, error) {
	var entry model.PredictionLog
	query := fmt.Sprintf(`SELECT %s FROM prediction_logs WHERE id = $1`, predictionLogColumns)
	err := r.db.GetContext(ctx, &entry, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get prediction: %w", err)
	}
	return &entry, nil
}
