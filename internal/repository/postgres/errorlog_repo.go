package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"opslink/internal/domain"
	"opslink/internal/port"
)

type errorLogRepo struct {
	db *sqlx.DB
}

// NewErrorLogRepo creates a PostgreSQL-backed ErrorLogStore.
func NewErrorLogRepo(db *sqlx.DB) port.ErrorLogStore {
	return &errorLogRepo{db: db}
}

func (r *errorLogRepo) Append(ctx context.Context, entry *domain.ErrorLogEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO error_logs (id, code, message, severity, endpoint, user_id, request_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.ID, entry.Code, entry.Message, entry.Severity,
		entry.Endpoint, entry.UserID, entry.RequestID, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("errorLogRepo.Append: %w", err)
	}
	return nil
}

func (r *errorLogRepo) Recent(ctx context.Context, limit int) ([]domain.ErrorLogEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	var entries []domain.ErrorLogEntry
	err := r.db.SelectContext(ctx, &entries,
		`SELECT id, code, message, severity, endpoint, user_id, request_id, created_at
		 FROM error_logs ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("errorLogRepo.Recent: %w", err)
	}
	return entries, nil
}
