package repository

import (
	"context"
	"database/sql"
	"time"

	"demo-bank/internal/domain"
)

// TaxReturnRepository define el contrato de persistencia para declaraciones.
type TaxReturnRepository interface {
	GetByExternalID(ctx context.Context, externalReturnID string) (domain.TaxReturn, error)
	Create(ctx context.Context, tr domain.TaxReturn) error
	UpdateByExternalID(ctx context.Context, tr domain.TaxReturn) error
	ListByUserID(ctx context.Context, userID int64) ([]domain.TaxReturn, error)
}

// SQLiteTaxReturnRepository implementa TaxReturnRepository sobre database/sql.
type SQLiteTaxReturnRepository struct {
	db *sql.DB
}

func NewSQLiteTaxReturnRepository(db *sql.DB) *SQLiteTaxReturnRepository {
	return &SQLiteTaxReturnRepository{db: db}
}

func (r *SQLiteTaxReturnRepository) GetByExternalID(ctx context.Context, externalReturnID string) (domain.TaxReturn, error) {
	const query = `
		SELECT id, user_id, external_return_id, tax_year, status,
		       last_event_type, last_event_id, last_event_at, payload, created_at, updated_at
		FROM tax_returns
		WHERE external_return_id = ?
	`
	row := r.db.QueryRowContext(ctx, query, externalReturnID)
	return scanTaxReturn(row.Scan)
}

func (r *SQLiteTaxReturnRepository) Create(ctx context.Context, tr domain.TaxReturn) error {
	const query = `
		INSERT INTO tax_returns
			(user_id, external_return_id, tax_year, status,
			 last_event_type, last_event_id, last_event_at, payload, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := r.db.ExecContext(ctx, query,
		tr.UserID,
		tr.ExternalReturnID,
		tr.TaxYear,
		tr.Status,
		tr.LastEventType,
		tr.LastEventID,
		tr.LastEventAt.UTC().Format(time.RFC3339),
		string(tr.Payload),
		now,
		now,
	)
	return err
}

func (r *SQLiteTaxReturnRepository) UpdateByExternalID(ctx context.Context, tr domain.TaxReturn) error {
	const query = `
		UPDATE tax_returns
		SET user_id = ?, tax_year = ?, status = ?,
		    last_event_type = ?, last_event_id = ?, last_event_at = ?, payload = ?, updated_at = ?
		WHERE external_return_id = ?
	`
	_, err := r.db.ExecContext(ctx, query,
		tr.UserID,
		tr.TaxYear,
		tr.Status,
		tr.LastEventType,
		tr.LastEventID,
		tr.LastEventAt.UTC().Format(time.RFC3339),
		string(tr.Payload),
		time.Now().UTC().Format(time.RFC3339),
		tr.ExternalReturnID,
	)
	return err
}

func (r *SQLiteTaxReturnRepository) ListByUserID(ctx context.Context, userID int64) ([]domain.TaxReturn, error) {
	const query = `
		SELECT id, user_id, external_return_id, tax_year, status,
		       last_event_type, last_event_id, last_event_at, payload, created_at, updated_at
		FROM tax_returns
		WHERE user_id = ?
		ORDER BY last_event_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var returns []domain.TaxReturn
	for rows.Next() {
		tr, serr := scanTaxReturn(rows.Scan)
		if serr != nil {
			return nil, serr
		}
		returns = append(returns, tr)
	}
	return returns, rows.Err()
}

func scanTaxReturn(scan func(dest ...any) error) (domain.TaxReturn, error) {
	var (
		tr          domain.TaxReturn
		lastEventAt string
		payload     sql.NullString
		createdAt   string
		updatedAt   string
	)
	err := scan(
		&tr.ID,
		&tr.UserID,
		&tr.ExternalReturnID,
		&tr.TaxYear,
		&tr.Status,
		&tr.LastEventType,
		&tr.LastEventID,
		&lastEventAt,
		&payload,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.TaxReturn{}, err
	}
	tr.Payload = []byte(payload.String)
	if t, perr := time.Parse(time.RFC3339, lastEventAt); perr == nil {
		tr.LastEventAt = t
	}
	if t, perr := time.Parse(time.RFC3339, createdAt); perr == nil {
		tr.CreatedAt = t
	}
	if t, perr := time.Parse(time.RFC3339, updatedAt); perr == nil {
		tr.UpdatedAt = t
	}
	return tr, nil
}
