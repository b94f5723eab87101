package repository

import (
	"context"
	"database/sql"
	"time"

	"demo-bank/internal/domain"
)

// UserRepository define el contrato de persistencia para usuarios.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) (int64, error)
	GetByID(ctx context.Context, id int64) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByExternalID(ctx context.Context, externalID string) (domain.User, error)
	UpdateName(ctx context.Context, id int64, firstName, lastName string) error
}

// SQLiteUserRepository implementa UserRepository sobre database/sql.
type SQLiteUserRepository struct {
	db *sql.DB
}

func NewSQLiteUserRepository(db *sql.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db}
}

func (r *SQLiteUserRepository) Create(ctx context.Context, user domain.User) (int64, error) {
	const query = `
		INSERT INTO users (user_id, email, password_hash, first_name, last_name, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	res, err := r.db.ExecContext(ctx, query,
		user.UserID,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *SQLiteUserRepository) GetByID(ctx context.Context, id int64) (domain.User, error) {
	const query = `
		SELECT id, user_id, email, password_hash, first_name, last_name, created_at
		FROM users
		WHERE id = ?
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteUserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	const query = `
		SELECT id, user_id, email, password_hash, first_name, last_name, created_at
		FROM users
		WHERE email = ?
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *SQLiteUserRepository) GetByExternalID(ctx context.Context, externalID string) (domain.User, error) {
	const query = `
		SELECT id, user_id, email, password_hash, first_name, last_name, created_at
		FROM users
		WHERE user_id = ?
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, externalID))
}

func (r *SQLiteUserRepository) UpdateName(ctx context.Context, id int64, firstName, lastName string) error {
	const query = `
		UPDATE users SET first_name = ?, last_name = ? WHERE id = ?
	`
	_, err := r.db.ExecContext(ctx, query, firstName, lastName, id)
	return err
}

func (r *SQLiteUserRepository) scanUser(row *sql.Row) (domain.User, error) {
	var (
		u         domain.User
		createdAt string
	)
	err := row.Scan(
		&u.ID,
		&u.UserID,
		&u.Email,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&createdAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	if t, perr := time.Parse(time.RFC3339, createdAt); perr == nil {
		u.CreatedAt = t
	}
	return u, nil
}
