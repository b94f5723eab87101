package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"demo-bank/internal/domain"
)

// PersonalInfoRepository define el contrato de persistencia para el perfil personal.
type PersonalInfoRepository interface {
	GetByUserID(ctx context.Context, userID int64) (domain.PersonalInfo, error)
	Create(ctx context.Context, info domain.PersonalInfo) error
	Update(ctx context.Context, info domain.PersonalInfo) error
}

// SQLitePersonalInfoRepository implementa PersonalInfoRepository sobre database/sql.
type SQLitePersonalInfoRepository struct {
	db *sql.DB
}

func NewSQLitePersonalInfoRepository(db *sql.DB) *SQLitePersonalInfoRepository {
	return &SQLitePersonalInfoRepository{db: db}
}

func (r *SQLitePersonalInfoRepository) GetByUserID(ctx context.Context, userID int64) (domain.PersonalInfo, error) {
	const query = `
		SELECT id, user_id, middle_name, date_of_birth, social_insurance_number,
		       marital_status, res_province, mailing_address, updated_at
		FROM personal_info
		WHERE user_id = ?
	`
	var (
		info      domain.PersonalInfo
		middle    sql.NullString
		dob       sql.NullString
		sin       sql.NullString
		marital   sql.NullString
		province  sql.NullString
		addrJSON  sql.NullString
		updatedAt string
	)
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&info.ID,
		&info.UserID,
		&middle,
		&dob,
		&sin,
		&marital,
		&province,
		&addrJSON,
		&updatedAt,
	)
	if err != nil {
		return domain.PersonalInfo{}, err
	}
	info.MiddleName = middle.String
	info.DateOfBirth = dob.String
	info.SocialInsuranceNumber = sin.String
	info.MaritalStatus = marital.String
	info.ResProvince = province.String
	if addrJSON.Valid && addrJSON.String != "" {
		var addr domain.MailingAddress
		if uerr := json.Unmarshal([]byte(addrJSON.String), &addr); uerr == nil {
			info.MailingAddress = &addr
		}
	}
	if t, perr := time.Parse(time.RFC3339, updatedAt); perr == nil {
		info.UpdatedAt = t
	}
	return info, nil
}

func (r *SQLitePersonalInfoRepository) Create(ctx context.Context, info domain.PersonalInfo) error {
	const query = `
		INSERT INTO personal_info
			(user_id, middle_name, date_of_birth, social_insurance_number,
			 marital_status, res_province, mailing_address, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	addrJSON, err := marshalAddress(info.MailingAddress)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, query,
		info.UserID,
		nullable(info.MiddleName),
		nullable(info.DateOfBirth),
		nullable(info.SocialInsuranceNumber),
		nullable(info.MaritalStatus),
		nullable(info.ResProvince),
		addrJSON,
		info.UpdatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

func (r *SQLitePersonalInfoRepository) Update(ctx context.Context, info domain.PersonalInfo) error {
	const query = `
		UPDATE personal_info
		SET middle_name = ?, date_of_birth = ?, social_insurance_number = ?,
		    marital_status = ?, res_province = ?, mailing_address = ?, updated_at = ?
		WHERE user_id = ?
	`
	addrJSON, err := marshalAddress(info.MailingAddress)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, query,
		nullable(info.MiddleName),
		nullable(info.DateOfBirth),
		nullable(info.SocialInsuranceNumber),
		nullable(info.MaritalStatus),
		nullable(info.ResProvince),
		addrJSON,
		info.UpdatedAt.UTC().Format(time.RFC3339),
		info.UserID,
	)
	return err
}

func marshalAddress(addr *domain.MailingAddress) (any, error) {
	if addr == nil {
		return nil, nil
	}
	raw, err := json.Marshal(addr)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
