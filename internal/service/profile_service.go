package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"demo-bank/internal/domain"
	"demo-bank/internal/repository"
)

// ProfileService gestiona el perfil personal 1:1 de cada usuario.
type ProfileService struct {
	logger   *zap.Logger
	users    repository.UserRepository
	profiles repository.PersonalInfoRepository
}

func NewProfileService(logger *zap.Logger, users repository.UserRepository, profiles repository.PersonalInfoRepository) *ProfileService {
	return &ProfileService{
		logger:   logger,
		users:    users,
		profiles: profiles,
	}
}

// PersonalInfoInput es la entrada del formulario de información personal.
type PersonalInfoInput struct {
	FirstName             string
	MiddleName            string
	LastName              string
	DateOfBirth           string
	SocialInsuranceNumber string
	MaritalStatus         string
	ResProvince           string
	AddressLine1          string
	UnitNo                string
	StreetName            string
	City                  string
	Province              string
	PostalCode            string
}

// Update valida el formulario, actualiza nombre y apellido del usuario y
// crea o actualiza el perfil en su lugar (a lo sumo uno por usuario).
func (s *ProfileService) Update(ctx context.Context, userID int64, input PersonalInfoInput) (domain.PersonalInfo, error) {
	fields := FieldErrors{}
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)

	if len(firstName) < 2 {
		fields.add("firstName", "First name must be at least 2 characters")
	}
	if len(lastName) < 2 {
		fields.add("lastName", "Last name must be at least 2 characters")
	}
	dob := strings.TrimSpace(input.DateOfBirth)
	if dob != "" && !dateRe.MatchString(dob) {
		fields.add("dateOfBirth", "Date must be in YYYY-MM-DD format")
	}
	sin := strings.TrimSpace(input.SocialInsuranceNumber)
	if sin != "" && !sinRe.MatchString(sin) {
		fields.add("socialInsuranceNumber", "SIN must be exactly 9 digits")
	}
	marital := strings.TrimSpace(input.MaritalStatus)
	if marital != "" && !domain.ValidMaritalStatus(marital) {
		fields.add("maritalStatus", "Invalid marital status")
	}
	resProvince := strings.TrimSpace(input.ResProvince)
	if resProvince != "" && !domain.ValidProvince(resProvince) {
		fields.add("resProvince", "Invalid province")
	}
	province := strings.TrimSpace(input.Province)
	if province != "" && !domain.ValidProvince(province) {
		fields.add("province", "Invalid province")
	}
	postalCode := strings.TrimSpace(input.PostalCode)
	if postalCode != "" && !postalCodeRe.MatchString(postalCode) {
		fields.add("postalCode", "Invalid postal code format")
	}
	if len(fields) > 0 {
		return domain.PersonalInfo{}, &ValidationError{Fields: fields}
	}

	if err := s.users.UpdateName(ctx, userID, firstName, lastName); err != nil {
		return domain.PersonalInfo{}, fmt.Errorf("update user name: %w", err)
	}

	info := domain.PersonalInfo{
		UserID:                userID,
		MiddleName:            strings.TrimSpace(input.MiddleName),
		DateOfBirth:           dob,
		SocialInsuranceNumber: sin,
		MaritalStatus:         marital,
		ResProvince:           resProvince,
		MailingAddress: &domain.MailingAddress{
			AddressLine1: strings.TrimSpace(input.AddressLine1),
			UnitNo:       strings.TrimSpace(input.UnitNo),
			StreetName:   strings.TrimSpace(input.StreetName),
			City:         strings.TrimSpace(input.City),
			Province:     province,
			PostalCode:   postalCode,
		},
		UpdatedAt: time.Now().UTC(),
	}

	_, err := s.profiles.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		if uerr := s.profiles.Update(ctx, info); uerr != nil {
			return domain.PersonalInfo{}, fmt.Errorf("update personal info: %w", uerr)
		}
	case errors.Is(err, sql.ErrNoRows):
		if cerr := s.profiles.Create(ctx, info); cerr != nil {
			return domain.PersonalInfo{}, fmt.Errorf("create personal info: %w", cerr)
		}
	default:
		return domain.PersonalInfo{}, fmt.Errorf("lookup personal info: %w", err)
	}

	s.logger.Info("personal info saved", zap.Int64("user_id", userID))
	return info, nil
}

// GetWithUser devuelve el usuario y su perfil; el perfil puede ser nil si
// todavía no fue creado.
func (s *ProfileService) GetWithUser(ctx context.Context, userID int64) (domain.User, *domain.PersonalInfo, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, nil, ErrUserNotFound
		}
		return domain.User{}, nil, err
	}
	info, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user, nil, nil
		}
		return domain.User{}, nil, err
	}
	return user, &info, nil
}
