package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"demo-bank/internal/domain"
	"demo-bank/internal/repository"
	"demo-bank/internal/taxfiling"
)

// TaxService reconcilia eventos del proveedor externo y arma la petición
// saliente de login hospedado.
type TaxService struct {
	logger   *zap.Logger
	users    repository.UserRepository
	profiles repository.PersonalInfoRepository
	returns  repository.TaxReturnRepository
	client   *taxfiling.Client
}

func NewTaxService(
	logger *zap.Logger,
	users repository.UserRepository,
	profiles repository.PersonalInfoRepository,
	returns repository.TaxReturnRepository,
	client *taxfiling.Client,
) *TaxService {
	return &TaxService{
		logger:   logger,
		users:    users,
		profiles: profiles,
		returns:  returns,
		client:   client,
	}
}

// Apply aplica un evento t1_return.* de forma idempotente, con upsert por
// external_return_id. Un evento para un usuario desconocido se descarta sin
// error: el proveedor puede emitir antes de que el enlace local exista.
// No hay defensa contra entregas fuera de orden; gana la última escritura.
func (s *TaxService) Apply(ctx context.Context, event taxfiling.Event, rawPayload []byte) error {
	if event.User == nil || event.T1Return == nil {
		return fmt.Errorf("event %s missing user or t1_return section", event.ID)
	}

	user, err := s.users.GetByExternalID(ctx, event.User.ExternalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Info("webhook event for unknown user, skipped",
				zap.String("event_id", event.ID),
				zap.String("external_user_id", event.User.ExternalID),
			)
			return nil
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	status := domain.TaxReturnStatusCreated
	if event.Type == taxfiling.EventReturnStatusChanged {
		status = event.T1Return.NewStatus
	}

	record := domain.TaxReturn{
		UserID:           user.ID,
		ExternalReturnID: event.T1Return.ID,
		TaxYear:          event.T1Return.Year,
		Status:           status,
		LastEventType:    event.Type,
		LastEventID:      event.ID,
		LastEventAt:      time.Unix(event.Created, 0).UTC(),
		Payload:          rawPayload,
	}

	_, err = s.returns.GetByExternalID(ctx, event.T1Return.ID)
	switch {
	case err == nil:
		if uerr := s.returns.UpdateByExternalID(ctx, record); uerr != nil {
			return fmt.Errorf("update tax return: %w", uerr)
		}
	case errors.Is(err, sql.ErrNoRows):
		if cerr := s.returns.Create(ctx, record); cerr != nil {
			return fmt.Errorf("create tax return: %w", cerr)
		}
	default:
		return fmt.Errorf("lookup tax return: %w", err)
	}

	s.logger.Info("tax return event applied",
		zap.String("event_id", event.ID),
		zap.String("external_return_id", event.T1Return.ID),
		zap.String("status", status),
	)
	return nil
}

// ListReturns devuelve las declaraciones del usuario, evento más reciente primero.
func (s *TaxService) ListReturns(ctx context.Context, userID int64) ([]domain.TaxReturn, error) {
	return s.returns.ListByUserID(ctx, userID)
}

// LoginURL arma el payload firmado con los datos del usuario y su perfil y
// devuelve la URL de login hospedada por el proveedor.
func (s *TaxService) LoginURL(ctx context.Context, userID int64) (string, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	var info *domain.PersonalInfo
	if p, perr := s.profiles.GetByUserID(ctx, userID); perr == nil {
		info = &p
	} else if !errors.Is(perr, sql.ErrNoRows) {
		return "", perr
	}

	payload := taxfiling.LoginURLPayload{
		UserID:    user.UserID,
		UserEmail: user.Email,
		PersonalInfo: &taxfiling.PayloadPersonal{
			FirstName: user.FirstName,
			LastName:  user.LastName,
		},
	}
	if info != nil {
		payload.TaxProvince = info.ResProvince
		payload.PersonalInfo.MiddleName = info.MiddleName
		payload.PersonalInfo.DateOfBirth = info.DateOfBirth
		payload.PersonalInfo.MaritalStatus = info.MaritalStatus
		if info.SocialInsuranceNumber != "" {
			if sin, serr := strconv.ParseInt(info.SocialInsuranceNumber, 10, 64); serr == nil {
				payload.PersonalInfo.SocialInsuranceNumber = sin
			}
		}
		if addr := info.MailingAddress; addr != nil &&
			addr.UnitNo != "" && addr.StreetName != "" && addr.City != "" &&
			addr.Province != "" && addr.PostalCode != "" {
			payload.MailingAddress = &taxfiling.PayloadAddress{
				AddressLine1: addr.AddressLine1,
				UnitNo:       addr.UnitNo,
				StreetName:   addr.StreetName,
				City:         addr.City,
				Province:     addr.Province,
				PostalCode:   addr.PostalCode,
			}
		}
	}

	return s.client.LoginURL(ctx, payload)
}
