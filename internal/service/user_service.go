package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"demo-bank/internal/domain"
	"demo-bank/internal/repository"
)

// UserService coordina registro y autenticación de usuarios.
type UserService struct {
	logger *zap.Logger
	users  repository.UserRepository
}

func NewUserService(logger *zap.Logger, users repository.UserRepository) *UserService {
	return &UserService{
		logger: logger,
		users:  users,
	}
}

// RegisterInput es la entrada del formulario de registro.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Register valida la entrada, verifica unicidad del email y crea el usuario
// con su hash de contraseña. Nunca persiste la contraseña en claro.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (domain.User, error) {
	if s.users == nil {
		return domain.User{}, errors.New("user service not configured")
	}

	fields := FieldErrors{}
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	emailAddr := normalizeEmail(input.Email)
	password := strings.TrimSpace(input.Password)

	if len(firstName) < 2 {
		fields.add("firstName", "First name must be at least 2 characters")
	}
	if len(lastName) < 2 {
		fields.add("lastName", "Last name must be at least 2 characters")
	}
	if !emailRe.MatchString(emailAddr) {
		fields.add("email", "Please enter a valid email")
	}
	if len(password) < 8 {
		fields.add("password", "Password must be at least 8 characters")
	}
	if !hasLetterRe.MatchString(password) {
		fields.add("password", "Password must contain at least one letter")
	}
	if !hasDigitRe.MatchString(password) {
		fields.add("password", "Password must contain at least one number")
	}
	if len(fields) > 0 {
		return domain.User{}, &ValidationError{Fields: fields}
	}

	if _, err := s.users.GetByEmail(ctx, emailAddr); err == nil {
		return domain.User{}, ErrEmailTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, fmt.Errorf("lookup email: %w", err)
	}

	passwordHash, err := HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		UserID:       uuid.NewString(),
		Email:        emailAddr,
		PasswordHash: passwordHash,
		FirstName:    firstName,
		LastName:     lastName,
		CreatedAt:    time.Now().UTC(),
	}

	id, err := s.users.Create(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	user.ID = id

	s.logger.Info("user registered", zap.Int64("user_id", id))
	return user, nil
}

// Authenticate verifica credenciales. Email inexistente y contraseña
// incorrecta devuelven el mismo error para no filtrar cuál falló.
func (s *UserService) Authenticate(ctx context.Context, emailAddr, password string) (domain.User, error) {
	if s.users == nil {
		return domain.User{}, errors.New("user service not configured")
	}

	emailAddr = normalizeEmail(emailAddr)
	password = strings.TrimSpace(password)
	if emailAddr == "" || password == "" {
		return domain.User{}, ErrInvalidCredentials
	}
	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}
	if user.PasswordHash == "" {
		return domain.User{}, ErrInvalidCredentials
	}
	if !VerifyPassword(password, user.PasswordHash) {
		return domain.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// GetByID devuelve el usuario o ErrUserNotFound.
func (s *UserService) GetByID(ctx context.Context, id int64) (domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}
