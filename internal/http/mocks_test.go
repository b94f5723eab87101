package http

import (
	"context"
	"database/sql"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"demo-bank/internal/domain"
	"demo-bank/internal/service"
	"demo-bank/internal/taxfiling"
)

type mockUserRepo struct {
	nextID     int64
	usersByID  map[int64]domain.User
	idsByEmail map[string]int64
	idsByExtID map[string]int64
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		nextID:     1,
		usersByID:  make(map[int64]domain.User),
		idsByEmail: make(map[string]int64),
		idsByExtID: make(map[string]int64),
	}
}

func (m *mockUserRepo) Create(_ context.Context, user domain.User) (int64, error) {
	user.ID = m.nextID
	m.nextID++
	m.usersByID[user.ID] = user
	m.idsByEmail[user.Email] = user.ID
	m.idsByExtID[user.UserID] = user.ID
	return user.ID, nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id int64) (domain.User, error) {
	user, ok := m.usersByID[id]
	if !ok {
		return domain.User{}, sql.ErrNoRows
	}
	return user, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	id, ok := m.idsByEmail[email]
	if !ok {
		return domain.User{}, sql.ErrNoRows
	}
	return m.GetByID(context.Background(), id)
}

func (m *mockUserRepo) GetByExternalID(_ context.Context, externalID string) (domain.User, error) {
	id, ok := m.idsByExtID[externalID]
	if !ok {
		return domain.User{}, sql.ErrNoRows
	}
	return m.GetByID(context.Background(), id)
}

func (m *mockUserRepo) UpdateName(_ context.Context, id int64, firstName, lastName string) error {
	user, ok := m.usersByID[id]
	if !ok {
		return sql.ErrNoRows
	}
	user.FirstName = firstName
	user.LastName = lastName
	m.usersByID[id] = user
	return nil
}

type mockPersonalInfoRepo struct {
	byUserID map[int64]domain.PersonalInfo
}

func newMockPersonalInfoRepo() *mockPersonalInfoRepo {
	return &mockPersonalInfoRepo{byUserID: make(map[int64]domain.PersonalInfo)}
}

func (m *mockPersonalInfoRepo) GetByUserID(_ context.Context, userID int64) (domain.PersonalInfo, error) {
	info, ok := m.byUserID[userID]
	if !ok {
		return domain.PersonalInfo{}, sql.ErrNoRows
	}
	return info, nil
}

func (m *mockPersonalInfoRepo) Create(_ context.Context, info domain.PersonalInfo) error {
	m.byUserID[info.UserID] = info
	return nil
}

func (m *mockPersonalInfoRepo) Update(_ context.Context, info domain.PersonalInfo) error {
	m.byUserID[info.UserID] = info
	return nil
}

type mockTaxReturnRepo struct {
	byExternalID map[string]domain.TaxReturn
}

func newMockTaxReturnRepo() *mockTaxReturnRepo {
	return &mockTaxReturnRepo{byExternalID: make(map[string]domain.TaxReturn)}
}

func (m *mockTaxReturnRepo) GetByExternalID(_ context.Context, externalReturnID string) (domain.TaxReturn, error) {
	tr, ok := m.byExternalID[externalReturnID]
	if !ok {
		return domain.TaxReturn{}, sql.ErrNoRows
	}
	return tr, nil
}

func (m *mockTaxReturnRepo) Create(_ context.Context, tr domain.TaxReturn) error {
	m.byExternalID[tr.ExternalReturnID] = tr
	return nil
}

func (m *mockTaxReturnRepo) UpdateByExternalID(_ context.Context, tr domain.TaxReturn) error {
	m.byExternalID[tr.ExternalReturnID] = tr
	return nil
}

func (m *mockTaxReturnRepo) ListByUserID(_ context.Context, userID int64) ([]domain.TaxReturn, error) {
	var out []domain.TaxReturn
	for _, tr := range m.byExternalID {
		if tr.UserID == userID {
			out = append(out, tr)
		}
	}
	return out, nil
}

const testWebhookSecret = "shared-secret"

type testEnv struct {
	router  *gin.Engine
	codec   *service.SessionCodec
	users   *mockUserRepo
	returns *mockTaxReturnRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	users := newMockUserRepo()
	profiles := newMockPersonalInfoRepo()
	returns := newMockTaxReturnRepo()

	codec := service.NewSessionCodec("test-session-secret", service.SessionTTL)
	taxClient := taxfiling.NewClient("provider.example.com", "client-1", testWebhookSecret, 0, logger)

	userSvc := service.NewUserService(logger, users)
	profileSvc := service.NewProfileService(logger, users, profiles)
	taxSvc := service.NewTaxService(logger, users, profiles, returns, taxClient)

	router := NewRouter(
		logger,
		codec,
		false,
		NewAuthHandler(logger, userSvc, codec, false),
		NewAccountHandler(logger, profileSvc),
		NewTaxHandler(logger, taxSvc, taxClient),
		NewWebhookHandler(logger, testWebhookSecret, taxSvc),
	)
	return &testEnv{router: router, codec: codec, users: users, returns: returns}
}

// registerUser crea un usuario directamente en el repositorio y devuelve su
// cookie de sesión firmada.
func (e *testEnv) registerUser(t *testing.T, email, externalID string) (domain.User, string) {
	t.Helper()
	user := domain.User{
		UserID:       externalID,
		Email:        email,
		PasswordHash: "salt:hash",
		FirstName:    "Ana",
		LastName:     "Pérez",
	}
	id, err := e.users.Create(context.Background(), user)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	user.ID = id

	token, _, err := e.codec.Encode(user)
	if err != nil {
		t.Fatalf("encode session: %v", err)
	}
	return user, token
}
