package service

import (
	"context"
	"database/sql"

	"demo-bank/internal/domain"
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
	creates  int
	updates  int
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
	m.creates++
	m.byUserID[info.UserID] = info
	return nil
}

func (m *mockPersonalInfoRepo) Update(_ context.Context, info domain.PersonalInfo) error {
	m.updates++
	m.byUserID[info.UserID] = info
	return nil
}

type mockTaxReturnRepo struct {
	byExternalID map[string]domain.TaxReturn
	creates      int
	updates      int
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
	m.creates++
	m.byExternalID[tr.ExternalReturnID] = tr
	return nil
}

func (m *mockTaxReturnRepo) UpdateByExternalID(_ context.Context, tr domain.TaxReturn) error {
	m.updates++
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
