package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"tutordesk/internal/auth"
	"tutordesk/internal/model"
	"tutordesk/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) ListByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

// MockStudentRepository is a mock implementation of StudentRepository.
type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) Create(ctx context.Context, student *model.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockStudentRepository) Update(ctx context.Context, student *model.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockStudentRepository) FindByID(ctx context.Context, id string) (*model.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Student), args.Error(1)
}

func (m *MockStudentRepository) List(ctx context.Context, filter repository.StudentFilter) ([]model.Student, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Student), args.Error(1)
}

func (m *MockStudentRepository) CountByParent(ctx context.Context, parentID string) (int64, error) {
	args := m.Called(ctx, parentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStudentRepository) DeleteCascade(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockSessionRepository is a mock implementation of SessionRepository.
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, session *model.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) Update(ctx context.Context, session *model.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) FindByID(ctx context.Context, id string) (*model.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *MockSessionRepository) List(ctx context.Context, filter repository.SessionFilter) ([]model.Session, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Session), args.Error(1)
}

func (m *MockSessionRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, p auth.Principal, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, p, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (auth.Principal, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(auth.Principal), args.Error(1)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func (m *MockTokenStore) BlacklistAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) IsAccessTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

const (
	teacherID      = "697ebfb72198a4184c5be1c7"
	otherTeacherID = "697ebfb72198a4184c5be1c8"
	parentID       = "697ebfb72198a4184c5be1c6"
	otherParentID  = "697ebfb72198a4184c5be1c5"
	studentID      = "697ebfb72198a4184c5be1d0"
	sessionID      = "697ebfb72198a4184c5be1e0"
)

var (
	teacherPrincipal      = auth.Principal{ID: teacherID, Email: "teacher@test.com", Role: model.RoleTeacher}
	otherTeacherPrincipal = auth.Principal{ID: otherTeacherID, Email: "other@test.com", Role: model.RoleTeacher}
	parentPrincipal       = auth.Principal{ID: parentID, Email: "parent@test.com", Role: model.RoleParent}
	otherParentPrincipal  = auth.Principal{ID: otherParentID, Email: "other-parent@test.com", Role: model.RoleParent}
	adminPrincipal        = auth.Principal{ID: "697ebfb72198a4184c5be1c9", Email: "admin@test.com", Role: model.RoleAdmin}
)

func strPtr(s string) *string { return &s }

func sampleStudent() *model.Student {
	pid := parentID
	return &model.Student{
		ID:        studentID,
		Name:      "Aruhi",
		Grade:     "Grade 5",
		Subjects:  []string{"Math"},
		ParentID:  &pid,
		Parent:    &model.User{ID: parentID, Name: "Test Parent", Email: "parent@test.com"},
		TeacherID: teacherID,
		Teacher:   &model.User{ID: teacherID, Name: "John Tutor", Email: "teacher@test.com"},
	}
}
