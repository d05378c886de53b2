// Package mocks provides testify mocks of the service interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tutordesk/internal/auth"
	"tutordesk/internal/model"
	"tutordesk/internal/service"
)

// AuthService mocks service.AuthService.
type AuthService struct {
	mock.Mock
}

func (m *AuthService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *AuthService) Login(ctx context.Context, email, password string) (string, string, *model.User, error) {
	args := m.Called(ctx, email, password)
	var user *model.User
	if u := args.Get(2); u != nil {
		user = u.(*model.User)
	}
	return args.String(0), args.String(1), user, args.Error(3)
}

func (m *AuthService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.Error(1)
}

func (m *AuthService) Logout(ctx context.Context, refreshToken string, access *auth.Claims) error {
	args := m.Called(ctx, refreshToken, access)
	return args.Error(0)
}

// ParentService mocks service.ParentService.
type ParentService struct {
	mock.Mock
}

func (m *ParentService) ListParents(ctx context.Context, p auth.Principal) ([]model.User, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *ParentService) CreateParent(ctx context.Context, p auth.Principal, in service.CreateParentInput) (*model.User, error) {
	args := m.Called(ctx, p, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *ParentService) GetParent(ctx context.Context, p auth.Principal, id string) (*model.User, error) {
	args := m.Called(ctx, p, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *ParentService) UpdateParent(ctx context.Context, p auth.Principal, id string, in service.UpdateParentInput) (*model.User, error) {
	args := m.Called(ctx, p, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *ParentService) DeleteParent(ctx context.Context, p auth.Principal, id string) error {
	args := m.Called(ctx, p, id)
	return args.Error(0)
}

// StudentService mocks service.StudentService.
type StudentService struct {
	mock.Mock
}

func (m *StudentService) ListStudents(ctx context.Context, p auth.Principal, role model.Role, userID string) ([]model.Student, error) {
	args := m.Called(ctx, p, role, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Student), args.Error(1)
}

func (m *StudentService) GetStudent(ctx context.Context, p auth.Principal, id string) (*model.Student, error) {
	args := m.Called(ctx, p, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Student), args.Error(1)
}

func (m *StudentService) CreateStudent(ctx context.Context, p auth.Principal, in service.CreateStudentInput) (*model.Student, error) {
	args := m.Called(ctx, p, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Student), args.Error(1)
}

func (m *StudentService) UpdateStudent(ctx context.Context, p auth.Principal, id string, in service.UpdateStudentInput) (*model.Student, error) {
	args := m.Called(ctx, p, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Student), args.Error(1)
}

func (m *StudentService) DeleteStudent(ctx context.Context, p auth.Principal, id string) (int64, error) {
	args := m.Called(ctx, p, id)
	return args.Get(0).(int64), args.Error(1)
}

// SessionService mocks service.SessionService.
type SessionService struct {
	mock.Mock
}

func (m *SessionService) ListSessions(ctx context.Context, p auth.Principal, studentID string) ([]model.Session, error) {
	args := m.Called(ctx, p, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Session), args.Error(1)
}

func (m *SessionService) CreateSession(ctx context.Context, p auth.Principal, in service.CreateSessionInput) (*model.Session, error) {
	args := m.Called(ctx, p, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *SessionService) UpdateSession(ctx context.Context, p auth.Principal, id string, in service.UpdateSessionInput) (*model.Session, error) {
	args := m.Called(ctx, p, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *SessionService) DeleteSession(ctx context.Context, p auth.Principal, id string) error {
	args := m.Called(ctx, p, id)
	return args.Error(0)
}

// UserService mocks service.UserService.
type UserService struct {
	mock.Mock
}

func (m *UserService) CreateUser(ctx context.Context, in service.NewUserInput) (*model.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *UserService) GetUser(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

var (
	_ service.AuthService    = (*AuthService)(nil)
	_ service.UserService    = (*UserService)(nil)
	_ service.ParentService  = (*ParentService)(nil)
	_ service.StudentService = (*StudentService)(nil)
	_ service.SessionService = (*SessionService)(nil)
)
