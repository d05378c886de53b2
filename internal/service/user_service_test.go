package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "tutordesk/internal/errors"
	"tutordesk/internal/model"
)

func TestUserService_CreateUser(t *testing.T) {
	t.Run("hashes password and normalizes email", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByEmail", mock.Anything, "new@test.com").Return(nil, gorm.ErrRecordNotFound)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u.Email == "new@test.com" && u.Name == "New Teacher" && u.Role == model.RoleTeacher
		})).Return(nil)

		svc := NewUserService(repo, nil)
		user, err := svc.CreateUser(context.Background(), NewUserInput{
			Name:     " New Teacher ",
			Email:    "New@Test.com",
			Password: "password123",
			Role:     model.RoleTeacher,
		})

		require.NoError(t, err)
		assert.NotEqual(t, "password123", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
		repo.AssertExpectations(t)
	})

	tests := []struct {
		name    string
		in      NewUserInput
		setup   func(*MockUserRepository)
		wantErr error
	}{
		{
			name:    "missing password",
			in:      NewUserInput{Name: "A", Email: "a@test.com", Role: model.RoleParent},
			wantErr: apperrors.ErrValidation,
		},
		{
			name:    "unknown role",
			in:      NewUserInput{Name: "A", Email: "a@test.com", Password: "x", Role: model.Role("student")},
			wantErr: apperrors.ErrValidation,
		},
		{
			name: "email taken",
			in:   NewUserInput{Name: "A", Email: "teacher@test.com", Password: "x", Role: model.RoleParent},
			setup: func(repo *MockUserRepository) {
				repo.On("FindByEmail", mock.Anything, "teacher@test.com").Return(&model.User{ID: teacherID}, nil)
			},
			wantErr: apperrors.ErrEmailTaken,
		},
		{
			name: "lookup failure",
			in:   NewUserInput{Name: "A", Email: "a@test.com", Password: "x", Role: model.RoleParent},
			setup: func(repo *MockUserRepository) {
				repo.On("FindByEmail", mock.Anything, "a@test.com").Return(nil, assert.AnError)
			},
			wantErr: assert.AnError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			if tt.setup != nil {
				tt.setup(repo)
			}
			svc := NewUserService(repo, nil)

			user, err := svc.CreateUser(context.Background(), tt.in)

			assert.Nil(t, user)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestUserService_GetUser(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByID", mock.Anything, teacherID).
			Return(&model.User{ID: teacherID, Name: "Teacher", Role: model.RoleTeacher}, nil)

		user, err := NewUserService(repo, nil).GetUser(context.Background(), teacherID)

		require.NoError(t, err)
		assert.Equal(t, "Teacher", user.Name)
	})

	t.Run("missing", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByID", mock.Anything, teacherID).Return(nil, gorm.ErrRecordNotFound)

		_, err := NewUserService(repo, nil).GetUser(context.Background(), teacherID)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		repo := new(MockUserRepository)

		_, err := NewUserService(repo, nil).GetUser(context.Background(), "abc")

		assert.ErrorIs(t, err, apperrors.ErrInvalidID)
		repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}
