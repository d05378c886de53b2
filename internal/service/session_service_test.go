package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "tutordesk/internal/errors"
	"tutordesk/internal/model"
	"tutordesk/internal/repository"
)

func sampleSession() *model.Session {
	return &model.Session{
		ID:           sessionID,
		StudentID:    studentID,
		TeacherID:    teacherID,
		SessionNotes: "Fractions",
		ParentNotes:  "Practice daily",
		Homework:     "Worksheet 3",
		Date:         time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestSessionService_ListSessions(t *testing.T) {
	t.Run("teacher sees own sessions", func(t *testing.T) {
		sessions := new(MockSessionRepository)
		sessions.On("List", mock.Anything, repository.SessionFilter{StudentID: studentID, TeacherID: teacherID}).
			Return([]model.Session{*sampleSession()}, nil)
		svc := NewSessionService(sessions, new(MockStudentRepository))

		got, err := svc.ListSessions(context.Background(), teacherPrincipal, studentID)
		require.NoError(t, err)
		assert.Len(t, got, 1)
		sessions.AssertExpectations(t)
	})

	t.Run("linked parent", func(t *testing.T) {
		sessions := new(MockSessionRepository)
		students := new(MockStudentRepository)
		students.On("FindByID", mock.Anything, studentID).Return(sampleStudent(), nil)
		sessions.On("List", mock.Anything, repository.SessionFilter{StudentID: studentID}).
			Return([]model.Session{*sampleSession()}, nil)
		svc := NewSessionService(sessions, students)

		got, err := svc.ListSessions(context.Background(), parentPrincipal, studentID)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("unlinked parent gets empty list", func(t *testing.T) {
		sessions := new(MockSessionRepository)
		students := new(MockStudentRepository)
		students.On("FindByID", mock.Anything, studentID).Return(sampleStudent(), nil)
		svc := NewSessionService(sessions, students)

		got, err := svc.ListSessions(context.Background(), otherParentPrincipal, studentID)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
		sessions.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})

	t.Run("parent of missing student gets empty list", func(t *testing.T) {
		students := new(MockStudentRepository)
		students.On("FindByID", mock.Anything, studentID).Return(nil, gorm.ErrRecordNotFound)
		svc := NewSessionService(new(MockSessionRepository), students)

		got, err := svc.ListSessions(context.Background(), parentPrincipal, studentID)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("studentId required", func(t *testing.T) {
		svc := NewSessionService(new(MockSessionRepository), new(MockStudentRepository))
		_, err := svc.ListSessions(context.Background(), teacherPrincipal, "")
		assert.ErrorIs(t, err, apperrors.ErrValidation)

		_, err = svc.ListSessions(context.Background(), teacherPrincipal, "123")
		assert.ErrorIs(t, err, apperrors.ErrInvalidID)
	})
}

func TestSessionService_CreateSession(t *testing.T) {
	tests := []struct {
		name      string
		input     CreateSessionInput
		setupMock func(*MockSessionRepository, *MockStudentRepository)
		wantErr   error
	}{
		{
			name:  "successful creation",
			input: CreateSessionInput{StudentID: studentID, SessionNotes: "Fractions", Date: "2025-01-15"},
			setupMock: func(sessions *MockSessionRepository, students *MockStudentRepository) {
				students.On("FindByID", mock.Anything, studentID).Return(sampleStudent(), nil)
				sessions.On("Create", mock.Anything, mock.MatchedBy(func(s *model.Session) bool {
					return s.TeacherID == teacherID && s.StudentID == studentID &&
						s.Date.Equal(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC))
				})).Return(nil)
			},
		},
		{
			name:      "notes required",
			input:     CreateSessionInput{StudentID: studentID},
			setupMock: func(*MockSessionRepository, *MockStudentRepository) {},
			wantErr:   apperrors.ErrValidation,
		},
		{
			name:      "bad date",
			input:     CreateSessionInput{StudentID: studentID, SessionNotes: "x", Date: "yesterday"},
			setupMock: func(*MockSessionRepository, *MockStudentRepository) {},
			wantErr:   apperrors.ErrValidation,
		},
		{
			name:  "student of another teacher",
			input: CreateSessionInput{StudentID: studentID, SessionNotes: "x"},
			setupMock: func(sessions *MockSessionRepository, students *MockStudentRepository) {
				s := sampleStudent()
				s.TeacherID = otherTeacherID
				students.On("FindByID", mock.Anything, studentID).Return(s, nil)
			},
			wantErr: apperrors.ErrStudentNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := new(MockSessionRepository)
			students := new(MockStudentRepository)
			tt.setupMock(sessions, students)
			svc := NewSessionService(sessions, students)

			session, err := svc.CreateSession(context.Background(), teacherPrincipal, tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, session)
				sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Fractions", session.SessionNotes)
			sessions.AssertExpectations(t)
		})
	}
}

func TestSessionService_UpdateSession(t *testing.T) {
	t.Run("owner updates notes and keeps date", func(t *testing.T) {
		sessions := new(MockSessionRepository)
		sessions.On("FindByID", mock.Anything, sessionID).Return(sampleSession(), nil)
		sessions.On("Update", mock.Anything, mock.AnythingOfType("*model.Session")).Return(nil)
		svc := NewSessionService(sessions, new(MockStudentRepository))

		session, err := svc.UpdateSession(context.Background(), teacherPrincipal, sessionID, UpdateSessionInput{
			SessionNotes: "Decimals",
			Homework:     strPtr(""),
		})
		require.NoError(t, err)
		assert.Equal(t, "Decimals", session.SessionNotes)
		assert.Equal(t, "Practice daily", session.ParentNotes)
		assert.Empty(t, session.Homework)
		assert.Equal(t, 2025, session.Date.Year())
	})

	t.Run("other teacher", func(t *testing.T) {
		sessions := new(MockSessionRepository)
		sessions.On("FindByID", mock.Anything, sessionID).Return(sampleSession(), nil)
		svc := NewSessionService(sessions, new(MockStudentRepository))

		_, err := svc.UpdateSession(context.Background(), otherTeacherPrincipal, sessionID, UpdateSessionInput{SessionNotes: "x"})
		assert.Equal(t, apperrors.ErrSessionNotFound, err)
		sessions.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("parent cannot edit", func(t *testing.T) {
		svc := NewSessionService(new(MockSessionRepository), new(MockStudentRepository))
		_, err := svc.UpdateSession(context.Background(), parentPrincipal, sessionID, UpdateSessionInput{SessionNotes: "x"})
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}

func TestSessionService_DeleteSession(t *testing.T) {
	t.Run("owner deletes", func(t *testing.T) {
		sessions := new(MockSessionRepository)
		sessions.On("FindByID", mock.Anything, sessionID).Return(sampleSession(), nil)
		sessions.On("Delete", mock.Anything, sessionID).Return(nil)
		svc := NewSessionService(sessions, new(MockStudentRepository))

		require.NoError(t, svc.DeleteSession(context.Background(), teacherPrincipal, sessionID))
		sessions.AssertExpectations(t)
	})

	t.Run("missing session", func(t *testing.T) {
		sessions := new(MockSessionRepository)
		sessions.On("FindByID", mock.Anything, sessionID).Return(nil, gorm.ErrRecordNotFound)
		svc := NewSessionService(sessions, new(MockStudentRepository))

		assert.Equal(t, apperrors.ErrSessionNotFound, svc.DeleteSession(context.Background(), teacherPrincipal, sessionID))
	})

	t.Run("other teacher", func(t *testing.T) {
		sessions := new(MockSessionRepository)
		sessions.On("FindByID", mock.Anything, sessionID).Return(sampleSession(), nil)
		svc := NewSessionService(sessions, new(MockStudentRepository))

		assert.Equal(t, apperrors.ErrSessionNotFound, svc.DeleteSession(context.Background(), otherTeacherPrincipal, sessionID))
		sessions.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-01-15T10:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 10, d.Hour())

	d, err = ParseDate("")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	_, err = ParseDate("15/01/2025")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
