package service

import (
	"context"
	"fmt"
	"strings"

	"tutordesk/internal/auth"
	apperrors "tutordesk/internal/errors"
	"tutordesk/internal/model"
	"tutordesk/internal/repository"
)

// CreateSessionInput is the payload for logging a tutoring session.
// Date accepts RFC3339 or YYYY-MM-DD and defaults to now.
type CreateSessionInput struct {
	StudentID    string
	SessionNotes string
	ParentNotes  string
	Homework     string
	Date         string
}

// UpdateSessionInput replaces the session notes. Nil fields and an empty
// Date are left unchanged.
type UpdateSessionInput struct {
	SessionNotes string
	ParentNotes  *string
	Homework     *string
	Date         string
}

// SessionService manages tutoring sessions. Parents only ever read.
type SessionService interface {
	ListSessions(ctx context.Context, p auth.Principal, studentID string) ([]model.Session, error)
	CreateSession(ctx context.Context, p auth.Principal, in CreateSessionInput) (*model.Session, error)
	UpdateSession(ctx context.Context, p auth.Principal, id string, in UpdateSessionInput) (*model.Session, error)
	DeleteSession(ctx context.Context, p auth.Principal, id string) error
}

type sessionService struct {
	sessions repository.SessionRepository
	students repository.StudentRepository
}

// NewSessionService creates a new session service.
func NewSessionService(sessions repository.SessionRepository, students repository.StudentRepository) SessionService {
	return &sessionService{sessions: sessions, students: students}
}

// ListSessions returns the sessions of a student, newest first. Students
// outside the caller's scope yield an empty list.
func (s *sessionService) ListSessions(ctx context.Context, p auth.Principal, studentID string) ([]model.Session, error) {
	if studentID == "" {
		return nil, apperrors.Invalid("valid studentId is required")
	}
	if err := checkID(studentID, "studentId"); err != nil {
		return nil, err
	}

	filter := repository.SessionFilter{StudentID: studentID}
	switch p.Role {
	case model.RoleTeacher:
		filter.TeacherID = p.ID
	case model.RoleParent:
		student, err := s.students.FindByID(ctx, studentID)
		if err != nil {
			if notFound(err, apperrors.ErrNotFound) == apperrors.ErrNotFound {
				return []model.Session{}, nil
			}
			return nil, fmt.Errorf("find student: %w", err)
		}
		if !student.HasParent(p.ID) {
			return []model.Session{}, nil
		}
	case model.RoleAdmin:
	default:
		return nil, apperrors.ErrUnauthorized
	}

	sessions, err := s.sessions.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	if sessions == nil {
		sessions = []model.Session{}
	}
	return sessions, nil
}

func (s *sessionService) CreateSession(ctx context.Context, p auth.Principal, in CreateSessionInput) (*model.Session, error) {
	if !p.IsTeacher() {
		return nil, apperrors.ErrUnauthorized
	}
	if in.StudentID == "" || strings.TrimSpace(in.SessionNotes) == "" {
		return nil, apperrors.Invalid("studentId and sessionNotes are required")
	}
	if err := checkID(in.StudentID, "studentId"); err != nil {
		return nil, err
	}
	date, err := ParseDate(in.Date)
	if err != nil {
		return nil, err
	}

	student, err := s.students.FindByID(ctx, in.StudentID)
	if err != nil {
		return nil, notFound(err, apperrors.ErrStudentNotFound)
	}
	if !student.OwnedBy(p.ID) {
		return nil, apperrors.ErrStudentNotFound
	}

	session := &model.Session{
		StudentID:    student.ID,
		TeacherID:    p.ID,
		SessionNotes: in.SessionNotes,
		ParentNotes:  in.ParentNotes,
		Homework:     in.Homework,
		Date:         date,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

func (s *sessionService) UpdateSession(ctx context.Context, p auth.Principal, id string, in UpdateSessionInput) (*model.Session, error) {
	if id == "" || strings.TrimSpace(in.SessionNotes) == "" {
		return nil, apperrors.Invalid("sessionId and sessionNotes are required")
	}
	if err := checkID(id, "sessionId"); err != nil {
		return nil, err
	}
	date, err := ParseDate(in.Date)
	if err != nil {
		return nil, err
	}

	session, err := s.ownedSession(ctx, p, id)
	if err != nil {
		return nil, err
	}

	session.SessionNotes = in.SessionNotes
	if in.ParentNotes != nil {
		session.ParentNotes = *in.ParentNotes
	}
	if in.Homework != nil {
		session.Homework = *in.Homework
	}
	if !date.IsZero() {
		session.Date = date
	}

	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}
	return session, nil
}

func (s *sessionService) DeleteSession(ctx context.Context, p auth.Principal, id string) error {
	if id == "" {
		return apperrors.Invalid("valid sessionId is required")
	}
	if err := checkID(id, "sessionId"); err != nil {
		return err
	}
	if _, err := s.ownedSession(ctx, p, id); err != nil {
		return err
	}
	if err := s.sessions.Delete(ctx, id); err != nil {
		return notFound(err, apperrors.ErrSessionNotFound)
	}
	return nil
}

// ownedSession loads a session the caller owns. Sessions of other teachers
// are reported as missing.
func (s *sessionService) ownedSession(ctx context.Context, p auth.Principal, id string) (*model.Session, error) {
	if !p.IsTeacher() {
		return nil, apperrors.ErrUnauthorized
	}
	session, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, apperrors.ErrSessionNotFound)
	}
	if !session.OwnedBy(p.ID) {
		return nil, apperrors.ErrSessionNotFound
	}
	return session, nil
}
