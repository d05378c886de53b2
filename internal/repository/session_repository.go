package repository

import (
	"context"

	"gorm.io/gorm"

	"tutordesk/internal/model"
)

// SessionFilter narrows tutoring session listings. StudentID is required.
type SessionFilter struct {
	StudentID string
	TeacherID string
}

// SessionRepository defines tutoring session persistence operations.
type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	Update(ctx context.Context, session *model.Session) error
	FindByID(ctx context.Context, id string) (*model.Session, error)
	List(ctx context.Context, filter SessionFilter) ([]model.Session, error)
	Delete(ctx context.Context, id string) error
}

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

// Create creates a new session record.
func (r *sessionRepository) Create(ctx context.Context, session *model.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// Update saves the session.
func (r *sessionRepository) Update(ctx context.Context, session *model.Session) error {
	return r.db.WithContext(ctx).Save(session).Error
}

// FindByID finds a session by ID.
func (r *sessionRepository) FindByID(ctx context.Context, id string) (*model.Session, error) {
	var session model.Session
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// List returns the sessions of a student, most recent date first.
func (r *sessionRepository) List(ctx context.Context, filter SessionFilter) ([]model.Session, error) {
	q := r.db.WithContext(ctx).Where("student_id = ?", filter.StudentID)
	if filter.TeacherID != "" {
		q = q.Where("teacher_id = ?", filter.TeacherID)
	}

	var sessions []model.Session
	if err := q.Order("date DESC").Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// Delete removes a session, returning gorm.ErrRecordNotFound when nothing matched.
func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Session{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
