package model

import (
	"time"

	"gorm.io/gorm"
)

// Session is a dated record of a tutoring interaction (not an auth session).
type Session struct {
	ID           string    `json:"id" gorm:"type:char(24);primaryKey"`
	StudentID    string    `json:"student" gorm:"type:char(24);not null;index"`
	TeacherID    string    `json:"teacher" gorm:"type:char(24);not null;index"`
	SessionNotes string    `json:"sessionNotes" gorm:"type:text"`
	ParentNotes  string    `json:"parentNotes" gorm:"type:text"`
	Homework     string    `json:"homework" gorm:"type:text"`
	Date         time.Time `json:"date" gorm:"not null;index"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// BeforeCreate assigns an ObjectID and defaults the date to now.
func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = NewID()
	}
	if s.Date.IsZero() {
		s.Date = time.Now()
	}
	return nil
}

// OwnedBy reports whether teacherID owns the session.
func (s *Session) OwnedBy(teacherID string) bool {
	return s.TeacherID == teacherID
}
