package model

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// Student is a tutored child. Every student has exactly one owning teacher;
// the parent link is optional.
type Student struct {
	ID        string    `gorm:"type:char(24);primaryKey"`
	Name      string    `gorm:"size:255;not null"`
	Grade     string    `gorm:"size:100"`
	School    string    `gorm:"size:255"`
	Subjects  []string  `gorm:"type:text;serializer:json"`
	ParentID  *string   `gorm:"type:char(24);index"`
	TeacherID string    `gorm:"type:char(24);not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Relations
	Parent  *User `gorm:"foreignKey:ParentID"`
	Teacher *User `gorm:"foreignKey:TeacherID"`
}

// BeforeCreate assigns an ObjectID before inserting the record.
func (s *Student) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = NewID()
	}
	return nil
}

// OwnedBy reports whether teacherID owns the student.
func (s *Student) OwnedBy(teacherID string) bool {
	return s.TeacherID == teacherID
}

// HasParent reports whether parentID is the linked parent of the student.
func (s *Student) HasParent(parentID string) bool {
	return s.ParentID != nil && *s.ParentID == parentID
}

type studentJSON struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Grade     string    `json:"grade"`
	School    string    `json:"school"`
	Subjects  []string  `json:"subjects"`
	Parent    *UserRef  `json:"parent"`
	Teacher   *UserRef  `json:"teacher"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MarshalJSON renders references expanded: parent and teacher are objects
// (parent is null when unassigned).
func (s Student) MarshalJSON() ([]byte, error) {
	out := studentJSON{
		ID:        s.ID,
		Name:      s.Name,
		Grade:     s.Grade,
		School:    s.School,
		Subjects:  s.Subjects,
		Parent:    s.Parent.Ref(),
		Teacher:   s.Teacher.Ref(),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if out.Subjects == nil {
		out.Subjects = []string{}
	}
	if out.Parent == nil && s.ParentID != nil {
		out.Parent = &UserRef{ID: *s.ParentID}
	}
	if out.Teacher == nil && s.TeacherID != "" {
		out.Teacher = &UserRef{ID: s.TeacherID}
	}
	return json.Marshal(out)
}

// UnmarshalJSON is the inverse of MarshalJSON and is used for cached reads.
func (s *Student) UnmarshalJSON(data []byte) error {
	var in studentJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*s = Student{
		ID:        in.ID,
		Name:      in.Name,
		Grade:     in.Grade,
		School:    in.School,
		Subjects:  in.Subjects,
		CreatedAt: in.CreatedAt,
		UpdatedAt: in.UpdatedAt,
	}
	if in.Parent != nil {
		id := in.Parent.ID
		s.ParentID = &id
		s.Parent = &User{ID: in.Parent.ID, Name: in.Parent.Name, Email: in.Parent.Email}
	}
	if in.Teacher != nil {
		s.TeacherID = in.Teacher.ID
		s.Teacher = &User{ID: in.Teacher.ID, Name: in.Teacher.Name, Email: in.Teacher.Email}
	}
	return nil
}
