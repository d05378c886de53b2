package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tutordesk/internal/model"
)

// StudentFilter narrows student listings. Empty fields are ignored.
type StudentFilter struct {
	TeacherID string
	ParentID  string
}

// StudentRepository defines student persistence operations.
type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	Update(ctx context.Context, student *model.Student) error
	FindByID(ctx context.Context, id string) (*model.Student, error)
	List(ctx context.Context, filter StudentFilter) ([]model.Student, error)
	CountByParent(ctx context.Context, parentID string) (int64, error)
	// DeleteCascade removes the student and all its sessions in one transaction
	// and returns the number of sessions removed.
	DeleteCascade(ctx context.Context, id string) (int64, error)
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository creates a new student repository.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

// withRefs preloads the parent and teacher with display columns only.
func withRefs(db *gorm.DB) *gorm.DB {
	refCols := func(tx *gorm.DB) *gorm.DB {
		return tx.Select("id", "name", "email")
	}
	return db.Preload("Parent", refCols).Preload("Teacher", refCols)
}

// Create creates a new student. Associations are never written through.
func (r *studentRepository) Create(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(student).Error
}

// Update saves every column of the student, including a cleared parent.
func (r *studentRepository) Update(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(student).Error
}

// FindByID finds a student by ID with its references expanded.
func (r *studentRepository) FindByID(ctx context.Context, id string) (*model.Student, error) {
	var student model.Student
	if err := withRefs(r.db.WithContext(ctx)).Where("id = ?", id).First(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

// List returns students matching the filter, newest first.
func (r *studentRepository) List(ctx context.Context, filter StudentFilter) ([]model.Student, error) {
	q := withRefs(r.db.WithContext(ctx))
	if filter.TeacherID != "" {
		q = q.Where("teacher_id = ?", filter.TeacherID)
	}
	if filter.ParentID != "" {
		q = q.Where("parent_id = ?", filter.ParentID)
	}

	var students []model.Student
	if err := q.Order("created_at DESC").Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

// CountByParent counts the students linked to a parent.
func (r *studentRepository) CountByParent(ctx context.Context, parentID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Student{}).Where("parent_id = ?", parentID).Count(&count).Error
	return count, err
}

func (r *studentRepository) DeleteCascade(ctx context.Context, id string) (int64, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("student_id = ?", id).Delete(&model.Session{})
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected

		res = tx.Where("id = ?", id).Delete(&model.Student{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// rolls back the session delete
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}
