package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tutordesk/internal/auth"
	"tutordesk/internal/cache"
	apperrors "tutordesk/internal/errors"
	"tutordesk/internal/model"
	"tutordesk/internal/repository"
)

const studentCacheTTL = 5 * time.Minute

// CreateStudentInput is the payload for a new student. A nil ParentID
// leaves the student without a parent.
type CreateStudentInput struct {
	Name     string
	Grade    string
	School   string
	Subjects []string
	ParentID *string
}

// UpdateStudentInput is a partial update. ParentID set to null clears the parent.
type UpdateStudentInput struct {
	Name     *string
	Grade    *string
	School   *string
	Subjects *[]string
	ParentID Optional[*string]
}

// StudentService manages students with role scoped visibility.
type StudentService interface {
	// ListStudents lists students by role and user id, narrowed to what the caller may see.
	ListStudents(ctx context.Context, p auth.Principal, role model.Role, userID string) ([]model.Student, error)
	GetStudent(ctx context.Context, p auth.Principal, id string) (*model.Student, error)
	CreateStudent(ctx context.Context, p auth.Principal, in CreateStudentInput) (*model.Student, error)
	UpdateStudent(ctx context.Context, p auth.Principal, id string, in UpdateStudentInput) (*model.Student, error)
	// DeleteStudent removes the student and its sessions, returning how many sessions went with it.
	DeleteStudent(ctx context.Context, p auth.Principal, id string) (int64, error)
}

type studentService struct {
	students repository.StudentRepository
	users    repository.UserRepository
	cache    *cache.Client
}

// NewStudentService creates a new student service.
func NewStudentService(students repository.StudentRepository, users repository.UserRepository, cache *cache.Client) StudentService {
	return &studentService{students: students, users: users, cache: cache}
}

func studentCacheKey(id string) string {
	return fmt.Sprintf("student:%s", id)
}

// canRead reports whether p may see the student.
func canRead(p auth.Principal, s *model.Student) bool {
	switch {
	case p.IsAdmin():
		return true
	case p.IsTeacher():
		return s.OwnedBy(p.ID)
	case p.IsParent():
		return s.HasParent(p.ID)
	}
	return false
}

// canWrite reports whether p may mutate the student.
func canWrite(p auth.Principal, s *model.Student) bool {
	return p.IsTeacher() && s.OwnedBy(p.ID)
}

func (s *studentService) ListStudents(ctx context.Context, p auth.Principal, role model.Role, userID string) ([]model.Student, error) {
	if role == "" || userID == "" {
		return nil, apperrors.Invalid("missing role or userId")
	}
	if err := checkID(userID, "userId"); err != nil {
		return nil, err
	}

	var filter repository.StudentFilter
	switch role {
	case model.RoleTeacher:
		filter.TeacherID = userID
	case model.RoleParent:
		filter.ParentID = userID
	default:
		return nil, apperrors.Invalid("invalid role")
	}

	// AND the requested filter with the caller's own scope.
	switch p.Role {
	case model.RoleTeacher:
		if filter.TeacherID != "" && filter.TeacherID != p.ID {
			return []model.Student{}, nil
		}
		filter.TeacherID = p.ID
	case model.RoleParent:
		if filter.ParentID != "" && filter.ParentID != p.ID {
			return []model.Student{}, nil
		}
		filter.ParentID = p.ID
	case model.RoleAdmin:
	default:
		return nil, apperrors.ErrUnauthorized
	}

	students, err := s.students.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	if students == nil {
		students = []model.Student{}
	}
	return students, nil
}

func (s *studentService) GetStudent(ctx context.Context, p auth.Principal, id string) (*model.Student, error) {
	if err := checkID(id, "student id"); err != nil {
		return nil, err
	}

	var student *model.Student
	var cached model.Student
	if s.cache.GetJSON(ctx, studentCacheKey(id), &cached) {
		student = &cached
	} else {
		found, err := s.students.FindByID(ctx, id)
		if err != nil {
			return nil, notFound(err, apperrors.ErrStudentNotFound)
		}
		s.cache.SetJSON(ctx, studentCacheKey(id), found, studentCacheTTL)
		student = found
	}

	if !canRead(p, student) {
		return nil, apperrors.ErrStudentNotFound
	}
	return student, nil
}

func (s *studentService) CreateStudent(ctx context.Context, p auth.Principal, in CreateStudentInput) (*model.Student, error) {
	if !p.IsTeacher() {
		return nil, apperrors.ErrUnauthorized
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperrors.Invalid("name is required")
	}

	parentID, err := s.resolveParent(ctx, in.ParentID)
	if err != nil {
		return nil, err
	}

	student := &model.Student{
		Name:      name,
		Grade:     strings.TrimSpace(in.Grade),
		School:    strings.TrimSpace(in.School),
		Subjects:  trimAll(in.Subjects),
		ParentID:  parentID,
		TeacherID: p.ID,
	}
	if err := s.students.Create(ctx, student); err != nil {
		return nil, fmt.Errorf("create student: %w", err)
	}

	created, err := s.students.FindByID(ctx, student.ID)
	if err != nil {
		return nil, fmt.Errorf("reload student: %w", err)
	}
	return created, nil
}

func (s *studentService) UpdateStudent(ctx context.Context, p auth.Principal, id string, in UpdateStudentInput) (*model.Student, error) {
	if err := checkID(id, "student id"); err != nil {
		return nil, err
	}
	student, err := s.students.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, apperrors.ErrStudentNotFound)
	}
	if !canWrite(p, student) {
		return nil, apperrors.ErrStudentNotFound
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apperrors.Invalid("name cannot be empty")
		}
		student.Name = name
	}
	if in.Grade != nil {
		student.Grade = strings.TrimSpace(*in.Grade)
	}
	if in.School != nil {
		student.School = strings.TrimSpace(*in.School)
	}
	if in.Subjects != nil {
		student.Subjects = trimAll(*in.Subjects)
	}
	if in.ParentID.Set {
		parentID, err := s.resolveParent(ctx, in.ParentID.Value)
		if err != nil {
			return nil, err
		}
		student.ParentID = parentID
		student.Parent = nil
	}

	if err := s.students.Update(ctx, student); err != nil {
		return nil, fmt.Errorf("update student: %w", err)
	}
	_ = s.cache.Delete(ctx, studentCacheKey(id))

	updated, err := s.students.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, apperrors.ErrStudentNotFound)
	}
	return updated, nil
}

func (s *studentService) DeleteStudent(ctx context.Context, p auth.Principal, id string) (int64, error) {
	if err := checkID(id, "student id"); err != nil {
		return 0, err
	}
	student, err := s.students.FindByID(ctx, id)
	if err != nil {
		return 0, notFound(err, apperrors.ErrStudentNotFound)
	}
	if !canWrite(p, student) {
		return 0, apperrors.ErrStudentNotFound
	}

	removed, err := s.students.DeleteCascade(ctx, id)
	if err != nil {
		return 0, notFound(err, apperrors.ErrStudentNotFound)
	}
	_ = s.cache.Delete(ctx, studentCacheKey(id))
	return removed, nil
}

// resolveParent validates an optional parent reference. nil and "" mean no parent.
func (s *studentService) resolveParent(ctx context.Context, parentID *string) (*string, error) {
	if parentID == nil || strings.TrimSpace(*parentID) == "" {
		return nil, nil
	}
	id := strings.TrimSpace(*parentID)
	if err := checkID(id, "parentId"); err != nil {
		return nil, err
	}

	parent, err := s.users.FindByID(ctx, id)
	if err != nil {
		if notFound(err, apperrors.ErrNotFound) == apperrors.ErrNotFound {
			return nil, apperrors.ErrInvalidParentRef
		}
		return nil, fmt.Errorf("check parent: %w", err)
	}
	if parent.Role != model.RoleParent {
		return nil, apperrors.ErrInvalidParentRef
	}
	return &id, nil
}
