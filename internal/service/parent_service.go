package service

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"tutordesk/internal/auth"
	"tutordesk/internal/cache"
	apperrors "tutordesk/internal/errors"
	"tutordesk/internal/model"
	"tutordesk/internal/repository"
)

// CreateParentInput is the payload for a new parent account.
type CreateParentInput struct {
	Name     string
	Email    string
	Password string
}

// UpdateParentInput is a partial update; nil fields are left unchanged.
type UpdateParentInput struct {
	Name     *string
	Email    *string
	Password *string
}

// ParentService manages parent accounts on behalf of teachers.
type ParentService interface {
	ListParents(ctx context.Context, p auth.Principal) ([]model.User, error)
	CreateParent(ctx context.Context, p auth.Principal, in CreateParentInput) (*model.User, error)
	GetParent(ctx context.Context, p auth.Principal, id string) (*model.User, error)
	UpdateParent(ctx context.Context, p auth.Principal, id string, in UpdateParentInput) (*model.User, error)
	DeleteParent(ctx context.Context, p auth.Principal, id string) error
}

type parentService struct {
	users    repository.UserRepository
	students repository.StudentRepository
	cache    *cache.Client
}

// NewParentService creates a new parent service.
func NewParentService(users repository.UserRepository, students repository.StudentRepository, cache *cache.Client) ParentService {
	return &parentService{users: users, students: students, cache: cache}
}

// ListParents returns every parent account so teachers can link any of them.
func (s *parentService) ListParents(ctx context.Context, p auth.Principal) ([]model.User, error) {
	if p.IsParent() {
		return nil, apperrors.ErrUnauthorized
	}
	parents, err := s.users.ListByRole(ctx, model.RoleParent)
	if err != nil {
		return nil, fmt.Errorf("list parents: %w", err)
	}
	if parents == nil {
		parents = []model.User{}
	}
	return parents, nil
}

func (s *parentService) CreateParent(ctx context.Context, p auth.Principal, in CreateParentInput) (*model.User, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, apperrors.Invalid("missing fields")
	}
	if err := s.ensureEmailFree(ctx, email, ""); err != nil {
		return nil, err
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	parent := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleParent,
	}
	if err := s.users.Create(ctx, parent); err != nil {
		return nil, fmt.Errorf("create parent: %w", err)
	}
	return parent, nil
}

// GetParent returns a parent. Parents may only read their own record.
func (s *parentService) GetParent(ctx context.Context, p auth.Principal, id string) (*model.User, error) {
	if err := checkID(id, "parent id"); err != nil {
		return nil, err
	}
	if p.IsParent() && p.ID != id {
		return nil, apperrors.ErrParentNotFound
	}
	return s.findParent(ctx, id)
}

func (s *parentService) UpdateParent(ctx context.Context, p auth.Principal, id string, in UpdateParentInput) (*model.User, error) {
	if err := checkID(id, "parent id"); err != nil {
		return nil, err
	}
	parent, err := s.findParent(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if name := strings.TrimSpace(*in.Name); name != "" {
			parent.Name = name
		}
	}
	if in.Email != nil {
		if email := normalizeEmail(*in.Email); email != "" && email != parent.Email {
			if err := s.ensureEmailFree(ctx, email, parent.ID); err != nil {
				return nil, err
			}
			parent.Email = email
		}
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		parent.PasswordHash = hash
	}

	if err := s.users.Update(ctx, parent); err != nil {
		return nil, fmt.Errorf("update parent: %w", err)
	}
	_ = s.cache.Delete(ctx, userCacheKey(parent.ID))
	s.forgetStudentsOf(ctx, parent.ID)
	return parent, nil
}

// forgetStudentsOf drops cached students of the parent, since they embed the
// parent's name and email.
func (s *parentService) forgetStudentsOf(ctx context.Context, parentID string) {
	students, err := s.students.List(ctx, repository.StudentFilter{ParentID: parentID})
	if err != nil || len(students) == 0 {
		return
	}
	keys := make([]string, 0, len(students))
	for _, st := range students {
		keys = append(keys, studentCacheKey(st.ID))
	}
	_ = s.cache.Delete(ctx, keys...)
}

// DeleteParent removes a parent that no longer has students.
func (s *parentService) DeleteParent(ctx context.Context, p auth.Principal, id string) error {
	if err := checkID(id, "parent id"); err != nil {
		return err
	}
	if _, err := s.findParent(ctx, id); err != nil {
		return err
	}

	count, err := s.students.CountByParent(ctx, id)
	if err != nil {
		return fmt.Errorf("count students: %w", err)
	}
	if count > 0 {
		return apperrors.ErrParentHasStudents
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return notFound(err, apperrors.ErrParentNotFound)
	}
	_ = s.cache.Delete(ctx, userCacheKey(id))
	return nil
}

func (s *parentService) findParent(ctx context.Context, id string) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, apperrors.ErrParentNotFound)
	}
	if user.Role != model.RoleParent {
		return nil, apperrors.ErrParentNotFound
	}
	return user, nil
}

func (s *parentService) ensureEmailFree(ctx context.Context, email, ownerID string) error {
	existing, err := s.users.FindByEmail(ctx, email)
	if err == gorm.ErrRecordNotFound {
		return nil
	}
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if existing.ID != ownerID {
		return apperrors.ErrEmailTaken
	}
	return nil
}
