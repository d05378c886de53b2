package repository

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"tutordesk/internal/db"
	"tutordesk/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gormDB, err := db.Open("sqlite", "file::memory:", zerolog.New(io.Discard))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))
	t.Cleanup(func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gormDB
}

func createUser(t *testing.T, repo UserRepository, name, email string, role model.Role) *model.User {
	t.Helper()
	user := &model.User{Name: name, Email: email, PasswordHash: "hash", Role: role}
	require.NoError(t, repo.Create(context.Background(), user))
	require.True(t, model.IsValidID(user.ID))
	return user
}

func createSession(t *testing.T, repo SessionRepository, studentID, teacherID string, date time.Time) *model.Session {
	t.Helper()
	session := &model.Session{StudentID: studentID, TeacherID: teacherID, SessionNotes: "notes", Date: date}
	require.NoError(t, repo.Create(context.Background(), session))
	return session
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	teacher := createUser(t, repo, "Teacher", "teacher@test.com", model.RoleTeacher)
	createUser(t, repo, "Zoe", "zoe@test.com", model.RoleParent)
	createUser(t, repo, "Adam", "adam@test.com", model.RoleParent)

	found, err := repo.FindByEmail(ctx, "teacher@test.com")
	require.NoError(t, err)
	assert.Equal(t, teacher.ID, found.ID)

	_, err = repo.FindByEmail(ctx, "nobody@test.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	parents, err := repo.ListByRole(ctx, model.RoleParent)
	require.NoError(t, err)
	require.Len(t, parents, 2)
	assert.Equal(t, "Adam", parents[0].Name)
	assert.Equal(t, "Zoe", parents[1].Name)
	assert.Empty(t, parents[0].PasswordHash)

	require.NoError(t, repo.Delete(ctx, teacher.ID))
	assert.ErrorIs(t, repo.Delete(ctx, teacher.ID), gorm.ErrRecordNotFound)
}

func TestStudentRepository_RefsAndUpdate(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	users := NewUserRepository(gormDB)
	repo := NewStudentRepository(gormDB)

	teacher := createUser(t, users, "Teacher", "teacher@test.com", model.RoleTeacher)
	parent := createUser(t, users, "Parent", "parent@test.com", model.RoleParent)

	student := &model.Student{Name: "Aruhi", Subjects: []string{"Math", "Science"}, ParentID: &parent.ID, TeacherID: teacher.ID}
	require.NoError(t, repo.Create(ctx, student))

	found, err := repo.FindByID(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Math", "Science"}, found.Subjects)
	require.NotNil(t, found.Parent)
	assert.Equal(t, "Parent", found.Parent.Name)
	assert.Empty(t, found.Parent.PasswordHash)
	require.NotNil(t, found.Teacher)
	assert.Equal(t, "Teacher", found.Teacher.Name)

	count, err := repo.CountByParent(ctx, parent.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// the preloaded Parent is still set; only the column is cleared
	found.ParentID = nil
	require.NoError(t, repo.Update(ctx, found))

	cleared, err := repo.FindByID(ctx, student.ID)
	require.NoError(t, err)
	assert.Nil(t, cleared.ParentID)
	assert.Nil(t, cleared.Parent)

	var parentCount int64
	require.NoError(t, gormDB.Model(&model.User{}).Count(&parentCount).Error)
	assert.Equal(t, int64(2), parentCount)

	_, err = repo.FindByID(ctx, model.NewID())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestStudentRepository_List(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	users := NewUserRepository(gormDB)
	repo := NewStudentRepository(gormDB)

	teacher := createUser(t, users, "Teacher", "teacher@test.com", model.RoleTeacher)
	other := createUser(t, users, "Other", "other@test.com", model.RoleTeacher)
	parent := createUser(t, users, "Parent", "parent@test.com", model.RoleParent)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, s := range []*model.Student{
		{Name: "Oldest", TeacherID: teacher.ID, ParentID: &parent.ID, CreatedAt: base},
		{Name: "Newest", TeacherID: teacher.ID, ParentID: &parent.ID, CreatedAt: base.Add(48 * time.Hour)},
		{Name: "Unlinked", TeacherID: teacher.ID, CreatedAt: base.Add(24 * time.Hour)},
		{Name: "Elsewhere", TeacherID: other.ID, ParentID: &parent.ID, CreatedAt: base.Add(72 * time.Hour)},
	} {
		require.NoError(t, repo.Create(ctx, s), "student %d", i)
	}

	names := func(students []model.Student) []string {
		out := make([]string, 0, len(students))
		for _, s := range students {
			out = append(out, s.Name)
		}
		return out
	}

	tests := []struct {
		name   string
		filter StudentFilter
		want   []string
	}{
		{"by teacher newest first", StudentFilter{TeacherID: teacher.ID}, []string{"Newest", "Unlinked", "Oldest"}},
		{"by parent", StudentFilter{ParentID: parent.ID}, []string{"Elsewhere", "Newest", "Oldest"}},
		{"teacher and parent", StudentFilter{TeacherID: teacher.ID, ParentID: parent.ID}, []string{"Newest", "Oldest"}},
		{"no match", StudentFilter{TeacherID: model.NewID()}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			students, err := repo.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(students))
		})
	}
}

func TestStudentRepository_DeleteCascade(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	users := NewUserRepository(gormDB)
	students := NewStudentRepository(gormDB)
	sessions := NewSessionRepository(gormDB)

	teacher := createUser(t, users, "Teacher", "teacher@test.com", model.RoleTeacher)
	target := &model.Student{Name: "Target", TeacherID: teacher.ID}
	kept := &model.Student{Name: "Kept", TeacherID: teacher.ID}
	require.NoError(t, students.Create(ctx, target))
	require.NoError(t, students.Create(ctx, kept))

	day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		createSession(t, sessions, target.ID, teacher.ID, day.AddDate(0, 0, i))
	}
	survivor := createSession(t, sessions, kept.ID, teacher.ID, day)

	removed, err := students.DeleteCascade(ctx, target.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)

	_, err = students.FindByID(ctx, target.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	left, err := sessions.List(ctx, SessionFilter{StudentID: target.ID})
	require.NoError(t, err)
	assert.Empty(t, left)

	_, err = sessions.FindByID(ctx, survivor.ID)
	assert.NoError(t, err)
	_, err = students.FindByID(ctx, kept.ID)
	assert.NoError(t, err)
}

func TestStudentRepository_DeleteCascadeMissingRollsBack(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	students := NewStudentRepository(gormDB)
	sessions := NewSessionRepository(gormDB)

	missing := model.NewID()
	orphan := createSession(t, sessions, missing, model.NewID(), time.Now())

	removed, err := students.DeleteCascade(ctx, missing)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Zero(t, removed)

	_, err = sessions.FindByID(ctx, orphan.ID)
	assert.NoError(t, err, "session delete must be rolled back")
}

func TestSessionRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(newTestDB(t))

	studentID := model.NewID()
	teacherID := model.NewID()
	otherTeacher := model.NewID()
	day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	first := createSession(t, repo, studentID, teacherID, day)
	latest := createSession(t, repo, studentID, teacherID, day.AddDate(0, 1, 0))
	middle := createSession(t, repo, studentID, teacherID, day.AddDate(0, 0, 7))
	createSession(t, repo, studentID, otherTeacher, day.AddDate(1, 0, 0))
	createSession(t, repo, model.NewID(), teacherID, day)

	list, err := repo.List(ctx, SessionFilter{StudentID: studentID, TeacherID: teacherID})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{latest.ID, middle.ID, first.ID}, []string{list[0].ID, list[1].ID, list[2].ID})

	all, err := repo.List(ctx, SessionFilter{StudentID: studentID})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	first.Homework = "page 12"
	require.NoError(t, repo.Update(ctx, first))
	updated, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "page 12", updated.Homework)

	require.NoError(t, repo.Delete(ctx, first.ID))
	assert.ErrorIs(t, repo.Delete(ctx, first.ID), gorm.ErrRecordNotFound)
}
