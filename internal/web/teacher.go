package web

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"tutordesk/internal/auth"
	"tutordesk/internal/model"
	"tutordesk/internal/service"
)

func caller(c echo.Context) auth.Principal {
	p, _ := auth.PrincipalFrom(c.Request().Context())
	return p
}

// optional returns nil for an empty form field.
func optional(c echo.Context, name string) *string {
	v := strings.TrimSpace(c.FormValue(name))
	if v == "" {
		return nil
	}
	return &v
}

// TeacherDashboard lists the teacher's students and all parents.
func (h *Handler) TeacherDashboard(c echo.Context) error {
	ctx := c.Request().Context()
	p := caller(c)

	students, err := h.students.ListStudents(ctx, p, model.RoleTeacher, p.ID)
	if err != nil {
		return h.fail(c, err, "/login")
	}
	parents, err := h.parents.ListParents(ctx, p)
	if err != nil {
		return h.fail(c, err, "/login")
	}
	return h.render(c, "teacher.html", pageData{Title: "My Students", Students: students, Parents: parents})
}

func (h *Handler) CreateParent(c echo.Context) error {
	_, err := h.parents.CreateParent(c.Request().Context(), caller(c), service.CreateParentInput{
		Name:     c.FormValue("name"),
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
	})
	if err != nil {
		return h.fail(c, err, "/teacher")
	}
	return h.done(c, "Parent created", "/teacher")
}

// TeacherParent shows a parent with the teacher's students linked to them.
func (h *Handler) TeacherParent(c echo.Context) error {
	ctx := c.Request().Context()
	p := caller(c)
	id := c.Param("id")

	parent, err := h.parents.GetParent(ctx, p, id)
	if err != nil {
		return h.fail(c, err, "/teacher")
	}
	students, err := h.students.ListStudents(ctx, p, model.RoleParent, id)
	if err != nil {
		return h.fail(c, err, "/teacher")
	}
	return h.render(c, "teacher_parent.html", pageData{Title: parent.Name, Parent: parent, Students: students})
}

func (h *Handler) UpdateParent(c echo.Context) error {
	id := c.Param("id")
	back := "/teacher/parents/" + id
	_, err := h.parents.UpdateParent(c.Request().Context(), caller(c), id, service.UpdateParentInput{
		Name:     optional(c, "name"),
		Email:    optional(c, "email"),
		Password: optional(c, "password"),
	})
	if err != nil {
		return h.fail(c, err, back)
	}
	return h.done(c, "Parent updated", back)
}

func (h *Handler) DeleteParent(c echo.Context) error {
	id := c.Param("id")
	if err := h.parents.DeleteParent(c.Request().Context(), caller(c), id); err != nil {
		return h.fail(c, err, "/teacher/parents/"+id)
	}
	return h.done(c, "Parent deleted", "/teacher")
}

// CreateStudent creates a student and returns to the form's page.
func (h *Handler) CreateStudent(c echo.Context) error {
	back := c.FormValue("next")
	if !strings.HasPrefix(back, "/teacher") {
		back = "/teacher"
	}
	_, err := h.students.CreateStudent(c.Request().Context(), caller(c), service.CreateStudentInput{
		Name:     c.FormValue("name"),
		Grade:    c.FormValue("grade"),
		School:   c.FormValue("school"),
		Subjects: splitSubjects(c.FormValue("subjects")),
		ParentID: optional(c, "parentId"),
	})
	if err != nil {
		return h.fail(c, err, back)
	}
	return h.done(c, "Student created", back)
}

// TeacherStudent shows a student with its sessions.
func (h *Handler) TeacherStudent(c echo.Context) error {
	ctx := c.Request().Context()
	p := caller(c)
	id := c.Param("id")

	student, err := h.students.GetStudent(ctx, p, id)
	if err != nil {
		return h.fail(c, err, "/teacher")
	}
	sessions, err := h.sessions.ListSessions(ctx, p, id)
	if err != nil {
		return h.fail(c, err, "/teacher")
	}
	parents, err := h.parents.ListParents(ctx, p)
	if err != nil {
		return h.fail(c, err, "/teacher")
	}
	return h.render(c, "teacher_student.html", pageData{
		Title:    student.Name,
		Student:  student,
		Sessions: sessions,
		Parents:  parents,
	})
}

// UpdateStudent saves the edit form. An empty parent select unlinks the parent.
func (h *Handler) UpdateStudent(c echo.Context) error {
	id := c.Param("id")
	back := "/teacher/students/" + id
	name := c.FormValue("name")
	grade := c.FormValue("grade")
	school := c.FormValue("school")
	subjects := splitSubjects(c.FormValue("subjects"))

	_, err := h.students.UpdateStudent(c.Request().Context(), caller(c), id, service.UpdateStudentInput{
		Name:     &name,
		Grade:    &grade,
		School:   &school,
		Subjects: &subjects,
		ParentID: service.Some(optional(c, "parentId")),
	})
	if err != nil {
		return h.fail(c, err, back)
	}
	return h.done(c, "Student updated", back)
}

func (h *Handler) DeleteStudent(c echo.Context) error {
	id := c.Param("id")
	removed, err := h.students.DeleteStudent(c.Request().Context(), caller(c), id)
	if err != nil {
		return h.fail(c, err, "/teacher/students/"+id)
	}
	return h.done(c, fmt.Sprintf("Student deleted with %d session(s)", removed), "/teacher")
}

func (h *Handler) CreateSession(c echo.Context) error {
	studentID := c.Param("id")
	back := "/teacher/students/" + studentID
	_, err := h.sessions.CreateSession(c.Request().Context(), caller(c), service.CreateSessionInput{
		StudentID:    studentID,
		SessionNotes: c.FormValue("sessionNotes"),
		ParentNotes:  c.FormValue("parentNotes"),
		Homework:     c.FormValue("homework"),
		Date:         c.FormValue("date"),
	})
	if err != nil {
		return h.fail(c, err, back)
	}
	return h.done(c, "Session added", back)
}

func (h *Handler) UpdateSession(c echo.Context) error {
	back := studentPage(c)
	parentNotes := c.FormValue("parentNotes")
	homework := c.FormValue("homework")
	_, err := h.sessions.UpdateSession(c.Request().Context(), caller(c), c.Param("id"), service.UpdateSessionInput{
		SessionNotes: c.FormValue("sessionNotes"),
		ParentNotes:  &parentNotes,
		Homework:     &homework,
		Date:         c.FormValue("date"),
	})
	if err != nil {
		return h.fail(c, err, back)
	}
	return h.done(c, "Session updated", back)
}

func (h *Handler) DeleteSession(c echo.Context) error {
	back := studentPage(c)
	if err := h.sessions.DeleteSession(c.Request().Context(), caller(c), c.Param("id")); err != nil {
		return h.fail(c, err, back)
	}
	return h.done(c, "Session deleted", back)
}

// studentPage is the redirect target of session forms.
func studentPage(c echo.Context) string {
	if id := c.FormValue("studentId"); model.IsValidID(id) {
		return "/teacher/students/" + id
	}
	return "/teacher"
}

