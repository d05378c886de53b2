package web

import (
	"github.com/labstack/echo/v4"

	"tutordesk/internal/model"
)

// ParentDashboard lists the parent's children.
func (h *Handler) ParentDashboard(c echo.Context) error {
	p := caller(c)
	students, err := h.students.ListStudents(c.Request().Context(), p, model.RoleParent, p.ID)
	if err != nil {
		return h.fail(c, err, "/login")
	}
	return h.render(c, "parent.html", pageData{Title: "My Children", Students: students})
}

// ParentStudent shows the read-only session history of one child.
func (h *Handler) ParentStudent(c echo.Context) error {
	ctx := c.Request().Context()
	p := caller(c)
	id := c.Param("id")

	student, err := h.students.GetStudent(ctx, p, id)
	if err != nil {
		return h.fail(c, err, "/parent")
	}
	sessions, err := h.sessions.ListSessions(ctx, p, id)
	if err != nil {
		return h.fail(c, err, "/parent")
	}
	return h.render(c, "parent_student.html", pageData{Title: student.Name, Student: student, Sessions: sessions})
}
