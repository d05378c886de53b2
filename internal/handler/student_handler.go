package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tutordesk/internal/model"
	"tutordesk/internal/service"
)

// StudentHandler handles student endpoints.
type StudentHandler struct {
	studentService service.StudentService
}

// NewStudentHandler creates a new student handler.
func NewStudentHandler(studentService service.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// CreateStudentRequest represents a new student. A null or absent parentId
// creates the student without a parent.
type CreateStudentRequest struct {
	Name     string   `json:"name" validate:"required"`
	Grade    string   `json:"grade"`
	School   string   `json:"school"`
	Subjects []string `json:"subjects"`
	ParentID *string  `json:"parentId"`
}

// UpdateStudentRequest is a partial update. An explicit null parentId
// unlinks the parent.
type UpdateStudentRequest struct {
	Name     *string                   `json:"name"`
	Grade    *string                   `json:"grade"`
	School   *string                   `json:"school"`
	Subjects *[]string                 `json:"subjects"`
	ParentID service.Optional[*string] `json:"parentId" swaggertype:"string"`
}

// DeleteStudentResponse reports the cascade result.
type DeleteStudentResponse struct {
	Message         string `json:"message"`
	SessionsDeleted int64  `json:"sessionsDeleted"`
}

// ListStudents godoc
// @Summary List students
// @Description Lists students by role and user id, narrowed to what the caller may see.
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param role query string true "teacher or parent"
// @Param userId query string true "User ID"
// @Success 200 {array} model.Student
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /students [get]
func (h *StudentHandler) ListStudents(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	students, err := h.studentService.ListStudents(c.Request().Context(), p, model.Role(c.QueryParam("role")), c.QueryParam("userId"))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, students)
}

// CreateStudent godoc
// @Summary Create student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateStudentRequest true "Student"
// @Success 201 {object} model.Student
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /students [post]
func (h *StudentHandler) CreateStudent(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req CreateStudentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	student, err := h.studentService.CreateStudent(c.Request().Context(), p, service.CreateStudentInput{
		Name:     req.Name,
		Grade:    req.Grade,
		School:   req.School,
		Subjects: req.Subjects,
		ParentID: req.ParentID,
	})
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, student)
}

// GetStudent godoc
// @Summary Get student by id
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Success 200 {object} model.Student
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /students/{id} [get]
func (h *StudentHandler) GetStudent(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	student, err := h.studentService.GetStudent(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, student)
}

// UpdateStudent godoc
// @Summary Update student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Param request body UpdateStudentRequest true "Fields to change"
// @Success 200 {object} model.Student
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /students/{id} [patch]
func (h *StudentHandler) UpdateStudent(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req UpdateStudentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	student, err := h.studentService.UpdateStudent(c.Request().Context(), p, c.Param("id"), service.UpdateStudentInput{
		Name:     req.Name,
		Grade:    req.Grade,
		School:   req.School,
		Subjects: req.Subjects,
		ParentID: req.ParentID,
	})
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, student)
}

// DeleteStudent godoc
// @Summary Delete student
// @Description Deletes the student together with all of its sessions.
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Success 200 {object} DeleteStudentResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /students/{id} [delete]
func (h *StudentHandler) DeleteStudent(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	removed, err := h.studentService.DeleteStudent(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, DeleteStudentResponse{
		Message:         "student deleted successfully",
		SessionsDeleted: removed,
	})
}
