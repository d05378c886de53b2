package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tutordesk/internal/service"
)

// SessionHandler handles tutoring session endpoints.
type SessionHandler struct {
	sessionService service.SessionService
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// CreateSessionRequest logs a tutoring session. Date accepts RFC3339 or
// YYYY-MM-DD and defaults to now.
type CreateSessionRequest struct {
	StudentID    string `json:"studentId"`
	SessionNotes string `json:"sessionNotes"`
	ParentNotes  string `json:"parentNotes"`
	Homework     string `json:"homework"`
	Date         string `json:"date"`
}

// UpdateSessionRequest edits a session. SessionID is only read when the
// path carries no id.
type UpdateSessionRequest struct {
	SessionID    string  `json:"sessionId"`
	SessionNotes string  `json:"sessionNotes"`
	ParentNotes  *string `json:"parentNotes"`
	Homework     *string `json:"homework"`
	Date         string  `json:"date"`
}

// DeleteSessionRequest carries the session id for DELETE /sessions.
type DeleteSessionRequest struct {
	SessionID string `json:"sessionId"`
}

// ListSessions godoc
// @Summary List sessions of a student
// @Description Teachers see their own sessions, parents those of their linked children.
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param studentId query string true "Student ID"
// @Success 200 {array} model.Session
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /sessions [get]
func (h *SessionHandler) ListSessions(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	sessions, err := h.sessionService.ListSessions(c.Request().Context(), p, c.QueryParam("studentId"))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, sessions)
}

// CreateSession godoc
// @Summary Create session
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateSessionRequest true "Session"
// @Success 201 {object} model.Session
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /sessions [post]
func (h *SessionHandler) CreateSession(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req CreateSessionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	session, err := h.sessionService.CreateSession(c.Request().Context(), p, service.CreateSessionInput{
		StudentID:    req.StudentID,
		SessionNotes: req.SessionNotes,
		ParentNotes:  req.ParentNotes,
		Homework:     req.Homework,
		Date:         req.Date,
	})
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, session)
}

// UpdateSession godoc
// @Summary Update session
// @Description The session id comes from the path or, on /sessions, from the body.
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string false "Session ID"
// @Param request body UpdateSessionRequest true "Session fields"
// @Success 200 {object} model.Session
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /sessions/{id} [patch]
// @Router /sessions [patch]
func (h *SessionHandler) UpdateSession(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req UpdateSessionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	session, err := h.sessionService.UpdateSession(c.Request().Context(), p, sessionID(c, req.SessionID), service.UpdateSessionInput{
		SessionNotes: req.SessionNotes,
		ParentNotes:  req.ParentNotes,
		Homework:     req.Homework,
		Date:         req.Date,
	})
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, session)
}

// DeleteSession godoc
// @Summary Delete session
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path string false "Session ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /sessions/{id} [delete]
// @Router /sessions [delete]
func (h *SessionHandler) DeleteSession(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req DeleteSessionRequest
	if c.Param("id") == "" {
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}
	}

	if err := h.sessionService.DeleteSession(c.Request().Context(), p, sessionID(c, req.SessionID)); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "session deleted successfully"})
}

func sessionID(c echo.Context, fromBody string) string {
	if id := c.Param("id"); id != "" {
		return id
	}
	return fromBody
}
