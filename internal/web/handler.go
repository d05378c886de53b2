// Package web serves the server-rendered dashboards for teachers, parents
// and admins. Pages call the same services as the JSON API.
package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"tutordesk/internal/auth"
	apperrors "tutordesk/internal/errors"
	"tutordesk/internal/model"
	"tutordesk/internal/service"
)

// Handler serves the web pages.
type Handler struct {
	store    sessions.Store
	auth     service.AuthService
	parents  service.ParentService
	students service.StudentService
	sessions service.SessionService
	log      zerolog.Logger
}

// NewHandler creates the web handler.
func NewHandler(
	store sessions.Store,
	authService service.AuthService,
	parentService service.ParentService,
	studentService service.StudentService,
	sessionService service.SessionService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		store:    store,
		auth:     authService,
		parents:  parentService,
		students: studentService,
		sessions: sessionService,
		log:      log,
	}
}

// Register mounts the pages on e. loginLimit guards the login form.
func (h *Handler) Register(e *echo.Echo, loginLimit echo.MiddlewareFunc) {
	e.GET("/", h.Home, h.LoadPrincipal)
	e.GET("/login", h.LoginPage, h.LoadPrincipal)
	e.POST("/login", h.Login, loginLimit)
	e.POST("/logout", h.Logout)

	teacher := e.Group("/teacher", h.LoadPrincipal, requireRole(model.RoleTeacher))
	teacher.GET("", h.TeacherDashboard)
	teacher.POST("/parents", h.CreateParent)
	teacher.GET("/parents/:id", h.TeacherParent)
	teacher.POST("/parents/:id", h.UpdateParent)
	teacher.POST("/parents/:id/delete", h.DeleteParent)
	teacher.POST("/students", h.CreateStudent)
	teacher.GET("/students/:id", h.TeacherStudent)
	teacher.POST("/students/:id", h.UpdateStudent)
	teacher.POST("/students/:id/delete", h.DeleteStudent)
	teacher.POST("/students/:id/sessions", h.CreateSession)
	teacher.POST("/sessions/:id", h.UpdateSession)
	teacher.POST("/sessions/:id/delete", h.DeleteSession)

	parent := e.Group("/parent", h.LoadPrincipal, requireRole(model.RoleParent))
	parent.GET("", h.ParentDashboard)
	parent.GET("/students/:id", h.ParentStudent)

	admin := e.Group("/admin", h.LoadPrincipal, requireRole(model.RoleAdmin))
	admin.GET("", h.AdminDashboard)
}

// pageData is the view model shared by every template.
type pageData struct {
	Title    string
	User     *auth.Principal
	Alerts   []string
	Notices  []string
	Email    string
	Parent   *model.User
	Parents  []model.User
	Student  *model.Student
	Students []model.Student
	Sessions []model.Session
}

func (h *Handler) render(c echo.Context, name string, data pageData) error {
	if p, ok := auth.PrincipalFrom(c.Request().Context()); ok {
		data.User = &p
	}
	data.Alerts, data.Notices = h.flashes(c)
	return c.Render(http.StatusOK, name, data)
}

// fail flashes a user-facing message for err and redirects to target.
func (h *Handler) fail(c echo.Context, err error, target string) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	if httpErr.StatusCode >= http.StatusInternalServerError {
		h.log.Error().Err(err).Str("path", c.Path()).Msg("web request failed")
	}
	h.flash(c, alertKey, httpErr.Message)
	return c.Redirect(http.StatusSeeOther, target)
}

func (h *Handler) done(c echo.Context, msg, target string) error {
	h.flash(c, noticeKey, msg)
	return c.Redirect(http.StatusSeeOther, target)
}

// Home sends visitors to the dashboard of their role.
func (h *Handler) Home(c echo.Context) error {
	p, ok := auth.PrincipalFrom(c.Request().Context())
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	return c.Redirect(http.StatusSeeOther, homeFor(p.Role))
}

// LoginPage renders the sign-in form.
func (h *Handler) LoginPage(c echo.Context) error {
	if p, ok := auth.PrincipalFrom(c.Request().Context()); ok {
		return c.Redirect(http.StatusSeeOther, homeFor(p.Role))
	}
	return h.render(c, "login.html", pageData{Title: "Sign in"})
}

// Login checks the credentials and starts a cookie session.
func (h *Handler) Login(c echo.Context) error {
	email := strings.TrimSpace(c.FormValue("email"))
	user, err := h.auth.Authenticate(c.Request().Context(), email, c.FormValue("password"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.flash(c, alertKey, "Invalid email or password")
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return h.fail(c, err, "/login")
	}

	h.login(c, user)
	h.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("web login")
	return c.Redirect(http.StatusSeeOther, homeFor(user.Role))
}

// Logout ends the cookie session.
func (h *Handler) Logout(c echo.Context) error {
	h.logout(c)
	return c.Redirect(http.StatusSeeOther, "/login")
}

// AdminDashboard lists parents read-only.
func (h *Handler) AdminDashboard(c echo.Context) error {
	p, _ := auth.PrincipalFrom(c.Request().Context())
	parents, err := h.parents.ListParents(c.Request().Context(), p)
	if err != nil {
		return h.fail(c, err, "/login")
	}
	return h.render(c, "admin.html", pageData{Title: "Admin", Parents: parents})
}

func splitSubjects(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, ",")
}
