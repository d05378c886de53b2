package web

import (
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"

	"tutordesk/internal/auth"
	"tutordesk/internal/model"
)

const (
	cookieName = "tutordesk_session"
	maxAge     = 7 * 24 * 60 * 60

	alertKey  = "alert"
	noticeKey = "notice"
)

// NewCookieStore returns the signed cookie store backing web logins.
func NewCookieStore(secret string, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

func (h *Handler) session(c echo.Context) *sessions.Session {
	// A cookie that no longer decodes yields a fresh session.
	sess, _ := h.store.Get(c.Request(), cookieName)
	return sess
}

func (h *Handler) save(c echo.Context, sess *sessions.Session) {
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		h.log.Error().Err(err).Msg("save web session")
	}
}

func (h *Handler) login(c echo.Context, user *model.User) {
	sess := h.session(c)
	sess.Values["user_id"] = user.ID
	sess.Values["email"] = user.Email
	sess.Values["role"] = string(user.Role)
	h.save(c, sess)
}

func (h *Handler) logout(c echo.Context) {
	sess := h.session(c)
	delete(sess.Values, "user_id")
	delete(sess.Values, "email")
	delete(sess.Values, "role")
	h.save(c, sess)
}

func principalFromSession(sess *sessions.Session) (auth.Principal, bool) {
	id, _ := sess.Values["user_id"].(string)
	email, _ := sess.Values["email"].(string)
	role, _ := sess.Values["role"].(string)
	p := auth.Principal{ID: id, Email: email, Role: model.Role(role)}
	if p.ID == "" || !p.Role.Valid() {
		return auth.Principal{}, false
	}
	return p, true
}

func (h *Handler) flash(c echo.Context, key, msg string) {
	sess := h.session(c)
	sess.AddFlash(msg, key)
	h.save(c, sess)
}

// flashes pops the pending alerts and notices.
func (h *Handler) flashes(c echo.Context) (alerts, notices []string) {
	sess := h.session(c)
	for _, f := range sess.Flashes(alertKey) {
		if s, ok := f.(string); ok {
			alerts = append(alerts, s)
		}
	}
	for _, f := range sess.Flashes(noticeKey) {
		if s, ok := f.(string); ok {
			notices = append(notices, s)
		}
	}
	if len(alerts) > 0 || len(notices) > 0 {
		h.save(c, sess)
	}
	return alerts, notices
}

// LoadPrincipal puts the logged-in web user into the request context.
func (h *Handler) LoadPrincipal(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if p, ok := principalFromSession(h.session(c)); ok {
			c.SetRequest(c.Request().WithContext(auth.WithPrincipal(c.Request().Context(), p)))
		}
		return next(c)
	}
}

// requireRole redirects anonymous visitors to the login page and other
// roles to their own home.
func requireRole(role model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := auth.PrincipalFrom(c.Request().Context())
			if !ok {
				return c.Redirect(http.StatusSeeOther, "/login")
			}
			if p.Role != role {
				return c.Redirect(http.StatusSeeOther, homeFor(p.Role))
			}
			return next(c)
		}
	}
}

func homeFor(role model.Role) string {
	switch role {
	case model.RoleTeacher:
		return "/teacher"
	case model.RoleParent:
		return "/parent"
	case model.RoleAdmin:
		return "/admin"
	}
	return "/login"
}
