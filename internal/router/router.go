package router

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"tutordesk/internal/auth"
	"tutordesk/internal/config"
	apperrors "tutordesk/internal/errors"
	"tutordesk/internal/handler"
	"tutordesk/internal/logger"
	"tutordesk/internal/metrics"
	"tutordesk/internal/model"
	"tutordesk/internal/web"
)

// Handlers groups the HTTP handlers mounted by Register.
type Handlers struct {
	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Parent  *handler.ParentHandler
	Student *handler.StudentHandler
	Session *handler.SessionHandler
	Web     *web.Handler
}

// Deps are the cross-cutting components the routes rely on.
type Deps struct {
	Log        zerolog.Logger
	Reporter   *logger.Reporter
	Metrics    *metrics.Metrics
	JWT        *auth.JWTService
	TokenStore auth.TokenStoreInterface
	// Ready reports whether backing stores are reachable, for /healthz.
	Ready func(c echo.Context) error
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, deps Deps, h Handlers) {
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log, deps.Reporter)
	e.Validator = NewValidator()

	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(logger.RequestLogger(deps.Log))
	if deps.Metrics != nil {
		e.Use(deps.Metrics.Middleware())
		e.GET("/metrics", echo.WrapHandler(deps.Metrics.Handler()))
	}

	e.GET("/healthz", func(c echo.Context) error {
		if deps.Ready != nil {
			if err := deps.Ready(c); err != nil {
				deps.Log.Warn().Err(err).Msg("health check failed")
				return c.String(http.StatusServiceUnavailable, "unavailable")
			}
		}
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	loginLimit := LoginRateLimiter(cfg.LoginRatePerMinute)
	requireAuth := auth.RequireAuth(deps.JWT, deps.TokenStore)
	optionalAuth := auth.OptionalAuth(deps.JWT, deps.TokenStore)
	teacherOnly := auth.RequireRole(model.RoleTeacher)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/login", h.Auth.Login, loginLimit)
	api.POST("/auth/refresh", h.Auth.Refresh)
	api.POST("/auth/logout", h.Auth.Logout, optionalAuth)
	api.GET("/auth/session", h.Auth.Session, optionalAuth)

	// Secured routes (require JWT authentication)
	secured := api.Group("", requireAuth)

	secured.GET("/me", h.User.Me)

	// Parent routes
	secured.GET("/parents", h.Parent.ListParents, auth.RequireRole(model.RoleTeacher, model.RoleAdmin))
	secured.POST("/parents", h.Parent.CreateParent, teacherOnly)
	secured.GET("/parents/:id", h.Parent.GetParent)
	secured.PATCH("/parents/:id", h.Parent.UpdateParent, teacherOnly)
	secured.DELETE("/parents/:id", h.Parent.DeleteParent, teacherOnly)

	// Student routes
	secured.GET("/students", h.Student.ListStudents)
	secured.POST("/students", h.Student.CreateStudent, teacherOnly)
	secured.GET("/students/:id", h.Student.GetStudent)
	secured.PATCH("/students/:id", h.Student.UpdateStudent, teacherOnly)
	secured.DELETE("/students/:id", h.Student.DeleteStudent, teacherOnly)

	// Session routes
	secured.GET("/sessions", h.Session.ListSessions)
	secured.POST("/sessions", h.Session.CreateSession, teacherOnly)
	secured.PATCH("/sessions", h.Session.UpdateSession, teacherOnly)
	secured.PATCH("/sessions/:id", h.Session.UpdateSession, teacherOnly)
	secured.DELETE("/sessions", h.Session.DeleteSession, teacherOnly)
	secured.DELETE("/sessions/:id", h.Session.DeleteSession, teacherOnly)

	if h.Web != nil {
		h.Web.Register(e, loginLimit)
	}
}

// LoginRateLimiter limits login attempts per client IP to perMinute, with a
// burst of the same size.
func LoginRateLimiter(perMinute int) echo.MiddlewareFunc {
	if perMinute <= 0 {
		perMinute = 10
	}
	tooMany := func(c echo.Context, _ string, _ error) error {
		return echo.NewHTTPError(http.StatusTooManyRequests, apperrors.ErrorResponse{
			Error: "too many login attempts, try again later",
			Code:  "RATE_LIMITED",
		})
	}
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(float64(perMinute) / 60),
				Burst:     perMinute,
				ExpiresIn: 3 * time.Minute,
			}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return tooMany(c, "", err)
		},
		DenyHandler: tooMany,
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator returns the request validator used by Echo.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
