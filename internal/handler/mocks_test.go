package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"tutordesk/internal/auth"
	"tutordesk/internal/model"
)

type testValidator struct {
	v *validator.Validate
}

func (tv *testValidator) Validate(i interface{}) error {
	return tv.v.Struct(i)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{v: validator.New()}
	return e
}

// newContext builds an echo context for method/target with an optional JSON
// body. A non-empty principal is attached to the request context.
func newContext(e *echo.Echo, method, target, body string, p auth.Principal) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if p.ID != "" {
		req = req.WithContext(auth.WithPrincipal(req.Context(), p))
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

const (
	teacherID     = "697ebfb72198a4184c5be1c7"
	parentID      = "697ebfb72198a4184c5be1c6"
	studentID     = "697ebfb72198a4184c5be1d0"
	testSessionID = "697ebfb72198a4184c5be1e0"
)

var (
	teacher = auth.Principal{ID: teacherID, Email: "teacher@test.com", Role: model.RoleTeacher}
	parent  = auth.Principal{ID: parentID, Email: "parent@test.com", Role: model.RoleParent}
)
