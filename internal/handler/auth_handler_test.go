package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tutordesk/internal/auth"
	apperrors "tutordesk/internal/errors"
	"tutordesk/internal/model"
	"tutordesk/internal/service"
	"tutordesk/internal/service/mocks"
)

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMock  func(*mocks.AuthService)
		wantStatus int
		wantCode   string
	}{
		{
			name: "successful login",
			body: `{"email":"teacher@test.com","password":"password123"}`,
			setupMock: func(m *mocks.AuthService) {
				m.On("Login", mock.Anything, "teacher@test.com", "password123").
					Return("access", "refresh", &model.User{ID: teacherID, Role: model.RoleTeacher}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "invalid credentials",
			body: `{"email":"teacher@test.com","password":"nope"}`,
			setupMock: func(m *mocks.AuthService) {
				m.On("Login", mock.Anything, "teacher@test.com", "nope").
					Return("", "", nil, service.ErrInvalidCredentials)
			},
			wantStatus: http.StatusUnauthorized,
			wantCode:   "INVALID_CREDENTIALS",
		},
		{
			name:       "malformed email",
			body:       `{"email":"teacher","password":"x"}`,
			setupMock:  func(m *mocks.AuthService) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.AuthService)
			tt.setupMock(svc)
			h := NewAuthHandler(svc, false)

			c, rec := newContext(newEcho(), http.MethodPost, "/api/auth/login", tt.body, auth.Principal{})
			err := h.Login(c)

			if tt.wantCode != "" {
				var he *echo.HTTPError
				require.ErrorAs(t, err, &he)
				assert.Equal(t, tt.wantStatus, he.Code)
				assert.Equal(t, tt.wantCode, he.Message.(apperrors.ErrorResponse).Code)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, rec.Code)

			var resp map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "access", resp["accessToken"])
			assert.Equal(t, "refresh", resp["refreshToken"])

			cookies := rec.Result().Cookies()
			require.Len(t, cookies, 1)
			assert.Equal(t, auth.AccessTokenCookie, cookies[0].Name)
			assert.Equal(t, "access", cookies[0].Value)
			assert.True(t, cookies[0].HttpOnly)
			svc.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	svc := new(mocks.AuthService)
	svc.On("Logout", mock.Anything, "refresh", (*auth.Claims)(nil)).Return(nil)
	h := NewAuthHandler(svc, false)

	c, rec := newContext(newEcho(), http.MethodPost, "/api/auth/logout", `{"refreshToken":"refresh"}`, auth.Principal{})
	require.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
	svc.AssertExpectations(t)
}

func TestAuthHandler_Session(t *testing.T) {
	h := NewAuthHandler(new(mocks.AuthService), false)

	c, rec := newContext(newEcho(), http.MethodGet, "/api/auth/session", "", auth.Principal{})
	require.NoError(t, h.Session(c))
	assert.JSONEq(t, `{}`, rec.Body.String())

	c, rec = newContext(newEcho(), http.MethodGet, "/api/auth/session", "", teacher)
	require.NoError(t, h.Session(c))
	assert.JSONEq(t, `{"user":{"id":"`+teacherID+`","email":"teacher@test.com","role":"teacher"}}`, rec.Body.String())
}
