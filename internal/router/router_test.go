package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"ritualplanner/internal/auth"
)

func TestJWTConfig_ParsesPlannerClaims(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	token, err := jwtService.GenerateAccessToken(uuid.New(), "pandit1")
	assert.NoError(t, err)

	e := echo.New()
	e.GET("/secured", func(c echo.Context) error {
		parsed, ok := c.Get("user").(*jwt.Token)
		if !ok {
			return echo.NewHTTPError(http.StatusInternalServerError, "token type mismatch")
		}
		claims, ok := parsed.Claims.(*auth.Claims)
		if !ok {
			return echo.NewHTTPError(http.StatusInternalServerError, "claims type mismatch")
		}
		return c.String(http.StatusOK, claims.Username)
	}, echojwt.WithConfig(jwtConfig("test-secret")))

	req := httptest.NewRequest(http.MethodGet, "/secured", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pandit1", rec.Body.String())
}

func TestJWTConfig_RejectsUnsignedRequest(t *testing.T) {
	e := echo.New()
	e.GET("/secured", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, echojwt.WithConfig(jwtConfig("test-secret")))

	req := httptest.NewRequest(http.MethodGet, "/secured", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCustomValidator_PhoneRule(t *testing.T) {
	type form struct {
		Phone string `validate:"required,phone"`
	}
	v := NewCustomValidator()

	tests := []struct {
		phone string
		valid bool
	}{
		{"9876543210", true},
		{"+919876543210", true},
		{"12345", false},
		{"98765abc10", false},
		{"1234567890123456", false},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			err := v.Validate(form{Phone: tt.phone})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestCustomValidator_PasswordRule(t *testing.T) {
	type form struct {
		Password string `validate:"required,password"`
	}
	v := NewCustomValidator()

	assert.NoError(t, v.Validate(form{Password: "Str0ng@Pass"}))
	assert.Error(t, v.Validate(form{Password: "weak"}))
	assert.Error(t, v.Validate(form{Password: "nouppercase1!"}))
}
