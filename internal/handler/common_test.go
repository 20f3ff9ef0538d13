package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"ritualplanner/internal/auth"
)

func contextWithToken(token interface{}) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	if token != nil {
		c.Set("user", token)
	}
	return c
}

func TestUserIDFromContext(t *testing.T) {
	userID := uuid.New()

	t.Run("reads the user id from planner claims", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.Claims{
			UserID:   userID,
			Username: "pandit1",
		})

		got, err := userIDFromContext(contextWithToken(token))

		assert.NoError(t, err)
		assert.Equal(t, userID, got)
	})

	t.Run("missing token", func(t *testing.T) {
		_, err := userIDFromContext(contextWithToken(nil))
		assert.Error(t, err)
	})

	t.Run("foreign claims type", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": userID.String()})

		_, err := userIDFromContext(contextWithToken(token))
		assert.Error(t, err)
	})

	t.Run("nil user id in claims", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.Claims{Username: "pandit1"})

		_, err := userIDFromContext(contextWithToken(token))
		assert.Error(t, err)
	})
}
