package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ritualplanner/internal/errors"
	"ritualplanner/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a signup request.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,phone"`
	Password string `json:"password" validate:"required,password"`
	State    string `json:"state"`
	Country  string `json:"country"`
}

// LoginRequest represents a login request. Credentials may be an email, a
// phone number or a username.
type LoginRequest struct {
	Credentials string `json:"credentials" validate:"required"`
	Password    string `json:"password" validate:"required"`
}

// RefreshRequest represents a token refresh request.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutRequest represents a logout request.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// VerifyRequest represents a token verification request.
type VerifyRequest struct {
	Token string `json:"token" validate:"required"`
}

// RecoverRequest asks for a password-recovery code.
type RecoverRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest completes password recovery.
type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	OTP         string `json:"otp" validate:"required,len=6,numeric"`
	NewPassword string `json:"new_password" validate:"required,password"`
}

// AuthResponse represents an authentication response.
type AuthResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token,omitempty"`
	User         interface{} `json:"user,omitempty"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, pair, err := h.authService.Register(c.Request().Context(), service.RegisterInput{
		Username: req.Username,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		State:    req.State,
		Country:  req.Country,
	})
	if err != nil {
		switch err {
		case service.ErrEmailTaken:
			return echo.NewHTTPError(http.StatusConflict, errors.ErrorResponse{Error: err.Error(), Code: "DUPLICATE_EMAIL"})
		case service.ErrUsernameTaken:
			return echo.NewHTTPError(http.StatusConflict, errors.ErrorResponse{Error: err.Error(), Code: "DUPLICATE_USERNAME"})
		case service.ErrPhoneTaken:
			return echo.NewHTTPError(http.StatusConflict, errors.ErrorResponse{Error: err.Error(), Code: "DUPLICATE_PHONE"})
		case service.ErrWeakPassword:
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Error: err.Error(), Code: "VALIDATION_ERROR"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{Error: "failed to register user", Code: "REGISTRATION_FAILED"})
	}

	return c.JSON(http.StatusCreated, AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         user,
	})
}

// Login godoc
// @Summary Login with email, phone or username
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, pair, err := h.authService.Login(c.Request().Context(), req.Credentials, req.Password)
	if err != nil {
		if err == service.ErrInvalidCredentials {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{Error: err.Error(), Code: "INVALID_CREDENTIALS"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{Error: "failed to login", Code: "LOGIN_FAILED"})
	}

	return c.JSON(http.StatusOK, AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         user,
	})
}

// Refresh godoc
// @Summary Refresh access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	accessToken, err := h.authService.RefreshToken(c.Request().Context(), req.RefreshToken)
	if err != nil {
		if err == service.ErrInvalidRefreshToken {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{Error: err.Error(), Code: "INVALID_REFRESH_TOKEN"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{Error: "failed to refresh token", Code: "REFRESH_FAILED"})
	}

	return c.JSON(http.StatusOK, AuthResponse{AccessToken: accessToken})
}

// Logout godoc
// @Summary Logout user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LogoutRequest true "Refresh token"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	var req LogoutRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.authService.Logout(c.Request().Context(), req.RefreshToken); err != nil {
		if err == service.ErrInvalidRefreshToken {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{Error: err.Error(), Code: "INVALID_REFRESH_TOKEN"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{Error: "failed to logout", Code: "LOGOUT_FAILED"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "logged out successfully"})
}

// Verify godoc
// @Summary Verify a token and return its claims
// @Tags auth
// @Accept json
// @Produce json
// @Param request body VerifyRequest true "Token"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/verify [post]
func (h *AuthHandler) Verify(c echo.Context) error {
	var req VerifyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	claims, err := h.authService.Verify(c.Request().Context(), req.Token)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{Error: "invalid token", Code: "INVALID_TOKEN"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"user_id":  claims.UserID,
		"username": claims.Username,
		"expires":  claims.ExpiresAt,
	})
}

// RecoverPassword godoc
// @Summary Request a password-recovery code by email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RecoverRequest true "Account email"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /auth/recover/request [post]
func (h *AuthHandler) RecoverPassword(c echo.Context) error {
	var req RecoverRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.authService.RequestPasswordRecovery(c.Request().Context(), req.Email); err != nil {
		if err == errors.ErrUserNotFound {
			return serviceError(err)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{Error: "failed to send recovery code", Code: "RECOVERY_FAILED"})
	}

	return c.JSON(http.StatusOK, map[string]string{"success": "recovery code sent"})
}

// ResetPassword godoc
// @Summary Reset password with a recovery code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "Email, OTP and new password"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /auth/recover/reset [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.authService.ResetPassword(c.Request().Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		switch err {
		case errors.ErrInvalidOTP, errors.ErrUserNotFound:
			return serviceError(err)
		case service.ErrWeakPassword:
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Error: err.Error(), Code: "VALIDATION_ERROR"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{Error: "failed to reset password", Code: "RECOVERY_FAILED"})
	}

	return c.JSON(http.StatusOK, map[string]string{"success": "password updated"})
}
