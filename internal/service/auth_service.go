package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ritualplanner/internal/auth"
	apperrors "ritualplanner/internal/errors"
	"ritualplanner/internal/mail"
	"ritualplanner/internal/model"
	"ritualplanner/internal/repository"
)

const bcryptCost = 10

var (
	// ErrInvalidCredentials is returned when the login lookup or password fails.
	ErrInvalidCredentials = errors.New("invalid credentials or password")
	// ErrEmailTaken is returned when the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrUsernameTaken is returned when the username is already registered.
	ErrUsernameTaken = errors.New("username already registered")
	// ErrPhoneTaken is returned when the phone number is already registered.
	ErrPhoneTaken = errors.New("phone number already registered")
	// ErrInvalidRefreshToken is returned when refresh token is invalid or expired.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	// ErrWeakPassword is returned when a password fails the complexity rules.
	ErrWeakPassword = errors.New("password must be 8-16 characters with upper, lower, digit and special characters")
)

// RegisterInput carries the fields of a signup request.
type RegisterInput struct {
	Username string
	Name     string
	Email    string
	Phone    string
	Password string
	State    string
	Country  string
}

// TokenPair is an issued access/refresh token pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService handles registration, login, token lifecycle and password
// recovery.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, *TokenPair, error)
	Login(ctx context.Context, credentials, password string) (*model.User, *TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken string) error
	Verify(ctx context.Context, token string) (*auth.Claims, error)
	RequestPasswordRecovery(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, otp, newPassword string) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
	otpStore   auth.OTPStoreInterface
	mailer     mail.Sender
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	otpStore auth.OTPStoreInterface,
	mailer mail.Sender,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
		otpStore:   otpStore,
		mailer:     mailer,
	}
}

// Register creates a new user with a hashed password. Email, username and
// phone are each checked for uniqueness with a field-specific error.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, *TokenPair, error) {
	if !PasswordMeetsPolicy(in.Password) {
		return nil, nil, ErrWeakPassword
	}

	checks := []struct {
		find func() (*model.User, error)
		err  error
	}{
		{func() (*model.User, error) { return s.userRepo.FindByEmail(ctx, in.Email) }, ErrEmailTaken},
		{func() (*model.User, error) { return s.userRepo.FindByUsername(ctx, in.Username) }, ErrUsernameTaken},
		{func() (*model.User, error) { return s.userRepo.FindByPhone(ctx, in.Phone) }, ErrPhoneTaken},
	}
	for _, check := range checks {
		existing, err := check.find()
		if err == nil && existing != nil {
			return nil, nil, check.err
		}
		if err != nil && err != gorm.ErrRecordNotFound {
			return nil, nil, fmt.Errorf("check user existence: %w", err)
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     in.Username,
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		State:        in.State,
		Country:      in.Country,
		PasswordHash: string(hashedPassword),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, nil, fmt.Errorf("create user: %w", err)
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Login authenticates a user by email, phone or username. The credential is
// routed by shape: contains '@' → email, all digits → phone, else username.
func (s *authService) Login(ctx context.Context, credentials, password string) (*model.User, *TokenPair, error) {
	var user *model.User
	var err error
	switch {
	case strings.Contains(credentials, "@"):
		user, err = s.userRepo.FindByEmail(ctx, credentials)
	case isAllDigits(credentials):
		user, err = s.userRepo.FindByPhone(ctx, credentials)
	default:
		user, err = s.userRepo.FindByUsername(ctx, credentials)
	}
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

func (s *authService) issueTokens(ctx context.Context, user *model.User) (*TokenPair, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, user.ID, user.Username, auth.RefreshTokenExpiry); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// RefreshToken validates a refresh token and returns a new access token.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	storedUserID, storedUsername, err := s.tokenStore.GetRefreshToken(ctx, tokenID)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}
	if storedUserID != claims.UserID || storedUsername != claims.Username {
		return "", ErrInvalidRefreshToken
	}

	accessToken, err := s.jwtService.GenerateAccessToken(claims.UserID, claims.Username)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

// Logout invalidates a refresh token.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return ErrInvalidRefreshToken
	}
	return s.tokenStore.DeleteRefreshToken(ctx, tokenID)
}

// Verify decodes a token and returns its claims.
func (s *authService) Verify(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	return claims, nil
}

// RequestPasswordRecovery issues an OTP for the email and mails it. Repeated
// requests re-issue the code, which serves as resend.
func (s *authService) RequestPasswordRecovery(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	code, err := s.otpStore.Issue(ctx, user.Email)
	if err != nil {
		return fmt.Errorf("issue otp: %w", err)
	}

	body := fmt.Sprintf("Hello %s,\n\nYour RitualPlanner password recovery code is %s.\nIt expires in %d minutes.\n", user.Name, code, int(auth.OTPExpiry.Minutes()))
	if err := s.mailer.Send(ctx, user.Email, "RitualPlanner password recovery", body); err != nil {
		return fmt.Errorf("send otp mail: %w", err)
	}
	return nil
}

// ResetPassword verifies the OTP and stores a new password hash.
func (s *authService) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	if !PasswordMeetsPolicy(newPassword) {
		return ErrWeakPassword
	}

	ok, err := s.otpStore.Verify(ctx, email, otp)
	if err != nil {
		return fmt.Errorf("verify otp: %w", err)
	}
	if !ok {
		return apperrors.ErrInvalidOTP
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hashedPassword)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	return s.otpStore.Delete(ctx, email)
}

// PasswordMeetsPolicy reports whether the password is 8-16 characters long
// and contains an upper-case letter, a lower-case letter, a digit and a
// special character.
func PasswordMeetsPolicy(password string) bool {
	runes := []rune(password)
	if len(runes) < 8 || len(runes) > 16 {
		return false
	}
	var upper, lower, digit, special bool
	for _, r := range runes {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}
	return upper && lower && digit && special
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
