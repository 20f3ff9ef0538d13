package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ritualplanner/internal/auth"
	apperrors "ritualplanner/internal/errors"
	"ritualplanner/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByPhone(ctx context.Context, phone string) (*model.User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uuid.UUID, username string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, username, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uuid.UUID, string, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(uuid.UUID), args.String(1), args.Error(2)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

// MockOTPStore is a mock implementation of OTPStoreInterface.
type MockOTPStore struct {
	mock.Mock
}

func (m *MockOTPStore) Issue(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

func (m *MockOTPStore) Verify(ctx context.Context, email, code string) (bool, error) {
	args := m.Called(ctx, email, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockOTPStore) Delete(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

// MockMailSender is a mock implementation of mail.Sender.
type MockMailSender struct {
	mock.Mock
}

func (m *MockMailSender) Send(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

func newAuthServiceForTest(repo *MockUserRepository, tokens *MockTokenStore, otps *MockOTPStore, mailer *MockMailSender) AuthService {
	return NewAuthService(repo, auth.NewJWTService("test-secret"), tokens, otps, mailer)
}

func TestAuthService_Register(t *testing.T) {
	input := RegisterInput{
		Username: "pandit1",
		Name:     "Pandit One",
		Email:    "pandit@example.com",
		Phone:    "9876543210",
		Password: "Str0ng@Pass",
	}

	tests := []struct {
		name          string
		input         RegisterInput
		setupMock     func(*MockUserRepository, *MockTokenStore)
		expectedError error
	}{
		{
			name:  "successful registration",
			input: input,
			setupMock: func(m *MockUserRepository, mToken *MockTokenStore) {
				m.On("FindByEmail", mock.Anything, input.Email).Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByUsername", mock.Anything, input.Username).Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByPhone", mock.Anything, input.Phone).Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.Anything, mock.Anything, input.Username, mock.Anything).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:  "email already registered",
			input: input,
			setupMock: func(m *MockUserRepository, mToken *MockTokenStore) {
				m.On("FindByEmail", mock.Anything, input.Email).Return(&model.User{Email: input.Email}, nil)
			},
			expectedError: ErrEmailTaken,
		},
		{
			name:  "username already registered",
			input: input,
			setupMock: func(m *MockUserRepository, mToken *MockTokenStore) {
				m.On("FindByEmail", mock.Anything, input.Email).Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByUsername", mock.Anything, input.Username).Return(&model.User{Username: input.Username}, nil)
			},
			expectedError: ErrUsernameTaken,
		},
		{
			name:  "phone already registered",
			input: input,
			setupMock: func(m *MockUserRepository, mToken *MockTokenStore) {
				m.On("FindByEmail", mock.Anything, input.Email).Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByUsername", mock.Anything, input.Username).Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByPhone", mock.Anything, input.Phone).Return(&model.User{Phone: input.Phone}, nil)
			},
			expectedError: ErrPhoneTaken,
		},
		{
			name: "weak password rejected before any lookup",
			input: RegisterInput{
				Username: "pandit1",
				Name:     "Pandit One",
				Email:    "pandit@example.com",
				Phone:    "9876543210",
				Password: "abc",
			},
			setupMock:     func(m *MockUserRepository, mToken *MockTokenStore) {},
			expectedError: ErrWeakPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockTokenStore := new(MockTokenStore)
			tt.setupMock(mockRepo, mockTokenStore)

			service := newAuthServiceForTest(mockRepo, mockTokenStore, new(MockOTPStore), new(MockMailSender))
			user, pair, err := service.Register(context.Background(), tt.input)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
				assert.Nil(t, pair)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.input.Email, user.Email)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NotEqual(t, tt.input.Password, user.PasswordHash)
				assert.NotEmpty(t, pair.AccessToken)
				assert.NotEmpty(t, pair.RefreshToken)
			}

			mockRepo.AssertExpectations(t)
			mockTokenStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login_CredentialRouting(t *testing.T) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("Str0ng@Pass"), 10)
	user := &model.User{
		ID:           uuid.New(),
		Username:     "pandit1",
		Email:        "pandit@example.com",
		Phone:        "9876543210",
		PasswordHash: string(hashedPassword),
	}

	tests := []struct {
		name          string
		credentials   string
		password      string
		setupMock     func(*MockUserRepository, *MockTokenStore)
		expectedError error
	}{
		{
			name:        "email credential routes to email lookup",
			credentials: "pandit@example.com",
			password:    "Str0ng@Pass",
			setupMock: func(m *MockUserRepository, mToken *MockTokenStore) {
				m.On("FindByEmail", mock.Anything, "pandit@example.com").Return(user, nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.Anything, user.ID, user.Username, mock.Anything).Return(nil)
			},
		},
		{
			name:        "digit credential routes to phone lookup",
			credentials: "9876543210",
			password:    "Str0ng@Pass",
			setupMock: func(m *MockUserRepository, mToken *MockTokenStore) {
				m.On("FindByPhone", mock.Anything, "9876543210").Return(user, nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.Anything, user.ID, user.Username, mock.Anything).Return(nil)
			},
		},
		{
			name:        "other credential routes to username lookup",
			credentials: "pandit1",
			password:    "Str0ng@Pass",
			setupMock: func(m *MockUserRepository, mToken *MockTokenStore) {
				m.On("FindByUsername", mock.Anything, "pandit1").Return(user, nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.Anything, user.ID, user.Username, mock.Anything).Return(nil)
			},
		},
		{
			name:        "unknown user",
			credentials: "nobody@example.com",
			password:    "Str0ng@Pass",
			setupMock: func(m *MockUserRepository, mToken *MockTokenStore) {
				m.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:        "wrong password",
			credentials: "pandit@example.com",
			password:    "Wr0ng@Pass1",
			setupMock: func(m *MockUserRepository, mToken *MockTokenStore) {
				m.On("FindByEmail", mock.Anything, "pandit@example.com").Return(user, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockTokenStore := new(MockTokenStore)
			tt.setupMock(mockRepo, mockTokenStore)

			service := newAuthServiceForTest(mockRepo, mockTokenStore, new(MockOTPStore), new(MockMailSender))
			got, pair, err := service.Login(context.Background(), tt.credentials, tt.password)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, got)
				assert.Nil(t, pair)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, user.ID, got.ID)
				assert.NotEmpty(t, pair.AccessToken)
				assert.NotEmpty(t, pair.RefreshToken)
			}

			mockRepo.AssertExpectations(t)
			mockTokenStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_RequestPasswordRecovery(t *testing.T) {
	user := &model.User{
		ID:    uuid.New(),
		Name:  "Pandit One",
		Email: "pandit@example.com",
	}

	t.Run("issues otp and mails it", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockOTP := new(MockOTPStore)
		mockMail := new(MockMailSender)
		mockRepo.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)
		mockOTP.On("Issue", mock.Anything, user.Email).Return("123456", nil)
		mockMail.On("Send", mock.Anything, user.Email, mock.Anything, mock.MatchedBy(func(body string) bool {
			return strings.Contains(body, "123456")
		})).Return(nil)

		service := newAuthServiceForTest(mockRepo, new(MockTokenStore), mockOTP, mockMail)
		err := service.RequestPasswordRecovery(context.Background(), user.Email)

		assert.NoError(t, err)
		mockOTP.AssertExpectations(t)
		mockMail.AssertExpectations(t)
	})

	t.Run("unknown email", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

		service := newAuthServiceForTest(mockRepo, new(MockTokenStore), new(MockOTPStore), new(MockMailSender))
		err := service.RequestPasswordRecovery(context.Background(), "ghost@example.com")

		assert.Equal(t, apperrors.ErrUserNotFound, err)
	})
}

func TestAuthService_ResetPassword(t *testing.T) {
	user := &model.User{
		ID:           uuid.New(),
		Email:        "pandit@example.com",
		PasswordHash: "old-hash",
	}

	t.Run("valid otp replaces the hash", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockOTP := new(MockOTPStore)
		mockOTP.On("Verify", mock.Anything, user.Email, "123456").Return(true, nil)
		mockRepo.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
		mockOTP.On("Delete", mock.Anything, user.Email).Return(nil)

		service := newAuthServiceForTest(mockRepo, new(MockTokenStore), mockOTP, new(MockMailSender))
		err := service.ResetPassword(context.Background(), user.Email, "123456", "N3w@Passw0rd")

		assert.NoError(t, err)
		assert.NotEqual(t, "old-hash", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("N3w@Passw0rd")))
		mockRepo.AssertExpectations(t)
		mockOTP.AssertExpectations(t)
	})

	t.Run("invalid otp", func(t *testing.T) {
		mockOTP := new(MockOTPStore)
		mockOTP.On("Verify", mock.Anything, "pandit@example.com", "000000").Return(false, nil)

		service := newAuthServiceForTest(new(MockUserRepository), new(MockTokenStore), mockOTP, new(MockMailSender))
		err := service.ResetPassword(context.Background(), "pandit@example.com", "000000", "N3w@Passw0rd")

		assert.Equal(t, apperrors.ErrInvalidOTP, err)
	})

	t.Run("weak replacement password", func(t *testing.T) {
		service := newAuthServiceForTest(new(MockUserRepository), new(MockTokenStore), new(MockOTPStore), new(MockMailSender))
		err := service.ResetPassword(context.Background(), "pandit@example.com", "123456", "short")

		assert.Equal(t, ErrWeakPassword, err)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	userID := uuid.New()
	jwtService := auth.NewJWTService("test-secret")
	tokenID, refreshToken, err := jwtService.GenerateRefreshToken(userID, "pandit1")
	assert.NoError(t, err)

	t.Run("valid refresh token", func(t *testing.T) {
		mockTokenStore := new(MockTokenStore)
		mockTokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return(userID, "pandit1", nil)

		service := NewAuthService(new(MockUserRepository), jwtService, mockTokenStore, new(MockOTPStore), new(MockMailSender))
		accessToken, err := service.RefreshToken(context.Background(), refreshToken)

		assert.NoError(t, err)
		assert.NotEmpty(t, accessToken)
	})

	t.Run("revoked refresh token", func(t *testing.T) {
		mockTokenStore := new(MockTokenStore)
		mockTokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return(uuid.Nil, "", assert.AnError)

		service := NewAuthService(new(MockUserRepository), jwtService, mockTokenStore, new(MockOTPStore), new(MockMailSender))
		_, err := service.RefreshToken(context.Background(), refreshToken)

		assert.Equal(t, ErrInvalidRefreshToken, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		service := NewAuthService(new(MockUserRepository), jwtService, new(MockTokenStore), new(MockOTPStore), new(MockMailSender))
		_, err := service.RefreshToken(context.Background(), "not-a-token")

		assert.Equal(t, ErrInvalidRefreshToken, err)
	})
}

func TestPasswordMeetsPolicy(t *testing.T) {
	tests := []struct {
		password string
		valid    bool
	}{
		{"Str0ng@Pass", true},
		{"Aa1!aaaa", true},
		{"abc", false},
		{"alllowercase1!", false},
		{"ALLUPPERCASE1!", false},
		{"NoDigits!!", false},
		{"NoSpecial11", false},
		{"Aa1!", false},
		{"Aa1!" + "aaaaaaaaaaaaaaaa", false},
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			assert.Equal(t, tt.valid, PasswordMeetsPolicy(tt.password))
		})
	}
}
