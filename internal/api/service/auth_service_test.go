package service

import (
	"testing"
	"time"

	"anitakes/internal/api/models"
	"anitakes/internal/auth"
	"anitakes/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret: "test-secret-key-that-is-long-enough",
		TokenTTL:  time.Hour,
	}
}

func TestAuthRegister_Success(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewAuthService(mockRepo, testConfig())

	mockRepo.On("FindByEmail", "test@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("FindByUsername", "testuser").Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil)

	user, err := svc.Register("testuser", "password123", "test@example.com")

	assert.NoError(t, err)
	assert.Equal(t, "testuser", user.Username)
	assert.Equal(t, "test@example.com", user.Email)
	// stored password must be a bcrypt hash of the plaintext
	assert.NotEqual(t, "password123", user.Password)
	assert.NoError(t, auth.VerifyPassword(user.Password, "password123"))

	mockRepo.AssertExpectations(t)
}

func TestAuthRegister_NormalizesEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewAuthService(mockRepo, testConfig())

	mockRepo.On("FindByEmail", "test@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("FindByUsername", "testuser").Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil)

	user, err := svc.Register("testuser", "password123", "  Test@Example.COM  ")

	assert.NoError(t, err)
	assert.Equal(t, "test@example.com", user.Email)

	mockRepo.AssertExpectations(t)
}

func TestAuthRegister_EmailInUse(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewAuthService(mockRepo, testConfig())

	existing := &models.User{ID: "user-1", Email: "test@example.com"}
	mockRepo.On("FindByEmail", "test@example.com").Return(existing, nil)

	user, err := svc.Register("testuser", "password123", "test@example.com")

	assert.ErrorIs(t, err, ErrEmailInUse)
	assert.Nil(t, user)
	mockRepo.AssertNotCalled(t, "Create")
}

func TestAuthRegister_UsernameInUse(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewAuthService(mockRepo, testConfig())

	existing := &models.User{ID: "user-1", Username: "testuser"}
	mockRepo.On("FindByEmail", "test@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("FindByUsername", "testuser").Return(existing, nil)

	user, err := svc.Register("testuser", "password123", "test@example.com")

	assert.ErrorIs(t, err, ErrNameInUse)
	assert.Nil(t, user)
	mockRepo.AssertNotCalled(t, "Create")
}

func TestAuthLogin_Success(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewAuthService(mockRepo, testConfig())

	hash, err := auth.HashPassword("password123")
	assert.NoError(t, err)

	stored := &models.User{
		ID:       "user-123",
		Username: "testuser",
		Email:    "test@example.com",
		Password: hash,
	}

	mockRepo.On("FindByEmail", "test@example.com").Return(stored, nil)

	token, user, err := svc.Login("test@example.com", "password123")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "user-123", user.ID)

	// the issued token must validate and carry the user id
	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)

	mockRepo.AssertExpectations(t)
}

func TestAuthLogin_WrongPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewAuthService(mockRepo, testConfig())

	hash, _ := auth.HashPassword("password123")
	stored := &models.User{ID: "user-123", Email: "test@example.com", Password: hash}

	mockRepo.On("FindByEmail", "test@example.com").Return(stored, nil)

	token, user, err := svc.Login("test@example.com", "wrongpassword")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, token)
	assert.Nil(t, user)
}

func TestAuthLogin_UnknownEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewAuthService(mockRepo, testConfig())

	mockRepo.On("FindByEmail", "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)

	token, user, err := svc.Login("nobody@example.com", "password123")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, token)
	assert.Nil(t, user)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := NewAuthService(new(MockUserRepository), testConfig())

	claims, err := svc.ValidateToken("not.a.token")

	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	mockRepo := new(MockUserRepository)
	issuer := NewAuthService(mockRepo, testConfig())

	hash, _ := auth.HashPassword("password123")
	stored := &models.User{ID: "user-123", Email: "test@example.com", Password: hash}
	mockRepo.On("FindByEmail", "test@example.com").Return(stored, nil)

	token, _, err := issuer.Login("test@example.com", "password123")
	assert.NoError(t, err)

	otherCfg := &config.Config{
		JWTSecret: "a-completely-different-secret-value-here",
		TokenTTL:  time.Hour,
	}
	verifier := NewAuthService(new(MockUserRepository), otherCfg)

	claims, err := verifier.ValidateToken(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestValidateToken_Expired(t *testing.T) {
	mockRepo := new(MockUserRepository)
	cfg := testConfig()
	cfg.TokenTTL = -time.Minute
	svc := NewAuthService(mockRepo, cfg)

	hash, _ := auth.HashPassword("password123")
	stored := &models.User{ID: "user-123", Email: "test@example.com", Password: hash}
	mockRepo.On("FindByEmail", "test@example.com").Return(stored, nil)

	token, _, err := svc.Login("test@example.com", "password123")
	assert.NoError(t, err)

	claims, err := svc.ValidateToken(token)

	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.Nil(t, claims)
}

func TestGetProfile_Success(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewAuthService(mockRepo, testConfig())

	stored := &models.User{ID: "user-123", Username: "testuser"}
	mockRepo.On("FindByID", "user-123").Return(stored, nil)

	user, err := svc.GetProfile("user-123")

	assert.NoError(t, err)
	assert.Equal(t, "testuser", user.Username)
}

func TestGetProfile_NotFound(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewAuthService(mockRepo, testConfig())

	mockRepo.On("FindByID", "ghost").Return(nil, gorm.ErrRecordNotFound)

	user, err := svc.GetProfile("ghost")

	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Nil(t, user)
}
