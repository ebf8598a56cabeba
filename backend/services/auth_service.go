package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"learnloop/backend/models"
	"learnloop/backend/repositories"
)

// AuthTokens is the pair handed back on registration and login.
type AuthTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=20,username"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginInput struct {
	EmailOrUsername string `json:"emailOrUsername" validate:"required"`
	Password        string `json:"password" validate:"required"`
}

// AuthService coordinates registration, login, refresh and logout against
// the user and refresh-token stores.
type AuthService struct {
	users      *repositories.UserRepository
	tokens     *repositories.RefreshTokenRepository
	tokenSvc   *TokenService
	bcryptCost int
}

func NewAuthService(
	users *repositories.UserRepository,
	tokens *repositories.RefreshTokenRepository,
	tokenSvc *TokenService,
	bcryptCost int,
) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     tokens,
		tokenSvc:   tokenSvc,
		bcryptCost: bcryptCost,
	}
}

// generateTokens issues an access/refresh pair and persists the refresh
// token verbatim so it can be revoked server-side later.
func (s *AuthService) generateTokens(user *models.User) (*AuthTokens, error) {
	accessToken, err := s.tokenSvc.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, expiresAt, err := s.tokenSvc.GenerateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	if _, err := s.tokens.Create(user.ID, refreshToken, expiresAt); err != nil {
		return nil, err
	}

	return &AuthTokens{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Register creates the user and issues the first session. The existence
// checks are a fast path; the unique indexes decide races between two
// concurrent registrations with the same email or username.
func (s *AuthService) Register(input RegisterInput) (*models.User, *AuthTokens, error) {
	existing, err := s.users.FindByEmail(input.Email)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, ErrEmailTaken
	}

	existing, err = s.users.FindByUsername(input.Username)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, nil, err
	}

	user := &models.User{
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: string(hash),
		Role:         models.RoleStudent,
		IsActive:     true,
	}
	if err := s.users.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, ErrEmailTaken
		}
		return nil, nil, err
	}

	tokens, err := s.generateTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

// Login resolves the identifier (anything containing @ is an email), checks
// the account state and password, and records the login time. Unknown users
// and wrong passwords raise the same error so callers cannot enumerate
// accounts.
func (s *AuthService) Login(input LoginInput) (*models.User, *AuthTokens, error) {
	var user *models.User
	var err error
	if strings.Contains(input.EmailOrUsername, "@") {
		user, err = s.users.FindByEmail(input.EmailOrUsername)
	} else {
		user, err = s.users.FindByUsername(input.EmailOrUsername)
	}
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, nil, ErrAccountDeactivated
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return nil, nil, ErrInvalidCredentials
	}

	if err := s.users.UpdateLastLogin(user.ID); err != nil {
		return nil, nil, err
	}

	tokens, err := s.generateTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

// RefreshAccessToken mints a new access token for a live refresh token. The
// signature check alone is not enough: a token whose row is gone or past
// expires_at fails here even when the JWT itself is intact. The refresh
// token is not rotated.
func (s *AuthService) RefreshAccessToken(refreshToken string) (string, error) {
	if _, err := s.tokenSvc.VerifyRefreshToken(refreshToken); err != nil {
		return "", err
	}

	record, err := s.tokens.FindValid(refreshToken)
	if err != nil {
		return "", err
	}
	if record == nil {
		return "", ErrInvalidToken
	}

	user, err := s.users.FindByID(record.UserID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
	}

	return s.tokenSvc.GenerateAccessToken(user)
}

// Logout revokes one session. The HTTP boundary treats a missing token as a
// successful logout; the service itself reports it.
func (s *AuthService) Logout(refreshToken string) error {
	if _, err := s.tokenSvc.VerifyRefreshToken(refreshToken); err != nil {
		return err
	}

	record, err := s.tokens.FindValid(refreshToken)
	if err != nil {
		return err
	}
	if record == nil {
		return ErrInvalidToken
	}
	return s.tokens.Delete(refreshToken)
}

// LogoutAll revokes every session the user holds.
func (s *AuthService) LogoutAll(userID uint) error {
	return s.tokens.DeleteByUser(userID)
}

// PurgeExpiredTokens sweeps rows past expiry from the store.
func (s *AuthService) PurgeExpiredTokens() (int64, error) {
	return s.tokens.DeleteExpired()
}

func (s *AuthService) GetUserByID(id uint) (*models.User, error) {
	return s.users.FindByID(id)
}
