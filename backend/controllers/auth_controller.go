package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"learnloop/backend/config"
	"learnloop/backend/middleware"
	"learnloop/backend/models"
	"learnloop/backend/services"
	"learnloop/backend/utils"
)

const refreshCookieName = "refreshToken"

type AuthController struct {
	Auth *services.AuthService
	Cfg  *config.Config
}

func NewAuthController(auth *services.AuthService, cfg *config.Config) *AuthController {
	return &AuthController{Auth: auth, Cfg: cfg}
}

// UserDTO is the sanitized user representation; the hash never leaves the
// service layer.
type UserDTO struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

func mapUserToDTO(user *models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		Role:      user.Role,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
}

func (ac *AuthController) setRefreshCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		HTTPOnly: true,
		Secure:   ac.Cfg.Production(),
		SameSite: fiber.CookieSameSiteStrictMode,
		MaxAge:   int(ac.Cfg.RefreshTokenTTL.Seconds()),
		Path:     "/",
	})
}

func (ac *AuthController) clearRefreshCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		HTTPOnly: true,
		Secure:   ac.Cfg.Production(),
		SameSite: fiber.CookieSameSiteStrictMode,
		MaxAge:   -1,
		Path:     "/",
	})
}

// refreshTokenFrom pulls the refresh token from the httpOnly cookie, or the
// request body for clients that cannot send cookies.
func refreshTokenFrom(c *fiber.Ctx) string {
	if token := c.Cookies(refreshCookieName); token != "" {
		return token
	}
	var body struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := c.BodyParser(&body); err == nil {
		return body.RefreshToken
	}
	return ""
}

// Register godoc
// @Summary Register a new learner
// @Description Creates a user account and issues an access/refresh token pair
// @Tags auth
// @Accept json
// @Produce json
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /auth/register [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input services.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, errors.New("cannot parse JSON"))
	}
	if issues := utils.ValidateStruct(input); issues != nil {
		return utils.ValidationFailed(c, issues)
	}

	user, tokens, err := ac.Auth.Register(input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken), errors.Is(err, services.ErrUsernameTaken):
			return utils.Error(c, fiber.StatusConflict, err)
		default:
			return utils.Error(c, fiber.StatusInternalServerError, errors.New("could not register user"))
		}
	}

	ac.setRefreshCookie(c, tokens.RefreshToken)

	return utils.Success(c, fiber.StatusCreated, fiber.Map{
		"user":        mapUserToDTO(user),
		"accessToken": tokens.AccessToken,
	})
}

// Login godoc
// @Summary Learner login
// @Description Authenticates by email or username and issues a token pair
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input services.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, errors.New("cannot parse JSON"))
	}
	if issues := utils.ValidateStruct(input); issues != nil {
		return utils.ValidationFailed(c, issues)
	}

	user, tokens, err := ac.Auth.Login(input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrAccountDeactivated):
			return utils.Error(c, fiber.StatusUnauthorized, err)
		default:
			return utils.Error(c, fiber.StatusInternalServerError, errors.New("could not log in"))
		}
	}

	ac.setRefreshCookie(c, tokens.RefreshToken)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"user":        mapUserToDTO(user),
		"accessToken": tokens.AccessToken,
	})
}

// Refresh mints a new access token for a live refresh token taken from the
// cookie or, failing that, the request body.
func (ac *AuthController) Refresh(c *fiber.Ctx) error {
	refreshToken := refreshTokenFrom(c)
	if refreshToken == "" {
		return utils.Error(c, fiber.StatusUnauthorized, errors.New("no refresh token provided"))
	}

	accessToken, err := ac.Auth.RefreshAccessToken(refreshToken)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidToken), errors.Is(err, services.ErrUserNotFound):
			return utils.Error(c, fiber.StatusUnauthorized, services.ErrInvalidToken)
		default:
			return utils.Error(c, fiber.StatusInternalServerError, errors.New("could not refresh token"))
		}
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"accessToken": accessToken,
	})
}

// Logout is best-effort: whatever the service says, the cookie is cleared
// and the client sees success, so an already-revoked token still logs out.
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	if refreshToken := refreshTokenFrom(c); refreshToken != "" {
		_ = ac.Auth.Logout(refreshToken)
	}

	ac.clearRefreshCookie(c)
	return utils.SuccessMessage(c, fiber.StatusOK, "logged out")
}

// LogoutAll revokes every session of the authenticated user.
func (ac *AuthController) LogoutAll(c *fiber.Ctx) error {
	claims := middleware.UserClaims(c)
	if err := ac.Auth.LogoutAll(claims.UserID); err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, errors.New("could not revoke sessions"))
	}

	ac.clearRefreshCookie(c)
	return utils.SuccessMessage(c, fiber.StatusOK, "all sessions revoked")
}

// Me returns the authenticated user's sanitized record.
func (ac *AuthController) Me(c *fiber.Ctx) error {
	claims := middleware.UserClaims(c)

	user, err := ac.Auth.GetUserByID(claims.UserID)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, errors.New("could not load user"))
	}
	if user == nil {
		return utils.Error(c, fiber.StatusNotFound, services.ErrUserNotFound)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"user": mapUserToDTO(user),
	})
}

// CleanupExpiredTokens sweeps expired refresh tokens; admin only.
func (ac *AuthController) CleanupExpiredTokens(c *fiber.Ctx) error {
	deleted, err := ac.Auth.PurgeExpiredTokens()
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, errors.New("could not clean up tokens"))
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"deleted": deleted,
	})
}
