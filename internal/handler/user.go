package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/filmreel/video-rental/internal/config"
	"github.com/filmreel/video-rental/internal/middleware"
	"github.com/filmreel/video-rental/internal/model"
	"github.com/filmreel/video-rental/internal/repository"
	"github.com/filmreel/video-rental/internal/utils"
)

// UserStore is the persistence surface registration and login need.
// *repository.UserRepo implements it.
type UserStore interface {
	Create(ctx context.Context, name, email, password string, isAdmin bool, cost int) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// UserHandler bundles dependencies for registration, login and the
// current-user endpoint.
type UserHandler struct {
	Cfg   config.Config
	Users UserStore
}

func NewUserHandler(cfg config.Config, s UserStore) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: s}
}

// registerReq deliberately has no admin field: registration always
// creates a regular user, and the admin flag is granted out-of-band.
type registerReq struct {
	Name     string `json:"name" validate:"required,min=5,max=255"`
	Email    string `json:"email" validate:"required,email,min=5,max=255"`
	Password string `json:"password" validate:"required,min=5,max=1024"`
}

type loginReq struct {
	Email    string `json:"email" validate:"required,min=5,max=255"`
	Password string `json:"password" validate:"required,min=5,max=1024"`
}

type registeredUser struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Register creates a user and logs them in immediately: the fresh auth
// token rides back in the x-auth-token response header.
func (h *UserHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Name, req.Email, req.Password, false, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "user already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	token, err := utils.NewAuthToken(h.Cfg.JWTSecret, uid, false, h.Cfg.TokenTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}

	c.Response().Header().Set("x-auth-token", token)
	return c.JSON(http.StatusCreated, registeredUser{ID: uid, Name: req.Name, Email: req.Email})
}

// Login verifies credentials and returns a signed token. Unknown email
// and wrong password produce the same response on purpose.
func (h *UserHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid email or password"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid email or password"})
	}

	token, err := utils.NewAuthToken(h.Cfg.JWTSecret, u.ID, u.IsAdmin, h.Cfg.TokenTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"token": token})
}

// Me returns the authenticated user's record, minus the password hash.
func (h *UserHandler) Me(c echo.Context) error {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, u)
}
