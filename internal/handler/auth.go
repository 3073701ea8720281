package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/devcamper/api/internal/config"
	"github.com/devcamper/api/internal/model"
	"github.com/devcamper/api/internal/queue"
	"github.com/devcamper/api/internal/repository"
	"github.com/devcamper/api/internal/service"
	"github.com/devcamper/api/internal/utils"
)

// resetTokenTTL is how long a password reset token stays valid.
const resetTokenTTL = 10 * time.Minute

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type registerReq struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=user publisher"`
}
type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
type updateDetailsReq struct {
	Name  *string `json:"name"`
	Email *string `json:"email" validate:"omitempty,email"`
}
type updatePasswordReq struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}
type forgotPasswordReq struct {
	Email string `json:"email" validate:"required,email"`
}
type resetPasswordReq struct {
	Password string `json:"password" validate:"required,min=6"`
}

// tokenResponse writes the {success, token} body returned whenever
// credentials change hands.
func (h *AuthHandler) tokenResponse(c echo.Context, code int, u model.User) error {
	tok, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID.Hex(), u.Role, h.Cfg.JWTExpire)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not issue token")
	}
	return c.JSON(code, echo.Map{"success": true, "token": tok.Token})
}

// Register handles POST /api/v1/auth/register. The admin role can never be
// claimed here; it defaults to "user".
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	if req.Role == "" {
		req.Role = model.RoleUser
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.Create(ctx, req.Name, req.Email, req.Password, req.Role, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrEmailExists {
			return fail(c, http.StatusBadRequest, "Duplicate field value entered")
		}
		return fail(c, http.StatusInternalServerError, "could not create user")
	}
	return h.tokenResponse(c, http.StatusCreated, u)
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Please provide an email and password")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err == repository.ErrNotFound {
		return fail(c, http.StatusUnauthorized, "Invalid credentials")
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "db error")
	}
	if !utils.VerifyPassword(u.Password, req.Password) {
		return fail(c, http.StatusUnauthorized, "Invalid credentials")
	}
	return h.tokenResponse(c, http.StatusOK, u)
}

// Me handles GET /api/v1/auth/me.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "Not authorized to access this route")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "db error")
	}
	return ok(c, http.StatusOK, u)
}

// UpdateDetails handles PUT /api/v1/auth/updatedetails (name and email).
func (h *AuthHandler) UpdateDetails(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "Not authorized to access this route")
	}
	var req updateDetailsReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	set := bson.M{}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Email != nil {
		set["email"] = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if len(set) == 0 {
		return fail(c, http.StatusBadRequest, "no fields to update")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.Update(ctx, userID, set)
	if err == repository.ErrEmailExists {
		return fail(c, http.StatusBadRequest, "Duplicate field value entered")
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "update failed")
	}
	return ok(c, http.StatusOK, u)
}

// UpdatePassword handles PUT /api/v1/auth/updatepassword. The current
// password must verify before the new one is accepted.
func (h *AuthHandler) UpdatePassword(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "Not authorized to access this route")
	}
	var req updatePasswordReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "db error")
	}
	if !utils.VerifyPassword(u.Password, req.CurrentPassword) {
		return fail(c, http.StatusUnauthorized, "Password is incorrect")
	}
	hash, err := utils.HashPassword(req.NewPassword, h.Cfg.BcryptCost)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not hash password")
	}
	if err := h.Users.UpdatePassword(ctx, userID, hash); err != nil {
		return fail(c, http.StatusInternalServerError, "update failed")
	}
	return h.tokenResponse(c, http.StatusOK, u)
}

// ForgotPassword handles POST /api/v1/auth/forgotpassword. A hashed reset
// token is stored with a short expiry and the raw token is handed to the
// mail worker via the message queue. Queue failures are logged but do not
// fail the request.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err == repository.ErrNotFound {
		return fail(c, http.StatusNotFound, "There is no user with that email")
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "db error")
	}

	raw, err := utils.NewResetToken()
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not issue reset token")
	}
	expire := time.Now().UTC().Add(resetTokenTTL)
	if err := h.Users.SetResetToken(ctx, u.ID, utils.HashResetToken(raw), expire); err != nil {
		return fail(c, http.StatusInternalServerError, "db error")
	}

	resetURL := fmt.Sprintf("%s://%s/api/v1/auth/resetpassword/%s", c.Scheme(), c.Request().Host, raw)
	ev := queue.PasswordResetEvent{
		UserID:      u.ID.Hex(),
		Name:        u.Name,
		Email:       u.Email,
		ResetURL:    resetURL,
		ExpiresAt:   expire.Format(time.RFC3339),
		RequestedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := service.PublishPasswordReset(ctx, ev); err != nil {
		c.Logger().Warnf("reset email event not published: %v", err)
	}
	return ok(c, http.StatusOK, "Email sent")
}

// ResetPassword handles PUT /api/v1/auth/resetpassword/:resettoken.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByResetToken(ctx, utils.HashResetToken(c.Param("resettoken")))
	if err == repository.ErrNotFound {
		return fail(c, http.StatusBadRequest, "Invalid token")
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "db error")
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not hash password")
	}
	if err := h.Users.UpdatePassword(ctx, u.ID, hash); err != nil {
		return fail(c, http.StatusInternalServerError, "update failed")
	}
	return h.tokenResponse(c, http.StatusOK, u)
}
