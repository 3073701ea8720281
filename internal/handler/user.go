package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devcamper/api/internal/config"
	"github.com/devcamper/api/internal/model"
	"github.com/devcamper/api/internal/query"
	"github.com/devcamper/api/internal/repository"
)

// UserHandler bundles dependencies for the admin user endpoints.
type UserHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewUserHandler(cfg config.Config, u *repository.UserRepo) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type userCreateReq struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=user publisher admin"`
}

type userUpdateReq struct {
	Name  *string `json:"name"`
	Email *string `json:"email" validate:"omitempty,email"`
	Role  *string `json:"role" validate:"omitempty,oneof=user publisher admin"`
}

// List handles GET /api/v1/users with the full query grammar. Credential
// fields are stripped from every document before the page is written.
func (h *UserHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	opts := query.Parse(c.QueryParams())
	opts.Expand = stripCredentials
	res, err := query.Run(ctx, h.Users.Collection(), opts)
	if err != nil {
		return fail(c, http.StatusBadRequest, "could not run query")
	}
	return c.JSON(http.StatusOK, res)
}

// Get handles GET /api/v1/users/:id.
func (h *UserHandler) Get(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return notFound(c, "User", c.Param("id"))
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err == repository.ErrNotFound {
		return notFound(c, "User", c.Param("id"))
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "db error")
	}
	return ok(c, http.StatusOK, u)
}

// Create handles POST /api/v1/users. Unlike registration, an admin may
// create accounts with any role, admin included.
func (h *UserHandler) Create(c echo.Context) error {
	var req userCreateReq
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
	if err == repository.ErrEmailExists {
		return fail(c, http.StatusBadRequest, "Duplicate field value entered")
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not create user")
	}
	return ok(c, http.StatusCreated, u)
}

// Update handles PUT /api/v1/users/:id.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return notFound(c, "User", c.Param("id"))
	}
	var req userUpdateReq
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
		set["email"] = *req.Email
	}
	if req.Role != nil {
		set["role"] = *req.Role
	}
	if len(set) == 0 {
		return fail(c, http.StatusBadRequest, "no fields to update")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.Update(ctx, id, set)
	if err == repository.ErrNotFound {
		return notFound(c, "User", c.Param("id"))
	}
	if err == repository.ErrEmailExists {
		return fail(c, http.StatusBadRequest, "Duplicate field value entered")
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "update failed")
	}
	return ok(c, http.StatusOK, u)
}

// Delete handles DELETE /api/v1/users/:id.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return notFound(c, "User", c.Param("id"))
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Users.Delete(ctx, id); err == repository.ErrNotFound {
		return notFound(c, "User", c.Param("id"))
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "delete failed")
	}
	return ok(c, http.StatusOK, echo.Map{})
}

// stripCredentials removes password and reset-token fields from raw user
// documents before they leave the server.
func stripCredentials(_ context.Context, docs []bson.M) error {
	for _, d := range docs {
		delete(d, "password")
		delete(d, "resetPasswordToken")
		delete(d, "resetPasswordExpire")
	}
	return nil
}
