package handler

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devcamper/api/internal/config"
	"github.com/devcamper/api/internal/geocoder"
	"github.com/devcamper/api/internal/query"
	"github.com/devcamper/api/internal/repository"
	"github.com/devcamper/api/internal/service"

	"github.com/devcamper/api/internal/model"
)

// BootcampHandler bundles dependencies for bootcamp endpoints.
type BootcampHandler struct {
	Cfg       config.Config
	Bootcamps *repository.BootcampRepo
	Courses   *repository.CourseRepo
	Geo       *geocoder.Geocoder
}

func NewBootcampHandler(cfg config.Config, b *repository.BootcampRepo, co *repository.CourseRepo, g *geocoder.Geocoder) *BootcampHandler {
	return &BootcampHandler{Cfg: cfg, Bootcamps: b, Courses: co, Geo: g}
}

// ----- DTOs -----

type bootcampCreateReq struct {
	Name          string   `json:"name" validate:"required,max=50"`
	Description   string   `json:"description" validate:"required,max=500"`
	Website       string   `json:"website" validate:"omitempty,url"`
	Phone         string   `json:"phone" validate:"omitempty,max=20"`
	Email         string   `json:"email" validate:"omitempty,email"`
	Address       string   `json:"address" validate:"required"`
	Careers       []string `json:"careers" validate:"required,min=1,dive,oneof='Web Development' 'Mobile Development' 'UI/UX' 'Data Science' 'Business' 'Other'"`
	Housing       bool     `json:"housing"`
	JobAssistance bool     `json:"jobAssistance"`
	AcceptGi      bool     `json:"acceptGi"`
}

type bootcampUpdateReq struct {
	Name          *string   `json:"name" validate:"omitempty,max=50"`
	Description   *string   `json:"description" validate:"omitempty,max=500"`
	Website       *string   `json:"website" validate:"omitempty,url"`
	Phone         *string   `json:"phone" validate:"omitempty,max=20"`
	Email         *string   `json:"email" validate:"omitempty,email"`
	Address       *string   `json:"address"`
	Careers       []string  `json:"careers" validate:"omitempty,min=1,dive,oneof='Web Development' 'Mobile Development' 'UI/UX' 'Data Science' 'Business' 'Other'"`
	AverageRating *float64  `json:"averageRating" validate:"omitempty,gte=1,lte=10"`
	Housing       *bool     `json:"housing"`
	JobAssistance *bool     `json:"jobAssistance"`
	AcceptGi      *bool     `json:"acceptGi"`
}

// List handles GET /api/v1/bootcamps with the full filter/select/sort/page
// grammar.
func (h *BootcampHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	res, err := query.Run(ctx, h.Bootcamps.Collection(), query.Parse(c.QueryParams()))
	if err != nil {
		return fail(c, http.StatusBadRequest, "could not run query")
	}
	return c.JSON(http.StatusOK, res)
}

// Get handles GET /api/v1/bootcamps/:id and populates the bootcamp's
// courses at read time.
func (h *BootcampHandler) Get(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return notFound(c, "Bootcamp", c.Param("id"))
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	b, err := h.Bootcamps.GetByID(ctx, id)
	if err == repository.ErrNotFound {
		return notFound(c, "Bootcamp", c.Param("id"))
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "db error")
	}
	if b.Courses, err = h.Courses.ListByBootcamp(ctx, id); err != nil {
		return fail(c, http.StatusInternalServerError, "db error")
	}
	return ok(c, http.StatusOK, b)
}

// Create handles POST /api/v1/bootcamps. The authenticated user becomes
// the owner; non-admin users may only publish one bootcamp.
func (h *BootcampHandler) Create(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "Not authorized to access this route")
	}
	var req bootcampCreateReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	// Non-admin publishers get a single bootcamp.
	if currentRole(c) != model.RoleAdmin {
		if existing, err := h.Bootcamps.FindOneByOwner(ctx, userID); err == nil {
			return fail(c, http.StatusBadRequest,
				fmt.Sprintf("The user with ID %s has already published a bootcamp", existing.User.Hex()))
		} else if err != repository.ErrNotFound {
			return fail(c, http.StatusInternalServerError, "db error")
		}
	}

	loc, err := h.Geo.Locate(req.Address)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "address could not be geocoded")
	}

	b := model.Bootcamp{
		Name:          strings.TrimSpace(req.Name),
		Slug:          service.Slugify(req.Name),
		Description:   req.Description,
		Website:       req.Website,
		Phone:         req.Phone,
		Email:         req.Email,
		Location:      &loc,
		Careers:       req.Careers,
		Housing:       req.Housing,
		JobAssistance: req.JobAssistance,
		AcceptGi:      req.AcceptGi,
		User:          userID,
	}
	if err := h.Bootcamps.Create(ctx, &b); err != nil {
		if err == repository.ErrDuplicateName {
			return fail(c, http.StatusBadRequest, "Duplicate field value entered")
		}
		return fail(c, http.StatusInternalServerError, "could not create bootcamp")
	}
	return ok(c, http.StatusCreated, b)
}

// Update handles PUT /api/v1/bootcamps/:id. Name changes re-derive the
// slug and address changes are re-geocoded; the raw address is never
// stored.
func (h *BootcampHandler) Update(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return notFound(c, "Bootcamp", c.Param("id"))
	}
	var req bootcampUpdateReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	b, err := h.Bootcamps.GetByID(ctx, id)
	if err == repository.ErrNotFound {
		return notFound(c, "Bootcamp", c.Param("id"))
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "db error")
	}
	if userID, _ := currentUserID(c); b.User != userID && currentRole(c) != model.RoleAdmin {
		return fail(c, http.StatusForbidden,
			fmt.Sprintf("User %s is not authorized to update this bootcamp", userID.Hex()))
	}

	set := bson.M{}
	if req.Name != nil {
		set["name"] = strings.TrimSpace(*req.Name)
		set["slug"] = service.Slugify(*req.Name)
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Website != nil {
		set["website"] = *req.Website
	}
	if req.Phone != nil {
		set["phone"] = *req.Phone
	}
	if req.Email != nil {
		set["email"] = *req.Email
	}
	if req.Careers != nil {
		set["careers"] = req.Careers
	}
	if req.AverageRating != nil {
		set["averageRating"] = *req.AverageRating
	}
	if req.Housing != nil {
		set["housing"] = *req.Housing
	}
	if req.JobAssistance != nil {
		set["jobAssistance"] = *req.JobAssistance
	}
	if req.AcceptGi != nil {
		set["acceptGi"] = *req.AcceptGi
	}
	if req.Address != nil {
		loc, err := h.Geo.Locate(*req.Address)
		if err != nil {
			return fail(c, http.StatusInternalServerError, "address could not be geocoded")
		}
		set["location"] = loc
	}
	if len(set) == 0 {
		return fail(c, http.StatusBadRequest, "no fields to update")
	}

	updated, err := h.Bootcamps.Update(ctx, id, set)
	if err == repository.ErrDuplicateName {
		return fail(c, http.StatusBadRequest, "Duplicate field value entered")
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "update failed")
	}
	return ok(c, http.StatusOK, updated)
}

// Delete handles DELETE /api/v1/bootcamps/:id and cascades to the
// bootcamp's courses.
func (h *BootcampHandler) Delete(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return notFound(c, "Bootcamp", c.Param("id"))
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	b, err := h.Bootcamps.GetByID(ctx, id)
	if err == repository.ErrNotFound {
		return notFound(c, "Bootcamp", c.Param("id"))
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "db error")
	}
	if userID, _ := currentUserID(c); b.User != userID && currentRole(c) != model.RoleAdmin {
		return fail(c, http.StatusForbidden,
			fmt.Sprintf("User %s is not authorized to delete this bootcamp", userID.Hex()))
	}

	if err := service.CascadeDeleteBootcamp(ctx, h.Bootcamps, h.Courses, id); err != nil {
		return fail(c, http.StatusInternalServerError, "delete failed")
	}
	return ok(c, http.StatusOK, echo.Map{})
}

// Radius handles GET /api/v1/bootcamps/radius/:zipcode/:distance where
// distance is in kilometres. The zipcode is geocoded on every call.
func (h *BootcampHandler) Radius(c echo.Context) error {
	distance, err := strconv.ParseFloat(c.Param("distance"), 64)
	if err != nil || distance <= 0 {
		return fail(c, http.StatusBadRequest, "invalid distance")
	}
	lng, lat, err := h.Geo.Coordinates(c.Param("zipcode"))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "zipcode could not be geocoded")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	list, err := h.Bootcamps.WithinRadius(ctx, lng, lat, service.RadiusRadians(distance))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "db error")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "count": len(list), "data": list})
}

// UploadPhoto handles PUT /api/v1/bootcamps/:id/photo. The file must be an
// image no larger than the configured maximum; it is stored under the
// upload path as photo_<id><ext> and the bootcamp's photo field updated.
func (h *BootcampHandler) UploadPhoto(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return notFound(c, "Bootcamp", c.Param("id"))
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	b, err := h.Bootcamps.GetByID(ctx, id)
	if err == repository.ErrNotFound {
		return notFound(c, "Bootcamp", c.Param("id"))
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "db error")
	}
	if userID, _ := currentUserID(c); b.User != userID && currentRole(c) != model.RoleAdmin {
		return fail(c, http.StatusForbidden,
			fmt.Sprintf("User %s is not authorized to update this bootcamp", userID.Hex()))
	}

	file, err := c.FormFile("file")
	if err != nil {
		return fail(c, http.StatusBadRequest, "Please upload a file")
	}
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		return fail(c, http.StatusBadRequest, "Please upload an image file")
	}
	if file.Size > h.Cfg.MaxFileUpload {
		return fail(c, http.StatusBadRequest,
			fmt.Sprintf("Please upload an image less than %d bytes", h.Cfg.MaxFileUpload))
	}

	filename := fmt.Sprintf("photo_%s%s", id.Hex(), filepath.Ext(file.Filename))
	if err := saveUpload(file, filepath.Join(h.Cfg.FileUploadPath, filename)); err != nil {
		return fail(c, http.StatusInternalServerError, "problem with file upload")
	}
	if err := h.Bootcamps.SetPhoto(ctx, id, filename); err != nil {
		return fail(c, http.StatusInternalServerError, "db error")
	}
	return ok(c, http.StatusOK, filename)
}

// saveUpload streams a multipart file to disk, creating the upload
// directory on first use.
func saveUpload(file *multipart.FileHeader, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}

// reqCtx bounds a handler's database work to five seconds.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}
