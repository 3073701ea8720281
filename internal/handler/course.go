package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devcamper/api/internal/config"
	"github.com/devcamper/api/internal/model"
	"github.com/devcamper/api/internal/query"
	"github.com/devcamper/api/internal/repository"
	"github.com/devcamper/api/internal/service"
)

// CourseHandler bundles dependencies for course endpoints.
type CourseHandler struct {
	Cfg       config.Config
	Courses   *repository.CourseRepo
	Bootcamps *repository.BootcampRepo
}

func NewCourseHandler(cfg config.Config, co *repository.CourseRepo, b *repository.BootcampRepo) *CourseHandler {
	return &CourseHandler{Cfg: cfg, Courses: co, Bootcamps: b}
}

// ----- DTOs -----

type courseCreateReq struct {
	Title                string  `json:"title" validate:"required"`
	Description          string  `json:"description" validate:"required"`
	Weeks                string  `json:"weeks" validate:"required"`
	Tuition              float64 `json:"tuition" validate:"required,gte=0"`
	MinimumSkill         string  `json:"minimumSkill" validate:"required,oneof=beginner intermediate advanced"`
	ScholarshipAvailable bool    `json:"scholarshipAvailable"`
}

type courseUpdateReq struct {
	Title                *string  `json:"title"`
	Description          *string  `json:"description"`
	Weeks                *string  `json:"weeks"`
	Tuition              *float64 `json:"tuition" validate:"omitempty,gte=0"`
	MinimumSkill         *string  `json:"minimumSkill" validate:"omitempty,oneof=beginner intermediate advanced"`
	ScholarshipAvailable *bool    `json:"scholarshipAvailable"`
}

// populatedCourse embeds the owning bootcamp's name and description in a
// single-course response.
type populatedCourse struct {
	model.Course
	Bootcamp bson.M `json:"bootcamp"`
}

// List handles GET /api/v1/courses with the full query grammar; each
// course document carries its bootcamp's name and description inline.
func (h *CourseHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	opts := query.Parse(c.QueryParams())
	opts.Expand = h.attachBootcamps
	res, err := query.Run(ctx, h.Courses.Collection(), opts)
	if err != nil {
		return fail(c, http.StatusBadRequest, "could not run query")
	}
	return c.JSON(http.StatusOK, res)
}

// ListByBootcamp handles GET /api/v1/bootcamps/:id/courses.
func (h *CourseHandler) ListByBootcamp(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return notFound(c, "Bootcamp", c.Param("id"))
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	list, err := h.Courses.ListByBootcamp(ctx, id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "db error")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "count": len(list), "data": list})
}

// Get handles GET /api/v1/courses/:id with the bootcamp populated.
func (h *CourseHandler) Get(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return notFound(c, "Course", c.Param("id"))
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	course, err := h.Courses.GetByID(ctx, id)
	if err == repository.ErrNotFound {
		return notFound(c, "Course", c.Param("id"))
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "db error")
	}

	resp := populatedCourse{Course: course}
	if b, err := h.Bootcamps.GetByID(ctx, course.Bootcamp); err == nil {
		resp.Bootcamp = bson.M{"_id": b.ID, "name": b.Name, "description": b.Description}
	}
	return ok(c, http.StatusOK, resp)
}

// Create handles POST /api/v1/bootcamps/:id/courses. The bootcamp must
// exist and belong to the caller (admins may add courses anywhere), and
// the bootcamp's average cost is recomputed after the insert.
func (h *CourseHandler) Create(c echo.Context) error {
	bootcampID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return notFound(c, "Bootcamp", c.Param("id"))
	}
	userID, err := currentUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "Not authorized to access this route")
	}
	var req courseCreateReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	b, err := h.Bootcamps.GetByID(ctx, bootcampID)
	if err == repository.ErrNotFound {
		return notFound(c, "Bootcamp", c.Param("id"))
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "db error")
	}
	if b.User != userID && currentRole(c) != model.RoleAdmin {
		return fail(c, http.StatusForbidden,
			fmt.Sprintf("User %s is not authorized to add a course to bootcamp %s", userID.Hex(), bootcampID.Hex()))
	}

	course := model.Course{
		Title:                req.Title,
		Description:          req.Description,
		Weeks:                req.Weeks,
		Tuition:              req.Tuition,
		MinimumSkill:         req.MinimumSkill,
		ScholarshipAvailable: req.ScholarshipAvailable,
		Bootcamp:             bootcampID,
		User:                 userID,
	}
	if err := h.Courses.Create(ctx, &course); err != nil {
		return fail(c, http.StatusInternalServerError, "could not create course")
	}
	if err := service.RecalcAverageCost(ctx, h.Courses, h.Bootcamps, bootcampID); err != nil {
		c.Logger().Warnf("average cost recompute failed: %v", err)
	}
	return ok(c, http.StatusCreated, course)
}

// Update handles PUT /api/v1/courses/:id and recomputes the owning
// bootcamp's average cost when tuition may have changed.
func (h *CourseHandler) Update(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return notFound(c, "Course", c.Param("id"))
	}
	var req courseUpdateReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	course, err := h.Courses.GetByID(ctx, id)
	if err == repository.ErrNotFound {
		return notFound(c, "Course", c.Param("id"))
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "db error")
	}
	if userID, _ := currentUserID(c); course.User != userID && currentRole(c) != model.RoleAdmin {
		return fail(c, http.StatusForbidden,
			fmt.Sprintf("User %s is not authorized to update course %s", userID.Hex(), id.Hex()))
	}

	set := bson.M{}
	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Weeks != nil {
		set["weeks"] = *req.Weeks
	}
	if req.Tuition != nil {
		set["tuition"] = *req.Tuition
	}
	if req.MinimumSkill != nil {
		set["minimumSkill"] = *req.MinimumSkill
	}
	if req.ScholarshipAvailable != nil {
		set["scholarshipAvailable"] = *req.ScholarshipAvailable
	}
	if len(set) == 0 {
		return fail(c, http.StatusBadRequest, "no fields to update")
	}

	updated, err := h.Courses.Update(ctx, id, set)
	if err == repository.ErrNotFound {
		return notFound(c, "Course", c.Param("id"))
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "update failed")
	}
	if err := service.RecalcAverageCost(ctx, h.Courses, h.Bootcamps, updated.Bootcamp); err != nil {
		c.Logger().Warnf("average cost recompute failed: %v", err)
	}
	return ok(c, http.StatusOK, updated)
}

// Delete handles DELETE /api/v1/courses/:id and recomputes the owning
// bootcamp's average cost afterwards.
func (h *CourseHandler) Delete(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return notFound(c, "Course", c.Param("id"))
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	course, err := h.Courses.GetByID(ctx, id)
	if err == repository.ErrNotFound {
		return notFound(c, "Course", c.Param("id"))
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "db error")
	}
	if userID, _ := currentUserID(c); course.User != userID && currentRole(c) != model.RoleAdmin {
		return fail(c, http.StatusForbidden,
			fmt.Sprintf("User %s is not authorized to delete course %s", userID.Hex(), id.Hex()))
	}

	if err := h.Courses.Delete(ctx, id); err != nil {
		return fail(c, http.StatusInternalServerError, "delete failed")
	}
	if err := service.RecalcAverageCost(ctx, h.Courses, h.Bootcamps, course.Bootcamp); err != nil {
		c.Logger().Warnf("average cost recompute failed: %v", err)
	}
	return ok(c, http.StatusOK, echo.Map{})
}

// attachBootcamps replaces each course document's bootcamp id with a
// {_id, name, description} sub-document, one $in query for the whole page.
func (h *CourseHandler) attachBootcamps(ctx context.Context, docs []bson.M) error {
	ids := make([]primitive.ObjectID, 0, len(docs))
	seen := map[primitive.ObjectID]bool{}
	for _, d := range docs {
		if id, okID := d["bootcamp"].(primitive.ObjectID); okID && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	byID, err := h.Bootcamps.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, d := range docs {
		if id, okID := d["bootcamp"].(primitive.ObjectID); okID {
			if sub, found := byID[id]; found {
				d["bootcamp"] = sub
			}
		}
	}
	return nil
}
