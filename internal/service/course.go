package service

import (
	"context"
	"math"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devcamper/api/internal/repository"
)

// RoundCost rounds a mean tuition up to the nearest multiple of ten, the
// rounding rule used for a bootcamp's displayed average cost.
func RoundCost(avg float64) int {
	return int(math.Ceil(avg/10) * 10)
}

// RecalcAverageCost recomputes a bootcamp's average course cost after a
// course was created, updated or deleted. When the bootcamp has no courses
// left the field is cleared instead.
func RecalcAverageCost(ctx context.Context, courses *repository.CourseRepo, bootcamps *repository.BootcampRepo, bootcampID primitive.ObjectID) error {
	avg, found, err := courses.AverageTuition(ctx, bootcampID)
	if err != nil {
		return err
	}
	if !found {
		return bootcamps.UnsetAverageCost(ctx, bootcampID)
	}
	return bootcamps.SetAverageCost(ctx, bootcampID, RoundCost(avg))
}
