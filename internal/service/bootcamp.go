// Package service holds the side-effect logic that the original data layer
// ran implicitly on every save or remove: slug derivation, cascade deletes,
// average-cost aggregation and event publishing. Handlers call these
// functions explicitly so the side effects are visible at the call site.
package service

import (
	"context"

	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devcamper/api/internal/repository"
)

// EarthRadiusKm is the mean Earth radius used to convert a distance in
// kilometres into the angular radius $centerSphere expects.
const EarthRadiusKm = 6378.0

// Slugify derives the URL slug stored alongside a bootcamp name.
func Slugify(name string) string {
	return slug.Make(name)
}

// RadiusRadians converts a great-circle distance in kilometres into
// radians by dividing by the Earth's radius.
func RadiusRadians(distanceKm float64) float64 {
	return distanceKm / EarthRadiusKm
}

// CascadeDeleteBootcamp removes a bootcamp together with every course that
// references it. Courses go first so a crash in between cannot leave
// orphaned courses pointing at a missing bootcamp.
func CascadeDeleteBootcamp(ctx context.Context, bootcamps *repository.BootcampRepo, courses *repository.CourseRepo, id primitive.ObjectID) error {
	if err := courses.DeleteByBootcamp(ctx, id); err != nil {
		return err
	}
	return bootcamps.Delete(ctx, id)
}
