package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devcamper/api/internal/model"
)

// CourseRepo persists courses in the "courses" collection.
type CourseRepo struct{ col *mongo.Collection }

func NewCourseRepo(db *mongo.Database) *CourseRepo {
	return &CourseRepo{col: db.Collection("courses")}
}

// Collection exposes the underlying handle for the query package.
func (r *CourseRepo) Collection() *mongo.Collection { return r.col }

// Create inserts a course, filling in the generated id and creation time.
func (r *CourseRepo) Create(ctx context.Context, course *model.Course) error {
	course.ID = primitive.NewObjectID()
	course.CreatedAt = time.Now().UTC()
	_, err := r.col.InsertOne(ctx, course)
	return err
}

// GetByID fetches a single course.
func (r *CourseRepo) GetByID(ctx context.Context, id primitive.ObjectID) (model.Course, error) {
	var course model.Course
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&course)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return course, ErrNotFound
	}
	return course, err
}

// ListByBootcamp returns all courses referencing a bootcamp.
func (r *CourseRepo) ListByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) ([]model.Course, error) {
	cur, err := r.col.Find(ctx, bson.M{"bootcamp": bootcampID})
	if err != nil {
		return nil, err
	}
	out := []model.Course{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies a partial $set update and returns the updated document.
func (r *CourseRepo) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (model.Course, error) {
	var course model.Course
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&course)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return course, ErrNotFound
	}
	return course, err
}

// Delete removes a single course.
func (r *CourseRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByBootcamp removes every course referencing a bootcamp. It is the
// cascade step of bootcamp deletion.
func (r *CourseRepo) DeleteByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"bootcamp": bootcampID})
	return err
}

// AverageTuition computes the mean tuition over a bootcamp's courses with a
// $match/$group pipeline. The second return value is false when the
// bootcamp has no courses left.
func (r *CourseRepo) AverageTuition(ctx context.Context, bootcampID primitive.ObjectID) (float64, bool, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"bootcamp": bootcampID}}},
		{{Key: "$group", Value: bson.M{
			"_id":            "$bootcamp",
			"averageTuition": bson.M{"$avg": "$tuition"},
		}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, false, err
	}
	var rows []struct {
		AverageTuition float64 `bson:"averageTuition"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, false, err
	}
	if len(rows) == 0 {
		return 0, false, nil
	}
	return rows[0].AverageTuition, true, nil
}
