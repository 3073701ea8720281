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

// BootcampRepo persists bootcamps in the "bootcamps" collection.
type BootcampRepo struct{ col *mongo.Collection }

func NewBootcampRepo(db *mongo.Database) *BootcampRepo {
	return &BootcampRepo{col: db.Collection("bootcamps")}
}

// Collection exposes the underlying handle for the query package.
func (r *BootcampRepo) Collection() *mongo.Collection { return r.col }

// Create inserts a bootcamp, filling in the generated id, creation time and
// placeholder photo.
func (r *BootcampRepo) Create(ctx context.Context, b *model.Bootcamp) error {
	b.ID = primitive.NewObjectID()
	b.CreatedAt = time.Now().UTC()
	if b.Photo == "" {
		b.Photo = model.DefaultPhoto
	}
	if _, err := r.col.InsertOne(ctx, b); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateName
		}
		return err
	}
	return nil
}

// GetByID fetches a single bootcamp.
func (r *BootcampRepo) GetByID(ctx context.Context, id primitive.ObjectID) (model.Bootcamp, error) {
	var b model.Bootcamp
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return b, ErrNotFound
	}
	return b, err
}

// FindOneByOwner returns the bootcamp published by the given user, or
// ErrNotFound when the user has not published one yet.
func (r *BootcampRepo) FindOneByOwner(ctx context.Context, owner primitive.ObjectID) (model.Bootcamp, error) {
	var b model.Bootcamp
	err := r.col.FindOne(ctx, bson.M{"user": owner}).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return b, ErrNotFound
	}
	return b, err
}

// FindByIDs fetches name and description for a set of bootcamps, keyed by
// id. Used to embed the owning bootcamp into course listings.
func (r *BootcampRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]bson.M, error) {
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"name": 1, "description": 1}))
	if err != nil {
		return nil, err
	}
	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make(map[primitive.ObjectID]bson.M, len(docs))
	for _, d := range docs {
		if id, ok := d["_id"].(primitive.ObjectID); ok {
			out[id] = d
		}
	}
	return out, nil
}

// Update applies a partial $set update and returns the updated document.
func (r *BootcampRepo) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (model.Bootcamp, error) {
	var b model.Bootcamp
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return b, ErrNotFound
	}
	if err != nil && mongo.IsDuplicateKeyError(err) {
		return b, ErrDuplicateName
	}
	return b, err
}

// Delete removes a bootcamp document. Course cascade is the caller's job.
func (r *BootcampRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// WithinRadius returns bootcamps whose location lies inside the spherical
// cap centred at (lng, lat) with the given angular radius (radians).
func (r *BootcampRepo) WithinRadius(ctx context.Context, lng, lat, radius float64) ([]model.Bootcamp, error) {
	filter := bson.M{
		"location": bson.M{
			"$geoWithin": bson.M{
				"$centerSphere": bson.A{bson.A{lng, lat}, radius},
			},
		},
	}
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := []model.Bootcamp{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetAverageCost stores the derived average course cost.
func (r *BootcampRepo) SetAverageCost(ctx context.Context, id primitive.ObjectID, cost int) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"averageCost": cost}})
	return err
}

// UnsetAverageCost clears the derived cost once a bootcamp has no courses.
func (r *BootcampRepo) UnsetAverageCost(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$unset": bson.M{"averageCost": ""}})
	return err
}

// SetPhoto records the uploaded photo filename.
func (r *BootcampRepo) SetPhoto(ctx context.Context, id primitive.ObjectID, filename string) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"photo": filename}})
	return err
}
