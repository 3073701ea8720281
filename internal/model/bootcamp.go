package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Careers lists the accepted career categories for a bootcamp.  The
// validator middleware checks incoming payloads against this set.
var Careers = []string{
	"Web Development",
	"Mobile Development",
	"UI/UX",
	"Data Science",
	"Business",
	"Other",
}

// ValidCareer reports whether s is one of the accepted career categories.
func ValidCareer(s string) bool {
	for _, c := range Careers {
		if c == s {
			return true
		}
	}
	return false
}

// Location is a GeoJSON Point enriched with the address components the
// geocoder resolved.  Coordinates are stored [longitude, latitude] as
// MongoDB expects for 2dsphere queries.
type Location struct {
	Type             string    `bson:"type" json:"type"`
	Coordinates      []float64 `bson:"coordinates" json:"coordinates"`
	FormattedAddress string    `bson:"formattedAddress,omitempty" json:"formattedAddress,omitempty"`
	Street           string    `bson:"street,omitempty" json:"street,omitempty"`
	City             string    `bson:"city,omitempty" json:"city,omitempty"`
	State            string    `bson:"state,omitempty" json:"state,omitempty"`
	Zipcode          string    `bson:"zipcode,omitempty" json:"zipcode,omitempty"`
	Country          string    `bson:"country,omitempty" json:"country,omitempty"`
}

// Bootcamp is the primary resource of the API.  The address the client
// submits is never persisted; it is resolved into Location at save time.
// Slug and AverageCost are likewise derived fields: the slug from the name
// and the average cost from the tuition of the bootcamp's courses.
type Bootcamp struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name          string             `bson:"name" json:"name"`
	Slug          string             `bson:"slug" json:"slug"`
	Description   string             `bson:"description" json:"description"`
	Website       string             `bson:"website,omitempty" json:"website,omitempty"`
	Phone         string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Email         string             `bson:"email,omitempty" json:"email,omitempty"`
	Location      *Location          `bson:"location,omitempty" json:"location,omitempty"`
	Careers       []string           `bson:"careers" json:"careers"`
	AverageRating float64            `bson:"averageRating,omitempty" json:"averageRating,omitempty"`
	AverageCost   int                `bson:"averageCost,omitempty" json:"averageCost,omitempty"`
	Photo         string             `bson:"photo" json:"photo"`
	Housing       bool               `bson:"housing" json:"housing"`
	JobAssistance bool               `bson:"jobAssistance" json:"jobAssistance"`
	AcceptGi      bool               `bson:"acceptGi" json:"acceptGi"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	User          primitive.ObjectID `bson:"user" json:"user"`

	// Courses is populated on single-bootcamp reads; it is never stored.
	Courses []Course `bson:"-" json:"courses,omitempty"`
}

// DefaultPhoto is the placeholder filename used until a photo is uploaded.
const DefaultPhoto = "no-photo.jpg"
