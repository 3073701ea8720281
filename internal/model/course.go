package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Skill levels a course may require.
const (
	SkillBeginner     = "beginner"
	SkillIntermediate = "intermediate"
	SkillAdvanced     = "advanced"
)

// ValidSkill reports whether s is an accepted minimum skill level.
func ValidSkill(s string) bool {
	return s == SkillBeginner || s == SkillIntermediate || s == SkillAdvanced
}

// Course is an offering that belongs to exactly one bootcamp.  Weeks is a
// string to match the original data shape (e.g. "8").
type Course struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title                string             `bson:"title" json:"title"`
	Description          string             `bson:"description" json:"description"`
	Weeks                string             `bson:"weeks" json:"weeks"`
	Tuition              float64            `bson:"tuition" json:"tuition"`
	MinimumSkill         string             `bson:"minimumSkill" json:"minimumSkill"`
	ScholarshipAvailable bool               `bson:"scholarshipAvailable" json:"scholarshipAvailable"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
	Bootcamp             primitive.ObjectID `bson:"bootcamp" json:"bootcamp"`
	User                 primitive.ObjectID `bson:"user" json:"user"`
}
