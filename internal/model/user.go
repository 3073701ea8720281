package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user account may hold.  RoleAdmin is never assignable through the
// public register endpoint; it must be set directly or via the admin API.
const (
	RoleUser      = "user"
	RolePublisher = "publisher"
	RoleAdmin     = "admin"
)

// User represents an account.  Password holds the bcrypt hash and is
// excluded from JSON output; repository reads for non-auth purposes project
// it away as well.  ResetPasswordToken stores only the SHA-256 digest of
// the raw reset token that was mailed out.
type User struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name                string             `bson:"name" json:"name"`
	Email               string             `bson:"email" json:"email"`
	Role                string             `bson:"role" json:"role"`
	Password            string             `bson:"password" json:"-"`
	ResetPasswordToken  string             `bson:"resetPasswordToken,omitempty" json:"-"`
	ResetPasswordExpire time.Time          `bson:"resetPasswordExpire,omitempty" json:"-"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
}
