package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a document in an auth-enabled collection. Emails are stored
// lower-cased; lookups lower-case their input, so matching is effectively
// case-insensitive.
type User struct {
	ID                      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email                   string             `bson:"email"         json:"email"`
	PasswordHash            string             `bson:"password_hash" json:"-"`
	Name                    string             `bson:"name"          json:"name"`
	ResetPasswordToken      string             `bson:"reset_password_token,omitempty"      json:"-"`
	ResetPasswordExpiration time.Time          `bson:"reset_password_expiration,omitempty" json:"-"`
	CreatedAt               time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt               time.Time          `bson:"updated_at" json:"updated_at"`
}
