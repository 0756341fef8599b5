package repo

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"

	"github.com/quillcms/quill/internal/domain"
)

// FindUserByEmail looks a user up by case-insensitive email. Returns
// (nil, nil) when no user matches.
func (s *Store) FindUserByEmail(ctx context.Context, coll, email string) (*domain.User, error) {
	var u domain.User
	err := s.DB.Collection(coll).
		FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))}).
		Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// SetResetToken persists the reset token and its expiration on the user
// document in a single update. Concurrent requests race last-writer-wins,
// which is the intended behavior: only the newest token stays valid.
func (s *Store) SetResetToken(ctx context.Context, coll string, id primitive.ObjectID, token string, expires time.Time) error {
	sp, ctx := tracer.StartSpanFromContext(ctx, "mongo.user.set_reset_token",
		tracer.Tag("collection", coll),
		tracer.Tag("user_id", id.Hex()),
	)
	defer sp.Finish()

	_, err := s.DB.Collection(coll).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"reset_password_token":      token,
			"reset_password_expiration": expires.UTC(),
			"updated_at":                time.Now().UTC(),
		}},
	)
	if err != nil {
		sp.SetTag("error", err)
	}
	return err
}

// FindUserByResetToken returns the user holding an unexpired token, or
// (nil, nil) when the token is unknown or past its expiration.
func (s *Store) FindUserByResetToken(ctx context.Context, coll, token string) (*domain.User, error) {
	var u domain.User
	err := s.DB.Collection(coll).FindOne(ctx, bson.M{
		"reset_password_token":      token,
		"reset_password_expiration": bson.M{"$gt": time.Now().UTC()},
	}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdatePassword stores the new hash and clears the reset token fields, which
// makes the token single-use.
func (s *Store) UpdatePassword(ctx context.Context, coll string, id primitive.ObjectID, hash string) error {
	sp, ctx := tracer.StartSpanFromContext(ctx, "mongo.user.update_password",
		tracer.Tag("collection", coll),
		tracer.Tag("user_id", id.Hex()),
	)
	defer sp.Finish()

	_, err := s.DB.Collection(coll).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$set": bson.M{
				"password_hash": hash,
				"updated_at":    time.Now().UTC(),
			},
			"$unset": bson.M{
				"reset_password_token":      "",
				"reset_password_expiration": "",
			},
		},
	)
	if err != nil {
		sp.SetTag("error", err)
	}
	return err
}
