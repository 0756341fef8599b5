package repo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/quillcms/quill/internal/collection"
)

type Store struct {
	Client *mongo.Client
	DB     *mongo.Database
}

func NewStore(ctx context.Context, uri, dbname string) (*Store, error) {
	cli, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	return &Store{Client: cli, DB: cli.Database(dbname)}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.Client.Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error {
	return s.Client.Disconnect(ctx)
}

// EnsureCollectionIndexes creates the indexes a collection's schema implies:
// a unique index per unique field, and for auth collections a unique email
// index plus a reset token index.
func (s *Store) EnsureCollectionIndexes(ctx context.Context, c *collection.Collection) error {
	coll := s.DB.Collection(c.Slug)

	var models []mongo.IndexModel
	for _, f := range c.Fields {
		if f.Unique {
			models = append(models, mongo.IndexModel{
				Keys:    bson.D{{Key: f.Name, Value: 1}},
				Options: options.Index().SetUnique(true),
			})
		}
	}
	if c.Auth != nil {
		models = append(models,
			mongo.IndexModel{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			mongo.IndexModel{
				Keys:    bson.D{{Key: "reset_password_token", Value: 1}},
				Options: options.Index().SetSparse(true),
			},
		)
	}
	if len(models) == 0 {
		return nil
	}
	_, err := coll.Indexes().CreateMany(ctx, models)
	return err
}
