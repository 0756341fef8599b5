package repo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

// ListParams filters and paginates a collection listing. Where matches
// fields by equality; Sort is a field name, "-" prefix for descending.
type ListParams struct {
	Where map[string]any
	Sort  string
	Page  int64
	Limit int64
}

// InsertDocument stores a new document and returns its hex id.
func (s *Store) InsertDocument(ctx context.Context, coll string, doc map[string]any) (string, error) {
	sp, ctx := tracer.StartSpanFromContext(ctx, "mongo.document.insert",
		tracer.Tag("collection", coll),
	)
	defer sp.Finish()

	now := time.Now().UTC()
	doc["created_at"] = now
	doc["updated_at"] = now

	res, err := s.DB.Collection(coll).InsertOne(ctx, doc)
	if err != nil {
		sp.SetTag("error", err)
		return "", err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", mongo.ErrNilDocument
	}
	return oid.Hex(), nil
}

// FindDocumentByID returns (nil, nil) when id is malformed or unknown.
func (s *Store) FindDocumentByID(ctx context.Context, coll, id string) (map[string]any, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var doc bson.M
	err = s.DB.Collection(coll).FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return normalizeID(doc), nil
}

// FindDocuments lists documents with the total count for pagination.
func (s *Store) FindDocuments(ctx context.Context, coll string, p ListParams) ([]map[string]any, int64, error) {
	filter := bson.M{}
	for k, v := range p.Where {
		filter[k] = v
	}

	limit := p.Limit
	if limit <= 0 {
		limit = 10
	}
	page := p.Page
	if page <= 0 {
		page = 1
	}

	findOpts := options.Find().
		SetLimit(limit).
		SetSkip((page - 1) * limit)

	sortBy, order := "created_at", -1
	if p.Sort != "" {
		sortBy, order = p.Sort, 1
		if sortBy[0] == '-' {
			sortBy, order = sortBy[1:], -1
		}
	}
	findOpts.SetSort(bson.D{{Key: sortBy, Value: order}})

	c := s.DB.Collection(coll)
	total, err := c.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	cursor, err := c.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var docs []map[string]any
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, err
		}
		docs = append(docs, normalizeID(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, err
	}
	return docs, total, nil
}

// UpdateDocument applies a partial $set and returns the updated document, or
// (nil, nil) when the id does not resolve.
func (s *Store) UpdateDocument(ctx context.Context, coll, id string, set map[string]any) (map[string]any, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	sp, ctx := tracer.StartSpanFromContext(ctx, "mongo.document.update",
		tracer.Tag("collection", coll),
		tracer.Tag("document_id", id),
	)
	defer sp.Finish()

	update := bson.M{}
	for k, v := range set {
		update[k] = v
	}
	update["updated_at"] = time.Now().UTC()

	res := s.DB.Collection(coll).FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var doc bson.M
	if err := res.Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		sp.SetTag("error", err)
		return nil, err
	}
	return normalizeID(doc), nil
}

// DeleteDocument removes a document and returns it, or (nil, nil) when the
// id does not resolve.
func (s *Store) DeleteDocument(ctx context.Context, coll, id string) (map[string]any, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	sp, ctx := tracer.StartSpanFromContext(ctx, "mongo.document.delete",
		tracer.Tag("collection", coll),
		tracer.Tag("document_id", id),
	)
	defer sp.Finish()

	res := s.DB.Collection(coll).FindOneAndDelete(ctx, bson.M{"_id": oid})
	var doc bson.M
	if err := res.Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		sp.SetTag("error", err)
		return nil, err
	}
	return normalizeID(doc), nil
}

// normalizeID rewrites mongo's _id into a plain hex "id" key so API payloads
// stay driver-agnostic.
func normalizeID(doc bson.M) map[string]any {
	out := map[string]any(doc)
	if oid, ok := out["_id"].(primitive.ObjectID); ok {
		out["id"] = oid.Hex()
		delete(out, "_id")
	}
	return out
}
