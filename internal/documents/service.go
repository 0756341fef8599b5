package documents

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/quillcms/quill/internal/repo"
)

// ErrNotFound reports an id that resolves to no document. Unlike the auth
// email lookup, document misses ARE surfaced to the caller.
var ErrNotFound = errors.New("document not found")

// Store is the slice of the document store the CRUD operations touch.
type Store interface {
	InsertDocument(ctx context.Context, coll string, doc map[string]any) (string, error)
	FindDocumentByID(ctx context.Context, coll, id string) (map[string]any, error)
	FindDocuments(ctx context.Context, coll string, p repo.ListParams) ([]map[string]any, int64, error)
	UpdateDocument(ctx context.Context, coll, id string, set map[string]any) (map[string]any, error)
	DeleteDocument(ctx context.Context, coll, id string) (map[string]any, error)
}

// Service runs schema-validated, hook-wrapped CRUD over any registered
// collection.
type Service struct {
	store Store
	log   *zap.Logger
}

func NewService(store Store, logger *zap.Logger) *Service {
	return &Service{store: store, log: logger}
}

// ListResult is one page of documents plus the pagination frame the admin
// client renders.
type ListResult struct {
	Docs       []map[string]any `json:"docs"`
	Total      int64            `json:"totalDocs"`
	Page       int64            `json:"page"`
	Limit      int64            `json:"limit"`
	TotalPages int64            `json:"totalPages"`
}
