package documents

import (
	"context"
	"strings"

	"github.com/quillcms/quill/internal/collection"
	"github.com/quillcms/quill/internal/hook"
	"github.com/quillcms/quill/internal/repo"
	"github.com/quillcms/quill/internal/security"
)

// Create validates data against the schema, runs the BeforeChange chain
// (which may replace the payload), inserts, then runs AfterChange.
func (s *Service) Create(ctx context.Context, args collection.ChangeArgs) (map[string]any, error) {
	c := args.Collection
	args.Operation = "create"

	if err := c.ValidateDocument(args.Data, false); err != nil {
		return nil, err
	}

	out, err := hook.Run(ctx, c.Hooks.BeforeChange, &args)
	if err != nil {
		return nil, err
	}
	args = *out

	if c.Auth != nil {
		if err := prepareAuthDoc(args.Data); err != nil {
			return nil, err
		}
	}

	id, err := s.store.InsertDocument(ctx, c.Slug, args.Data)
	if err != nil {
		return nil, err
	}

	doc, err := s.store.FindDocumentByID(ctx, c.Slug, id)
	if err != nil {
		return nil, err
	}

	args.Data = doc
	if _, err := hook.Run(ctx, c.Hooks.AfterChange, &args); err != nil {
		return nil, err
	}
	return sanitize(c, doc), nil
}

// Find returns one page of a collection, shaped for the admin list view.
func (s *Service) Find(ctx context.Context, c *collection.Collection, p repo.ListParams) (ListResult, error) {
	docs, total, err := s.store.FindDocuments(ctx, c.Slug, p)
	if err != nil {
		return ListResult{}, err
	}

	limit := p.Limit
	if limit <= 0 {
		limit = 10
	}
	page := p.Page
	if page <= 0 {
		page = 1
	}

	for i, d := range docs {
		docs[i] = sanitize(c, d)
	}
	return ListResult{
		Docs:       docs,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + limit - 1) / limit,
	}, nil
}

func (s *Service) FindByID(ctx context.Context, c *collection.Collection, id string) (map[string]any, error) {
	doc, err := s.store.FindDocumentByID(ctx, c.Slug, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrNotFound
	}
	return sanitize(c, doc), nil
}

// Update applies a partial change, running BeforeChange with the original
// document attached so hooks can diff.
func (s *Service) Update(ctx context.Context, args collection.ChangeArgs, id string) (map[string]any, error) {
	c := args.Collection
	args.Operation = "update"

	if err := c.ValidateDocument(args.Data, true); err != nil {
		return nil, err
	}

	original, err := s.store.FindDocumentByID(ctx, c.Slug, id)
	if err != nil {
		return nil, err
	}
	if original == nil {
		return nil, ErrNotFound
	}
	args.Original = original

	out, err := hook.Run(ctx, c.Hooks.BeforeChange, &args)
	if err != nil {
		return nil, err
	}
	args = *out

	if c.Auth != nil {
		if err := prepareAuthDoc(args.Data); err != nil {
			return nil, err
		}
	}

	doc, err := s.store.UpdateDocument(ctx, c.Slug, id, args.Data)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrNotFound
	}

	args.Data = doc
	if _, err := hook.Run(ctx, c.Hooks.AfterChange, &args); err != nil {
		return nil, err
	}
	return sanitize(c, doc), nil
}

func (s *Service) Delete(ctx context.Context, c *collection.Collection, req collection.RequestContext, id string) (map[string]any, error) {
	doc, err := s.store.FindDocumentByID(ctx, c.Slug, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrNotFound
	}

	args := collection.DeleteArgs{Collection: c, ID: id, Doc: doc, Req: req}
	if _, err := hook.Run(ctx, c.Hooks.BeforeDelete, &args); err != nil {
		return nil, err
	}

	deleted, err := s.store.DeleteDocument(ctx, c.Slug, id)
	if err != nil {
		return nil, err
	}
	if deleted == nil {
		return nil, ErrNotFound
	}

	args.Doc = deleted
	if _, err := hook.Run(ctx, c.Hooks.AfterDelete, &args); err != nil {
		return nil, err
	}
	return sanitize(c, deleted), nil
}

// prepareAuthDoc hashes an incoming plain password and lower-cases the email
// before an auth document hits the store.
func prepareAuthDoc(data map[string]any) error {
	if email, ok := data["email"].(string); ok {
		data["email"] = strings.ToLower(strings.TrimSpace(email))
	}
	pw, ok := data["password"].(string)
	if !ok {
		return nil
	}
	hash, err := security.HashPassword(pw)
	if err != nil {
		return err
	}
	data["password_hash"] = hash
	delete(data, "password")
	return nil
}

// sanitize strips credential fields from auth documents before they leave
// the API.
func sanitize(c *collection.Collection, doc map[string]any) map[string]any {
	if c.Auth == nil || doc == nil {
		return doc
	}
	delete(doc, "password_hash")
	delete(doc, "reset_password_token")
	delete(doc, "reset_password_expiration")
	return doc
}
