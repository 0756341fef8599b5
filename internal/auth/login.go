package auth

import (
	"context"
	"strings"

	"github.com/quillcms/quill/internal/collection"
	"github.com/quillcms/quill/internal/domain"
	"github.com/quillcms/quill/internal/security"
)

// Login verifies credentials against an auth collection and mints an access
// token. Wrong email and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, c *collection.Collection, email, password string) (string, *domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	u, err := s.store.FindUserByEmail(ctx, c.Slug, email)
	if err != nil {
		return "", nil, err
	}
	if u == nil || !security.CheckPassword(u.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}

	tok, err := security.MakeAccess(s.jwtSecret, u.ID.Hex(), u.Email, c.Slug, s.accessTTL)
	if err != nil {
		return "", nil, err
	}
	return tok, u, nil
}

// User resolves the authenticated user behind a token's email claim.
func (s *Service) User(ctx context.Context, c *collection.Collection, email string) (*domain.User, error) {
	return s.store.FindUserByEmail(ctx, c.Slug, email)
}
