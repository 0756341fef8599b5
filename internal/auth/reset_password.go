package auth

import (
	"context"
	"time"

	"github.com/quillcms/quill/internal/collection"
	"github.com/quillcms/quill/internal/domain"
	"github.com/quillcms/quill/internal/security"
)

// ResetPassword consumes a reset token: it stores the new password hash and
// clears the token fields, so a second use of the same token fails.
func (s *Service) ResetPassword(ctx context.Context, c *collection.Collection, token, newPassword string) (*domain.User, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	if len(newPassword) < 8 {
		return nil, ErrWeakPassword
	}

	u, err := s.store.FindUserByResetToken(ctx, c.Slug, token)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidToken
	}

	hash, err := security.HashPassword(newPassword)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpdatePassword(ctx, c.Slug, u.ID, hash); err != nil {
		return nil, err
	}

	u.PasswordHash = hash
	u.ResetPasswordToken = ""
	u.ResetPasswordExpiration = time.Time{}
	return u, nil
}
