package auth

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/quillcms/quill/internal/collection"
	"github.com/quillcms/quill/internal/hook"
	"github.com/quillcms/quill/internal/security"
)

// ForgotPassword issues a reset token for the user matching args.Data.Email
// and dispatches the reset email unless args.DisableEmail is set.
//
// An unknown email returns ("", nil): the operation never reveals whether an
// address is registered. The only persisted mutation is the single token
// write, so no failure leaves partial state behind.
func (s *Service) ForgotPassword(ctx context.Context, args collection.ForgotPasswordArgs) (string, error) {
	c := args.Collection
	if args.Data.Email == "" {
		return "", ErrMissingEmail
	}

	out, err := hook.Run(ctx, c.Hooks.BeforeOperation, &args)
	if err != nil {
		return "", err
	}
	args = *out

	// hooks may have rewritten the payload
	if args.Data.Email == "" {
		return "", ErrMissingEmail
	}

	u, err := s.store.FindUserByEmail(ctx, c.Slug, args.Data.Email)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", nil
	}

	token, err := security.NewResetToken()
	if err != nil {
		return "", err
	}

	expiration := args.Expiration
	if expiration.IsZero() {
		expiration = time.Now().Add(c.ResetTokenTTL())
	}

	if err := s.store.SetResetToken(ctx, c.Slug, u.ID, token, expiration); err != nil {
		return "", err
	}
	u.ResetPasswordToken = token
	u.ResetPasswordExpiration = expiration

	if !args.DisableEmail {
		msg, err := s.resetEmail(c, args.Req, token, u)
		if err != nil {
			return "", err
		}
		if s.emailSync {
			if err := s.sender.Send(ctx, msg); err != nil {
				return "", err
			}
		} else {
			bg := context.WithoutCancel(ctx)
			go func() {
				if err := s.sender.Send(bg, msg); err != nil {
					s.log.Error("reset email dispatch failed",
						zap.String("collection", c.Slug),
						zap.String("request_id", args.Req.RequestID),
						zap.Error(err))
				}
			}()
		}
	}

	if _, err := hook.Run(ctx, c.Hooks.AfterForgotPassword, &args); err != nil {
		return "", err
	}

	res, err := hook.Run(ctx, c.Hooks.AfterOperation, &token)
	if err != nil {
		return "", err
	}
	return *res, nil
}
