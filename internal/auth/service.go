package auth

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/quillcms/quill/internal/config"
	"github.com/quillcms/quill/internal/domain"
	"github.com/quillcms/quill/internal/i18n"
	"github.com/quillcms/quill/internal/mail"
)

var (
	// ErrMissingEmail is a client error: the operation refuses to run any
	// hook or store call without an email.
	ErrMissingEmail = errors.New("email is required")

	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken covers unknown, already-consumed and expired reset
	// tokens alike; callers cannot tell which.
	ErrInvalidToken = errors.New("token is either invalid or has expired")

	ErrWeakPassword = errors.New("password must be at least 8 characters")
)

// UserStore is the slice of the document store the auth operations touch.
// Lookup misses are (nil, nil), never errors.
type UserStore interface {
	FindUserByEmail(ctx context.Context, coll, email string) (*domain.User, error)
	SetResetToken(ctx context.Context, coll string, id primitive.ObjectID, token string, expires time.Time) error
	FindUserByResetToken(ctx context.Context, coll, token string) (*domain.User, error)
	UpdatePassword(ctx context.Context, coll string, id primitive.ObjectID, hash string) error
}

// Service runs the authentication operations for auth-enabled collections.
// All collaborators are passed in explicitly; there is no ambient state.
type Service struct {
	store      UserStore
	sender     mail.Sender
	translator *i18n.Bundle
	log        *zap.Logger

	serverURL  string
	adminRoute string
	jwtSecret  string
	accessTTL  time.Duration

	// emailSync makes ForgotPassword await delivery and surface transport
	// errors instead of dispatching in the background.
	emailSync bool
}

func NewService(store UserStore, sender mail.Sender, tr *i18n.Bundle, logger *zap.Logger, cfg config.Config) *Service {
	return &Service{
		store:      store,
		sender:     sender,
		translator: tr,
		log:        logger,
		serverURL:  cfg.ServerURL,
		adminRoute: cfg.AdminRoute,
		jwtSecret:  cfg.JWTSecret,
		accessTTL:  time.Duration(cfg.AccessTTLMin) * time.Minute,
		emailSync:  cfg.EmailSync,
	}
}
