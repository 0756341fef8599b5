package auth

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/quillcms/quill/internal/collection"
	"github.com/quillcms/quill/internal/config"
	"github.com/quillcms/quill/internal/domain"
	"github.com/quillcms/quill/internal/i18n"
	"github.com/quillcms/quill/internal/mail"
	"github.com/quillcms/quill/internal/security"
)

// fakeStore keeps users in memory and mirrors the repo's lookup contract:
// a miss is (nil, nil).
type fakeStore struct {
	mu    sync.Mutex
	users map[string]*userRecord

	setTokenCalls int
}

type userRecord struct {
	id         primitive.ObjectID
	email      string
	hash       string
	name       string
	token      string
	expiration time.Time
}

func (u *userRecord) domain() *domain.User {
	return &domain.User{
		ID:                      u.id,
		Email:                   u.email,
		PasswordHash:            u.hash,
		Name:                    u.name,
		ResetPasswordToken:      u.token,
		ResetPasswordExpiration: u.expiration,
	}
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: map[string]*userRecord{}}
}

func (f *fakeStore) add(email, password, name string) *userRecord {
	hash, _ := security.HashPassword(password)
	u := &userRecord{id: primitive.NewObjectID(), email: strings.ToLower(email), hash: hash, name: name}
	f.mu.Lock()
	f.users[u.email] = u
	f.mu.Unlock()
	return u
}

func (f *fakeStore) FindUserByEmail(ctx context.Context, coll, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, nil
	}
	return u.domain(), nil
}

func (f *fakeStore) SetResetToken(ctx context.Context, coll string, id primitive.ObjectID, token string, expires time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setTokenCalls++
	for _, u := range f.users {
		if u.id == id {
			u.token = token
			u.expiration = expires
			return nil
		}
	}
	return nil
}

func (f *fakeStore) FindUserByResetToken(ctx context.Context, coll, token string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.token != "" && u.token == token && u.expiration.After(time.Now()) {
			return u.domain(), nil
		}
	}
	return nil, nil
}

func (f *fakeStore) UpdatePassword(ctx context.Context, coll string, id primitive.ObjectID, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.id == id {
			u.hash = hash
			u.token = ""
			u.expiration = time.Time{}
			return nil
		}
	}
	return nil
}

func (f *fakeStore) byEmail(email string) *userRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[strings.ToLower(email)]
}

// recSender records every message it is asked to deliver.
type recSender struct {
	mu   sync.Mutex
	sent []mail.Message
	err  error
}

func (r *recSender) Send(ctx context.Context, m mail.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, m)
	return nil
}

func (r *recSender) messages() []mail.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]mail.Message, len(r.sent))
	copy(out, r.sent)
	return out
}

func testConfig() config.Config {
	return config.Config{
		ServerURL:     "http://localhost:8080",
		AdminRoute:    "/admin",
		JWTSecret:     "test_secret",
		AccessTTLMin:  15,
		DefaultLocale: "en",
		EmailSync:     true,
	}
}

func newTestService(t *testing.T, store *fakeStore, sender *recSender) *Service {
	t.Helper()
	tr, err := i18n.New("en")
	if err != nil {
		t.Fatalf("i18n: %v", err)
	}
	return NewService(store, sender, tr, zap.NewNop(), testConfig())
}

func authCollection() *collection.Collection {
	return &collection.Collection{
		Slug: "users",
		Fields: []collection.Field{
			{Name: "email", Type: collection.FieldEmail, Required: true, Unique: true},
			{Name: "name", Type: collection.FieldText},
		},
		Auth: &collection.AuthConfig{},
	}
}
