package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/quillcms/quill/internal/auth"
	"github.com/quillcms/quill/internal/collection"
	"github.com/quillcms/quill/internal/config"
	"github.com/quillcms/quill/internal/documents"
	"github.com/quillcms/quill/internal/domain"
	"github.com/quillcms/quill/internal/i18n"
	"github.com/quillcms/quill/internal/mail"
	"github.com/quillcms/quill/internal/queue"
	"github.com/quillcms/quill/internal/repo"
)

func init() { gin.SetMode(gin.TestMode) }

// memStore backs both the auth and the document operations with one
// in-memory document table, the way the mongo store does.
type memStore struct {
	mu   sync.Mutex
	docs map[string]map[string]map[string]any // coll -> id -> doc
}

func newMemStore() *memStore {
	return &memStore{docs: map[string]map[string]map[string]any{}}
}

func clone(doc map[string]any) map[string]any {
	if doc == nil {
		return nil
	}
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}

func (m *memStore) InsertDocument(ctx context.Context, coll string, doc map[string]any) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := primitive.NewObjectID().Hex()
	now := time.Now().UTC()
	stored := clone(doc)
	stored["id"] = id
	stored["created_at"] = now
	stored["updated_at"] = now
	if m.docs[coll] == nil {
		m.docs[coll] = map[string]map[string]any{}
	}
	m.docs[coll][id] = stored
	return id, nil
}

func (m *memStore) FindDocumentByID(ctx context.Context, coll, id string) (map[string]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return clone(m.docs[coll][id]), nil
}

func (m *memStore) FindDocuments(ctx context.Context, coll string, p repo.ListParams) ([]map[string]any, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var all []map[string]any
	for _, d := range m.docs[coll] {
		match := true
		for k, v := range p.Where {
			if d[k] != v {
				match = false
				break
			}
		}
		if match {
			all = append(all, clone(d))
		}
	}

	total := int64(len(all))
	limit := p.Limit
	if limit <= 0 {
		limit = 10
	}
	page := p.Page
	if page <= 0 {
		page = 1
	}
	skip := (page - 1) * limit
	if skip >= total {
		return nil, total, nil
	}
	end := skip + limit
	if end > total {
		end = total
	}
	return all[skip:end], total, nil
}

func (m *memStore) UpdateDocument(ctx context.Context, coll, id string, set map[string]any) (map[string]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.docs[coll][id]
	if !ok {
		return nil, nil
	}
	for k, v := range set {
		d[k] = v
	}
	d["updated_at"] = time.Now().UTC()
	return clone(d), nil
}

func (m *memStore) DeleteDocument(ctx context.Context, coll, id string) (map[string]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.docs[coll][id]
	if !ok {
		return nil, nil
	}
	delete(m.docs[coll], id)
	return clone(d), nil
}

func (m *memStore) userFromDoc(d map[string]any) *domain.User {
	oid, err := primitive.ObjectIDFromHex(d["id"].(string))
	if err != nil {
		return nil
	}
	u := &domain.User{ID: oid}
	u.Email, _ = d["email"].(string)
	u.PasswordHash, _ = d["password_hash"].(string)
	u.Name, _ = d["name"].(string)
	u.ResetPasswordToken, _ = d["reset_password_token"].(string)
	u.ResetPasswordExpiration, _ = d["reset_password_expiration"].(time.Time)
	return u
}

func (m *memStore) FindUserByEmail(ctx context.Context, coll, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, d := range m.docs[coll] {
		if d["email"] == email {
			return m.userFromDoc(d), nil
		}
	}
	return nil, nil
}

func (m *memStore) SetResetToken(ctx context.Context, coll string, id primitive.ObjectID, token string, expires time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d, ok := m.docs[coll][id.Hex()]; ok {
		d["reset_password_token"] = token
		d["reset_password_expiration"] = expires
	}
	return nil
}

func (m *memStore) FindUserByResetToken(ctx context.Context, coll, token string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.docs[coll] {
		tok, _ := d["reset_password_token"].(string)
		exp, _ := d["reset_password_expiration"].(time.Time)
		if tok != "" && tok == token && exp.After(time.Now()) {
			return m.userFromDoc(d), nil
		}
	}
	return nil, nil
}

func (m *memStore) UpdatePassword(ctx context.Context, coll string, id primitive.ObjectID, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d, ok := m.docs[coll][id.Hex()]; ok {
		d["password_hash"] = hash
		delete(d, "reset_password_token")
		delete(d, "reset_password_expiration")
	}
	return nil
}

// recSender records messages instead of delivering them.
type recSender struct {
	mu   sync.Mutex
	sent []mail.Message
}

func (r *recSender) Send(ctx context.Context, m mail.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, m)
	return nil
}

func testRegistry(t *testing.T) *collection.Registry {
	t.Helper()
	reg := collection.NewRegistry()
	users := &collection.Collection{
		Slug: "users",
		Fields: []collection.Field{
			{Name: "email", Type: collection.FieldEmail, Required: true, Unique: true},
			{Name: "name", Type: collection.FieldText},
		},
		Auth: &collection.AuthConfig{},
	}
	pages := &collection.Collection{
		Slug: "pages",
		Fields: []collection.Field{
			{Name: "title", Type: collection.FieldText, Required: true},
			{Name: "slug", Type: collection.FieldText, Required: true, Unique: true},
			{Name: "published", Type: collection.FieldCheckbox},
		},
	}
	for _, c := range []*collection.Collection{users, pages} {
		if err := reg.Register(c); err != nil {
			t.Fatalf("register %s: %v", c.Slug, err)
		}
	}
	return reg
}

type testApp struct {
	router *gin.Engine
	store  *memStore
	sender *recSender
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	cfg := config.Config{
		ServerURL:     "http://localhost:8080",
		AdminRoute:    "/admin",
		JWTSecret:     "test_secret",
		AccessTTLMin:  15,
		DefaultLocale: "en",
		EmailSync:     true,
	}

	tr, err := i18n.New(cfg.DefaultLocale)
	if err != nil {
		t.Fatalf("i18n: %v", err)
	}

	store := newMemStore()
	sender := &recSender{}
	logger := zap.NewNop()

	h := NewHandler(
		testRegistry(t),
		auth.NewService(store, sender, tr, logger, cfg),
		documents.NewService(store, logger),
		nil, // no mongo behind the health check
		nil, // no redis, rate limiting is skipped
		queue.NewNoop(),
		tr,
		cfg,
		logger,
	)
	return &testApp{router: NewRouter(h), store: store, sender: sender}
}

func (a *testApp) do(t *testing.T, method, path string, body any, header map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("response %q is not JSON: %v", w.Body.String(), err)
		}
	}
	return w, out
}

func wantStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, want, w.Body.String())
	}
}
