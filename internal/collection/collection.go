package collection

import (
	"time"

	"github.com/quillcms/quill/internal/domain"
	"github.com/quillcms/quill/internal/hook"
)

type FieldType string

const (
	FieldText     FieldType = "text"
	FieldEmail    FieldType = "email"
	FieldNumber   FieldType = "number"
	FieldCheckbox FieldType = "checkbox"
	FieldDate     FieldType = "date"
)

// Field describes one attribute of a collection's documents.
type Field struct {
	Name      string
	Type      FieldType
	Required  bool
	Unique    bool
	Localized bool
}

// Labels holds display names keyed by locale, e.g. {"en": "Pages"}.
type Labels struct {
	Singular map[string]string
	Plural   map[string]string
}

// Admin carries the metadata the admin client uses to render a collection:
// which field titles a row, which columns show by default, nav grouping.
type Admin struct {
	UseAsTitle     string
	DefaultColumns []string
	Group          string
}

// AuthConfig marks a collection as an auth collection. The generate
// overrides, when set, replace the default reset email body and subject.
type AuthConfig struct {
	// TokenExpiration is the reset token lifetime. Zero means one hour.
	TokenExpiration time.Duration

	GenerateEmailHTML    func(ctx EmailContext) (string, error)
	GenerateEmailSubject func(ctx EmailContext) (string, error)
}

// EmailContext is handed to the per-collection email generators.
type EmailContext struct {
	Req   RequestContext
	Token string
	User  *domain.User
}

// RequestContext is the request-scoped bundle threaded through operations
// and hooks.
type RequestContext struct {
	Locale    string
	RequestID string
	RemoteIP  string
}

// ForgotPasswordData is the client payload of the forgot-password operation.
type ForgotPasswordData struct {
	Email string
}

// ForgotPasswordArgs is the argument bundle threaded through the
// forgot-password hook chain. A BeforeOperation hook may return a replacement
// bundle; the latest returned value wins.
type ForgotPasswordArgs struct {
	Collection   *Collection
	Data         ForgotPasswordData
	DisableEmail bool
	Expiration   time.Time
	Req          RequestContext
}

// ChangeArgs is the bundle for document create/update hooks.
type ChangeArgs struct {
	Collection *Collection
	Operation  string // "create" or "update"
	Data       map[string]any
	Original   map[string]any // previous document on update, nil on create
	Req        RequestContext
}

// DeleteArgs is the bundle for document delete hooks.
type DeleteArgs struct {
	Collection *Collection
	ID         string
	Doc        map[string]any
	Req        RequestContext
}

// Hooks are ordered per-collection lifecycle callbacks. Within each list,
// execution is strictly sequential and the first error aborts the chain.
type Hooks struct {
	// Auth operation hooks.
	BeforeOperation     []hook.Hook[ForgotPasswordArgs]
	AfterForgotPassword []hook.Hook[ForgotPasswordArgs]
	// AfterOperation may replace the operation result (the reset token).
	AfterOperation []hook.Hook[string]

	// Document lifecycle hooks.
	BeforeChange []hook.Hook[ChangeArgs]
	AfterChange  []hook.Hook[ChangeArgs]
	BeforeDelete []hook.Hook[DeleteArgs]
	AfterDelete  []hook.Hook[DeleteArgs]
}

// Collection is the declarative configuration of one document type.
type Collection struct {
	Slug   string
	Labels Labels
	Fields []Field
	Admin  Admin
	Auth   *AuthConfig
	Hooks  Hooks
}

// ResetTokenTTL returns the configured reset token lifetime, defaulting to
// one hour.
func (c *Collection) ResetTokenTTL() time.Duration {
	if c.Auth != nil && c.Auth.TokenExpiration > 0 {
		return c.Auth.TokenExpiration
	}
	return time.Hour
}

func (c *Collection) Field(name string) (Field, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}
