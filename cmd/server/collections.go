package main

import (
	"time"

	"github.com/quillcms/quill/internal/collection"
)

// registerCollections declares the document types this deployment serves.
func registerCollections() *collection.Registry {
	reg := collection.NewRegistry()

	users := &collection.Collection{
		Slug: "users",
		Labels: collection.Labels{
			Singular: map[string]string{"en": "User", "es": "Usuario"},
			Plural:   map[string]string{"en": "Users", "es": "Usuarios"},
		},
		Fields: []collection.Field{
			{Name: "email", Type: collection.FieldEmail, Required: true, Unique: true},
			{Name: "name", Type: collection.FieldText},
		},
		Admin: collection.Admin{
			UseAsTitle:     "email",
			DefaultColumns: []string{"email", "name"},
			Group:          "Access",
		},
		Auth: &collection.AuthConfig{
			TokenExpiration: time.Hour,
		},
	}

	pages := &collection.Collection{
		Slug: "pages",
		Labels: collection.Labels{
			Singular: map[string]string{"en": "Page", "es": "Página"},
			Plural:   map[string]string{"en": "Pages", "es": "Páginas"},
		},
		Fields: []collection.Field{
			{Name: "title", Type: collection.FieldText, Required: true, Localized: true},
			{Name: "slug", Type: collection.FieldText, Required: true, Unique: true},
			{Name: "body", Type: collection.FieldText, Localized: true},
			{Name: "published", Type: collection.FieldCheckbox},
			{Name: "published_at", Type: collection.FieldDate},
		},
		Admin: collection.Admin{
			UseAsTitle:     "title",
			DefaultColumns: []string{"title", "slug", "published"},
			Group:          "Content",
		},
	}

	for _, c := range []*collection.Collection{users, pages} {
		if err := reg.Register(c); err != nil {
			panic(err)
		}
	}
	return reg
}
