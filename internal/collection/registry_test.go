package collection

import "testing"

func TestRegisterRejectsBadSlug(t *testing.T) {
	r := NewRegistry()
	for _, slug := range []string{"", "Pages", "1pages", "pages_v2"} {
		if err := r.Register(&Collection{Slug: slug}); err == nil {
			t.Fatalf("slug %q should be rejected", slug)
		}
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&Collection{Slug: "pages"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := r.Register(&Collection{Slug: "pages"}); err == nil {
		t.Fatal("duplicate slug should be rejected")
	}

	err := r.Register(&Collection{
		Slug: "posts",
		Fields: []Field{
			{Name: "title", Type: FieldText},
			{Name: "title", Type: FieldText},
		},
	})
	if err == nil {
		t.Fatal("duplicate field name should be rejected")
	}
}

func TestAllKeepsRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	for _, slug := range []string{"users", "pages", "media"} {
		if err := r.Register(&Collection{Slug: slug}); err != nil {
			t.Fatalf("register %s: %v", slug, err)
		}
	}

	all := r.All()
	if len(all) != 3 {
		t.Fatalf("got %d collections, want 3", len(all))
	}
	for i, want := range []string{"users", "pages", "media"} {
		if all[i].Slug != want {
			t.Fatalf("position %d: got %s, want %s", i, all[i].Slug, want)
		}
	}

	if _, ok := r.Get("pages"); !ok {
		t.Fatal("Get(pages) should find the collection")
	}
	if _, ok := r.Get("missing"); ok {
		t.Fatal("Get(missing) should miss")
	}
}
