package i18n

import "testing"

func TestTranslate(t *testing.T) {
	b, err := New("en")
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if got := b.T("en", "authentication:resetYourPassword"); got != "Reset your password" {
		t.Fatalf("en: got %q", got)
	}
	if got := b.T("es", "authentication:resetYourPassword"); got != "Restablezca su contraseña" {
		t.Fatalf("es: got %q", got)
	}
}

func TestTranslateFallsBack(t *testing.T) {
	b, err := New("en")
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	// unknown locale falls back to the default
	if got := b.T("fr", "general:success"); got != "Success" {
		t.Fatalf("fr fallback: got %q", got)
	}
	// unknown key falls back to the key itself
	if got := b.T("en", "error:doesNotExist"); got != "error:doesNotExist" {
		t.Fatalf("missing key: got %q", got)
	}
}

func TestSupported(t *testing.T) {
	b, err := New("en")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if !b.Supported("es") {
		t.Fatal("es should be supported")
	}
	if b.Supported("de") {
		t.Fatal("de should not be supported")
	}
}
