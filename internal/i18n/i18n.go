package i18n

import (
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/es"
	ut "github.com/go-playground/universal-translator"
)

// Bundle resolves user-facing strings (email subjects, error messages) for
// the locales the API serves. Unknown locales fall back to the default.
type Bundle struct {
	uni      *ut.UniversalTranslator
	fallback string
}

var catalogs = map[string]map[string]string{
	"en": {
		"authentication:resetYourPassword": "Reset your password",
		"error:emailIsRequired":            "Email is required.",
		"error:tokenInvalidOrExpired":      "Token is either invalid or has expired.",
		"error:invalidCredentials":         "The email or password provided is incorrect.",
		"error:notFound":                   "The requested resource was not found.",
		"general:success":                  "Success",
	},
	"es": {
		"authentication:resetYourPassword": "Restablezca su contraseña",
		"error:emailIsRequired":            "Se requiere el correo electrónico.",
		"error:tokenInvalidOrExpired":      "El token no es válido o ha expirado.",
		"error:invalidCredentials":         "El correo electrónico o la contraseña son incorrectos.",
		"error:notFound":                   "No se encontró el recurso solicitado.",
		"general:success":                  "Éxito",
	},
}

func New(fallback string) (*Bundle, error) {
	enLoc := en.New()
	uni := ut.New(enLoc, enLoc, es.New())
	for locale, msgs := range catalogs {
		tr, found := uni.GetTranslator(locale)
		if !found {
			continue
		}
		for key, text := range msgs {
			if err := tr.Add(key, text, true); err != nil {
				return nil, err
			}
		}
	}
	return &Bundle{uni: uni, fallback: fallback}, nil
}

// T translates key for locale, falling back to the bundle default and
// finally to the key itself so a missing entry never breaks a response.
func (b *Bundle) T(locale, key string, params ...string) string {
	tr, found := b.uni.GetTranslator(locale)
	if !found {
		tr, _ = b.uni.GetTranslator(b.fallback)
	}
	if s, err := tr.T(key, params...); err == nil {
		return s
	}
	if ftr, found := b.uni.GetTranslator(b.fallback); found {
		if s, err := ftr.T(key, params...); err == nil {
			return s
		}
	}
	return key
}

// Supported reports whether the bundle carries a catalog for locale.
func (b *Bundle) Supported(locale string) bool {
	_, ok := catalogs[locale]
	return ok
}
