package collection

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidationError marks a schema violation so the API layer can answer with
// a 400 instead of a 500.
type ValidationError struct{ msg string }

func (e *ValidationError) Error() string { return e.msg }

func errValidation(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// ValidateDocument checks data against the collection's field schema.
// With partial set (updates), missing required fields are allowed; present
// values are still type-checked.
func (c *Collection) ValidateDocument(data map[string]any, partial bool) error {
	for key := range data {
		if key == "password" && c.Auth != nil {
			continue
		}
		if _, ok := c.Field(key); !ok {
			return errValidation("field %q is not part of collection %q", key, c.Slug)
		}
	}

	for _, f := range c.Fields {
		v, present := data[f.Name]
		if !present || v == nil {
			if f.Required && !partial {
				return errValidation("field %q is required", f.Name)
			}
			continue
		}
		if f.Localized {
			byLocale, ok := v.(map[string]any)
			if !ok {
				return errValidation("localized field %q must be an object keyed by locale", f.Name)
			}
			for locale, lv := range byLocale {
				if err := checkValue(f, lv); err != nil {
					return errValidation("field %q (%s): %v", f.Name, locale, err)
				}
			}
			continue
		}
		if err := checkValue(f, v); err != nil {
			return errValidation("field %q: %v", f.Name, err)
		}
	}
	return nil
}

func checkValue(f Field, v any) error {
	switch f.Type {
	case FieldText:
		if _, ok := v.(string); !ok {
			return errValidation("expected a string")
		}
	case FieldEmail:
		s, ok := v.(string)
		if !ok {
			return errValidation("expected a string")
		}
		if err := validate.Var(s, "required,email"); err != nil {
			return errValidation("%q is not a valid email address", s)
		}
	case FieldNumber:
		switch v.(type) {
		case float64, float32, int, int32, int64:
		default:
			return errValidation("expected a number")
		}
	case FieldCheckbox:
		if _, ok := v.(bool); !ok {
			return errValidation("expected a boolean")
		}
	case FieldDate:
		switch d := v.(type) {
		case time.Time:
		case string:
			if _, err := time.Parse(time.RFC3339, d); err != nil {
				return errValidation("expected an RFC 3339 date")
			}
		default:
			return errValidation("expected a date")
		}
	default:
		return errValidation("unknown field type %q", f.Type)
	}
	return nil
}
