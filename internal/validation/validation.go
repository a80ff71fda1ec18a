// Package validation wraps a single shared validator instance with the
// custom tags used by request payloads.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	once sync.Once
	v    *validator.Validate
)

// FieldError describes one rejected field, keyed by its JSON name.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// Error is returned when a payload fails validation.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+":"+f.Rule)
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Has reports whether field was rejected.
func (e *Error) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

func instance() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		_ = v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
			return IsObjectID(fl.Field().String())
		})
	})
	return v
}

// Validator exposes the shared instance, e.g. to plug into gin's binding.
func Validator() *validator.Validate { return instance() }

// Struct validates s and flattens validator errors into *Error.
func Struct(s any) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}
	out := &Error{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		// drop the top-level struct name from the namespace
		ns := fe.Namespace()
		if i := strings.IndexByte(ns, '.'); i >= 0 {
			ns = ns[i+1:]
		}
		out.Fields = append(out.Fields, FieldError{Field: ns, Rule: fe.Tag()})
	}
	return out
}

// IsObjectID reports whether s is a 24-hex document identifier.
func IsObjectID(s string) bool {
	return primitive.IsValidObjectID(s)
}
