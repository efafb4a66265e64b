// Package sanitize rejects embedded markup in user-submitted text fields.
// The policy strips every tag and attribute; input is accepted only when
// stripping changes nothing, so markup is rejected rather than silently
// rewritten.
package sanitize

import (
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

type Sanitizer struct {
	policy *bluemonday.Policy
}

func New() *Sanitizer {
	return &Sanitizer{policy: bluemonday.StrictPolicy()}
}

// Clean returns the input with all markup stripped.
func (s *Sanitizer) Clean(raw string) string {
	return s.policy.Sanitize(raw)
}

// IsClean reports whether the input contains no markup at all.
func (s *Sanitizer) IsClean(raw string) bool {
	return s.policy.Sanitize(raw) == raw
}

// RegisterNoHTML wires the "nohtml" validation tag onto a validator
// instance. Fields tagged nohtml fail validation when they contain markup.
func (s *Sanitizer) RegisterNoHTML(validate *validator.Validate) error {
	return validate.RegisterValidation("nohtml", func(fl validator.FieldLevel) bool {
		return s.IsClean(fl.Field().String())
	})
}
