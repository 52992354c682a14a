// Package validation adapts go-playground/validator to Echo's Validator
// interface. Request DTOs declare their constraints with `validate`
// struct tags and handlers call c.Validate(&req) before touching the
// store.
package validation

import (
	"github.com/go-playground/validator/v10"
)

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	return &Validator{v: validator.New()}
}

// Validate checks i against its struct tags. The returned error carries
// the first violated constraint and is safe to echo back to the client.
func (v *Validator) Validate(i interface{}) error {
	return v.v.Struct(i)
}
