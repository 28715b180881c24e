// Package validation wraps go-playground/validator with Turkish messages and
// reports failures as *apperr.ValidationError keyed by JSON field path.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/tr"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	tr_translations "github.com/go-playground/validator/v10/translations/tr"

	"github.com/madhava-poojari/swimschool-api/internal/apperr"
)

var hhmmRegex = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

func New() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	locale := tr.New()
	trans, _ := ut.New(locale, locale).GetTranslator("tr")
	_ = tr_translations.RegisterDefaultTranslations(validate, trans)

	_ = validate.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return hhmmRegex.MatchString(fl.Field().String())
	})
	registerTranslation(validate, trans, "hhmm", "{0} geçerli bir saat olmalı (SS:DD)")
	registerTranslation(validate, trans, "required", "{0} alanı zorunludur", true)

	return &Validator{validate: validate, trans: trans}
}

func registerTranslation(validate *validator.Validate, trans ut.Translator, tag, text string, override ...bool) {
	ovrd := len(override) > 0 && override[0]
	_ = validate.RegisterTranslation(
		tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Struct validates s. A nil return means s is valid.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	out := &apperr.ValidationError{}
	for _, fe := range fieldErrs {
		out.Add(fieldPath(fe), fe.Translate(v.trans))
	}
	return out
}

// fieldPath drops the root struct name: "RegisterInput.emergencyContact.name" -> "emergencyContact.name".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}
