// Package validation configures the form validator: JSON field names, English messages and
// per-form message overrides.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	appErrors "github.com/ec-club-bing/website/pkg/errors"
)

const notBlankTag = "notblank"

// MessageProvider is implemented by forms that carry their own field messages, keyed by JSON field name.
type MessageProvider interface {
	FieldMessages() map[string]string
}

var translator ut.Translator

func init() {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ = uni.GetTranslator("en")
}

// New returns a validator reporting JSON field names, with English default messages and the notblank tag.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = en_translations.RegisterDefaultTranslations(v, translator)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation(notBlankTag, func(fl validator.FieldLevel) bool {
		if s, ok := fl.Field().Interface().(string); ok {
			return strings.TrimSpace(s) != ""
		}
		return false
	})
	_ = v.RegisterTranslation(notBlankTag, translator,
		func(ut.Translator) error { return nil },
		func(_ ut.Translator, fe validator.FieldError) string {
			return fe.Field() + " cannot be blank"
		})
	return v
}

// Check validates form and returns a VALIDATION_ERROR carrying one message per invalid field,
// or nil when the form is valid.
func Check(v *validator.Validate, form interface{}) error {
	err := v.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}

	var overrides map[string]string
	if mp, ok := form.(MessageProvider); ok {
		overrides = mp.FieldMessages()
	}

	fields := make([]appErrors.FieldError, 0, len(verrs))
	seen := make(map[string]struct{}, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		msg, ok := overrides[name]
		if !ok {
			msg = fe.Translate(translator)
		}
		fields = append(fields, appErrors.FieldError{Field: name, Message: msg})
	}
	return appErrors.Validation("invalid payload", fields)
}
