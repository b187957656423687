package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Struct tags understood by the validator, one per contact form rule.
const (
	TagName        = "contact_name"
	TagEmail       = "contact_email"
	TagPhone       = "contact_phone"
	TagDescription = "contact_description"
)

var tagRules = map[string]Rule{
	TagName:        ValidateName,
	TagEmail:       ValidateEmail,
	TagPhone:       ValidatePhone,
	TagDescription: ValidateDescription,
}

// Validator runs the contact rules over tagged request structs and reports
// failures keyed by JSON field name.
type Validator struct {
	validate *validator.Validate
}

// New creates a validator with the contact rules registered.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)
	RegisterValidators(v)
	return &Validator{validate: v}
}

// RegisterValidators registers custom validators
func RegisterValidators(v *validator.Validate) {
	for tag, rule := range tagRules {
		// Registration only fails for an empty tag or nil func.
		_ = v.RegisterValidation(tag, ruleFunc(rule))
	}
}

func ruleFunc(rule Rule) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return rule(fl.Field().String()).Valid
	}
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// Struct validates s. A nil map means every field passed; a non-nil error
// means s could not be validated at all.
func (v *Validator) Struct(s interface{}) (FieldErrors, error) {
	err := v.validate.Struct(s)
	if err == nil {
		return nil, nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, fmt.Errorf("failed to validate request: %w", err)
	}

	fieldErrors := FieldErrors{}
	for _, e := range validationErrors {
		message := "Invalid value"
		if rule, ok := tagRules[e.Tag()]; ok {
			message = rule(fmt.Sprint(e.Value())).Error
		}
		fieldErrors[e.Field()] = message
	}
	return fieldErrors, nil
}

// ValidateField runs the rule registered for a form field. Unknown fields
// are always valid.
func ValidateField(field, value string) Result {
	rule, found := Rules[field]
	if !found {
		return Result{Valid: true}
	}
	return rule(value)
}
