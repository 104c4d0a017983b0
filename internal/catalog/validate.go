package catalog

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const imageRefTag = "imageref"

func newValidator(images ImageResolver) *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation(imageRefTag, func(fl validator.FieldLevel) bool {
		return images.ValidReference(fl.Field().String())
	})

	return v
}

// check validates c and reports only the first violation, in field
// declaration order.
func check(v *validator.Validate, c Candidate) error {
	err := v.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	return &ValidationError{Field: fe.Field(), Message: violationMessage(fe)}
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%q is required", fe.Field())
	case imageRefTag:
		return fmt.Sprintf("%q must be a valid uri", fe.Field())
	default:
		return fmt.Sprintf("%q is invalid", fe.Field())
	}
}

// typeViolation describes a field whose JSON or form value has the wrong
// primitive shape.
func typeViolation(field string) *ValidationError {
	var want string
	switch field {
	case "spf":
		want = "a number"
	case "features", "mainIngredients":
		want = "an array of strings"
	default:
		want = "a string"
	}
	return &ValidationError{Field: field, Message: fmt.Sprintf("%q must be %s", field, want)}
}

func isAbsoluteURI(s string) bool {
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return false
	}
	return u.Host != "" || u.Opaque != ""
}
