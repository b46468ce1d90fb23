package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/iliyamo/fyyur-booking/internal/model"
)

// newValidator returns a validator that reports fields by their json
// name and knows the directory's choice lists.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := registerRules(v, choiceRules); err != nil {
		panic(fmt.Sprintf("service: %v", err))
	}
	return v
}

// choiceRules are the custom tags used on the input structs.
var choiceRules = map[string]validator.Func{
	"genre": func(fl validator.FieldLevel) bool {
		return model.IsGenre(fl.Field().String())
	},
	"usstate": func(fl validator.FieldLevel) bool {
		return model.IsState(fl.Field().String())
	},
}

func registerRules(v *validator.Validate, rules map[string]validator.Func) error {
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register validation %q: %w", tag, err)
		}
	}
	return nil
}

// fieldErrors runs v over s and flattens the result into field -> message.
// Errors on slice elements ("genres[2]") are reported on the slice field.
func fieldErrors(v *validator.Validate, s any) map[string]string {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if i := strings.IndexByte(field, '['); i >= 0 {
			field = field[:i]
		}
		if _, seen := out[field]; seen {
			continue
		}
		out[field] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must have at least " + fe.Param() + " entry"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "url":
		return "must be a valid URL"
	case "genre":
		return "contains an unknown genre"
	case "usstate":
		return "must be a known state code"
	case "gt":
		return "must be a positive id"
	default:
		return "is invalid"
	}
}

// startTimeLayouts are the accepted show start time formats.  Times
// without a zone are read as UTC.
var startTimeLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05", "2006-01-02 15:04"}

// ParseStartTime parses a show start time.
func ParseStartTime(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range startTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
