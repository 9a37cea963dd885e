package validators

import (
	"net/url"
	"reflect"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

var hasSpaces = regexp.MustCompile(`\s+`)

// Register adds the custom rules to validate.
func Register(validate *validator.Validate) {
	_ = validate.RegisterValidation("httpbase", HTTPBase)
	_ = validate.RegisterValidation("nospaces", NoWhiteSpaces)
}

// HTTPBase accepts an absolute http(s) URL usable as a base for API paths:
// a host, and no query or fragment.
func HTTPBase(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		log.Warnf("validator 'httpbase' applied to non-string type: %s\n", field.Kind().String())
		return false
	}

	u, err := url.Parse(field.String())
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != "" && u.RawQuery == "" && u.Fragment == ""
}

// NoWhiteSpaces returns false if the string contains any whitespace.
func NoWhiteSpaces(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}
	return !hasSpaces.MatchString(field.String())
}
