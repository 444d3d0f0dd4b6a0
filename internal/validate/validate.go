package validate

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"
)

var spaceRe = regexp.MustCompile(`\s+`)

// FieldError is a single user-facing validation message tied to a field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is an ordered set of field errors. Empty means valid.
type Errors []FieldError

func (e Errors) Valid() bool { return len(e) == 0 }

func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Message)
	}
	return strings.Join(msgs, "; ")
}

// For returns the first message recorded for field, or "".
func (e Errors) For(field string) string {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

// Has reports whether field has at least one error.
func (e Errors) Has(field string) bool { return e.For(field) != "" }

// RequiredMessage is the message used for a missing or blank required field.
func RequiredMessage(field string) string {
	return "Please enter a value for '" + field + "'"
}

// WholeNumberMessage is the message used for a non-integer numeric field.
func WholeNumberMessage(field string) string {
	return "Please enter a whole number for '" + field + "'"
}

// Sanitize normalizes stored text: NFC, no NUL bytes, trimmed. Inner
// whitespace is kept as typed.
func Sanitize(s string) string {
	s = norm.NFC.String(s)
	s = strings.ReplaceAll(s, "\x00", "")
	return strings.TrimSpace(s)
}

// SanitizeTerm is Sanitize for search terms, with runs of whitespace
// collapsed to one space.
func SanitizeTerm(s string) string {
	return spaceRe.ReplaceAllString(Sanitize(s), " ")
}

// Validator wraps go-playground/validator with the tags and messages used
// by catalog forms.
type Validator struct {
	v *validator.Validate
}

// New returns a Validator with the notblank and year tags registered.
// Field names in errors come from json tags.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("notblank", notBlank)
	_ = v.RegisterValidation("year", wholeNumber)
	return &Validator{v: v}
}

// Struct validates s and returns its field errors in declaration order.
func (v *Validator) Struct(s any) Errors {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Errors{{Field: "", Message: err.Error()}}
	}
	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "notblank", "required":
		return RequiredMessage(fe.Field())
	case "year":
		return WholeNumberMessage(fe.Field())
	default:
		return "Please check the value for '" + fe.Field() + "'"
	}
}

func notBlank(fl validator.FieldLevel) bool {
	f := fl.Field()
	if f.Kind() != reflect.String {
		return !f.IsZero()
	}
	return strings.TrimSpace(f.String()) != ""
}

func wholeNumber(fl validator.FieldLevel) bool {
	f := fl.Field()
	if f.Kind() != reflect.String {
		return false
	}
	_, err := ParseYear(f.String())
	return err == nil
}

// ParseYear reads a year as a signed 32-bit integer, the range of the
// year column.
func ParseYear(s string) (int, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	return int(n), err
}
