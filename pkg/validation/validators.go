package validation

import (
	"net/mail"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// PhoneDigits is the exact digit count a contact phone must normalize to
const PhoneDigits = 10

// Regex patterns
var (
	// local@domain.tld with no whitespace and a single @
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	nonDigitRegex = regexp.MustCompile(`\D`)
)

// New returns a validator with the custom contact tags registered and
// field names reported by their json tag.
func New() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	v.RegisterTagNameFunc(jsonTagName)
	_ = v.RegisterValidation("not_blank", NotBlank)
	_ = v.RegisterValidation("contact_email", ContactEmail)
	_ = v.RegisterValidation("ten_digit_phone", TenDigitPhone)
}

func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}

// NotBlank rejects strings that are empty once surrounding whitespace is removed
func NotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// ContactEmail applies the strict local@domain.tld shape
func ContactEmail(fl validator.FieldLevel) bool {
	return IsEmailShape(fl.Field().String())
}

// TenDigitPhone accepts any formatting as long as exactly ten digits remain
func TenDigitPhone(fl validator.FieldLevel) bool {
	return len(NormalizePhone(fl.Field().String())) == PhoneDigits
}

// IsEmailShape reports whether s looks like local@domain.tld and is a bare
// RFC 5322 address, so it can be used verbatim in a Reply-To header.
func IsEmailShape(s string) bool {
	s = strings.TrimSpace(s)
	if !emailRegex.MatchString(s) {
		return false
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// NormalizePhone strips every non-digit character.
func NormalizePhone(raw string) string {
	return nonDigitRegex.ReplaceAllString(raw, "")
}
