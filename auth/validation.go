package auth

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/DillanMilo/angus-biltong-sub000/models"
	"github.com/go-playground/validator/v10"
)

const minPasswordLength = 8

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{6,19}$`)

// ValidationErrors maps a form field to what is wrong with it. It is returned
// before any call to the commerce platform is made.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+v[f])
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

type RegistrationInput struct {
	FirstName       string          `json:"first_name" validate:"required,max=100"`
	LastName        string          `json:"last_name" validate:"required,max=100"`
	Email           string          `json:"email" validate:"required,email"`
	Phone           string          `json:"phone" validate:"omitempty,phone"`
	Password        string          `json:"password" validate:"required,password"`
	ConfirmPassword string          `json:"confirm_password" validate:"required,eqfield=Password"`
	Address         *models.Address `json:"address" validate:"omitempty"`
}

type AddressInput struct {
	Address1    string `validate:"required"`
	City        string `validate:"required"`
	PostalCode  string `validate:"required,max=10"`
	CountryCode string `validate:"required,len=2"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(strings.TrimSpace(fl.Field().String()))
	})
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return strongPassword(fl.Field().String())
	})
	return v
}

// strongPassword needs minPasswordLength characters with at least one letter and one digit.
func strongPassword(pw string) bool {
	if len([]rune(pw)) < minPasswordLength {
		return false
	}
	var letter, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return letter && digit
}

// ValidateRegistration checks a sign-up form.
func ValidateRegistration(in RegistrationInput) error {
	errs := ValidationErrors{}
	collect(errs, validate.Struct(in), "")

	if in.Address != nil {
		addr := AddressInput{
			Address1:    in.Address.Address1,
			City:        in.Address.City,
			PostalCode:  in.Address.PostalCode,
			CountryCode: in.Address.CountryCode,
		}
		collect(errs, validate.Struct(addr), "address.")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateLogin checks a sign-in form.
func ValidateLogin(in LoginInput) error {
	errs := ValidationErrors{}
	collect(errs, validate.Struct(in), "")
	if len(errs) > 0 {
		return errs
	}
	return nil
}

var fieldNames = map[string]string{
	"FirstName":       "first_name",
	"LastName":        "last_name",
	"Email":           "email",
	"Phone":           "phone",
	"Password":        "password",
	"ConfirmPassword": "confirm_password",
	"Address1":        "address1",
	"City":            "city",
	"PostalCode":      "postal_code",
	"CountryCode":     "country_code",
}

func collect(errs ValidationErrors, err error, prefix string) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return
	}
	for _, fe := range verrs {
		name, ok := fieldNames[fe.StructField()]
		if !ok {
			name = strings.ToLower(fe.StructField())
		}
		errs[prefix+name] = message(fe)
	}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "phone":
		return "must be a valid phone number"
	case "password":
		return fmt.Sprintf("must be at least %d characters and contain a letter and a number", minPasswordLength)
	case "eqfield":
		return "does not match password"
	case "max":
		return "is too long"
	case "len":
		return fmt.Sprintf("must be %s characters", fe.Param())
	}
	return "is invalid"
}
