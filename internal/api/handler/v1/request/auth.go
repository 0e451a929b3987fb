package request

import (
	"errors"
	"regexp"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// The password policy needs lookahead, which the standard regexp
// package does not support.
const passwordRegexPattern = `^(?=.*[A-Za-z])(?=.*\d).{8,}$`

var (
	nationalIDRegex = regexp.MustCompile(`^\d{12}$`)
	phoneRegex      = regexp.MustCompile(`^\d{10}$`)
	passwordRegex   = regexp2.MustCompile(passwordRegexPattern, regexp2.None)

	errInvalidPassword = errors.New("the password must be at least 8 characters and contain 1 letter and 1 number")
)

type RegisterRequest struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	NationalID string `json:"nationalId"`
	Phone      string `json:"phone"`
}

func (req *RegisterRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Username, validation.Required, validation.Length(2, 50)),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
		validation.Field(&req.NationalID, validation.Required, validation.Match(nationalIDRegex).Error("national ID must be exactly 12 digits")),
		validation.Field(&req.Phone, validation.Required, validation.Match(phoneRegex).Error("phone number must be exactly 10 digits")),
	)
	if err != nil {
		return err
	}

	ok, err := passwordRegex.MatchString(req.Password)
	if err != nil || !ok {
		return errInvalidPassword
	}

	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req *LoginRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
	)
}
