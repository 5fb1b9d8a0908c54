package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// raw-form address: workchain id, colon, 64 hex chars of account id
var rawAddressPattern = regexp.MustCompile(`^-?\d+:[0-9a-fA-F]{64}$`)

// IsValidAddress returns is an address valid or not
func IsValidAddress(address string) bool {
	return rawAddressPattern.MatchString(address)
}

func NewCustomValidator(v *validator.Validate) echo.Validator {
	return &CustomValidator{v}
}

type CustomValidator struct {
	validator *validator.Validate
}

func (v *CustomValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return err
	}
	return nil
}
