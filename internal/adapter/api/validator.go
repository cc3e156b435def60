package api

import (
	"github.com/go-playground/validator/v10"

	"luxuryline/pkg/utils"
)

// CustomValidator plugs go-playground/validator into echo's c.Validate.
type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	return &CustomValidator{validator: utils.NewValidator()}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// Engine exposes the underlying validator so use cases share its tag names.
func (cv *CustomValidator) Engine() *validator.Validate {
	return cv.validator
}
