package api

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"weathernow.app/pkg/errors"
	"weathernow.app/pkg/validation"
)

func validateLatitude(fl validator.FieldLevel) bool {
	return validation.IsValidLatitude(fl.Field().Float())
}

func validateLongitude(fl validator.FieldLevel) bool {
	return validation.IsValidLongitude(fl.Field().Float())
}

// RegisterValidators installs the coordinate validators on gin's binding engine
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.NewConfigurationError("unexpected binding validator engine", nil)
	}
	if err := v.RegisterValidation("latitude", validateLatitude); err != nil {
		return errors.NewConfigurationError("register latitude validator", err)
	}
	if err := v.RegisterValidation("longitude", validateLongitude); err != nil {
		return errors.NewConfigurationError("register longitude validator", err)
	}
	return nil
}
