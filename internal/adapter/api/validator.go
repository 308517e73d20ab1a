package api

import (
	"reflect"

	"github.com/go-playground/validator/v10"

	"agriconnect/internal/domain/entity"
)

// CustomValidator plugs go-playground/validator into echo's c.Validate.
type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()

	v.RegisterValidation("region", func(fl validator.FieldLevel) bool {
		return entity.IsRegion(fl.Field().String())
	})
	v.RegisterValidation("culture", func(fl validator.FieldLevel) bool {
		return entity.IsCulture(fl.Field().String())
	})
	v.RegisterValidation("seller_or_buyer", func(fl validator.FieldLevel) bool {
		switch fl.Field().Kind() {
		case reflect.Uint8:
			return entity.Role(fl.Field().Uint()).CanSelfRegister()
		case reflect.String:
			role, err := entity.ParseRole(fl.Field().String())
			return err == nil && role.CanSelfRegister()
		default:
			return false
		}
	})

	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
