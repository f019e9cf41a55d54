package handler

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func oneOf(fl validator.FieldLevel) bool {
	matches := strings.Split(fl.Param(), " ")
	value := fl.Field().String()
	for _, match := range matches {
		if match == value {
			return true
		}
	}
	return false
}

// RegisterValidation Inspiration: https://blog.logrocket.com/gin-binding-in-go-a-tutorial-with-examples/
func RegisterValidation() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("error getting validation engine")
	}

	// report fields by their json name so clients can match errors to request keys
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v.RegisterValidation("oneOf", oneOf)
}

func fieldMessage(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fieldError.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fieldError.Field(), fieldError.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fieldError.Field())
	case "datetime":
		return fmt.Sprintf("%s must be a valid date", fieldError.Field())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fieldError.Field(), fieldError.Param())
	case "oneOf":
		return fmt.Sprintf("%s must be one of: %s", fieldError.Field(), strings.Join(strings.Split(fieldError.Param(), " "), ", "))
	default:
		return fmt.Sprintf("%s is invalid", fieldError.Field())
	}
}
