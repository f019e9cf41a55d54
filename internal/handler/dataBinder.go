package handler

import (
	"errors"

	"github.com/evently-app/evently/internal/errdef"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func DataBinder(c *gin.Context, req interface{}) error {
	if c.ContentType() != "application/json" && c.ContentType() != "multipart/form-data" {
		return errdef.NewBadRequest("%s only accepts content of type application/json or multipart/form-data", c.FullPath())
	}

	if err := c.ShouldBind(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			fields := make([]errdef.FieldError, len(validationErrors))
			for i, fieldError := range validationErrors {
				fields[i] = errdef.FieldError{
					Field:   fieldError.Field(),
					Message: fieldMessage(fieldError),
				}
			}
			return errdef.NewValidation(fields)
		}
		return errdef.NewBadRequest("error binding data: %v", err)
	}

	return nil
}
