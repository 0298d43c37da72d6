package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/SscSPs/currency_purchase_api/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const validationFailedMessage = "The given data was invalid."

var registerTagNamesOnce sync.Once

// useWireFieldNames makes validator report json/form names instead of Go field names.
func useWireFieldNames() {
	registerTagNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return fld.Name
		})
	})
}

// bindJSON binds and validates the request body into obj. It writes the error
// response itself and returns false when binding fails.
func bindJSON(c *gin.Context, obj any) bool {
	err := c.ShouldBindJSON(obj)
	if errors.Is(err, io.EOF) {
		// empty body: report the missing fields rather than a decode error
		err = binding.Validator.ValidateStruct(obj)
	}
	if err == nil {
		return true
	}
	respondBindError(c, err)
	return false
}

// bindQuery is bindJSON for query strings.
func bindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		respondBindError(c, err)
		return false
	}
	return true
}

func respondBindError(c *gin.Context, err error) {
	var (
		verrs   validator.ValidationErrors
		typeErr *json.UnmarshalTypeError
		synErr  *json.SyntaxError
	)
	switch {
	case errors.As(err, &verrs):
		fields := make(map[string][]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = append(fields[fe.Field()], fieldErrorMessage(fe))
		}
		c.JSON(http.StatusUnprocessableEntity, dto.ValidationErrorResponse{Message: validationFailedMessage, Errors: fields})
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		c.JSON(http.StatusUnprocessableEntity, dto.ValidationErrorResponse{
			Message: validationFailedMessage,
			Errors:  map[string][]string{field: {fmt.Sprintf("The %s field must be %s.", humanize(field), kindName(typeErr.Type.Kind()))}},
		})
	case errors.As(err, &synErr):
		c.JSON(http.StatusBadRequest, dto.Fail("Malformed JSON body."))
	default:
		c.JSON(http.StatusUnprocessableEntity, dto.ValidationErrorResponse{
			Message: validationFailedMessage,
			Errors:  map[string][]string{"body": {err.Error()}},
		})
	}
}

func kindName(k reflect.Kind) string {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "true or false"
	default:
		return "valid"
	}
}

func humanize(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

func fieldErrorMessage(fe validator.FieldError) string {
	name := humanize(fe.Field())
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", name)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", name)
	case "min", "gte":
		if isString {
			return fmt.Sprintf("The %s field must be at least %s characters.", name, fe.Param())
		}
		return fmt.Sprintf("The %s field must be at least %s.", name, fe.Param())
	case "max", "lte":
		if isString {
			return fmt.Sprintf("The %s field must not be greater than %s characters.", name, fe.Param())
		}
		return fmt.Sprintf("The %s field must not be greater than %s.", name, fe.Param())
	case "eqfield":
		return fmt.Sprintf("The %s field must match %s.", name, humanize(strings.ToLower(fe.Param())))
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", name)
	case "datetime":
		return fmt.Sprintf("The %s field must match the format %s.", name, fe.Param())
	default:
		return fmt.Sprintf("The %s field is invalid.", name)
	}
}
