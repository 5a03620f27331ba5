package handlers

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/ThurpatiNainesh/tinylink/internal/adapters/httpapi/problems"
)

const tagLinkCode = "linkcode"

var validate = newValidator()

var fieldLabels = map[string]string{
	"targetUrl":  "URL",
	"customCode": "Code",
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.Split(field.Tag.Get("json"), ",")[0]
		if name == "-" {
			return ""
		}

		return name
	})

	// the character rule only; length is reported by min/max
	_ = v.RegisterValidation(tagLinkCode, func(fl validator.FieldLevel) bool {
		for _, r := range fl.Field().String() {
			if !isCodeRune(r) {
				return false
			}
		}

		return true
	})

	return v
}

func isCodeRune(r rune) bool {
	return r == '-' || r == '_' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// validateStruct returns the message of the first failing field in
// declaration order.
func validateStruct(v any) (string, bool) {
	err := validate.Struct(v)
	if err == nil {
		return "", false
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return "", false
	}

	return fieldMessage(verrs[0]), true
}

func fieldMessage(fe validator.FieldError) string {
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = fe.Field()
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	case tagLinkCode:
		return fmt.Sprintf("%s can only contain letters, numbers, hyphens, and underscores", label)
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

func writeValidationError(c *gin.Context, detail string) {
	problems.WriteProblem(c, validationProblem(detail))
}
