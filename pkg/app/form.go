package app

import (
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/gin-gonic/gin"
)

// ValidError is one field validation failure.
type ValidError struct {
	Key     string
	Message string
}

func (v *ValidError) Error() string {
	return v.Message
}

// ValidErrors aggregates field validation failures.
type ValidErrors []*ValidError

func (v ValidErrors) Error() string {
	return strings.Join(v.Errors(), ",")
}

// Errors returns the individual messages.
func (v ValidErrors) Errors() []string {
	var errs []string
	for _, err := range v {
		errs = append(errs, err.Error())
	}
	return errs
}

// ErrorsToString joins all messages into one string.
func (v ValidErrors) ErrorsToString() string {
	return strings.Join(v.Errors(), ", ")
}

// MapsToString returns key:message pairs for envelope data.
func (v ValidErrors) MapsToString() map[string]string {
	m := make(map[string]string, len(v))
	for _, err := range v {
		m[err.Key] = err.Message
	}
	return m
}

// BindAndValid binds request parameters into v and validates them,
// translating failures with the translator set by the lang middleware.
func BindAndValid(c *gin.Context, v interface{}) (bool, ValidErrors) {
	var errs ValidErrors

	if err := c.ShouldBind(v); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			errs = append(errs, &ValidError{Key: "body", Message: err.Error()})
			return false, errs
		}

		trans := translatorFrom(c)
		for _, validationErr := range validationErrors {
			message := validationErr.Error()
			if trans != nil {
				message = validationErr.Translate(trans)
			}
			errs = append(errs, &ValidError{
				Key:     validationErr.Field(),
				Message: message,
			})
		}
		return false, errs
	}
	return true, nil
}

func translatorFrom(c *gin.Context) ut.Translator {
	v, exists := c.Get("trans")
	if !exists {
		return nil
	}
	trans, ok := v.(ut.Translator)
	if !ok {
		return nil
	}
	return trans
}
