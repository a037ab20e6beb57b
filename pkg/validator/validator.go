// Package validator provides the gin binding validator with custom
// rules.
package validator

import (
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	validatorV10 "github.com/go-playground/validator/v10"
)

// CustomValidator implements gin's binding.StructValidator on top of
// go-playground/validator.
type CustomValidator struct {
	once     sync.Once
	validate *validatorV10.Validate
}

// NewCustomValidator creates a CustomValidator.
func NewCustomValidator() *CustomValidator {
	return &CustomValidator{}
}

func (v *CustomValidator) lazyinit() {
	v.once.Do(func() {
		v.validate = validatorV10.New()
		v.validate.SetTagName("binding")
	})
}

// ValidateStruct validates structs and pointers to structs, anything
// else passes.
func (v *CustomValidator) ValidateStruct(obj interface{}) error {
	value := reflect.ValueOf(obj)
	switch value.Kind() {
	case reflect.Ptr:
		if value.IsNil() {
			return nil
		}
		return v.ValidateStruct(value.Elem().Interface())
	case reflect.Struct:
		v.lazyinit()
		return v.validate.Struct(obj)
	default:
		return nil
	}
}

// Engine returns the underlying validator engine.
func (v *CustomValidator) Engine() interface{} {
	v.lazyinit()
	return v.validate
}

// RegisterCustom registers the custom validation tags on the active
// binding validator.
func RegisterCustom() {
	validate, ok := binding.Validator.Engine().(*validatorV10.Validate)
	if !ok {
		return
	}

	// docid: printable, no spaces or control characters, bounded length
	_ = validate.RegisterValidation("docid", func(fl validatorV10.FieldLevel) bool {
		id := fl.Field().String()
		if id == "" || len(id) > 128 {
			return false
		}
		return strings.IndexFunc(id, func(r rune) bool {
			return unicode.IsSpace(r) || unicode.IsControl(r)
		}) < 0
	})
}
