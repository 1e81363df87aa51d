package binder

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"github.com/segmentio/encoding/json"
)

const (
	date     = "date"
	gte      = "gte"
	lte      = "lte"
	mx       = "max"
	mn       = "min"
	oneof    = "oneof"
	pin      = "pin"
	required = "required"
	slug     = "slug"
	ip       = "ip"
)

func formatUnmarshalTypeError(err *json.UnmarshalTypeError) string {
	return fmt.Sprintf("%q should be of type %s", strings.Trim(err.Field, "."), err.Type)
}

func formatSchemaConversionError(err schema.ConversionError) string {
	return fmt.Sprintf("%q should be of type %s", err.Key, err.Type)
}

func formatValidationError(err validator.FieldError) string {
	field := err.Field()

	switch err.Tag() {
	case date:
		return fmt.Sprintf("%q should be in the format of YYYY-MM-DD", field)
	case gte:
		return fmt.Sprintf("%q must be greater than or equal to %s", field, err.Param())
	case lte:
		return fmt.Sprintf("%q must be less than or equal to %s", field, err.Param())
	case mx:
		return fmt.Sprintf("%q %s less than or equal to %s", field, boundPhrase(err.Kind()), pluralize(err))
	case mn:
		return fmt.Sprintf("%q %s greater than or equal to %s", field, boundPhrase(err.Kind()), pluralize(err))
	case oneof:
		valids := []string{}
		for _, p := range strings.Fields(err.Param()) {
			valids = append(valids, fmt.Sprintf("%q", p))
		}
		return fmt.Sprintf("%q must be one of the following: %s", field, strings.Join(valids, ", "))
	case pin:
		return fmt.Sprintf("%q must be 6 to 8 digits", field)
	case required:
		return fmt.Sprintf("%q is required", field)
	case slug:
		return fmt.Sprintf("%q may only contain lowercase letters, digits, '-' and '_'", field)
	case ip:
		return fmt.Sprintf("%q is not a valid IP address", field)
	default:
		return fmt.Sprintf("%q failed the %q check", field, err.Tag())
	}
}

func isNumeric(kind reflect.Kind) bool {
	//exhaustive:ignore
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

func boundPhrase(kind reflect.Kind) string {
	if isNumeric(kind) {
		return "must be"
	}
	return "length must be"
}

func pluralize(err validator.FieldError) string {
	if isNumeric(err.Kind()) {
		return err.Param()
	}
	resource := "character"
	if err.Kind() == reflect.Slice || err.Kind() == reflect.Map {
		resource = "element"
	}
	if err.Param() != "1" {
		resource += "s"
	}
	return err.Param() + " " + resource
}
