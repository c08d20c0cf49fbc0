// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

// TagName is the struct tag that maps typed configuration fields to tree
// keys. The same tag drives TOML decoding, so a settings struct can be
// unmarshalled from a file directly as well.
const TagName = "toml"

var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get(TagName), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

// Decode converts tree into target, which must be a pointer to a struct, and
// validates the result.
//
// Fields already set on target act as defaults: keys absent from tree leave
// them untouched. Values are converted weakly, so the strings produced by
// environment variables decode into numbers, booleans and durations.
// Constraints are declared with `validate` tags (go-playground/validator).
//
// Every type mismatch and constraint violation is collected into a single
// [*ValidationError]; a field that failed to decode is not reported twice.
func Decode(tree map[string]any, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: got %T", ErrInvalidTarget, target)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          TagName,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("error creating config decoder: %w", err)
	}

	var fields []FieldError
	reported := make(map[string]bool)

	if err = decoder.Decode(tree); err != nil {
		for _, fe := range decodeFieldErrors(err) {
			reported[fe.Path] = true
			fields = append(fields, fe)
		}
	}

	if err = structValidator.Struct(target); err != nil {
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			return fmt.Errorf("error validating config: %w", err)
		}
		for _, fe := range validationErrs {
			path := fieldPath(fe.Namespace())
			if reported[path] {
				continue
			}
			reported[path] = true
			fields = append(fields, FieldError{Path: path, Reason: describeConstraint(fe)})
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// decodeFieldErrors splits a mapstructure error into per-field entries.
// mapstructure quotes the field path first in each of its messages, e.g.
// "cannot parse 'model.top_p' as float: ...".
func decodeFieldErrors(err error) []FieldError {
	var msgs []string

	var decodeErr *mapstructure.Error
	if errors.As(err, &decodeErr) {
		msgs = decodeErr.Errors
	} else {
		msgs = []string{err.Error()}
	}

	fields := make([]FieldError, 0, len(msgs))
	for _, msg := range msgs {
		fields = append(fields, FieldError{Path: quotedPath(msg), Reason: msg})
	}
	return fields
}

func quotedPath(msg string) string {
	_, rest, ok := strings.Cut(msg, "'")
	if !ok {
		return ""
	}
	path, _, ok := strings.Cut(rest, "'")
	if !ok {
		return ""
	}
	return path
}

// fieldPath drops the root struct name from a validator namespace:
// "AppConfig.model.id" becomes "model.id".
func fieldPath(namespace string) string {
	_, path, ok := strings.Cut(namespace, ".")
	if !ok {
		return namespace
	}
	return path
}

func describeConstraint(fe validator.FieldError) string {
	var reason string
	switch fe.Tag() {
	case "required":
		return "field required"
	case "gte":
		reason = "must be greater than or equal to " + fe.Param()
	case "gt":
		reason = "must be greater than " + fe.Param()
	case "lte":
		reason = "must be less than or equal to " + fe.Param()
	case "lt":
		reason = "must be less than " + fe.Param()
	case "min":
		reason = "must be at least " + fe.Param()
	case "max":
		reason = "must be at most " + fe.Param()
	case "oneof":
		reason = "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "url":
		reason = "must be a valid URL"
	default:
		reason = fmt.Sprintf("failed %q validation", fe.Tag())
	}
	return fmt.Sprintf("%s (got: %v)", reason, fe.Value())
}
