// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tool describes callable tools to a chat model in the OpenAI
// function-calling format.
//
// A schema is either declared with [NewSchema] or derived from the fields of
// a typed argument struct with [SchemaFor]. [New] wraps a typed function
// together with its derived schema so the model's JSON arguments can be
// decoded and executed.
package tool

import (
	"reflect"
	"strings"
)

// NoDescription is used when a tool has no documentation.
const NoDescription = "No description provided."

// JSONType is a JSON schema primitive type.
type JSONType string

const (
	String  JSONType = "string"
	Integer JSONType = "integer"
	Number  JSONType = "number"
	Boolean JSONType = "boolean"
	Array   JSONType = "array"
	Object  JSONType = "object"
)

func (t JSONType) valid() bool {
	switch t {
	case String, Integer, Number, Boolean, Array, Object:
		return true
	}
	return false
}

// JSONTypeOf maps a Go type to its JSON schema type. Pointers map to their
// element type; anything unrecognised maps to [String].
func JSONTypeOf(t reflect.Type) JSONType {
	if t == nil {
		return String
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.String:
		return String
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Integer
	case reflect.Float32, reflect.Float64:
		return Number
	case reflect.Bool:
		return Boolean
	case reflect.Slice, reflect.Array:
		return Array
	case reflect.Map, reflect.Struct:
		return Object
	default:
		return String
	}
}

// Schema is an OpenAI function-tool definition.
type Schema struct {
	Type     string   `json:"type"`
	Function Function `json:"function"`
}

// Function describes the callable part of a [Schema].
type Function struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Parameters  Parameters `json:"parameters"`
}

// Parameters is the JSON schema object describing the function arguments.
type Parameters struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required"`
}

// Property describes a single argument.
type Property struct {
	Type        JSONType `json:"type"`
	Description string   `json:"description,omitempty"`
}

// IsRequired reports whether the named parameter is required.
func (s Schema) IsRequired(name string) bool {
	for _, r := range s.Function.Parameters.Required {
		if r == name {
			return true
		}
	}
	return false
}

// Describe returns the first paragraph of doc, trimmed, or [NoDescription]
// when doc is blank.
func Describe(doc string) string {
	doc = strings.TrimSpace(doc)
	if doc == "" {
		return NoDescription
	}
	if i := strings.Index(doc, "\n\n"); i >= 0 {
		doc = strings.TrimSpace(doc[:i])
	}
	return doc
}
