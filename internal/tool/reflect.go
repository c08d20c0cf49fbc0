package tool

import (
	"fmt"
	"reflect"
	"strings"
)

// Struct tags read from argument structs.
const (
	tagJSON    = "json"
	tagDefault = "default"
	tagDesc    = "desc"
)

// param is one argument field discovered on a struct.
type param struct {
	name       string
	typ        JSONType
	desc       string
	def        string
	hasDefault bool
	optional   bool
}

// SchemaFor derives a [Schema] from the fields of the argument struct A.
// The property name comes from the json tag (or the field name), the type
// from the Go kind, the description from the desc tag. A field is optional
// when it has a default tag or is a pointer.
func SchemaFor[A any](name, doc string) (Schema, error) {
	params, err := paramsOf(reflect.TypeFor[A]())
	if err != nil {
		return Schema{}, err
	}

	b := NewSchema(name, doc)
	for _, p := range params {
		if p.optional {
			b.Optional(p.name, p.typ, p.desc)
		} else {
			b.Param(p.name, p.typ, p.desc)
		}
	}
	return b.Build()
}

func paramsOf(t reflect.Type) ([]param, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil argument type", ErrInvalidSchema)
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: arguments must be a struct, got %s", ErrInvalidSchema, t)
	}

	var params []param
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag, hasTag := f.Tag.Lookup(tagJSON)
		if tag == "-" {
			continue
		}
		tagName, _, _ := strings.Cut(tag, ",")

		if f.Anonymous && tagName == "" {
			ft := f.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				embedded, err := paramsOf(ft)
				if err != nil {
					return nil, err
				}
				params = append(params, embedded...)
				continue
			}
		}
		if !f.IsExported() {
			continue
		}

		p := param{name: f.Name, typ: JSONTypeOf(f.Type), desc: f.Tag.Get(tagDesc)}
		if hasTag && tagName != "" {
			p.name = tagName
		}
		p.def, p.hasDefault = f.Tag.Lookup(tagDefault)
		p.optional = p.hasDefault || f.Type.Kind() == reflect.Pointer
		params = append(params, p)
	}
	return params, nil
}
