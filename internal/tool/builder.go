package tool

import (
	"errors"
	"fmt"
)

var ErrInvalidSchema = errors.New("invalid tool schema")

// Builder declares a [Schema] parameter by parameter.
//
//	schema, err := tool.NewSchema("with_default", "Function with optional parameter.").
//		Param("name", tool.String).
//		Optional("count", tool.Integer).
//		Build()
type Builder struct {
	schema Schema
	err    error
}

// NewSchema starts a schema for the function name with the description
// taken from doc (see [Describe]).
func NewSchema(name, doc string) *Builder {
	b := &Builder{schema: Schema{
		Type: "function",
		Function: Function{
			Name:        name,
			Description: Describe(doc),
			Parameters: Parameters{
				Type:       "object",
				Properties: map[string]Property{},
				Required:   []string{},
			},
		},
	}}
	if name == "" {
		b.err = errors.Join(b.err, fmt.Errorf("%w: empty function name", ErrInvalidSchema))
	}
	return b
}

// Param adds a required parameter. An optional desc becomes the property
// description.
func (b *Builder) Param(name string, typ JSONType, desc ...string) *Builder {
	if b.add(name, typ, desc) {
		b.schema.Function.Parameters.Required = append(b.schema.Function.Parameters.Required, name)
	}
	return b
}

// Optional adds a parameter that has a default value.
func (b *Builder) Optional(name string, typ JSONType, desc ...string) *Builder {
	b.add(name, typ, desc)
	return b
}

// Build returns the schema or every declaration error joined together.
func (b *Builder) Build() (Schema, error) {
	if b.err != nil {
		return Schema{}, b.err
	}
	return b.schema, nil
}

func (b *Builder) add(name string, typ JSONType, desc []string) bool {
	props := b.schema.Function.Parameters.Properties
	switch {
	case name == "":
		b.err = errors.Join(b.err, fmt.Errorf("%w: empty parameter name", ErrInvalidSchema))
		return false
	case !typ.valid():
		b.err = errors.Join(b.err, fmt.Errorf("%w: parameter %q has unknown type %q", ErrInvalidSchema, name, typ))
		return false
	}
	if _, ok := props[name]; ok {
		b.err = errors.Join(b.err, fmt.Errorf("%w: duplicate parameter %q", ErrInvalidSchema, name))
		return false
	}

	p := Property{Type: typ}
	if len(desc) > 0 {
		p.Description = desc[0]
	}
	props[name] = p
	return true
}
