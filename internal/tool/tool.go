package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

var ErrMissingArgument = errors.New("missing required argument")

// Func is a tool implementation taking its arguments as a typed struct.
type Func[A any] func(ctx context.Context, args A) (any, error)

// Tool pairs a function with the schema describing it to the model.
type Tool struct {
	schema Schema
	params []param
	call   func(ctx context.Context, args map[string]any) (any, error)
}

var argsValidator = newArgsValidator()

func newArgsValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get(tagJSON), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// New wraps fn as a tool named name. The schema is derived from A with
// [SchemaFor]; fields of A may carry validate tags that are checked before
// fn is called.
func New[A any](name, doc string, fn Func[A]) (*Tool, error) {
	schema, err := SchemaFor[A](name, doc)
	if err != nil {
		return nil, err
	}
	params, err := paramsOf(reflect.TypeFor[A]())
	if err != nil {
		return nil, err
	}

	t := &Tool{schema: schema, params: params}
	t.call = func(ctx context.Context, raw map[string]any) (any, error) {
		var args A
		if err := decodeArgs(raw, &args); err != nil {
			return nil, err
		}
		if err := validateArgs(args); err != nil {
			return nil, err
		}
		return fn(ctx, args)
	}
	return t, nil
}

// Name returns the function name.
func (t *Tool) Name() string {
	return t.schema.Function.Name
}

// Schema returns the OpenAI function definition of the tool.
func (t *Tool) Schema() Schema {
	return t.schema
}

// Execute runs the tool with the model-supplied arguments and returns the
// result as text. Defaults are applied to absent arguments. Any failure,
// including a panic in the function, is returned as
// "Error executing tool <name>: <reason>".
func (t *Tool) Execute(ctx context.Context, args map[string]any) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = t.errorText(fmt.Errorf("panic: %v", r))
		}
	}()

	input, err := t.withDefaults(args)
	if err != nil {
		return t.errorText(err)
	}

	result, err := t.call(ctx, input)
	if err != nil {
		return t.errorText(err)
	}
	return Text(result)
}

func (t *Tool) errorText(err error) string {
	return fmt.Sprintf("Error executing tool %s: %s", t.Name(), err)
}

func (t *Tool) withDefaults(args map[string]any) (map[string]any, error) {
	input := make(map[string]any, len(t.params))
	for _, p := range t.params {
		if v, ok := args[p.name]; ok {
			input[p.name] = v
			continue
		}
		switch {
		case p.hasDefault:
			input[p.name] = defaultValue(p)
		case !p.optional:
			return nil, fmt.Errorf("%w %q", ErrMissingArgument, p.name)
		}
	}
	for k, v := range args {
		if _, ok := input[k]; !ok {
			input[k] = v
		}
	}
	return input, nil
}

// defaultValue decodes JSON defaults of array and object parameters; other
// defaults stay strings and are converted when decoding.
func defaultValue(p param) any {
	if p.typ == Array || p.typ == Object {
		trimmed := strings.TrimSpace(p.def)
		if strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{") {
			var v any
			if err := json.Unmarshal([]byte(trimmed), &v); err == nil {
				return v
			}
		}
	}
	return p.def
}

func decodeArgs(raw map[string]any, target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          tagJSON,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Squash:           true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		Result: target,
	})
	if err != nil {
		return fmt.Errorf("build argument decoder: %w", err)
	}
	if err = dec.Decode(raw); err != nil {
		return fmt.Errorf("decode arguments: %w", err)
	}
	return nil
}

func validateArgs(args any) error {
	v := reflect.ValueOf(args)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	err := argsValidator.Struct(v.Interface())
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("invalid arguments: %s", strings.Join(msgs, "; "))
	}
	return err
}

// Text renders a tool result for the model: strings as-is, errors and
// Stringers by their text, maps, slices and structs as JSON, anything else
// with fmt.
func Text(v any) string {
	switch r := v.(type) {
	case nil:
		return ""
	case string:
		return r
	case error:
		return r.Error()
	case fmt.Stringer:
		return r.String()
	}

	rv := reflect.Indirect(reflect.ValueOf(v))
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		if b, err := json.Marshal(v); err == nil {
			return string(b)
		}
	}
	return fmt.Sprint(v)
}

// Definitions returns the schemas of tools in order, ready to be sent as
// the "tools" request parameter.
func Definitions(tools ...*Tool) []Schema {
	out := make([]Schema, 0, len(tools))
	for _, t := range tools {
		out = append(out, t.Schema())
	}
	return out
}
