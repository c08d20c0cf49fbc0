package tool

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type repeatArgs struct {
	Name  string `json:"name" validate:"required"`
	Count int    `json:"count" default:"5" validate:"gte=0,lte=10"`
}

func repeat(_ context.Context, args repeatArgs) (any, error) {
	return strings.Repeat(args.Name, args.Count), nil
}

func newRepeatTool(t *testing.T) *Tool {
	t.Helper()
	tl, err := New("with_default", "Function with optional parameter.", repeat)
	require.NoError(t, err)
	return tl
}

// ── New ──────────────────────────────────────────────────────────────────────

func TestNew_DerivesSchema(t *testing.T) {
	tl := newRepeatTool(t)

	assert.Equal(t, "with_default", tl.Name())
	assert.Equal(t, []string{"name"}, tl.Schema().Function.Parameters.Required)
	assert.Equal(t, Integer, tl.Schema().Function.Parameters.Properties["count"].Type)
}

func TestNew_InvalidArguments(t *testing.T) {
	_, err := New("bad", "doc", func(context.Context, int) (any, error) { return nil, nil })

	assert.ErrorIs(t, err, ErrInvalidSchema)
}

// ── Execute ──────────────────────────────────────────────────────────────────

func TestExecute_AppliesDefaults(t *testing.T) {
	tl := newRepeatTool(t)

	assert.Equal(t, "ababababab", tl.Execute(context.Background(), map[string]any{"name": "ab"}))
}

// TestExecute_JSONNumbers verifies that arguments decoded from model JSON
// (float64 numbers, numeric strings) reach the typed struct.
func TestExecute_JSONNumbers(t *testing.T) {
	tl := newRepeatTool(t)

	assert.Equal(t, "xx", tl.Execute(context.Background(), map[string]any{"name": "x", "count": float64(2)}))
	assert.Equal(t, "xxx", tl.Execute(context.Background(), map[string]any{"name": "x", "count": "3"}))
}

func TestExecute_MissingRequiredArgument(t *testing.T) {
	tl := newRepeatTool(t)

	got := tl.Execute(context.Background(), map[string]any{"count": 1})

	assert.Equal(t, `Error executing tool with_default: missing required argument "name"`, got)
}

func TestExecute_UnknownArgument(t *testing.T) {
	tl := newRepeatTool(t)

	got := tl.Execute(context.Background(), map[string]any{"name": "x", "colour": "red"})

	assert.True(t, strings.HasPrefix(got, "Error executing tool with_default: decode arguments:"), got)
	assert.Contains(t, got, "colour")
}

func TestExecute_ConstraintViolation(t *testing.T) {
	tl := newRepeatTool(t)

	got := tl.Execute(context.Background(), map[string]any{"name": "x", "count": 11})

	assert.Equal(t, `Error executing tool with_default: invalid arguments: count failed "lte"`, got)
}

func TestExecute_FunctionError(t *testing.T) {
	tl, err := New("fail", "", func(context.Context, struct{}) (any, error) {
		return nil, errors.New("division by zero")
	})
	require.NoError(t, err)

	assert.Equal(t, "Error executing tool fail: division by zero", tl.Execute(context.Background(), nil))
}

func TestExecute_Panic(t *testing.T) {
	tl, err := New("boom", "", func(context.Context, struct{}) (any, error) {
		panic("kaboom")
	})
	require.NoError(t, err)

	assert.Equal(t, "Error executing tool boom: panic: kaboom", tl.Execute(context.Background(), map[string]any{}))
}

func TestExecute_PassesContext(t *testing.T) {
	type key struct{}
	tl, err := New("ctx", "", func(ctx context.Context, _ struct{}) (any, error) {
		return ctx.Value(key{}), nil
	})
	require.NoError(t, err)

	ctx := context.WithValue(context.Background(), key{}, "request-42")
	assert.Equal(t, "request-42", tl.Execute(ctx, nil))
}

func TestExecute_CollectionDefaultsAndDurations(t *testing.T) {
	type args struct {
		Tags    []string       `json:"tags" default:"a,b"`
		Weights map[string]int `json:"weights" default:"{\"x\": 1}"`
		Wait    time.Duration  `json:"wait" default:"150ms"`
		Limit   *int           `json:"limit"`
	}
	tl, err := New("collect", "", func(_ context.Context, a args) (any, error) {
		return map[string]any{"tags": a.Tags, "weights": a.Weights, "wait_ms": a.Wait.Milliseconds(), "limit": a.Limit}, nil
	})
	require.NoError(t, err)

	got := tl.Execute(context.Background(), map[string]any{})

	assert.JSONEq(t, `{"tags": ["a", "b"], "weights": {"x": 1}, "wait_ms": 150, "limit": null}`, got)
}

// ── Text ─────────────────────────────────────────────────────────────────────

type celsius float64

func (c celsius) String() string { return "21.5°C" }

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{name: "nil", in: nil, want: ""},
		{name: "string", in: "plain", want: "plain"},
		{name: "int", in: 42, want: "42"},
		{name: "float", in: 1.5, want: "1.5"},
		{name: "bool", in: true, want: "true"},
		{name: "error", in: errors.New("oops"), want: "oops"},
		{name: "stringer", in: celsius(21.5), want: "21.5°C"},
		{name: "slice", in: []int{1, 2}, want: "[1,2]"},
		{name: "map", in: map[string]int{"a": 1}, want: `{"a":1}`},
		{name: "struct", in: struct {
			City string `json:"city"`
		}{City: "Oslo"}, want: `{"city":"Oslo"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.in))
		})
	}
}

func TestDefinitions(t *testing.T) {
	first := newRepeatTool(t)
	second, err := New("noop", "Does nothing.", func(context.Context, struct{}) (any, error) { return nil, nil })
	require.NoError(t, err)

	defs := Definitions(first, second)

	require.Len(t, defs, 2)
	assert.Equal(t, "with_default", defs[0].Function.Name)
	assert.Equal(t, "Does nothing.", defs[1].Function.Description)
}
