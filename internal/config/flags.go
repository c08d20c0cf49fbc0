package config

import (
	"errors"
	"slices"
	"strings"
)

// Assignments collects key.path=value pairs given on the command line and
// turns them into a nested tree for [WithValues]. Values that are JSON
// objects or arrays are decoded. It implements flag.Value and pflag.Value.
type Assignments struct {
	raw  []string
	tree map[string]any
}

// String returns the assignments joined by commas.
func (a *Assignments) String() string {
	if a == nil {
		return ""
	}
	return strings.Join(a.raw, ",")
}

// Set parses one assignment in the form key.path=value. Keys are
// lower-cased; a later assignment to the same path wins.
func (a *Assignments) Set(s string) error {
	key, value, ok := strings.Cut(s, "=")
	if !ok {
		return errors.New("need assignment in a form `key.path=value`")
	}

	path := strings.Split(strings.ToLower(strings.TrimSpace(key)), ".")
	if slices.Contains(path, "") {
		return errors.New("assignment key must be a dot separated path without empty segments")
	}

	if a.tree == nil {
		a.tree = make(map[string]any)
	}
	setPath(a.tree, path, parseEnvValue(value))
	a.raw = append(a.raw, s)
	return nil
}

// Type names the flag value type in help output.
func (a *Assignments) Type() string {
	return "key=value"
}

// Values returns a copy of the assembled tree; nil when nothing was set.
func (a *Assignments) Values() map[string]any {
	if a == nil || a.tree == nil {
		return nil
	}
	return copyTree(a.tree)
}
