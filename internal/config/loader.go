package config

//go:generate mockgen -source=loader.go -destination=../mock/loader_mock.go -package=mock

// Loader produces one configuration tree. Implementations return an empty
// tree when their source has nothing to contribute and reserve errors for
// conditions the caller must know about (see [ErrMissingRequiredSource]).
type Loader interface {
	// Name identifies the source in logs (e.g. a file path or "env").
	Name() string

	// Load reads the source. The returned tree is read-only.
	Load() (Values, error)
}

// LoaderFunc adapts a function to the [Loader] interface.
type LoaderFunc struct {
	SourceName string
	Fn         func() (Values, error)
}

// Name implements [Loader].
func (f LoaderFunc) Name() string { return f.SourceName }

// Load implements [Loader].
func (f LoaderFunc) Load() (Values, error) { return f.Fn() }

// Static returns a loader that always yields a copy of m.
func Static(name string, m map[string]any) Loader {
	tree := copyTree(m)
	return LoaderFunc{SourceName: name, Fn: func() (Values, error) {
		return ReadOnly(tree), nil
	}}
}
