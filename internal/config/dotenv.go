package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"github.com/MKhiriev/typedconf/internal/logger"
)

// DotenvLoader reads prefixed variables from a dotenv file without touching
// the process environment. Keys map to the tree exactly as in [EnvLoader].
// A missing file contributes nothing; a malformed one is logged and skipped.
type DotenvLoader struct {
	path      string
	prefix    string
	delimiter string
	log       *logger.Logger
}

// NewDotenvLoader returns a [DotenvLoader] for path.
func NewDotenvLoader(path, prefix, delimiter string, log *logger.Logger) *DotenvLoader {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	return &DotenvLoader{path: path, prefix: prefix, delimiter: delimiter, log: logger.OrNop(log)}
}

// Name implements [Loader].
func (l *DotenvLoader) Name() string {
	return fmt.Sprintf("dotenv(%s)", l.path)
}

// Load implements [Loader].
func (l *DotenvLoader) Load() (Values, error) {
	if l.path == "" {
		return Empty(), nil
	}

	if _, err := os.Stat(l.path); errors.Is(err, fs.ErrNotExist) {
		l.log.Debug().Str("path", l.path).Msg("dotenv file not found, skipping")
		return Empty(), nil
	}

	flat, err := godotenv.Read(l.path)
	if err != nil {
		l.log.Warn().Err(fmt.Errorf("%w: %w", ErrMalformedSource, err)).Str("path", l.path).Msg("failed to parse dotenv file")
		return Empty(), nil
	}

	return ReadOnly(flatToTree(flat, l.prefix, l.delimiter)), nil
}
