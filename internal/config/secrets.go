package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/typedconf/internal/logger"
)

// SecretsLoader reads secrets mounted as files, one file per key, as done by
// Docker and Kubernetes secret volumes. The file name is mapped like an
// environment variable name (APP_PROVIDER__API_KEY → provider.api_key) and
// the trimmed file content becomes the value. Files without the prefix,
// directories and unreadable entries are ignored.
type SecretsLoader struct {
	dir       string
	prefix    string
	delimiter string
	log       *logger.Logger
}

// NewSecretsLoader returns a [SecretsLoader] for dir.
func NewSecretsLoader(dir, prefix, delimiter string, log *logger.Logger) *SecretsLoader {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	return &SecretsLoader{dir: dir, prefix: prefix, delimiter: delimiter, log: logger.OrNop(log)}
}

// Name implements [Loader].
func (l *SecretsLoader) Name() string {
	return fmt.Sprintf("secrets(%s)", l.dir)
}

// Load implements [Loader].
func (l *SecretsLoader) Load() (Values, error) {
	if l.dir == "" {
		return Empty(), nil
	}

	entries, err := os.ReadDir(l.dir)
	if errors.Is(err, fs.ErrNotExist) {
		l.log.Debug().Str("dir", l.dir).Msg("secrets directory not found, skipping")
		return Empty(), nil
	}
	if err != nil {
		return Empty(), fmt.Errorf("read secrets directory %s: %w", l.dir, err)
	}

	flat := make(map[string]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !hasPrefixFold(entry.Name(), l.prefix) {
			continue
		}

		content, err := os.ReadFile(filepath.Join(l.dir, entry.Name()))
		if err != nil {
			l.log.Warn().Err(err).Str("secret", entry.Name()).Msg("failed to read secret file")
			continue
		}
		flat[entry.Name()] = strings.TrimSpace(string(content))
	}

	return ReadOnly(flatToTree(flat, l.prefix, l.delimiter)), nil
}
