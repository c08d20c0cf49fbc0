// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/typedconf/internal/logger"
)

func environFrom(pairs ...string) func() []string {
	return func() []string { return pairs }
}

// ── ParseEnvironment ─────────────────────────────────────────────────────────

func TestParseEnvironment_Defaults(t *testing.T) {
	env, err := ParseEnvironment("APP_", map[string]string{})

	require.NoError(t, err)
	assert.Equal(t, Environment{Name: "development", ConfigDir: ".", DotenvFile: ".env"}, env)
}

func TestParseEnvironment_AllFields(t *testing.T) {
	env, err := ParseEnvironment("APP_", map[string]string{
		"APP_ENV":         " Production ",
		"APP_CONFIG_DIR":  "/etc/app",
		"APP_DOTENV_FILE": "/etc/app/.env",
		"APP_SECRETS_DIR": "/run/secrets",
	})

	require.NoError(t, err)
	assert.Equal(t, "production", env.Name)
	assert.Equal(t, "/etc/app", env.ConfigDir)
	assert.Equal(t, "/etc/app/.env", env.DotenvFile)
	assert.Equal(t, "/run/secrets", env.SecretsDir)
}

func TestParseEnvironment_ProcessEnv(t *testing.T) {
	t.Setenv("MYAPP_ENV", "staging")

	env, err := ParseEnvironment("MYAPP_", nil)

	require.NoError(t, err)
	assert.Equal(t, "staging", env.Name)
}

// ── EnvLoader ────────────────────────────────────────────────────────────────

func TestEnvLoader_NestedKeys(t *testing.T) {
	l := NewEnvLoaderFrom("APP_", "__", environFrom(
		"APP_APP_NAME=demo",
		"APP_MODEL__ID=gpt-4o-mini",
		"APP_MODEL__TOP_P=0.5",
		"OTHER_MODEL__ID=ignored",
		"PATH=/usr/bin",
	))

	values, err := l.Load()

	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"app_name": "demo",
		"model":    map[string]any{"id": "gpt-4o-mini", "top_p": "0.5"},
	}, values.Map())
}

// TestEnvLoader_CaseInsensitive verifies that both the prefix and the key
// names are matched regardless of case.
func TestEnvLoader_CaseInsensitive(t *testing.T) {
	l := NewEnvLoaderFrom("APP_", "__", environFrom(
		"app_model__ID=lower-prefix",
		"App_Log__Level=debug",
	))

	values, err := l.Load()

	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"model": map[string]any{"id": "lower-prefix"},
		"log":   map[string]any{"level": "debug"},
	}, values.Map())
}

func TestEnvLoader_CustomDelimiter(t *testing.T) {
	l := NewEnvLoaderFrom("SVC_", ".", environFrom("SVC_MODEL.MAX_TOKENS=64"))

	values, err := l.Load()

	require.NoError(t, err)
	v, ok := values.Lookup("model", "max_tokens")
	require.True(t, ok)
	assert.Equal(t, "64", v)
}

func TestEnvLoader_JSONValues(t *testing.T) {
	l := NewEnvLoaderFrom("APP_", "__", environFrom(
		`APP_MODEL={"id": "from-json", "top_p": 0.25}`,
		`APP_TAGS=["a", "b"]`,
		`APP_BROKEN={not json`,
	))

	values, err := l.Load()

	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"model":  map[string]any{"id": "from-json", "top_p": 0.25},
		"tags":   []any{"a", "b"},
		"broken": "{not json",
	}, values.Map())
}

// TestEnvLoader_NestedPathWinsOverScalar verifies the deterministic
// resolution of APP_MODEL vs APP_MODEL__ID.
func TestEnvLoader_NestedPathWinsOverScalar(t *testing.T) {
	l := NewEnvLoaderFrom("APP_", "__", environFrom(
		"APP_MODEL__ID=nested",
		"APP_MODEL=scalar",
	))

	values, err := l.Load()

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"model": map[string]any{"id": "nested"}}, values.Map())
}

func TestEnvLoader_IgnoresEmptySegments(t *testing.T) {
	l := NewEnvLoaderFrom("APP_", "__", environFrom(
		"APP_=bare-prefix",
		"APP_MODEL____ID=double",
		"APP___ID=leading",
	))

	values, err := l.Load()

	require.NoError(t, err)
	assert.Equal(t, 0, values.Len())
}

func TestEnvLoader_ProcessEnvironment(t *testing.T) {
	t.Setenv("TYPEDCONF_TEST_MODEL__ID", "from-process")

	values, err := NewEnvLoader("TYPEDCONF_TEST_", "").Load()

	require.NoError(t, err)
	v, ok := values.Lookup("model", "id")
	require.True(t, ok)
	assert.Equal(t, "from-process", v)
}

// ── DotenvLoader ─────────────────────────────────────────────────────────────

func TestDotenvLoader_ReadsPrefixedKeys(t *testing.T) {
	path := writeFile(t, t.TempDir(), ".env", "APP_MODEL__ID=dotenv-model\nUNRELATED=1\n# comment\nAPP_APP_NAME=\"quoted name\"\n")

	values, err := NewDotenvLoader(path, "APP_", "__", logger.Nop()).Load()

	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"app_name": "quoted name",
		"model":    map[string]any{"id": "dotenv-model"},
	}, values.Map())
}

func TestDotenvLoader_MissingFileIsEmpty(t *testing.T) {
	values, err := NewDotenvLoader(t.TempDir()+"/.env", "APP_", "__", logger.Nop()).Load()

	require.NoError(t, err)
	assert.Equal(t, 0, values.Len())
}

func TestDotenvLoader_DisabledByEmptyPath(t *testing.T) {
	values, err := NewDotenvLoader("", "APP_", "__", nil).Load()

	require.NoError(t, err)
	assert.Equal(t, 0, values.Len())
}

// ── SecretsLoader ────────────────────────────────────────────────────────────

func TestSecretsLoader_ReadsFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "APP_PROVIDER__API_KEY", "sk-secret\n")
	writeFile(t, dir, "app_app_name", "from-secret")
	writeFile(t, dir, "unrelated", "ignored")

	values, err := NewSecretsLoader(dir, "APP_", "__", logger.Nop()).Load()

	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"app_name": "from-secret",
		"provider": map[string]any{"api_key": "sk-secret"},
	}, values.Map())
}

func TestSecretsLoader_MissingDirIsEmpty(t *testing.T) {
	values, err := NewSecretsLoader(t.TempDir()+"/absent", "APP_", "__", logger.Nop()).Load()

	require.NoError(t, err)
	assert.Equal(t, 0, values.Len())
}

func TestSecretsLoader_NotADirectory(t *testing.T) {
	path := writeFile(t, t.TempDir(), "file", "x")

	_, err := NewSecretsLoader(path, "APP_", "__", logger.Nop()).Load()

	assert.Error(t, err)
}
