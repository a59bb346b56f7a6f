package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDescriptor(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeDescriptor(t, `
[program]
name = "my_app"

[dependencies]
include_dirs = ["include"]
`)

	raw, err := Load(path, NewEnv())
	require.NoError(t, err)

	program, ok := raw["program"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "my_app", program["name"])
}

func TestLoadNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	_, err := Load(path, NewEnv())
	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, path, notFound.Path)
	assert.True(t, IsError(err))
}

func TestLoadMalformedTOML(t *testing.T) {
	path := writeDescriptor(t, `[program
name = my_app`)

	_, err := Load(path, NewEnv())
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.True(t, IsError(err))
}

func TestLoadInterpolation(t *testing.T) {
	t.Setenv("KILN_TEST_SUFFIX", "tool")
	path := writeDescriptor(t, `
[program]
name = "my_app"
description = "built for {{ target_os }}/{{ target_arch }}"

[dependencies]
include_dirs = ["include/{{ environ.KILN_TEST_SUFFIX }}"]
`)

	raw, err := Load(path, NewEnv())
	require.NoError(t, err)

	program := raw["program"].(map[string]any)
	assert.Equal(t, "built for "+runtime.GOOS+"/"+runtime.GOARCH, program["description"])

	deps := raw["dependencies"].(map[string]any)
	assert.Equal(t, []any{"include/tool"}, deps["include_dirs"])
}

func TestLoadInterpolationFailure(t *testing.T) {
	path := writeDescriptor(t, `
[program]
name = "my_app"
description = "{{ nonsense( }}"
`)

	_, err := Load(path, NewEnv())
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
}
