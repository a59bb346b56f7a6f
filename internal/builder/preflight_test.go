package builder

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiln-build/kiln/internal/config"
	"github.com/kiln-build/kiln/internal/env"
)

func TestCheckCleanProject(t *testing.T) {
	b, _ := testBuilder(t, `
[program]
name = "my_app"

[dependencies]
include_dirs = ["include"]
include_shared = ["objs/util"]
`)
	dir := b.Dir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "my_app.c"), []byte("int main(void){return 0;}\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "include"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "include", "util.h"), []byte("#pragma once\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "objs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "objs", "util.o"), []byte{0}, 0o644))

	cfg, problems, err := b.Check()
	require.NoError(t, err)
	assert.Equal(t, "my_app", cfg.Program.Name)
	assert.Empty(t, problems)
}

func TestCheckReportsMissingPathsInDeclarationOrder(t *testing.T) {
	b, _ := testBuilder(t, `
[program]
name = "my_app"

[dependencies]
include_dirs = ["missing_a", "missing_b"]
include_shared = ["nope"]
`)

	_, problems, err := b.Check()
	require.NoError(t, err)
	require.Len(t, problems, 4)

	assert.Contains(t, problems[0].Message, `program source "my_app.c" does not exist`)
	assert.Equal(t, "missing_a", problems[1].Path)
	assert.Equal(t, "missing_b", problems[2].Path)
	assert.Contains(t, problems[3].Message, `shared object "nope.o" does not exist`)

	for _, p := range problems {
		assert.False(t, p.Warning)
	}
}

func TestCheckWarnsOnHeaderlessIncludeDir(t *testing.T) {
	b, _ := testBuilder(t, `
[program]
name = "my_app"

[dependencies]
include_dirs = ["include"]
`)
	dir := b.Dir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "my_app.c"), []byte(""), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "include"), 0o755))

	_, problems, err := b.Check()
	require.NoError(t, err)
	require.Len(t, problems, 1)
	assert.True(t, problems[0].Warning)
	assert.Contains(t, problems[0].Message, "contains no headers")
}

func TestCheckPropagatesSchemaErrors(t *testing.T) {
	b, _ := testBuilder(t, `
[program]
name = "Bad Name"
`)

	_, _, err := b.Check()
	var invalid *config.InvalidIdentifierError
	require.True(t, errors.As(err, &invalid))
}

func TestCheckDoesNotRequireEnvironment(t *testing.T) {
	b, _ := testBuilder(t, `
[program]
name = "my_app"
`)
	b.detect = func() (*env.Env, error) { panic("detect must not be called by check") }

	require.NoError(t, os.WriteFile(filepath.Join(b.Dir(), "my_app.c"), []byte(""), 0o644))

	_, problems, err := b.Check()
	require.NoError(t, err)
	assert.Empty(t, problems)
}
