package cmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kiln-build/kiln/internal/builder"
	"github.com/kiln-build/kiln/internal/config"
	"github.com/kiln-build/kiln/internal/env"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "environment not ready",
			err:  &env.NotReadyError{},
			want: ExitEnvError,
		},
		{
			name: "schema error",
			err:  &config.UnsupportedCompilerError{Value: "clang"},
			want: ExitConfigError,
		},
		{
			name: "descriptor not found",
			err:  &config.NotFoundError{Path: "kiln-project.toml"},
			want: ExitConfigError,
		},
		{
			name: "wrapped schema error",
			err:  errors.Join(errors.New("context"), &config.InvalidIdentifierError{Value: "Bad"}),
			want: ExitConfigError,
		},
		{
			name: "compiler failure",
			err:  &builder.BuildError{Name: "my_app", Compiler: "gcc", ExitCode: 1},
			want: ExitFailure,
		},
		{
			name: "compiler not found",
			err:  &builder.CompilerNotFoundError{Name: "gcc"},
			want: ExitFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.err))
		})
	}
}

func TestModeFlagRejectsUnknownValues(t *testing.T) {
	mode := NewEnumValue("development", map[string]string{
		"development": "",
		"release":     "",
	})

	assert.NoError(t, mode.Set("release"))
	assert.Equal(t, "release", mode.Value())

	err := mode.Set("profiling")
	assert.EqualError(t, err, "must be one of: development, release")
	assert.Equal(t, "release", mode.Value())
}
