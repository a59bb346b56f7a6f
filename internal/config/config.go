// Package config loads and validates the kiln project descriptor.
//
// Loading is purely structural: TOML is decoded into an untyped map and
// {{ ... }} expressions are interpolated. Validation is a separate,
// total pass that shapes the raw map into an immutable Config.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"regexp"
	"runtime"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/pelletier/go-toml/v2"
)

// FileName is the project descriptor at a project's root.
const FileName = "kiln-project.toml"

// Config is the validated, strongly-shaped project descriptor.
// Constructed only by Validate and never mutated afterwards.
type Config struct {
	Program      ProgramSection
	Dependencies DependenciesSection
	Build        BuildSection
}

// ProgramSection defines the [program] section.
type ProgramSection struct {
	Name        string
	Description string
}

// DependenciesSection defines the [dependencies] section.
type DependenciesSection struct {
	IncludeDirs   []string
	IncludeShared []string
}

// BuildSection defines the [build] section.
type BuildSection struct {
	Compiler        string
	AdditionalFlags []string
}

// Env is the expression environment descriptor strings are interpolated
// against.
type Env struct {
	TargetOS   string            `expr:"target_os"`
	TargetArch string            `expr:"target_arch"`
	Environ    map[string]string `expr:"environ"`
}

// NewEnv builds the interpolation environment for the current process.
func NewEnv() Env {
	environ := make(map[string]string)
	for _, e := range os.Environ() {
		if i := strings.Index(e, "="); i >= 0 {
			environ[e[:i]] = e[i+1:]
		}
	}

	return Env{
		TargetOS:   runtime.GOOS,
		TargetArch: runtime.GOARCH,
		Environ:    environ,
	}
}

var exprRegex = regexp.MustCompile(`\{\{(.+?)\}\}`)

// evaluateString finds and evaluates all {{...}} expressions in a string
func evaluateString(s string, env Env) (string, error) {
	matches := exprRegex.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s, nil
	}

	var sb strings.Builder
	lastIndex := 0

	for _, matchIndexes := range matches {
		sb.WriteString(s[lastIndex:matchIndexes[0]])

		expression := strings.TrimSpace(s[matchIndexes[2]:matchIndexes[3]])
		program, err := expr.Compile(expression, expr.Env(env))
		if err != nil {
			return "", fmt.Errorf("failed to compile expression %q: %w", expression, err)
		}

		result, err := expr.Run(program, env)
		if err != nil {
			return "", fmt.Errorf("failed to run expression %q: %w", expression, err)
		}

		sb.WriteString(fmt.Sprintf("%v", result))
		lastIndex = matchIndexes[1]
	}

	sb.WriteString(s[lastIndex:])

	return sb.String(), nil
}

// processExpressions recursively walks the parsed TOML data and evaluates expressions in strings
func processExpressions(data any, env Env) (any, error) {
	switch v := data.(type) {
	case map[string]any:
		for key, val := range v {
			processedVal, err := processExpressions(val, env)
			if err != nil {
				return nil, err
			}
			v[key] = processedVal
		}
		return v, nil
	case []any:
		for i, item := range v {
			processedItem, err := processExpressions(item, env)
			if err != nil {
				return nil, err
			}
			v[i] = processedItem
		}
		return v, nil
	case string:
		return evaluateString(v, env)
	default:
		return data, nil
	}
}

// Load reads the descriptor at path into a raw untyped mapping. It
// performs no semantic validation; see Validate for that.
func Load(path string, env Env) (map[string]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &NotFoundError{Path: path, Err: err}
	}
	defer f.Close()

	var raw map[string]any
	dec := toml.NewDecoder(bufio.NewReader(f))
	if err := dec.Decode(&raw); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			return nil, &ParseError{Path: path, Detail: derr.String()}
		}
		return nil, &ParseError{Path: path, Detail: err.Error()}
	}

	processed, err := processExpressions(raw, env)
	if err != nil {
		return nil, &ParseError{Path: path, Detail: err.Error()}
	}

	return processed.(map[string]any), nil
}
