// Package compiler describes the supported C compilers and their
// command-line dialects.
package compiler

import (
	"fmt"
	"slices"
	"strings"
)

// Mode is a named build profile selecting a default flag set.
type Mode string

const (
	ModeDevelopment Mode = "development"
	ModeRelease     Mode = "release"
)

// Modes returns every valid build mode.
func Modes() []Mode {
	return []Mode{ModeDevelopment, ModeRelease}
}

// ParseMode validates a mode name coming from the CLI.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if !slices.Contains(Modes(), m) {
		return "", fmt.Errorf("unknown build mode %q, must be one of: development, release", s)
	}
	return m, nil
}

// DefaultName is the compiler used when the descriptor does not name one.
const DefaultName = "gcc"

// Compiler renders the dialect-specific pieces of a compile command.
// Argument ordering is owned by the build planner, not by Compiler.
type Compiler struct {
	name      string
	modeFlags map[Mode][]string
}

// modeFlagTable is the single point of mode semantics: one flag set per
// (compiler, mode) pair. Development biases toward diagnostics and debug
// symbols, release toward optimization.
var modeFlagTable = map[string]map[Mode][]string{
	"gcc": {
		ModeDevelopment: {
			"-Wall", "-Wextra",
			"-O0", "-g2", "-Wpedantic", "-Werror",
			"-fsanitize=undefined,address",
		},
		ModeRelease: {
			"-Wall", "-Wextra",
			"-O2", "-march=native", "-mtune=native",
		},
	},
}

// Lookup returns the compiler with the given name, if it is supported.
func Lookup(name string) (*Compiler, bool) {
	flags, ok := modeFlagTable[name]
	if !ok {
		return nil, false
	}
	return &Compiler{name: name, modeFlags: flags}, true
}

// Default returns the built-in default compiler.
func Default() *Compiler {
	c, ok := Lookup(DefaultName)
	if !ok {
		panic("compiler: default compiler missing from flag table")
	}
	return c
}

// Names returns the names of all supported compilers, sorted.
func Names() []string {
	names := make([]string, 0, len(modeFlagTable))
	for name := range modeFlagTable {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (c *Compiler) Name() string { return c.name }

// ModeFlags returns a copy of the default flag set for the given mode.
func (c *Compiler) ModeFlags(mode Mode) []string {
	return slices.Clone(c.modeFlags[mode])
}

// IncludeFlag renders one include-directory flag.
func (c *Compiler) IncludeFlag(dir string) string {
	return "-I" + dir
}

// ObjectArg renders one shared-object link argument. Entries without an
// .o extension get one appended.
func (c *Compiler) ObjectArg(entry string) string {
	if strings.HasSuffix(entry, ".o") {
		return entry
	}
	return entry + ".o"
}

// SourceFile returns the translation unit compiled for a program name.
func (c *Compiler) SourceFile(name string) string {
	return name + ".c"
}

// OutputArgs renders the output-artifact specification.
func (c *Compiler) OutputArgs(artifact string) []string {
	return []string{"-o", artifact}
}
