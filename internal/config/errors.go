package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/kiln-build/kiln/internal/compiler"
)

// Error is implemented by every descriptor error in this package, so
// callers can classify failures without enumerating concrete types.
type Error interface {
	error
	configError()
}

// IsError reports whether err is (or wraps) a descriptor error.
func IsError(err error) bool {
	var ce Error
	return errors.As(err, &ce)
}

// NotFoundError is returned when the descriptor file cannot be read.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	if errors.Is(e.Err, fs.ErrPermission) {
		return fmt.Sprintf("file %q cannot be read (missing permissions)", e.Path)
	}
	return fmt.Sprintf("file %q could not be found", e.Path)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

func (*NotFoundError) configError() {}

// ParseError is returned when the descriptor is structurally invalid:
// malformed TOML or a failing {{ ... }} expression.
type ParseError struct {
	Path   string
	Detail string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("file %q is not a valid project descriptor: %s", e.Path, e.Detail)
}

func (*ParseError) configError() {}

// MissingSectionError is returned when a required section is absent.
type MissingSectionError struct {
	Section string
}

func (e *MissingSectionError) Error() string {
	return fmt.Sprintf("section %q is missing", e.Section)
}

func (*MissingSectionError) configError() {}

// MissingFieldError is returned when a required field is absent.
type MissingFieldError struct {
	Section string
	Field   string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("field %q (in section %q) is missing", e.Field, e.Section)
}

func (*MissingFieldError) configError() {}

// FieldTypeError is returned when a field holds a value of the wrong
// type, including a reserved section name bound to a non-table value.
type FieldTypeError struct {
	Section  string // empty for top-level entries
	Field    string
	Expected string
}

func (e *FieldTypeError) Error() string {
	if e.Section == "" {
		return fmt.Sprintf("field %q has an incorrect type: expected %s", e.Field, e.Expected)
	}
	return fmt.Sprintf("field %q (in section %q) has an incorrect type: expected %s",
		e.Field, e.Section, e.Expected)
}

func (*FieldTypeError) configError() {}

// InvalidIdentifierError is returned when program.name does not match
// the identifier grammar.
type InvalidIdentifierError struct {
	Value string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("program name %q is not a valid identifier (lowercase letters and underscores only)", e.Value)
}

func (*InvalidIdentifierError) configError() {}

// UnsupportedCompilerError is returned when build.compiler names a
// compiler outside the supported set.
type UnsupportedCompilerError struct {
	Value string
}

func (e *UnsupportedCompilerError) Error() string {
	return fmt.Sprintf("compiler %q is not supported (supported: %s)",
		e.Value, strings.Join(compiler.Names(), ", "))
}

func (*UnsupportedCompilerError) configError() {}
