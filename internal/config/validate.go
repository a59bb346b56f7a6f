package config

import (
	"regexp"

	"github.com/kiln-build/kiln/internal/compiler"
)

// identifierRegex is the grammar for program.name: nonempty, lowercase
// letters and underscores only.
var identifierRegex = regexp.MustCompile(`^[a-z_]+$`)

// IsIdentifier reports whether s matches the program-name grammar.
func IsIdentifier(s string) bool {
	return identifierRegex.MatchString(s)
}

// Validate shapes the raw descriptor mapping into a Config. It is total
// and side-effect-free: it never touches the filesystem or spawns
// processes. The first violation in schema order is returned; per
// section the order is presence, then type, then value domain. Unknown
// fields and unknown top-level sections are ignored.
func Validate(raw map[string]any) (*Config, error) {
	cfg := &Config{
		Build: BuildSection{Compiler: compiler.DefaultName},
	}

	program, ok, err := section(raw, "program")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &MissingSectionError{Section: "program"}
	}

	name, ok, err := stringField(program, "program", "name")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &MissingFieldError{Section: "program", Field: "name"}
	}
	if !IsIdentifier(name) {
		return nil, &InvalidIdentifierError{Value: name}
	}
	cfg.Program.Name = name

	if desc, ok, err := stringField(program, "program", "description"); err != nil {
		return nil, err
	} else if ok {
		cfg.Program.Description = desc
	}

	deps, ok, err := section(raw, "dependencies")
	if err != nil {
		return nil, err
	}
	if ok {
		if dirs, ok, err := stringListField(deps, "dependencies", "include_dirs"); err != nil {
			return nil, err
		} else if ok {
			cfg.Dependencies.IncludeDirs = dirs
		}
		if shared, ok, err := stringListField(deps, "dependencies", "include_shared"); err != nil {
			return nil, err
		} else if ok {
			cfg.Dependencies.IncludeShared = shared
		}
	}

	build, ok, err := section(raw, "build")
	if err != nil {
		return nil, err
	}
	if ok {
		if cc, ok, err := stringField(build, "build", "compiler"); err != nil {
			return nil, err
		} else if ok {
			if _, supported := compiler.Lookup(cc); !supported {
				return nil, &UnsupportedCompilerError{Value: cc}
			}
			cfg.Build.Compiler = cc
		}
		if flags, ok, err := stringListField(build, "build", "additional_flags"); err != nil {
			return nil, err
		} else if ok {
			cfg.Build.AdditionalFlags = flags
		}
	}

	return cfg, nil
}

// section extracts a reserved top-level table. A reserved name bound to
// a non-table value is a type error rather than an unknown field.
func section(raw map[string]any, name string) (map[string]any, bool, error) {
	v, ok := raw[name]
	if !ok {
		return nil, false, nil
	}
	table, ok := v.(map[string]any)
	if !ok {
		return nil, false, &FieldTypeError{Field: name, Expected: "table"}
	}
	return table, true, nil
}

func stringField(table map[string]any, sectionName, name string) (string, bool, error) {
	v, ok := table[name]
	if !ok {
		return "", false, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", false, &FieldTypeError{Section: sectionName, Field: name, Expected: "string"}
	}
	return s, true, nil
}

func stringListField(table map[string]any, sectionName, name string) ([]string, bool, error) {
	v, ok := table[name]
	if !ok {
		return nil, false, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, false, &FieldTypeError{Section: sectionName, Field: name, Expected: "list of strings"}
	}
	result := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false, &FieldTypeError{Section: sectionName, Field: name, Expected: "list of strings"}
		}
		result = append(result, s)
	}
	return result, true, nil
}
