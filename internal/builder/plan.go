package builder

import (
	"fmt"
	"path/filepath"

	"github.com/kiln-build/kiln/internal/compiler"
	"github.com/kiln-build/kiln/internal/config"
)

// Plan is the fully resolved compiler invocation for one build. It is
// a pure function of the validated config, the mode and the install
// directory, and is never mutated once constructed.
type Plan struct {
	Compiler string        `json:"compiler" yaml:"compiler"`
	Mode     compiler.Mode `json:"mode" yaml:"mode"`
	Name     string        `json:"name" yaml:"name"`
	Args     []string      `json:"args" yaml:"args"`
	Artifact string        `json:"artifact" yaml:"artifact"`
}

// NewPlan derives the build plan. Argument order is fixed: mode-default
// flags, include-directory flags, shared-object arguments, additional
// flags, then the source file and output specification. additional_flags
// come after every generated flag so user overrides win on compilers
// with last-flag-wins semantics.
//
// NewPlan cannot fail for a validated config; an unsupported compiler
// here means the validator let one through.
func NewPlan(cfg *config.Config, mode compiler.Mode, binDir string) (*Plan, error) {
	cc, ok := compiler.Lookup(cfg.Build.Compiler)
	if !ok {
		return nil, fmt.Errorf("internal error: unsupported compiler %q reached the planner", cfg.Build.Compiler)
	}

	name := cfg.Program.Name
	artifact := filepath.Join(binDir, name)

	args := cc.ModeFlags(mode)
	for _, dir := range cfg.Dependencies.IncludeDirs {
		args = append(args, cc.IncludeFlag(dir))
	}
	for _, obj := range cfg.Dependencies.IncludeShared {
		args = append(args, cc.ObjectArg(obj))
	}
	args = append(args, cfg.Build.AdditionalFlags...)
	args = append(args, cc.SourceFile(name))
	args = append(args, cc.OutputArgs(artifact)...)

	return &Plan{
		Compiler: cc.Name(),
		Mode:     mode,
		Name:     name,
		Args:     args,
		Artifact: artifact,
	}, nil
}
