// Package builder turns a validated project descriptor into a compiler
// invocation and drives it to completion.
package builder

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/kiln-build/kiln/internal/compiler"
	"github.com/kiln-build/kiln/internal/config"
	"github.com/kiln-build/kiln/internal/env"
	"github.com/kiln-build/kiln/internal/msg"
)

// BuildError is returned when the compiler exits with nonzero status.
type BuildError struct {
	Name     string
	Compiler string
	ExitCode int
	Output   []byte
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("%s failed to build (%s exited with status %d)", e.Name, e.Compiler, e.ExitCode)
}

// Builder runs the build pipeline for a single project directory:
// environment gate, descriptor load, validation, planning, compiler
// invocation. Every stage fails fast; later stages are skipped after
// a failure.
type Builder struct {
	dir     string
	verbose bool

	// pipeline stages, overridable in tests
	detect  func() (*env.Env, error)
	load    func(path string, cenv config.Env) (map[string]any, error)
	invoker Invoker
}

// NewBuilderInDirectory creates a Builder for the project rooted at path.
func NewBuilderInDirectory(path string) (*Builder, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return &Builder{
		dir:     abs,
		detect:  env.Detect,
		load:    config.Load,
		invoker: &ExecInvoker{Dir: abs},
	}, nil
}

// SetVerbose toggles live compiler output and command-line echoing.
func (b *Builder) SetVerbose(verbose bool) {
	b.verbose = verbose
}

// Dir returns the absolute project directory.
func (b *Builder) Dir() string {
	return b.dir
}

// configure loads the descriptor and validates it into a Config.
func (b *Builder) configure() (*config.Config, error) {
	raw, err := b.load(filepath.Join(b.dir, config.FileName), config.NewEnv())
	if err != nil {
		return nil, err
	}
	return config.Validate(raw)
}

// Plan resolves the build plan without invoking the compiler. The
// environment gate runs first: the artifact path depends on the active
// environment's bin directory.
func (b *Builder) Plan(mode compiler.Mode) (*Plan, error) {
	environment, err := b.detect()
	if err != nil {
		return nil, err
	}
	cfg, err := b.configure()
	if err != nil {
		return nil, err
	}
	return NewPlan(cfg, mode, environment.BinDir)
}

// Build runs the full pipeline and returns the executed plan on
// success. On compiler failure the partially written artifact is
// removed and a *BuildError is returned.
func (b *Builder) Build(mode compiler.Mode) (*Plan, error) {
	plan, err := b.Plan(mode)
	if err != nil {
		return nil, err
	}

	var live io.Writer
	if b.verbose {
		msg.Info("%s %s", plan.Compiler, strings.Join(plan.Args, " "))
		live = &msg.PrefixWriter{Prefix: plan.Compiler + ": ", W: os.Stdout}
	}

	inv, err := b.invoker.Invoke(plan, live)
	if err != nil {
		return nil, err
	}
	if inv.ExitCode != 0 {
		// don't leave a partial artifact behind
		os.Remove(plan.Artifact)
		return nil, &BuildError{
			Name:     plan.Name,
			Compiler: plan.Compiler,
			ExitCode: inv.ExitCode,
			Output:   inv.Output,
		}
	}

	return plan, nil
}

// RunArtifact executes the built program with the terminal's stdio
// passed through. The returned error is the child's *exec.ExitError
// when it exits nonzero.
func (b *Builder) RunArtifact(plan *Plan, args []string) error {
	cmd := exec.Command(plan.Artifact, args...)
	cmd.Dir = b.dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	return cmd.Run()
}
