package builder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/kiln-build/kiln/internal/compiler"
	"github.com/kiln-build/kiln/internal/config"
)

// Problem is one preflight finding. Warnings flag suspicious but
// buildable projects; everything else would fail the compile.
type Problem struct {
	Path    string
	Warning bool
	Message string
}

// Check validates the descriptor and then probes the filesystem paths
// it declares: the program source must exist, every include directory
// must exist (and warns when it holds no headers), and every shared
// object must exist. It does not require the environment marker and
// never invokes the compiler.
func (b *Builder) Check() (*config.Config, []Problem, error) {
	cfg, err := b.configure()
	if err != nil {
		return nil, nil, err
	}
	return cfg, b.preflight(cfg), nil
}

type probe func() *Problem

// preflight runs all probes with a bounded worker pool. Results land in
// index-stable slots so findings report in declaration order.
func (b *Builder) preflight(cfg *config.Config) []Problem {
	cc, ok := compiler.Lookup(cfg.Build.Compiler)
	if !ok {
		cc = compiler.Default()
	}

	var probes []probe

	source := cc.SourceFile(cfg.Program.Name)
	probes = append(probes, func() *Problem {
		return b.probeFile(source, "program source")
	})

	for _, dir := range cfg.Dependencies.IncludeDirs {
		dir := dir
		probes = append(probes, func() *Problem {
			return b.probeIncludeDir(dir)
		})
	}

	for _, obj := range cfg.Dependencies.IncludeShared {
		rendered := cc.ObjectArg(obj)
		probes = append(probes, func() *Problem {
			return b.probeFile(rendered, "shared object")
		})
	}

	results := make([]*Problem, len(probes))

	eg, _ := errgroup.WithContext(context.Background())
	eg.SetLimit(runtime.NumCPU())
	for i, p := range probes {
		i, p := i, p
		eg.Go(func() error {
			results[i] = p()
			return nil
		})
	}
	eg.Wait()

	var problems []Problem
	for _, r := range results {
		if r != nil {
			problems = append(problems, *r)
		}
	}
	return problems
}

func (b *Builder) probeFile(rel, what string) *Problem {
	path := filepath.Join(b.dir, rel)
	stat, err := os.Stat(path)
	if err != nil {
		return &Problem{
			Path:    rel,
			Message: fmt.Sprintf("%s %q does not exist", what, rel),
		}
	}
	if stat.IsDir() {
		return &Problem{
			Path:    rel,
			Message: fmt.Sprintf("%s %q is a directory", what, rel),
		}
	}
	return nil
}

func (b *Builder) probeIncludeDir(rel string) *Problem {
	path := filepath.Join(b.dir, rel)
	stat, err := os.Stat(path)
	if err != nil || !stat.IsDir() {
		return &Problem{
			Path:    rel,
			Message: fmt.Sprintf("include directory %q does not exist", rel),
		}
	}

	headers, err := doublestar.Glob(os.DirFS(path), "**/*.h", doublestar.WithFilesOnly())
	if err == nil && len(headers) == 0 {
		return &Problem{
			Path:    rel,
			Warning: true,
			Message: fmt.Sprintf("include directory %q contains no headers", rel),
		}
	}
	return nil
}
