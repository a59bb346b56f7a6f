package builder

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os/exec"
)

// Invocation is the captured result of one compiler run. Output holds
// the interleaved stdout and stderr regardless of verbosity.
type Invocation struct {
	ExitCode int
	Output   []byte
}

// CompilerNotFoundError is returned when the plan's compiler executable
// cannot be located on the system.
type CompilerNotFoundError struct {
	Name string
	Err  error
}

func (e *CompilerNotFoundError) Error() string {
	return fmt.Sprintf("compiler %q could not be found on this system", e.Name)
}

func (e *CompilerNotFoundError) Unwrap() error { return e.Err }

// Invoker runs the compiler described by a plan. It exists as an
// interface so the pipeline can be exercised without spawning
// processes.
type Invoker interface {
	// Invoke runs the compiler synchronously. When live is non-nil the
	// compiler's output is additionally streamed to it as it arrives.
	// A nonzero compiler exit is reported through Invocation, not as
	// an error.
	Invoke(plan *Plan, live io.Writer) (*Invocation, error)
}

// ExecInvoker invokes the real compiler as a child process rooted in
// the project directory.
type ExecInvoker struct {
	Dir string
}

func (iv *ExecInvoker) Invoke(plan *Plan, live io.Writer) (*Invocation, error) {
	path, err := exec.LookPath(plan.Compiler)
	if err != nil {
		return nil, &CompilerNotFoundError{Name: plan.Compiler, Err: err}
	}

	var buf bytes.Buffer
	var out io.Writer = &buf
	if live != nil {
		out = io.MultiWriter(&buf, live)
	}

	cmd := exec.Command(path, plan.Args...)
	cmd.Dir = iv.Dir
	// stdout and stderr share one writer so diagnostics interleave the
	// way the compiler emitted them
	cmd.Stdout = out
	cmd.Stderr = out

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &Invocation{ExitCode: exitErr.ExitCode(), Output: buf.Bytes()}, nil
		}
		return nil, &CompilerNotFoundError{Name: plan.Compiler, Err: err}
	}

	return &Invocation{ExitCode: 0, Output: buf.Bytes()}, nil
}
