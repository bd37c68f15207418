package command

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

// Result holds the captured output of a finished process
type Result struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Runner starts external processes. A process that could be started but exited
// with a non zero code is not an error: the code is returned in the result.
type Runner interface {
	Run(ctx context.Context, name string, args []string, stdin io.Reader) (*Result, error)
}

// NewRunner returns a runner that executes processes on the local machine
func NewRunner(workingDir string) Runner {
	return &execRunner{workingDir: workingDir}
}

type execRunner struct {
	workingDir string
}

// Run implements interface
func (e *execRunner) Run(ctx context.Context, name string, args []string, stdin io.Reader) (*Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = e.workingDir

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if stdin != nil {
		cmd.Stdin = stdin
	}

	err := cmd.Run()
	result := &Result{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}
	if err != nil {
		if ctx.Err() != nil {
			return result, errors.Wrapf(ctx.Err(), "run %s", name)
		}
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}

		return nil, errors.Wrapf(err, "start %s", name)
	}

	return result, nil
}

// String returns the command line the way it would be typed into a shell
func String(name string, args []string) string {
	return strings.Join(append([]string{name}, args...), " ")
}
