package runner

import (
	"context"
	"io"
	"os"
	"os/exec"
)

// Command is one external process invocation.
type Command struct {
	// Path is the resolved executable; Args includes argv[0].
	Path   string
	Args   []string
	Env    []string
	Dir    string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// System abstracts the OS operations needed to start external tools.
// Packages that shell out (runner, layers) accept this interface so tests can
// record invocations instead of spawning processes.
type System interface {
	LookPath(file string) (string, error)
	Environ() []string
	Run(ctx context.Context, cmd Command) error
}

// RealSystem implements System using os/exec.
type RealSystem struct{}

// LookPath searches PATH for an executable named file.
func (RealSystem) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Environ returns a copy of strings representing the environment.
func (RealSystem) Environ() []string {
	return os.Environ()
}

// Run starts cmd and waits for it to exit. A non-zero exit is returned as
// *exec.ExitError so callers can forward the child's exit code.
func (RealSystem) Run(ctx context.Context, cmd Command) error {
	var args []string
	if len(cmd.Args) > 1 {
		args = cmd.Args[1:]
	}
	c := exec.CommandContext(ctx, cmd.Path, args...)
	if len(cmd.Args) > 0 {
		c.Args[0] = cmd.Args[0]
	}
	c.Env = cmd.Env
	c.Dir = cmd.Dir
	c.Stdin = cmd.Stdin
	c.Stdout = cmd.Stdout
	c.Stderr = cmd.Stderr
	return c.Run()
}
