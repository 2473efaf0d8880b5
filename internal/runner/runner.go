// Package runner executes task table entries as external processes.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ik-hxr/cms-backend/internal/messages"
	"github.com/ik-hxr/cms-backend/internal/tasks"
)

// ErrConfirmationRequired is returned when a task needs confirmation and no
// prompt is available.
var ErrConfirmationRequired = errors.New("confirmation required")

// ErrDeclined is returned when the user answers no to a confirmation prompt.
var ErrDeclined = errors.New("declined")

// ConfirmFunc asks whether task may run.
type ConfirmFunc func(task tasks.Task) (bool, error)

// Options configures a Runner. Zero values fall back to the process stdio and a no-op logger.
type Options struct {
	Dir       string
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *zap.Logger
	Confirm   ConfirmFunc
	AssumeYes bool
}

// Runner runs tasks through a System. It keeps no state between runs.
type Runner struct {
	sys  System
	opts Options
}

// New returns a Runner for sys.
func New(sys System, opts Options) (*Runner, error) {
	if sys == nil {
		return nil, errors.New(messages.RunnerSystemRequired)
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Runner{sys: sys, opts: opts}, nil
}

// Run executes task with extraArgs appended to its argv and waits for it to exit.
// The child's error is returned unchanged; a non-zero exit is an *exec.ExitError.
func (r *Runner) Run(ctx context.Context, task tasks.Task, extraArgs []string) error {
	if len(task.Argv) == 0 {
		return errors.New(messages.RunnerEmptyArgv)
	}
	if err := r.confirm(task); err != nil {
		return err
	}

	argv := append(append([]string(nil), task.Argv...), extraArgs...)
	path, err := r.sys.LookPath(argv[0])
	if err != nil {
		return fmt.Errorf(messages.RunnerLookPathFmt, task.Name, err)
	}

	runID := uuid.NewString()
	log := r.opts.Logger.With(
		zap.String("task", task.Name),
		zap.String("run_id", runID),
	)
	log.Debug("starting task",
		zap.String("command", tasks.JoinArgs(argv)),
		zap.String("path", path),
		zap.String("environment", task.Environment))

	err = r.sys.Run(ctx, Command{
		Path:   path,
		Args:   argv,
		Env:    BuildEnv(r.sys.Environ(), task.Env, runID, task.Environment),
		Dir:    r.opts.Dir,
		Stdin:  r.opts.Stdin,
		Stdout: r.opts.Stdout,
		Stderr: r.opts.Stderr,
	})
	if err != nil {
		log.Debug("task failed", zap.Error(err))
		return err
	}
	log.Debug("task finished")
	return nil
}

func (r *Runner) confirm(task tasks.Task) error {
	if !task.NeedsConfirmation() || r.opts.AssumeYes {
		return nil
	}
	if r.opts.Confirm == nil {
		return fmt.Errorf("%w: "+messages.PromptRequiresTerminalFmt, ErrConfirmationRequired, task.Name)
	}
	ok, err := r.opts.Confirm(task)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: "+messages.RunDeclinedFmt, ErrDeclined, task.Name)
	}
	return nil
}
