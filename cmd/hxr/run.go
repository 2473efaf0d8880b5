package main

import (
	"errors"
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/ik-hxr/cms-backend/internal/messages"
	"github.com/ik-hxr/cms-backend/internal/runner"
	"github.com/ik-hxr/cms-backend/internal/tasks"
)

var runnerSystem runner.System = runner.RealSystem{}

type runOptions struct {
	dryRun bool
	yes    bool
}

func (o *runOptions) bind(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&o.dryRun, "dry-run", "n", false, messages.RunFlagDryRun)
	cmd.Flags().BoolVarP(&o.yes, "yes", "y", false, messages.RunFlagYes)
}

func newRunCmd(app *cli) *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:   messages.RunUse,
		Short: messages.RunShort,
		Args: func(cmd *cobra.Command, args []string) error {
			positional, _ := splitDashArgs(cmd, args)
			if len(positional) == 0 {
				return errors.New(messages.RunTaskRequired)
			}
			if len(positional) > 1 {
				return fmt.Errorf(messages.RunTooManyArgsFmt, positional[1])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			positional, extra := splitDashArgs(cmd, args)
			return runTask(cmd, app, positional[0], extra, opts)
		},
	}
	opts.bind(cmd)
	return cmd
}

// runTask looks name up in the repo's task table and runs it with extra
// appended. A non-zero child exit becomes a SilentExitError carrying the
// child's exit code; the child already wrote its own diagnostics.
func runTask(cmd *cobra.Command, app *cli, name string, extra []string, opts runOptions) error {
	cfg, err := loadProject()
	if err != nil {
		return err
	}
	table, err := tasks.Build(&cfg.Config)
	if err != nil {
		return err
	}
	task, err := table.Lookup(name)
	if err != nil {
		return err
	}

	if opts.dryRun {
		argv := append(append([]string(nil), task.Argv...), extra...)
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), messages.RunDryRunFmt, tasks.JoinArgs(argv))
		return nil
	}

	r, err := runner.New(runnerSystem, runner.Options{
		Dir:       cfg.Root,
		Stdin:     cmd.InOrStdin(),
		Stdout:    cmd.OutOrStdout(),
		Stderr:    cmd.ErrOrStderr(),
		Logger:    app.logger,
		Confirm:   confirmFunc(),
		AssumeYes: opts.yes,
	})
	if err != nil {
		return err
	}
	err = r.Run(cmd.Context(), task, extra)
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code <= 0 {
			code = 1
		}
		return &SilentExitError{Code: code}
	}
	return err
}
