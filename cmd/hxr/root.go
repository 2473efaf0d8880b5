package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ik-hxr/cms-backend/internal/logging"
	"github.com/ik-hxr/cms-backend/internal/messages"
	"github.com/ik-hxr/cms-backend/internal/tasks"
)

var newLogger = logging.New

// cli carries state shared by every subcommand of one root command.
type cli struct {
	verbose bool
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	app := &cli{logger: zap.NewNop()}
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			app.logger = newLogger(cmd.ErrOrStderr(), app.verbose)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = app.logger.Sync()
		},
	}
	cmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, messages.RootFlagVerbose)
	cmd.Flags().BoolP("version", "", false, messages.RootVersionFlag)

	cmd.AddCommand(
		newInitCmd(),
		newTasksCmd(),
		newRunCmd(app),
		newEnvsCmd(),
		newLayersCmd(app),
		newDoctorCmd(app),
	)
	addTaskAliases(cmd, app)
	return cmd
}

// addTaskAliases registers every task in the repo's table as a top-level
// command. Nothing is added when no valid hxr.toml is found; `hxr run`
// reports the load error instead.
func addTaskAliases(cmd *cobra.Command, app *cli) {
	cfg, err := loadProject()
	if err != nil {
		return
	}
	table, err := tasks.Build(&cfg.Config)
	if err != nil {
		return
	}
	all := table.Tasks()
	if len(all) == 0 {
		return
	}
	cmd.AddGroup(&cobra.Group{ID: messages.TasksGroupID, Title: messages.TasksGroupTitle})
	for _, task := range all {
		cmd.AddCommand(newTaskAliasCmd(app, task))
	}
}

func newTaskAliasCmd(app *cli, task tasks.Task) *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:     task.Name,
		Short:   task.Description,
		Long:    fmt.Sprintf(messages.TaskAliasLongFmt, task.CommandLine()),
		GroupID: messages.TasksGroupID,
		Args: func(cmd *cobra.Command, args []string) error {
			positional, _ := splitDashArgs(cmd, args)
			if len(positional) > 0 {
				return fmt.Errorf(messages.TaskAliasArgsFmt, task.Name, positional[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, extra := splitDashArgs(cmd, args)
			return runTask(cmd, app, task.Name, extra, opts)
		},
	}
	opts.bind(cmd)
	return cmd
}
