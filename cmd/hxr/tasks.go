package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ik-hxr/cms-backend/internal/messages"
	"github.com/ik-hxr/cms-backend/internal/tasks"
)

func newTasksCmd() *cobra.Command {
	var env string
	cmd := &cobra.Command{
		Use:   messages.TasksUse,
		Short: messages.TasksShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadProject()
			if err != nil {
				return err
			}
			table, err := tasks.Build(&cfg.Config)
			if err != nil {
				return err
			}
			list := table.Tasks()
			if env != "" {
				list = table.ForEnvironment(env)
				if len(list) == 0 {
					return fmt.Errorf(messages.TasksNoneForEnvFmt, env)
				}
			}
			width := 0
			for _, task := range list {
				width = max(width, len(task.Name))
			}
			out := cmd.OutOrStdout()
			for _, task := range list {
				_, _ = fmt.Fprintf(out, messages.TasksLineFmt, width, task.Name, task.CommandLine())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&env, "env", "", messages.TasksFlagEnv)
	return cmd
}
