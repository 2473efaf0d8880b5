// Package tasks expands hxr.toml into the task table: one fixed command line per task name.
package tasks

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/shlex"

	"github.com/ik-hxr/cms-backend/internal/config"
	"github.com/ik-hxr/cms-backend/internal/messages"
)

// ErrUnknownTask is wrapped by Lookup when no task has the requested name.
var ErrUnknownTask = errors.New("unknown task")

// Task is one entry in the task table.
type Task struct {
	Name        string
	Description string
	Argv        []string
	// Environment is empty for tasks that do not target an environment.
	Environment string
	Action      string
	Destructive bool
	// Protected mirrors the target environment's protected flag.
	Protected bool
	Env       map[string]string
}

// CommandLine renders the task argv as a single shell-quoted string.
func (t Task) CommandLine() string {
	return JoinArgs(t.Argv)
}

// NeedsConfirmation reports whether the task must be confirmed before it runs.
func (t Task) NeedsConfirmation() bool {
	return t.Destructive && t.Protected
}

// Table is the expanded task table, sorted by name.
type Table struct {
	tasks []Task
	index map[string]int
}

// Build expands cfg into a task table.
func Build(cfg *config.Config) (*Table, error) {
	var all []Task
	for _, env := range cfg.EnvironmentNames() {
		envCfg := cfg.Environments[env]
		for _, action := range cfg.Deploy.Actions {
			all = append(all, deployTask(cfg.Deploy, env, envCfg, action))
		}
	}
	if cfg.Deploy.Bootstrap {
		all = append(all, Task{
			Name:        config.BootstrapTaskName,
			Description: messages.TaskBootstrapDesc,
			Argv:        []string{cfg.Deploy.Tool, config.BootstrapTaskName, "--profile", cfg.Deploy.Profile},
			Action:      config.BootstrapTaskName,
		})
	}
	for _, name := range cfg.TaskNames() {
		custom := cfg.Tasks[name]
		argv, err := shlex.Split(custom.Command)
		if err != nil {
			return nil, fmt.Errorf(messages.TaskShellSplitFmt, custom.Command, err)
		}
		if len(argv) == 0 {
			return nil, fmt.Errorf(messages.ConfigTaskCommandRequiredFmt, "tasks", name)
		}
		all = append(all, Task{
			Name:        name,
			Description: custom.Description,
			Argv:        argv,
			Env:         custom.Env,
		})
	}
	return newTable(all), nil
}

func deployTask(deploy config.Deploy, env string, envCfg config.Environment, action string) Task {
	argv := []string{
		deploy.Tool, action,
		"--profile", deploy.Profile,
		"--context", deploy.ContextKey + "=" + env,
	}
	if envCfg.Account != "" {
		argv = append(argv, "--context", "account="+envCfg.Account)
	}
	return Task{
		Name:        config.DeployTaskName(action, env),
		Description: fmt.Sprintf(messages.TaskDeployDescFmt, actionVerb(action), envCfg.StackName, env, envCfg.Region),
		Argv:        argv,
		Environment: env,
		Action:      action,
		Destructive: action == config.ActionDestroy,
		Protected:   envCfg.Protected,
	}
}

func actionVerb(action string) string {
	switch action {
	case config.ActionDeploy:
		return "Deploy"
	case config.ActionDestroy:
		return "Destroy"
	case config.ActionDiff:
		return "Diff"
	case config.ActionSynth:
		return "Synthesize"
	default:
		return action
	}
}

func newTable(all []Task) *Table {
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	index := make(map[string]int, len(all))
	for i, task := range all {
		index[task.Name] = i
	}
	return &Table{tasks: all, index: index}
}

// Tasks returns a copy of every task in name order.
func (t *Table) Tasks() []Task {
	return append([]Task(nil), t.tasks...)
}

// Names returns every task name in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.tasks))
	for i, task := range t.tasks {
		names[i] = task.Name
	}
	return names
}

// ForEnvironment returns the tasks that target env.
func (t *Table) ForEnvironment(env string) []Task {
	var out []Task
	for _, task := range t.tasks {
		if task.Environment == env {
			out = append(out, task)
		}
	}
	return out
}

// Lookup returns the task named name. Unknown names wrap ErrUnknownTask and
// list tasks sharing the same leading word, if any.
func (t *Table) Lookup(name string) (Task, error) {
	if i, ok := t.index[name]; ok {
		return t.tasks[i], nil
	}
	if suggestions := t.suggest(name); len(suggestions) > 0 {
		return Task{}, fmt.Errorf(messages.TaskUnknownSuggestFmt, ErrUnknownTask, name, strings.Join(suggestions, ", "))
	}
	return Task{}, fmt.Errorf(messages.TaskUnknownFmt, ErrUnknownTask, name)
}

func (t *Table) suggest(name string) []string {
	head, _, _ := strings.Cut(name, "-")
	if head == "" {
		return nil
	}
	var out []string
	for _, task := range t.tasks {
		taskHead, _, _ := strings.Cut(task.Name, "-")
		if taskHead == head || strings.HasPrefix(task.Name, name) {
			out = append(out, task.Name)
		}
	}
	return out
}
