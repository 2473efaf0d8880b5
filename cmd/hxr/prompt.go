package main

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/ik-hxr/cms-backend/internal/messages"
	"github.com/ik-hxr/cms-backend/internal/runner"
	"github.com/ik-hxr/cms-backend/internal/tasks"
	"github.com/ik-hxr/cms-backend/internal/terminal"
)

var isTerminal = terminal.IsInteractive

var promptConfirm = func(title string) (bool, error) {
	var ok bool
	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Affirmative("Run").
			Negative("Cancel").
			Value(&ok),
	)).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}

// confirmFunc returns the confirmation prompt for destructive tasks, or nil
// when no terminal is attached.
func confirmFunc() runner.ConfirmFunc {
	if !isTerminal() {
		return nil
	}
	return func(task tasks.Task) (bool, error) {
		return promptConfirm(fmt.Sprintf(messages.RunConfirmPromptFmt, task.Name, task.Environment, task.CommandLine()))
	}
}
