package runner

import (
	"context"
	"errors"
	"fmt"
)

// errNotMocked is returned when a testSystem method is called without a mock function set.
var errNotMocked = errors.New("testSystem: method not mocked")

// testSystem records commands instead of running them.
// LookPath resolves every name to /usr/bin/<name> unless LookPathFunc is set;
// Run fails fast unless RunFunc is set.
type testSystem struct {
	LookPathFunc func(file string) (string, error)
	EnvironFunc  func() []string
	RunFunc      func(ctx context.Context, cmd Command) error

	commands []Command
}

func (s *testSystem) LookPath(file string) (string, error) {
	if s.LookPathFunc != nil {
		return s.LookPathFunc(file)
	}
	return "/usr/bin/" + file, nil
}

func (s *testSystem) Environ() []string {
	if s.EnvironFunc != nil {
		return s.EnvironFunc()
	}
	return []string{"PATH=/usr/bin", "HOME=/home/test"}
}

func (s *testSystem) Run(ctx context.Context, cmd Command) error {
	s.commands = append(s.commands, cmd)
	if s.RunFunc != nil {
		return s.RunFunc(ctx, cmd)
	}
	return fmt.Errorf("%w: Run", errNotMocked)
}
