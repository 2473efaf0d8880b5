package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ik-hxr/cms-backend/internal/messages"
	"github.com/ik-hxr/cms-backend/internal/root"
	"github.com/ik-hxr/cms-backend/internal/templates"
)

var writeFile = os.WriteFile

func newInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   messages.InitUse,
		Short: messages.InitShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repoRoot, err := resolveInitRoot()
			if err != nil {
				return err
			}
			path := filepath.Join(repoRoot, root.ConfigFileName)
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf(messages.InitExistsFmt, path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf(messages.InitWriteFailedFmt, path, err)
			}
			data, err := templates.Read(root.ConfigFileName)
			if err != nil {
				return err
			}
			if err := writeFile(path, data, 0o644); err != nil {
				return fmt.Errorf(messages.InitWriteFailedFmt, path, err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), messages.InitWrittenFmt, path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, messages.InitFlagForce)
	return cmd
}
