package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ik-hxr/cms-backend/internal/config"
	"github.com/ik-hxr/cms-backend/internal/layers"
	"github.com/ik-hxr/cms-backend/internal/messages"
)

var layersSystem layers.System = layers.RealSystem{}

func newLayersCmd(app *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   messages.LayersUse,
		Short: messages.LayersShort,
	}
	cmd.AddCommand(newLayersBuildCmd(app), newLayersListCmd(), newLayersVerifyCmd())
	return cmd
}

func newLayersBuildCmd(app *cli) *cobra.Command {
	var clean bool
	cmd := &cobra.Command{
		Use:   messages.LayersBuildUse,
		Short: messages.LayersBuildShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadProject()
			if err != nil {
				return err
			}
			selected, err := selectLayers(cfg, args)
			if err != nil {
				return err
			}
			packager, err := layers.NewPackager(layersSystem, layers.Options{
				Root:        cfg.Root,
				Installer:   cfg.InstallerOrDefault(),
				InstallArgs: cfg.Python.InstallArgs,
				Clean:       clean,
				LockPath:    config.DefaultPaths(cfg.Root).LayersLock,
				Stdout:      cmd.OutOrStdout(),
				Stderr:      cmd.ErrOrStderr(),
				Logger:      app.logger,
			})
			if err != nil {
				return err
			}
			_, err = packager.Build(cmd.Context(), selected)
			return err
		},
	}
	cmd.Flags().BoolVar(&clean, "clean", false, messages.LayersBuildFlagClean)
	return cmd
}

func newLayersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.LayersListUse,
		Short: messages.LayersListShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadProject()
			if err != nil {
				return err
			}
			layer, ok := cfg.FindLayer(args[0])
			if !ok {
				return fmt.Errorf(messages.LayersUnknownFmt, args[0])
			}
			files, err := layers.List(cfg.Abs(layer.Archive))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, file := range files {
				_, _ = fmt.Fprintln(out, file)
			}
			return nil
		},
	}
}

func newLayersVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.LayersVerifyUse,
		Short: messages.LayersVerifyShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadProject()
			if err != nil {
				return err
			}
			selected, err := selectLayers(cfg, args)
			if err != nil {
				return err
			}
			findings, err := layers.Verify(cmd.Context(), cfg.Root, selected)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(findings) == 0 {
				_, _ = fmt.Fprintln(out, messages.LayersVerifyOK)
				return nil
			}
			for _, finding := range findings {
				_, _ = fmt.Fprintln(out, finding)
			}
			return errors.New(messages.LayersVerifyFailed)
		},
	}
}

// selectLayers returns the named layers in config order, or every layer when names is empty.
func selectLayers(cfg *config.ProjectConfig, names []string) ([]config.Layer, error) {
	if len(names) == 0 {
		return cfg.Layers, nil
	}
	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		if _, ok := cfg.FindLayer(name); !ok {
			return nil, fmt.Errorf(messages.LayersUnknownFmt, name)
		}
		wanted[name] = true
	}
	var out []config.Layer
	for _, layer := range cfg.Layers {
		if wanted[layer.Name] {
			out = append(out, layer)
		}
	}
	return out, nil
}
