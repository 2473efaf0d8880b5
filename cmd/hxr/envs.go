package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ik-hxr/cms-backend/internal/config"
	"github.com/ik-hxr/cms-backend/internal/messages"
)

const (
	outputTable = "table"
	outputYAML  = "yaml"
)

// envRecord is one environment as rendered by "envs --output yaml".
type envRecord struct {
	Name      string `yaml:"name"`
	StackName string `yaml:"stack_name"`
	Region    string `yaml:"region"`
	Account   string `yaml:"account,omitempty"`
	Protected bool   `yaml:"protected"`
}

func newEnvsCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   messages.EnvsUse,
		Short: messages.EnvsShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadProject()
			if err != nil {
				return err
			}
			switch output {
			case outputTable:
				return writeEnvsTable(cmd.OutOrStdout(), cfg)
			case outputYAML:
				return writeEnvsYAML(cmd.OutOrStdout(), cfg)
			default:
				return fmt.Errorf(messages.EnvsOutputInvalidFmt, output)
			}
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, messages.EnvsFlagOutput)
	return cmd
}

func writeEnvsTable(out io.Writer, cfg *config.ProjectConfig) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, messages.EnvsHeader)
	for _, name := range cfg.EnvironmentNames() {
		env := cfg.Environments[name]
		account := env.Account
		if account == "" {
			account = messages.EnvsNoAccount
		}
		_, _ = fmt.Fprintf(w, messages.EnvsLineFmt, name, env.StackName, env.Region, account, env.Protected)
	}
	return w.Flush()
}

func writeEnvsYAML(out io.Writer, cfg *config.ProjectConfig) error {
	names := cfg.EnvironmentNames()
	records := make([]envRecord, 0, len(names))
	for _, name := range names {
		env := cfg.Environments[name]
		records = append(records, envRecord{
			Name:      name,
			StackName: env.StackName,
			Region:    env.Region,
			Account:   env.Account,
			Protected: env.Protected,
		})
	}
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return err
	}
	return enc.Close()
}
