package main

import "github.com/spf13/cobra"

// splitDashArgs separates positional args from the pass-through args the
// user placed after "--".
func splitDashArgs(cmd *cobra.Command, args []string) ([]string, []string) {
	dash := cmd.ArgsLenAtDash()
	if dash < 0 {
		return args, nil
	}
	return args[:dash], args[dash:]
}
