package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cgast/featspec/pkg/spec"
)

var validateCmd = &cobra.Command{
	Use:   "validate <spec.yaml> [spec.yaml...]",
	Short: "Check spec files for authoring mistakes without running them",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bad := 0
		for _, path := range args {
			sp, err := spec.Load(path)
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", path, err)
				bad++
				continue
			}

			vr := spec.Validate(sp)
			if vr.Valid() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d scenario(s))\n", path, len(sp.Scenarios))
				continue
			}
			bad++
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d error(s)\n", path, len(vr.Errors))
			for _, e := range vr.Errors {
				fmt.Fprintf(cmd.OutOrStdout(), "  - %s: %s\n", e.Field, e.Message)
			}
		}

		if bad > 0 {
			return fmt.Errorf("%d spec file(s) failed validation", bad)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
