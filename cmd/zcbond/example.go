package main

import (
	"fmt"
	"io"

	"github.com/rpgo/zcbond/internal/config"
	"github.com/rpgo/zcbond/internal/output"
	"github.com/spf13/cobra"
)

func newExampleCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "example [FILE]",
		Short: "Write the reference configuration as YAML",
		Long:  "Writes the reference configuration to FILE, or to stdout when FILE is omitted.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg := config.NewInputParser().CreateExampleConfiguration()
			if len(args) == 1 {
				if err := output.SaveConfiguration(cfg, args[0]); err != nil {
					return fmt.Errorf("failed to write example configuration: %w", err)
				}
				return nil
			}
			data, err := output.MarshalConfiguration(cfg)
			if err != nil {
				return err
			}
			_, err = stdout.Write(data)
			return err
		},
	}
}
