package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/bloglist/internal/config"
	"github.com/five82/bloglist/internal/logtail"
)

func newLogsCmd(flags *globalFlags) *cobra.Command {
	var lines int
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the tail of the client log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(flags.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			tail, err := logtail.Read(cfg.LogFile, lines)
			if err != nil {
				return err
			}
			format := logtail.FormatLine
			if isTerminal(cmd.OutOrStdout()) {
				format = logtail.ColorizeLine
			}
			out := cmd.OutOrStdout()
			for _, line := range tail {
				fmt.Fprintln(out, format(line))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "number of lines to show (0 for all)")
	return cmd
}
