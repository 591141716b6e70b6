package main

import (
	"errors"
	"fmt"

	"github.com/rasterstat/rasterstat/internal/logs"
	"github.com/spf13/cobra"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Inspect or clear the error logs",
}

var logsViewCmd = &cobra.Command{
	Use:   "view",
	Short: "Display the contents of all error logs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return logStore.Dump(cmd.OutOrStdout())
	},
}

var logsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all error logs, including the active log file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		deleted, err := logStore.Clear()

		var clearErr *logs.ClearError
		if errors.As(err, &clearErr) {
			for _, path := range clearErr.Failed {
				fmt.Fprintf(cmd.OutOrStdout(), "Could not delete %s because it is in use.\n", path)
			}
			err = nil
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d log file(s). Nothing further will be logged until the next run.\n", len(deleted))
		return nil
	},
}

func init() {
	logsCmd.AddCommand(logsViewCmd)
	logsCmd.AddCommand(logsClearCmd)
	rootCmd.AddCommand(logsCmd)
}
