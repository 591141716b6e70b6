package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/google/uuid"
	"github.com/rasterstat/rasterstat/internal/compare"
	"github.com/rasterstat/rasterstat/internal/raster"
	"github.com/spf13/cobra"
)

const toolName = "Root Mean Square Error"

var (
	workers int
	quiet   bool
)

var rmseCmd = &cobra.Command{
	Use:   "rmse [base.asc comparison.asc]",
	Short: "Calculate the RMSE and other accuracy statistics",
	Long: `Compares a base raster against a comparison raster of identical dimensions
and reports the mean vertical error, RMSE, and linear accuracy at the 95%
confidence limit. Cells flagged no-data in either raster are excluded.

With two arguments the comparison runs immediately. With no arguments the two
paths are collected interactively. Ctrl-C cancels a running comparison.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != 2 {
			return compare.ErrInvalidArgumentCount
		}
		return nil
	},
	RunE: runRMSE,
}

func init() {
	rmseCmd.Flags().IntVar(&workers, "workers", 0, "Row-sweep workers (0 = config default)")
	rmseCmd.Flags().BoolVar(&quiet, "quiet", false, "Suppress progress output")
	rootCmd.AddCommand(rmseCmd)
}

func runRMSE(cmd *cobra.Command, args []string) error {
	var basePath, compPath string
	if len(args) == 2 {
		basePath, compPath = args[0], args[1]
	} else {
		var err error
		basePath, compPath, err = promptForInputs(cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
	}

	runID := uuid.New().String()
	slog.Info("starting comparison",
		"run_id", runID,
		"base", basePath,
		"comparison", compPath,
	)

	baseGrid, _, err := raster.ReadASC(basePath)
	if err != nil {
		return failGeneric(runID, err)
	}
	compGrid, _, err := raster.ReadASC(compPath)
	if err != nil {
		return failGeneric(runID, err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	var progressFn func(int)
	if !quiet {
		progressFn = func(percent int) {
			fmt.Fprintf(cmd.ErrOrStderr(), "\rProgress: %d%%  ", percent)
		}
	}
	sink := compare.ContextSink(ctx, progressFn)

	n := workers
	if n == 0 {
		n = cfg.Workers
	}
	comparator := compare.Comparator{Workers: n}
	report, err := comparator.Compare(
		compare.Input{Name: basePath, Grid: baseGrid},
		compare.Input{Name: compPath, Grid: compGrid},
		sink,
	)
	if !quiet {
		fmt.Fprintln(cmd.ErrOrStderr())
	}

	var dimErr *compare.DimensionMismatchError
	switch {
	case err == nil:
		fmt.Fprint(cmd.OutOrStdout(), report.String())
		slog.Info("comparison complete",
			"run_id", runID,
			"mean_error", report.MeanError,
			"rmse", report.RMSE,
			"accuracy_95", report.Accuracy95,
		)
		return nil
	case errors.Is(err, compare.ErrCancelled):
		fmt.Fprintln(cmd.OutOrStdout(), "Operation cancelled")
		return nil
	case errors.As(err, &dimErr):
		fmt.Fprintln(cmd.OutOrStdout(), "The input rasters must have the same number of rows and columns")
		return nil
	case errors.Is(err, compare.ErrNoValidCells):
		fmt.Fprintln(cmd.OutOrStdout(), "The input rasters share no valid cells: every cell is no-data in at least one input")
		return nil
	default:
		return failGeneric(runID, err)
	}
}

// promptForInputs collects the two raster paths interactively, standing in
// for the parameter dialog a desktop host would build.
func promptForInputs(in io.Reader, out io.Writer) (string, string, error) {
	r := bufio.NewReader(in)

	readPath := func(prompt string) (string, error) {
		fmt.Fprint(out, prompt)
		line, err := r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		path := strings.TrimSpace(line)
		if path == "" {
			return "", errors.New("no path given")
		}
		return path, nil
	}

	basePath, err := readPath("Input base raster file: ")
	if err != nil {
		return "", "", err
	}
	compPath, err := readPath("Input comparison raster file: ")
	if err != nil {
		return "", "", err
	}
	return basePath, compPath, nil
}

// failGeneric logs the full diagnostic to the log store and hands the user a
// generic pointer at it. Detail never reaches the terminal.
func failGeneric(runID string, err error) error {
	slog.Error("comparison failed", "run_id", runID, "error", err)
	return fmt.Errorf("an error has occurred in %s during operation, see log file for details", toolName)
}
