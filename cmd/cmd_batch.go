// cmd_batch.go - Einzelnen Batch als JSON oder Rohdaten ausgeben
// Hauptfunktionen: BatchHandler, isTerminal
package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/7blacky7/calibprep/calib"
)

var errRawToTerminal = errors.New("refusing to write raw tensor data to a terminal, use --output or redirect stdout")

// isTerminal - Prueft ob w ein Terminal ist
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// parseIteration - Parst das ITER-Argument
func parseIteration(s string) (int, error) {
	k, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid iteration %q: must be a number", s)
	}
	return k, nil
}

// BatchHandler - Laedt Iteration ITER und schreibt sie nach stdout oder --output
func BatchHandler(cmd *cobra.Command, args []string) error {
	k, err := parseIteration(args[0])
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	format, _ := flags.GetString("format")
	if format != "json" && format != "raw" {
		return fmt.Errorf("unsupported format %q (json, raw)", format)
	}

	dtypeFlag, _ := flags.GetString("dtype")
	dtype, err := calib.ParseDType(dtypeFlag)
	if err != nil {
		return err
	}

	layoutFlag, _ := flags.GetString("layout")
	layout, err := calib.ParseLayout(layoutFlag)
	if err != nil {
		return err
	}

	it, err := newIterator(cmd)
	if err != nil {
		return err
	}

	b, err := it.NextBatch(cmd.Context(), k)
	if err != nil {
		return err
	}

	path, _ := flags.GetString("output")
	if path == "" {
		return writeBatch(cmd.OutOrStdout(), b, format, dtype, layout)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeBatch(f, b, format, dtype, layout); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// writeBatch - Schreibt den Batch im gewaehlten Format
func writeBatch(out io.Writer, b *calib.Batch, format string, dtype calib.DType, layout calib.Layout) error {
	if format == "json" {
		return calib.WriteJSON(out, b)
	}

	if isTerminal(out) {
		return errRawToTerminal
	}

	if err := calib.WriteRaw(out, b, dtype, layout); err != nil {
		return err
	}

	shape, _ := b.Shape()
	slog.Info("batch written", "iteration", b.Iteration, "shape", shape, "dtype", dtype, "layout", layout)
	return nil
}

// newBatchCmd - Erstellt den batch Command
func newBatchCmd() *cobra.Command {
	batchCmd := &cobra.Command{
		Use:   "batch ITER",
		Short: "Print calibration batch ITER",
		Args:  cobra.ExactArgs(1),
		RunE:  BatchHandler,
	}
	batchCmd.Flags().String("format", "json", "Output format (json, raw)")
	batchCmd.Flags().String("dtype", string(calib.DTypeF32), "Sample type for raw output (f32, f16, bf16)")
	batchCmd.Flags().String("layout", string(calib.LayoutNHWC), "Axis order for raw output (nhwc, nchw)")
	batchCmd.Flags().StringP("output", "o", "", "Write to file instead of stdout")
	return batchCmd
}
