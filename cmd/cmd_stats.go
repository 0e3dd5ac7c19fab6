// cmd_stats.go - Wertebereich pro Batch als Tabelle
// Hauptfunktionen: StatsHandler
package cmd

import (
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/7blacky7/calibprep/calib"
)

// formatFloat - Vier Nachkommastellen reichen fuer 0..255-Samples
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 4, 64)
}

// StatsHandler - Gibt die Statistik fuer ITER oder alle Batches aus
func StatsHandler(cmd *cobra.Command, args []string) error {
	it, err := newIterator(cmd)
	if err != nil {
		return err
	}

	iterations := make([]int, 0, it.NumBatches())
	if len(args) == 1 {
		k, err := parseIteration(args[0])
		if err != nil {
			return err
		}
		iterations = append(iterations, k)
	} else {
		for k := range it.NumBatches() {
			iterations = append(iterations, k)
		}
	}

	var data [][]string
	for _, k := range iterations {
		b, err := it.NextBatch(cmd.Context(), k)
		if err != nil {
			return err
		}

		s, err := calib.Summarize(b)
		if err != nil {
			return err
		}

		data = append(data, []string{
			strconv.Itoa(k),
			b.Entries[0].Name,
			strconv.Itoa(s.Count),
			formatFloat(s.Min),
			formatFloat(s.Max),
			formatFloat(s.Mean),
			formatFloat(s.Std),
			formatFloat(s.P001),
			formatFloat(s.P999),
		})
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"ITERATION", "FIRST", "SAMPLES", "MIN", "MAX", "MEAN", "STD", "P0.1", "P99.9"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()

	return nil
}

// newStatsCmd - Erstellt den stats Command
func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [ITER]",
		Short: "Show value range statistics per batch",
		Args:  cobra.MaximumNArgs(1),
		RunE:  StatsHandler,
	}
}
