// cmd_index.go - Index erzeugen und pruefen
// Hauptfunktionen: IndexHandler, CheckHandler
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/7blacky7/calibprep/calib"
)

// IndexHandler - Schreibt die Bilddateien eines Verzeichnisses als Indexdatei
func IndexHandler(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = cfg.IndexFile
	}

	names, err := calib.ScanDir(args[0], limit)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return fmt.Errorf("no images found in %s", args[0])
	}

	if err := calib.WriteIndexFile(output, names); err != nil {
		return err
	}

	slog.Debug("index written", "dir", args[0], "output", output, "entries", len(names))
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d entries to %s\n", len(names), output)
	return nil
}

// CheckHandler - Prueft, ob jeder Index-Eintrag eine Datei im Bildverzeichnis hat
func CheckHandler(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	problems, err := calib.Verify(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, p := range problems {
		if p.Suggestion != "" {
			fmt.Fprintf(out, "line %d: %v (did you mean %q?)\n", p.Entry.Index+1, p.Err, p.Suggestion)
		} else {
			fmt.Fprintf(out, "line %d: %v\n", p.Entry.Index+1, p.Err)
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%d index entries do not resolve in %s", len(problems), cfg.ImageDir)
	}

	fmt.Fprintf(out, "all entries of %s resolve in %s\n", cfg.IndexFile, cfg.ImageDir)
	return nil
}

// newIndexCmd - Erstellt den index Command
func newIndexCmd() *cobra.Command {
	indexCmd := &cobra.Command{
		Use:   "index DIR",
		Short: "Write an index file listing the images in DIR",
		Args:  cobra.ExactArgs(1),
		RunE:  IndexHandler,
	}
	indexCmd.Flags().Int("limit", 0, "Only list the first N images (0 = all)")
	indexCmd.Flags().StringP("output", "o", "", "Index file to write (default: --index / CALIB_INDEX_FILE)")
	return indexCmd
}

// newCheckCmd - Erstellt den check Command
func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify that every index entry resolves to an image file",
		Args:  cobra.ExactArgs(0),
		RunE:  CheckHandler,
	}
}
