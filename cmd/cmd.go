// cmd.go - CLI-Einstiegspunkt
// Hauptfunktionen: NewCLI, appendEnvDocs
package cmd

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/7blacky7/calibprep/envconfig"
	"github.com/7blacky7/calibprep/logutil"
)

// appendEnvDocs - Haengt Environment-Variablen an die Usage an
func appendEnvDocs(cmd *cobra.Command, envs []envconfig.EnvVar) {
	if len(envs) == 0 {
		return
	}

	envUsage := `
Environment Variables:
`
	for _, e := range envs {
		envUsage += fmt.Sprintf("      %-24s   %s\n", e.Name, e.Description)
	}

	cmd.SetUsageTemplate(cmd.UsageTemplate() + envUsage)
}

// setupLogging - Setzt den Default-Logger, jeder Lauf bekommt eine eigene ID
func setupLogging(cmd *cobra.Command, _ []string) {
	logger := logutil.NewLogger(cmd.ErrOrStderr(), envconfig.LogLevel())
	slog.SetDefault(logger.With("run", uuid.NewString()))
}

// NewCLI - Erstellt das Haupt-CLI mit allen Commands
func NewCLI() *cobra.Command {
	cobra.EnableCommandSorting = false

	rootCmd := &cobra.Command{
		Use:           "calibprep",
		Short:         "Calibration image feed for post-training quantization",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: setupLogging,
		Run: func(cmd *cobra.Command, args []string) {
			if version, _ := cmd.Flags().GetBool("version"); version {
				versionHandler(cmd, args)
				return
			}

			cmd.Print(cmd.UsageString())
		},
	}

	rootCmd.Flags().BoolP("version", "v", false, "Show version information")
	addConfigFlags(rootCmd)

	// Commands erstellen
	indexCmd := newIndexCmd()
	checkCmd := newCheckCmd()
	batchCmd := newBatchCmd()
	statsCmd := newStatsCmd()
	serveCmd := newServeCmd()

	// Environment-Dokumentation hinzufuegen
	envVars := envconfig.AsMap()
	sourceEnvs := []envconfig.EnvVar{
		envVars["CALIB_IMAGE_DIR"],
		envVars["CALIB_INDEX_FILE"],
	}
	batchEnvs := append(slices.Clone(sourceEnvs),
		envVars["CALIB_BATCH_SIZE"],
		envVars["CALIB_INPUT_NAME"],
		envVars["CALIB_PREPROCESS"],
		envVars["CALIB_SMALLEST_SIDE"],
		envVars["CALIB_INPUT_HEIGHT"],
		envVars["CALIB_INPUT_WIDTH"],
		envVars["CALIB_MEANS"],
		envVars["CALIB_NUM_PARALLEL"],
	)

	for _, cmd := range []*cobra.Command{
		indexCmd,
		checkCmd,
		batchCmd,
		statsCmd,
		serveCmd,
	} {
		switch cmd {
		case indexCmd, checkCmd:
			appendEnvDocs(cmd, sourceEnvs)
		case serveCmd:
			appendEnvDocs(cmd, append([]envconfig.EnvVar{
				envVars["CALIB_DEBUG"],
				envVars["CALIB_HOST"],
				envVars["CALIB_ORIGINS"],
			}, batchEnvs...))
		default:
			appendEnvDocs(cmd, batchEnvs)
		}
	}

	rootCmd.AddCommand(
		indexCmd,
		checkCmd,
		batchCmd,
		statsCmd,
		serveCmd,
	)

	return rootCmd
}
