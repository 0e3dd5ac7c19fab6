// cmd_config.go - Globale Flags und Aufbau der Iterator-Konfiguration
// Hauptfunktionen: addConfigFlags, loadConfig, newIterator
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/7blacky7/calibprep/calib"
	"github.com/7blacky7/calibprep/envconfig"
	"github.com/7blacky7/calibprep/vision"
)

// addConfigFlags - Registriert die Flags, die CALIB_* Variablen ueberschreiben
func addConfigFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("image-dir", "", "Directory with calibration images (CALIB_IMAGE_DIR)")
	flags.String("index", "", "Index file, one image name per line (CALIB_INDEX_FILE)")
	flags.Int("batch-size", 0, "Images per batch (CALIB_BATCH_SIZE)")
	flags.String("input-name", "", "Feed key of the input tensor (CALIB_INPUT_NAME)")
	flags.Bool("preprocess", false, "Resize, center-crop and subtract means (CALIB_PREPROCESS)")
	flags.Int("smallest-side", 0, "Resize target of the smaller side (CALIB_SMALLEST_SIDE)")
	flags.Int("height", 0, "Crop height (CALIB_INPUT_HEIGHT)")
	flags.Int("width", 0, "Crop width (CALIB_INPUT_WIDTH)")
	flags.String("means", "", "Comma-separated channel means (CALIB_MEANS)")
	flags.Int("workers", 0, "Concurrent image loads per batch (CALIB_NUM_PARALLEL)")
}

// flagOr - Flag-Wert, wenn gesetzt, sonst fallback aus der Umgebung
func flagOr[T any](cmd *cobra.Command, name string, get func(string) (T, error), fallback T) T {
	if !cmd.Flags().Changed(name) {
		return fallback
	}
	if v, err := get(name); err == nil {
		return v
	}
	return fallback
}

// loadConfig - Baut die Konfiguration aus Umgebung und Flags (Flags gewinnen)
func loadConfig(cmd *cobra.Command) (calib.Config, []calib.Option, error) {
	flags := cmd.Flags()

	var overrides []vision.Option
	if flags.Changed("preprocess") {
		v, _ := flags.GetBool("preprocess")
		overrides = append(overrides, vision.WithNormalize(v))
	}
	if flags.Changed("smallest-side") {
		v, _ := flags.GetInt("smallest-side")
		overrides = append(overrides, vision.WithSmallestSide(v))
	}
	if flags.Changed("height") || flags.Changed("width") {
		overrides = append(overrides, vision.WithCrop(
			flagOr(cmd, "height", flags.GetInt, int(envconfig.InputHeight())),
			flagOr(cmd, "width", flags.GetInt, int(envconfig.InputWidth())),
		))
	}
	if flags.Changed("means") {
		s, _ := flags.GetString("means")
		means, err := envconfig.ParseFloats(s)
		if err != nil {
			return calib.Config{}, nil, fmt.Errorf("invalid --means %q: %w", s, err)
		}
		overrides = append(overrides, vision.WithMeans(means...))
	}

	cfg, err := calib.ConfigFromEnv(overrides...)
	if err != nil {
		return calib.Config{}, nil, err
	}

	cfg.ImageDir = flagOr(cmd, "image-dir", flags.GetString, cfg.ImageDir)
	cfg.IndexFile = flagOr(cmd, "index", flags.GetString, cfg.IndexFile)
	cfg.BatchSize = flagOr(cmd, "batch-size", flags.GetInt, cfg.BatchSize)
	cfg.InputName = flagOr(cmd, "input-name", flags.GetString, cfg.InputName)

	workers := flagOr(cmd, "workers", flags.GetInt, int(envconfig.NumParallel()))
	return cfg, []calib.Option{calib.WithWorkers(workers)}, nil
}

// newIterator - Erstellt den Iterator fuer Batch-, Stats- und Serve-Commands
func newIterator(cmd *cobra.Command) (*calib.Iterator, error) {
	cfg, opts, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return calib.NewIterator(cfg, opts...)
}
