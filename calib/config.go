// MODUL: config
// ZWECK: Konfiguration der Batch-Iteration
// INPUT: Werte aus envconfig oder direkt gesetzte Felder
// OUTPUT: Config
// NEBENEFFEKTE: keine
// ABHAENGIGKEITEN: envconfig, vision
// HINWEISE: Die Konfiguration wird beim Erstellen des Iterators eingefroren

package calib

import (
	"fmt"

	"github.com/7blacky7/calibprep/envconfig"
	"github.com/7blacky7/calibprep/vision"
)

// Config beschreibt Datenquelle, Batch-Geometrie und Vorverarbeitung
type Config struct {
	ImageDir  string           // Verzeichnis der Kalibrierungsbilder
	IndexFile string           // Indexdatei, ein Dateiname pro Zeile
	BatchSize int              // Bilder pro Batch
	InputName string           // Schluessel des Eingabe-Tensors im Feed
	Pipeline  *vision.Pipeline // nil bedeutet Passthrough
}

// DefaultConfig gibt die Standardwerte ohne Umgebungsvariablen zurueck
func DefaultConfig() Config {
	return Config{
		ImageDir:  "calib_images",
		IndexFile: "labels.txt",
		BatchSize: 50,
		InputName: "x",
	}
}

// ConfigFromEnv liest die Konfiguration aus den CALIB_* Umgebungsvariablen.
// overrides werden nach den Umgebungswerten angewendet und vor der Validierung
// der Pipeline, so koennen Flags ungueltige Umgebungswerte ersetzen.
func ConfigFromEnv(overrides ...vision.Option) (Config, error) {
	opts := []vision.Option{
		vision.WithNormalize(envconfig.Preprocess()),
		vision.WithSmallestSide(int(envconfig.SmallestSide())),
		vision.WithCrop(int(envconfig.InputHeight()), int(envconfig.InputWidth())),
		vision.WithMeans(envconfig.Means()...),
	}

	p, err := vision.NewPipeline(append(opts, overrides...)...)
	if err != nil {
		return Config{}, err
	}

	return Config{
		ImageDir:  envconfig.ImageDir(),
		IndexFile: envconfig.IndexFile(),
		BatchSize: int(envconfig.BatchSize()),
		InputName: envconfig.InputName(),
		Pipeline:  p,
	}, nil
}

// Validate prueft Batch-Groesse und Feed-Name
func (c Config) Validate() error {
	if c.BatchSize <= 0 {
		return fmt.Errorf("%w: batch size %d", ErrInvalidConfig, c.BatchSize)
	}
	if c.InputName == "" {
		return fmt.Errorf("%w: empty input name", ErrInvalidConfig)
	}
	return nil
}
