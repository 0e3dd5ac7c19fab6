// config_calib.go - Pipeline- und Batch-Parameter
//
// Dieses Modul enthaelt:
// - Geometrie der Vorverarbeitung (Crop-Ziel, kleinste Seite)
// - Kanal-Mittelwerte
// - Batch-Groesse, Feed-Name und Parallelitaet
package envconfig

import (
	"log/slog"
	"strconv"
	"strings"
)

// =============================================================================
// Vorverarbeitung
// =============================================================================

var (
	// InputHeight ist die Hoehe des Center-Crops
	InputHeight = Uint("CALIB_INPUT_HEIGHT", 28)

	// InputWidth ist die Breite des Center-Crops
	InputWidth = Uint("CALIB_INPUT_WIDTH", 28)

	// SmallestSide ist die Zielgroesse der kleineren Bildseite nach dem Resize
	SmallestSide = Uint("CALIB_SMALLEST_SIDE", 256)

	// Preprocess schaltet von Passthrough auf Resize/Crop/Normalize um
	Preprocess = Bool("CALIB_PREPROCESS")
)

// =============================================================================
// Batch-Iteration
// =============================================================================

var (
	// BatchSize ist die Anzahl Bilder pro Kalibrierungs-Batch
	BatchSize = Uint("CALIB_BATCH_SIZE", 50)

	// InputName ist der Schluessel des Eingabe-Tensors im Feed
	InputName = StringWithDefault("CALIB_INPUT_NAME", "x")

	// NumParallel begrenzt die gleichzeitigen Bild-Ladevorgaenge pro Batch
	NumParallel = Uint("CALIB_NUM_PARALLEL", 1)
)

// DefaultMeans entspricht dem R-Mittelwert des Original-Datensatzes
var DefaultMeans = []float32{123.68}

// Means gibt die Kanal-Mittelwerte zurueck
// Konfigurierbar via CALIB_MEANS (komma-separiert, z.B. "123.68,116.78,103.94")
// Ungueltige Werte fuehren zum Default
func Means() []float32 {
	s := Var("CALIB_MEANS")
	if s == "" {
		return DefaultMeans
	}

	means, err := ParseFloats(s)
	if err != nil {
		slog.Warn("invalid environment variable, using default", "key", "CALIB_MEANS", "value", s, "default", DefaultMeans, "error", err)
		return DefaultMeans
	}
	return means
}

// ParseFloats parst eine komma-separierte Liste von float32-Werten
func ParseFloats(s string) ([]float32, error) {
	var out []float32
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		f, err := strconv.ParseFloat(part, 32)
		if err != nil {
			return nil, err
		}
		out = append(out, float32(f))
	}
	if len(out) == 0 {
		return nil, strconv.ErrSyntax
	}
	return out, nil
}
