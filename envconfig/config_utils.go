// config_utils.go - Utility-Funktionen und Export fuer Konfiguration
//
// Dieses Modul enthaelt:
// - BoolWithDefault/Bool: Boolean-Getter mit Default-Wert
// - String/StringWithDefault: String-Getter
// - Uint: Integer-Getter mit Default-Wert
// - EnvVar: Struktur fuer Environment-Variablen-Info
// - AsMap: Gibt alle Konfigurationen als Map zurueck
// - Values: Gibt alle Konfigurationswerte als String-Map zurueck
package envconfig

import (
	"fmt"
	"log/slog"
	"strconv"
)

// =============================================================================
// Boolean-Getter
// =============================================================================

// BoolWithDefault gibt eine Funktion zurueck, die einen Bool mit Default-Wert liest
func BoolWithDefault(k string) func(defaultValue bool) bool {
	return func(defaultValue bool) bool {
		if s := Var(k); s != "" {
			b, err := strconv.ParseBool(s)
			if err != nil {
				return true
			}
			return b
		}
		return defaultValue
	}
}

// Bool gibt eine Funktion zurueck, die einen Bool liest (Default: false)
func Bool(k string) func() bool {
	withDefault := BoolWithDefault(k)
	return func() bool {
		return withDefault(false)
	}
}

// =============================================================================
// String-Getter
// =============================================================================

// String gibt eine Funktion zurueck, die einen String liest
func String(s string) func() string {
	return func() string {
		return Var(s)
	}
}

// StringWithDefault gibt eine Funktion zurueck, die einen String mit Default liest
func StringWithDefault(key, defaultValue string) func() string {
	return func() string {
		if s := Var(key); s != "" {
			return s
		}
		return defaultValue
	}
}

// =============================================================================
// Integer-Getter
// =============================================================================

// Uint gibt eine Funktion zurueck, die einen uint mit Default-Wert liest
func Uint(key string, defaultValue uint) func() uint {
	return func() uint {
		if s := Var(key); s != "" {
			if n, err := strconv.ParseUint(s, 10, 64); err != nil {
				slog.Warn("invalid environment variable, using default", "key", key, "value", s, "default", defaultValue)
			} else {
				return uint(n)
			}
		}
		return defaultValue
	}
}

// =============================================================================
// Export-Strukturen und -Funktionen
// =============================================================================

// EnvVar repraesentiert eine Environment-Variable mit Metadaten
type EnvVar struct {
	Name        string
	Value       any
	Description string
}

// AsMap gibt alle Konfigurationen als Map zurueck
// Enthaelt Namen, aktuelle Werte und Beschreibungen
func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"CALIB_DEBUG":         {"CALIB_DEBUG", LogLevel(), "Show additional debug information (e.g. CALIB_DEBUG=1)"},
		"CALIB_HOST":          {"CALIB_HOST", Host(), "IP Address for the batch server (default 127.0.0.1:11500)"},
		"CALIB_ORIGINS":       {"CALIB_ORIGINS", AllowedOrigins(), "A comma separated list of allowed origins"},
		"CALIB_IMAGE_DIR":     {"CALIB_IMAGE_DIR", ImageDir(), "Directory the index entries are resolved against (default \"calib_images\")"},
		"CALIB_INDEX_FILE":    {"CALIB_INDEX_FILE", IndexFile(), "Index file with one image name per line (default \"labels.txt\")"},
		"CALIB_BATCH_SIZE":    {"CALIB_BATCH_SIZE", BatchSize(), "Number of images per calibration batch (default 50)"},
		"CALIB_INPUT_HEIGHT":  {"CALIB_INPUT_HEIGHT", InputHeight(), "Height of the center crop (default 28)"},
		"CALIB_INPUT_WIDTH":   {"CALIB_INPUT_WIDTH", InputWidth(), "Width of the center crop (default 28)"},
		"CALIB_SMALLEST_SIDE": {"CALIB_SMALLEST_SIDE", SmallestSide(), "Smaller image side after the aspect preserving resize (default 256)"},
		"CALIB_MEANS":         {"CALIB_MEANS", Means(), "Comma separated per-channel means (default \"123.68\")"},
		"CALIB_INPUT_NAME":    {"CALIB_INPUT_NAME", InputName(), "Name of the input tensor in the batch feed (default \"x\")"},
		"CALIB_PREPROCESS":    {"CALIB_PREPROCESS", Preprocess(), "Resize, crop and normalize images instead of passing them through"},
		"CALIB_NUM_PARALLEL":  {"CALIB_NUM_PARALLEL", NumParallel(), "Maximum number of images loaded in parallel per batch (default 1)"},
	}
}

// Values gibt alle Konfigurationswerte als String-Map zurueck
func Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range AsMap() {
		vals[k] = fmt.Sprintf("%v", v.Value)
	}
	return vals
}
