// MODUL: options
// ZWECK: Functional Options fuer die Vorverarbeitungs-Pipeline
// INPUT: Optionale Parameter (Modus, kleinste Seite, Crop, Mittelwerte)
// OUTPUT: Options Struct
// NEBENEFFEKTE: Keine
// ABHAENGIGKEITEN: log/slog (Standard-Library)
// HINWEISE: Passthrough ist der Default, Normalisierung muss explizit aktiviert werden

package vision

import (
	"fmt"
	"log/slog"
)

// ============================================================================
// Modus
// ============================================================================

// Mode waehlt zwischen Passthrough und voller Vorverarbeitung
type Mode int

const (
	// ModePassthrough gibt das geladene Bild unveraendert weiter
	ModePassthrough Mode = iota
	// ModeNormalize fuehrt Resize, Center-Crop und Normalisierung aus
	ModeNormalize
)

// String implementiert Stringer Interface
func (m Mode) String() string {
	switch m {
	case ModePassthrough:
		return "passthrough"
	case ModeNormalize:
		return "normalize"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ============================================================================
// Options - Zentrale Konfigurationsstruktur
// ============================================================================

// Options enthaelt die unveraenderliche Konfiguration einer Pipeline.
type Options struct {
	Mode   Mode
	Resize ResizeSpec
	Crop   CropSpec
	Means  ChannelMeans
}

// Option ist eine funktionale Option fuer Options.
type Option func(*Options)

// DefaultOptions gibt die Standard-Konfiguration zurueck.
// - Mode: Passthrough
// - Resize: kleinste Seite 256
// - Crop: 28x28
// - Means: GrayMeans
func DefaultOptions() Options {
	return Options{
		Mode:   ModePassthrough,
		Resize: ResizeSpec{SmallestSide: 256},
		Crop:   CropSpec{Height: 28, Width: 28},
		Means:  GrayMeans,
	}
}

// ============================================================================
// Functional Options - Builder-Funktionen
// ============================================================================

// WithMode setzt den Modus.
func WithMode(m Mode) Option {
	return func(o *Options) {
		o.Mode = m
	}
}

// WithNormalize schaltet zwischen ModeNormalize (true) und ModePassthrough (false).
func WithNormalize(enabled bool) Option {
	return func(o *Options) {
		if enabled {
			o.Mode = ModeNormalize
		} else {
			o.Mode = ModePassthrough
		}
	}
}

// WithSmallestSide setzt die Zielgroesse der kleineren Seite.
func WithSmallestSide(n int) Option {
	return func(o *Options) {
		o.Resize.SmallestSide = n
	}
}

// WithCrop setzt die Crop-Groesse.
func WithCrop(height, width int) Option {
	return func(o *Options) {
		o.Crop = CropSpec{Height: height, Width: width}
	}
}

// WithMeans setzt die Kanal-Mittelwerte (wird kopiert).
func WithMeans(means ...float32) Option {
	return func(o *Options) {
		o.Means = append(ChannelMeans(nil), means...)
	}
}

// Apply wendet alle Options an.
func (o *Options) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(o)
	}
}

// ============================================================================
// Validierung
// ============================================================================

// Validate prueft die Konfiguration. Im Passthrough-Modus wird die Geometrie nicht benutzt
// und deshalb nicht geprueft.
func (o Options) Validate() error {
	switch o.Mode {
	case ModePassthrough:
		return nil
	case ModeNormalize:
	default:
		return fmt.Errorf("vision: invalid mode %d", int(o.Mode))
	}

	if o.Resize.SmallestSide <= 0 {
		return fmt.Errorf("%w: smallest side %d", ErrInvalidDimension, o.Resize.SmallestSide)
	}
	if o.Crop.Height <= 0 || o.Crop.Width <= 0 {
		return fmt.Errorf("%w: crop %dx%d", ErrInvalidDimension, o.Crop.Height, o.Crop.Width)
	}
	if len(o.Means) == 0 {
		return fmt.Errorf("%w: no channel means", ErrChannelMismatch)
	}

	// Kann fuer extreme Seitenverhaeltnisse trotzdem passen, der Cropper prueft pro Bild
	if o.Resize.SmallestSide < max(o.Crop.Height, o.Crop.Width) {
		slog.Warn("smallest side is below the crop size, crops may fail",
			"smallest_side", o.Resize.SmallestSide, "crop_height", o.Crop.Height, "crop_width", o.Crop.Width)
	}

	return nil
}
