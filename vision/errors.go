// MODUL: errors
// ZWECK: Fehler-Taxonomie der Vorverarbeitung
// INPUT: keine
// OUTPUT: Sentinel-Fehler und StageError
// NEBENEFFEKTE: keine
// ABHAENGIGKEITEN: errors (Standardbibliothek)
// HINWEISE: Alle Fehler sind lokal und synchron, es gibt keine Retries

package vision

import "errors"

var (
	// ErrInvalidDimension: nicht-positive oder degenerierte Geometrie
	ErrInvalidDimension = errors.New("vision: invalid dimension")

	// ErrCropOutOfBounds: Crop-Ziel groesser als das Bild
	ErrCropOutOfBounds = errors.New("vision: crop out of bounds")

	// ErrChannelMismatch: Anzahl Mittelwerte passt nicht zur Kanalzahl
	ErrChannelMismatch = errors.New("vision: channel mismatch")

	// ErrFileNotFound: Bilddatei existiert nicht
	ErrFileNotFound = errors.New("vision: file not found")

	// ErrDecode: Bilddatei konnte nicht dekodiert werden
	ErrDecode = errors.New("vision: decode error")
)

// Stage benennt einen Schritt der Pipeline
type Stage string

const (
	StageLoad      Stage = "load"
	StageResize    Stage = "resize"
	StageCrop      Stage = "crop"
	StageNormalize Stage = "normalize"
)

// StageError ordnet einen Fehler dem Pipeline-Schritt zu, der ihn ausgeloest hat
type StageError struct {
	Stage Stage // Schritt (resize, crop, normalize)
	Err   error // Urspruenglicher Fehler
}

// Error implementiert das error Interface
func (e *StageError) Error() string {
	return string(e.Stage) + ": " + e.Err.Error()
}

// Unwrap ermoeglicht errors.Is/As auf den Sentinel-Fehler
func (e *StageError) Unwrap() error {
	return e.Err
}
