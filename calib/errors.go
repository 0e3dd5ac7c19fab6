// MODUL: errors
// ZWECK: Fehler der Batch-Iteration
// INPUT: keine
// OUTPUT: Sentinel-Fehler und EntryError
// NEBENEFFEKTE: keine
// ABHAENGIGKEITEN: errors, fmt (Standardbibliothek)
// HINWEISE: Fehler aus dem vision-Package bleiben ueber Unwrap erreichbar

package calib

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange: Iteration adressiert Eintraege jenseits des Index
	ErrIndexOutOfRange = errors.New("calib: batch index out of range")

	// ErrInvalidConfig: Batch-Groesse oder Feed-Name fehlen
	ErrInvalidConfig = errors.New("calib: invalid config")

	// ErrRaggedBatch: Bilder eines Batches haben unterschiedliche Formen
	ErrRaggedBatch = errors.New("calib: images in batch differ in shape")
)

// EntryError ordnet einen Lade- oder Pipeline-Fehler einem Index-Eintrag zu
type EntryError struct {
	Iteration int    // Batch-Nummer
	Index     int    // Position im Index
	Name      string // Dateiname aus dem Index
	Path      string // Aufgeloester Pfad
	Err       error  // Urspruenglicher Fehler
}

// Error implementiert das error Interface
func (e *EntryError) Error() string {
	return fmt.Sprintf("calib: iteration %d entry %d %q: %v", e.Iteration, e.Index, e.Path, e.Err)
}

// Unwrap gibt den urspruenglichen Fehler zurueck
func (e *EntryError) Unwrap() error {
	return e.Err
}
