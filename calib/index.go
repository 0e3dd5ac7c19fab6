// MODUL: index
// ZWECK: Lesen, Schreiben und Pruefen der Kalibrierungs-Indexdatei
// INPUT: Indexdatei (ein Dateiname pro Zeile), Bildverzeichnis
// OUTPUT: []Entry, Problemliste
// NEBENEFFEKTE: Dateisystem-Zugriffe
// ABHAENGIGKEITEN: github.com/agnivade/levenshtein (extern), vision
// HINWEISE: Leere Zeilen werden uebersprungen, Eintraege behalten ihre Reihenfolge

package calib

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/7blacky7/calibprep/vision"
)

// Entry ist eine Zeile der Indexdatei
type Entry struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

// ReadIndex liest die Indexdatei von path
func ReadIndex(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("calib: open index: %w", err)
	}
	defer f.Close()

	return ParseIndex(f)
}

// ParseIndex liest einen Dateinamen pro Zeile. Umgebende Leerzeichen werden
// entfernt, leere Zeilen uebersprungen.
func ParseIndex(r io.Reader) ([]Entry, error) {
	var entries []Entry

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" {
			continue
		}
		entries = append(entries, Entry{Index: len(entries), Name: name})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("calib: read index: %w", err)
	}

	return entries, nil
}

// WriteIndex schreibt einen Dateinamen pro Zeile
func WriteIndex(w io.Writer, names []string) error {
	bw := bufio.NewWriter(w)
	for _, name := range names {
		if _, err := bw.WriteString(name + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteIndexFile schreibt die Indexdatei nach path
func WriteIndexFile(path string, names []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("calib: create index: %w", err)
	}

	if err := WriteIndex(f, names); err != nil {
		f.Close()
		return fmt.Errorf("calib: write index: %w", err)
	}
	return f.Close()
}

// ScanDir listet Bilddateien in dir sortiert nach Namen.
// limit > 0 begrenzt die Liste auf die ersten limit Dateien.
func ScanDir(dir string, limit int) ([]string, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("calib: scan %s: %w", dir, err)
	}

	var names []string
	for _, de := range dirEntries {
		if de.IsDir() || !vision.IsImageName(de.Name()) {
			continue
		}
		names = append(names, de.Name())
		if limit > 0 && len(names) == limit {
			break
		}
	}

	slog.Debug("scanned image directory", "dir", dir, "images", len(names), "limit", limit)
	return names, nil
}

// Problem beschreibt einen Index-Eintrag, der nicht aufgeloest werden kann
type Problem struct {
	Entry      Entry
	Path       string
	Err        error
	Suggestion string // naechster vorhandener Dateiname, falls es einen plausiblen gibt
}

// Verify prueft, ob jeder Eintrag der Indexdatei im Bildverzeichnis existiert
func Verify(cfg Config) ([]Problem, error) {
	entries, err := ReadIndex(cfg.IndexFile)
	if err != nil {
		return nil, err
	}

	candidates, err := ScanDir(cfg.ImageDir, 0)
	if err != nil {
		return nil, err
	}

	var problems []Problem
	for _, e := range entries {
		path := filepath.Join(cfg.ImageDir, e.Name)

		fi, err := os.Stat(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			problems = append(problems, Problem{
				Entry:      e,
				Path:       path,
				Err:        fmt.Errorf("%w: %s", vision.ErrFileNotFound, path),
				Suggestion: closestName(e.Name, candidates),
			})
		case err != nil:
			problems = append(problems, Problem{Entry: e, Path: path, Err: err})
		case fi.IsDir():
			problems = append(problems, Problem{Entry: e, Path: path, Err: fmt.Errorf("%w: %s is a directory", vision.ErrDecode, path)})
		}
	}

	return problems, nil
}

// closestName gibt den Kandidaten mit der kleinsten Editierdistanz zurueck,
// sofern die Distanz hoechstens ein Drittel der Namenslaenge betraegt
func closestName(name string, candidates []string) string {
	best, bestDist := "", len(name)/3+1
	for _, c := range candidates {
		if d := levenshtein.ComputeDistance(name, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
