// MODUL: iterator
// ZWECK: Liefert Kalibrierungs-Batches fester Groesse aus der Indexdatei
// INPUT: Config, Iterationsnummer
// OUTPUT: *Batch
// NEBENEFFEKTE: Liest Bilddateien ueber den Loader
// ABHAENGIGKEITEN: golang.org/x/sync/errgroup (extern), vision, logutil
// HINWEISE: Iteration k umfasst die Eintraege [k*BatchSize, (k+1)*BatchSize).
// Unvollstaendige Batches werden nicht gekuerzt, sondern als ErrIndexOutOfRange gemeldet.

package calib

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/7blacky7/calibprep/logutil"
	"github.com/7blacky7/calibprep/vision"
)

// Loader liest eine Bilddatei in einen Pixel-Puffer
type Loader interface {
	Load(path string) (*vision.Image, error)
}

// Iterator haelt den eingelesenen Index und erzeugt Batches auf Anfrage.
// Nach der Erstellung ist er unveraenderlich und kann parallel benutzt werden.
type Iterator struct {
	cfg      Config
	entries  []Entry
	loader   Loader
	pipeline *vision.Pipeline
	workers  int
}

// Option konfiguriert einen Iterator
type Option func(*Iterator)

// WithWorkers begrenzt die gleichzeitigen Ladevorgaenge pro Batch (Minimum 1)
func WithWorkers(n int) Option {
	return func(it *Iterator) {
		it.workers = max(n, 1)
	}
}

// WithLoader ersetzt den Standard-Loader vision.FileLoader
func WithLoader(l Loader) Option {
	return func(it *Iterator) {
		if l != nil {
			it.loader = l
		}
	}
}

// NewIterator liest die Indexdatei einmal ein und erstellt den Iterator
func NewIterator(cfg Config, opts ...Option) (*Iterator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Pipeline == nil {
		p, err := vision.NewPipeline()
		if err != nil {
			return nil, err
		}
		cfg.Pipeline = p
	}

	entries, err := ReadIndex(cfg.IndexFile)
	if err != nil {
		return nil, err
	}

	it := &Iterator{
		cfg:      cfg,
		entries:  entries,
		loader:   vision.FileLoader{},
		pipeline: cfg.Pipeline,
		workers:  1,
	}
	for _, opt := range opts {
		opt(it)
	}

	slog.Debug("calibration index loaded",
		"index", cfg.IndexFile, "entries", len(entries), "batch_size", cfg.BatchSize,
		"batches", it.NumBatches(), "mode", cfg.Pipeline.Mode(), "workers", it.workers)

	return it, nil
}

// Config gibt die Konfiguration zurueck
func (it *Iterator) Config() Config {
	return it.cfg
}

// Len gibt die Anzahl der Index-Eintraege zurueck
func (it *Iterator) Len() int {
	return len(it.entries)
}

// NumBatches gibt die Anzahl vollstaendiger Batches zurueck
func (it *Iterator) NumBatches() int {
	return len(it.entries) / it.cfg.BatchSize
}

// Entries gibt eine Kopie der Index-Eintraege zurueck
func (it *Iterator) Entries() []Entry {
	return append([]Entry(nil), it.entries...)
}

// NextBatch laedt und verarbeitet die Eintraege von Iteration k.
// Ein Batch ist alles oder nichts: der erste Fehler bricht den Batch ab. Gemeldet wird
// der Fehler des Eintrags mit der kleinsten Position, unabhaengig von der Parallelitaet.
func (it *Iterator) NextBatch(ctx context.Context, k int) (*Batch, error) {
	bs := it.cfg.BatchSize
	if k < 0 || k >= it.NumBatches() {
		return nil, fmt.Errorf("%w: iteration %d with batch size %d, index has %d entries (%d batches)",
			ErrIndexOutOfRange, k, bs, len(it.entries), it.NumBatches())
	}

	entries := it.entries[k*bs : (k+1)*bs]
	images := make([]*vision.Image, len(entries))
	errs := make([]error, len(entries))

	// failed ist die kleinste Position mit Fehler, len(entries) solange keiner auftrat.
	// Eintraege hinter einem Fehler werden uebersprungen, Eintraege davor laufen weiter,
	// damit das Ergebnis dem sequentiellen Lauf entspricht.
	var failed atomic.Int64
	failed.Store(int64(len(entries)))
	markFailed := func(i int) {
		for {
			cur := failed.Load()
			if int64(i) >= cur || failed.CompareAndSwap(cur, int64(i)) {
				return
			}
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(it.workers)
	for i, e := range entries {
		if failed.Load() < int64(i) {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if failed.Load() < int64(i) {
				return nil
			}
			img, err := it.prepare(k, e)
			if err != nil {
				errs[i] = err
				markFailed(i)
				return nil
			}
			images[i] = img
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if i := failed.Load(); i < int64(len(entries)) {
		return nil, errs[i]
	}

	logutil.TraceContext(ctx, "batch prepared", "iteration", k, "first", entries[0].Name, "size", len(images))

	return &Batch{
		Iteration: k,
		BatchSize: bs,
		InputName: it.cfg.InputName,
		Entries:   append([]Entry(nil), entries...),
		Images:    images,
	}, nil
}

// prepare laedt einen Eintrag und schickt ihn durch die Pipeline
func (it *Iterator) prepare(k int, e Entry) (*vision.Image, error) {
	path := filepath.Join(it.cfg.ImageDir, e.Name)

	img, err := it.loader.Load(path)
	if err != nil {
		return nil, &EntryError{Iteration: k, Index: e.Index, Name: e.Name, Path: path, Err: err}
	}

	out, err := it.pipeline.Process(img)
	if err != nil {
		return nil, &EntryError{Iteration: k, Index: e.Index, Name: e.Name, Path: path, Err: err}
	}

	logutil.Trace("entry prepared", "iteration", k, "index", e.Index, "name", e.Name,
		"in", []int{img.Height, img.Width, img.Channels}, "out", []int{out.Height, out.Width, out.Channels})
	return out, nil
}
