// MODUL: stats
// ZWECK: Wertebereich eines Batches als Vorschau fuer die Quantisierung
// INPUT: *Batch
// OUTPUT: Stats (Min, Max, Mittelwert, Standardabweichung, 0.1/99.9-Perzentil)
// NEBENEFFEKTE: keine
// ABHAENGIGKEITEN: gonum.org/v1/gonum/{floats,stat} (extern)
// HINWEISE: Perzentile nach stat.Empirical, Standardabweichung ist die Stichproben-Variante

package calib

import (
	"errors"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats fasst alle Samples eines Batches zusammen
type Stats struct {
	Iteration int     `json:"iteration"`
	Count     int     `json:"count"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Mean      float64 `json:"mean"`
	Std       float64 `json:"std"`
	P001      float64 `json:"p0_1"`
	P999      float64 `json:"p99_9"`
}

// Summarize berechnet die Statistik ueber alle Samples aller Bilder
func Summarize(b *Batch) (Stats, error) {
	var n int
	for _, img := range b.Images {
		n += len(img.Pix)
	}
	if n == 0 {
		return Stats{}, errors.New("calib: no samples in batch")
	}

	x := make([]float64, 0, n)
	for _, img := range b.Images {
		for _, v := range img.Pix {
			x = append(x, float64(v))
		}
	}

	mean, std := stat.MeanStdDev(x, nil)

	slices.Sort(x)
	return Stats{
		Iteration: b.Iteration,
		Count:     n,
		Min:       floats.Min(x),
		Max:       floats.Max(x),
		Mean:      mean,
		Std:       std,
		P001:      stat.Quantile(0.001, stat.Empirical, x, nil),
		P999:      stat.Quantile(0.999, stat.Empirical, x, nil),
	}, nil
}
