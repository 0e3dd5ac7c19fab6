package calib

import (
	"fmt"
	"slices"

	"github.com/7blacky7/calibprep/vision"
)

// Batch ist das Ergebnis einer Iteration: BatchSize vorverarbeitete Bilder in Index-Reihenfolge
type Batch struct {
	Iteration int
	BatchSize int
	InputName string
	Entries   []Entry
	Images    []*vision.Image
}

// Feed gibt den Batch als {InputName: [N][H][W][C]} zurueck
func (b *Batch) Feed() map[string][][][][]float32 {
	nested := make([][][][]float32, len(b.Images))
	for i, img := range b.Images {
		nested[i] = img.Nested()
	}
	return map[string][][][][]float32{b.InputName: nested}
}

// Shape gibt (N, H, W, C) zurueck. Im Passthrough-Modus koennen die Bilder
// unterschiedlich gross sein, dann ist das ErrRaggedBatch.
func (b *Batch) Shape() ([]int, error) {
	if len(b.Images) == 0 {
		return []int{0}, nil
	}

	first := b.Images[0].Shape()
	for i, img := range b.Images[1:] {
		if s := img.Shape(); !slices.Equal(s, first) {
			return nil, fmt.Errorf("%w: image 0 is %v, image %d is %v", ErrRaggedBatch, first, i+1, s)
		}
	}

	return append([]int{len(b.Images)}, first...), nil
}
