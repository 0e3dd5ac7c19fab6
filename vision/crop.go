// MODUL: crop
// ZWECK: Zentrierter Ausschnitt fester Groesse
// INPUT: *Image, CropSpec
// OUTPUT: neues *Image mit (out_height, out_width, C)
// NEBENEFFEKTE: keine
// ABHAENGIGKEITEN: keine (nur Standardbibliothek)
// HINWEISE: Prueft die Grenzen selbst, auch wenn der Resize sie bereits garantieren sollte

package vision

import "fmt"

// CropSpec ist die Zielgroesse des Center-Crops
type CropSpec struct {
	Height int
	Width  int
}

// CenterCrop schneidet einen zentrierten Bereich aus.
// Offsets sind (H-Height)/2 und (W-Width)/2, alle Kanaele bleiben in Reihenfolge erhalten.
func CenterCrop(img *Image, spec CropSpec) (*Image, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}
	if spec.Height <= 0 || spec.Width <= 0 {
		return nil, fmt.Errorf("%w: crop %dx%d", ErrInvalidDimension, spec.Height, spec.Width)
	}
	if img.Height < spec.Height || img.Width < spec.Width {
		return nil, fmt.Errorf("%w: crop %dx%d larger than image %dx%d",
			ErrCropOutOfBounds, spec.Height, spec.Width, img.Height, img.Width)
	}

	offsetY := (img.Height - spec.Height) / 2
	offsetX := (img.Width - spec.Width) / 2

	c := img.Channels
	rowLen := spec.Width * c
	dst := &Image{Height: spec.Height, Width: spec.Width, Channels: c, Pix: make([]float32, spec.Height*rowLen)}

	for y := 0; y < spec.Height; y++ {
		src := ((offsetY+y)*img.Width + offsetX) * c
		copy(dst.Pix[y*rowLen:(y+1)*rowLen], img.Pix[src:src+rowLen])
	}

	return dst, nil
}
