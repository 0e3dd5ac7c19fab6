// MODUL: resize
// ZWECK: Seitenverhaeltnis-erhaltender Resize mit bilinearer Interpolation
// INPUT: *Image, ResizeSpec (kleinste Seite)
// OUTPUT: neues *Image mit (newH, newW, C)
// NEBENEFFEKTE: keine
// ABHAENGIGKEITEN: math (Standardbibliothek)
// HINWEISE: Tie-Break (h == w skaliert ueber die Hoehe) und Round-Half-To-Even sind
// Teil des Vertrags und muessen fuer reproduzierbare Kalibrierung erhalten bleiben

package vision

import (
	"fmt"
	"math"
)

// MaxResizePixels begrenzt die Flaeche (H*W) eines Resize-Ergebnisses
const MaxResizePixels = 1 << 26

// ResizeSpec legt die Zielgroesse der kleineren Bildseite fest
type ResizeSpec struct {
	SmallestSide int
}

// SmallestSizeAtLeast berechnet die Zielgroesse, bei der die kleinere Seite smallestSide ist.
//
// Ist height > width, wird mit smallestSide/width skaliert, sonst (auch bei height == width)
// mit smallestSide/height. Gerechnet wird in float32, gerundet wird mit Round-Half-To-Even.
// Ergibt die Rundung eine Seite von 0 oder eine Flaeche ueber MaxResizePixels,
// ist das ErrInvalidDimension.
func SmallestSizeAtLeast(height, width, smallestSide int) (newHeight, newWidth int, scale float32, err error) {
	if height <= 0 || width <= 0 {
		return 0, 0, 0, fmt.Errorf("%w: image %dx%d", ErrInvalidDimension, height, width)
	}
	if smallestSide <= 0 {
		return 0, 0, 0, fmt.Errorf("%w: smallest side %d", ErrInvalidDimension, smallestSide)
	}

	h, w, s := float32(height), float32(width), float32(smallestSide)
	if h > w {
		scale = s / w
	} else {
		scale = s / h
	}

	fh := math.RoundToEven(float64(h * scale))
	fw := math.RoundToEven(float64(w * scale))
	if fh*fw > MaxResizePixels {
		return 0, 0, 0, fmt.Errorf("%w: %dx%d resizes to %.0fx%.0f, limit is %d pixels",
			ErrInvalidDimension, height, width, fh, fw, MaxResizePixels)
	}

	newHeight, newWidth = int(fh), int(fw)
	if newHeight < 1 || newWidth < 1 {
		return 0, 0, 0, fmt.Errorf("%w: %dx%d resizes to %dx%d", ErrInvalidDimension, height, width, newHeight, newWidth)
	}

	return newHeight, newWidth, scale, nil
}

// Resize skaliert das Bild seitenverhaeltnis-erhaltend auf spec.SmallestSide
func Resize(img *Image, spec ResizeSpec) (*Image, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}

	newH, newW, scale, err := SmallestSizeAtLeast(img.Height, img.Width, spec.SmallestSide)
	if err != nil {
		return nil, err
	}

	return resizeBilinear(img, newH, newW, scale), nil
}

// tap beschreibt die zwei Quell-Indizes und das Gewicht fuer eine Ausgabe-Position
type tap struct {
	lo, hi int
	frac   float64
}

// bilinearTaps bildet Ausgabe-Indizes auf Quell-Koordinaten ab.
// Pixelzentren: src = (i + 0.5) / scale - 0.5, begrenzt auf [0, inSize-1].
func bilinearTaps(outSize, inSize int, scale float32) []tap {
	taps := make([]tap, outSize)
	inv := 1 / float64(scale)
	last := float64(inSize - 1)

	for i := range taps {
		src := (float64(i)+0.5)*inv - 0.5
		src = min(max(src, 0), last)

		lo := int(math.Floor(src))
		taps[i] = tap{
			lo:   lo,
			hi:   min(lo+1, inSize-1),
			frac: src - float64(lo),
		}
	}
	return taps
}

// resizeBilinear interpoliert aus den vier naechsten Quellpixeln
func resizeBilinear(img *Image, newH, newW int, scale float32) *Image {
	c := img.Channels
	dst := &Image{Height: newH, Width: newW, Channels: c, Pix: make([]float32, newH*newW*c)}

	ys := bilinearTaps(newH, img.Height, scale)
	xs := bilinearTaps(newW, img.Width, scale)

	sample := func(y, x, ch int) float64 {
		return float64(img.Pix[(y*img.Width+x)*c+ch])
	}

	for y, ty := range ys {
		for x, tx := range xs {
			out := (y*newW + x) * c
			for ch := 0; ch < c; ch++ {
				tl, tr := sample(ty.lo, tx.lo, ch), sample(ty.lo, tx.hi, ch)
				bl, br := sample(ty.hi, tx.lo, ch), sample(ty.hi, tx.hi, ch)

				top := tl + (tr-tl)*tx.frac
				bottom := bl + (br-bl)*tx.frac
				dst.Pix[out+ch] = float32(top + (bottom-top)*ty.frac)
			}
		}
	}

	return dst
}
