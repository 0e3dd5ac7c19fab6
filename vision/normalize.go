// MODUL: normalize
// ZWECK: Kanal-Mittelwert-Subtraktion und Tensor-Layouts
// INPUT: *Image, ChannelMeans
// OUTPUT: neues *Image mit float32-Samples (auch negativ), CHW/HWC-Puffer
// NEBENEFFEKTE: keine
// ABHAENGIGKEITEN: keine (nur Standardbibliothek)
// HINWEISE: Kein Clamping, keine Division durch Std

package vision

import "fmt"

// ChannelMeans sind die pro Kanal abzuziehenden Konstanten
type ChannelMeans []float32

// Standard-Mittelwerte
var (
	// GrayMeans nutzt den R-Mittelwert fuer einkanalige Bilder
	GrayMeans = ChannelMeans{123.68}

	// RGBMeans sind die VGG/ImageNet-Mittelwerte im 0..255-Bereich
	RGBMeans = ChannelMeans{123.68, 116.78, 103.94}
)

// ZeroMeans liefert Null-Mittelwerte fuer n Kanaele
func ZeroMeans(n int) ChannelMeans {
	return make(ChannelMeans, n)
}

// Normalize zieht von jedem Sample den Mittelwert seines Kanals ab
func Normalize(img *Image, means ChannelMeans) (*Image, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}
	if len(means) != img.Channels {
		return nil, fmt.Errorf("%w: %d means for %d channels", ErrChannelMismatch, len(means), img.Channels)
	}

	dst := &Image{Height: img.Height, Width: img.Width, Channels: img.Channels, Pix: make([]float32, len(img.Pix))}
	c := img.Channels
	for i, v := range img.Pix {
		dst.Pix[i] = v - means[i%c]
	}

	return dst, nil
}

// CHW gibt die Samples im Channel-First-Layout zurueck
func (img *Image) CHW() []float32 {
	return CHWTensorLayout(img.Pix, img.Height, img.Width, img.Channels)
}

// CHWTensorLayout konvertiert HWC zu CHW Layout
// Input: hwc Tensor mit Dimensionen [h, w, c]
// Output: chw Tensor mit Dimensionen [c, h, w]
func CHWTensorLayout(hwc []float32, h, w, c int) []float32 {
	if len(hwc) != h*w*c {
		return nil
	}

	chw := make([]float32, len(hwc))
	planeSize := h * w

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			srcIdx := (y*w + x) * c
			dstBase := y*w + x

			for ch := 0; ch < c; ch++ {
				chw[ch*planeSize+dstBase] = hwc[srcIdx+ch]
			}
		}
	}

	return chw
}
