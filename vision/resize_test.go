// MODUL: resize_test
// ZWECK: Tests fuer Zielgroessen-Berechnung und bilinearen Resize
// INPUT: Synthetische Gradienten-Bilder
// OUTPUT: Testresultate
// NEBENEFFEKTE: keine
// ABHAENGIGKEITEN: testing, testify, go-cmp
// HINWEISE: Prueft Tie-Break, Round-Half-To-Even und Seitenverhaeltnis ueber ein Raster

package vision

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gradientImage erzeugt ein einkanaliges Bild mit Wert f(y, x)
func gradientImage(h, w int, f func(y, x int) float32) *Image {
	img := &Image{Height: h, Width: w, Channels: 1, Pix: make([]float32, h*w)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Pix[y*w+x] = f(y, x)
		}
	}
	return img
}

func TestSmallestSizeAtLeast(t *testing.T) {
	tests := []struct {
		name         string
		h, w, side   int
		wantH, wantW int
		wantScale    float32
	}{
		{"Hochformat", 40, 32, 28, 35, 28, 0.875},
		{"Querformat", 32, 40, 28, 28, 35, 0.875},
		{"Quadrat", 50, 50, 28, 28, 28, 0.56},
		{"Quadrat hochskaliert", 28, 28, 256, 256, 256, float32(256) / 28},
		{"Round-Half-To-Even Breite", 4, 6, 3, 3, 4, 0.75},
		{"Round-Half-To-Even Hoehe", 6, 4, 3, 4, 3, 0.75},
		{"Schmaler Streifen", 1, 1000, 1, 1, 1000, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, w, scale, err := SmallestSizeAtLeast(tt.h, tt.w, tt.side)
			require.NoError(t, err)
			assert.Equal(t, tt.wantH, h, "Hoehe")
			assert.Equal(t, tt.wantW, w, "Breite")
			assert.InDelta(t, tt.wantScale, scale, 1e-6)
		})
	}
}

func TestSmallestSizeAtLeastInvalid(t *testing.T) {
	tests := []struct {
		name       string
		h, w, side int
	}{
		{"Hoehe 0", 0, 5, 3},
		{"Breite negativ", 5, -1, 3},
		{"Seite 0", 5, 5, 0},
		{"Seite negativ", 5, 5, -28},
		{"Flaeche zu gross", 1, 1000, 1_000_000},
		{"Seite nahe MaxInt32", 5, 5, 1<<31 - 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := SmallestSizeAtLeast(tt.h, tt.w, tt.side)
			if !errors.Is(err, ErrInvalidDimension) {
				t.Errorf("erwartet ErrInvalidDimension, bekam %v", err)
			}
		})
	}
}

func TestSmallestSizeAtLeastAreaLimit(t *testing.T) {
	newH, newW, _, err := SmallestSizeAtLeast(1, 1, 8192)
	require.NoError(t, err)
	assert.Equal(t, MaxResizePixels, newH*newW)

	_, _, _, err = SmallestSizeAtLeast(1, 1, 8193)
	assert.ErrorIs(t, err, ErrInvalidDimension)

	_, err = Resize(gradientImage(1, 1000, func(y, x int) float32 { return 1 }), ResizeSpec{SmallestSide: 1_000_000})
	assert.ErrorIs(t, err, ErrInvalidDimension)
}

func TestSmallestSizeAtLeastProperties(t *testing.T) {
	for _, side := range []int{1, 7, 28, 64, 256} {
		for h := 1; h <= 60; h++ {
			for w := 1; w <= 60; w++ {
				newH, newW, _, err := SmallestSizeAtLeast(h, w, side)
				require.NoError(t, err)

				if h == w && (newH != side || newW != side) {
					t.Fatalf("%dx%d side %d: erwartet %dx%d, bekam %dx%d", h, w, side, side, side, newH, newW)
				}

				if max(newH, newW) < side {
					t.Fatalf("%dx%d side %d: max(%d, %d) < %d", h, w, side, newH, newW, side)
				}

				// Seitenverhaeltnis innerhalb von +/-1 Pixel
				wantW := float64(newH) * float64(w) / float64(h)
				if math.Abs(float64(newW)-wantW) > 1 {
					t.Fatalf("%dx%d side %d: %dx%d weicht vom Seitenverhaeltnis ab (Breite %.2f)", h, w, side, newH, newW, wantW)
				}
			}
		}
	}
}

func TestResizeExample(t *testing.T) {
	img := gradientImage(32, 40, func(y, x int) float32 { return float32(x) })

	out, err := Resize(img, ResizeSpec{SmallestSide: 28})
	require.NoError(t, err)
	assert.Equal(t, []int{28, 35, 1}, out.Shape())
	assert.Len(t, out.Pix, 28*35)
}

func TestResizeIdentity(t *testing.T) {
	img := gradientImage(5, 7, func(y, x int) float32 { return float32(y*7 + x) })

	out, err := Resize(img, ResizeSpec{SmallestSide: 5})
	require.NoError(t, err)

	if diff := cmp.Diff(img, out); diff != "" {
		t.Errorf("Resize mit Skalierung 1 veraendert das Bild (-want +got):\n%s", diff)
	}
}

func TestResizeBilinearUpscale(t *testing.T) {
	img := &Image{Height: 2, Width: 2, Channels: 1, Pix: []float32{0, 10, 20, 30}}

	out, err := Resize(img, ResizeSpec{SmallestSide: 4})
	require.NoError(t, err)

	want := []float32{
		0, 2.5, 7.5, 10,
		5, 7.5, 12.5, 15,
		15, 17.5, 22.5, 25,
		20, 22.5, 27.5, 30,
	}
	require.Equal(t, []int{4, 4, 1}, out.Shape())
	for i := range want {
		assert.InDelta(t, want[i], out.Pix[i], 1e-4, "Index %d", i)
	}
}

func TestResizeConstantImage(t *testing.T) {
	img := gradientImage(9, 13, func(int, int) float32 { return 42 })

	out, err := Resize(img, ResizeSpec{SmallestSide: 4})
	require.NoError(t, err)
	assert.Equal(t, []int{4, 6, 1}, out.Shape())
	for i, v := range out.Pix {
		assert.InDelta(t, 42, v, 1e-4, "Index %d", i)
	}
}

func TestResizeKeepsChannels(t *testing.T) {
	img, err := NewImage(3, 2, 3)
	require.NoError(t, err)
	for i := range img.Pix {
		img.Pix[i] = float32(i%3) * 10
	}

	out, err := Resize(img, ResizeSpec{SmallestSide: 4})
	require.NoError(t, err)
	assert.Equal(t, []int{6, 4, 3}, out.Shape())
	for i, v := range out.Pix {
		assert.InDelta(t, float32(i%3)*10, v, 1e-4, "Index %d", i)
	}
}

func TestResizeDoesNotMutateInput(t *testing.T) {
	img := gradientImage(4, 4, func(y, x int) float32 { return float32(y + x) })
	orig := img.Clone()

	_, err := Resize(img, ResizeSpec{SmallestSide: 9})
	require.NoError(t, err)
	assert.Equal(t, orig, img)
}

func TestResizeInvalid(t *testing.T) {
	tests := []struct {
		name string
		img  *Image
		spec ResizeSpec
	}{
		{"nil", nil, ResizeSpec{SmallestSide: 4}},
		{"Puffer zu kurz", &Image{Height: 2, Width: 2, Channels: 1, Pix: []float32{1}}, ResizeSpec{SmallestSide: 4}},
		{"leeres Bild", &Image{}, ResizeSpec{SmallestSide: 4}},
		{"Seite 0", gradientImage(2, 2, func(int, int) float32 { return 0 }), ResizeSpec{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resize(tt.img, tt.spec)
			assert.ErrorIs(t, err, ErrInvalidDimension)
		})
	}
}
