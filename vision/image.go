// MODUL: image
// ZWECK: Pixel-Puffer der Vorverarbeitung und Standard-Loader fuer Bilddateien
// INPUT: Dateipfad, Bytes oder image.Image
// OUTPUT: *Image (row-major HWC, float32-Samples)
// NEBENEFFEKTE: Dateisystem-Lesezugriff bei LoadImage
// ABHAENGIGKEITEN: golang.org/x/image/draw, x/image/{webp,bmp,tiff} (extern), image/jpeg, image/png, image/gif
// HINWEISE: Der Loader dekodiert immer einkanalig (Graustufen), wie die Kalibrierung es erwartet

package vision

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"

	// Standard-Decoder registrieren
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Image ist ein dekodierter Pixel-Puffer mit Shape-Metadaten.
// Pix ist row-major im HWC-Layout: Pix[(y*Width+x)*Channels+c].
// Jeder Pipeline-Schritt liefert ein neues Image, Eingaben werden nicht veraendert.
type Image struct {
	Height   int
	Width    int
	Channels int
	Pix      []float32
}

// NewImage alloziert ein leeres Bild der angegebenen Groesse
func NewImage(height, width, channels int) (*Image, error) {
	if height <= 0 || width <= 0 || channels <= 0 {
		return nil, fmt.Errorf("%w: %dx%dx%d", ErrInvalidDimension, height, width, channels)
	}
	return &Image{
		Height:   height,
		Width:    width,
		Channels: channels,
		Pix:      make([]float32, height*width*channels),
	}, nil
}

// Validate prueft Shape und Pufferlaenge
func (img *Image) Validate() error {
	if img == nil {
		return fmt.Errorf("%w: nil image", ErrInvalidDimension)
	}
	if img.Height <= 0 || img.Width <= 0 || img.Channels <= 0 {
		return fmt.Errorf("%w: %dx%dx%d", ErrInvalidDimension, img.Height, img.Width, img.Channels)
	}
	if len(img.Pix) != img.Height*img.Width*img.Channels {
		return fmt.Errorf("%w: buffer has %d samples, shape %dx%dx%d needs %d",
			ErrInvalidDimension, len(img.Pix), img.Height, img.Width, img.Channels, img.Height*img.Width*img.Channels)
	}
	return nil
}

// At gibt das Sample an (y, x, c) zurueck
func (img *Image) At(y, x, c int) float32 {
	return img.Pix[(y*img.Width+x)*img.Channels+c]
}

// Shape gibt die Dimensionen als (H, W, C) zurueck
func (img *Image) Shape() []int {
	return []int{img.Height, img.Width, img.Channels}
}

// Clone erstellt eine tiefe Kopie
func (img *Image) Clone() *Image {
	return &Image{
		Height:   img.Height,
		Width:    img.Width,
		Channels: img.Channels,
		Pix:      append([]float32(nil), img.Pix...),
	}
}

// Nested gibt das Bild als verschachtelte [H][W][C]-Struktur zurueck
func (img *Image) Nested() [][][]float32 {
	rows := make([][][]float32, img.Height)
	for y := range rows {
		row := make([][]float32, img.Width)
		for x := range row {
			off := (y*img.Width + x) * img.Channels
			row[x] = append([]float32(nil), img.Pix[off:off+img.Channels]...)
		}
		rows[y] = row
	}
	return rows
}

// FromImage konvertiert ein image.Image in ein einkanaliges Image (0..255)
func FromImage(src image.Image) *Image {
	gray := toGray(src)
	bounds := gray.Bounds()
	h, w := bounds.Dy(), bounds.Dx()

	out := &Image{Height: h, Width: w, Channels: 1, Pix: make([]float32, h*w)}
	for y := 0; y < h; y++ {
		row := gray.Pix[y*gray.Stride : y*gray.Stride+w]
		for x, v := range row {
			out.Pix[y*w+x] = float32(v)
		}
	}
	return out
}

// toGray konvertiert ein beliebiges image.Image zu *image.Gray mit Ursprung (0,0)
func toGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok && g.Bounds().Min == (image.Point{}) {
		return g
	}

	bounds := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(gray, gray.Bounds(), img, bounds.Min, draw.Src)
	return gray
}

// LoadImage laedt ein Bild von einem Dateipfad
func LoadImage(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return LoadImageFromBytes(data)
}

// LoadImageFromBytes dekodiert ein Bild aus Byte-Daten
func LoadImageFromBytes(data []byte) (*Image, error) {
	format := DetectFormat(data)
	if format == FormatUnknown {
		return nil, fmt.Errorf("%w: unknown image format", ErrDecode)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, format, err)
	}

	out := FromImage(img)
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return out, nil
}

// FileLoader ist der Standard-Loader: jede Datei wird pro Aufruf geoeffnet und geschlossen,
// es gibt keinen prozessweiten Decoder-Zustand.
type FileLoader struct{}

// Load implementiert calib.Loader
func (FileLoader) Load(path string) (*Image, error) {
	return LoadImage(path)
}
