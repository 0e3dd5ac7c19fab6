// MODUL: export
// ZWECK: Schreibt Batches als Rohdaten oder JSON fuer externe Kalibrierungs-Tools
// INPUT: *Batch, Datentyp (f32/f16/bf16), Layout (NHWC/NCHW)
// OUTPUT: Little-Endian Rohdaten bzw. Feed-JSON
// NEBENEFFEKTE: Schreibt in den uebergebenen io.Writer
// ABHAENGIGKEITEN: github.com/x448/float16, github.com/d4l3k/go-bfloat16 (extern)
// HINWEISE: Rohdaten setzen gleich grosse Bilder voraus (ErrRaggedBatch im Passthrough-Modus)

package calib

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/d4l3k/go-bfloat16"
	"github.com/x448/float16"
)

// DType ist der Sample-Typ der Rohdaten
type DType string

const (
	DTypeF32  DType = "f32"
	DTypeF16  DType = "f16"
	DTypeBF16 DType = "bf16"
)

// Layout ist die Achsenreihenfolge der Rohdaten
type Layout string

const (
	LayoutNHWC Layout = "nhwc"
	LayoutNCHW Layout = "nchw"
)

// ParseDType parst f32, f16 oder bf16 (Gross-/Kleinschreibung egal)
func ParseDType(s string) (DType, error) {
	switch d := DType(strings.ToLower(s)); d {
	case DTypeF32, DTypeF16, DTypeBF16:
		return d, nil
	}
	return "", fmt.Errorf("calib: unsupported dtype %q (f32, f16, bf16)", s)
}

// ParseLayout parst nhwc oder nchw (Gross-/Kleinschreibung egal)
func ParseLayout(s string) (Layout, error) {
	switch l := Layout(strings.ToLower(s)); l {
	case LayoutNHWC, LayoutNCHW:
		return l, nil
	}
	return "", fmt.Errorf("calib: unsupported layout %q (nhwc, nchw)", s)
}

// BytesPerSample gibt die Groesse eines Samples in Bytes zurueck
func (d DType) BytesPerSample() int {
	if d == DTypeF32 {
		return 4
	}
	return 2
}

// WriteRaw schreibt den Batch bildweise als Little-Endian Rohdaten
func WriteRaw(w io.Writer, b *Batch, dtype DType, layout Layout) error {
	if _, err := b.Shape(); err != nil {
		return err
	}
	if _, err := ParseDType(string(dtype)); err != nil {
		return err
	}
	if _, err := ParseLayout(string(layout)); err != nil {
		return err
	}

	for _, img := range b.Images {
		samples := img.Pix
		if layout == LayoutNCHW {
			samples = img.CHW()
		}

		if _, err := w.Write(encodeSamples(samples, dtype)); err != nil {
			return err
		}
	}
	return nil
}

func encodeSamples(samples []float32, dtype DType) []byte {
	switch dtype {
	case DTypeBF16:
		return bfloat16.EncodeFloat32(samples)
	case DTypeF16:
		buf := make([]byte, 0, 2*len(samples))
		for _, v := range samples {
			buf = binary.LittleEndian.AppendUint16(buf, float16.Fromfloat32(v).Bits())
		}
		return buf
	default:
		buf := make([]byte, 0, 4*len(samples))
		for _, v := range samples {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
		}
		return buf
	}
}

// batchJSON ist die JSON-Form eines Batches
type batchJSON struct {
	Iteration int                        `json:"iteration"`
	BatchSize int                        `json:"batch_size"`
	InputName string                     `json:"input_name"`
	Entries   []Entry                    `json:"entries"`
	Feed      map[string][][][][]float32 `json:"feed"`
}

// MarshalJSON implementiert json.Marshaler
func (b *Batch) MarshalJSON() ([]byte, error) {
	return json.Marshal(batchJSON{
		Iteration: b.Iteration,
		BatchSize: b.BatchSize,
		InputName: b.InputName,
		Entries:   b.Entries,
		Feed:      b.Feed(),
	})
}

// WriteJSON schreibt den Batch inklusive Feed als JSON
func WriteJSON(w io.Writer, b *Batch) error {
	enc := json.NewEncoder(w)
	return enc.Encode(b)
}
