// MODUL: pipeline_test
// ZWECK: Tests fuer die verkettete Vorverarbeitung und ihre Options
// INPUT: Synthetische Bilder
// OUTPUT: Testresultate
// NEBENEFFEKTE: keine
// ABHAENGIGKEITEN: testing, testify, go-cmp
// HINWEISE: Fehler muessen sowohl den Schritt als auch den Sentinel erkennen lassen

package vision

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipelinePassthroughIsIdentity(t *testing.T) {
	p, err := NewPipeline()
	require.NoError(t, err)
	assert.Equal(t, ModePassthrough, p.Mode())
	assert.Nil(t, p.OutputShape())

	img := gradientImage(32, 40, func(y, x int) float32 { return float32(x) })
	out, err := p.Process(img)
	require.NoError(t, err)
	assert.Same(t, img, out)
}

func TestPipelinePassthroughRejectsInvalid(t *testing.T) {
	p, err := NewPipeline()
	require.NoError(t, err)

	_, err = p.Process(&Image{Height: 2, Width: 2, Channels: 1})

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StageLoad, stageErr.Stage)
	assert.ErrorIs(t, err, ErrInvalidDimension)
}

func TestPipelineNormalizeShape(t *testing.T) {
	p, err := NewPipeline(WithNormalize(true), WithSmallestSide(28), WithCrop(28, 28))
	require.NoError(t, err)
	assert.Equal(t, []int{28, 28, 1}, p.OutputShape())

	for _, size := range [][2]int{{32, 40}, {40, 32}, {28, 28}, {100, 30}, {5, 7}} {
		img := gradientImage(size[0], size[1], func(y, x int) float32 { return 200 })

		out, err := p.Process(img)
		require.NoError(t, err, "Bild %dx%d", size[0], size[1])
		assert.Equal(t, []int{28, 28, 1}, out.Shape())
		for _, v := range out.Pix {
			assert.InDelta(t, 76.32, v, 1e-3)
		}
	}
}

func TestPipelineMatchesStages(t *testing.T) {
	img := gradientImage(32, 40, func(y, x int) float32 { return float32(y*40 + x) })

	p, err := NewPipeline(WithNormalize(true), WithSmallestSide(28), WithCrop(28, 28), WithMeans(0))
	require.NoError(t, err)

	out, err := p.Process(img)
	require.NoError(t, err)

	resized, err := Resize(img, ResizeSpec{SmallestSide: 28})
	require.NoError(t, err)
	want, err := CenterCrop(resized, CropSpec{Height: 28, Width: 28})
	require.NoError(t, err)

	// Null-Mittelwerte: Ergebnis entspricht Crop(Resize(img))
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("Pipeline weicht von den Einzelschritten ab (-want +got):\n%s", diff)
	}
}

func TestPipelineStageErrors(t *testing.T) {
	tests := []struct {
		name      string
		opts      []Option
		img       *Image
		wantStage Stage
		wantErr   error
	}{
		{
			name:      "ungueltiges Bild",
			opts:      []Option{WithNormalize(true)},
			img:       &Image{},
			wantStage: StageResize,
			wantErr:   ErrInvalidDimension,
		},
		{
			name:      "Crop groesser als Resize",
			opts:      []Option{WithNormalize(true), WithSmallestSide(10), WithCrop(28, 28)},
			img:       gradientImage(20, 20, func(int, int) float32 { return 0 }),
			wantStage: StageCrop,
			wantErr:   ErrCropOutOfBounds,
		},
		{
			name:      "RGB-Mittelwerte fuer Graustufen",
			opts:      []Option{WithNormalize(true), WithSmallestSide(28), WithCrop(28, 28), WithMeans(RGBMeans...)},
			img:       gradientImage(28, 28, func(int, int) float32 { return 0 }),
			wantStage: StageNormalize,
			wantErr:   ErrChannelMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPipeline(tt.opts...)
			require.NoError(t, err)

			_, err = p.Process(tt.img)

			var stageErr *StageError
			require.True(t, errors.As(err, &stageErr), "erwartet *StageError, bekam %v", err)
			assert.Equal(t, tt.wantStage, stageErr.Stage)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewPipelineValidation(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{"Passthrough ignoriert Geometrie", []Option{WithSmallestSide(0), WithCrop(0, 0)}, nil},
		{"kleinste Seite 0", []Option{WithNormalize(true), WithSmallestSide(0)}, ErrInvalidDimension},
		{"Crop negativ", []Option{WithNormalize(true), WithCrop(-1, 28)}, ErrInvalidDimension},
		{"keine Mittelwerte", []Option{WithNormalize(true), WithMeans()}, ErrChannelMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPipeline(tt.opts...)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}

	_, err := NewPipeline(WithMode(Mode(7)))
	assert.Error(t, err)
}

func TestPipelineOptionsAreCopied(t *testing.T) {
	means := []float32{1}
	p, err := NewPipeline(WithNormalize(true), WithMeans(means...))
	require.NoError(t, err)

	means[0] = 42
	o := p.Options()
	assert.Equal(t, ChannelMeans{1}, o.Means)

	o.Means[0] = 99
	assert.Equal(t, ChannelMeans{1}, p.Options().Means)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "passthrough", ModePassthrough.String())
	assert.Equal(t, "normalize", ModeNormalize.String())
	assert.Equal(t, "Mode(5)", Mode(5).String())
}

func TestStageErrorMessage(t *testing.T) {
	err := &StageError{Stage: StageCrop, Err: ErrCropOutOfBounds}
	assert.Equal(t, "crop: vision: crop out of bounds", err.Error())
}
