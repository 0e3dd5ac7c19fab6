package calib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/7blacky7/calibprep/vision"
)

func TestBatchFeed(t *testing.T) {
	b := &Batch{
		InputName: "input_1",
		Images: []*vision.Image{
			{Height: 2, Width: 1, Channels: 1, Pix: []float32{1, 2}},
			{Height: 2, Width: 1, Channels: 1, Pix: []float32{3, 4}},
		},
	}

	feed := b.Feed()
	require.Contains(t, feed, "input_1")
	assert.Len(t, feed, 1)
	assert.Equal(t, [][][][]float32{
		{{{1}}, {{2}}},
		{{{3}}, {{4}}},
	}, feed["input_1"])

	shape, err := b.Shape()
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2, 1, 1}, shape)
}

func TestBatchShapeRagged(t *testing.T) {
	b := &Batch{Images: []*vision.Image{
		{Height: 1, Width: 1, Channels: 1, Pix: []float32{1}},
		{Height: 1, Width: 2, Channels: 1, Pix: []float32{1, 2}},
	}}

	_, err := b.Shape()
	assert.ErrorIs(t, err, ErrRaggedBatch)
}
