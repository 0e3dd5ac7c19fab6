package calib

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/7blacky7/calibprep/vision"
)

func TestParseIndex(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Entry
	}{
		{
			name:  "einfach",
			input: "a.png\nb.png\n",
			want:  []Entry{{0, "a.png"}, {1, "b.png"}},
		},
		{
			name:  "Leerzeichen und CRLF",
			input: "  a.png \r\n\tb.png\r\n",
			want:  []Entry{{0, "a.png"}, {1, "b.png"}},
		},
		{
			name:  "Leerzeilen werden uebersprungen",
			input: "a.png\n\n   \nb.png\n\n",
			want:  []Entry{{0, "a.png"}, {1, "b.png"}},
		},
		{
			name:  "ohne abschliessendes Newline",
			input: "a.png",
			want:  []Entry{{0, "a.png"}},
		},
		{
			name:  "leer",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIndex(strings.NewReader(tt.input))
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseIndex() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWriteIndex(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteIndex(&buf, []string{"a.png", "b.png"}))
	assert.Equal(t, "a.png\nb.png\n", buf.String())

	path := filepath.Join(t.TempDir(), "labels.txt")
	require.NoError(t, WriteIndexFile(path, []string{"x.png", "y.png", "z.png"}))

	entries, err := ReadIndex(path)
	require.NoError(t, err)
	assert.Equal(t, []Entry{{0, "x.png"}, {1, "y.png"}, {2, "z.png"}}, entries)
}

func TestWriteIndexFileMissingDir(t *testing.T) {
	err := WriteIndexFile(filepath.Join(t.TempDir(), "missing", "labels.txt"), nil)
	assert.True(t, errors.Is(err, os.ErrNotExist), "erwartet os.ErrNotExist, bekam %v", err)
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"c.png", "a.jpg", "notes.txt", "b.PNG", "d.webp"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.png"), 0o755))

	names, err := ScanDir(dir, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "b.PNG", "c.png", "d.webp"}, names)

	limited, err := ScanDir(dir, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "b.PNG"}, limited)

	_, err = ScanDir(filepath.Join(dir, "missing"), 0)
	assert.Error(t, err)
}

func TestVerify(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"img_0001.png", "img_0002.png"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "img_0003.png"), 0o755))

	index := filepath.Join(dir, "labels.txt")
	require.NoError(t, WriteIndexFile(index, []string{"img_0001.png", "img_0002.pgn", "img_0003.png", "cat.jpeg"}))

	cfg := DefaultConfig()
	cfg.ImageDir = dir
	cfg.IndexFile = index

	problems, err := Verify(cfg)
	require.NoError(t, err)
	require.Len(t, problems, 3)

	assert.Equal(t, 1, problems[0].Entry.Index)
	assert.ErrorIs(t, problems[0].Err, vision.ErrFileNotFound)
	assert.Equal(t, "img_0002.png", problems[0].Suggestion)

	assert.Equal(t, 2, problems[1].Entry.Index)
	assert.ErrorIs(t, problems[1].Err, vision.ErrDecode)

	assert.Equal(t, 3, problems[2].Entry.Index)
	assert.ErrorIs(t, problems[2].Err, vision.ErrFileNotFound)
	assert.Empty(t, problems[2].Suggestion)
}

func TestVerifyAllPresent(t *testing.T) {
	cfg := writeIndex(t, 3, 1)
	for i := 0; i < 3; i++ {
		writePNG(t, filepath.Join(cfg.ImageDir, entryName(i)), 2, 2, 0)
	}

	problems, err := Verify(cfg)
	require.NoError(t, err)
	assert.Empty(t, problems)
}

func TestClosestName(t *testing.T) {
	candidates := []string{"img_0001.png", "img_0010.png", "dog.jpg"}

	assert.Equal(t, "img_0001.png", closestName("img_0001.PNG", candidates[:1]))
	assert.Equal(t, "img_0010.png", closestName("img_0010.jpg", candidates))
	assert.Equal(t, "", closestName("completely_different.bmp", candidates))
	assert.Equal(t, "", closestName("a.png", nil))
}
