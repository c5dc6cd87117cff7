package export

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ByLCY/jackfield/layout"
	"github.com/ByLCY/jackfield/logger"
	canvasrenderer "github.com/ByLCY/jackfield/renderer/canvas"
	"github.com/ByLCY/jackfield/strip"
)

func sampleStrip(t *testing.T) *strip.Strip {
	t.Helper()
	s := strip.New()
	require.NoError(t, s.SetContentCellCount(4))
	_, err := s.SetEndCap(12, "OUT")
	require.NoError(t, err)
	return s
}

func TestFormatForPath(t *testing.T) {
	t.Parallel()

	f, err := FormatForPath("a/b.PDF")
	require.NoError(t, err)
	require.Equal(t, FormatPDF, f)
	f, err = FormatForPath("b.png")
	require.NoError(t, err)
	require.Equal(t, ".png", f.Extension())
	_, err = FormatForPath("b.svg")
	require.Error(t, err)
}

func TestExportPDFAndPNG(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := logger.New(logger.Options{Level: "debug", Writer: buf})
	require.NoError(t, err)

	r := canvasrenderer.NewRenderer("")
	dir := t.TempDir()

	pdfPath := filepath.Join(dir, "out", "strip.pdf")
	require.NoError(t, NewPDF(r, Options{Log: log}).Export(sampleStrip(t), pdfPath))
	data, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	pngPath := filepath.Join(dir, "strip.png")
	exp, err := New(FormatPNG, r, 72, Options{Log: log})
	require.NoError(t, err)
	require.Equal(t, FormatPNG, exp.Format())
	require.NoError(t, exp.Export(sampleStrip(t), pngPath))
	f, err := os.Open(pngPath)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	// 52mm x 5mm @72dpi
	require.InDelta(t, 147, img.Bounds().Dx(), 1)
	require.InDelta(t, 14, img.Bounds().Dy(), 1)

	require.Contains(t, buf.String(), "导出完成")
}

func TestExportEmptyStripWritesNothing(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty.pdf")
	err := NewPDF(canvasrenderer.NewRenderer(""), Options{}).Export(strip.New(), path)
	require.ErrorIs(t, err, layout.ErrNothingToRender)
	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr))
}

func TestExportStrictRejectsInvalidStrip(t *testing.T) {
	t.Parallel()

	s := strip.New()
	require.NoError(t, s.SetContentCellWidth(100))
	require.NoError(t, s.SetContentCellCount(6)) // 600mm > 500mm

	path := filepath.Join(t.TempDir(), "wide.png")
	err := NewPNG(canvasrenderer.NewRenderer(""), 10, Options{Strict: true}).Export(s, path)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	require.NotEmpty(t, ve.Problems)
	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr))
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := New(Format("svg"), canvasrenderer.NewRenderer(""), 0, Options{})
	require.Error(t, err)
}
