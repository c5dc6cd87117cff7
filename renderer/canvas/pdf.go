package canvasrenderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/jackfield/layout"
	"github.com/ByLCY/jackfield/renderer"
)

// Render renders the strip centered on a single PDF page. Rotation turns the strip around its own center.
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	place, err := layout.Place(result)
	if err != nil {
		return nil, err
	}

	stripCanvas, sink := newCanvasSink(r, result.Width, result.Height)
	// PDF 设备单位为 pt，1 个单位的边框即 1pt
	vp := renderer.Viewport{Scale: 1, BorderWidth: layout.PtToMm}
	if err := renderer.Project(result, vp, sink); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, place.PageWidth, place.PageHeight, nil)
	r.applyMeta(writer, result.Meta)

	view := canvas.Identity.
		Translate(place.CenterX, place.CenterY).
		Rotate(float64(place.Rotation)).
		Translate(-result.Width/2, -result.Height/2)
	stripCanvas.RenderViewTo(writer, view)

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) applyMeta(writer *pdf.PDF, meta layout.DocumentMeta) {
	if writer == nil {
		return
	}
	keywords := strings.Join(meta.Keywords, ", ")
	writer.SetInfo(meta.Title, meta.Subject, keywords, meta.Author, meta.Creator)
}
