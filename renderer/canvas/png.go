package canvasrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/ByLCY/jackfield/layout"
	"github.com/ByLCY/jackfield/renderer"
)

// DefaultDPI 是 PNG 导出的默认分辨率。
const DefaultDPI = 300

// PNGRenderer 把标签条栅格化为白底 PNG，图像大小即标签条大小。
type PNGRenderer struct {
	*Renderer
	DPI float64
}

var _ renderer.Renderer = (*PNGRenderer)(nil)

// NewPNGRenderer 共用 r 的字体缓存；dpi<=0 时取 DefaultDPI。
func NewPNGRenderer(r *Renderer, dpi float64) *PNGRenderer {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return &PNGRenderer{Renderer: r, DPI: dpi}
}

// RenderImage 返回栅格化后的图像，scale = dpi / 25.4 像素每毫米。
func (p *PNGRenderer) RenderImage(result *layout.Result) (*image.RGBA, error) {
	if result == nil || result.Width <= 0 {
		return nil, layout.ErrNothingToRender
	}
	dpmm := layout.DotsPerMM(p.DPI)

	c, sink := newCanvasSink(p.Renderer, result.Width, result.Height)
	sink.FillRect(0, 0, result.Width, result.Height, layout.Color{R: 255, G: 255, B: 255})
	// 1 像素边框
	vp := renderer.Viewport{Scale: 1, BorderWidth: 1 / dpmm}
	if err := renderer.Project(result, vp, sink); err != nil {
		return nil, err
	}
	return rasterizer.Draw(c, canvas.DPMM(dpmm), canvas.DefaultColorSpace), nil
}

// Render 实现 renderer.Renderer，返回 PNG 字节。
func (p *PNGRenderer) Render(result *layout.Result) ([]byte, error) {
	img, err := p.RenderImage(result)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("编码 PNG 失败: %w", err)
	}
	return buf.Bytes(), nil
}
