package canvasrenderer

import (
	"image/color"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/jackfield/layout"
	"github.com/ByLCY/jackfield/renderer"
)

// canvasSink 把投影命令画到 canvas 上。设备单位为 mm，字号在这里换算成 pt。
type canvasSink struct {
	r   *Renderer
	ctx *canvas.Context
}

var _ renderer.Sink = (*canvasSink)(nil)

func newCanvasSink(r *Renderer, w, h float64) (*canvas.Canvas, *canvasSink) {
	c := canvas.New(w, h)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点
	return c, &canvasSink{r: r, ctx: ctx}
}

func (s *canvasSink) FillRect(x, y, w, h float64, fill layout.Color) {
	s.ctx.SetFillColor(colorFromLayout(fill))
	s.ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
	s.ctx.DrawPath(x, y, canvas.Rectangle(w, h))
}

func (s *canvasSink) StrokeRect(x, y, w, h, width float64, stroke layout.Color) {
	s.ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
	s.ctx.SetStrokeColor(colorFromLayout(stroke))
	s.ctx.SetStrokeWidth(width)
	s.ctx.DrawPath(x, y, canvas.Rectangle(w, h))
}

func (s *canvasSink) DrawText(tb layout.TextBox) error {
	face, err := s.r.fontFace(tb.Font, toPt(tb.FontSize), tb.Color)
	if err != nil {
		return err
	}
	x, align := textAnchor(tb)
	s.ctx.DrawText(x, tb.Baseline, canvas.NewTextLine(face, tb.Content, align))
	return nil
}

// textAnchor 把 TextBox 的对齐方式换算成锚点横坐标，对齐交给 canvas 按实际字宽处理。
func textAnchor(tb layout.TextBox) (float64, canvas.TextAlign) {
	switch tb.Align {
	case layout.AlignCenter:
		return tb.X + tb.Width/2, canvas.Center
	case layout.AlignRight:
		return tb.X + tb.Width, canvas.Right
	default:
		return tb.X, canvas.Left
	}
}
