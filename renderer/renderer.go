package renderer

import (
	"math"

	"github.com/ByLCY/jackfield/layout"
)

// Renderer 将布局结果输出为最终文件，例如 PDF 或图像。
// Render 返回生成的二进制数据（例如 PDF 字节切片）以及可能的错误。
type Renderer interface {
	Render(result *layout.Result) ([]byte, error)
}

// Sink 是各输出目标需要提供的绘制能力，坐标均为设备单位。
type Sink interface {
	FillRect(x, y, w, h float64, fill layout.Color)
	StrokeRect(x, y, w, h, width float64, stroke layout.Color)
	DrawText(tb layout.TextBox) error
}

// Viewport 描述 mm 到设备单位的映射：Scale 为每 mm 的设备单位数，
// Origin 为标签条左上角的位置，BorderWidth 为边框宽度（设备单位，<=0 时取 1）。
type Viewport struct {
	Scale       float64
	OriginX     float64
	OriginY     float64
	BorderWidth float64
}

// PreviewMargin 是交互预览适配视口时保留的比例。
const PreviewMargin = 0.95

// Project 是三种输出共用的投影算法：从左到右遍历格子，先填充背景，再画黑色边框，
// 最后绘制居中文本，光标按每个格子的设备宽度前进。空结果不会产生任何绘制调用。
func Project(res *layout.Result, vp Viewport, sink Sink) error {
	if res == nil || res.Width <= 0 || len(res.Cells) == 0 {
		return layout.ErrNothingToRender
	}
	scale := vp.Scale
	if scale <= 0 {
		scale = 1
	}
	border := vp.BorderWidth
	if border <= 0 {
		border = 1
	}

	x := vp.OriginX
	y := vp.OriginY
	h := res.Height * scale
	for _, cell := range res.Cells {
		w := cell.Rect.Width * scale
		if w <= 0 {
			continue
		}
		if cell.Rect.FillColor != nil {
			sink.FillRect(x, y, w, h, *cell.Rect.FillColor)
		}
		bw := border
		if cell.Rect.StrokeWidth > 0 {
			bw = cell.Rect.StrokeWidth * scale
		}
		sink.StrokeRect(x, y, w, h, bw, cell.Rect.StrokeColor)
		if cell.Text != nil {
			if err := sink.DrawText(scaleText(*cell.Text, cell.Rect.X, x, y, scale)); err != nil {
				return err
			}
		}
		x += w
	}
	return nil
}

// scaleText 把格子内的 mm 文本框换算到设备坐标，位置相对当前光标。
func scaleText(tb layout.TextBox, cellX, cursorX, originY, scale float64) layout.TextBox {
	tb.X = cursorX + (tb.X-cellX)*scale
	tb.Y = originY + tb.Y*scale
	tb.Baseline = originY + tb.Baseline*scale
	tb.Width *= scale
	tb.Height *= scale
	tb.FontSize *= scale
	return tb
}

// FitScale 返回使标签条完整放入 viewW x viewH 视口的缩放比例，并保留 5% 余量。
func FitScale(res *layout.Result, viewW, viewH float64) float64 {
	if res == nil || res.Width <= 0 || res.Height <= 0 || viewW <= 0 || viewH <= 0 {
		return 0
	}
	return math.Min(viewW/res.Width, viewH/res.Height) * PreviewMargin
}

// PixelSize 返回按 scale 输出时的像素尺寸（向上取整）。
func PixelSize(res *layout.Result, scale float64) (int, int) {
	if res == nil || scale <= 0 {
		return 0, 0
	}
	return int(math.Ceil(res.Width*scale - 1e-9)), int(math.Ceil(res.Height*scale - 1e-9))
}
