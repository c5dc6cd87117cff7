package renderer

import "github.com/ByLCY/jackfield/layout"

// OpKind 标识一条记录下来的绘制命令。
type OpKind string

const (
	OpFill   OpKind = "fill"
	OpStroke OpKind = "stroke"
	OpText   OpKind = "text"
)

// Op 是一条设备坐标下的绘制命令。
type Op struct {
	Kind   OpKind
	X, Y   float64
	W, H   float64
	Width  float64 // 边框宽度
	Color  layout.Color
	Text   string
	Size   float64
	Style  string
	Origin float64 // 文本基线
}

// Recorder 把绘制命令记录下来而不真正输出，用于比较不同缩放下的几何关系。
type Recorder struct {
	Ops []Op
}

var _ Sink = (*Recorder)(nil)

func (r *Recorder) FillRect(x, y, w, h float64, fill layout.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpFill, X: x, Y: y, W: w, H: h, Color: fill})
}

func (r *Recorder) StrokeRect(x, y, w, h, width float64, stroke layout.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpStroke, X: x, Y: y, W: w, H: h, Width: width, Color: stroke})
}

func (r *Recorder) DrawText(tb layout.TextBox) error {
	r.Ops = append(r.Ops, Op{
		Kind:   OpText,
		X:      tb.X,
		Y:      tb.Y,
		W:      tb.Width,
		H:      tb.Height,
		Color:  tb.Color,
		Text:   tb.Content,
		Size:   tb.FontSize,
		Style:  tb.Font.Style,
		Origin: tb.Baseline,
	})
	return nil
}

// Filter 返回指定类型的命令。
func (r *Recorder) Filter(kind OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}
