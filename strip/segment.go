package strip

import (
	"fmt"
	"math"
)

// 两端 cap 的固定 id。
const (
	StartCapID = "L_START"
	EndCapID   = "L_END"
)

// Kind 标识 segment 变体，用于序列化与重建。
type Kind int

const (
	KindStart Kind = iota
	KindContent
	KindEnd
)

func (k Kind) String() string {
	switch k {
	case KindStart:
		return "start"
	case KindContent:
		return "content"
	case KindEnd:
		return "end"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Segment 是标签条上的一个格子。变体只有 StartCap、ContentCell、EndCap 三种，
// sealed 保证包外无法再实现。
type Segment interface {
	ID() string
	Kind() Kind
	Text() string
	SetText(string)
	Width() float64
	SetWidth(float64) error
	Format() TextFormat
	SetFormat(TextFormat)
	TextColor() Color
	SetTextColor(Color)
	BackgroundColor() Color
	SetBackgroundColor(Color)

	sealed() *segment
}

// Defaults 是创建 segment 时拷贝的默认样式快照，之后修改设置不会回溯影响已有格子。
type Defaults struct {
	TextColor       Color
	BackgroundColor Color
}

// DefaultStyle 返回黑字白底。
func DefaultStyle() Defaults {
	return Defaults{TextColor: Black, BackgroundColor: White}
}

type segment struct {
	id         string
	text       string
	width      float64
	format     TextFormat
	textColor  Color
	background Color
}

func newSegment(id, text string, width float64, d Defaults) (segment, error) {
	s := segment{id: id, text: text, textColor: d.TextColor, background: d.BackgroundColor}
	if err := s.SetWidth(width); err != nil {
		return segment{}, err
	}
	return s, nil
}

func (s *segment) ID() string { return s.id }
func (s *segment) Text() string { return s.text }

func (s *segment) SetText(text string) { s.text = text }

func (s *segment) Width() float64 { return s.width }

// SetWidth 拒绝负数；否则按 3 位小数（0.001mm）保存。
func (s *segment) SetWidth(w float64) error {
	if w < 0 || math.IsNaN(w) {
		return ErrNegativeWidth
	}
	s.width = roundMM(w)
	return nil
}

func (s *segment) Format() TextFormat { return s.format }
func (s *segment) SetFormat(f TextFormat) { s.format = f }
func (s *segment) TextColor() Color { return s.textColor }
func (s *segment) SetTextColor(c Color) { s.textColor = c }
func (s *segment) BackgroundColor() Color { return s.background }
func (s *segment) SetBackgroundColor(c Color) { s.background = c }
func (s *segment) sealed() *segment { return s }

// StartCap 是可选的起始 cap，id 固定为 L_START。
type StartCap struct{ segment }

// NewStartCap creates a start cap; a negative width is rejected.
func NewStartCap(width float64, text string, d Defaults) (*StartCap, error) {
	s, err := newSegment(StartCapID, text, width, d)
	if err != nil {
		return nil, err
	}
	return &StartCap{segment: s}, nil
}

func (*StartCap) Kind() Kind { return KindStart }

// ContentCell 是一个编号格，对应一个插孔。
type ContentCell struct{ segment }

// NewContentCell creates a content cell with the given id.
func NewContentCell(id string, width float64, d Defaults) (*ContentCell, error) {
	s, err := newSegment(id, "", width, d)
	if err != nil {
		return nil, err
	}
	return &ContentCell{segment: s}, nil
}

func (*ContentCell) Kind() Kind { return KindContent }

// EndCap 是可选的结束 cap，id 固定为 L_END。
type EndCap struct{ segment }

// NewEndCap creates an end cap; a negative width is rejected.
func NewEndCap(width float64, text string, d Defaults) (*EndCap, error) {
	s, err := newSegment(EndCapID, text, width, d)
	if err != nil {
		return nil, err
	}
	return &EndCap{segment: s}, nil
}

func (*EndCap) Kind() Kind { return KindEnd }

var (
	_ Segment = (*StartCap)(nil)
	_ Segment = (*ContentCell)(nil)
	_ Segment = (*EndCap)(nil)
)

// roundMM 保留 3 位小数，避免界面输入的舍入噪声在多个格子间累积。
func roundMM(v float64) float64 {
	return math.Round(v*1000) / 1000
}
