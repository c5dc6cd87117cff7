// Package strip 定义跳线排标签条的数据模型：可选的起始 cap、N 个内容格、可选的结束 cap。
// 所有修改都经由 Strip 的方法完成，保证标签条始终处于可渲染的状态。
package strip

import (
	"fmt"
	"math"
	"strconv"
)

// 物理约束（mm）。
const (
	MinHeight = 5.0
	MaxHeight = 12.0
	MaxWidth  = 500.0

	DefaultHeight           = 5.0
	DefaultContentCellWidth = 10.0

	// 宽度精度为 0.001mm，再多的格子无论多窄都放不进 MaxWidth。
	MaxContentCells = 500000
)

// Strip 是聚合根，独占其所有 segment。
type Strip struct {
	height           float64
	contentCellWidth float64
	start            *StartCap
	end              *EndCap
	cells            []*ContentCell
	settings         Settings
}

// New 创建默认高度 5mm、内容格宽 10mm、没有任何格子的标签条。
func New() *Strip {
	return &Strip{
		height:           DefaultHeight,
		contentCellWidth: DefaultContentCellWidth,
		settings:         DefaultSettings(),
	}
}

// Height 返回高度（mm）。
func (s *Strip) Height() float64 { return s.height }

// SetHeight 将高度钳制到 [MinHeight, MaxHeight]，从不报错。
func (s *Strip) SetHeight(h float64) {
	if math.IsNaN(h) {
		return
	}
	s.height = math.Max(MinHeight, math.Min(h, MaxHeight))
}

// ContentCellWidth 返回共享的内容格宽度（mm）。
func (s *Strip) ContentCellWidth() float64 { return s.contentCellWidth }

// SetContentCellWidth 要求 w > 0；成功后所有现有内容格的宽度都会被覆盖为新值，
// 单独设置过的宽度也会丢失，cap 不受影响。
func (s *Strip) SetContentCellWidth(w float64) error {
	if !(w > 0) {
		return ErrNonPositiveWidth
	}
	w = roundMM(w)
	for _, c := range s.cells {
		if err := c.SetWidth(w); err != nil {
			return err
		}
	}
	s.contentCellWidth = w
	return nil
}

// StartCap 返回起始 cap，不存在时为 nil。
func (s *Strip) StartCap() *StartCap { return s.start }

// EndCap 返回结束 cap，不存在时为 nil。
func (s *Strip) EndCap() *EndCap { return s.end }

// SetStartCap 配置起始 cap。width > 0 时创建（使用当前默认颜色）或原地更新宽度与文本；
// width == 0 时移除，这是移除 cap 的唯一方式。返回值在移除后为 nil。
func (s *Strip) SetStartCap(width float64, text string) (*StartCap, error) {
	if width < 0 || math.IsNaN(width) {
		return nil, fmt.Errorf("起始 cap: %w", ErrNegativeWidth)
	}
	if width == 0 {
		s.start = nil
		return nil, nil
	}
	if s.start == nil {
		c, err := NewStartCap(width, text, s.settings.Defaults())
		if err != nil {
			return nil, err
		}
		s.start = c
		return c, nil
	}
	if err := s.start.SetWidth(width); err != nil {
		return nil, err
	}
	s.start.SetText(text)
	return s.start, nil
}

// SetEndCap 与 SetStartCap 语义相同，作用于结束 cap。
func (s *Strip) SetEndCap(width float64, text string) (*EndCap, error) {
	if width < 0 || math.IsNaN(width) {
		return nil, fmt.Errorf("结束 cap: %w", ErrNegativeWidth)
	}
	if width == 0 {
		s.end = nil
		return nil, nil
	}
	if s.end == nil {
		c, err := NewEndCap(width, text, s.settings.Defaults())
		if err != nil {
			return nil, err
		}
		s.end = c
		return c, nil
	}
	if err := s.end.SetWidth(width); err != nil {
		return nil, err
	}
	s.end.SetText(text)
	return s.end, nil
}

// ContentCells 返回内容格切片的拷贝（元素仍指向同一个格子）。
func (s *Strip) ContentCells() []*ContentCell {
	out := make([]*ContentCell, len(s.cells))
	copy(out, s.cells)
	return out
}

// ContentCellCount 返回内容格数量。
func (s *Strip) ContentCellCount() int { return len(s.cells) }

// SetContentCellCount 调整内容格数量。增长时在末尾追加新格子，id 从当前数量 +1 开始连续编号，
// 宽度取共享宽度、颜色取当前默认值；缩减时从末尾截断。被截断的格子不会在再次增长时恢复。
func (s *Strip) SetContentCellCount(n int) error {
	if n < 0 {
		return ErrNegativeCount
	}
	if n > MaxContentCells {
		return ErrTooManyCells
	}
	if n <= len(s.cells) {
		for i := n; i < len(s.cells); i++ {
			s.cells[i] = nil
		}
		s.cells = s.cells[:n]
		return nil
	}
	d := s.settings.Defaults()
	for i := len(s.cells); i < n; i++ {
		c, err := NewContentCell(strconv.Itoa(i+1), s.contentCellWidth, d)
		if err != nil {
			return err
		}
		s.cells = append(s.cells, c)
	}
	return nil
}

// Segments 按从左到右的规范顺序返回 [start?] ++ cells ++ [end?]，渲染与序列化都以此为准。
func (s *Strip) Segments() []Segment {
	out := make([]Segment, 0, len(s.cells)+2)
	if s.start != nil {
		out = append(out, s.start)
	}
	for _, c := range s.cells {
		out = append(out, c)
	}
	if s.end != nil {
		out = append(out, s.end)
	}
	return out
}

// TotalWidth 是 Segments() 中每个格子自身宽度之和（不是 count*共享宽度）。
func (s *Strip) TotalWidth() float64 {
	total := 0.0
	for _, seg := range s.Segments() {
		total += seg.Width()
	}
	return total
}

// Dimensions 返回 (宽, 高)，单位 mm。
func (s *Strip) Dimensions() (width, height float64) {
	return s.TotalWidth(), s.height
}

// Span 记录一个 segment 在标签条中的水平位置（mm）。
type Span struct {
	Segment Segment
	Offset  float64
	Width   float64
}

// Spans 返回每个 segment 的左边界偏移。
func (s *Strip) Spans() []Span {
	segs := s.Segments()
	out := make([]Span, 0, len(segs))
	x := 0.0
	for _, seg := range segs {
		out = append(out, Span{Segment: seg, Offset: x, Width: seg.Width()})
		x += seg.Width()
	}
	return out
}

// FindSegment 线性扫描 Segments()，返回第一个 id 匹配的格子。
func (s *Strip) FindSegment(id string) (Segment, bool) {
	for _, seg := range s.Segments() {
		if seg.ID() == id {
			return seg, true
		}
	}
	return nil, false
}

// Settings 返回输出设置的拷贝。
func (s *Strip) Settings() Settings { return s.settings }

// SetSettings 替换输出设置；已有格子的颜色保持不变。
func (s *Strip) SetSettings(settings Settings) { s.settings = settings }

// Validate 是不修改状态、不报错的自检，返回零到多条可读的问题描述。
// 导出前由调用方决定是否因非空结果而阻止。
func (s *Strip) Validate() []string {
	var problems []string

	if s.height < MinHeight {
		problems = append(problems, fmt.Sprintf("标签条高度 (%g mm) 低于最小值 (%g mm)", s.height, MinHeight))
	} else if s.height > MaxHeight {
		problems = append(problems, fmt.Sprintf("标签条高度 (%g mm) 超过最大值 (%g mm)", s.height, MaxHeight))
	}

	if s.contentCellWidth <= 0 {
		problems = append(problems, "内容格宽度必须大于 0")
	}
	if s.start != nil && s.start.Width() < 0 {
		problems = append(problems, "起始 cap 宽度不能为负数")
	}
	if s.end != nil && s.end.Width() < 0 {
		problems = append(problems, "结束 cap 宽度不能为负数")
	}
	for _, c := range s.cells {
		if c.Width() < 0 {
			problems = append(problems, fmt.Sprintf("内容格 %s 宽度不能为负数", c.ID()))
		}
	}

	total := s.TotalWidth()
	if total > MaxWidth {
		problems = append(problems, fmt.Sprintf("标签条总宽度 (%g mm) 超过最大值 (%g mm)", total, MaxWidth))
	} else if total <= 0 {
		problems = append(problems, "标签条宽度为零或负数")
	}
	return problems
}
