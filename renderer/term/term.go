// Package term 在终端里预览标签条：每个字符格是一个设备单位，颜色由 lipgloss 输出。
package term

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ByLCY/jackfield/layout"
	"github.com/ByLCY/jackfield/renderer"
)

// CellAspect 是终端字符格的高宽比。
const CellAspect = 2.0

// Preview 是适配终端视口的交互预览渲染器。
type Preview struct {
	Columns int
	Rows    int
}

var _ renderer.Renderer = (*Preview)(nil)

// New 返回一个按 columns x rows 视口适配的预览渲染器。
func New(columns, rows int) *Preview {
	return &Preview{Columns: columns, Rows: rows}
}

// Scale 返回每 mm 对应的终端列数。
func (p *Preview) Scale(res *layout.Result) float64 {
	return renderer.FitScale(res, float64(p.Columns), float64(p.Rows)*CellAspect)
}

// Grid 把布局投影到字符网格上。
func (p *Preview) Grid(res *layout.Result) (*Grid, error) {
	if p.Columns <= 0 || p.Rows <= 0 {
		return nil, fmt.Errorf("预览视口无效: %dx%d", p.Columns, p.Rows)
	}
	scale := p.Scale(res)
	if scale <= 0 {
		return nil, layout.ErrNothingToRender
	}
	w, h := renderer.PixelSize(res, scale)
	g := newGrid(w, int(math.Ceil(float64(h)/CellAspect)))
	if err := renderer.Project(res, renderer.Viewport{Scale: scale}, g); err != nil {
		return nil, err
	}
	return g, nil
}

// Render 返回带 ANSI 颜色的多行文本。
func (p *Preview) Render(res *layout.Result) ([]byte, error) {
	g, err := p.Grid(res)
	if err != nil {
		return nil, err
	}
	return []byte(g.View()), nil
}

type glyph struct {
	r      rune
	fg, bg layout.Color
}

// Grid 是字符网格，同时实现 renderer.Sink。纵向坐标按 CellAspect 压缩。
type Grid struct {
	width, height int
	cells         [][]glyph
	lastX, lastW  int // 最近一次描边的格子，用于裁剪文本
}

var _ renderer.Sink = (*Grid)(nil)

func newGrid(w, h int) *Grid {
	cells := make([][]glyph, h)
	for i := range cells {
		row := make([]glyph, w)
		for j := range row {
			row[j] = glyph{r: ' ', bg: layout.Color{R: 255, G: 255, B: 255}}
		}
		cells[i] = row
	}
	return &Grid{width: w, height: h, cells: cells}
}

// Size 返回网格的列数与行数。
func (g *Grid) Size() (int, int) { return g.width, g.height }

func (g *Grid) span(x, y, w, h float64) (c0, c1, r0, r1 int) {
	c0 = clamp(int(math.Round(x)), 0, g.width)
	c1 = clamp(int(math.Round(x+w)), 0, g.width)
	r0 = clamp(int(math.Round(y/CellAspect)), 0, g.height)
	r1 = clamp(int(math.Round((y+h)/CellAspect)), 0, g.height)
	if r1 == r0 && r0 < g.height {
		r1 = r0 + 1
	}
	return
}

func (g *Grid) FillRect(x, y, w, h float64, fill layout.Color) {
	c0, c1, r0, r1 := g.span(x, y, w, h)
	for r := r0; r < r1; r++ {
		for c := c0; c < c1; c++ {
			g.cells[r][c] = glyph{r: ' ', bg: fill}
		}
	}
}

// StrokeRect 只画左右两条竖线；字符格太粗，横线会吃掉整行。
func (g *Grid) StrokeRect(x, y, w, h, _ float64, stroke layout.Color) {
	c0, c1, r0, r1 := g.span(x, y, w, h)
	g.lastX, g.lastW = c0, c1-c0
	if c1 <= c0 {
		return
	}
	for r := r0; r < r1; r++ {
		g.cells[r][c0].r, g.cells[r][c0].fg = '│', stroke
		if c1-1 > c0 {
			g.cells[r][c1-1].r, g.cells[r][c1-1].fg = '│', stroke
		}
	}
}

// DrawText 以字符数居中，超出格子内侧的部分被截掉。
func (g *Grid) DrawText(tb layout.TextBox) error {
	if g.height == 0 {
		return nil
	}
	row := clamp(int(math.Round((tb.Y+tb.Height/2)/CellAspect-0.5)), 0, g.height-1)
	inner0, inner1 := g.lastX+1, g.lastX+g.lastW-1
	if inner1 <= inner0 {
		return nil
	}
	runes := []rune(tb.Content)
	if len(runes) > inner1-inner0 {
		runes = runes[:inner1-inner0]
	}
	center := tb.X + tb.Width/2
	col := clamp(int(math.Round(center-float64(len(runes))/2)), inner0, inner1-len(runes))
	for i, r := range runes {
		g.cells[row][col+i].r = r
		g.cells[row][col+i].fg = tb.Color
	}
	return nil
}

// String 返回不带颜色的纯文本，便于测试与日志。
func (g *Grid) String() string {
	var b strings.Builder
	for i, row := range g.cells {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, gl := range row {
			b.WriteRune(gl.r)
		}
	}
	return b.String()
}

// View 按相同颜色分段，用 lipgloss 渲染每一行。
func (g *Grid) View() string {
	lines := make([]string, 0, g.height)
	for _, row := range g.cells {
		var b strings.Builder
		start := 0
		for i := 1; i <= len(row); i++ {
			if i < len(row) && row[i].fg == row[start].fg && row[i].bg == row[start].bg {
				continue
			}
			var run strings.Builder
			for _, gl := range row[start:i] {
				run.WriteRune(gl.r)
			}
			b.WriteString(styleFor(row[start]).Render(run.String()))
			start = i
		}
		lines = append(lines, b.String())
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func styleFor(gl glyph) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(hex(gl.fg))).
		Background(lipgloss.Color(hex(gl.bg)))
}

func hex(c layout.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}
