package layout

import (
	"fmt"
	"strings"
)

// 纸张尺寸（mm，纵向）。
var pagePresets = map[string][2]float64{
	"A0":      {841, 1189},
	"A1":      {594, 841},
	"A2":      {420, 594},
	"A3":      {297, 420},
	"A4":      {210, 297},
	"LETTER":  {215.9, 279.4},
	"LEGAL":   {215.9, 355.6},
	"TABLOID": {279.4, 431.8},
}

// PaperDimensions 返回纸张的宽、高（mm），名称不区分大小写。
func PaperDimensions(name string) (float64, float64, error) {
	base, ok := pagePresets[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return 0, 0, fmt.Errorf("暂不支持的纸张尺寸：%s", name)
	}
	return base[0], base[1], nil
}

// Placement 描述标签条在页面上的摆放。CenterX/CenterY 是页面中心，
// 标签条绕自身中心旋转 Rotation 度后与之对齐。
type Placement struct {
	PageWidth  float64
	PageHeight float64
	Rotation   int
	CenterX    float64
	CenterY    float64
	Fits       bool // 旋转后的外框是否落在可打印区域内
}

// NormalizeRotation 把角度归一到 0/90/180/270，负数按 360 取模；非 90 的倍数报错。
func NormalizeRotation(deg int) (int, error) {
	if deg%90 != 0 {
		return 0, fmt.Errorf("旋转角度必须是 90 的倍数: %d", deg)
	}
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return deg, nil
}

// Printable 返回页面去掉边距后的可打印宽高。
func (p PageSetup) Printable() (float64, float64) {
	return p.Width - p.Margin.Left - p.Margin.Right, p.Height - p.Margin.Top - p.Margin.Bottom
}

func fits(w, h, availW, availH float64) bool {
	return w <= availW && h <= availH
}

// ResolveRotation 返回实际使用的角度：非 0 的请求原样（归一化后）使用；
// 请求为 0 时，只有不旋转放不下而旋转 90 度放得下才自动改为 90。
func ResolveRotation(requested int, stripW, stripH, availW, availH float64) (int, error) {
	rot, err := NormalizeRotation(requested)
	if err != nil {
		return 0, err
	}
	if rot != 0 {
		return rot, nil
	}
	if !fits(stripW, stripH, availW, availH) && fits(stripH, stripW, availW, availH) {
		return 90, nil
	}
	return 0, nil
}

// RequiredRotation 给出建议角度（0 或 90）。两种方向都放不下时，
// 若标签条宽大于高且超出可打印宽度，仍建议 90 度以便查看。
func RequiredRotation(stripW, stripH, availW, availH float64) int {
	if fits(stripW, stripH, availW, availH) {
		return 0
	}
	if fits(stripH, stripW, availW, availH) {
		return 90
	}
	if stripW > stripH && stripW > availW {
		return 90
	}
	return 0
}

// Place 计算布局结果在其页面上的居中位置与旋转角度。
func Place(res *Result) (Placement, error) {
	if res == nil || res.Width <= 0 {
		return Placement{}, ErrNothingToRender
	}
	page := res.Page
	availW, availH := page.Printable()
	rot, err := ResolveRotation(page.Rotation, res.Width, res.Height, availW, availH)
	if err != nil {
		return Placement{}, err
	}
	w, h := res.Width, res.Height
	if rot == 90 || rot == 270 {
		w, h = h, w
	}
	return Placement{
		PageWidth:  page.Width,
		PageHeight: page.Height,
		Rotation:   rot,
		CenterX:    page.Width / 2,
		CenterY:    page.Height / 2,
		Fits:       fits(w, h, availW, availH),
	}, nil
}
