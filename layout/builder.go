package layout

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ByLCY/jackfield/fonts"
	"github.com/ByLCY/jackfield/strip"
)

// ErrNothingToRender 表示标签条总宽度为 0，没有任何可绘制的内容。
var ErrNothingToRender = errors.New("标签条为空，没有可渲染的内容")

const (
	defaultFontSizePt = 8.0
	defaultCreator    = "Jackfield Labeler"
)

// Build 把标签条转换为以 mm 为单位的布局结果：从左到右依次排列每个 segment，
// 文本在格子内水平、垂直居中。三种输出（预览、PDF、PNG）都只消费该结果。
func Build(s *strip.Strip, opts BuildOptions) (*Result, error) {
	if s == nil {
		return nil, errors.New("标签条为空指针")
	}
	width, height := s.Dimensions()
	if width <= 0 {
		return nil, ErrNothingToRender
	}

	settings := s.Settings()
	page, err := pageSetup(settings)
	if err != nil {
		return nil, err
	}

	fontSizePt := settings.FontSize
	if fontSizePt <= 0 {
		fontSizePt = defaultFontSizePt
	}
	fontSize := fontSizePt * PtToMm

	res := &Result{
		Width:  width,
		Height: height,
		Page:   page,
		Meta:   opts.Meta,
	}
	if res.Meta.Creator == "" {
		res.Meta.Creator = defaultCreator
	}
	if res.Meta.Title == "" {
		res.Meta.Title = "Jackfield strip"
	}

	for _, span := range s.Spans() {
		if span.Width <= 0 {
			continue
		}
		seg := span.Segment
		bg := colorFromStrip(seg.BackgroundColor())
		cell := Cell{
			SegmentID: seg.ID(),
			Kind:      seg.Kind().String(),
			Rect: Rect{
				X:           span.Offset,
				Y:           0,
				Width:       span.Width,
				Height:      height,
				StrokeColor: Color{},
				FillColor:   &bg,
			},
		}
		if text := seg.Text(); text != "" {
			font := ResolveFont(settings.FontName, seg.Format())
			box, err := centerText(text, font, fontSize, span.Offset, span.Width, height, opts.Typesetter)
			if err != nil {
				return nil, fmt.Errorf("排版格子 %s 的文本失败: %w", seg.ID(), err)
			}
			box.Color = colorFromStrip(seg.TextColor())
			cell.Text = box
		}
		res.Cells = append(res.Cells, cell)
	}
	return res, nil
}

func centerText(content string, font FontResource, fontSize, x, w, h float64, ts Typesetter) (*TextBox, error) {
	m, err := measureText(content, font, fontSize, ts)
	if err != nil {
		return nil, err
	}
	glyphHeight := m.Ascent + m.Descent
	top := (h - glyphHeight) / 2
	return &TextBox{
		Content:  content,
		X:        x + (w-m.Width)/2,
		Y:        top,
		Width:    m.Width,
		Height:   glyphHeight,
		Baseline: top + m.Ascent,
		Font:     font,
		FontSize: fontSize,
		Align:    AlignCenter,
	}, nil
}

func measureText(content string, font FontResource, fontSize float64, ts Typesetter) (TextMetrics, error) {
	if ts == nil {
		return TextMetrics{
			Width:   estimateTextWidth(content, fontSize),
			Ascent:  fontSize * 0.8,
			Descent: fontSize * 0.2,
		}, nil
	}
	return ts.MeasureText(content, font, fontSize)
}

// ResolveFont 根据字体名与文本格式选择字体资源。名称以 .ttf/.otf 结尾时视为字体文件路径，
// 否则使用内置字体族中对应粗细/斜体的字形。
func ResolveFont(name string, format strip.TextFormat) FontResource {
	style := fontStyle(format)
	ext := strings.ToLower(filepath.Ext(name))
	if ext == ".ttf" || ext == ".otf" {
		return FontResource{Name: name, Src: name, Style: style, Family: name}
	}
	variant := fonts.Variant(format.IsBold(), format.IsItalic())
	if name == "" {
		name = "Go"
	}
	return FontResource{
		Name:   name,
		Src:    "embed:" + variant,
		Style:  style,
		Family: strings.TrimSuffix(variant, filepath.Ext(variant)),
	}
}

func fontStyle(format strip.TextFormat) string {
	switch format {
	case strip.FormatBold:
		return "bold"
	case strip.FormatItalic:
		return "italic"
	case strip.FormatBoldItalic:
		return "bold italic"
	default:
		return "regular"
	}
}

func colorFromStrip(c strip.Color) Color {
	return Color{R: int(c.R), G: int(c.G), B: int(c.B)}
}

func pageSetup(settings strip.Settings) (PageSetup, error) {
	w, h, err := PaperDimensions(string(settings.PaperSize))
	if err != nil {
		return PageSetup{}, err
	}
	m := settings.Margins
	return PageSetup{
		Paper:    string(settings.PaperSize),
		Width:    w,
		Height:   h,
		Margin:   Margin{Top: m.Top, Right: m.Right, Bottom: m.Bottom, Left: m.Left},
		Rotation: settings.Rotation,
	}, nil
}

// estimateTextWidth 在没有排版后端时按字符数粗略估算宽度（mm）。
func estimateTextWidth(content string, fontSize float64) float64 {
	if fontSize <= 0 {
		fontSize = defaultFontSizePt * PtToMm
	}
	return fontSize * 0.55 * float64(utf8.RuneCountInString(content))
}
