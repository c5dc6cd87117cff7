package dsl

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/ByLCY/jackfield/binding"
	"github.com/ByLCY/jackfield/layout"
	"github.com/ByLCY/jackfield/strip"
)

// BuildError 定位到出错的语句。
type BuildError struct {
	Pos       lexer.Position
	Statement string
	Err       error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Pos, e.Statement, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// ErrMissingValue 表示模板里的 ${...} 无法解析。
var ErrMissingValue = errors.New("模板变量无法解析")

// Load 解析并编译一个 .strip 文件。
func Load(name string, r io.Reader, data any) (*strip.Strip, *File, error) {
	file, err := Parse(name, r)
	if err != nil {
		return nil, nil, err
	}
	s, err := Build(file, data)
	if err != nil {
		return nil, file, err
	}
	return s, file, nil
}

// Build 按顺序执行语句得到 Strip。新格子在创建时拷贝当时的默认颜色，
// 因此 background / text-color 只影响其后创建的格子。
func Build(file *File, data any) (*strip.Strip, error) {
	if file == nil || file.Block == nil {
		return nil, errors.New("dsl: 文件为空")
	}
	b := &builder{strip: strip.New(), data: data}
	for _, st := range file.Block.Statements {
		if err := b.statement(st, false); err != nil {
			return nil, err
		}
	}
	return b.strip, nil
}

type builder struct {
	strip *strip.Strip
	data  any
}

func (b *builder) statement(st *Statement, inSettings bool) error {
	args := significant(st.Args)
	var err error
	switch st.Name {
	case "settings":
		if inSettings || st.Block == nil {
			err = errors.New("settings 需要一个 { } 块且不能嵌套")
			break
		}
		for _, inner := range st.Block.Statements {
			if e := b.statement(inner, true); e != nil {
				return e
			}
		}
		return nil
	case "paper":
		err = b.paper(args)
	case "margin":
		err = b.margin(args)
	case "font":
		err = b.font(args)
	case "text-color":
		err = b.defaultColor(args, false)
	case "background":
		err = b.defaultColor(args, true)
	case "rotate":
		err = b.rotate(args)
	default:
		if inSettings {
			err = fmt.Errorf("settings 块中不支持该语句")
			break
		}
		switch st.Name {
		case "height":
			err = b.height(args)
		case "cell-width":
			err = b.cellWidth(args)
		case "cells":
			err = b.cells(args)
		case "start":
			err = b.cap(args, true)
		case "end":
			err = b.cap(args, false)
		case "cell":
			err = b.cell(args)
		default:
			err = errors.New("未知语句")
		}
	}
	if err == nil && st.Block != nil && st.Name != "settings" {
		err = errors.New("该语句不接受 { } 块")
	}
	if err != nil {
		return &BuildError{Pos: st.Pos, Statement: st.Name, Err: err}
	}
	return nil
}

// significant 去掉分隔用的 ':' 与 ','。
func significant(args []*Arg) []*Arg {
	out := make([]*Arg, 0, len(args))
	for _, a := range args {
		if a.Kind == ArgSeparator {
			continue
		}
		out = append(out, a)
	}
	return out
}

func (b *builder) height(args []*Arg) error {
	if len(args) != 1 {
		return errors.New("用法: height <长度>")
	}
	mm, err := lengthMM(args[0])
	if err != nil {
		return err
	}
	b.strip.SetHeight(mm)
	return nil
}

func (b *builder) cellWidth(args []*Arg) error {
	if len(args) != 1 {
		return errors.New("用法: cell-width <长度>")
	}
	mm, err := lengthMM(args[0])
	if err != nil {
		return err
	}
	return b.strip.SetContentCellWidth(mm)
}

func (b *builder) cells(args []*Arg) error {
	if len(args) != 1 && len(args) != 3 {
		return errors.New(`用法: cells <数量> [text "模板"]`)
	}
	n, err := integer(args[0])
	if err != nil {
		return err
	}
	if err := b.strip.SetContentCellCount(n); err != nil {
		return err
	}
	if len(args) == 1 {
		return nil
	}
	if args[1].Kind != ArgIdent || args[1].Value != "text" || args[2].Kind != ArgString {
		return errors.New(`用法: cells <数量> [text "模板"]`)
	}
	tpl := args[2].Value
	for i, c := range b.strip.ContentCells() {
		scope := b.scope().With("n", i+1).With("id", c.ID())
		text, err := expand(tpl, scope)
		if err != nil {
			return err
		}
		c.SetText(text)
	}
	return nil
}

// style 收集格子语句中的可选修饰。
type style struct {
	text       *string
	format     *strip.TextFormat
	color      *strip.Color
	background *strip.Color
	width      *float64
}

func (b *builder) parseStyle(args []*Arg, allowWidth bool) (style, error) {
	var st style
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch a.Kind {
		case ArgString:
			text, err := expand(a.Value, b.scope())
			if err != nil {
				return st, err
			}
			st.text = &text
		case ArgIdent:
			key := strings.ToLower(a.Value)
			switch key {
			case "normal", "bold", "italic", "bold-italic", "bold_italic":
				f := strip.ParseTextFormat(a.Value)
				st.format = &f
			case "color", "background":
				if i+1 >= len(args) {
					return st, fmt.Errorf("%s 缺少颜色值", key)
				}
				c, err := color(args[i+1])
				if err != nil {
					return st, err
				}
				if key == "color" {
					st.color = &c
				} else {
					st.background = &c
				}
				i++
			case "width":
				if !allowWidth {
					return st, errors.New("cap 的宽度写在第一个参数")
				}
				if i+1 >= len(args) {
					return st, errors.New("width 缺少长度")
				}
				mm, err := lengthMM(args[i+1])
				if err != nil {
					return st, err
				}
				st.width = &mm
				i++
			default:
				return st, fmt.Errorf("未知参数 %q", a.Value)
			}
		default:
			return st, fmt.Errorf("无法识别的参数 %s", a.Raw)
		}
	}
	return st, nil
}

func (st style) apply(seg strip.Segment) error {
	if st.text != nil {
		seg.SetText(*st.text)
	}
	if st.format != nil {
		seg.SetFormat(*st.format)
	}
	if st.color != nil {
		seg.SetTextColor(*st.color)
	}
	if st.background != nil {
		seg.SetBackgroundColor(*st.background)
	}
	if st.width != nil {
		return seg.SetWidth(*st.width)
	}
	return nil
}

// cap 处理 start/end；宽度为 0 时移除。
func (b *builder) cap(args []*Arg, start bool) error {
	if len(args) == 0 {
		return errors.New(`用法: start|end <宽度> ["文本"] [格式] [color #rrggbb] [background #rrggbb]`)
	}
	width, err := lengthMM(args[0])
	if err != nil {
		return err
	}
	st, err := b.parseStyle(args[1:], false)
	if err != nil {
		return err
	}
	text := ""
	if st.text != nil {
		text = *st.text
	}
	var seg strip.Segment
	if start {
		c, err := b.strip.SetStartCap(width, text)
		if err != nil || c == nil {
			return err
		}
		seg = c
	} else {
		c, err := b.strip.SetEndCap(width, text)
		if err != nil || c == nil {
			return err
		}
		seg = c
	}
	return st.apply(seg)
}

func (b *builder) cell(args []*Arg) error {
	if len(args) == 0 {
		return errors.New(`用法: cell <id> ["文本"] [格式] [color #rrggbb] [background #rrggbb] [width <长度>]`)
	}
	id := args[0].Value
	seg, ok := b.strip.FindSegment(id)
	if !ok {
		return fmt.Errorf("找不到格子 %q", id)
	}
	st, err := b.parseStyle(args[1:], true)
	if err != nil {
		return err
	}
	return st.apply(seg)
}

func (b *builder) updateSettings(fn func(*strip.Settings) error) error {
	s := b.strip.Settings()
	if err := fn(&s); err != nil {
		return err
	}
	b.strip.SetSettings(s)
	return nil
}

func (b *builder) paper(args []*Arg) error {
	if len(args) != 1 {
		return errors.New("用法: paper <A4|A3|Letter|...>")
	}
	p, err := strip.ParsePaperSize(args[0].Value)
	if err != nil {
		return err
	}
	return b.updateSettings(func(s *strip.Settings) error {
		s.PaperSize = p
		return nil
	})
}

// margin 与 CSS 的简写顺序一致：上 右 下 左。
func (b *builder) margin(args []*Arg) error {
	if len(args) == 0 || len(args) > 4 {
		return errors.New("用法: margin <上> [右] [下] [左]")
	}
	vals := make([]float64, len(args))
	for i, a := range args {
		mm, err := lengthMM(a)
		if err != nil {
			return err
		}
		if mm < 0 {
			return errors.New("边距不能为负数")
		}
		vals[i] = mm
	}
	var m strip.PageMargins
	switch len(vals) {
	case 1:
		m = strip.PageMargins{Top: vals[0], Right: vals[0], Bottom: vals[0], Left: vals[0]}
	case 2:
		m = strip.PageMargins{Top: vals[0], Right: vals[1], Bottom: vals[0], Left: vals[1]}
	case 3:
		m = strip.PageMargins{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[1]}
	default:
		m = strip.PageMargins{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[3]}
	}
	return b.updateSettings(func(s *strip.Settings) error {
		s.Margins = m
		return nil
	})
}

// font "名称" [size] <字号>，裸数字按 pt 解释。
func (b *builder) font(args []*Arg) error {
	if len(args) == 0 || len(args) > 3 {
		return errors.New(`用法: font "名称" [size <字号>]`)
	}
	name := args[0].Value
	size := 0.0
	rest := args[1:]
	if len(rest) > 0 && rest[0].Kind == ArgIdent && rest[0].Value == "size" {
		rest = rest[1:]
	}
	switch len(rest) {
	case 0:
	case 1:
		l, ok := layout.ParseRawLengthStr(rest[0].Value)
		if !ok || rest[0].Kind != ArgNumber {
			return fmt.Errorf("无效字号 %s", rest[0].Raw)
		}
		if l.Unit == layout.UnitNone {
			l.Unit = layout.UnitPT
		}
		size = l.ToPT()
		if size <= 0 {
			return errors.New("字号必须大于 0")
		}
	default:
		return errors.New(`用法: font "名称" [size <字号>]`)
	}
	return b.updateSettings(func(s *strip.Settings) error {
		s.FontName = name
		if size > 0 {
			s.FontSize = size
		}
		return nil
	})
}

func (b *builder) defaultColor(args []*Arg, background bool) error {
	if len(args) != 1 {
		return errors.New("用法: text-color|background #rrggbb")
	}
	c, err := color(args[0])
	if err != nil {
		return err
	}
	return b.updateSettings(func(s *strip.Settings) error {
		if background {
			s.BackgroundColor = c
		} else {
			s.TextColor = c
		}
		return nil
	})
}

func (b *builder) rotate(args []*Arg) error {
	if len(args) != 1 {
		return errors.New("用法: rotate <0|90|180|270>")
	}
	deg, err := integer(args[0])
	if err != nil {
		return err
	}
	rot, err := layout.NormalizeRotation(deg)
	if err != nil {
		return err
	}
	return b.updateSettings(func(s *strip.Settings) error {
		s.Rotation = rot
		return nil
	})
}

func (b *builder) scope() binding.Scope {
	return binding.Scope{"data": b.data, "count": b.strip.ContentCellCount()}
}

func expand(tpl string, scope binding.Scope) (string, error) {
	if missing := binding.Missing(tpl, scope); len(missing) > 0 {
		return "", fmt.Errorf("%w: %s", ErrMissingValue, strings.Join(missing, ", "))
	}
	return binding.Interpolate(tpl, scope), nil
}

func lengthMM(l *Arg) (float64, error) {
	if l.Kind != ArgNumber {
		return 0, fmt.Errorf("需要长度，得到 %s", l.Raw)
	}
	v, ok := layout.ParseRawLengthStr(l.Value)
	if !ok {
		return 0, fmt.Errorf("无效长度 %s", l.Raw)
	}
	return v.ToMM(), nil
}

func integer(l *Arg) (int, error) {
	if l.Kind != ArgNumber {
		return 0, fmt.Errorf("需要整数，得到 %s", l.Raw)
	}
	f, err := strconv.ParseFloat(l.Value, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("需要整数，得到 %s", l.Raw)
	}
	if math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("整数超出范围: %s", l.Raw)
	}
	return int(f), nil
}

func color(l *Arg) (strip.Color, error) {
	if l.Kind != ArgColor && l.Kind != ArgString {
		return strip.Color{}, fmt.Errorf("需要颜色 #rrggbb，得到 %s", l.Raw)
	}
	return strip.ParseHex(l.Value)
}
