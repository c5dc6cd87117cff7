package canvasrenderer

import (
	"bytes"
	"errors"
	"image/png"
	"math"
	"testing"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/jackfield/layout"
	"github.com/ByLCY/jackfield/renderer"
	"github.com/ByLCY/jackfield/strip"
)

func buildSample(t *testing.T, r *Renderer) *layout.Result {
	t.Helper()
	s := strip.New()
	if err := s.SetContentCellCount(3); err != nil {
		t.Fatalf("设置格子数量失败: %v", err)
	}
	if _, err := s.SetStartCap(20, "Inputs"); err != nil {
		t.Fatalf("设置起始端盖失败: %v", err)
	}
	end, err := s.SetEndCap(15, "")
	if err != nil {
		t.Fatalf("设置结束端盖失败: %v", err)
	}
	end.SetBackgroundColor(strip.Yellow)
	cells := s.ContentCells()
	cells[0].SetText("IN 1")
	cells[1].SetText("IN 2")
	cells[1].SetFormat(strip.FormatBoldItalic)

	res, err := layout.Build(s, layout.BuildOptions{Typesetter: r})
	if err != nil {
		t.Fatalf("布局计算失败: %v", err)
	}
	return res
}

func TestMeasureTextUsesFontMetrics(t *testing.T) {
	r := NewRenderer(".")
	font := layout.ResolveFont("Arial", strip.FormatNormal)
	fontSizeMM := 12 * layout.PtToMm

	short, err := r.MeasureText("I", font, fontSizeMM)
	if err != nil {
		t.Fatalf("测量失败: %v", err)
	}
	long, err := r.MeasureText("WWWW", font, fontSizeMM)
	if err != nil {
		t.Fatalf("测量失败: %v", err)
	}
	if long.Width <= short.Width {
		t.Fatalf("宽度应随文本增长: %g <= %g", long.Width, short.Width)
	}
	if short.Ascent <= 0 || short.Descent < 0 {
		t.Fatalf("字形度量异常: %+v", short)
	}
	// 字形框不应超过字号太多
	if short.Ascent+short.Descent >= fontSizeMM*1.5 {
		t.Fatalf("字形框过高: %g", short.Ascent+short.Descent)
	}

	bold, err := r.MeasureText("WWWW", layout.ResolveFont("Arial", strip.FormatBold), fontSizeMM)
	if err != nil {
		t.Fatalf("粗体测量失败: %v", err)
	}
	if bold.Width <= 0 {
		t.Fatalf("粗体宽度应大于 0: %g", bold.Width)
	}
}

func TestMissingFontFileFallsBack(t *testing.T) {
	r := NewRenderer(t.TempDir())
	font := layout.ResolveFont("missing.ttf", strip.FormatItalic)
	m, err := r.MeasureText("abc", font, 3)
	if err != nil {
		t.Fatalf("缺失字体应回退到内置字体: %v", err)
	}
	if m.Width <= 0 {
		t.Fatalf("回退字体宽度应大于 0: %g", m.Width)
	}
}

func TestRenderPDF(t *testing.T) {
	r := NewRenderer(".")
	res := buildSample(t, r)
	res.Meta.Title = "Patchbay"

	data, err := r.Render(res)
	if err != nil {
		t.Fatalf("渲染失败: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("输出不是 PDF")
	}

	// 强制旋转也能正常输出
	res.Page.Rotation = 270
	if _, err := r.Render(res); err != nil {
		t.Fatalf("旋转 270 渲染失败: %v", err)
	}

	res.Page.Rotation = 45
	if _, err := r.Render(res); err == nil {
		t.Fatalf("旋转 45 应当报错")
	}
}

func TestRenderPNG(t *testing.T) {
	r := NewRenderer(".")
	res := buildSample(t, r)

	p := NewPNGRenderer(r, 0)
	if p.DPI != float64(DefaultDPI) {
		t.Fatalf("默认 DPI 错误: %g", p.DPI)
	}

	data, err := p.Render(res)
	if err != nil {
		t.Fatalf("渲染失败: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("PNG 解码失败: %v", err)
	}

	scale := layout.DotsPerMM(p.DPI)
	wantW, wantH := renderer.PixelSize(res, scale)
	b := img.Bounds()
	if math.Abs(float64(wantW-b.Dx())) > 1 || math.Abs(float64(wantH-b.Dy())) > 1 {
		t.Fatalf("图片尺寸 %dx%d, 期望 %dx%d", b.Dx(), b.Dy(), wantW, wantH)
	}

	// 结束 cap 中心为黄色，内容格 3 中心为白色
	endX := int((50 + 7.5) * scale)
	midY := int(2.5 * scale)
	if got := rgb(img.At(endX, midY).RGBA()); got != [3]uint32{0xffff, 0xffff, 0} {
		t.Fatalf("结束端盖应为黄色, got %v", got)
	}
	if got := rgb(img.At(int(45*scale), midY).RGBA()); got != [3]uint32{0xffff, 0xffff, 0xffff} {
		t.Fatalf("内容格 3 应为白色, got %v", got)
	}
}

func rgb(r, g, b, _ uint32) [3]uint32 { return [3]uint32{r, g, b} }

func TestRenderNothing(t *testing.T) {
	r := NewRenderer(".")
	if _, err := r.Render(&layout.Result{}); !errors.Is(err, layout.ErrNothingToRender) {
		t.Fatalf("PDF: 期望 ErrNothingToRender, got %v", err)
	}
	if _, err := NewPNGRenderer(r, 96).Render(nil); !errors.Is(err, layout.ErrNothingToRender) {
		t.Fatalf("PNG: 期望 ErrNothingToRender, got %v", err)
	}
}

func TestTextAnchor(t *testing.T) {
	tb := layout.TextBox{X: 10, Width: 4}
	cases := []struct {
		align string
		x     float64
		want  canvas.TextAlign
	}{
		{"", 10, canvas.Left},
		{layout.AlignLeft, 10, canvas.Left},
		{layout.AlignCenter, 12, canvas.Center},
		{layout.AlignRight, 14, canvas.Right},
	}
	for _, c := range cases {
		tb.Align = c.align
		x, align := textAnchor(tb)
		if x != c.x || align != c.want {
			t.Fatalf("align %q: got (%g, %v), want (%g, %v)", c.align, x, align, c.x, c.want)
		}
	}
}

func TestParseFontStyle(t *testing.T) {
	cases := map[string]canvas.FontStyle{
		"":            canvas.FontRegular,
		"bold":        canvas.FontBold,
		"italic":      canvas.FontRegular | canvas.FontItalic,
		"Bold Italic": canvas.FontBold | canvas.FontItalic,
	}
	for in, want := range cases {
		if got := parseFontStyle(in); got != want {
			t.Fatalf("parseFontStyle(%q) = %v, want %v", in, got, want)
		}
	}
}
