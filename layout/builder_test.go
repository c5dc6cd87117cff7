package layout

import (
	"errors"
	"math"
	"path/filepath"
	"testing"
	"unicode/utf8"

	"github.com/ByLCY/jackfield/strip"
)

// stubTypesetter 是一个最小实现，仅用于测试，避免引入 renderer 造成循环依赖。
type stubTypesetter struct {
	calls []FontResource
}

func (s *stubTypesetter) MeasureText(content string, font FontResource, fontSize float64) (TextMetrics, error) {
	s.calls = append(s.calls, font)
	return TextMetrics{
		Width:   float64(utf8.RuneCountInString(content)) * fontSize * 0.5,
		Ascent:  fontSize * 0.75,
		Descent: fontSize * 0.25,
	}, nil
}

type failingTypesetter struct{}

func (failingTypesetter) MeasureText(string, FontResource, float64) (TextMetrics, error) {
	return TextMetrics{}, errors.New("boom")
}

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func newSampleStrip(t *testing.T) *strip.Strip {
	t.Helper()
	s := strip.New()
	if err := s.SetContentCellCount(3); err != nil {
		t.Fatalf("设置内容格数量失败: %v", err)
	}
	if _, err := s.SetStartCap(20, "Start"); err != nil {
		t.Fatalf("设置起始 cap 失败: %v", err)
	}
	end, err := s.SetEndCap(15, "")
	if err != nil {
		t.Fatalf("设置结束 cap 失败: %v", err)
	}
	end.SetBackgroundColor(strip.Yellow)
	cells := s.ContentCells()
	cells[0].SetText("IN 1")
	cells[1].SetText("IN 2")
	cells[1].SetFormat(strip.FormatBold)
	cells[1].SetTextColor(strip.Red)
	return s
}

// TestBuildWalksSegmentsLeftToRight 断言：格子按 start/content/end 顺序紧密排列，总宽度为 65mm。
func TestBuildWalksSegmentsLeftToRight(t *testing.T) {
	res, err := Build(newSampleStrip(t), BuildOptions{Typesetter: &stubTypesetter{}})
	if err != nil {
		t.Fatalf("布局计算失败: %v", err)
	}
	if !almostEqual(res.Width, 65) || !almostEqual(res.Height, 5) {
		t.Fatalf("尺寸错误: %gx%g", res.Width, res.Height)
	}
	wantIDs := []string{strip.StartCapID, "1", "2", "3", strip.EndCapID}
	wantX := []float64{0, 20, 30, 40, 50}
	if len(res.Cells) != len(wantIDs) {
		t.Fatalf("格子数量错误: %d", len(res.Cells))
	}
	for i, cell := range res.Cells {
		if cell.SegmentID != wantIDs[i] {
			t.Fatalf("第 %d 个格子 id=%s，期望 %s", i, cell.SegmentID, wantIDs[i])
		}
		if !almostEqual(cell.Rect.X, wantX[i]) || cell.Rect.Y != 0 || !almostEqual(cell.Rect.Height, 5) {
			t.Fatalf("第 %d 个格子位置错误: %+v", i, cell.Rect)
		}
	}
	if res.Cells[0].Kind != "start" || res.Cells[4].Kind != "end" {
		t.Fatalf("kind 错误: %s/%s", res.Cells[0].Kind, res.Cells[4].Kind)
	}
	if got := *res.Cells[4].Rect.FillColor; got != (Color{R: 255, G: 255}) {
		t.Fatalf("结束 cap 背景色错误: %+v", got)
	}
	if res.Cells[4].Text != nil || res.Cells[3].Text != nil {
		t.Fatalf("无文本的格子不应产生 TextBox")
	}
}

// TestBuildCentersText 断言：文本在格子内水平、垂直居中。
func TestBuildCentersText(t *testing.T) {
	ts := &stubTypesetter{}
	res, err := Build(newSampleStrip(t), BuildOptions{Typesetter: ts})
	if err != nil {
		t.Fatalf("布局计算失败: %v", err)
	}
	cell := res.Cells[1]
	tb := cell.Text
	if tb == nil {
		t.Fatalf("格子 1 缺少文本")
	}
	fontSize := 8 * PtToMm
	if !almostEqual(tb.FontSize, fontSize) {
		t.Fatalf("字号错误: %g", tb.FontSize)
	}
	if tb.Align != AlignCenter {
		t.Fatalf("格子文本应居中对齐, got %q", tb.Align)
	}
	center := tb.X + tb.Width/2
	if !almostEqual(center, cell.Rect.X+cell.Rect.Width/2) {
		t.Fatalf("文本未水平居中: center=%g", center)
	}
	if !almostEqual(tb.Y+tb.Height/2, cell.Rect.Height/2) {
		t.Fatalf("文本未垂直居中: y=%g h=%g", tb.Y, tb.Height)
	}
	if !almostEqual(tb.Baseline, tb.Y+fontSize*0.75) {
		t.Fatalf("基线错误: %g", tb.Baseline)
	}
	bold := res.Cells[2].Text
	if bold.Font.Style != "bold" || bold.Font.Src != "embed:Go-Bold.ttf" {
		t.Fatalf("粗体字体选择错误: %+v", bold.Font)
	}
	if bold.Color != (Color{R: 255}) {
		t.Fatalf("文本颜色错误: %+v", bold.Color)
	}
	if len(ts.calls) != 3 {
		t.Fatalf("期望测量 3 段文本，实际 %d", len(ts.calls))
	}
}

func TestBuildEmptyStrip(t *testing.T) {
	_, err := Build(strip.New(), BuildOptions{})
	if !errors.Is(err, ErrNothingToRender) {
		t.Fatalf("空标签条应返回 ErrNothingToRender，实际 %v", err)
	}
}

func TestBuildSkipsZeroWidthCells(t *testing.T) {
	s := strip.New()
	if err := s.SetContentCellCount(2); err != nil {
		t.Fatal(err)
	}
	if err := s.ContentCells()[0].SetWidth(0); err != nil {
		t.Fatal(err)
	}
	res, err := Build(s, BuildOptions{})
	if err != nil {
		t.Fatalf("布局计算失败: %v", err)
	}
	if len(res.Cells) != 1 || res.Cells[0].SegmentID != "2" || res.Cells[0].Rect.X != 0 {
		t.Fatalf("零宽格子应被跳过: %+v", res.Cells)
	}
}

func TestBuildWithoutTypesetterEstimates(t *testing.T) {
	res, err := Build(newSampleStrip(t), BuildOptions{})
	if err != nil {
		t.Fatalf("布局计算失败: %v", err)
	}
	tb := res.Cells[0].Text
	if want := 8 * PtToMm * 0.55 * 5; !almostEqual(tb.Width, want) {
		t.Fatalf("估算宽度错误: got=%g want=%g", tb.Width, want)
	}
}

func TestBuildPropagatesTypesetterError(t *testing.T) {
	if _, err := Build(newSampleStrip(t), BuildOptions{Typesetter: failingTypesetter{}}); err == nil {
		t.Fatalf("期望排版错误向上传递")
	}
}

func TestBuildPageSetupFromSettings(t *testing.T) {
	s := newSampleStrip(t)
	settings := s.Settings()
	settings.PaperSize = strip.PaperLetter
	settings.Margins = strip.PageMargins{Top: 1, Right: 2, Bottom: 3, Left: 4}
	settings.Rotation = 180
	s.SetSettings(settings)

	res, err := Build(s, BuildOptions{Meta: DocumentMeta{Title: "Patchbay A"}})
	if err != nil {
		t.Fatalf("布局计算失败: %v", err)
	}
	if res.Page.Paper != "Letter" || !almostEqual(res.Page.Width, 215.9) || res.Page.Rotation != 180 {
		t.Fatalf("页面设置错误: %+v", res.Page)
	}
	if res.Page.Margin.Left != 4 || res.Page.Margin.Bottom != 3 {
		t.Fatalf("边距错误: %+v", res.Page.Margin)
	}
	if res.Meta.Title != "Patchbay A" || res.Meta.Creator != defaultCreator {
		t.Fatalf("元信息错误: %+v", res.Meta)
	}
}

func TestResolveFont(t *testing.T) {
	f := ResolveFont("Arial", strip.FormatBoldItalic)
	if f.Src != "embed:Go-BoldItalic.ttf" || f.Style != "bold italic" || f.Family != "Go-BoldItalic" {
		t.Fatalf("内置字体解析错误: %+v", f)
	}
	f = ResolveFont("fonts/DejaVuSans.TTF", strip.FormatNormal)
	if f.Src != "fonts/DejaVuSans.TTF" || f.Style != "regular" {
		t.Fatalf("字体文件解析错误: %+v", f)
	}
}

func TestWriteDebugJSON(t *testing.T) {
	res, err := Build(newSampleStrip(t), BuildOptions{})
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "layout.json")
	if err := WriteDebugJSON(res, path); err != nil {
		t.Fatalf("写出调试 JSON 失败: %v", err)
	}
	if err := WriteDebugJSON(nil, path); !errors.Is(err, ErrNothingToRender) {
		t.Fatalf("nil 结果应返回 ErrNothingToRender，实际 %v", err)
	}
}
