package strip

import (
	"fmt"
	"strings"
)

// PaperSize 是打印输出的纸张规格。
type PaperSize string

const (
	PaperA4      PaperSize = "A4"
	PaperA3      PaperSize = "A3"
	PaperA2      PaperSize = "A2"
	PaperA1      PaperSize = "A1"
	PaperA0      PaperSize = "A0"
	PaperLetter  PaperSize = "Letter"
	PaperLegal   PaperSize = "Legal"
	PaperTabloid PaperSize = "Tabloid"
)

// PaperSizes 按界面展示顺序列出所有支持的纸张。
var PaperSizes = []PaperSize{PaperA4, PaperA3, PaperA2, PaperA1, PaperA0, PaperLetter, PaperLegal, PaperTabloid}

// ParsePaperSize 不区分大小写地解析纸张名。
func ParsePaperSize(name string) (PaperSize, error) {
	for _, p := range PaperSizes {
		if strings.EqualFold(string(p), strings.TrimSpace(name)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("暂不支持的纸张尺寸：%s", name)
}

// PageMargins 以毫米为单位。
type PageMargins struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// Settings 是输出与默认样式设置。新建 segment 时拷贝其中的默认颜色，
// 之后的修改不会回溯到已存在的格子。
type Settings struct {
	PaperSize       PaperSize
	Margins         PageMargins
	FontName        string
	FontSize        float64 // pt
	TextColor       Color
	BackgroundColor Color
	Rotation        int // 度，0 表示在放不下时自动选择
}

// DefaultSettings 返回 A4、10mm 边距、Arial 8pt、黑字白底。
func DefaultSettings() Settings {
	return Settings{
		PaperSize:       PaperA4,
		Margins:         PageMargins{Top: 10, Right: 10, Bottom: 10, Left: 10},
		FontName:        "Arial",
		FontSize:        8,
		TextColor:       Black,
		BackgroundColor: White,
	}
}

// Defaults 返回当前默认颜色的快照。
func (s Settings) Defaults() Defaults {
	return Defaults{TextColor: s.TextColor, BackgroundColor: s.BackgroundColor}
}
