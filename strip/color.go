package strip

import (
	"fmt"
	"strconv"
	"strings"
)

// Color 采用 0-255 的 RGB 数值，是不可变的值类型。
type Color struct {
	R uint8
	G uint8
	B uint8
}

// 常用颜色。
var (
	White  = Color{R: 0xff, G: 0xff, B: 0xff}
	Black  = Color{}
	Red    = Color{R: 0xff}
	Green  = Color{G: 0xff}
	Blue   = Color{B: 0xff}
	Yellow = Color{R: 0xff, G: 0xff}
	Orange = Color{R: 0xff, G: 0xa5}
	Purple = Color{R: 0x80, B: 0x80}
)

// RGB 构造颜色。
func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b} }

// ParseHex 解析 "#rrggbb" 或 "rrggbb"（大小写均可）。
func ParseHex(value string) (Color, error) {
	hex := strings.TrimPrefix(value, "#")
	if len(hex) != 6 {
		return Color{}, &FormatError{Value: value}
	}
	var ch [3]uint8
	for i := range ch {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return Color{}, &FormatError{Value: value}
		}
		ch[i] = uint8(v)
	}
	return Color{R: ch[0], G: ch[1], B: ch[2]}, nil
}

// Hex 返回小写的 #rrggbb。
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RGB 返回三个通道。
func (c Color) RGB() (r, g, b uint8) { return c.R, c.G, c.B }

func (c Color) String() string { return c.Hex() }
