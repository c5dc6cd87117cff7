package strip

import "strings"

// TextFormat 是封闭枚举：Normal/Bold/Italic/BoldItalic。
type TextFormat int

const (
	FormatNormal TextFormat = iota
	FormatBold
	FormatItalic
	FormatBoldItalic
)

var formatNames = [...]string{
	FormatNormal:     "NORMAL",
	FormatBold:       "BOLD",
	FormatItalic:     "ITALIC",
	FormatBoldItalic: "BOLD_ITALIC",
}

// Name 返回持久化使用的枚举名（NORMAL|BOLD|ITALIC|BOLD_ITALIC）。
func (f TextFormat) Name() string {
	if f < FormatNormal || f > FormatBoldItalic {
		return formatNames[FormatNormal]
	}
	return formatNames[f]
}

func (f TextFormat) String() string {
	switch f {
	case FormatBold:
		return "Bold"
	case FormatItalic:
		return "Italic"
	case FormatBoldItalic:
		return "Bold Italic"
	default:
		return "Normal"
	}
}

// IsBold reports whether the face should use a bold weight.
func (f TextFormat) IsBold() bool { return f == FormatBold || f == FormatBoldItalic }

// IsItalic reports whether the face should be italic.
func (f TextFormat) IsItalic() bool { return f == FormatItalic || f == FormatBoldItalic }

// ParseTextFormat 解析枚举名；未知或为空时回退为 NORMAL，不报错。
// 同时接受 "bold-italic"/"bold italic" 这类写法，便于 DSL 使用。
func ParseTextFormat(name string) TextFormat {
	s := strings.ToUpper(strings.TrimSpace(name))
	s = strings.NewReplacer("-", "_", " ", "_").Replace(s)
	for i, n := range formatNames {
		if n == s {
			return TextFormat(i)
		}
	}
	return FormatNormal
}
