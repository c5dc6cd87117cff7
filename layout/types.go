package layout

// 该文件定义布局结果与资源描述，供布局计算、渲染与调试 JSON 共用。所有长度单位均为 mm。

// Result 保存一条标签条布局后的全部格子，以及打印时使用的页面设置。
type Result struct {
	Width  float64      `json:"width"`
	Height float64      `json:"height"`
	Cells  []Cell       `json:"cells"`
	Page   PageSetup    `json:"page"`
	Meta   DocumentMeta `json:"meta"`
}

// Cell 是一个 segment 在标签条坐标系（左上角为原点）中的矩形与居中文本。
type Cell struct {
	SegmentID string   `json:"segmentId"`
	Kind      string   `json:"kind"`
	Rect      Rect     `json:"rect"`
	Text      *TextBox `json:"text,omitempty"` // 无文本时为空
}

// PageSetup 记录纸张、边距与请求的旋转角度（度）。
type PageSetup struct {
	Paper    string  `json:"paper"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Margin   Margin  `json:"margin"`
	Rotation int     `json:"rotation"`
}

// FontResource 描述字体资源，src 可以是文件路径或 embed:* 形式。
type FontResource struct {
	Name   string `json:"name"`
	Src    string `json:"src"`
	Style  string `json:"style"`  // regular / bold / italic / bold italic
	Family string `json:"family"` // 渲染器使用的 Family 名称
}

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Margin 以毫米为单位。
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// TextBox 表示一个已经排好坐标的单行文本。X 为文本左边界，Baseline 为基线位置。
type TextBox struct {
	Content  string       `json:"content"`
	X        float64      `json:"x"`
	Y        float64      `json:"y"` // 字形框顶部
	Width    float64      `json:"width"`
	Height   float64      `json:"height"` // ascent + descent
	Baseline float64      `json:"baseline"`
	Font     FontResource `json:"font"`
	FontSize float64      `json:"fontSize"`
	Color    Color        `json:"color"`
	Align    string       `json:"align,omitempty"`
}

// TextBox.Align 的取值；为空时按左对齐处理，X 是文字左边缘。
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

// TextMetrics 是排版后端返回的度量（mm），Descent 为正值。
type TextMetrics struct {
	Width   float64 `json:"width"`
	Ascent  float64 `json:"ascent"`
	Descent float64 `json:"descent"`
}

// Rect 表示一个矩形（不包含圆角）。
type Rect struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	StrokeColor Color   `json:"strokeColor"`
	StrokeWidth float64 `json:"strokeWidth"`         // mm，<=0 时由渲染器按设备单位给默认值
	FillColor   *Color  `json:"fillColor,omitempty"` // 为空表示不填充
}

// DocumentMeta 保存 PDF 元信息。
type DocumentMeta struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords"`
}
