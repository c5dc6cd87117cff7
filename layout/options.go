package layout

// BuildOptions 配置布局阶段所需的依赖，例如排版后端。
type BuildOptions struct {
	Typesetter Typesetter
	Meta       DocumentMeta // 为空时使用默认元信息
}

// Typesetter 负责测量单行文本。返回值单位均为 mm。
type Typesetter interface {
	MeasureText(content string, font FontResource, fontSize float64) (TextMetrics, error)
}
