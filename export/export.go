// Package export 把标签条同步导出为 PDF 或 PNG 文件。
// 每次导出：布局 → 渲染 → 原子写入，调用方拿到的要么是完整文件要么是错误。
package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ByLCY/jackfield/atomicfile"
	"github.com/ByLCY/jackfield/layout"
	"github.com/ByLCY/jackfield/logger"
	"github.com/ByLCY/jackfield/renderer"
	canvasrenderer "github.com/ByLCY/jackfield/renderer/canvas"
	"github.com/ByLCY/jackfield/strip"
)

// Format 是导出格式。
type Format string

const (
	FormatPDF Format = "pdf"
	FormatPNG Format = "png"
)

// Extension 返回格式对应的文件扩展名。
func (f Format) Extension() string { return "." + string(f) }

// FormatForPath 按扩展名推断导出格式。
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return FormatPDF, nil
	case ".png":
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("无法根据扩展名判断导出格式: %s", path)
	}
}

// ValidationError 表示严格模式下标签条自检未通过。
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "标签条校验未通过: " + strings.Join(e.Problems, "; ")
}

// Exporter 是导出的窄接口，便于以后在外面包一层异步执行。
type Exporter interface {
	Format() Format
	Export(s *strip.Strip, path string) error
}

// Options 配置导出器。
type Options struct {
	Strict bool // Validate() 非空时拒绝导出
	Meta   layout.DocumentMeta
	Log    *logger.Logger
}

type rendererExporter struct {
	format     Format
	renderer   renderer.Renderer
	typesetter layout.Typesetter
	opts       Options
}

// NewPDF 返回使用 canvas 渲染器的 PDF 导出器。
func NewPDF(r *canvasrenderer.Renderer, opts Options) Exporter {
	return &rendererExporter{format: FormatPDF, renderer: r, typesetter: r, opts: opts}
}

// NewPNG 返回 PNG 导出器，dpi<=0 时使用默认分辨率。
func NewPNG(r *canvasrenderer.Renderer, dpi float64, opts Options) Exporter {
	return &rendererExporter{format: FormatPNG, renderer: canvasrenderer.NewPNGRenderer(r, dpi), typesetter: r, opts: opts}
}

// New 按格式创建导出器。
func New(format Format, r *canvasrenderer.Renderer, dpi float64, opts Options) (Exporter, error) {
	switch format {
	case FormatPDF:
		return NewPDF(r, opts), nil
	case FormatPNG:
		return NewPNG(r, dpi, opts), nil
	default:
		return nil, fmt.Errorf("不支持的导出格式: %s", format)
	}
}

func (e *rendererExporter) Format() Format { return e.format }

func (e *rendererExporter) Export(s *strip.Strip, path string) error {
	log := e.opts.Log.WithFields(map[string]any{"format": string(e.format), "path": path})
	start := time.Now()

	if e.opts.Strict {
		if problems := s.Validate(); len(problems) > 0 {
			err := &ValidationError{Problems: problems}
			log.Error(err, "导出前校验失败")
			return err
		}
	}

	res, err := layout.Build(s, layout.BuildOptions{Typesetter: e.typesetter, Meta: e.opts.Meta})
	if err != nil {
		if errors.Is(err, layout.ErrNothingToRender) {
			log.Warn("标签条为空，未导出")
		}
		return err
	}
	data, err := e.renderer.Render(res)
	if err != nil {
		log.Error(err, "渲染失败")
		return fmt.Errorf("渲染 %s 失败: %w", strings.ToUpper(string(e.format)), err)
	}
	if err := atomicfile.Write(path, data, 0o644); err != nil {
		log.Error(err, "写入文件失败")
		return fmt.Errorf("写入 %s 失败: %w", path, err)
	}

	log.WithFields(map[string]any{
		"bytes":    len(data),
		"cells":    len(res.Cells),
		"duration": time.Since(start).String(),
	}).Info("导出完成")
	return nil
}
