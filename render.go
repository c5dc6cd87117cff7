package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ByLCY/jackfield/export"
	"github.com/ByLCY/jackfield/layout"
)

type renderOptions struct {
	Output string
	Format string
	DPI    float64
	Debug  string
	Rotate int
	Strict bool
	Data   string
}

func newRenderCmd(root *rootFlags) *cobra.Command {
	opts := renderOptions{}

	cmd := &cobra.Command{
		Use:   "render <input.jlp|input.strip>",
		Short: "导出 PDF 或 PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := root.setup(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("strict") {
				opts.Strict = a.cfg.Export.Strict
			}
			return runRender(cmd, a, args[0], opts, cmd.Flags().Changed("rotate"))
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "输出文件（.pdf 或 .png）")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "导出格式 pdf|png（默认按输出扩展名）")
	cmd.Flags().Float64Var(&opts.DPI, "dpi", 0, "PNG 分辨率（默认取配置）")
	cmd.Flags().StringVar(&opts.Debug, "debug", "", "布局调试 JSON 输出路径")
	cmd.Flags().IntVar(&opts.Rotate, "rotate", 0, "覆盖旋转角度（0/90/180/270）")
	cmd.Flags().BoolVar(&opts.Strict, "strict", true, "校验不通过时拒绝导出")
	cmd.Flags().StringVar(&opts.Data, "data", "", "模板数据：JSON 文件路径或内联 JSON")
	cmd.MarkFlagRequired("output") //nolint:errcheck

	return cmd
}

func runRender(cmd *cobra.Command, a *app, path string, opts renderOptions, rotate bool) error {
	in, err := loadInput(path, opts.Data)
	if err != nil {
		return err
	}
	if rotate {
		rot, err := layout.NormalizeRotation(opts.Rotate)
		if err != nil {
			return err
		}
		settings := in.Strip.Settings()
		settings.Rotation = rot
		in.Strip.SetSettings(settings)
	}

	format := export.Format(strings.ToLower(opts.Format))
	if format == "" {
		if format, err = export.FormatForPath(opts.Output); err != nil {
			return err
		}
	}
	dpi := a.cfg.PNG.DPI
	if opts.DPI > 0 {
		dpi = opts.DPI
	}

	r := a.newRenderer(in.Dir)
	meta := layout.DocumentMeta{Title: in.Title}

	res, err := layout.Build(in.Strip, layout.BuildOptions{Typesetter: r, Meta: meta})
	if err != nil {
		return err
	}
	if opts.Debug != "" {
		if err := layout.WriteDebugJSON(res, opts.Debug); err != nil {
			return fmt.Errorf("输出调试 JSON 失败: %w", err)
		}
		a.log.With("path", opts.Debug).Debug("已写出布局调试 JSON")
	}
	if format == export.FormatPDF {
		if pl, err := layout.Place(res); err == nil && !pl.Fits {
			a.log.WithFields(map[string]any{
				"paper":    res.Page.Paper,
				"rotation": pl.Rotation,
			}).Warn("标签条超出纸张可打印区域")
		}
	}

	exp, err := export.New(format, r, dpi, export.Options{Strict: opts.Strict, Meta: meta, Log: a.log})
	if err != nil {
		return err
	}
	if err := exp.Export(in.Strip, opts.Output); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "已导出 %s：%s\n", strings.ToUpper(string(format)), opts.Output)
	return nil
}
