package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ByLCY/jackfield/layout"
	preview "github.com/ByLCY/jackfield/renderer/term"
)

const (
	fallbackColumns = 80
	fallbackRows    = 24
)

type previewOptions struct {
	Columns int
	Rows    int
	Plain   bool
	Data    string
}

func newPreviewCmd(root *rootFlags) *cobra.Command {
	opts := previewOptions{}

	cmd := &cobra.Command{
		Use:   "preview <input.jlp|input.strip>",
		Short: "在终端里预览标签条",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := root.setup(cmd)
			if err != nil {
				return err
			}
			return runPreview(cmd, a, args[0], opts)
		},
	}

	cmd.Flags().IntVar(&opts.Columns, "columns", 0, "预览宽度（列）")
	cmd.Flags().IntVar(&opts.Rows, "rows", 0, "预览高度（行）")
	cmd.Flags().BoolVar(&opts.Plain, "plain", false, "不输出 ANSI 颜色")
	cmd.Flags().StringVar(&opts.Data, "data", "", "模板数据：JSON 文件路径或内联 JSON")

	return cmd
}

// viewport 依次取命令行参数、配置、终端大小，最后回退到 80x24。
func viewport(opts previewOptions, cfgCols, cfgRows int) (int, int, bool) {
	cols, rows := opts.Columns, opts.Rows
	if cols <= 0 {
		cols = cfgCols
	}
	if rows <= 0 {
		rows = cfgRows
	}
	tty := term.IsTerminal(int(os.Stdout.Fd()))
	if cols <= 0 || rows <= 0 {
		tw, th := fallbackColumns, fallbackRows
		if tty {
			if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && h > 0 {
				tw, th = w, h-2 // 留出摘要行与提示符
			}
		}
		if cols <= 0 {
			cols = tw
		}
		if rows <= 0 {
			rows = max(th, 1)
		}
	}
	return cols, rows, tty
}

func runPreview(cmd *cobra.Command, a *app, path string, opts previewOptions) error {
	in, err := loadInput(path, opts.Data)
	if err != nil {
		return err
	}
	r := a.newRenderer(in.Dir)
	res, err := layout.Build(in.Strip, layout.BuildOptions{Typesetter: r})
	if err != nil {
		return err
	}

	cols, rows, tty := viewport(opts, a.cfg.Preview.Columns, a.cfg.Preview.Rows)
	grid, err := preview.New(cols, rows).Grid(res)
	if err != nil {
		return err
	}
	a.log.WithFields(map[string]any{"columns": cols, "rows": rows}).Debug("终端预览")

	out := cmd.OutOrStdout()
	if tty && !opts.Plain && out == os.Stdout {
		fmt.Fprintln(out, grid.View())
	} else {
		fmt.Fprintln(out, grid.String())
	}
	fmt.Fprintf(out, "%s：%.1f × %.1f mm，%d 个格子\n", in.Title, res.Width, res.Height, len(res.Cells))
	return nil
}
