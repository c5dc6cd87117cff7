package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ByLCY/jackfield/layout"
	"github.com/ByLCY/jackfield/project"
)

func newValidateCmd(root *rootFlags) *cobra.Command {
	var data string

	cmd := &cobra.Command{
		Use:   "validate <input.jlp|input.strip>",
		Short: "检查标签条是否可以导出",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := root.setup(cmd)
			if err != nil {
				return err
			}
			in, err := loadInput(args[0], data)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			problems := in.Strip.Validate()
			for _, p := range problems {
				fmt.Fprintf(out, "- %s\n", p)
			}
			if len(problems) > 0 {
				return fmt.Errorf("%s: 发现 %d 个问题", args[0], len(problems))
			}

			res, err := layout.Build(in.Strip, layout.BuildOptions{})
			if err != nil {
				return err
			}
			pl, err := layout.Place(res)
			if err != nil {
				return err
			}
			if !pl.Fits {
				a.log.With("paper", res.Page.Paper).Warn("标签条超出纸张可打印区域")
				fmt.Fprintf(out, "注意：%.1f × %.1f mm 的标签条放不进 %s 的可打印区域\n", res.Width, res.Height, res.Page.Paper)
			}
			fmt.Fprintf(out, "OK：%d 个格子，总宽 %.1f mm，旋转 %d°\n", len(res.Cells), res.Width, pl.Rotation)
			return nil
		},
	}

	cmd.Flags().StringVar(&data, "data", "", "模板数据：JSON 文件路径或内联 JSON")
	return cmd
}

func newInfoCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "info <project.jlp>",
		Short: "显示工程文件概要",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := root.setup(cmd); err != nil {
				return err
			}
			info, err := project.Info(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "路径:     %s\n", info.Path)
			fmt.Fprintf(out, "版本:     %s\n", info.Version)
			fmt.Fprintf(out, "应用:     %s\n", info.Application)
			fmt.Fprintf(out, "大小:     %d 字节\n", info.Size)
			fmt.Fprintf(out, "修改时间: %s\n", info.ModTime.Format(time.DateTime))
			if info.ProjectID != "" {
				fmt.Fprintf(out, "工程 ID:  %s\n", info.ProjectID)
			}
			if info.HasStrip {
				fmt.Fprintf(out, "标签条:   高 %g mm，内容格宽 %g mm，%d 个格子\n",
					info.StripHeight, info.ContentCellWidth, info.SegmentCount)
			} else {
				fmt.Fprintln(out, "标签条:   无")
			}
			fmt.Fprintf(out, "可打开:   %t\n", project.IsProjectFile(args[0]))
			return nil
		},
	}
}
