package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ByLCY/jackfield/project"
)

type buildOptions struct {
	Output string
	Data   string
}

func newBuildCmd(root *rootFlags) *cobra.Command {
	opts := buildOptions{}

	cmd := &cobra.Command{
		Use:   "build <input.strip>",
		Short: "把 .strip 文件编译成 .jlp 工程",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := root.setup(cmd)
			if err != nil {
				return err
			}
			return runBuild(cmd, a, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "输出工程路径（默认与输入同名，扩展名 .jlp）")
	cmd.Flags().StringVar(&opts.Data, "data", "", "模板数据：JSON 文件路径或内联 JSON")

	return cmd
}

func runBuild(cmd *cobra.Command, a *app, path string, opts buildOptions) error {
	in, err := loadInput(path, opts.Data)
	if err != nil {
		return err
	}
	out := opts.Output
	if out == "" {
		out = strings.TrimSuffix(path, filepath.Ext(path))
	}
	p := in.Project
	if p == nil {
		p = project.New(in.Strip)
	}
	saved, err := project.Save(p, out)
	if err != nil {
		return err
	}
	w, h := in.Strip.Dimensions()
	a.log.WithFields(map[string]any{
		"path":     saved,
		"segments": len(in.Strip.Segments()),
		"width_mm": w,
	}).Info("工程已保存")
	fmt.Fprintf(cmd.OutOrStdout(), "已保存工程：%s（%.1f × %.1f mm）\n", saved, w, h)
	return nil
}
