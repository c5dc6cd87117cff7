package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ByLCY/jackfield/dsl"
	"github.com/ByLCY/jackfield/project"
	canvasrenderer "github.com/ByLCY/jackfield/renderer/canvas"
	"github.com/ByLCY/jackfield/strip"
)

// input 是从 .jlp 工程或 .strip 文件读出的标签条。
type input struct {
	Strip   *strip.Strip
	Project *project.Project // 仅 .jlp 输入时非空
	Title   string
	Dir     string
}

// loadInput 按扩展名选择读取方式：.jlp 按工程读取，其余按 .strip 解析；data 只对 .strip 生效。
func loadInput(path, data string) (*input, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("缺少输入文件")
	}
	in := &input{
		Title: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Dir:   filepath.Dir(path),
	}

	if strings.EqualFold(filepath.Ext(path), project.Extension) {
		p, err := project.Load(path)
		if err != nil {
			return nil, err
		}
		in.Strip = p.Strip
		in.Project = p
		return in, nil
	}

	bound, err := readData(data)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开 %s: %w", path, err)
	}
	defer f.Close()

	s, file, err := dsl.Load(path, f, bound)
	if err != nil {
		return nil, fmt.Errorf("读取 %s 失败: %w", path, err)
	}
	if file.Name != nil && *file.Name != "" {
		in.Title = string(*file.Name)
	}
	in.Strip = s
	return in, nil
}

// readData 读取 --data：以 { 或 [ 开头时按内联 JSON 处理，否则视为 JSON 文件路径。
func readData(value string) (any, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	raw := []byte(value)
	if value[0] != '{' && value[0] != '[' {
		b, err := os.ReadFile(value)
		if err != nil {
			return nil, fmt.Errorf("读取数据文件失败: %w", err)
		}
		raw = b
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("解析 data JSON 失败: %w", err)
	}
	return out, nil
}

// newRenderer 返回 canvas 渲染器；字体相对路径优先按配置的 font_dir 解析，否则相对输入文件。
func (a *app) newRenderer(inputDir string) *canvasrenderer.Renderer {
	base := inputDir
	if a.cfg.FontDir != "" {
		base = a.cfg.FontDir
	}
	return canvasrenderer.NewRenderer(base)
}
