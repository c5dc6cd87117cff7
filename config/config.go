// Package config 读取命令行使用的 YAML 配置文件。
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config 是 jackfield 命令行的配置。
type Config struct {
	LogLevel  string        `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	HumanLogs bool          `yaml:"human_logs"`
	FontDir   string        `yaml:"font_dir"`
	PNG       PNGConfig     `yaml:"png"`
	Preview   PreviewConfig `yaml:"preview"`
	Export    ExportConfig  `yaml:"export"`
}

type PNGConfig struct {
	DPI float64 `yaml:"dpi" validate:"gte=72,lte=2400"`
}

// PreviewConfig 固定预览视口；为 0 时使用终端大小。
type PreviewConfig struct {
	Columns int `yaml:"columns" validate:"omitempty,gte=10,lte=1000"`
	Rows    int `yaml:"rows" validate:"omitempty,gte=1,lte=500"`
}

type ExportConfig struct {
	Strict bool `yaml:"strict"` // 校验不通过时拒绝导出
}

// Default 返回内置默认配置。
func Default() *Config {
	return &Config{
		LogLevel: "info",
		PNG:      PNGConfig{DPI: 300},
		Export:   ExportConfig{Strict: true},
	}
}

// ParseError 描述 YAML 解析失败的位置。
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("解析配置 %s 第 %d 行失败: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("解析配置 %s 失败: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// Load 读取配置文件；path 为空或文件不存在时返回默认配置。文件中未出现的字段保持默认值。
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &ParseError{Path: path, Line: extractLine(err), Err: err}
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func extractLine(err error) int {
	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}
	var line int
	if _, scanErr := fmt.Sscanf(matches[1], "%d", &line); scanErr != nil {
		return 0
	}
	return line
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New()
	})
	return validateInst
}

// Validate 对配置做结构校验，错误信息使用 YAML 字段路径。
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("配置为空")
	}
	err := validatorInstance().Struct(cfg)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		ve := ves[0]
		return fmt.Errorf("配置项 %s 校验失败 (%s)", yamlishFieldName(ve), ve.Tag())
	}
	return err
}

var yamlNames = map[string]string{
	"loglevel": "log_level",
	"dpi":      "dpi",
	"png":      "png",
	"preview":  "preview",
	"columns":  "columns",
	"rows":     "rows",
}

func yamlishFieldName(fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	var out []string
	for _, part := range parts[1:] {
		lower := strings.ToLower(part)
		if name, ok := yamlNames[lower]; ok {
			lower = name
		}
		out = append(out, lower)
	}
	return strings.Join(out, ".")
}
