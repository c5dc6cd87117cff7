package project

import (
	"errors"
	"fmt"
)

var (
	// ErrWrongApplication 表示文件不是本程序写出的工程。
	ErrWrongApplication = errors.New("不是 Jackfield Labeler 工程文件")
	// ErrUnsupportedVersion 表示工程文件版本不兼容。
	ErrUnsupportedVersion = errors.New("不支持的工程文件版本")
	// ErrMissingField 表示缺少必需字段。
	ErrMissingField = errors.New("工程文件缺少必需字段")
)

// LoadError 包装读取、解析或校验工程文件时的失败。调用方拿到它时内存中的标签条没有被修改。
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("加载工程 %s 失败: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
