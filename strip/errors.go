package strip

import (
	"errors"
	"fmt"
)

// 校验类错误：在非法修改发生的位置同步返回，调用方不得吞掉。
var (
	ErrNegativeWidth    = errors.New("宽度不能为负数")
	ErrNonPositiveWidth = errors.New("内容格宽度必须大于 0")
	ErrNegativeCount    = errors.New("内容格数量不能为负数")
	ErrTooManyCells     = errors.New("内容格数量超出上限")
)

// FormatError 表示无法解析的颜色字符串。
type FormatError struct {
	Value string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("颜色值 %q 无法解析（需要 #rrggbb）", e.Value)
}

// UnknownSegmentKindError 表示文档中出现了未知的 segment 类型。
type UnknownSegmentKindError struct {
	Kind string
}

func (e *UnknownSegmentKindError) Error() string {
	return fmt.Sprintf("未知的 segment 类型：%q", e.Kind)
}

// TypeMismatchError 表示文档声明的类型与实际构造出的变体不一致。
type TypeMismatchError struct {
	ID       string
	Declared string
	Actual   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("segment %q 声明类型为 %s，但解析结果为 %s", e.ID, e.Declared, e.Actual)
}

// DuplicateSegmentError 表示同一条标签中出现了重复的 segment id。
type DuplicateSegmentError struct {
	ID string
}

func (e *DuplicateSegmentError) Error() string {
	return fmt.Sprintf("segment id %q 重复", e.ID)
}
