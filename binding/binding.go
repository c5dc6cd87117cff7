// Package binding 实现标签模板里的 ${path} 插值，路径写法如 data.rack.name、data.inputs[1]。
package binding

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var placeholder = regexp.MustCompile(`\$\{([^}]+)\}`)

// Scope 是插值时可见的变量表。
type Scope map[string]any

// With 返回追加了一个变量的新 Scope，原 Scope 不变。
func (s Scope) With(key string, value any) Scope {
	out := make(Scope, len(s)+1)
	for k, v := range s {
		out[k] = v
	}
	out[key] = value
	return out
}

// Interpolate 把 text 里能解析的占位符替换成值，解析不了的原样保留。
func Interpolate(text string, data any) string {
	if data == nil {
		return text
	}
	return placeholder.ReplaceAllStringFunc(text, func(match string) string {
		if v, ok := Lookup(data, pathOf(match)); ok {
			return format(v)
		}
		return match
	})
}

// Missing 按出现顺序返回 text 中无法解析的路径。
func Missing(text string, data any) []string {
	var out []string
	for _, m := range placeholder.FindAllStringSubmatch(text, -1) {
		path := strings.TrimSpace(m[1])
		if _, ok := Lookup(data, path); !ok {
			out = append(out, path)
		}
	}
	return out
}

func pathOf(match string) string {
	m := placeholder.FindStringSubmatch(match)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// JSON 解码出的数字是 float64，整数值不带小数输出。
func format(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

// step 是路径中的一步：按键取值或按下标取值。
type step struct {
	key   string
	index int
	isIdx bool
}

// compile 把 a.b[0][1].c 拆成步骤序列；写法不合法时返回 false。
func compile(path string) ([]step, bool) {
	if path == "" {
		return nil, false
	}
	var steps []step
	for _, part := range strings.Split(path, ".") {
		key, rest, _ := strings.Cut(part, "[")
		if key != "" {
			steps = append(steps, step{key: key})
		} else if rest == "" {
			return nil, false
		}
		for rest != "" {
			closing := strings.IndexByte(rest, ']')
			if closing < 0 {
				return nil, false
			}
			idx, err := strconv.Atoi(rest[:closing])
			if err != nil {
				return nil, false
			}
			steps = append(steps, step{index: idx, isIdx: true})
			rest = rest[closing+1:]
			if rest == "" {
				break
			}
			if rest[0] != '[' {
				return nil, false
			}
			rest = rest[1:]
		}
	}
	return steps, true
}

// Lookup 沿路径取值，任何一步失败都返回 false。
func Lookup(data any, path string) (any, bool) {
	steps, ok := compile(path)
	if !ok || data == nil {
		return nil, false
	}
	cur := data
	for _, st := range steps {
		if st.isIdx {
			cur, ok = index(cur, st.index)
		} else {
			cur, ok = field(cur, st.key)
		}
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func field(v any, key string) (any, bool) {
	var (
		out any
		ok  bool
	)
	switch m := v.(type) {
	case Scope:
		out, ok = m[key]
	case map[string]any:
		out, ok = m[key]
	case map[string]string:
		out, ok = m[key]
	}
	return out, ok
}

func index(v any, i int) (any, bool) {
	switch s := v.(type) {
	case []any:
		if i >= 0 && i < len(s) {
			return s[i], true
		}
	case []string:
		if i >= 0 && i < len(s) {
			return s[i], true
		}
	}
	return nil, false
}
