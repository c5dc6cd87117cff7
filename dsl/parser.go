// Package dsl 解析 .strip 快速录入格式：
//
//	strip "Patchbay A" {
//	  height 6mm
//	  cells 8 text "IN ${n}"
//	  start 20 "Inputs" bold background #ffff00
//	}
//
// 每行一条语句，也可以用 ';' 分隔；#、// 与 /* */ 都是注释。颜色必须写满 6 位十六进制。
package dsl

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	stripLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "Color", Pattern: `#[0-9A-Fa-f]{6}\b`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Number", Pattern: `-?(?:\d+\.\d+|\d+|\.\d+)(?:pt|mm|cm|in)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[;:,]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	// 参数 token 类型 -> ArgKind；不在表里的 token 结束参数列表。
	argKinds = map[lexer.TokenType]ArgKind{
		tokenType("Number"): ArgNumber,
		tokenType("String"): ArgString,
		tokenType("Ident"):  ArgIdent,
		tokenType("Color"):  ArgColor,
		tokenType("Symbol"): ArgSeparator,
	}

	stripParser = participle.MustBuild[File](
		participle.Lexer(stripLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
	)
)

// File 是 .strip 文件的语法树根。
type File struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Name  *Quoted        `parser:"Newline* 'strip' @String? Newline*"`
	Block *Block         `parser:"@@ Newline*"`
}

// Block 是 { } 包围的语句列表。
type Block struct {
	Statements []*Statement `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Statement 是一个命令名加若干参数；settings 之类的语句可以在同一行打开嵌套块。
type Statement struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Name  string         `parser:"@Ident"`
	Args  []*Arg         `parser:"@@*"`
	Block *Block         `parser:"@@?"`
}

// ArgKind 区分参数的词法类别。
type ArgKind int

const (
	ArgNumber ArgKind = iota + 1
	ArgString
	ArgIdent
	ArgColor
	ArgSeparator // ':' 或 ','，编译时忽略
)

func (k ArgKind) String() string {
	switch k {
	case ArgNumber:
		return "number"
	case ArgString:
		return "string"
	case ArgIdent:
		return "ident"
	case ArgColor:
		return "color"
	case ArgSeparator:
		return "separator"
	default:
		return "unknown"
	}
}

// Arg 是语句的一个参数。字符串参数的 Value 已去掉引号，Raw 保留原文。
type Arg struct {
	Kind  ArgKind
	Value string
	Raw   string
	Pos   lexer.Position
}

// Parse 让 Arg 作为自定义语法单元：遇到换行、';'、花括号或文件结尾时停止。
func (a *Arg) Parse(lex *lexer.PeekingLexer) error {
	tok := lex.Peek()
	if tok.EOF() {
		return participle.NextMatch
	}
	kind, ok := argKinds[tok.Type]
	if !ok || (kind == ArgSeparator && tok.Value == ";") {
		return participle.NextMatch
	}
	tok = lex.Next()
	value := tok.Value
	if kind == ArgString {
		unquoted, err := strconv.Unquote(tok.Value)
		if err != nil {
			return fmt.Errorf("%s: 字符串无效: %w", tok.Pos, err)
		}
		value = unquoted
	}
	*a = Arg{Kind: kind, Value: value, Raw: tok.Value, Pos: tok.Pos}
	return nil
}

// Quoted 在捕获时去掉字符串引号。
type Quoted string

// Capture implements participle.Capture.
func (q *Quoted) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("缺少字符串")
	}
	s, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*q = Quoted(s)
	return nil
}

// Parse 从 r 读取 .strip 内容，name 用于错误位置。
func Parse(name string, r io.Reader) (*File, error) {
	return stripParser.Parse(name, r)
}

// ParseString 解析字符串形式的 .strip 内容。
func ParseString(input string) (*File, error) {
	return stripParser.ParseString("", input)
}

func tokenType(name string) lexer.TokenType {
	tt, ok := stripLexer.Symbols()[name]
	if !ok {
		panic("dsl: 未定义的 token " + name)
	}
	return tt
}
