package layout

import "strings"

// Align 表示行内水平对齐方式。
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// ParseAlign accepts left/center/right (end is an alias of right); anything else is left.
func ParseAlign(v string) Align {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "center":
		return AlignCenter
	case "right", "end":
		return AlignRight
	default:
		return AlignLeft
	}
}

// WrapMode 控制折行策略。
type WrapMode int

const (
	WrapAnywhere  WrapMode = iota // 优先在空白处折行，超长单词在词内拆分
	WrapBreakWord                 // 忽略空白机会，按宽度逐字拆分
	WrapNone                      // 仅在显式换行处分行
)

// ParseWrap 解析折行策略，空值与未知值均视为 anywhere。
func ParseWrap(v string) WrapMode {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "break-word", "breakword":
		return WrapBreakWord
	case "nowrap", "no-wrap", "none":
		return WrapNone
	default:
		return WrapAnywhere
	}
}

// TextStyle 是排版一段文本所需的参数，长度单位均为设备单位（pt）。
type TextStyle struct {
	FontSize   float64
	LineHeight float64
	Width      float64 // <=0 表示不限宽
	Align      Align
	Wrap       WrapMode
}

// Typesetter 负责根据字体与宽度约束将文本排成可查询的段落。
type Typesetter interface {
	Typeset(content string, font FontResource, style TextStyle) (*Paragraph, error)
}
