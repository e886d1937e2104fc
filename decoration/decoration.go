// Package decoration draws underline / line-through strokes for wrapped text,
// one segment per visual line.
package decoration

import (
	"fmt"
	"image/color"
	"strings"
)

// Line selects which decoration lines are requested. The zero value means no decoration.
type Line int

const (
	LineNone Line = iota
	LineUnderline
	LineThrough
	LineUnderlineAndThrough
)

var lineNames = map[Line]string{
	LineNone:                "none",
	LineUnderline:           "underline",
	LineThrough:             "line-through",
	LineUnderlineAndThrough: "underline line-through",
}

func (l Line) String() string {
	if s, ok := lineNames[l]; ok {
		return s
	}
	return fmt.Sprintf("Line(%d)", int(l))
}

func (l Line) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

// ParseLine 解析 CSS 风格的 text-decoration-line 取值，大小写与下划线/连字符不敏感。
func ParseLine(v string) (Line, error) {
	s := strings.ToLower(strings.TrimSpace(v))
	s = strings.ReplaceAll(s, "_", "-")
	switch s {
	case "", "none":
		return LineNone, nil
	case "underline":
		return LineUnderline, nil
	case "line-through", "strikethrough":
		return LineThrough, nil
	case "underline line-through", "underline-line-through", "line-through underline":
		return LineUnderlineAndThrough, nil
	}
	return LineNone, fmt.Errorf("未知的装饰线类型 %q", v)
}

// Style is the stroke pattern of a decoration line.
type Style int

const (
	StyleSolid Style = iota
	StyleDouble
	StyleDashed
	StyleDotted
)

func (s Style) String() string {
	switch s {
	case StyleSolid:
		return "solid"
	case StyleDouble:
		return "double"
	case StyleDashed:
		return "dashed"
	case StyleDotted:
		return "dotted"
	default:
		return fmt.Sprintf("Style(%d)", int(s))
	}
}

func (s Style) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// ParseStyle 解析装饰线样式，空值视为 solid。
func ParseStyle(v string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "solid":
		return StyleSolid, nil
	case "double":
		return StyleDouble, nil
	case "dashed":
		return StyleDashed, nil
	case "dotted":
		return StyleDotted, nil
	}
	return StyleSolid, fmt.Errorf("未知的装饰线样式 %q", v)
}

// AppendDashes appends the on/off dash lengths of s for a stroke of the given
// width to dst. Solid and double strokes have no dashes.
func (s Style) AppendDashes(dst []float64, width float64) []float64 {
	switch s {
	case StyleDashed:
		return append(dst, width*3, width*3, width*3, width*3)
	case StyleDotted:
		return append(dst, width, width, width, width)
	default:
		return dst
	}
}

// Config 是宿主视图持有的装饰配置，渲染器只读。
// Color 目前只做保存，绘制始终使用宿主解析出的文字颜色。
type Config struct {
	Line  Line
	Style Style
	Color *color.RGBA
}

// Enabled reports whether any decoration line is requested.
func (c Config) Enabled() bool { return c.Line != LineNone }
