// Package textview is the host side of a tagged, decorated paragraph: it owns
// the laid out text, its tagged ranges, the decoration settings and the
// long-lived stroke used to paint decorations.
package textview

import (
	"image/color"

	"github.com/ByLCY/spantext/compose"
	"github.com/ByLCY/spantext/decoration"
	"github.com/ByLCY/spantext/layout"
	"github.com/ByLCY/spantext/touch"
)

// Painter draws the text of a view. Coordinates are relative to the view origin.
type Painter interface {
	decoration.Canvas
	// DrawText draws one visual line with its left edge at x and its baseline at y.
	DrawText(text string, x, baseline float64, c color.Color)
}

// View 是一个文本视图。零值不可用，使用 New 创建。
type View struct {
	id     layout.OwnerID
	text   []rune
	query  layout.Query
	ranges layout.RangeSet

	textColor  color.RGBA
	decoration decoration.Config
	stroke     decoration.Stroke
}

// New returns an empty view whose id is also the fallback touch owner.
func New(id layout.OwnerID) *View {
	return &View{id: id, textColor: color.RGBA{A: 0xff}}
}

// FromView 根据组版结果创建视图。
func FromView(cv compose.View) *View {
	v := New(cv.ID)
	var q layout.Query
	if cv.Paragraph != nil {
		q = cv.Paragraph
	}
	v.SetContent(cv.Text, q, cv.Ranges)
	v.SetTextColor(rgba(cv.Color))
	v.SetDecorationLine(cv.Decoration.Line)
	v.SetDecorationStyle(cv.Decoration.Style)
	if cv.Decoration.Color != nil {
		c := rgba(*cv.Decoration.Color)
		v.SetDecorationColor(&c)
	}
	return v
}

func rgba(c layout.Color) color.RGBA {
	return color.RGBA{R: uint8(c.R), G: uint8(c.G), B: uint8(c.B), A: 0xff}
}

func (v *View) ID() layout.OwnerID { return v.id }

// SetContent replaces the text together with its layout and tagged ranges.
// q and ranges must describe text; a nil q leaves the view without lines.
func (v *View) SetContent(text string, q layout.Query, ranges layout.RangeSet) {
	v.text = []rune(text)
	v.query = q
	v.ranges = ranges
}

func (v *View) Text() string { return string(v.text) }

// Layout returns the current layout, nil before SetContent.
func (v *View) Layout() layout.Query { return v.query }

func (v *View) TextColor() color.RGBA { return v.textColor }

func (v *View) SetTextColor(c color.RGBA) { v.textColor = c }

// DecorationLine 返回装饰线类型，LineNone 表示未设置。
func (v *View) DecorationLine() decoration.Line { return v.decoration.Line }

func (v *View) SetDecorationLine(l decoration.Line) { v.decoration.Line = l }

func (v *View) DecorationStyle() decoration.Style { return v.decoration.Style }

func (v *View) SetDecorationStyle(s decoration.Style) { v.decoration.Style = s }

// DecorationColor 返回设置的装饰颜色，nil 表示未设置。绘制时不使用该颜色。
func (v *View) DecorationColor() *color.RGBA { return v.decoration.Color }

func (v *View) SetDecorationColor(c *color.RGBA) { v.decoration.Color = c }

// Decoration returns the current decoration settings.
func (v *View) Decoration() decoration.Config { return v.decoration }

// TagForTouch returns the owner of the text at (x, y), relative to the view
// origin. Points that hit no tagged text belong to the view itself.
func (v *View) TagForTouch(x, y float64) layout.OwnerID {
	return touch.Resolve(x, y, v.id, v.query, v.ranges)
}

// Draw paints the text lines, then the decoration on top of them when a
// decoration line is set.
func (v *View) Draw(p Painter) {
	if p == nil || v.query == nil {
		return
	}
	n := v.query.LineCount()
	for i := 0; i < n; i++ {
		start, end := v.query.LineCharExtent(i)
		if end <= start || end > len(v.text) {
			continue
		}
		left := v.query.PrimaryHorizontal(start)
		_, _, baseline := v.query.LineVerticalExtent(i)
		p.DrawText(string(v.text[start:end]), left, baseline, v.textColor)
	}
	if !v.decoration.Enabled() {
		return
	}
	v.stroke.Color = v.textColor
	decoration.Render(v.query, v.decoration, &v.stroke, p)
}
