package canvasrenderer

import (
	"image/color"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/spantext/decoration"
	"github.com/ByLCY/spantext/textview"
)

var _ textview.Painter = (*painter)(nil)

// painter 把视图坐标（pt，相对视图原点）映射到页面坐标（mm）。
type painter struct {
	ctx     *canvas.Context
	family  *canvas.FontFamily
	style   canvas.FontStyle
	size    float64 // pt
	originX float64 // mm
	originY float64 // mm

	face      *canvas.FontFace
	faceColor color.Color
	dashes    []float64
}

func (p *painter) DrawText(text string, x, baseline float64, c color.Color) {
	if p.face == nil || p.faceColor != c {
		p.face = p.family.Face(p.size, c, p.style, canvas.FontNormal)
		p.faceColor = c
	}
	line := canvas.NewTextLine(p.face, text, canvas.Left)
	p.ctx.DrawText(p.originX+toMm(x), p.originY+toMm(baseline), line)
}

func (p *painter) DrawSegment(x0, y0, x1, y1 float64, s *decoration.Stroke) {
	col := s.Color
	if col == nil {
		col = canvas.Black
	}
	p.dashes = p.dashes[:0]
	for _, d := range s.Dashes {
		p.dashes = append(p.dashes, toMm(d))
	}
	p.ctx.SetStrokeColor(col)
	p.ctx.SetStrokeWidth(toMm(s.Width))
	p.ctx.SetDashes(0, p.dashes...)

	path := &canvas.Path{}
	path.MoveTo(0, 0)
	path.LineTo(toMm(x1-x0), toMm(y1-y0))
	p.ctx.DrawPath(p.originX+toMm(x0), p.originY+toMm(y0), path)
}
