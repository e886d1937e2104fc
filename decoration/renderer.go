package decoration

import (
	"image/color"

	"github.com/ByLCY/spantext/layout"
)

// StrokeWidth is the width of a decoration stroke and its distance below the
// baseline, in device units.
const StrokeWidth = 1.0

// Stroke is the stroke configuration handed to a Canvas. The host owns one
// Stroke for the lifetime of the view and passes it to every Render call;
// Render updates it in place and reuses its Dashes backing array.
type Stroke struct {
	Color  color.Color
	Width  float64
	Dashes []float64 // empty means solid
}

// Canvas 是绘制线段的最小能力。
type Canvas interface {
	DrawSegment(x0, y0, x1, y1 float64, s *Stroke)
}

// Render draws one segment per line of q when cfg requests a decoration.
//
// The segment of a line starts at the x of its first character and ends at
// the x of its second-to-last character plus the advance of the first
// character, one StrokeWidth below the baseline. Lines without characters are
// skipped. Single character lines, whose successor lives on the next line,
// and lines where the estimate collapses use the line's horizontal extent
// instead.
//
// The stroke color is left untouched: the caller sets it to the resolved text
// color. cfg.Color is not consulted.
func Render(q layout.Query, cfg Config, stroke *Stroke, c Canvas) {
	if !cfg.Enabled() || q == nil || c == nil || stroke == nil {
		return
	}
	stroke.Width = StrokeWidth
	stroke.Dashes = cfg.Style.AppendDashes(stroke.Dashes[:0], StrokeWidth)

	n := q.LineCount()
	for i := 0; i < n; i++ {
		first, last := q.LineCharExtent(i)
		if last <= first {
			continue
		}
		var xStart, xStop float64
		if last-first > 1 {
			xStart = q.PrimaryHorizontal(first)
			xDiff := q.PrimaryHorizontal(first+1) - xStart
			xStop = q.PrimaryHorizontal(last-1) + xDiff
		}
		if xStop <= xStart {
			xStart, xStop = q.LineHorizontalExtent(i)
			if xStop <= xStart {
				continue
			}
		}
		_, _, baseline := q.LineVerticalExtent(i)
		y := baseline + StrokeWidth
		c.DrawSegment(xStart, y, xStop, y, stroke)
	}
}
