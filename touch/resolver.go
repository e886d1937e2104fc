// Package touch resolves a touch point on laid out text to the most specific
// owner of the text under it.
package touch

import (
	"math"

	"github.com/ByLCY/spantext/layout"
)

// Resolve returns the owner of the innermost tagged range under (x, y).
//
// Coordinates are relative to the paragraph origin and are truncated to whole
// device units before being compared with the line extent. The point misses
// every range, and def is returned, when it falls outside all line bands, lies
// in the margin left or right of the line's glyphs, or when no range that is
// still open at the character offset touches it.
//
// Among the candidates the shortest range wins; ranges of equal length are
// decided by enumeration order, the last one returned by ranges wins.
func Resolve(x, y float64, def layout.OwnerID, q layout.Query, ranges layout.RangeSet) layout.OwnerID {
	if q == nil || ranges == nil {
		return def
	}
	tx, ty := math.Trunc(x), math.Trunc(y)

	line, ok := q.LineForVertical(ty)
	if !ok {
		return def
	}
	left, right := q.LineHorizontalExtent(line)
	if tx < math.Trunc(left) || tx > math.Trunc(right) {
		return def
	}

	index := q.OffsetForHorizontal(line, tx)
	target := def
	best := math.MaxInt
	for _, r := range ranges.RangesOverlapping(index) {
		// 已在 index 处闭合的区间不参与竞争
		if r.End <= index || r.Start > index {
			continue
		}
		if n := r.Len(); n <= best {
			target, best = r.Owner, n
		}
	}
	return target
}
