package touch

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/ByLCY/spantext/layout"
)

const (
	viewID layout.OwnerID = 1
	ownerA layout.OwnerID = 10
	ownerB layout.OwnerID = 11
	ownerC layout.OwnerID = 12
)

type monoMeasurer struct{}

func (monoMeasurer) TextWidth(s string) float64 { return float64(utf8.RuneCountInString(s)) * 10 }

// rangeList enumerates in slice order, which is what the tie-break depends on.
type rangeList []layout.TaggedRange

func (l rangeList) RangesOverlapping(index int) []layout.TaggedRange {
	var out []layout.TaggedRange
	for _, r := range l {
		if r.Touches(index) {
			out = append(out, r)
		}
	}
	return out
}

type emptyQuery struct{ layout.Query }

func (emptyQuery) LineForVertical(float64) (int, bool) { return 0, false }

func paragraph(text string, width float64) *layout.Paragraph {
	return layout.NewParagraph(text, monoMeasurer{}, layout.FontMetrics{Ascent: 8, LineHeight: 10},
		layout.TextStyle{LineHeight: 10, Width: width})
}

// x for the middle-left of character i, which maps to boundary i.
func xAt(i int) float64 { return float64(i*10) + 2 }

func TestResolveOutsideVerticalBandsReturnsDefault(t *testing.T) {
	p := paragraph("0123456789", 200)
	ranges := rangeList{{Start: 0, End: 10, Owner: ownerA}}

	assert.Equal(t, viewID, Resolve(xAt(3), -5, viewID, p, ranges))
	assert.Equal(t, viewID, Resolve(xAt(3), 1000, viewID, p, ranges))
	assert.Equal(t, viewID, Resolve(xAt(3), 5, viewID, emptyQuery{}, ranges))
}

func TestResolveOutsideLineExtentReturnsDefault(t *testing.T) {
	p := paragraph("abc", 200)
	ranges := rangeList{{Start: 0, End: 3, Owner: ownerA}}

	assert.Equal(t, viewID, Resolve(45, 5, viewID, p, ranges), "touch in the trailing margin")
	assert.Equal(t, viewID, Resolve(-3, 5, viewID, p, ranges))
	// the right edge itself is inside, but maps to the closed end of the range
	assert.Equal(t, viewID, Resolve(30, 5, viewID, p, ranges))
	assert.Equal(t, ownerA, Resolve(24, 5, viewID, p, ranges))
}

func TestResolvePrefersInnermostRange(t *testing.T) {
	p := paragraph("0123456789", 200)
	ranges := rangeList{
		{Start: 0, End: 10, Owner: ownerA},
		{Start: 2, End: 5, Owner: ownerB},
	}
	assert.Equal(t, ownerB, Resolve(xAt(3), 5, viewID, p, ranges))
	assert.Equal(t, ownerA, Resolve(xAt(7), 5, viewID, p, ranges))
}

func TestResolveTieBreaksOnEnumerationOrder(t *testing.T) {
	p := paragraph("0123456789", 200)
	ranges := rangeList{
		{Start: 0, End: 5, Owner: ownerA},
		{Start: 0, End: 5, Owner: ownerB},
	}
	assert.Equal(t, ownerB, Resolve(xAt(2), 5, viewID, p, ranges))

	reversed := rangeList{ranges[1], ranges[0]}
	assert.Equal(t, ownerA, Resolve(xAt(2), 5, viewID, p, reversed))
}

func TestResolveBoundaries(t *testing.T) {
	p := paragraph("0123456789", 200)

	closed := rangeList{{Start: 0, End: 5, Owner: ownerA}}
	assert.Equal(t, viewID, Resolve(xAt(5), 5, viewID, p, closed), "index == end is excluded")

	next := rangeList{
		{Start: 0, End: 5, Owner: ownerA},
		{Start: 5, End: 8, Owner: ownerC},
	}
	assert.Equal(t, ownerC, Resolve(xAt(5), 5, viewID, p, next), "index == start is included")
}

func TestResolveWithoutRanges(t *testing.T) {
	p := paragraph("0123456789", 200)
	assert.Equal(t, viewID, Resolve(xAt(3), 5, viewID, p, rangeList{}))
	assert.Equal(t, viewID, Resolve(xAt(3), 5, viewID, p, nil))
	assert.Equal(t, viewID, Resolve(xAt(3), 5, viewID, nil, rangeList{}))
}

func TestResolveOnWrappedLine(t *testing.T) {
	// "hello" / "world": the second line starts at offset 6
	p := paragraph("hello world", 60)
	ranges := rangeList{
		{Start: 0, End: 11, Owner: ownerA},
		{Start: 6, End: 11, Owner: ownerB},
	}
	assert.Equal(t, ownerA, Resolve(xAt(1), 5, viewID, p, ranges))
	assert.Equal(t, ownerB, Resolve(xAt(1), 15, viewID, p, ranges))
}

func TestResolveIsStable(t *testing.T) {
	p := paragraph("0123456789", 200)
	ranges := rangeList{
		{Start: 0, End: 10, Owner: ownerA},
		{Start: 2, End: 5, Owner: ownerB},
		{Start: 2, End: 5, Owner: ownerC},
	}
	first := Resolve(xAt(3), 5, viewID, p, ranges)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Resolve(xAt(3), 5, viewID, p, ranges))
	}
	assert.Equal(t, ownerC, first)
}
