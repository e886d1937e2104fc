package decoration

import (
	"image/color"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/spantext/layout"
)

type monoMeasurer struct{}

func (monoMeasurer) TextWidth(s string) float64 { return float64(utf8.RuneCountInString(s)) * 10 }

type segment struct {
	x0, y0, x1, y1 float64
	width          float64
	dashes         int
}

type recorder struct {
	segments []segment
	strokes  map[*Stroke]bool
}

func (r *recorder) DrawSegment(x0, y0, x1, y1 float64, s *Stroke) {
	if r.strokes == nil {
		r.strokes = map[*Stroke]bool{}
	}
	r.strokes[s] = true
	r.segments = append(r.segments, segment{x0, y0, x1, y1, s.Width, len(s.Dashes)})
}

func paragraph(text string, width float64, align layout.Align) *layout.Paragraph {
	return layout.NewParagraph(text, monoMeasurer{}, layout.FontMetrics{Ascent: 8, LineHeight: 10},
		layout.TextStyle{LineHeight: 12, Width: width, Align: align})
}

func TestRenderOneSegmentPerLine(t *testing.T) {
	p := paragraph("hello world again", 60, layout.AlignLeft)
	rec := &recorder{}
	Render(p, Config{Line: LineUnderline}, &Stroke{}, rec)

	require.Len(t, rec.segments, p.LineCount())
	for i, seg := range rec.segments {
		_, _, baseline := p.LineVerticalExtent(i)
		assert.Equal(t, baseline+StrokeWidth, seg.y0, "line %d", i)
		assert.Equal(t, seg.y0, seg.y1, "line %d", i)
		assert.Equal(t, 0.0, seg.x0, "line %d", i)
		assert.Equal(t, 50.0, seg.x1, "line %d", i)
		assert.Equal(t, StrokeWidth, seg.width)
	}
}

func TestRenderWithoutLineDrawsNothing(t *testing.T) {
	p := paragraph("hello world again", 60, layout.AlignLeft)
	rec := &recorder{}
	Render(p, Config{Line: LineNone, Style: StyleDashed}, &Stroke{}, rec)
	assert.Empty(t, rec.segments)
}

func TestRenderAllLineVariantsUseSamePosition(t *testing.T) {
	p := paragraph("hello", 100, layout.AlignLeft)
	var ys []float64
	for _, l := range []Line{LineUnderline, LineThrough, LineUnderlineAndThrough} {
		rec := &recorder{}
		Render(p, Config{Line: l}, &Stroke{}, rec)
		require.Len(t, rec.segments, 1)
		ys = append(ys, rec.segments[0].y0)
	}
	assert.Equal(t, []float64{9, 9, 9}, ys)
}

func TestRenderSkipsEmptyLines(t *testing.T) {
	p := paragraph("foo\n\nbar", 100, layout.AlignLeft)
	rec := &recorder{}
	Render(p, Config{Line: LineUnderline}, &Stroke{}, rec)
	require.Len(t, rec.segments, 2)
	assert.Equal(t, 9.0, rec.segments[0].y0)
	assert.Equal(t, 9.0+2*12, rec.segments[1].y0)
}

// 单字符行的下一个字符位于下一行行首时，估算会塌缩为零长度，此时退回行的水平范围。
func TestRenderSingleCharacterLinesFallBackToExtent(t *testing.T) {
	p := paragraph("abcd", 10, layout.AlignLeft)
	require.Equal(t, 4, p.LineCount())
	rec := &recorder{}
	Render(p, Config{Line: LineUnderline}, &Stroke{}, rec)
	require.Len(t, rec.segments, 4)
	for _, seg := range rec.segments {
		assert.Equal(t, 0.0, seg.x0)
		assert.Equal(t, 10.0, seg.x1)
	}
}

// advances 按字符给出宽度，未列出的字符宽度为 5。
type advances map[rune]float64

func (a advances) TextWidth(s string) float64 {
	w := 0.0
	for _, r := range s {
		if v, ok := a[r]; ok {
			w += v
		} else {
			w += 5
		}
	}
	return w
}

// 右对齐时下一行更窄，下一行行首可能落在当前行起点右侧，单字符行仍须覆盖整个字形。
func TestRenderSingleCharacterLineWithNarrowerNextLine(t *testing.T) {
	p := layout.NewParagraph("Wi", advances{'W': 10, 'i': 3}, layout.FontMetrics{Ascent: 8, LineHeight: 10},
		layout.TextStyle{LineHeight: 10, Width: 11, Align: layout.AlignRight, Wrap: layout.WrapBreakWord})
	require.Equal(t, 2, p.LineCount())
	rec := &recorder{}
	Render(p, Config{Line: LineUnderline}, &Stroke{}, rec)
	require.Len(t, rec.segments, 2)
	assert.Equal(t, 1.0, rec.segments[0].x0)
	assert.Equal(t, 11.0, rec.segments[0].x1)
	assert.Equal(t, 8.0, rec.segments[1].x0)
	assert.Equal(t, 11.0, rec.segments[1].x1)
}

func TestRenderFollowsAlignment(t *testing.T) {
	p := paragraph("abc", 100, layout.AlignCenter)
	rec := &recorder{}
	Render(p, Config{Line: LineUnderline}, &Stroke{}, rec)
	require.Len(t, rec.segments, 1)
	assert.Equal(t, 35.0, rec.segments[0].x0)
	assert.Equal(t, 65.0, rec.segments[0].x1)
}

func TestRenderReusesStroke(t *testing.T) {
	p := paragraph("hello world again", 60, layout.AlignLeft)
	stroke := &Stroke{Color: color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}}
	rec := &recorder{}

	Render(p, Config{Line: LineUnderline, Style: StyleDashed}, stroke, rec)
	assert.Equal(t, []float64{3, 3, 3, 3}, stroke.Dashes)
	backing := cap(stroke.Dashes)

	Render(p, Config{Line: LineUnderline, Style: StyleSolid}, stroke, rec)
	assert.Empty(t, stroke.Dashes)
	assert.Equal(t, backing, cap(stroke.Dashes))

	assert.Len(t, rec.strokes, 1, "every segment must share the host stroke")
	assert.Equal(t, color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}, stroke.Color, "color is owned by the host")
	assert.Equal(t, 4, rec.segments[0].dashes)
	assert.Equal(t, 0, rec.segments[len(rec.segments)-1].dashes)
}

func TestRenderIgnoresDecorationColor(t *testing.T) {
	p := paragraph("hello", 100, layout.AlignLeft)
	text := color.RGBA{A: 0xff}
	stroke := &Stroke{Color: text}
	Render(p, Config{Line: LineUnderline, Color: &color.RGBA{R: 0xff, A: 0xff}}, stroke, &recorder{})
	assert.Equal(t, text, stroke.Color)
}

func TestRenderIsDeterministic(t *testing.T) {
	p := paragraph("hello world again", 60, layout.AlignRight)
	cfg := Config{Line: LineThrough, Style: StyleDotted}
	stroke := &Stroke{}
	a, b := &recorder{}, &recorder{}
	Render(p, cfg, stroke, a)
	Render(p, cfg, stroke, b)
	assert.Equal(t, a.segments, b.segments)
}

func TestRenderToleratesMissingCollaborators(t *testing.T) {
	p := paragraph("hello", 100, layout.AlignLeft)
	assert.NotPanics(t, func() {
		Render(nil, Config{Line: LineUnderline}, &Stroke{}, &recorder{})
		Render(p, Config{Line: LineUnderline}, nil, &recorder{})
		Render(p, Config{Line: LineUnderline}, &Stroke{}, nil)
	})
}
