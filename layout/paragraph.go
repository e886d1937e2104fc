package layout

import (
	"math"
	"sort"
)

// FontMetrics 是排版段落所需的字体度量（设备单位）。
type FontMetrics struct {
	Ascent     float64
	LineHeight float64 // 字形盒高度（ascent + descent + line gap）
}

// Paragraph 是一段已折行文本的几何模型，实现 Query。
// 行在垂直方向依次堆叠：首行顶部为 0，其余行之前插入 max(style.LineHeight-字形盒高度, 0) 的行距。
// 行距归属其后一行的垂直判定带。
type Paragraph struct {
	text    []rune
	measure Measurer
	lines   []paragraphLine
	width   float64
	height  float64
}

type paragraphLine struct {
	lineSpan
	left     float64
	top      float64
	bottom   float64
	baseline float64
}

var _ Query = (*Paragraph)(nil)

// NewParagraph 排版 text。m 负责测量宽度，metrics 给出字形盒与基线位置。
func NewParagraph(text string, m Measurer, metrics FontMetrics, style TextStyle) *Paragraph {
	runes := []rune(text)
	spans := wrapText(runes, style.Width, m, style.Wrap)

	textHeight := metrics.LineHeight
	if textHeight <= 0 {
		textHeight = style.LineHeight
	}
	leading := math.Max(style.LineHeight-textHeight, 0)

	p := &Paragraph{text: runes, measure: m, lines: make([]paragraphLine, 0, len(spans))}
	cursor := 0.0
	for i, sp := range spans {
		if i > 0 {
			cursor += leading
		}
		ln := paragraphLine{
			lineSpan: sp,
			left:     alignOffset(style.Width, sp.width, style.Align),
			top:      cursor,
			bottom:   cursor + textHeight,
			baseline: cursor + metrics.Ascent,
		}
		p.lines = append(p.lines, ln)
		cursor = ln.bottom
		if w := ln.left + sp.width; w > p.width {
			p.width = w
		}
	}
	if style.Width > 0 {
		p.width = style.Width
	}
	p.height = cursor
	return p
}

func alignOffset(container, width float64, align Align) float64 {
	if container <= 0 || width >= container {
		return 0
	}
	switch align {
	case AlignCenter:
		return (container - width) / 2
	case AlignRight:
		return container - width
	default:
		return 0
	}
}

// Text returns the laid out text.
func (p *Paragraph) Text() string { return string(p.text) }

// Len 返回文本的字符数。
func (p *Paragraph) Len() int { return len(p.text) }

// Size 返回段落的整体宽高。
func (p *Paragraph) Size() (width, height float64) { return p.width, p.height }

// LineText returns the visible content of line i.
func (p *Paragraph) LineText(i int) string {
	ln := p.lines[i]
	return string(p.text[ln.start:ln.end])
}

func (p *Paragraph) LineCount() int { return len(p.lines) }

func (p *Paragraph) LineForVertical(y float64) (int, bool) {
	if len(p.lines) == 0 || y < 0 || y >= p.height {
		return 0, false
	}
	// 第一个判定带底部超过 y 的行
	i := sort.Search(len(p.lines), func(i int) bool { return p.lines[i].bottom > y })
	if i == len(p.lines) {
		return 0, false
	}
	return i, true
}

func (p *Paragraph) LineHorizontalExtent(line int) (float64, float64) {
	ln := p.lines[line]
	return ln.left, ln.left + ln.width
}

func (p *Paragraph) OffsetForHorizontal(line int, x float64) int {
	ln := p.lines[line]
	rel := x - ln.left
	best, bestDist := ln.start, math.Abs(rel)
	for k := ln.start + 1; k <= ln.end; k++ {
		w := p.measure.TextWidth(string(p.text[ln.start:k]))
		d := math.Abs(w - rel)
		if d < bestDist {
			best, bestDist = k, d
		}
		if w >= rel {
			break
		}
	}
	return best
}

func (p *Paragraph) PrimaryHorizontal(offset int) float64 {
	if len(p.lines) == 0 {
		return 0
	}
	if offset < 0 {
		offset = 0
	}
	if offset > len(p.text) {
		offset = len(p.text)
	}
	// 行首相同的情况下，offset 归属最后一个起点不大于它的行
	i := sort.Search(len(p.lines), func(i int) bool { return p.lines[i].start > offset }) - 1
	if i < 0 {
		i = 0
	}
	ln := p.lines[i]
	end := min(offset, ln.end)
	if end <= ln.start {
		return ln.left
	}
	return ln.left + p.measure.TextWidth(string(p.text[ln.start:end]))
}

func (p *Paragraph) LineVerticalExtent(line int) (float64, float64, float64) {
	ln := p.lines[line]
	return ln.top, ln.bottom, ln.baseline
}

func (p *Paragraph) LineCharExtent(line int) (int, int) {
	ln := p.lines[line]
	return ln.start, ln.end
}
