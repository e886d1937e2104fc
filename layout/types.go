package layout

// 该文件定义触摸解析与装饰线绘制共用的几何与区间抽象。

// OwnerID 是不透明的归属标识，通常对应产生该段文本的逻辑元素（例如视图 id）。
type OwnerID int

// TaggedRange 描述已渲染文本中的一个半开字符区间 [Start, End) 及其归属。
// 偏移以 rune 计，从 0 开始。区间之间可以任意嵌套或交叠；调用方需保证 Start <= End。
type TaggedRange struct {
	Start int     `json:"start"`
	End   int     `json:"end"`
	Owner OwnerID `json:"owner"`
}

// Len 返回区间长度（字符数）。
func (r TaggedRange) Len() int { return r.End - r.Start }

// Touches reports whether the range touches index, i.e. Start <= index <= End.
func (r TaggedRange) Touches(index int) bool { return r.Start <= index && index <= r.End }

// RangeSet 按枚举顺序返回与某个字符位置相交的区间。
// 枚举顺序（文档顺序/插入顺序）是契约的一部分：同长度候选的取舍依赖它。
type RangeSet interface {
	RangesOverlapping(index int) []TaggedRange
}

// LineMetrics 是单个可视行的排版结果。
type LineMetrics struct {
	Top      float64 `json:"top"`
	Bottom   float64 `json:"bottom"`
	Baseline float64 `json:"baseline"`
	Start    int     `json:"start"` // 行首字符偏移
	End      int     `json:"end"`   // 行尾（不含折行空白与换行符）
	Left     float64 `json:"left"`
	Right    float64 `json:"right"`
}

// Query 是排版引擎对外暴露的查询能力，所有坐标都相对于段落左上角。
type Query interface {
	// LineCount returns the number of visual lines.
	LineCount() int
	// LineForVertical returns the line whose vertical band contains y.
	// ok is false when there are no lines or y lies outside the text block.
	LineForVertical(y float64) (line int, ok bool)
	// LineHorizontalExtent returns the horizontal extent of the glyphs on line.
	LineHorizontalExtent(line int) (left, right float64)
	// OffsetForHorizontal maps x to the nearest character boundary on line.
	OffsetForHorizontal(line int, x float64) int
	// PrimaryHorizontal returns the x position of the character boundary offset.
	PrimaryHorizontal(offset int) float64
	// LineVerticalExtent returns the glyph box and baseline of line.
	LineVerticalExtent(line int) (top, bottom, baseline float64)
	// LineCharExtent returns the half-open character extent of line.
	LineCharExtent(line int) (start, end int)
}

// LineAt collects the metrics of line i from q.
func LineAt(q Query, i int) LineMetrics {
	top, bottom, baseline := q.LineVerticalExtent(i)
	start, end := q.LineCharExtent(i)
	left, right := q.LineHorizontalExtent(i)
	return LineMetrics{
		Top:      top,
		Bottom:   bottom,
		Baseline: baseline,
		Start:    start,
		End:      end,
		Left:     left,
		Right:    right,
	}
}

// Lines 返回 q 的全部行度量，主要用于调试输出。
func Lines(q Query) []LineMetrics {
	n := q.LineCount()
	out := make([]LineMetrics, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, LineAt(q, i))
	}
	return out
}

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// FontResource 描述字体资源，src 可以是文件路径、embed:<name> 或 builtin:<name>。
type FontResource struct {
	Name   string `json:"name"`
	Src    string `json:"src"`
	Style  string `json:"style"`
	Family string `json:"family"`
}
