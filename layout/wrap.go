package layout

import (
	"math"
	"unicode"
)

// Measurer 测量一段文本的排版宽度。*canvas.FontFace 直接满足该接口。
type Measurer interface {
	TextWidth(s string) float64
}

// lineSpan 是折行后的一行：[start, end) 为 rune 偏移，width 为内容宽度。
type lineSpan struct {
	start int
	end   int
	width float64
}

type wrapper struct {
	text  []rune
	limit float64
	m     Measurer
	lines []lineSpan
}

func (w *wrapper) measure(a, b int) float64 {
	if b <= a {
		return 0
	}
	return w.m.TextWidth(string(w.text[a:b]))
}

func (w *wrapper) emit(a, b int) {
	w.lines = append(w.lines, lineSpan{start: a, end: b, width: w.measure(a, b)})
}

// wrapText 按显式换行切分段落后，再依 mode 在 limit 宽度内贪心折行。
// 换行符（以及紧邻的 \r）不属于任何一行；软折行处的空白也不计入行尾。
func wrapText(text []rune, limit float64, m Measurer, mode WrapMode) []lineSpan {
	if limit <= 0 {
		limit = math.MaxFloat64
	}
	w := &wrapper{text: text, limit: limit, m: m}
	start := 0
	for i := 0; i <= len(text); i++ {
		if i < len(text) && text[i] != '\n' {
			continue
		}
		end := i
		if end > start && text[end-1] == '\r' {
			end--
		}
		switch mode {
		case WrapNone:
			w.emit(start, end)
		case WrapBreakWord:
			w.breakRunes(start, end)
		default:
			w.greedy(start, end)
		}
		start = i + 1
	}
	return w.lines
}

// breakRunes 纯按宽度切分 [a, b)，每行至少包含一个字符。
func (w *wrapper) breakRunes(a, b int) {
	if a == b {
		w.emit(a, b)
		return
	}
	for a < b {
		j := w.fit(a, b)
		w.emit(a, j)
		a = j
	}
}

// fit returns the largest j in (a, b] such that [a, j) fits the limit, and at least a+1.
func (w *wrapper) fit(a, b int) int {
	j := a + 1
	for j < b && w.measure(a, j+1) <= w.limit {
		j++
	}
	return j
}

// greedy 优先在空白处折行，单词超过整行宽度时在词内拆分。
func (w *wrapper) greedy(a, b int) {
	emitted := len(w.lines)
	start, end := a, a
	for _, tok := range tokenize(w.text, a, b) {
		if end > start && w.measure(start, tok.end) > w.limit {
			w.emit(start, trimSpaceEnd(w.text, start, end))
			start, end = tok.start, tok.start
			if tok.space {
				start, end = tok.end, tok.end
				continue
			}
		}
		if tok.space || w.measure(start, tok.end) <= w.limit {
			end = tok.end
			continue
		}
		// 单词本身比整行还宽：逐字拆分，余下部分留在当前行继续累积
		i := tok.start
		for {
			j := w.fit(i, tok.end)
			if j == tok.end {
				start, end = i, j
				break
			}
			w.emit(i, j)
			i = j
		}
	}
	// 软折行后只剩空白时不再产生空行；整段为空时仍保留一行
	if start == end && len(w.lines) > emitted {
		return
	}
	w.emit(start, end)
}

type token struct {
	start int
	end   int
	space bool
}

// tokenize 将 [a, b) 切成交替的空白/非空白片段。
func tokenize(text []rune, a, b int) []token {
	var tokens []token
	for i := a; i < b; {
		space := unicode.IsSpace(text[i])
		j := i + 1
		for j < b && unicode.IsSpace(text[j]) == space {
			j++
		}
		tokens = append(tokens, token{start: i, end: j, space: space})
		i = j
	}
	return tokens
}

func trimSpaceEnd(text []rune, a, b int) int {
	for b > a && unicode.IsSpace(text[b-1]) {
		b--
	}
	return b
}
