package compose

import (
	"fmt"
	"strings"

	"github.com/ByLCY/spantext/binding"
	"github.com/ByLCY/spantext/decoration"
	"github.com/ByLCY/spantext/dsl"
	"github.com/ByLCY/spantext/layout"
	"github.com/ByLCY/spantext/spans"
)

const (
	blockSpacing    = 3.0 // 视图之间的默认间距（mm）
	defaultFontSize = 12.0
	defaultMargin   = 20.0
)

// BuildOptions 控制组版。零值字段使用内置默认值。
type BuildOptions struct {
	Typesetter layout.Typesetter
	PageSize   string  // A4 / A5 / Letter，可带 landscape
	Margin     string  // CSS 风格，例如 "10mm 5mm"
	FontSize   float64 // pt
	LineHeight string  // 1.4x 或 18pt
	Color      layout.Color
	Font       layout.FontResource
}

// Build 根据 DSL AST 生成页面与按顺序堆叠的文本视图。
func Build(doc *dsl.Document, data any, opts BuildOptions) (*Result, error) {
	if doc == nil {
		return nil, fmt.Errorf("文档为空")
	}
	if opts.Typesetter == nil {
		return nil, fmt.Errorf("compose: 缺少排版后端 Typesetter")
	}

	page, err := buildPage(firstPage(doc), opts)
	if err != nil {
		return nil, err
	}
	res := &Result{Page: page, Views: []View{}}

	contentWidth := page.Width - page.Margin.Left - page.Margin.Right
	if contentWidth <= 0 {
		return nil, fmt.Errorf("页面内容宽度无效：%.2fmm", contentWidth)
	}
	bottom := page.Height - page.Margin.Bottom
	cursorY := page.Margin.Top
	seen := map[layout.OwnerID]bool{}
	for _, section := range doc.Sections {
		if section.View == nil {
			continue
		}
		id := layout.OwnerID(section.View.ID)
		if seen[id] {
			return nil, fmt.Errorf("%s: view %d 重复定义", section.View.Pos, id)
		}
		seen[id] = true

		view, gap, err := buildView(section.View, contentWidth, data, opts)
		if err != nil {
			return nil, err
		}
		view.X = page.Margin.Left
		view.Y = cursorY
		if view.Y+view.Height > bottom {
			res.Overflow = true
		}
		res.Views = append(res.Views, view)
		cursorY += view.Height + gap
	}
	return res, nil
}

func firstPage(doc *dsl.Document) *dsl.PageSection {
	for _, section := range doc.Sections {
		if section.Page != nil {
			return section.Page
		}
	}
	return nil
}

// buildPage 解析 page 段落；缺省时使用 opts 中的纸张与边距。
func buildPage(section *dsl.PageSection, opts BuildOptions) (Page, error) {
	size := opts.PageSize
	if size == "" {
		size = "A4"
	}
	width, height, err := resolvePageSize(size)
	if err != nil {
		return Page{}, err
	}
	margin := Margin{Top: defaultMargin, Right: defaultMargin, Bottom: defaultMargin, Left: defaultMargin}
	if opts.Margin != "" {
		if margin, err = resolveMargin(opts.Margin); err != nil {
			return Page{}, err
		}
	}
	if section == nil || section.Block == nil {
		return Page{Width: width, Height: height, Margin: margin}, nil
	}

	for _, st := range section.Block.Statements {
		a := st.Assignment
		if a == nil {
			return Page{}, fmt.Errorf("page 段落只允许属性赋值")
		}
		raw := a.Value.Raw()
		switch a.Key {
		case "size":
			width, height, err = resolvePageSize(raw)
		case "width":
			width, err = parseMM(raw)
		case "height":
			height, err = parseMM(raw)
		case "margin":
			margin, err = resolveMargin(raw)
		default:
			err = fmt.Errorf("未知的 page 属性 %q", a.Key)
		}
		if err != nil {
			return Page{}, fmt.Errorf("%s: %w", a.Pos, err)
		}
	}
	if width <= 0 || height <= 0 {
		return Page{}, fmt.Errorf("页面尺寸无效：%.2fmm x %.2fmm", width, height)
	}
	return Page{Width: width, Height: height, Margin: margin}, nil
}

var pagePresets = map[string][2]float64{
	"A4":     {210, 297},
	"A5":     {148, 210},
	"LETTER": {215.9, 279.4},
}

// resolvePageSize 解析 "A4" 或 "A5 landscape" 形式的纸张尺寸。
func resolvePageSize(value string) (float64, float64, error) {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return 0, 0, fmt.Errorf("纸张尺寸为空")
	}
	base, ok := pagePresets[strings.ToUpper(fields[0])]
	if !ok {
		return 0, 0, fmt.Errorf("暂不支持的纸张尺寸：%s", fields[0])
	}
	width, height := base[0], base[1]
	for _, token := range fields[1:] {
		switch strings.ToLower(token) {
		case "landscape":
			width, height = height, width
		case "portrait":
		default:
			return 0, 0, fmt.Errorf("未知的纸张方向：%s", token)
		}
	}
	return width, height, nil
}

// resolveMargin applies CSS-like semantics:
// 1 value: all sides; 2 values: top/bottom, left/right;
// 3 values: top, left/right, bottom; 4 values: top, right, bottom, left.
func resolveMargin(value string) (Margin, error) {
	fields := strings.Fields(value)
	if len(fields) == 0 || len(fields) > 4 {
		return Margin{}, fmt.Errorf("margin 需要 1 到 4 个长度，得到 %q", value)
	}
	vals := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := parseMM(f)
		if err != nil {
			return Margin{}, err
		}
		vals = append(vals, v)
	}
	switch len(vals) {
	case 1:
		v := vals[0]
		return Margin{Top: v, Right: v, Bottom: v, Left: v}, nil
	case 2:
		return Margin{Top: vals[0], Right: vals[1], Bottom: vals[0], Left: vals[1]}, nil
	case 3:
		return Margin{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[1]}, nil
	default:
		return Margin{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[3]}, nil
	}
}

func parseMM(value string) (float64, error) {
	l, err := layout.ParseLength(value)
	if err != nil {
		return 0, err
	}
	if l.Value < 0 {
		return 0, fmt.Errorf("长度不能为负：%s", value)
	}
	return l.ToMM(), nil
}

// viewProps 收集视图属性，长度均已换算。
type viewProps struct {
	width      float64 // mm
	fontSize   layout.Length
	lineHeight layout.LineHeightSpec
	color      layout.Color
	align      layout.Align
	wrap       layout.WrapMode
	font       layout.FontResource
	decoration DecorationSpec
	gap        float64
}

func defaultProps(contentWidth float64, opts BuildOptions) (viewProps, error) {
	size := opts.FontSize
	if size <= 0 {
		size = defaultFontSize
	}
	props := viewProps{
		width:    contentWidth,
		fontSize: layout.Length{Value: size, Unit: layout.UnitPT},
		color:    opts.Color,
		font:     opts.Font,
		gap:      blockSpacing,
	}
	if opts.LineHeight != "" {
		lh, err := layout.ParseLineHeight(opts.LineHeight)
		if err != nil {
			return viewProps{}, err
		}
		props.lineHeight = lh
	}
	return props, nil
}

func (p *viewProps) apply(a *dsl.Assignment, contentWidth float64) error {
	raw := a.Value.Raw()
	var err error
	switch a.Key {
	case "width":
		var w float64
		if w, err = parseMM(raw); err == nil && w > 0 {
			p.width = min(w, contentWidth)
		}
	case "size":
		var l layout.Length
		if l, err = layout.ParseLength(raw); err == nil {
			// 字号缺省单位为 pt
			if l.Unit == layout.UnitNone {
				l.Unit = layout.UnitPT
			}
			if l.Value <= 0 {
				err = fmt.Errorf("字号必须为正数：%s", raw)
			}
			p.fontSize = l
		}
	case "line-height":
		p.lineHeight, err = layout.ParseLineHeight(raw)
	case "color":
		p.color, err = layout.ParseColor(raw)
	case "align":
		p.align = layout.ParseAlign(raw)
	case "wrap":
		p.wrap = layout.ParseWrap(raw)
	case "font":
		p.font = layout.FontResource{Name: raw, Src: raw, Family: raw}
	case "decoration":
		p.decoration.Line, err = decoration.ParseLine(raw)
	case "decoration-style":
		p.decoration.Style, err = decoration.ParseStyle(raw)
	case "decoration-color":
		var c layout.Color
		if c, err = layout.ParseColor(raw); err == nil {
			p.decoration.Color = &c
		}
	case "gap":
		p.gap, err = parseMM(raw)
	default:
		err = fmt.Errorf("未知的 view 属性 %q", a.Key)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", a.Pos, err)
	}
	return nil
}

// buildView 解析视图属性、展开 span 树并排版。返回的 gap 为视图之后的间距（mm）。
func buildView(section *dsl.ViewSection, contentWidth float64, data any, opts BuildOptions) (View, float64, error) {
	props, err := defaultProps(contentWidth, opts)
	if err != nil {
		return View{}, 0, err
	}
	var children []spans.Node
	if section.Block != nil {
		for _, st := range section.Block.Statements {
			if st.Assignment != nil {
				if err := props.apply(st.Assignment, contentWidth); err != nil {
					return View{}, 0, err
				}
				continue
			}
			node, err := buildNode(st, data)
			if err != nil {
				return View{}, 0, err
			}
			children = append(children, node)
		}
	}

	text, ranges := spans.Flatten(spans.Node{Children: children})
	style := layout.TextStyle{
		FontSize:   props.fontSize.ToPT(),
		LineHeight: props.lineHeight.Resolve(props.fontSize, layout.UnitPT),
		Width:      props.width * layout.MmToPt,
		Align:      props.align,
		Wrap:       props.wrap,
	}
	para, err := opts.Typesetter.Typeset(text, props.font, style)
	if err != nil {
		return View{}, 0, fmt.Errorf("view %d 排版失败: %w", section.ID, err)
	}
	_, height := para.Size()

	return View{
		ID:         layout.OwnerID(section.ID),
		Width:      props.width,
		Height:     height * layout.PtToMm,
		Text:       text,
		Ranges:     ranges,
		Font:       props.font,
		Style:      style,
		Color:      props.color,
		Decoration: props.decoration,
		Lines:      layout.Lines(para),
		Paragraph:  para,
	}, props.gap, nil
}

// buildNode 将文本或 span 语句转换为 span 树节点，文本在此处完成数据插值。
func buildNode(st *dsl.Statement, data any) (spans.Node, error) {
	switch {
	case st.Text != nil:
		return spans.Text(binding.Interpolate(string(st.Text.Value), data)), nil
	case st.Span != nil:
		var children []spans.Node
		if st.Span.Block != nil {
			for _, inner := range st.Span.Block.Statements {
				if inner.Assignment != nil {
					return spans.Node{}, fmt.Errorf("%s: span 内不允许属性赋值 %q", inner.Assignment.Pos, inner.Assignment.Key)
				}
				node, err := buildNode(inner, data)
				if err != nil {
					return spans.Node{}, err
				}
				children = append(children, node)
			}
		}
		return spans.Tag(layout.OwnerID(st.Span.Owner), children...), nil
	default:
		return spans.Node{}, fmt.Errorf("无法识别的语句")
	}
}

// ViewAt 返回包含页面坐标 (x, y)（mm）的视图及其相对视图原点的坐标（pt）。
func (r *Result) ViewAt(x, y float64) (*View, float64, float64, bool) {
	if r == nil {
		return nil, 0, 0, false
	}
	for i := range r.Views {
		v := &r.Views[i]
		if v.Contains(x, y) {
			return v, (x - v.X) * layout.MmToPt, (y - v.Y) * layout.MmToPt, true
		}
	}
	return nil, 0, 0, false
}
