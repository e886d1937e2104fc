package compose

import (
	"github.com/ByLCY/spantext/decoration"
	"github.com/ByLCY/spantext/layout"
	"github.com/ByLCY/spantext/spans"
)

// 该文件定义组版结果，供渲染、触摸探测与调试 JSON 共用。
// 页面坐标单位为毫米；段落内部几何（Lines、Style）为设备单位 pt。

// Result 保存页面与按顺序堆叠的文本视图。
type Result struct {
	Page  Page   `json:"page"`
	Views []View `json:"views"`
	// Overflow 为 true 表示最后的视图超出了页面内容区域。
	Overflow bool `json:"overflow,omitempty"`
}

// Page 记录页面尺寸与边距（mm）。
type Page struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Margin Margin  `json:"margin"`
}

// Margin 以毫米为单位。
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// View 是一个已排版的文本视图。
type View struct {
	ID         layout.OwnerID       `json:"id"`
	X          float64              `json:"x"`
	Y          float64              `json:"y"`
	Width      float64              `json:"width"`
	Height     float64              `json:"height"`
	Text       string               `json:"text"`
	Ranges     *spans.Set           `json:"ranges"`
	Font       layout.FontResource  `json:"font"`
	Style      layout.TextStyle     `json:"style"`
	Color      layout.Color         `json:"color"`
	Decoration DecorationSpec       `json:"decoration"`
	Lines      []layout.LineMetrics `json:"lines"`
	Paragraph  *layout.Paragraph    `json:"-"`
}

// DecorationSpec 是视图上声明的装饰配置，Color 为空表示未设置。
type DecorationSpec struct {
	Line  decoration.Line  `json:"line"`
	Style decoration.Style `json:"style"`
	Color *layout.Color    `json:"color,omitempty"`
}

// Contains reports whether the page point (x, y) in mm lies inside the view box.
func (v View) Contains(x, y float64) bool {
	return x >= v.X && x < v.X+v.Width && y >= v.Y && y < v.Y+v.Height
}
