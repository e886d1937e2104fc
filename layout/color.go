package layout

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ParseColor 解析 #rgb / #rrggbb 十六进制颜色或 SVG 颜色名（例如 navy）。
func ParseColor(value string) (Color, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Color{}, fmt.Errorf("颜色为空")
	}
	if !strings.HasPrefix(v, "#") {
		named, ok := colornames.Map[v]
		if !ok {
			return Color{}, fmt.Errorf("未知颜色 %q", value)
		}
		return Color{R: int(named.R), G: int(named.G), B: int(named.B)}, nil
	}
	c, err := colorful.Hex(v)
	if err != nil {
		return Color{}, fmt.Errorf("无法解析颜色 %q: %w", value, err)
	}
	r, g, b := c.RGB255()
	return Color{R: int(r), G: int(g), B: int(b)}, nil
}

// Hex formats c as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
