package fonts

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-fonts/latin-modern/lmmono10regular"
	"github.com/go-fonts/latin-modern/lmroman10bold"
	"github.com/go-fonts/latin-modern/lmroman10italic"
	"github.com/go-fonts/latin-modern/lmroman10regular"
	"github.com/go-fonts/latin-modern/lmsans10bold"
	"github.com/go-fonts/latin-modern/lmsans10oblique"
	"github.com/go-fonts/latin-modern/lmsans10regular"
)

// DefaultName 是未指定字体时使用的内置字体。
const DefaultName = "lmsans10regular"

var builtin = map[string][]byte{
	"lmsans10regular":  lmsans10regular.TTF,
	"lmsans10bold":     lmsans10bold.TTF,
	"lmsans10oblique":  lmsans10oblique.TTF,
	"lmroman10regular": lmroman10regular.TTF,
	"lmroman10bold":    lmroman10bold.TTF,
	"lmroman10italic":  lmroman10italic.TTF,
	"lmmono10regular":  lmmono10regular.TTF,
}

// Load 返回内置字体的字节数据，name 可写为 "embed:lmroman10regular" 或直接 "lmroman10regular"。
func Load(name string) ([]byte, error) {
	key := strings.ToLower(strings.TrimSuffix(strings.TrimPrefix(name, "embed:"), ".ttf"))
	data, ok := builtin[key]
	if !ok {
		return nil, fmt.Errorf("未找到内置字体 %s（可选：%s）", name, strings.Join(Names(), ", "))
	}
	return data, nil
}

// Default returns the bytes of DefaultName.
func Default() []byte { return builtin[DefaultName] }

// Names lists the embedded font names in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
