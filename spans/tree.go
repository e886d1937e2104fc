package spans

import (
	"strings"
	"unicode/utf8"

	"github.com/ByLCY/spantext/layout"
)

// Node is one node of a span tree. A node renders its own Text first, then
// its Children in order. A tagged node owns the characters of its Text and of
// all its descendants.
type Node struct {
	Text     string
	Owner    layout.OwnerID
	Tagged   bool
	Children []Node
}

// Text returns an untagged leaf.
func Text(s string) Node { return Node{Text: s} }

// Tag returns a node owned by owner wrapping children.
func Tag(owner layout.OwnerID, children ...Node) Node {
	return Node{Owner: owner, Tagged: true, Children: children}
}

// PlainText returns the concatenation of all text in the tree.
func (n Node) PlainText() string {
	var b strings.Builder
	n.writeText(&b)
	return b.String()
}

func (n Node) writeText(b *strings.Builder) {
	b.WriteString(n.Text)
	for _, c := range n.Children {
		c.writeText(b)
	}
}

// Flatten 将 span 树展开为纯文本与区间集合。
// 区间按先序（外层先于内层）排列，因此同长度时内层元素排在后面。
func Flatten(root Node) (string, *Set) {
	f := flattener{}
	f.walk(root)
	return f.b.String(), &Set{ranges: f.ranges}
}

type flattener struct {
	b      strings.Builder
	pos    int
	ranges []layout.TaggedRange
}

func (f *flattener) walk(n Node) {
	idx := -1
	if n.Tagged {
		idx = len(f.ranges)
		f.ranges = append(f.ranges, layout.TaggedRange{Start: f.pos, End: f.pos, Owner: n.Owner})
	}
	f.b.WriteString(n.Text)
	f.pos += utf8.RuneCountInString(n.Text)
	for _, c := range n.Children {
		f.walk(c)
	}
	if idx >= 0 {
		f.ranges[idx].End = f.pos
	}
}
