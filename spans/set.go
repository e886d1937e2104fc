// Package spans holds tagged character ranges in document order and builds
// them from nested span trees.
package spans

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ByLCY/spantext/layout"
)

// ErrInvalidRange is returned when a range starts after it ends or starts before 0.
var ErrInvalidRange = errors.New("invalid tagged range")

// Set is an immutable sequence of tagged ranges. Ranges are enumerated in the
// order they were given, which callers rely on to break ties between ranges of
// equal length.
type Set struct {
	ranges []layout.TaggedRange
}

var _ layout.RangeSet = (*Set)(nil)

// NewSet validates ranges and copies them into a Set.
func NewSet(ranges ...layout.TaggedRange) (*Set, error) {
	for i, r := range ranges {
		if r.Start < 0 || r.Start > r.End {
			return nil, fmt.Errorf("range %d [%d,%d): %w", i, r.Start, r.End, ErrInvalidRange)
		}
	}
	return &Set{ranges: append([]layout.TaggedRange(nil), ranges...)}, nil
}

// Len returns the number of ranges.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ranges)
}

// Ranges returns a copy of all ranges in enumeration order.
func (s *Set) Ranges() []layout.TaggedRange {
	if s == nil {
		return nil
	}
	return append([]layout.TaggedRange(nil), s.ranges...)
}

// RangesOverlapping returns every range with Start <= index <= End, in order.
func (s *Set) RangesOverlapping(index int) []layout.TaggedRange {
	return s.AppendOverlapping(nil, index)
}

// AppendOverlapping is RangesOverlapping appending into dst, so that callers
// on a hot path can reuse a buffer.
func (s *Set) AppendOverlapping(dst []layout.TaggedRange, index int) []layout.TaggedRange {
	if s == nil {
		return dst
	}
	for _, r := range s.ranges {
		if r.Touches(index) {
			dst = append(dst, r)
		}
	}
	return dst
}

// MarshalJSON 以区间数组形式输出，便于调试 JSON。
func (s *Set) MarshalJSON() ([]byte, error) {
	ranges := s.Ranges()
	if ranges == nil {
		ranges = []layout.TaggedRange{}
	}
	return json.Marshal(ranges)
}
