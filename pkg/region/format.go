package region

import "fmt"

type Shape int

const (
	ShapeEmpty Shape = iota
	ShapeTwoTailed
	ShapeLeftTail
	ShapeRightTail
	// ShapeIrregular means neither 0 nor n is in the region.
	ShapeIrregular
)

func (s Shape) String() string {
	switch s {
	case ShapeEmpty:
		return "empty"
	case ShapeTwoTailed:
		return "two_tailed"
	case ShapeLeftTail:
		return "left_tail"
	case ShapeRightTail:
		return "right_tail"
	case ShapeIrregular:
		return "irregular"
	}
	return fmt.Sprintf("shape(%d)", int(s))
}

// Layout is the tail decomposition of a region within {0, ..., N}.
// Left is the end of the run {0..Left}, Right the start of {Right..N};
// Min and Max are only set for ShapeIrregular.
type Layout struct {
	Shape Shape
	N     int
	Left  int
	Right int
	Min   int
	Max   int
}

// Classify finds the left tail {0..l} and right tail {r..n} by extending
// inward from each boundary while membership holds. Members between the
// two runs are not inspected, so {0,1,3,5,n} classifies as two-tailed
// with l=1 and r=n.
func Classify(k Region, n int) Layout {
	out := Layout{N: n}
	if k.Empty() {
		out.Shape = ShapeEmpty
		return out
	}
	hasLeft, hasRight := k.Contains(0), k.Contains(n)
	if hasLeft {
		l := 0
		for l < n && k.Contains(l+1) {
			l++
		}
		out.Left = l
	}
	if hasRight {
		r := n
		for r > 0 && k.Contains(r-1) {
			r--
		}
		out.Right = r
	}
	switch {
	case hasLeft && hasRight:
		out.Shape = ShapeTwoTailed
	case hasLeft:
		out.Shape = ShapeLeftTail
	case hasRight:
		out.Shape = ShapeRightTail
	default:
		out.Shape = ShapeIrregular
		out.Min, _ = k.Min()
		out.Max, _ = k.Max()
	}
	return out
}

// Format renders a region as LaTeX tail-interval notation, e.g.
// $K=\{0,\dots,2\}\cup\{8,\dots,10\}$. Regions touching neither 0 nor n
// fall back to $K\subseteq\{0,\dots,n\},\;\min(K)=a,\;\max(K)=b$.
func Format(k Region, n int) string {
	return Classify(k, n).LaTeX()
}

// FormatPlain renders the same cases as Format in Unicode text.
func FormatPlain(k Region, n int) string {
	return Classify(k, n).Plain()
}

func (l Layout) LaTeX() string {
	switch l.Shape {
	case ShapeEmpty:
		return `$K=\emptyset$`
	case ShapeTwoTailed:
		return fmt.Sprintf(`$K=\{0,\dots,%d\}\cup\{%d,\dots,%d\}$`, l.Left, l.Right, l.N)
	case ShapeLeftTail:
		return fmt.Sprintf(`$K=\{0,\dots,%d\}$`, l.Left)
	case ShapeRightTail:
		return fmt.Sprintf(`$K=\{%d,\dots,%d\}$`, l.Right, l.N)
	}
	return fmt.Sprintf(`$K\subseteq\{0,\dots,%d\},\;\min(K)=%d,\;\max(K)=%d$`, l.N, l.Min, l.Max)
}

func (l Layout) Plain() string {
	switch l.Shape {
	case ShapeEmpty:
		return "K = ∅"
	case ShapeTwoTailed:
		return fmt.Sprintf("K = {0,…,%d} ∪ {%d,…,%d}", l.Left, l.Right, l.N)
	case ShapeLeftTail:
		return fmt.Sprintf("K = {0,…,%d}", l.Left)
	case ShapeRightTail:
		return fmt.Sprintf("K = {%d,…,%d}", l.Right, l.N)
	}
	return fmt.Sprintf("K ⊆ {0,…,%d}, min(K)=%d, max(K)=%d (not tail-shaped)", l.N, l.Min, l.Max)
}
