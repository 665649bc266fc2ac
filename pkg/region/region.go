// Package region models rejection regions: immutable sets of outcome counts.
package region

import "sort"

// Region is an immutable set of outcome counts. The zero value is empty.
type Region struct {
	members map[int]struct{}
}

func New(ks ...int) Region {
	m := make(map[int]struct{}, len(ks))
	for _, k := range ks {
		m[k] = struct{}{}
	}
	return Region{members: m}
}

// Range returns {lo, ..., hi}; empty when hi < lo.
func Range(lo, hi int) Region {
	m := map[int]struct{}{}
	for k := lo; k <= hi; k++ {
		m[k] = struct{}{}
	}
	return Region{members: m}
}

func (r Region) Union(o Region) Region {
	m := make(map[int]struct{}, len(r.members)+len(o.members))
	for k := range r.members {
		m[k] = struct{}{}
	}
	for k := range o.members {
		m[k] = struct{}{}
	}
	return Region{members: m}
}

func (r Region) Contains(k int) bool {
	_, ok := r.members[k]
	return ok
}

func (r Region) Len() int { return len(r.members) }

func (r Region) Empty() bool { return len(r.members) == 0 }

// Values returns the members in ascending order.
func (r Region) Values() []int {
	out := make([]int, 0, len(r.members))
	for k := range r.members {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

func (r Region) Min() (int, bool) {
	v := r.Values()
	if len(v) == 0 {
		return 0, false
	}
	return v[0], true
}

func (r Region) Max() (int, bool) {
	v := r.Values()
	if len(v) == 0 {
		return 0, false
	}
	return v[len(v)-1], true
}
