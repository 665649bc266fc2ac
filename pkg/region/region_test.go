package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegionSet(t *testing.T) {
	var zero Region
	assert.True(t, zero.Empty())
	assert.False(t, zero.Contains(0))
	_, ok := zero.Min()
	assert.False(t, ok)

	r := New(5, 1, 3, 3)
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, []int{1, 3, 5}, r.Values())
	lo, _ := r.Min()
	hi, _ := r.Max()
	assert.Equal(t, 1, lo)
	assert.Equal(t, 5, hi)

	u := Range(0, 2).Union(Range(8, 10))
	assert.Equal(t, []int{0, 1, 2, 8, 9, 10}, u.Values())
	assert.True(t, Range(3, 2).Empty())
	// union does not alias its inputs
	assert.Equal(t, 3, Range(0, 2).Len())
}
