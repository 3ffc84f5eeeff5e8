package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOneYieldsExactlyOnce(t *testing.T) {
	o := One(42)
	assert.False(t, o.IsMany())
	assert.Equal(t, 1, o.Len())

	it := o.Iter()
	v, ok := it.Next()
	assert.True(t, ok)
	assert.Equal(t, 42, v)

	// exhausted forever
	for i := 0; i < 3; i++ {
		_, ok = it.Next()
		assert.False(t, ok)
	}
}

func TestManyYieldsAllElements(t *testing.T) {
	o := Many([]string{"a", "b", "c"})
	assert.True(t, o.IsMany())
	assert.Equal(t, 3, o.Len())

	// yield order is unspecified; compare as a set
	assert.ElementsMatch(t, []string{"a", "b", "c"}, o.Slice())
}

func TestEmptyManyIsEmpty(t *testing.T) {
	it := Many[int](nil).Iter()
	_, ok := it.Next()
	assert.False(t, ok)
}

func TestIterIsSinglePass(t *testing.T) {
	o := Many([]int{1, 2, 3})

	it := o.Iter()
	_, ok := it.Next()
	assert.True(t, ok)
	// dropping it part-way is fine; the container itself is untouched
	assert.Equal(t, 3, o.Len())
	assert.Len(t, o.Slice(), 3)
}
