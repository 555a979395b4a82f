package infra

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComplexCompare(t *testing.T) {
	var c1 complex128 = complex(1.0, 2.0) // 1.0+2.0i
	var c2 complex128 = complex(1.1, 2.0) // 1.1+2.0i
	_c1 := math.Hypot(real(c1), imag(c1))
	_c2 := math.Hypot(real(c2), imag(c2))
	assert.Greater(t, _c2, _c1)
}

func TestLessFunc(t *testing.T) {
	less := LessFunc[int](OrderedKeyLess[int])
	assert.True(t, less(1, 2))
	assert.False(t, less(2, 1))
	assert.True(t, less.Equivalent(3, 3))
	assert.False(t, less.Equivalent(3, 4))

	desc := less.Reverse()
	assert.True(t, desc(2, 1))
	assert.False(t, desc(1, 2))

	var cmp OrderedKeyComparator[string] = func(i, j string) int64 {
		if i == j {
			return 0
		} else if i < j {
			return -1
		}
		return 1
	}
	assert.True(t, cmp.Less()("a", "b"))
	assert.False(t, cmp.Less()("b", "a"))
	assert.True(t, cmp.Less().Equivalent("a", "a"))
}
