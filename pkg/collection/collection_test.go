package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	got := Map([]int{1, 2, 3}, func(n int) int { return n * 10 })
	assert.Equal(t, []int{10, 20, 30}, got)

	assert.Empty(t, Map(nil, func(n int) int { return n }))
}

func TestFilter(t *testing.T) {
	got := Filter([]int{1, 2, 3, 4}, func(n int) bool { return n%2 == 0 })
	assert.Equal(t, []int{2, 4}, got)
}

func TestFirst(t *testing.T) {
	v, ok := First([]string{"a", "bb", "ccc"}, func(s string) bool { return len(s) > 1 })
	assert.True(t, ok)
	assert.Equal(t, "bb", v)

	_, ok = First([]string{"a"}, func(s string) bool { return len(s) > 1 })
	assert.False(t, ok)
}

func TestIndexOfAndContains(t *testing.T) {
	s := []string{"cart", "user", "admin"}

	assert.Equal(t, 1, IndexOf(s, func(v string) bool { return v == "user" }))
	assert.Equal(t, -1, IndexOf(s, func(v string) bool { return v == "ghost" }))

	assert.True(t, Contains(s, func(v string) bool { return v == "admin" }))
	assert.False(t, Contains(s, func(v string) bool { return v == "ghost" }))
}

func TestReduceAndSum(t *testing.T) {
	total := Reduce([]int{1, 2, 3}, 10, func(acc, n int) int { return acc + n })
	assert.Equal(t, 16, total)

	sum := Sum([]float64{1.5, 2.5}, func(f float64) float64 { return f })
	assert.Equal(t, 4.0, sum)
}
