package internal

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterSeq2Concat(t *testing.T) {
	assert := assert.New(t)

	a := slices.All([]string{"a", "b"})
	b := slices.All([]string{"c"})

	var keys []int
	var vals []string
	for k, v := range IterSeq2Concat(a, b) {
		keys = append(keys, k)
		vals = append(vals, v)
	}

	assert.Equal([]int{0, 1, 0}, keys)
	assert.Equal([]string{"a", "b", "c"}, vals)

	count := 0
	for range IterSeq2Concat(a, b) {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(2, count)
}

func TestIterSeq2Sorted(t *testing.T) {
	assert := assert.New(t)

	m := map[int64]int64{30: 3, 10: 1, 20: 2}

	var keys []int64
	for k, v := range IterSeq2Sorted(m) {
		keys = append(keys, k)
		assert.Equal(k/10, v)
	}
	assert.Equal([]int64{10, 20, 30}, keys)

	assert.Equal(m, maps.Collect(IterSeq2Sorted(m)))
}
