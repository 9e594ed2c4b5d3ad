package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionMap(t *testing.T) {
	getHisto := func(K, Np int) (histo map[int]int) {
		pm := NewPartitionMap(Np, K)
		histo = make(map[int]int)
		for np := 0; np < pm.ParallelDegree; np++ {
			maxK := pm.GetBucketDimension(np)
			histo[maxK]++
		}
		return
	}
	getTotal := func(histo map[int]int) (total int) {
		for key, count := range histo {
			total += key * count
		}
		return
	}
	assert.Equal(t, map[int]int{0: 30, 1: 2}, getHisto(2, 32))
	assert.Equal(t, map[int]int{1: 32}, getHisto(32, 32))
	assert.Equal(t, map[int]int{8: 32}, getHisto(256, 32))
	assert.Equal(t, map[int]int{8: 1, 9: 31}, getHisto(287, 32))
	assert.Equal(t, 287, getTotal(getHisto(287, 32)))
	// Buckets tile the index space without gaps
	pm := NewPartitionMap(7, 129)
	next := 0
	for n := 0; n < pm.ParallelDegree; n++ {
		kMin, kMax := pm.GetBucketRange(n)
		assert.Equal(t, next, kMin)
		next = kMax
	}
	assert.Equal(t, 129, next)
}
