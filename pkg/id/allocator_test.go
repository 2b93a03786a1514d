package id

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocatorStartsAtOne(t *testing.T) {
	a := NewAllocator()
	assert.Equal(t, uint32(1), a.Next())
	assert.Equal(t, uint32(2), a.Next())
	assert.Equal(t, uint32(3), a.Next())
}

func TestAllocatorWrapsAtUpperBound(t *testing.T) {
	a := NewAllocator()
	a.current = upperBound - 1
	a.started = true

	assert.Equal(t, upperBound, a.Next())
	assert.Equal(t, lowerBound, a.Next())
}

func TestAllocatorSkipsReservedIds(t *testing.T) {
	a := NewAllocator()
	a.current = upperBound
	a.started = true
	a.inUse[lowerBound] = struct{}{}

	require.Equal(t, lowerBound+1, a.Next(), "should skip the still-reserved id when wrapping")
}

func TestAllocatorReleaseAllowsReuse(t *testing.T) {
	a := NewAllocator()
	a.current = upperBound
	a.started = true
	a.inUse[lowerBound] = struct{}{}

	a.Release(lowerBound)
	assert.Equal(t, lowerBound, a.Next())
}

func TestAllocatorConcurrentUseProducesUniqueIds(t *testing.T) {
	a := NewAllocator()

	const n = 500
	ids := make(chan uint32, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			ids <- a.Next()
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[uint32]struct{}, n)
	for v := range ids {
		_, dup := seen[v]
		require.False(t, dup, "id %d allocated more than once", v)
		seen[v] = struct{}{}
	}
	assert.Len(t, seen, n)
}
