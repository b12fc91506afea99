package utils

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBatchBufferAddAndDrain(t *testing.T) {
	buf := NewBatchBuffer[string]()
	assert.False(t, buf.HasData())
	assert.Equal(t, 0, buf.Size())

	buf.Add("a")
	buf.Add("b")
	buf.Add("c")

	assert.True(t, buf.HasData())
	assert.Equal(t, 3, buf.Size())

	batch := buf.GetAndClear()
	assert.Equal(t, []string{"a", "b", "c"}, batch)
	assert.Equal(t, 0, buf.Size())
	assert.False(t, buf.HasData())
}

func TestBatchBufferDrainEmpty(t *testing.T) {
	buf := NewBatchBuffer[int]()
	assert.Empty(t, buf.GetAndClear())
}

func TestBatchBufferConcurrentAdds(t *testing.T) {
	buf := NewBatchBuffer[int]()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				buf.Add(j)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1000, buf.Size())
	assert.Len(t, buf.GetAndClear(), 1000)
}
