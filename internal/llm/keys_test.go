package llm

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyRing_RoundRobin(t *testing.T) {
	ring := NewKeyRing([]string{"k1", "k2", "k3"})

	assert.Equal(t, "k1", ring.Next())
	assert.Equal(t, "k2", ring.Next())
	assert.Equal(t, "k3", ring.Next())
	assert.Equal(t, "k1", ring.Next())
}

func TestKeyRing_DropsEmptyKeys(t *testing.T) {
	ring := NewKeyRing([]string{"", "k1", ""})
	assert.Equal(t, 1, ring.Len())
	assert.Equal(t, "k1", ring.Next())
	assert.Equal(t, "k1", ring.Next())
}

func TestKeyRing_Empty(t *testing.T) {
	ring := NewKeyRing(nil)
	assert.Equal(t, 0, ring.Len())
	assert.Equal(t, "", ring.Next())
}

func TestKeyRing_IndependentInstances(t *testing.T) {
	a := NewKeyRing([]string{"k1", "k2"})
	b := NewKeyRing([]string{"k1", "k2"})

	assert.Equal(t, "k1", a.Next())
	assert.Equal(t, "k2", a.Next())
	// b's counter is unaffected by a's rotation.
	assert.Equal(t, "k1", b.Next())
}

func TestKeyRing_ConcurrentRotation(t *testing.T) {
	ring := NewKeyRing([]string{"k1", "k2", "k3"})

	var wg sync.WaitGroup
	counts := make([]map[string]int, 8)
	for i := 0; i < 8; i++ {
		counts[i] = make(map[string]int)
		wg.Add(1)
		go func(m map[string]int) {
			defer wg.Done()
			for j := 0; j < 300; j++ {
				m[ring.Next()]++
			}
		}(counts[i])
	}
	wg.Wait()

	total := make(map[string]int)
	for _, m := range counts {
		for k, n := range m {
			total[k] += n
		}
	}

	// 2400 draws over 3 keys must be an even split.
	assert.Equal(t, 800, total["k1"])
	assert.Equal(t, 800, total["k2"])
	assert.Equal(t, 800, total["k3"])
}
