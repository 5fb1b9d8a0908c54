package kmutex

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockUnlock(t *testing.T) {
	k := New()
	k.Lock("a")
	k.Unlock("a")
	k.Lock("a")
	k.Unlock("a")
	assert.Len(t, k.entries, 0)
}

func TestIndependentKeys(t *testing.T) {
	k := New()
	k.Lock("a")
	// a second key must not block behind the first
	done := make(chan struct{})
	go func() {
		k.Lock("b")
		k.Unlock("b")
		close(done)
	}()
	<-done
	k.Unlock("a")
}

func TestMutualExclusion(t *testing.T) {
	k := New()
	const n = 64
	counter := 0
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			k.Lock("counter")
			defer k.Unlock("counter")
			counter++
		}()
	}
	wg.Wait()
	require.Equal(t, n, counter)
	assert.Len(t, k.entries, 0)
}

func TestUnlockWithoutLockPanics(t *testing.T) {
	k := New()
	assert.Panics(t, func() { k.Unlock("nope") })
}
