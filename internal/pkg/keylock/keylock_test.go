package keylock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyLock_SerializesSameKey(t *testing.T) {
	k := New()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			k.Lock("EMP-001|2025-06-02")
			counter++
			k.Unlock("EMP-001|2025-06-02")
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}

func TestKeyLock_DifferentKeysDoNotBlock(t *testing.T) {
	k := New()

	k.Lock("a")
	// Acquiring a different key while "a" is held must not deadlock.
	k.Lock("b")
	k.Unlock("b")
	k.Unlock("a")
}

func TestKeyLock_ReleasedKeyCanBeReacquired(t *testing.T) {
	k := New()

	k.Lock("a")
	k.Unlock("a")
	k.Lock("a")
	k.Unlock("a")
}

func TestKeyLock_EntriesAreDroppedWhenIdle(t *testing.T) {
	k := New()

	k.Lock("a")
	k.Unlock("a")

	k.mu.Lock()
	defer k.mu.Unlock()
	assert.Empty(t, k.locks)
}

func TestKeyLock_UnlockOfUnheldKeyPanics(t *testing.T) {
	k := New()

	assert.Panics(t, func() { k.Unlock("never-locked") })
}
