package ratelimit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllow_Burst(t *testing.T) {
	limiter := New(1, 3)

	// Burst tokens are available immediately
	assert.True(t, limiter.Allow("client-a"))
	assert.True(t, limiter.Allow("client-a"))
	assert.True(t, limiter.Allow("client-a"))

	// Burst exhausted
	assert.False(t, limiter.Allow("client-a"))
}

func TestAllow_KeysAreIndependent(t *testing.T) {
	limiter := New(1, 1)

	assert.True(t, limiter.Allow("client-a"))
	assert.False(t, limiter.Allow("client-a"))

	// A different key has its own bucket
	assert.True(t, limiter.Allow("client-b"))
}

func TestAllow_Concurrent(t *testing.T) {
	limiter := New(1, 100)

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 10; j++ {
				limiter.Allow("shared")
			}
			done <- struct{}{}
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}

	// All burst tokens consumed exactly once
	assert.False(t, limiter.Allow("shared"))
}
