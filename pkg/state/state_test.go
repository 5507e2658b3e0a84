package state

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStateLifecycle(t *testing.T) {
	m := New()
	assert.Equal(t, StateNormal, m.GetState(1))

	m.SetState(1, StateAddingIngredients)
	assert.Equal(t, StateAddingIngredients, m.GetState(1))
	assert.Equal(t, StateNormal, m.GetState(2))

	m.ClearState(1)
	assert.Equal(t, StateNormal, m.GetState(1))
}

func TestStateExpires(t *testing.T) {
	m := New()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	m.SetState(1, StateAddingIngredients)
	now = now.Add(DefaultTTL - time.Second)
	assert.Equal(t, StateAddingIngredients, m.GetState(1))

	now = now.Add(2 * time.Second)
	assert.Equal(t, StateNormal, m.GetState(1))
}

func TestStateConcurrentAccess(t *testing.T) {
	m := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			m.SetState(id, StateAddingIngredients)
			m.GetState(id)
			m.ClearState(id)
		}(int64(i % 5))
	}
	wg.Wait()
}
