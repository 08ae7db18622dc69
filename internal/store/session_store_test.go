package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutGet(t *testing.T) {
	s := New()

	s.Put(KindForecast, "f-1", "artifact-1")

	got, ok := s.Get(KindForecast, "f-1")
	require.True(t, ok)
	assert.Equal(t, "artifact-1", got)

	_, ok = s.Get(KindForecast, "missing")
	assert.False(t, ok)

	_, ok = s.Get(KindPlan, "f-1")
	assert.False(t, ok, "kinds must not share a namespace")
}

func TestListPreservesInsertionOrder(t *testing.T) {
	s := New()

	for i := 0; i < 5; i++ {
		s.Put(KindPlan, fmt.Sprintf("p-%d", i), i)
	}

	listed := s.List(KindPlan)
	require.Len(t, listed, 5)
	for i, artifact := range listed {
		assert.Equal(t, i, artifact)
	}
}

func TestPutSameIDDoesNotDuplicateOrder(t *testing.T) {
	s := New()

	s.Put(KindScenario, "s-1", "a")
	s.Put(KindScenario, "s-1", "b")

	listed := s.List(KindScenario)
	require.Len(t, listed, 1)
	assert.Equal(t, "b", listed[0])
}

func TestConcurrentRegistration(t *testing.T) {
	s := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Put(KindForecast, fmt.Sprintf("f-%d", i), i)
			s.Get(KindForecast, "f-0")
			s.List(KindForecast)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, s.Len(KindForecast))
}
