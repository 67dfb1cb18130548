package deschash

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrRenderCachesResult(t *testing.T) {
	c := New()
	calls := 0
	render := func() (string, error) {
		calls++
		return "Lfoo;->bar:I", nil
	}

	s1, err := c.GetOrRender(KindField, 3, render)
	require.NoError(t, err)
	s2, err := c.GetOrRender(KindField, 3, render)
	require.NoError(t, err)

	assert.Equal(t, "Lfoo;->bar:I", s1)
	assert.Equal(t, s1, s2)
	assert.Equal(t, 1, calls, "render must only run once for a cached key")
}

func TestDistinctKindsDoNotCollide(t *testing.T) {
	c := New()
	_, _ = c.GetOrRender(KindField, 0, func() (string, error) { return "field-rendering", nil })
	_, _ = c.GetOrRender(KindMethod, 0, func() (string, error) { return "method-rendering", nil })

	f, ok := c.Get(KindField, 0)
	require.True(t, ok)
	m, ok := c.Get(KindMethod, 0)
	require.True(t, ok)
	assert.NotEqual(t, f, m)
	assert.Equal(t, 2, c.Len())
}

func TestGetOrRenderPropagatesError(t *testing.T) {
	c := New()
	wantErr := errors.New("index out of range")
	_, err := c.GetOrRender(KindProto, 5, func() (string, error) { return "", wantErr })
	require.ErrorIs(t, err, wantErr)
	_, ok := c.Get(KindProto, 5)
	assert.False(t, ok, "a failed render must not be cached")
}

func TestConcurrentGetOrRender(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.GetOrRender(KindMethod, 7, func() (string, error) {
				return "Lfoo;->baz()V", nil
			})
		}()
	}
	wg.Wait()

	s, ok := c.Get(KindMethod, 7)
	require.True(t, ok)
	assert.Equal(t, "Lfoo;->baz()V", s)
}
