package recipe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type stubPage struct {
	unmounted bool
}

func (s *stubPage) Unmount() {
	s.unmounted = true
}

func TestPageStoreLifecycle(t *testing.T) {
	store := NewPageStore[*stubPage](time.Minute)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	page := &stubPage{}
	token := store.Put(page)
	assert.NotEmpty(t, token)

	got, ok := store.Get(token)
	assert.True(t, ok)
	assert.Same(t, page, got)

	store.Delete(token)
	assert.True(t, page.unmounted)
	_, ok = store.Get(token)
	assert.False(t, ok)
}

func TestPageStoreExpiresIdlePages(t *testing.T) {
	store := NewPageStore[*stubPage](time.Minute)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	idle := &stubPage{}
	active := &stubPage{}
	idleToken := store.Put(idle)
	activeToken := store.Put(active)

	now = now.Add(50 * time.Second)
	_, ok := store.Get(activeToken)
	assert.True(t, ok)

	now = now.Add(30 * time.Second)
	assert.Equal(t, 1, store.Sweep())
	assert.True(t, idle.unmounted)
	assert.False(t, active.unmounted)
	assert.Equal(t, 1, store.Len())

	_, ok = store.Get(idleToken)
	assert.False(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok = store.Get(activeToken)
	assert.False(t, ok)
	assert.True(t, active.unmounted)
}
