package recipe

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

type (
	Unmounter interface {
		Unmount()
	}

	// PageStore keeps live page instances between requests, keyed by the
	// token embedded in the rendered form.
	PageStore[P Unmounter] struct {
		mu    sync.Mutex
		ttl   time.Duration
		pages map[string]*storedPage[P]
		now   func() time.Time
	}

	storedPage[P Unmounter] struct {
		page    P
		touched time.Time
	}
)

func NewPageStore[P Unmounter](ttl time.Duration) *PageStore[P] {
	return &PageStore[P]{
		ttl:   ttl,
		pages: make(map[string]*storedPage[P]),
		now:   time.Now,
	}
}

// Put registers page and returns its token.
func (s *PageStore[P]) Put(page P) string {
	token := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[token] = &storedPage[P]{page: page, touched: s.now()}
	return token
}

// Get returns the live page for token and refreshes its idle timer.
func (s *PageStore[P]) Get(token string) (P, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero P
	stored, ok := s.pages[token]
	if !ok {
		return zero, false
	}
	if s.expired(stored) {
		delete(s.pages, token)
		stored.page.Unmount()
		return zero, false
	}
	stored.touched = s.now()
	return stored.page, true
}

// Delete unmounts and forgets the page for token.
func (s *PageStore[P]) Delete(token string) {
	s.mu.Lock()
	stored, ok := s.pages[token]
	delete(s.pages, token)
	s.mu.Unlock()

	if ok {
		stored.page.Unmount()
	}
}

func (s *PageStore[P]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pages)
}

// Sweep unmounts every page idle for longer than the TTL.
func (s *PageStore[P]) Sweep() int {
	s.mu.Lock()
	var stale []P
	for token, stored := range s.pages {
		if s.expired(stored) {
			delete(s.pages, token)
			stale = append(stale, stored.page)
		}
	}
	s.mu.Unlock()

	for _, page := range stale {
		page.Unmount()
	}
	return len(stale)
}

// Run sweeps on every tick until ctx is done.
func (s *PageStore[P]) Run(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				log.Debugw("expired page sessions", "count", n, "live", s.Len())
			}
		}
	}
}

func (s *PageStore[P]) expired(stored *storedPage[P]) bool {
	return s.ttl > 0 && s.now().Sub(stored.touched) > s.ttl
}
