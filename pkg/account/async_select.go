package account

import (
	"Go-Recipe-Admin/domain"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

var ErrSelectClosed = errors.New("account selector closed")

type (
	// AsyncSelect looks up candidate accounts for a reference field. Typed
	// queries are debounced and only the latest query's answer is kept.
	// Results are never cached across queries.
	AsyncSelect struct {
		mu       sync.Mutex
		gateway  AccountGateway
		debounce time.Duration
		timeout  time.Duration
		seq      uint64
		timer    *time.Timer
		query    string
		options  []domain.Account
		err      error
		loading  bool
		closed   bool
		// settled is closed and replaced whenever the latest lookup lands.
		settled chan struct{}
	}

	// Options is the selector's current state.
	Options struct {
		Query    string
		Accounts []domain.Account
		Err      error
		Loading  bool
	}

	Option func(*AsyncSelect)
)

// WithDebounce sets how long typing must pause before a lookup; 0 looks up on every keystroke.
func WithDebounce(d time.Duration) Option {
	return func(s *AsyncSelect) { s.debounce = d }
}

// WithTimeout bounds each background lookup.
func WithTimeout(d time.Duration) Option {
	return func(s *AsyncSelect) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func NewAsyncSelect(gateway AccountGateway, opts ...Option) *AsyncSelect {
	s := &AsyncSelect{
		gateway: gateway,
		timeout: 10 * time.Second,
		settled: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search looks up query right away and returns the accounts found.
func (s *AsyncSelect) Search(ctx context.Context, query string) ([]domain.Account, error) {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.seq++
	seq := s.seq
	s.query = query
	s.loading = true
	s.mu.Unlock()

	accounts, err := s.gateway.GetAccounts(ctx, query)
	s.finish(seq, accounts, err)
	return accounts, err
}

// Type records a keystroke. The lookup runs once typing pauses for the debounce interval.
func (s *AsyncSelect) Type(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	s.seq++
	seq := s.seq
	s.query = query
	s.loading = true
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		accounts, err := s.gateway.GetAccounts(ctx, query)
		s.finish(seq, accounts, err)
	})
}

// Wait blocks until no lookup is pending and returns the latest answer. A
// caller whose query was superseded gets the answer for the newer query.
func (s *AsyncSelect) Wait(ctx context.Context) (Options, error) {
	for {
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			return Options{}, ErrSelectClosed
		}
		if !s.loading {
			opts := s.snapshot()
			s.mu.Unlock()
			return opts, nil
		}
		settled := s.settled
		s.mu.Unlock()

		select {
		case <-ctx.Done():
			return Options{}, ctx.Err()
		case <-settled:
		}
	}
}

func (s *AsyncSelect) finish(seq uint64, accounts []domain.Account, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || seq != s.seq {
		return
	}
	s.loading = false
	s.options = accounts
	s.err = err
	s.timer = nil
	close(s.settled)
	s.settled = make(chan struct{})

	if err != nil {
		log.Warnw("account lookup failed", "query", s.query, "error", err)
	}
}

func (s *AsyncSelect) snapshot() Options {
	return Options{
		Query:    s.query,
		Accounts: append([]domain.Account(nil), s.options...),
		Err:      s.err,
		Loading:  s.loading,
	}
}

// Close stops pending lookups and releases waiters; late answers are dropped.
func (s *AsyncSelect) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	close(s.settled)
}
