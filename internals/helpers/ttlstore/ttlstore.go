package ttlstore

import (
	"sync"
	"time"
)

// Store: key-value in-memory dengan TTL. Dipakai untuk state OTP &
// cooldown — dioper sebagai dependency, bukan global cache.
type Store struct {
	mu    sync.Mutex
	items map[string]entry
	now   func() time.Time
}

type entry struct {
	value     any
	expiresAt time.Time
}

func New() *Store {
	return &Store{
		items: make(map[string]entry),
		now:   time.Now,
	}
}

// NewWithClock untuk testing (inject jam sendiri)
func NewWithClock(now func() time.Time) *Store {
	s := New()
	s.now = now
	return s
}

func (s *Store) Set(key string, value any, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = entry{value: value, expiresAt: s.now().Add(ttl)}
}

func (s *Store) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.items[key]
	if !ok {
		return nil, false
	}
	if s.now().After(e.expiresAt) {
		delete(s.items, key)
		return nil, false
	}
	return e.value, true
}

func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
}

// Exists tanpa mengambil value (cek cooldown)
func (s *Store) Exists(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// Cleanup membuang entry kadaluarsa; panggil periodik kalau perlu
func (s *Store) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	now := s.now()
	for k, e := range s.items {
		if now.After(e.expiresAt) {
			delete(s.items, k)
			n++
		}
	}
	return n
}
