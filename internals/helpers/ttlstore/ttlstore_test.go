package ttlstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGetBeforeExpiry(t *testing.T) {
	now := time.Now()
	s := NewWithClock(func() time.Time { return now })

	s.Set("otp:a@b.com", "123456", 2*time.Minute)

	v, ok := s.Get("otp:a@b.com")
	require.True(t, ok)
	assert.Equal(t, "123456", v)
	assert.True(t, s.Exists("otp:a@b.com"))
}

func TestExpiry(t *testing.T) {
	now := time.Now()
	s := NewWithClock(func() time.Time { return now })

	s.Set("k", 1, time.Minute)

	now = now.Add(59 * time.Second)
	assert.True(t, s.Exists("k"))

	now = now.Add(2 * time.Second)
	_, ok := s.Get("k")
	assert.False(t, ok)
	assert.False(t, s.Exists("k"))
}

func TestDelete(t *testing.T) {
	s := New()
	s.Set("k", "v", time.Minute)
	s.Delete("k")
	assert.False(t, s.Exists("k"))
}

func TestOverwriteResetsTTL(t *testing.T) {
	now := time.Now()
	s := NewWithClock(func() time.Time { return now })

	s.Set("k", "lama", time.Minute)
	now = now.Add(50 * time.Second)
	s.Set("k", "baru", time.Minute)

	now = now.Add(30 * time.Second)
	v, ok := s.Get("k")
	require.True(t, ok)
	assert.Equal(t, "baru", v)
}

func TestCleanup(t *testing.T) {
	now := time.Now()
	s := NewWithClock(func() time.Time { return now })

	s.Set("hidup", 1, time.Hour)
	s.Set("mati1", 1, time.Second)
	s.Set("mati2", 1, time.Second)

	now = now.Add(2 * time.Second)
	assert.Equal(t, 2, s.Cleanup())
	assert.True(t, s.Exists("hidup"))
}
