package urlcache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_Cache_StableWhileFresh(t *testing.T) {
	cache := New(time.Hour)

	first := cache.Stable("https://files.example.com/a.png?sig=1", time.Now().Add(time.Hour))
	second := cache.Stable("https://files.example.com/a.png?sig=2", time.Now().Add(time.Hour))

	require.Equal(t, "https://files.example.com/a.png?sig=1", first)
	require.Equal(t, first, second)
}

func Test_Cache_RotatesAfterExpiry(t *testing.T) {
	cache := New(time.Hour)
	now := time.Now()
	cache.now = func() time.Time { return now }

	first := cache.Stable("https://files.example.com/a.png?sig=1", now.Add(time.Minute))
	require.Equal(t, "https://files.example.com/a.png?sig=1", first)

	now = now.Add(2 * time.Minute)
	second := cache.Stable("https://files.example.com/a.png?sig=2", now.Add(time.Minute))
	require.Equal(t, "https://files.example.com/a.png?sig=2", second)
}

func Test_Cache_DistinctFiles(t *testing.T) {
	cache := New(time.Hour)

	a := cache.Stable("https://files.example.com/a.png?sig=1", time.Time{})
	b := cache.Stable("https://files.example.com/b.png?sig=1", time.Time{})
	require.NotEqual(t, Key(a), Key(b))
}
