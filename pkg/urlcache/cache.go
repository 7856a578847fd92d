package urlcache

import (
	"strings"
	"time"

	"github.com/puzpuzpuz/xsync"
)

type entry struct {
	url     string
	expires time.Time
}

// Cache keeps one stable URL per underlying file while the downstream's
// signed URL is still fresh. Hosted file URLs rotate their signature on
// every fetch, which defeats browser caching; pinning the first fresh URL
// under the signature-free key gives consumers a stable identity. Entries
// are advisory and safe to lose at any time.
type Cache struct {
	entries *xsync.MapOf[string, entry]
	window  time.Duration
	now     func() time.Time
}

func New(window time.Duration) *Cache {
	return &Cache{
		entries: xsync.NewMapOf[entry](),
		window:  window,
		now:     time.Now,
	}
}

// Key strips the volatile query string, leaving the part of the URL that
// identifies the file itself.
func Key(url string) string {
	key, _, _ := strings.Cut(url, "?")
	return key
}

// Stable returns the remembered fresh URL for the same file, or records and
// returns the given one. The entry lives until the sooner of the signed
// URL's own expiry and the cache window.
func (c *Cache) Stable(url string, expires time.Time) string {
	key := Key(url)

	if e, ok := c.entries.Load(key); ok {
		if c.now().Before(e.expires) {
			return e.url
		}
		c.entries.Delete(key)
	}

	deadline := c.now().Add(c.window)
	if !expires.IsZero() && expires.Before(deadline) {
		deadline = expires
	}

	c.entries.Store(key, entry{url: url, expires: deadline})
	return url
}
