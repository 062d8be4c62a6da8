// Package middleware holds the HTTP middleware mounted in front of the
// GraphQL endpoint.
package middleware

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"github.com/shashiranjanraj/crm/pkg/response"
)

type bucket struct {
	count   int
	resetAt time.Time
}

// RateLimiter allows each client IP max requests per fixed window.
type RateLimiter struct {
	max    int
	window time.Duration
	now    func() time.Time

	// proxies are peers whose X-Forwarded-For header is believed.
	proxies []netip.Prefix

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		max:     max,
		window:  window,
		now:     time.Now,
		buckets: map[string]*bucket{},
	}
}

// TrustProxies makes the limiter key requests arriving from one of the
// given addresses or CIDR ranges by their X-Forwarded-For client. Without
// trusted proxies the header is ignored.
func (l *RateLimiter) TrustProxies(proxies ...string) error {
	for _, p := range proxies {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if prefix, err := netip.ParsePrefix(p); err == nil {
			l.proxies = append(l.proxies, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(p)
		if err != nil {
			return fmt.Errorf("middleware: trusted proxy %q: %w", p, err)
		}
		l.proxies = append(l.proxies, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return nil
}

// Allow records one request from ip and reports whether it is within the
// limit. Expired buckets are swept at most once per window.
func (l *RateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.window {
		for k, b := range l.buckets {
			if now.After(b.resetAt) {
				delete(l.buckets, k)
			}
		}
		l.lastSweep = now
	}

	b, ok := l.buckets[ip]
	if !ok || now.After(b.resetAt) {
		b = &bucket{resetAt: now.Add(l.window)}
		l.buckets[ip] = b
	}
	b.count++
	return b.count <= l.max
}

// Middleware rejects over-limit clients with 429. A non-positive max
// disables limiting.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	if l.max <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(l.clientIP(r)) {
			response.Error(w, http.StatusTooManyRequests, "Too Many Requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP is the peer address, or when the peer is a trusted proxy the
// right-most X-Forwarded-For entry that is not itself a trusted proxy.
func (l *RateLimiter) clientIP(r *http.Request) string {
	peer := r.RemoteAddr
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		peer = host
	}
	if !l.trusted(peer) {
		return peer
	}

	fwd := r.Header.Values("X-Forwarded-For")
	if len(fwd) == 0 {
		return peer
	}
	hops := strings.Split(strings.Join(fwd, ","), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop != "" && !l.trusted(hop) {
			return hop
		}
	}
	return peer
}

func (l *RateLimiter) trusted(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range l.proxies {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
