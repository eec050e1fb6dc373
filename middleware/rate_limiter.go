package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"leveluplife/models"
	"leveluplife/utils"
)

type timestamps []int64 // unix nanos

// prune keeps the timestamps at or after cutoff. ts is reused.
func (ts timestamps) prune(cutoff int64) timestamps {
	kept := ts[:0]
	for _, t := range ts {
		if t >= cutoff {
			kept = append(kept, t)
		}
	}
	return kept
}

// IPRateLimiter allows at most max requests per client IP within a sliding
// window.
type IPRateLimiter struct {
	max     int
	window  time.Duration
	trusted []*net.IPNet
	now     func() time.Time

	mu    sync.Mutex
	state map[string]timestamps
	done  chan struct{}
	once  sync.Once
}

// NewIPRateLimiter starts a limiter. trustedProxies lists IPs or CIDRs whose
// X-Forwarded-For / X-Real-IP headers are believed.
func NewIPRateLimiter(limit int, window time.Duration, trustedProxies []string) *IPRateLimiter {
	l := &IPRateLimiter{
		max:     limit,
		window:  window,
		trusted: parseTrusted(trustedProxies),
		now:     time.Now,
		state:   make(map[string]timestamps),
		done:    make(chan struct{}),
	}
	go l.cleanupLoop(time.Minute)
	return l
}

// Close stops the cleanup goroutine.
func (l *IPRateLimiter) Close() {
	l.once.Do(func() { close(l.done) })
}

// parseTrusted turns "10.0.0.0/8" and "198.51.100.10" style entries into
// networks; a bare IP becomes a single-host network. Invalid entries are skipped.
func parseTrusted(entries []string) []*net.IPNet {
	var nets []*net.IPNet
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if !strings.Contains(e, "/") {
			ip := net.ParseIP(e)
			if ip == nil {
				continue
			}
			bits := 128
			if ip.To4() != nil {
				ip, bits = ip.To4(), 32
			}
			nets = append(nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		if _, n, err := net.ParseCIDR(e); err == nil {
			nets = append(nets, n)
		}
	}
	return nets
}

// clientIP returns the remote host, or the first forwarded address when the
// request came through a trusted proxy.
func clientIP(r *http.Request, trusted []*net.IPNet) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	remote := net.ParseIP(host)
	if remote == nil {
		return host
	}
	for _, n := range trusted {
		if !n.Contains(remote) {
			continue
		}
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			return strings.TrimSpace(first)
		}
		if xr := strings.TrimSpace(r.Header.Get("X-Real-IP")); xr != "" {
			return xr
		}
		break
	}
	return host
}

// Middleware applies per-IP limits and sets rate-limit headers.
func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r, l.trusted)
		now := l.now().UnixNano()

		l.mu.Lock()
		hits := append(l.state[ip].prune(now-int64(l.window)), now)
		l.state[ip] = hits
		count, oldest := len(hits), hits[0]
		l.mu.Unlock()

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.max))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(l.max-count, 0)))

		if count > l.max {
			// the oldest hit leaves the window first
			retryAfter := max(int((oldest+int64(l.window)-now)/int64(time.Second)), 1)
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			e := models.TooManyRequestsError(retryAfter)
			utils.WriteJSON(w, e.StatusCode, e)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *IPRateLimiter) cleanupLoop(every time.Duration) {
	tick := time.NewTicker(every)
	defer tick.Stop()
	for {
		select {
		case <-l.done:
			return
		case <-tick.C:
			l.sweep()
		}
	}
}

// sweep forgets IPs with no hits inside the window.
func (l *IPRateLimiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()
	cutoff := l.now().UnixNano() - int64(l.window)
	for ip, hits := range l.state {
		if hits = hits.prune(cutoff); len(hits) == 0 {
			delete(l.state, ip)
		} else {
			l.state[ip] = hits
		}
	}
}
