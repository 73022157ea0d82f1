package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type visitor struct {
	connections int
	messages    *rate.Limiter
	lastSeen    time.Time
}

// IPRateLimiter caps simultaneous connections and message rate per client IP.
type IPRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor

	maxConnsPerIP int
	msgLimit      rate.Limit
	msgBurst      int
}

// NewIPRateLimiter allows maxConnsPerIP open sockets and msgRate messages
// per window, with a burst of one full window.
func NewIPRateLimiter(maxConnsPerIP, msgRate int, window time.Duration) *IPRateLimiter {
	return &IPRateLimiter{
		visitors:      make(map[string]*visitor),
		maxConnsPerIP: maxConnsPerIP,
		msgLimit:      rate.Limit(float64(msgRate) / window.Seconds()),
		msgBurst:      msgRate,
	}
}

func (rl *IPRateLimiter) visitor(ip string) *visitor {
	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{messages: rate.NewLimiter(rl.msgLimit, rl.msgBurst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v
}

// ConnectAllowed reserves a connection slot for ip if one is free.
func (rl *IPRateLimiter) ConnectAllowed(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v := rl.visitor(ip)
	if v.connections >= rl.maxConnsPerIP {
		return false
	}
	v.connections++
	return true
}

// Disconnect releases a slot taken by ConnectAllowed.
func (rl *IPRateLimiter) Disconnect(ip string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if v, ok := rl.visitors[ip]; ok && v.connections > 0 {
		v.connections--
	}
}

func (rl *IPRateLimiter) MessageAllowed(ip string) bool {
	rl.mu.Lock()
	v := rl.visitor(ip)
	rl.mu.Unlock()
	return v.messages.Allow()
}

// Prune drops idle visitors with no open connections.
func (rl *IPRateLimiter) Prune(idle time.Duration) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	n := 0
	for ip, v := range rl.visitors {
		if v.connections <= 0 && time.Since(v.lastSeen) > idle {
			delete(rl.visitors, ip)
			n++
		}
	}
	return n
}

// RealIP extracts the client IP, preferring the first X-Forwarded-For hop.
func RealIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
