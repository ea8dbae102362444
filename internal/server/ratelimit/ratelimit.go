// Package ratelimit provides per-client request rate limiting with
// endpoint-specific tiers. Extraction endpoints spend paid model calls, so
// they get a much tighter budget than plain reads.
package ratelimit

import (
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Tier defines a token bucket shape.
type Tier struct {
	Name  string
	Rate  rate.Limit
	Burst int
}

// Config holds the limiter tiers. Endpoints are matched by path prefix;
// the first match wins, otherwise Default applies.
type Config struct {
	Disabled  bool
	Default   Tier
	Endpoints []EndpointTier
}

// EndpointTier binds a path prefix to a tier.
type EndpointTier struct {
	PathPrefix string
	Tier       Tier
}

// LoadConfig returns the limiter configuration. RATE_LIMIT_DISABLED=true
// turns limiting off, which tests and local development use.
func LoadConfig() Config {
	return Config{
		Disabled: strings.EqualFold(os.Getenv("RATE_LIMIT_DISABLED"), "true"),
		Default:  Tier{Name: "default", Rate: rate.Limit(1), Burst: 60},
		Endpoints: []EndpointTier{
			{PathPrefix: "/api/resume/parse", Tier: Tier{Name: "extraction", Rate: rate.Every(12 * time.Second), Burst: 3}},
			{PathPrefix: "/api/auth/", Tier: Tier{Name: "auth", Rate: rate.Every(2 * time.Second), Burst: 10}},
			{PathPrefix: "/api/swipes", Tier: Tier{Name: "swipes", Rate: rate.Limit(5), Burst: 30}},
		},
	}
}

// Info reports the decision details for response headers.
type Info struct {
	Tier       string
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter tracks one token bucket per (client, tier) pair. Idle entries are
// evicted by a background sweep.
type Limiter struct {
	cfg  Config
	mu   sync.Mutex
	seen map[string]*entry
	stop chan struct{}
}

// NewLimiter creates a limiter and starts its cleanup goroutine.
func NewLimiter(cfg Config) *Limiter {
	l := &Limiter{
		cfg:  cfg,
		seen: make(map[string]*entry),
		stop: make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

// Allow reports whether the client may proceed on the given path.
func (l *Limiter) Allow(clientID, path string) (bool, Info) {
	if l.cfg.Disabled {
		return true, Info{}
	}

	tier := l.tierFor(path)
	key := clientID + "|" + tier.Name

	l.mu.Lock()
	e, ok := l.seen[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(tier.Rate, tier.Burst)}
		l.seen[key] = e
	}
	e.lastSeen = time.Now()
	l.mu.Unlock()

	reservation := e.limiter.Reserve()
	delay := reservation.Delay()
	if delay > 0 {
		reservation.Cancel()
		return false, Info{
			Tier:       tier.Name,
			Limit:      tier.Burst,
			Remaining:  0,
			RetryAfter: delay,
		}
	}

	remaining := int(e.limiter.Tokens())
	if remaining < 0 {
		remaining = 0
	}
	return true, Info{Tier: tier.Name, Limit: tier.Burst, Remaining: remaining}
}

// Stop terminates the cleanup goroutine.
func (l *Limiter) Stop() {
	close(l.stop)
}

func (l *Limiter) tierFor(path string) Tier {
	for _, et := range l.cfg.Endpoints {
		if strings.HasPrefix(path, et.PathPrefix) {
			return et.Tier
		}
	}
	return l.cfg.Default
}

func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-15 * time.Minute)
			l.mu.Lock()
			for key, e := range l.seen {
				if e.lastSeen.Before(cutoff) {
					delete(l.seen, key)
				}
			}
			l.mu.Unlock()
		}
	}
}
