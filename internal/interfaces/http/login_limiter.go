package http

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/jhoicas/inventario-libros/internal/application/dto"
)

// LoginLimit intentos de login permitidos por IP. PerMinute <= 0 desactiva el límite.
type LoginLimit struct {
	PerMinute float64
	Burst     int
}

const limiterIdleTTL = 10 * time.Minute

type ipLimiter struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// loginLimiter token bucket por IP para POST /login.
type loginLimiter struct {
	mu        sync.Mutex
	cfg       LoginLimit
	byIP      map[string]*ipLimiter
	lastPurge time.Time
	now       func() time.Time
}

func newLoginLimiter(cfg LoginLimit) *loginLimiter {
	if cfg.Burst < 1 {
		cfg.Burst = 1
	}
	return &loginLimiter{cfg: cfg, byIP: make(map[string]*ipLimiter), now: time.Now}
}

func (l *loginLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastPurge) > time.Minute {
		for k, v := range l.byIP {
			if now.Sub(v.lastSeen) > limiterIdleTTL {
				delete(l.byIP, k)
			}
		}
		l.lastPurge = now
	}

	e, ok := l.byIP[ip]
	if !ok {
		e = &ipLimiter{lim: rate.NewLimiter(rate.Limit(l.cfg.PerMinute/60), l.cfg.Burst)}
		l.byIP[ip] = e
	}
	e.lastSeen = now
	return e.lim.AllowN(now, 1)
}

// LoginRateLimit responde 429 cuando una IP agota sus intentos de login.
func LoginRateLimit(cfg LoginLimit) fiber.Handler {
	if cfg.PerMinute <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	l := newLoginLimiter(cfg)
	return func(c *fiber.Ctx) error {
		if !l.allow(c.IP()) {
			c.Set(fiber.HeaderRetryAfter, "60")
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "TOO_MANY_ATTEMPTS", Message: "demasiados intentos, espere un momento"})
		}
		return c.Next()
	}
}
