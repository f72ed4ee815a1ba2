package srv

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type LimiterConfig struct {
	PerMinute int `toml:"per_minute"`
}

const defaultLimitPerMinute = 120

// LimiterSrv keeps one token bucket per caller key.
type LimiterSrv struct {
	mu        sync.Mutex
	perMinute int
	limiters  map[string]*rate.Limiter
}

func SetupLimiterSrv(cfg LimiterConfig) *LimiterSrv {
	perMinute := cfg.PerMinute
	if perMinute <= 0 {
		perMinute = defaultLimitPerMinute
	}
	return &LimiterSrv{
		perMinute: perMinute,
		limiters:  make(map[string]*rate.Limiter),
	}
}

func (s *LimiterSrv) Allow(key string) bool {
	s.mu.Lock()
	l, ok := s.limiters[key]
	if !ok {
		l = rate.NewLimiter(rate.Every(time.Minute/time.Duration(s.perMinute)), s.perMinute*2)
		s.limiters[key] = l
	}
	s.mu.Unlock()

	return l.Allow()
}

func ApplyLimiter(cfg LimiterConfig) ApplyFunc {
	return func(s *Srv) {
		s.limiter = SetupLimiterSrv(cfg)
	}
}
