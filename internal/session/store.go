// Package session keeps the most recently built report for each caller.
// Every backend stores at most one profile per session id; saving again
// replaces it.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/BerylCAtieno/astro-profiler-agent/internal/config"
	"github.com/BerylCAtieno/astro-profiler-agent/internal/models"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var ErrNotFound = errors.New("no report stored for session")

type Store interface {
	Save(ctx context.Context, sessionID string, p *models.Profile) error
	Load(ctx context.Context, sessionID string) (*models.Profile, error)
	Close() error
}

// New opens the backend selected in cfg.
func New(ctx context.Context, cfg config.SessionConfig, logger *zap.Logger) (Store, error) {
	switch cfg.Backend {
	case config.BackendMemory, "":
		logger.Info("Using in-memory session store", zap.Duration("ttl", cfg.TTL))
		return NewMemoryStore(cfg.TTL), nil
	case config.BackendRedis:
		store, err := NewRedisStore(ctx, &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, cfg.TTL)
		if err != nil {
			return nil, err
		}
		logger.Info("Using redis session store", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.TTL))
		return store, nil
	case config.BackendSQLite:
		store, err := NewSQLiteStore(ctx, cfg.SQLitePath, cfg.TTL)
		if err != nil {
			return nil, err
		}
		logger.Info("Using sqlite session store", zap.String("path", cfg.SQLitePath), zap.Duration("ttl", cfg.TTL))
		return store, nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Backend)
	}
}

func expired(savedAt time.Time, ttl time.Duration, now time.Time) bool {
	return ttl > 0 && now.Sub(savedAt) > ttl
}

// maxSweepInterval caps how long an expired report can linger before the
// background sweep removes it.
const maxSweepInterval = 10 * time.Minute

func sweepInterval(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 0
	}
	if ttl > maxSweepInterval {
		return maxSweepInterval
	}
	return ttl
}

// sweeper runs a cleanup func on a ticker until stopped.
type sweeper struct {
	done chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

func newSweeper() *sweeper {
	return &sweeper{done: make(chan struct{})}
}

func (w *sweeper) start(interval time.Duration, cleanup func()) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				cleanup()
			case <-w.done:
				return
			}
		}
	}()
}

// stop is safe to call more than once and returns after the goroutine exits.
func (w *sweeper) stop() {
	w.once.Do(func() { close(w.done) })
	w.wg.Wait()
}
