package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/squidword/squidword/config"
	"github.com/squidword/squidword/internal/adapters/cookiestore"
	redisadapter "github.com/squidword/squidword/internal/adapters/redis"
	"github.com/squidword/squidword/internal/ports"
)

// SessionStoreConfig contains configuration for the session store.
type SessionStoreConfig struct {
	Session     config.SessionConfig
	Redis       config.RedisConfig
	RedisClient redis.UniversalClient // Required when Session.Store=redis
	Logger      *slog.Logger
}

// BuildSessionStore creates the configured session store.
//
//nolint:ireturn // the store kind is chosen at runtime.
func BuildSessionStore(cfg SessionStoreConfig) (ports.SessionStore, error) {
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		if cfg.RedisClient == nil {
			return nil, errors.New("SESSION_STORE=redis requires a redis client")
		}
		if cfg.Logger != nil {
			cfg.Logger.Info("using redis session store", "prefix", cfg.Redis.KeyPrefix)
		}
		return redisadapter.NewSessionStoreWithPrefix(cfg.RedisClient, cfg.Redis.KeyPrefix, cfg.Session.TTL), nil
	case config.SessionStoreCookie, "":
		store, err := cookiestore.New(cookiestore.Options{
			Secret: []byte(cfg.Session.Secret),
			TTL:    cfg.Session.TTL,
		})
		if err != nil {
			return nil, fmt.Errorf("create cookie session store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported session store %q", cfg.Session.Store)
	}
}
