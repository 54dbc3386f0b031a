package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/squidword/squidword/config"
)

// RedisConnConfig contains configuration for the Redis connection.
type RedisConnConfig struct {
	Redis  config.RedisConfig
	Logger *slog.Logger
}

// redisTarget is a resolved topology: how to build the client and a
// credential-free description for logs.
type redisTarget struct {
	mode string
	desc string
	dial func() redis.UniversalClient
}

// ConnectRedis resolves the configured topology, dials it and verifies it with a PING.
//
//nolint:ireturn // the topology (single, sentinel or cluster) is chosen at runtime.
func ConnectRedis(ctx context.Context, cfg RedisConnConfig) (redis.UniversalClient, error) {
	target, err := resolveRedisTarget(cfg.Redis)
	if err != nil {
		return nil, err
	}
	client := target.dial()

	timeout := cfg.Redis.DialTimeout
	if timeout <= 0 {
		timeout = defaultRedisDialTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if pingErr := client.Ping(pingCtx).Err(); pingErr != nil {
		if closeErr := client.Close(); closeErr != nil {
			pingErr = errors.Join(pingErr, fmt.Errorf("close redis client: %w", closeErr))
		}
		return nil, fmt.Errorf("ping redis (%s %s): %w", target.mode, target.desc, pingErr)
	}

	if cfg.Logger != nil {
		cfg.Logger.InfoContext(ctx, "redis connected", "mode", target.mode, "addr", target.desc)
	}
	return client, nil
}

const defaultRedisDialTimeout = 5 * time.Second

func resolveRedisTarget(cfg config.RedisConfig) (redisTarget, error) {
	switch {
	case cfg.UseCluster:
		return clusterTarget(cfg)
	case cfg.UseSentinel:
		return sentinelTarget(cfg)
	default:
		return directTarget(cfg)
	}
}

// clusterTarget uses CLUSTER_NODES, or seeds discovery from URI when the list is empty.
func clusterTarget(cfg config.RedisConfig) (redisTarget, error) {
	opts := &redis.ClusterOptions{
		Addrs:       normalizeAddrs(cfg.ClusterNodes),
		Password:    cfg.Password,
		DialTimeout: cfg.DialTimeout,
	}
	if len(opts.Addrs) == 0 {
		seed, err := parseRedisURI(cfg.URI, cfg.Password)
		if err != nil {
			return redisTarget{}, fmt.Errorf("parse redis cluster url: %w", err)
		}
		if seed == nil {
			return redisTarget{}, errors.New("redis cluster configuration requires at least one address")
		}
		opts.Addrs = []string{seed.Addr}
		opts.Username = seed.Username
		opts.Password = seed.Password
		opts.TLSConfig = seed.TLSConfig
	}
	return redisTarget{
		mode: "cluster",
		desc: strings.Join(opts.Addrs, ","),
		dial: func() redis.UniversalClient { return redis.NewClusterClient(opts) },
	}, nil
}

func sentinelTarget(cfg config.RedisConfig) (redisTarget, error) {
	nodes := normalizeAddrs(cfg.SentinelNodes)
	if len(nodes) == 0 {
		return redisTarget{}, errors.New("redis sentinel configuration requires at least one sentinel node")
	}
	opts := &redis.FailoverOptions{
		MasterName:       cfg.SentinelMasterName,
		SentinelAddrs:    nodes,
		Password:         cfg.Password,
		SentinelPassword: cfg.SentinelPassword,
		DialTimeout:      cfg.DialTimeout,
	}
	return redisTarget{
		mode: "sentinel",
		desc: cfg.SentinelMasterName + "@" + strings.Join(nodes, ","),
		dial: func() redis.UniversalClient { return redis.NewFailoverClient(opts) },
	}, nil
}

func directTarget(cfg config.RedisConfig) (redisTarget, error) {
	opts, err := parseRedisURI(cfg.URI, cfg.Password)
	if err != nil {
		return redisTarget{}, fmt.Errorf("parse redis url: %w", err)
	}
	if opts == nil {
		return redisTarget{}, errors.New("redis direct configuration requires a URI")
	}
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	return redisTarget{
		mode: "direct",
		desc: opts.Addr,
		dial: func() redis.UniversalClient { return redis.NewClient(opts) },
	}, nil
}

// parseRedisURI accepts host:port or a redis:// URL. An empty URI yields nil options.
// The URL's password wins over the configured one.
func parseRedisURI(uri, password string) (*redis.Options, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return nil, nil //nolint:nilnil // absent URI is not an error here.
	}
	if !isRedisURL(uri) {
		return &redis.Options{Addr: uri, Password: password}, nil
	}
	opts, err := redis.ParseURL(uri)
	if err != nil {
		return nil, err
	}
	if opts.Password == "" {
		opts.Password = password
	}
	return opts, nil
}

func normalizeAddrs(raw []string) []string {
	result := make([]string, 0, len(raw))
	for _, addr := range raw {
		if trimmed := strings.TrimSpace(addr); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func isRedisURL(value string) bool {
	return strings.HasPrefix(value, "redis://") || strings.HasPrefix(value, "rediss://")
}
