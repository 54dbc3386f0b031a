package config

import (
	"strings"
	"time"
)

// RedisConfig locates the Redis deployment behind SESSION_STORE=redis.
// Exactly one topology is used: cluster, then sentinel, then a single node at URI.
type RedisConfig struct {
	// URI is host:port or a redis:// / rediss:// URL.
	URI      string `env:"URI"      envDefault:"localhost:6379"`
	Password string `env:"PASSWORD"`

	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:"localhost:26379"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"`

	UseCluster   bool     `env:"USE_CLUSTER"   envDefault:"false"`
	ClusterNodes []string `env:"CLUSTER_NODES"`

	// KeyPrefix namespaces session keys.
	KeyPrefix   string        `env:"KEY_PREFIX"   envDefault:"session:"`
	DialTimeout time.Duration `env:"DIAL_TIMEOUT" envDefault:"5s"`
}

// Sanitize trims node lists and clamps the dial timeout.
func (r *RedisConfig) Sanitize() {
	r.URI = strings.TrimSpace(r.URI)
	r.SentinelNodes = compactAddrs(r.SentinelNodes)
	r.ClusterNodes = compactAddrs(r.ClusterNodes)
	if r.DialTimeout <= 0 {
		r.DialTimeout = 5 * time.Second
	}
}

func compactAddrs(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, addr := range raw {
		if trimmed := strings.TrimSpace(addr); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
