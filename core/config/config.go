package config

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Upstream UpstreamConfig
	Proposal ProposalConfig
	Queue    QueueConfig
}

type ServerConfig struct {
	Host            string
	Port            int
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

type LogConfig struct {
	Level string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret   string
	InternalKey string
	CookieName  string
}

type UpstreamConfig struct {
	BaseURL          string
	Timeout          time.Duration
	InterestsTimeout time.Duration
	UserCacheTTL     time.Duration
	InterestCacheTTL time.Duration
}

type ProposalConfig struct {
	MaxSlots             int
	RequireDistinctDates bool
	DraftTTL             time.Duration
	SubmitDelay          time.Duration
	Location             string
}

type QueueConfig struct {
	Concurrency int
}

var instance atomic.Pointer[Config]

// Get returns the loaded configuration and panics if Load was never called.
func Get() *Config {
	cfg := instance.Load()
	if cfg == nil {
		panic("config: not initialized")
	}
	return cfg
}

func GetSafe() (*Config, bool) {
	cfg := instance.Load()
	return cfg, cfg != nil
}

func Load() (*Config, error) {
	// .env is optional; real deployments inject the environment directly.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("YA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	_ = v.BindEnv("server.port", "YA_SERVER_PORT", "PORT")
	_ = v.BindEnv("database.host", "YA_DATABASE_HOST", "DB_HOST")
	_ = v.BindEnv("database.port", "YA_DATABASE_PORT", "DB_PORT")
	_ = v.BindEnv("database.user", "YA_DATABASE_USER", "DB_USER")
	_ = v.BindEnv("database.password", "YA_DATABASE_PASSWORD", "DB_PASSWORD")
	_ = v.BindEnv("database.name", "YA_DATABASE_NAME", "DB_NAME")
	_ = v.BindEnv("redis.addr", "YA_REDIS_ADDR", "REDIS_ADDR")
	_ = v.BindEnv("auth.jwt_secret", "YA_AUTH_JWT_SECRET", "JWT_SECRET")
	_ = v.BindEnv("log.level", "YA_LOG_LEVEL", "LOG_LEVEL")

	cfg, err := fromViper(v)
	if err != nil {
		return nil, err
	}
	instance.Store(cfg)
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 7070)
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.allowed_origins", "http://localhost:3000,https://yildizliagac.com")
	v.SetDefault("log.level", "info")

	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "yildizli_agac")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_lifetime", "30m")

	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.internal_key", "")
	v.SetDefault("auth.cookie_name", "token")

	v.SetDefault("upstream.base_url", "https://api.yildizliagac.com")
	v.SetDefault("upstream.timeout", "10s")
	v.SetDefault("upstream.interests_timeout", "10s")
	v.SetDefault("upstream.user_cache_ttl", "5m")
	v.SetDefault("upstream.interest_cache_ttl", "1h")

	v.SetDefault("proposal.max_slots", 3)
	v.SetDefault("proposal.require_distinct_dates", true)
	v.SetDefault("proposal.draft_ttl", "24h")
	v.SetDefault("proposal.submit_delay", "0s")
	v.SetDefault("proposal.location", "Europe/Istanbul")

	v.SetDefault("queue.concurrency", 5)
}

func fromViper(v *viper.Viper) (*Config, error) {
	durations := map[string]*time.Duration{}
	cfg := &Config{
		Server: ServerConfig{
			Host:           strings.TrimSpace(v.GetString("server.host")),
			Port:           v.GetInt("server.port"),
			AllowedOrigins: splitList(v.GetString("server.allowed_origins")),
		},
		Log: LogConfig{Level: v.GetString("log.level")},
		Database: DatabaseConfig{
			Host:         v.GetString("database.host"),
			Port:         v.GetInt("database.port"),
			User:         v.GetString("database.user"),
			Password:     v.GetString("database.password"),
			DBName:       v.GetString("database.name"),
			SSLMode:      v.GetString("database.sslmode"),
			MaxOpenConns: v.GetInt("database.max_open_conns"),
			MaxIdleConns: v.GetInt("database.max_idle_conns"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Auth: AuthConfig{
			JWTSecret:   v.GetString("auth.jwt_secret"),
			InternalKey: v.GetString("auth.internal_key"),
			CookieName:  v.GetString("auth.cookie_name"),
		},
		Upstream: UpstreamConfig{
			BaseURL: strings.TrimRight(v.GetString("upstream.base_url"), "/"),
		},
		Proposal: ProposalConfig{
			MaxSlots:             v.GetInt("proposal.max_slots"),
			RequireDistinctDates: v.GetBool("proposal.require_distinct_dates"),
			Location:             v.GetString("proposal.location"),
		},
		Queue: QueueConfig{Concurrency: v.GetInt("queue.concurrency")},
	}

	durations["server.shutdown_timeout"] = &cfg.Server.ShutdownTimeout
	durations["database.conn_max_lifetime"] = &cfg.Database.ConnMaxLifetime
	durations["upstream.timeout"] = &cfg.Upstream.Timeout
	durations["upstream.interests_timeout"] = &cfg.Upstream.InterestsTimeout
	durations["upstream.user_cache_ttl"] = &cfg.Upstream.UserCacheTTL
	durations["upstream.interest_cache_ttl"] = &cfg.Upstream.InterestCacheTTL
	durations["proposal.draft_ttl"] = &cfg.Proposal.DraftTTL
	durations["proposal.submit_delay"] = &cfg.Proposal.SubmitDelay

	for key, dst := range durations {
		d, err := time.ParseDuration(v.GetString(key))
		if err != nil {
			return nil, fmt.Errorf("config: %s: %w", key, err)
		}
		*dst = d
	}

	if cfg.Proposal.MaxSlots != 3 {
		return nil, fmt.Errorf("config: proposal.max_slots must be 3, got %d", cfg.Proposal.MaxSlots)
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
