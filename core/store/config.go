package store

const (
	BackendDatabase = "database"
	BackendRedis    = "redis"
)

// Config holds configuration for the state store.
type Config struct {
	// Backend selects where state is kept (database, redis).
	Backend string `mapstructure:"backend" default:"database"`
	// RedisAddress is the host:port of the Redis server.
	RedisAddress string `mapstructure:"redis_address" default:"localhost:6379"`
	// RedisPassword authenticates against Redis.
	RedisPassword string `mapstructure:"redis_password" default:""`
	// RedisDB is the Redis database number.
	RedisDB int `mapstructure:"redis_db" default:"0"`
	// Prefix is prepended to every Redis key.
	Prefix string `mapstructure:"prefix" default:"nft:"`
}
