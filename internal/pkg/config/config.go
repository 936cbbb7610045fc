package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"

	"github.com/paylane/paylane/internal/pkg/models"
)

// InitConfig loads application configuration from the environment, with an
// optional config file for local development. Environment variables win over
// file values.
func InitConfig(configPath string) *models.Config {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Printf("config file not loaded, using environment: %v", err)
	}

	return loadConfig(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "paylane")
	v.SetDefault("app.environment", "local")
	v.SetDefault("app.debug", true)
	v.SetDefault("app.version", "development")

	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 9990)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.shutdown_timeout", 30)

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.username", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.database", "paylane")
	v.SetDefault("db.ssl_mode", "disable")
	v.SetDefault("db.max_conns", 10)
	v.SetDefault("db.idle_conns", 2)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)

	v.SetDefault("nsq.address", "localhost:4150")
	v.SetDefault("nsq.enabled", true)

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration", 60)
	v.SetDefault("jwt.issuer", "paylane")

	v.SetDefault("routing.service_url", "http://localhost:5001")
	v.SetDefault("routing.timeout_seconds", 5)
	v.SetDefault("routing.success_rate_weight", 0.4)
	v.SetDefault("routing.fallback_prob", 0.25)
	v.SetDefault("routing.cache_ttl_seconds", 60)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file_path", "")
	v.SetDefault("log.format", "json")
}

func loadConfig(v *viper.Viper) *models.Config {
	configs := &models.Config{}

	configs.App.Name = v.GetString("app.name")
	configs.App.Environment = v.GetString("app.environment")
	configs.App.Debug = v.GetBool("app.debug")
	configs.App.Version = v.GetString("app.version")

	configs.Server.Host = v.GetString("server.host")
	configs.Server.Port = v.GetInt("server.port")
	configs.Server.ReadTimeout = v.GetInt("server.read_timeout")
	configs.Server.WriteTimeout = v.GetInt("server.write_timeout")
	configs.Server.ShutdownTimeout = v.GetInt("server.shutdown_timeout")

	configs.Database.Host = v.GetString("db.host")
	configs.Database.Port = v.GetInt("db.port")
	configs.Database.Username = v.GetString("db.username")
	configs.Database.Password = v.GetString("db.password")
	configs.Database.Database = v.GetString("db.database")
	configs.Database.SSLMode = v.GetString("db.ssl_mode")
	configs.Database.MaxConns = v.GetInt("db.max_conns")
	configs.Database.IdleConns = v.GetInt("db.idle_conns")

	configs.Redis.Host = v.GetString("redis.host")
	configs.Redis.Port = v.GetInt("redis.port")
	configs.Redis.Password = v.GetString("redis.password")
	configs.Redis.DB = v.GetInt("redis.db")
	configs.Redis.PoolSize = v.GetInt("redis.pool_size")

	configs.NSQ.Address = v.GetString("nsq.address")
	configs.NSQ.Enabled = v.GetBool("nsq.enabled")

	configs.JWT.Secret = v.GetString("jwt.secret")
	configs.JWT.Expiration = v.GetInt("jwt.expiration")
	configs.JWT.Issuer = v.GetString("jwt.issuer")

	configs.Routing.ServiceURL = v.GetString("routing.service_url")
	configs.Routing.TimeoutSeconds = v.GetInt("routing.timeout_seconds")
	configs.Routing.SuccessRateWeight = v.GetFloat64("routing.success_rate_weight")
	configs.Routing.FallbackProb = v.GetFloat64("routing.fallback_prob")
	configs.Routing.CacheTTLSeconds = v.GetInt("routing.cache_ttl_seconds")

	configs.Logger.Level = v.GetString("log.level")
	configs.Logger.FilePath = v.GetString("log.file_path")
	configs.Logger.Format = v.GetString("log.format")

	return configs
}
