package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

type Config struct {
	LogLevel    string        `yaml:"log-level" env:"TICTACTOE_LOG_LEVEL" env-default:"info"`
	HTTPPort    string        `yaml:"http-port" env:"TICTACTOE_HTTP_PORT" env-default:"9090"`
	Storage     string        `yaml:"storage" env:"TICTACTOE_STORAGE" env-default:"memory"`
	Redis       Redis         `yaml:"redis"`
	SessionTTL  time.Duration `yaml:"session-ttl" env:"TICTACTOE_SESSION_TTL" env-default:"24h"`
	CORSOrigins []string      `yaml:"cors-origins" env:"TICTACTOE_CORS_ORIGINS" env-default:"http://localhost:5173"`
}

type Redis struct {
	Host string `yaml:"host" env:"TICTACTOE_REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"TICTACTOE_REDIS_PORT" env-default:"6379"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
